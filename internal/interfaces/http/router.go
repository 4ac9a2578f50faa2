package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/saeron-inventario/internal/application/analytics"
	"github.com/jhoicas/saeron-inventario/internal/application/backup"
	"github.com/jhoicas/saeron-inventario/internal/application/billing"
	"github.com/jhoicas/saeron-inventario/internal/application/closing"
	"github.com/jhoicas/saeron-inventario/internal/application/inventory"
	"github.com/jhoicas/saeron-inventario/internal/application/quote"
	"github.com/jhoicas/saeron-inventario/internal/application/report"
	"github.com/jhoicas/saeron-inventario/internal/application/sales"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC       *inventory.CatalogUseCase
	StockUC         *inventory.StockUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	SaleUC          *sales.SaleUseCase
	ClosingUC       *closing.ClosingUseCase
	ExportUC        *report.ClosingExportUseCase
	CustomerUC      *billing.CustomerUseCase
	OrderUC         *billing.OrderUseCase
	QuoteUC         *quote.QuoteUseCase
	DashboardUC     *analytics.DashboardUseCase
	ReportUC        *analytics.ReportUseCase
	BackupUC        *backup.BackupUseCase
	Location        *time.Location
	JWTSecret       string
}

// Router registra las rutas de la API.
// Las rutas fijas (low-stock, today, preview, ...) van antes de /:id.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Productos
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/categories", productHandler.Categories)
	products.Get("/total-value", productHandler.TotalValue)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Movimientos de stock
	transactions := api.Group("/transactions")
	inventoryHandler := NewInventoryHandler(deps.StockUC, deps.ReplenishmentUC)
	transactions.Get("/", inventoryHandler.List)
	transactions.Get("/replenishment", inventoryHandler.GetReplenishmentList)
	transactions.Post("/in", inventoryHandler.StockIn)
	transactions.Post("/out", inventoryHandler.StockOut)

	// Ventas
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Get("/today", saleHandler.Today)
	salesGroup.Get("/totals", saleHandler.Totals)
	salesGroup.Get("/receivables", saleHandler.Receivables)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/", saleHandler.Record)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Delete("/:id", saleHandler.Delete)
	salesGroup.Post("/:id/payments", saleHandler.CollectPayment)

	// Cierres mensuales
	closings := api.Group("/closings")
	closingHandler := NewClosingHandler(deps.ClosingUC, deps.ExportUC)
	closings.Get("/preview", closingHandler.Preview)
	closings.Get("/", closingHandler.List)
	closings.Post("/", closingHandler.Create)
	closings.Get("/:id", closingHandler.GetByID)
	closings.Delete("/:id", RequireRole(RoleAdmin), closingHandler.Delete)
	closings.Get("/:id/pdf", closingHandler.DownloadPDF)
	closings.Get("/:id/xlsx", closingHandler.DownloadXLSX)

	// Clientes
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.OrderUC)
	customers.Get("/top", customerHandler.Top)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Get("/:id/orders", customerHandler.Orders)

	// Pedidos
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Get("/recent", orderHandler.Recent)
	orders.Get("/stats", orderHandler.Stats)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Patch("/:id/payment", orderHandler.UpdatePayment)
	orders.Delete("/:id", orderHandler.Delete)

	// Cotizaciones
	quotes := api.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteUC)
	quotes.Get("/stats", quoteHandler.Stats)
	quotes.Get("/", quoteHandler.List)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Put("/:id", quoteHandler.Update)
	quotes.Patch("/:id/status", quoteHandler.UpdateStatus)
	quotes.Delete("/:id", quoteHandler.Delete)

	// Tablero
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.ReportUC, deps.StockUC, deps.CatalogUC, deps.Location)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/stock-flow", dashboardHandler.StockFlow)
	dashboard.Get("/trend", dashboardHandler.Trend)
	dashboard.Get("/top-products", dashboardHandler.TopProducts)
	dashboard.Get("/category-values", dashboardHandler.CategoryValues)

	// Respaldo
	backupGroup := api.Group("/backup")
	backupHandler := NewBackupHandler(deps.BackupUC)
	backupGroup.Get("/export", backupHandler.Export)
	backupGroup.Post("/import", RequireRole(RoleAdmin), backupHandler.Import)
	backupGroup.Post("/reset", RequireRole(RoleAdmin), backupHandler.Reset)
}
