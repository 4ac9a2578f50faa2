package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/saeron-inventario/internal/application/analytics"
	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/application/inventory"
	"github.com/jhoicas/saeron-inventario/internal/domain"
)

// DashboardHandler maneja los endpoints del tablero y los reportes.
type DashboardHandler struct {
	dashboard *analytics.DashboardUseCase
	reports   *analytics.ReportUseCase
	stock     *inventory.StockUseCase
	catalog   *inventory.CatalogUseCase
	loc       *time.Location
}

// NewDashboardHandler construye el handler. loc es la zona en la que se interpretan las fechas
// YYYY-MM-DD de la query.
func NewDashboardHandler(
	dashboard *analytics.DashboardUseCase,
	reports *analytics.ReportUseCase,
	stock *inventory.StockUseCase,
	catalog *inventory.CatalogUseCase,
	loc *time.Location,
) *DashboardHandler {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardHandler{dashboard: dashboard, reports: reports, stock: stock, catalog: catalog, loc: loc}
}

// GetSummary godoc
// @Summary      Resumen del tablero
// @Description  Inventario, movimientos de los últimos 7 días, ventas del día y del mes, top 5 productos.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	return c.JSON(h.dashboard.GetSummary())
}

// StockFlow godoc
// @Summary      Entradas y salidas por producto
// @Description  Ambas fechas son inclusivas.
// @Tags         dashboard
// @Produce      json
// @Param        from  query  string  true  "YYYY-MM-DD"
// @Param        to    query  string  true  "YYYY-MM-DD"
// @Success      200  {object}  dto.StockFlowReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stock-flow [get]
func (h *DashboardHandler) StockFlow(c *fiber.Ctx) error {
	from, err := h.parseDay(c.Query("from"))
	if err != nil {
		return writeError(c, err)
	}
	to, err := h.parseDay(c.Query("to"))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.stock.StockFlow(from, to.AddDate(0, 0, 1))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Trend godoc
// @Summary      Tendencia diaria de movimientos
// @Tags         dashboard
// @Produce      json
// @Param        days  query  int  false  "Días hacia atrás (1..366, por defecto 30)"
// @Success      200  {object}  dto.ListResponse[dto.TrendPointDTO]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/trend [get]
func (h *DashboardHandler) Trend(c *fiber.Ctx) error {
	points, err := h.reports.TransactionTrend(c.QueryInt("days", 30))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(points))
}

// TopProducts godoc
// @Summary      Productos con mayor valor en stock
// @Tags         dashboard
// @Produce      json
// @Param        limit  query  int  false  "Cantidad (por defecto 10)"
// @Success      200  {object}  dto.ListResponse[dto.ProductValueDTO]
// @Router       /api/dashboard/top-products [get]
func (h *DashboardHandler) TopProducts(c *fiber.Ctx) error {
	return c.JSON(dto.NewList(h.reports.TopProductsByValue(c.QueryInt("limit", 10))))
}

// CategoryValues godoc
// @Summary      Valor del inventario por categoría
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.CategoryValueDTO]
// @Router       /api/dashboard/category-values [get]
func (h *DashboardHandler) CategoryValues(c *fiber.Ctx) error {
	return c.JSON(dto.NewList(h.catalog.CategoryValues()))
}

func (h *DashboardHandler) parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: fecha requerida (YYYY-MM-DD)", domain.ErrInvalidInput)
	}
	t, err := time.ParseInLocation(time.DateOnly, s, h.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q inválida", domain.ErrInvalidInput, s)
	}
	return t, nil
}
