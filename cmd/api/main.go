package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/saeron-inventario/internal/application/analytics"
	"github.com/jhoicas/saeron-inventario/internal/application/backup"
	"github.com/jhoicas/saeron-inventario/internal/application/billing"
	"github.com/jhoicas/saeron-inventario/internal/application/closing"
	"github.com/jhoicas/saeron-inventario/internal/application/inventory"
	"github.com/jhoicas/saeron-inventario/internal/application/quote"
	"github.com/jhoicas/saeron-inventario/internal/application/report"
	"github.com/jhoicas/saeron-inventario/internal/application/sales"
	"github.com/jhoicas/saeron-inventario/internal/application/state"
	"github.com/jhoicas/saeron-inventario/internal/infrastructure/excel"
	"github.com/jhoicas/saeron-inventario/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/saeron-inventario/internal/infrastructure/pdf"
	infraredis "github.com/jhoicas/saeron-inventario/internal/infrastructure/redis"
	"github.com/jhoicas/saeron-inventario/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/saeron-inventario/internal/interfaces/http"
	"github.com/jhoicas/saeron-inventario/pkg/config"
	"github.com/jhoicas/saeron-inventario/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "saeron:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	policy, err := sales.ParsePricingPolicy(cfg.Sales.PricingPolicy)
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("tz", cfg.App.Timezone).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(registry)

	store := state.NewStore(repo, log, state.WithObserver(m))
	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("cargar estado: %w", err)
	}

	loc := cfg.App.Location()
	closingUC := closing.NewClosingUseCase(store, loc, log).WithMetrics(m)
	if cfg.Redis.Addr != "" {
		client, err := infraredis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		closingUC.WithLocker(infraredis.NewPeriodLocker(client, infraredis.DefaultLockTTL))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("lock de cierres en Redis")
	}

	catalogUC := inventory.NewCatalogUseCase(store)
	stockUC := inventory.NewStockUseCase(store)
	exportUC := report.NewClosingExportUseCase(store,
		infrapdf.NewMarotoPDFGenerator(cfg.Report.FontPath),
		excel.NewWorkbookGenerator(),
		cfg.Report.CompanyName,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024, // respaldos JSON
		ErrorHandler: httpRouter.ErrorHandler(log.Component("http")),
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Saeron Inventario API",
	}))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:       catalogUC,
		StockUC:         stockUC,
		ReplenishmentUC: inventory.NewReplenishmentUseCase(store),
		SaleUC:          sales.NewSaleUseCase(store, policy, loc, log).WithMetrics(m),
		ClosingUC:       closingUC,
		ExportUC:        exportUC,
		CustomerUC:      billing.NewCustomerUseCase(store),
		OrderUC:         billing.NewOrderUseCase(store, loc, log),
		QuoteUC:         quote.NewQuoteUseCase(store, loc),
		DashboardUC:     analytics.NewDashboardUseCase(store, loc),
		ReportUC:        analytics.NewReportUseCase(store, loc),
		BackupUC:        backup.NewBackupUseCase(store, loc, log),
		Location:        loc,
		JWTSecret:       cfg.JWT.Secret,
	})
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: API sin autenticación")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		return app.Listen(cfg.HTTP.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("servidor HTTP: %w", err)
	}
	log.Info().Msg("aplicación detenida")
	return nil
}
