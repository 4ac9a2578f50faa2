// seed carga el catálogo de demostración (productos, stock inicial y clientes) usando los
// mismos casos de uso que la API. Los productos cuyo código ya existe se omiten.
//
// Uso: go run ./cmd/seed [-customers=false]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/saeron-inventario/internal/application/billing"
	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/application/inventory"
	"github.com/jhoicas/saeron-inventario/internal/application/state"
	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/internal/infrastructure/storage"
	"github.com/jhoicas/saeron-inventario/pkg/config"
	"github.com/jhoicas/saeron-inventario/pkg/logger"
)

var demoProducts = []dto.CreateProductRequest{
	{Code: "PRD-001", Name: "노트북 (LG그램 15인치)", Category: "전자제품", MinQuantity: 10, Price: 1500000, Location: "창고A-101", Supplier: "(주)엘지전자"},
	{Code: "PRD-002", Name: "무선마우스", Category: "주변기기", MinQuantity: 30, Price: 25000, Location: "창고A-205", Supplier: "로지텍코리아"},
	{Code: "PRD-003", Name: "USB 메모리 (64GB)", Category: "저장장치", MinQuantity: 20, Price: 15000, Location: "창고B-103", Supplier: "삼성전자"},
}

// stock inicial por código, registrado como entrada para que quede en el historial
var demoStock = map[string]int64{"PRD-001": 45, "PRD-002": 120, "PRD-003": 8}

var demoCustomers = []dto.CreateCustomerRequest{
	{Name: "대성건설 주식회사", Contact: "02-1234-5678", Email: "contact@daesung.co.kr", Address: "서울시 강남구 테헤란로 123", Manager: "김대성", ManagerPhone: "010-1234-5678", CustomerType: "B2B"},
	{Name: "한국산업 주식회사", Contact: "031-5678-9012", Email: "info@hanguksanup.com", Address: "경기도 성남시 분당구 판교로 456", Manager: "이한국", ManagerPhone: "010-2345-6789", CustomerType: "B2B"},
	{Name: "서울설비공사", Contact: "02-9876-5432", Email: "seoul@facility.kr", Address: "서울시 영등포구 국회대로 789", Manager: "박서울", ManagerPhone: "010-3456-7890", CustomerType: "B2B"},
}

func main() {
	withCustomers := flag.Bool("customers", true, "crear clientes de demostración si no hay ninguno")
	flag.Parse()

	if err := run(*withCustomers); err != nil {
		fmt.Fprintln(os.Stderr, "seed:", err)
		os.Exit(1)
	}
}

func run(withCustomers bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Component("seed")
	ctx := context.Background()

	repo, closeRepo, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	store := state.NewStore(repo, log)
	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("cargar estado: %w", err)
	}

	catalog := inventory.NewCatalogUseCase(store)
	stock := inventory.NewStockUseCase(store)
	created := 0
	for _, p := range demoProducts {
		product, err := catalog.Create(ctx, p)
		if errors.Is(err, domain.ErrDuplicate) {
			log.Info().Str("code", p.Code).Msg("producto ya existe, se omite")
			continue
		}
		if err != nil {
			return fmt.Errorf("crear %s: %w", p.Code, err)
		}
		if qty := demoStock[p.Code]; qty > 0 {
			if _, err := stock.AddStock(ctx, dto.StockMovementRequest{
				ProductID: product.ID, Quantity: qty, Note: "초기 재고", User: "seed",
			}); err != nil {
				return fmt.Errorf("stock inicial %s: %w", p.Code, err)
			}
		}
		created++
	}
	log.Info().Int("products", created).Msg("productos cargados")

	if !withCustomers {
		return nil
	}
	customers := billing.NewCustomerUseCase(store)
	if len(customers.List(dto.CustomerFilter{})) > 0 {
		log.Info().Msg("ya hay clientes, se omiten los de demostración")
		return nil
	}
	for _, c := range demoCustomers {
		if _, err := customers.Create(ctx, c); err != nil {
			return fmt.Errorf("crear cliente %s: %w", c.Name, err)
		}
	}
	log.Info().Int("customers", len(demoCustomers)).Msg("clientes cargados")
	return nil
}
