// Package pdf implementa el reporte de cierre mensual en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período     │  Fecha de cierre            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Ventas | Cobrado | Pendiente | N° ventas          │
//	│  ESTADO DE COBRO: completo / parcial / sin cobrar           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA CATEGORÍAS: Categoría | Cant | Ventas | Cobrado       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA VENTAS: Fecha | Producto | Cliente | Cant | Total ... │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"

	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
	"github.com/jhoicas/saeron-inventario/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
)

const customFamily = "hangul"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.ClosingPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	fontPath string
}

// NewMarotoPDFGenerator construye el generador. fontPath apunta a un TTF con glifos hangul;
// vacío usa helvetica (los textos coreanos no se dibujan correctamente).
func NewMarotoPDFGenerator(fontPath string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{fontPath: fontPath}
}

// GenerateClosingPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateClosingPDF(_ context.Context, c entity.MonthlyClosing, title string) ([]byte, error) {
	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithTitle(title, true)

	font := &props.Font{Family: "helvetica", Size: 9}
	if g.fontPath != "" {
		fonts, err := repository.New().
			AddUTF8Font(customFamily, fontstyle.Normal, g.fontPath).
			AddUTF8Font(customFamily, fontstyle.Bold, g.fontPath).
			Load()
		if err != nil {
			return nil, fmt.Errorf("pdf: cargar fuente %s: %w", g.fontPath, err)
		}
		builder = builder.WithCustomFonts(fonts)
		font = &props.Font{Family: customFamily, Size: 9}
	}
	m := maroto.New(builder.WithDefaultFont(font).Build())

	m.AddRows(headerRow(c, title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(c))
	m.AddRows(paymentStatusRow(c.PaymentStatus))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("카테고리별 매출"))
	m.AddRows(categoryHeaderRow())
	m.AddRows(categoryRows(c.CategoryBreakdown)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("판매 내역"))
	m.AddRows(salesHeaderRow())
	m.AddRows(salesRows(c.SalesData)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(c entity.MonthlyClosing, title string) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(fmt.Sprintf("%04d-%02d", c.Year, c.Month), props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("마감일", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(c.ClosingDate.Format("2006-01-02 15:04"), props.Text{Size: 9, Align: align.Right, Top: 7}),
		),
	)
}

func summaryRow(c entity.MonthlyClosing) core.Row {
	box := func(label, value string, color *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6, Align: align.Center, Color: color}),
		)
	}
	return row.New(16).Add(
		box("총 매출", money.Format(c.TotalSales), colorPrimary),
		box("수금액", money.Format(c.TotalPaid), nil),
		box("미수금", money.Format(c.TotalUnpaid), colorDanger),
		box("판매 건수", fmt.Sprintf("%d건", c.SalesCount), nil),
	)
}

func paymentStatusRow(p entity.PaymentStatusCount) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("완납 %d건   |   부분 수금 %d건   |   미수 %d건", p.FullyPaid, p.PartiallyPaid, p.Unpaid),
			props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
	))
}

func header(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
}

func categoryHeaderRow() core.Row {
	return row.New(6).Add(
		header("카테고리", 4, align.Left),
		header("수량", 2, align.Right),
		header("매출", 3, align.Right),
		header("수금", 3, align.Right),
	)
}

func categoryRows(rows []entity.CategoryBreakdown) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, row.New(6).Add(
			cell(r.Category, 4, align.Left),
			cell(money.Number(r.Quantity), 2, align.Right),
			cell(money.Format(r.Sales), 3, align.Right),
			cell(money.Format(r.Paid), 3, align.Right),
		))
	}
	return out
}

func salesHeaderRow() core.Row {
	return row.New(6).Add(
		header("일자", 2, align.Left),
		header("제품", 3, align.Left),
		header("고객", 2, align.Left),
		header("수량", 1, align.Right),
		header("금액", 2, align.Right),
		header("미수", 2, align.Right),
	)
}

func salesRows(sales []entity.Sale) []core.Row {
	out := make([]core.Row, 0, len(sales))
	for _, s := range sales {
		out = append(out, row.New(6).Add(
			cell(s.Date.Format("01-02 15:04"), 2, align.Left),
			cell(s.ProductName, 3, align.Left),
			cell(nonEmpty(s.Customer, "-"), 2, align.Left),
			cell(money.Number(s.Quantity), 1, align.Right),
			cell(money.Number(s.TotalPrice), 2, align.Right),
			cell(money.Number(s.Unpaid()), 2, align.Right),
		))
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
