package report

import (
	"context"

	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

// ClosingPDFGenerator dibuja el reporte de un cierre mensual en PDF.
type ClosingPDFGenerator interface {
	GenerateClosingPDF(ctx context.Context, c entity.MonthlyClosing, title string) ([]byte, error)
}

// ClosingWorkbookGenerator arma el libro Excel de un cierre mensual.
type ClosingWorkbookGenerator interface {
	GenerateClosingWorkbook(ctx context.Context, c entity.MonthlyClosing) ([]byte, error)
}
