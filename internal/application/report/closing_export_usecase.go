// Package report exporta los cierres mensuales a PDF y Excel.
package report

import (
	"context"
	"fmt"

	"github.com/jhoicas/saeron-inventario/internal/application/state"
	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

// ClosingExportUseCase genera los archivos descargables de un cierre.
// Solo lee el registro congelado; nunca recalcula contra el libro de ventas.
type ClosingExportUseCase struct {
	store    state.Controller
	pdf      ClosingPDFGenerator
	workbook ClosingWorkbookGenerator
	company  string
}

// NewClosingExportUseCase construye el caso de uso. company aparece en el título del PDF.
func NewClosingExportUseCase(store state.Controller, pdf ClosingPDFGenerator, workbook ClosingWorkbookGenerator, company string) *ClosingExportUseCase {
	return &ClosingExportUseCase{store: store, pdf: pdf, workbook: workbook, company: company}
}

// DownloadPDF devuelve (bytes, nombre de archivo). domain.ErrNotFound si el cierre no existe.
func (uc *ClosingExportUseCase) DownloadPDF(ctx context.Context, closingID entity.ID) ([]byte, string, error) {
	c, err := uc.load(closingID)
	if err != nil {
		return nil, "", err
	}
	title := fmt.Sprintf("%s %d년 %d월 마감 보고서", uc.company, c.Year, c.Month)
	out, err := uc.pdf.GenerateClosingPDF(ctx, c, title)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return out, fileName(c, "pdf"), nil
}

// DownloadWorkbook devuelve el libro .xlsx del cierre.
func (uc *ClosingExportUseCase) DownloadWorkbook(ctx context.Context, closingID entity.ID) ([]byte, string, error) {
	c, err := uc.load(closingID)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.workbook.GenerateClosingWorkbook(ctx, c)
	if err != nil {
		return nil, "", fmt.Errorf("xlsx: generación fallida: %w", err)
	}
	return out, fileName(c, "xlsx"), nil
}

func (uc *ClosingExportUseCase) load(id entity.ID) (entity.MonthlyClosing, error) {
	var (
		found entity.MonthlyClosing
		ok    bool
	)
	uc.store.View(func(st *state.State) {
		for _, c := range st.Inventory.MonthlyClosings {
			if c.ID == id {
				found, ok = c, true
				return
			}
		}
	})
	if !ok {
		return entity.MonthlyClosing{}, domain.ErrNotFound
	}
	return found, nil
}

func fileName(c entity.MonthlyClosing, ext string) string {
	return fmt.Sprintf("closing_%04d-%02d.%s", c.Year, c.Month, ext)
}
