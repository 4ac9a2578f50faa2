package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/saeron-inventario/internal/application/closing"
	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/application/report"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ClosingHandler maneja los cierres mensuales y sus reportes descargables.
type ClosingHandler struct {
	uc     *closing.ClosingUseCase
	export *report.ClosingExportUseCase
}

// NewClosingHandler construye el handler.
func NewClosingHandler(uc *closing.ClosingUseCase, export *report.ClosingExportUseCase) *ClosingHandler {
	return &ClosingHandler{uc: uc, export: export}
}

// Create godoc
// @Summary      Crear cierre mensual
// @Description  Congela las ventas del mes con totales, desglose por categoría y estado de cobro.
// @Tags         closings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClosingRequest  true  "Año y mes"
// @Success      201   {object}  entity.MonthlyClosing
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "PERIOD_ALREADY_CLOSED | PERIOD_LOCKED"
// @Router       /api/closings [post]
func (h *ClosingHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClosingRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateClosing(c.Context(), in.Year, in.Month)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cierres (año y mes descendente)
// @Tags         closings
// @Produce      json
// @Success      200  {object}  dto.ListResponse[entity.MonthlyClosing]
// @Router       /api/closings [get]
func (h *ClosingHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.NewList(h.uc.GetAllClosings()))
}

// GetByID godoc
// @Summary      Obtener cierre
// @Tags         closings
// @Produce      json
// @Param        id   path  string  true  "ID del cierre"
// @Success      200  {object}  entity.MonthlyClosing
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/closings/{id} [get]
func (h *ClosingHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetClosing(paramID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cierre (reabre el período)
// @Tags         closings
// @Security     Bearer
// @Param        id   path  string  true  "ID del cierre"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/closings/{id} [delete]
func (h *ClosingHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteClosing(c.Context(), paramID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Preview godoc
// @Summary      Estadísticas en vivo de un mes
// @Tags         closings
// @Produce      json
// @Param        year   query  int  true  "Año"
// @Param        month  query  int  true  "Mes 1-12"
// @Success      200  {object}  dto.MonthPreviewDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/closings/preview [get]
func (h *ClosingHandler) Preview(c *fiber.Ctx) error {
	out, err := h.uc.PreviewMonth(c.QueryInt("year"), c.QueryInt("month"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar reporte PDF del cierre
// @Tags         closings
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del cierre"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/closings/{id}/pdf [get]
func (h *ClosingHandler) DownloadPDF(c *fiber.Ctx) error {
	body, name, err := h.export.DownloadPDF(c.Context(), paramID(c))
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, mimePDF, name, body)
}

// DownloadXLSX godoc
// @Summary      Descargar libro Excel del cierre
// @Tags         closings
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  string  true  "ID del cierre"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/closings/{id}/xlsx [get]
func (h *ClosingHandler) DownloadXLSX(c *fiber.Ctx) error {
	body, name, err := h.export.DownloadWorkbook(c.Context(), paramID(c))
	if err != nil {
		return writeError(c, err)
	}
	return sendAttachment(c, mimeXLSX, name, body)
}

func sendAttachment(c *fiber.Ctx, contentType, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(body)
}
