package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/application/quote"
)

// QuoteHandler maneja cotizaciones.
type QuoteHandler struct {
	uc *quote.QuoteUseCase
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(uc *quote.QuoteUseCase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cotización
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuoteRequest  true  "Cotización"
// @Success      201   {object}  entity.Quote
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/quotes [post]
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.QuoteRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	in.User = operatorOr(c, in.User)
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cotizaciones
// @Tags         quotes
// @Produce      json
// @Param        status  query  string  false  "pending | success | rejected"
// @Param        search  query  string  false  "Nombre, empresa o teléfono"
// @Success      200  {object}  dto.ListResponse[entity.Quote]
// @Router       /api/quotes [get]
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	var f dto.QuoteFilter
	if err := bindQuery(c, &f); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(h.uc.List(f)))
}

// GetByID godoc
// @Summary      Obtener cotización
// @Tags         quotes
// @Produce      json
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {object}  entity.Quote
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id} [get]
func (h *QuoteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(paramID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar cotización
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cotización"
// @Param        body  body  dto.QuoteRequest  true  "Cotización"
// @Success      200   {object}  entity.Quote
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotes/{id} [put]
func (h *QuoteHandler) Update(c *fiber.Ctx) error {
	var in dto.QuoteRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	in.User = operatorOr(c, in.User)
	out, err := h.uc.Update(c.Context(), paramID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la cotización
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cotización"
// @Param        body  body  dto.UpdateQuoteStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  entity.Quote
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotes/{id}/status [patch]
func (h *QuoteHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateQuoteStatusRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateStatus(c.Context(), paramID(c), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cotización
// @Tags         quotes
// @Security     Bearer
// @Param        id   path  string  true  "ID de la cotización"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotes/{id} [delete]
func (h *QuoteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), paramID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stats godoc
// @Summary      Resumen de cotizaciones
// @Tags         quotes
// @Produce      json
// @Success      200  {object}  dto.QuoteStatsDTO
// @Router       /api/quotes/stats [get]
func (h *QuoteHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(h.uc.Stats())
}
