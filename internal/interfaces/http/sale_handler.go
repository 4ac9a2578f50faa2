package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/application/sales"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

// SaleHandler maneja el libro de ventas.
type SaleHandler struct {
	uc *sales.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

func saleViews(list []entity.Sale) []dto.SaleView {
	out := make([]dto.SaleView, 0, len(list))
	for _, s := range list {
		out = append(out, dto.NewSaleView(s))
	}
	return out
}

// Record godoc
// @Summary      Registrar venta
// @Description  Descuenta stock, registra la venta y un movimiento de salida. totalAmount opcional
//
//	según la política de precios configurada.
//
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordSaleRequest  true  "Venta"
// @Success      201   {object}  dto.SaleView
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Router       /api/sales [post]
func (h *SaleHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordSaleRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	in.User = operatorOr(c, in.User)
	sale, err := h.uc.RecordSale(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSaleView(*sale))
}

// List godoc
// @Summary      Listar ventas (más reciente primero)
// @Tags         sales
// @Produce      json
// @Param        year    query  int     false  "Año (requiere month)"
// @Param        month   query  int     false  "Mes 1-12 (requiere year)"
// @Param        search  query  string  false  "Producto, cliente o teléfono"
// @Success      200  {object}  dto.ListResponse[dto.SaleView]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var f dto.SaleFilter
	if err := bindQuery(c, &f); err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.List(f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(saleViews(list)))
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleView
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.GetByID(paramID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewSaleView(*sale))
}

// Delete godoc
// @Summary      Eliminar venta
// @Description  No repone stock.
// @Tags         sales
// @Security     Bearer
// @Param        id   path  string  true  "ID de la venta"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [delete]
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteSale(c.Context(), paramID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CollectPayment godoc
// @Summary      Registrar cobro de una venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.CollectPaymentRequest  true  "Monto cobrado"
// @Success      200   {object}  dto.SaleView
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/payments [post]
func (h *SaleHandler) CollectPayment(c *fiber.Ctx) error {
	var in dto.CollectPaymentRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	sale, err := h.uc.CollectPayment(c.Context(), paramID(c), in.Amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewSaleView(*sale))
}

// Today godoc
// @Summary      Ventas de hoy con totales
// @Tags         sales
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/sales/today [get]
func (h *SaleHandler) Today(c *fiber.Ctx) error {
	list, totals := h.uc.Today()
	return c.JSON(fiber.Map{"sales": saleViews(list), "totals": totals})
}

// Totals godoc
// @Summary      Totales de todo el libro de ventas
// @Tags         sales
// @Produce      json
// @Success      200  {object}  dto.SalesTotalsDTO
// @Router       /api/sales/totals [get]
func (h *SaleHandler) Totals(c *fiber.Ctx) error {
	return c.JSON(h.uc.Totals())
}

// Receivables godoc
// @Summary      Ventas con saldo pendiente (más antigua primero)
// @Tags         sales
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.SaleView]
// @Router       /api/sales/receivables [get]
func (h *SaleHandler) Receivables(c *fiber.Ctx) error {
	return c.JSON(dto.NewList(saleViews(h.uc.Receivables())))
}
