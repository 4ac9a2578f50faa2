package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/saeron-inventario/internal/application/billing"
	"github.com/jhoicas/saeron-inventario/internal/application/dto"
)

// OrderHandler maneja pedidos.
type OrderHandler struct {
	uc *billing.OrderUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *billing.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido
// @Description  Descuenta el stock de todas las líneas (todo o nada) y suma el total a la compra acumulada del cliente.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Pedido"
// @Success      201   {object}  entity.Order
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
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
// @Summary      Listar pedidos
// @Tags         orders
// @Produce      json
// @Param        status      query  string  false  "pending | processing | shipped | delivered | cancelled"
// @Param        customerId  query  string  false  "Cliente"
// @Param        search      query  string  false  "Número de pedido o cliente"
// @Success      200  {object}  dto.ListResponse[entity.Order]
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var f dto.OrderFilter
	if err := bindQuery(c, &f); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(h.uc.List(f)))
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  entity.Order
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(paramID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar datos de entrega del pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderRequest  true  "Campos a actualizar"
// @Success      200   {object}  entity.Order
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.Context(), paramID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  entity.Order
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateStatus(c.Context(), paramID(c), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdatePayment godoc
// @Summary      Cambiar estado de pago del pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdatePaymentRequest  true  "Estado de pago y monto (partial)"
// @Success      200   {object}  entity.Order
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/payment [patch]
func (h *OrderHandler) UpdatePayment(c *fiber.Ctx) error {
	var in dto.UpdatePaymentRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdatePayment(c.Context(), paramID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar pedido
// @Description  No repone stock; descuenta de la compra acumulada del cliente si el pedido estaba pagado.
// @Tags         orders
// @Security     Bearer
// @Param        id   path  string  true  "ID del pedido"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), paramID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Recent godoc
// @Summary      Pedidos recientes
// @Tags         orders
// @Produce      json
// @Param        limit  query  int  false  "Cantidad (por defecto 5)"
// @Success      200  {object}  dto.ListResponse[entity.Order]
// @Router       /api/orders/recent [get]
func (h *OrderHandler) Recent(c *fiber.Ctx) error {
	return c.JSON(dto.NewList(h.uc.Recent(c.QueryInt("limit", 5))))
}

// Stats godoc
// @Summary      Indicadores de pedidos
// @Tags         orders
// @Produce      json
// @Success      200  {object}  dto.SalesStatsDTO
// @Router       /api/orders/stats [get]
func (h *OrderHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(h.uc.Stats())
}
