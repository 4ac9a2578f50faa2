package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/saeron-inventario/internal/application/billing"
	"github.com/jhoicas/saeron-inventario/internal/application/dto"
)

// CustomerHandler maneja clientes.
type CustomerHandler struct {
	uc     *billing.CustomerUseCase
	orders *billing.OrderUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *billing.CustomerUseCase, orders *billing.OrderUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc, orders: orders}
}

// Create godoc
// @Summary      Crear cliente
// @Description  Asigna el código CST-NNN siguiente.
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  entity.Customer
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Produce      json
// @Param        search  query  string  false  "Nombre, código o contacto"
// @Param        type    query  string  false  "B2B | B2C"
// @Success      200  {object}  dto.ListResponse[entity.Customer]
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var f dto.CustomerFilter
	if err := bindQuery(c, &f); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(h.uc.List(f)))
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         customers
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  entity.Customer
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(paramID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente (parcial)
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.UpdateCustomerRequest  true  "Campos a actualizar"
// @Success      200   {object}  entity.Customer
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.Context(), paramID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente
// @Tags         customers
// @Security     Bearer
// @Param        id   path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), paramID(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Top godoc
// @Summary      Mejores clientes por compra acumulada
// @Tags         customers
// @Produce      json
// @Param        limit  query  int  false  "Cantidad (por defecto 10)"
// @Success      200  {object}  dto.ListResponse[entity.Customer]
// @Router       /api/customers/top [get]
func (h *CustomerHandler) Top(c *fiber.Ctx) error {
	return c.JSON(dto.NewList(h.uc.TopCustomers(c.QueryInt("limit", 10))))
}

// Orders godoc
// @Summary      Pedidos de un cliente
// @Tags         customers
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ListResponse[entity.Order]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/orders [get]
func (h *CustomerHandler) Orders(c *fiber.Ctx) error {
	id := paramID(c)
	if _, err := h.uc.GetByID(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(h.orders.ByCustomer(id)))
}
