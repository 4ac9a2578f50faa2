package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/application/inventory"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

// InventoryHandler maneja entradas/salidas de stock, su historial y la lista de reposición.
type InventoryHandler struct {
	uc            *inventory.StockUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, replenishment: replenishment}
}

// StockIn godoc
// @Summary      Registrar entrada de stock
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "productId, quantity > 0, note, user"
// @Success      201   {object}  entity.Transaction
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transactions/in [post]
func (h *InventoryHandler) StockIn(c *fiber.Ctx) error {
	return h.register(c, entity.TransactionTypeIn)
}

// StockOut godoc
// @Summary      Registrar salida de stock
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "productId, quantity > 0, note, user"
// @Success      201   {object}  entity.Transaction
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "INSUFFICIENT_STOCK"
// @Router       /api/transactions/out [post]
func (h *InventoryHandler) StockOut(c *fiber.Ctx) error {
	return h.register(c, entity.TransactionTypeOut)
}

func (h *InventoryHandler) register(c *fiber.Ctx, typ string) error {
	var in dto.StockMovementRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	in.User = operatorOr(c, in.User)
	tx, err := h.uc.RegisterMovement(c.Context(), typ, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

// List godoc
// @Summary      Historial de movimientos (más reciente primero)
// @Tags         transactions
// @Produce      json
// @Param        productId  query  string  false  "Filtrar por producto"
// @Param        type       query  string  false  "in | out"
// @Param        limit      query  int     false  "Máximo de registros (0 = todos)"
// @Success      200  {object}  dto.ListResponse[dto.TransactionView]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transactions [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var f dto.TransactionFilter
	if err := bindQuery(c, &f); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(h.uc.Transactions(f)))
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos en o bajo su mínimo con la cantidad sugerida de pedido,
//
//	ordenados por unidades vendidas en los últimos 90 días.
//
// @Tags         transactions
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/transactions/replenishment [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list := h.replenishment.GenerateReplenishmentList()
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
