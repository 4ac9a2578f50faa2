package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/saeron-inventario/internal/application/backup"
)

// BackupHandler exporta, importa y reinicia los datos del inventario.
type BackupHandler struct {
	uc *backup.BackupUseCase
}

// NewBackupHandler construye el handler.
func NewBackupHandler(uc *backup.BackupUseCase) *BackupHandler {
	return &BackupHandler{uc: uc}
}

// Export godoc
// @Summary      Descargar respaldo JSON
// @Tags         backup
// @Produce      json
// @Success      200  {object}  dto.BackupDocument
// @Router       /api/backup/export [get]
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	doc, filename := h.uc.Export()
	c.Attachment(filename)
	return c.JSON(doc)
}

// Import godoc
// @Summary      Restaurar respaldo JSON
// @Description  Reemplaza productos y movimientos (y las demás colecciones presentes en el archivo).
// @Tags         backup
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BackupDocument  true  "Archivo de respaldo"
// @Success      200   {object}  dto.ImportResultDTO
// @Failure      400   {object}  dto.ErrorResponse  "INVALID_FORMAT"
// @Router       /api/backup/import [post]
func (h *BackupHandler) Import(c *fiber.Ctx) error {
	out, err := h.uc.Import(c.Context(), c.Body())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reset godoc
// @Summary      Reiniciar inventario
// @Description  Vuelve productos, movimientos, ventas, cierres y cotizaciones al estado inicial. Solo admin.
// @Tags         backup
// @Security     Bearer
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/backup/reset [post]
func (h *BackupHandler) Reset(c *fiber.Ctx) error {
	if err := h.uc.Reset(c.Context()); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
