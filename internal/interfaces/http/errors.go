package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/saeron-inventario/internal/application/dto"
	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/pkg/logger"
)

// errInvalidBody cuerpo JSON o query imposible de decodificar.
var errInvalidBody = errors.New("cuerpo inválido")

// errorMapping traduce un error de dominio a estado HTTP y código.
type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{errInvalidBody, fiber.StatusBadRequest, "INVALID_BODY"},
	{domain.ErrInvalidImportFormat, fiber.StatusBadRequest, "INVALID_FORMAT"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrPeriodAlreadyClosed, fiber.StatusConflict, "PERIOD_ALREADY_CLOSED"},
	{domain.ErrPeriodLocked, fiber.StatusConflict, "PERIOD_LOCKED"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

// writeError responde con dto.ErrorResponse si err es un error de dominio conocido.
// Cualquier otro error se devuelve tal cual para que lo maneje ErrorHandler (500).
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	return err
}

// ErrorHandler manejador de errores de fiber: errores de fiber conservan su estado,
// el resto se registra y responde 500 sin exponer el detalle.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := "INTERNAL"
			switch fe.Code {
			case fiber.StatusNotFound:
				code = "NOT_FOUND"
			case fiber.StatusMethodNotAllowed:
				code = "METHOD_NOT_ALLOWED"
			case fiber.StatusBadRequest:
				code = "INVALID_BODY"
			}
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
		}
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
