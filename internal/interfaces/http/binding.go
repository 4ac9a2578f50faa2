package http

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/saeron-inventario/internal/domain"
	"github.com/jhoicas/saeron-inventario/internal/domain/entity"
)

var validate = newValidator()

// newValidator reporta los campos por su nombre JSON (o query) en lugar del nombre Go.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// bindBody decodifica el JSON del cuerpo y valida las etiquetas validate.
func bindBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: %s", errInvalidBody, err.Error())
	}
	return validateStruct(out)
}

// bindQuery decodifica la query string (etiquetas query) y valida.
func bindQuery(c *fiber.Ctx, out interface{}) error {
	if err := c.QueryParser(out); err != nil {
		return fmt.Errorf("%w: %s", errInvalidBody, err.Error())
	}
	return validateStruct(out)
}

func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fieldError(fe))
		}
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(fields, "; "))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
}

// fieldError ej: "quantity: gt=0", "items[0].productId: required".
func fieldError(fe validator.FieldError) string {
	path := fe.Namespace()
	if _, rest, ok := strings.Cut(path, "."); ok {
		path = rest
	}
	if fe.Param() != "" {
		return fmt.Sprintf("%s: %s=%s", path, fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s: %s", path, fe.Tag())
}

// paramID lee el parámetro :id de la ruta.
func paramID(c *fiber.Ctx) entity.ID {
	return entity.ID(c.Params("id"))
}
