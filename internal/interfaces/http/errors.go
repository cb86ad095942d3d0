package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ipv-restaurante/internal/application/dto"
	"github.com/jhoicas/ipv-restaurante/internal/domain"
	"github.com/jhoicas/ipv-restaurante/internal/infrastructure/backend"
)

// errorStatus traduce un error de dominio a status HTTP y código de error.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMissingDate):
		return fiber.StatusBadRequest, "MISSING_DATE"
	case errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidExpression),
		errors.Is(err, domain.ErrInvalidKey):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNoData):
		return fiber.StatusBadRequest, "NO_DATA"
	case errors.Is(err, domain.ErrSessionNotFound):
		return fiber.StatusNotFound, "SESSION_NOT_FOUND"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrStaleLoad):
		return fiber.StatusConflict, "STALE_LOAD"
	case errors.Is(err, domain.ErrBackendUnavailable):
		return fiber.StatusBadGateway, "BACKEND_ERROR"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// writeError responde con el ErrorResponse del error. Si el backend contestó con un
// mensaje propio se muestra ese.
func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	msg := err.Error()
	var be *backend.BackendError
	if errors.As(err, &be) && be.Message != "" {
		msg = be.Message
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "INVALID_BODY", Message: "cuerpo de la petición inválido",
	})
}

// validate valida in con las etiquetas `validate`. Si no es válido ya respondió 400
// y el handler debe devolver el error que recibe.
func validate(c *fiber.Ctx, v *validator.Validate, in any) (bool, error) {
	err := v.Struct(in)
	if err == nil {
		return true, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = mensajeValidacion(fe)
	}
	return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "VALIDATION", Message: "datos inválidos", Fields: fields,
	})
}

func mensajeValidacion(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "formato de fecha inválido, use YYYY-MM-DD"
	case "max":
		return "máximo " + fe.Param()
	case "min":
		return "mínimo " + fe.Param()
	}
	return "inválido"
}

// newValidator usa el nombre JSON de cada campo en los errores.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
