package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores se reportan con el nombre que ve el cliente (json o query).
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	_ = v.RegisterValidation("location_kind", func(fl validator.FieldLevel) bool {
		return entity.LocationKind(fl.Field().String()).Valid()
	})
	return v
}

// validateStruct corre las reglas `validate:` y las convierte en domain.ValidationError.
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := domain.NewValidationError()
	for _, fe := range verrs {
		out.Add(fieldPath(fe), messageKey(fe.Tag()))
	}
	return out
}

// fieldPath "lease.notes" en lugar de "UpdateEquipmentRequest.lease.notes".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func messageKey(tag string) string {
	switch tag {
	case "required":
		return domain.MsgRequired
	case "min", "max", "gte", "lte", "gt", "lt":
		return domain.MsgOutOfRange
	case "location_kind":
		return domain.MsgInvalidLocation
	}
	return domain.MsgInvalidFormat
}

// bindJSON decodifica el cuerpo y valida. Un JSON ilegible es un error de validación sin campos.
func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.FieldError("body", domain.MsgInvalidFormat)
	}
	return validateStruct(out)
}

// bindQuery decodifica los parámetros de la query y valida.
func bindQuery(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return domain.FieldError("query", domain.MsgInvalidFormat)
	}
	return validateStruct(out)
}
