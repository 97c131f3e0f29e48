package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/pkg/i18n"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// LocalLang key del idioma elegido para la petición.
const LocalLang = "lang"

// Locale elige el idioma de la respuesta a partir de Accept-Language.
func Locale(fallback language.Tag) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalLang, i18n.Match(c.Get(fiber.HeaderAcceptLanguage), fallback))
		return c.Next()
	}
}

// Lang devuelve el idioma de la petición; sin middleware Locale cae en i18n.Default.
func Lang(c *fiber.Ctx) language.Tag {
	if tag, ok := c.Locals(LocalLang).(language.Tag); ok {
		return tag
	}
	return i18n.Match(c.Get(fiber.HeaderAcceptLanguage), i18n.Default)
}

// errorMapping status y código HTTP para cada error de dominio.
var errorMapping = []struct {
	err    error
	status int
	code   string
	key    string
}{
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND", domain.MsgNotFound},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", domain.MsgNotFound},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", domain.MsgUnauthorized},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", domain.MsgForbidden},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", domain.MsgConflict},
	{domain.ErrAlreadyInUse, fiber.StatusConflict, "ALREADY_IN_USE", domain.MsgAlreadyInUse},
	{domain.ErrBlocked, fiber.StatusConflict, "BLOCKED", domain.MsgBlocked},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION", domain.MsgInvalidTransition},
	{domain.ErrNoDefaultDeposit, fiber.StatusUnprocessableEntity, "NO_DEFAULT_DEPOSIT", domain.MsgNoDefaultDeposit},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "INVALID_INPUT", domain.MsgValidation},
}

// respondError traduce err a la respuesta NOK. Los fallos de base de datos y los
// no clasificados se registran; los de dominio no.
func respondError(c *fiber.Ctx, err error) error {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return writeError(c, fiber.StatusBadRequest, "VALIDATION", domain.MsgValidation, vErr.Fields)
	}
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return writeError(c, m.status, m.code, m.key, nil)
		}
	}
	var dbErr *domain.DatabaseError
	if errors.As(err, &dbErr) {
		log.Error().Err(err).
			Str("op", dbErr.Op).
			Str("sqlstate", dbErr.Code).
			Str("path", c.Path()).
			Msg("error de base de datos")
		return writeError(c, fiber.StatusInternalServerError, "DATABASE_ERROR", domain.MsgDatabaseError, nil)
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL", domain.MsgInternalError, nil)
}

// writeError escribe el cuerpo NOK con el mensaje y los campos en el idioma de la petición.
func writeError(c *fiber.Ctx, status int, code, key string, fields map[string]string) error {
	lang := Lang(c)
	return c.Status(status).JSON(dto.ErrorResponse{
		Result:  dto.ResultNOK,
		Code:    code,
		Message: i18n.T(lang, key),
		Fields:  i18n.Fields(lang, fields),
	})
}

// writeOK respuesta de las operaciones de escritura.
func writeOK(c *fiber.Ctx, status int, key string, data any) error {
	return c.Status(status).JSON(dto.ResultResponse{
		Result:  dto.ResultOK,
		Message: i18n.T(Lang(c), key),
		Data:    data,
	})
}

// ErrorHandler para fiber.Config: rutas inexistentes, cuerpos demasiado grandes y pánicos recuperados.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		return respondError(c, err)
	}
	switch fe.Code {
	case fiber.StatusNotFound:
		return writeError(c, fe.Code, "NOT_FOUND", domain.MsgNotFound, nil)
	case fiber.StatusMethodNotAllowed:
		return writeError(c, fe.Code, "METHOD_NOT_ALLOWED", domain.MsgForbidden, nil)
	case fiber.StatusRequestEntityTooLarge:
		return writeError(c, fe.Code, "BODY_TOO_LARGE", domain.MsgValidation, nil)
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return writeError(c, fe.Code, "BAD_REQUEST", domain.MsgValidation, nil)
	}
	return writeError(c, fe.Code, "HTTP_ERROR", domain.MsgInternalError, nil)
}
