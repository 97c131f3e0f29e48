package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/reports"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
)

// history responde el histórico paginado de un equipo o SIM card.
func history(c *fiber.Ctx, uc *reports.ReportUseCase, kind entity.DeviceKind) error {
	var req dto.DataTablesRequest
	if err := bindQuery(c, &req); err != nil {
		return respondError(c, err)
	}
	out, err := uc.History(c.UserContext(), GetActor(c), kind, c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// sendPDF envía el PDF como descarga, sin caché en el navegador ni en proxies.
func sendPDF(c *fiber.Ctx, data []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderExpires, "0")
	return c.Status(fiber.StatusOK).Send(data)
}

// slotParam lee el número de slot de la ruta; debe ser un entero positivo.
func slotParam(c *fiber.Ctx) (int, error) {
	slot, err := strconv.Atoi(c.Params("slot"))
	if err != nil || slot < 1 {
		return 0, domain.FieldError("slot_number", domain.MsgOutOfRange)
	}
	return slot, nil
}
