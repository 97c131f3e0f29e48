package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/slots"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
)

// SlotHandler slots de SIM card de un equipo.
type SlotHandler struct {
	uc *slots.SlotUseCase
}

// NewSlotHandler construye el handler.
func NewSlotHandler(uc *slots.SlotUseCase) *SlotHandler {
	return &SlotHandler{uc: uc}
}

// List godoc
// @Summary      Slots del equipo
// @Description  Un elemento por slot del modelo, con la SIM card instalada si la hay.
// @Tags         slots
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del equipo"
// @Success      200  {array}   dto.SlotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipments/{id}/slots [get]
func (h *SlotHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Attach godoc
// @Summary      Instalar SIM card en un slot
// @Tags         slots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del equipo"
// @Param        slot  path  int                       true  "Número de slot"
// @Param        body  body  dto.AttachSimCardRequest  true  "SIM card"
// @Success      200   {object}  dto.ResultResponse{data=dto.SimCardResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/equipments/{id}/slots/{slot} [post]
func (h *SlotHandler) Attach(c *fiber.Ctx) error {
	slot, err := slotParam(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.AttachSimCardRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Attach(c.UserContext(), GetActor(c), c.Params("id"), slot, in.SimCardID)
	if err != nil {
		return respondError(c, err)
	}
	return writeOK(c, fiber.StatusOK, domain.MsgSaved, out)
}

// Detach godoc
// @Summary      Retirar SIM card de un slot
// @Tags         slots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del equipo"
// @Param        slot  path  int                true  "Número de slot"
// @Param        body  body  dto.LocationInput  true  "Destino de la SIM card"
// @Success      200   {object}  dto.ResultResponse{data=dto.SimCardResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/equipments/{id}/slots/{slot} [delete]
func (h *SlotHandler) Detach(c *fiber.Ctx) error {
	slot, err := slotParam(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.LocationInput
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Detach(c.UserContext(), GetActor(c), c.Params("id"), slot, in)
	if err != nil {
		return respondError(c, err)
	}
	return writeOK(c, fiber.StatusOK, domain.MsgSaved, out)
}
