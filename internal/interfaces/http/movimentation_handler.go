package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/movimentation"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
)

// MovimentationHandler asistente de traslado / devolución en lote.
type MovimentationHandler struct {
	uc *movimentation.UseCase
}

// NewMovimentationHandler construye el handler.
func NewMovimentationHandler(uc *movimentation.UseCase) *MovimentationHandler {
	return &MovimentationHandler{uc: uc}
}

// Start godoc
// @Summary      Iniciar asistente de movimiento
// @Tags         movimentations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartMovimentationRequest  true  "transfer | return"
// @Success      201   {object}  dto.MovimentationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movimentations [post]
func (h *MovimentationHandler) Start(c *fiber.Ctx) error {
	var in dto.StartMovimentationRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Start(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Estado del asistente
// @Tags         movimentations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del asistente"
// @Success      200  {object}  dto.MovimentationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimentations/{id} [get]
func (h *MovimentationHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar asistente
// @Tags         movimentations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del asistente"
// @Success      200  {object}  dto.ResultResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movimentations/{id} [delete]
func (h *MovimentationHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return writeOK(c, fiber.StatusOK, domain.MsgDeleted, nil)
}

// SelectOrigin godoc
// @Summary      Paso 1: tipo de dispositivo y origen
// @Tags         movimentations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del asistente"
// @Param        body  body  dto.SelectOriginRequest  true  "Origen"
// @Success      200   {object}  dto.MovimentationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movimentations/{id}/origin [put]
func (h *MovimentationHandler) SelectOrigin(c *fiber.Ctx) error {
	var in dto.SelectOriginRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.SelectOrigin(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Candidates godoc
// @Summary      Dispositivos elegibles en el origen
// @Tags         movimentations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del asistente"
// @Success      200  {array}   dto.DeviceCandidate
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/movimentations/{id}/candidates [get]
func (h *MovimentationHandler) Candidates(c *fiber.Ctx) error {
	out, err := h.uc.Candidates(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SelectDevices godoc
// @Summary      Paso 2: dispositivos
// @Tags         movimentations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del asistente"
// @Param        body  body  dto.SelectDevicesRequest  true  "IDs elegidos"
// @Success      200   {object}  dto.MovimentationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movimentations/{id}/devices [put]
func (h *MovimentationHandler) SelectDevices(c *fiber.Ctx) error {
	var in dto.SelectDevicesRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.SelectDevices(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SelectDestination godoc
// @Summary      Paso 3: destino (solo traslado)
// @Tags         movimentations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del asistente"
// @Param        body  body  dto.SelectDestinationRequest  true  "Destino"
// @Success      200   {object}  dto.MovimentationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movimentations/{id}/destination [put]
func (h *MovimentationHandler) SelectDestination(c *fiber.Ctx) error {
	var in dto.SelectDestinationRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.SelectDestination(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar movimiento
// @Description  Mueve todos los dispositivos en una sola transacción; si uno falla no se mueve ninguno.
// @Tags         movimentations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del asistente"
// @Success      200  {object}  dto.ResultResponse{data=dto.MovimentationResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/movimentations/{id}/confirm [post]
func (h *MovimentationHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.Confirm(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return writeOK(c, fiber.StatusOK, domain.MsgMoved, out)
}
