package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/inventory"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/reports"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
)

// SimCardHandler CRUD, movimiento, listado, PDF e histórico de SIM cards.
type SimCardHandler struct {
	uc        *inventory.SimCardUseCase
	locations *inventory.LocationUseCase
	reports   *reports.ReportUseCase
}

// NewSimCardHandler construye el handler.
func NewSimCardHandler(uc *inventory.SimCardUseCase, locations *inventory.LocationUseCase, rep *reports.ReportUseCase) *SimCardHandler {
	return &SimCardHandler{uc: uc, locations: locations, reports: rep}
}

// List godoc
// @Summary      Listar SIM cards (grilla)
// @Tags         simcards
// @Security     Bearer
// @Produce      json
// @Param        draw       query  int     false  "Contador de la grilla"
// @Param        start      query  int     false  "Offset"  default(0)
// @Param        length     query  int     false  "Filas"   default(25)
// @Param        search     query  string  false  "ICCID, teléfono u operadora"
// @Param        order_by   query  string  false  "iccid, phone_number, supplier, location, created_at"
// @Param        order_dir  query  string  false  "asc | desc"
// @Param        location   query  string  false  "StoredOnDeposit, Installed, ..."
// @Param        target_id  query  string  false  "Depósito, técnico, prestador o equipo"
// @Param        blocked    query  bool    false  "Filtrar bloqueadas"
// @Success      200  {object}  dto.DataTablesResponse[dto.SimCardRow]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/simcards [get]
func (h *SimCardHandler) List(c *fiber.Ctx) error {
	var req dto.DataTablesRequest
	if err := bindQuery(c, &req); err != nil {
		return respondError(c, err)
	}
	out, err := h.reports.SearchSimCards(c.UserContext(), GetActor(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Imprimir listado de SIM cards
// @Tags         simcards
// @Security     Bearer
// @Produce      application/pdf
// @Param        search     query  string  false  "Mismos filtros de la grilla"
// @Param        location   query  string  false  "StoredOnDeposit, Installed, ..."
// @Param        target_id  query  string  false  "Destino de la ubicación"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/simcards/pdf [get]
func (h *SimCardHandler) PDF(c *fiber.Ctx) error {
	var req dto.DataTablesRequest
	if err := bindQuery(c, &req); err != nil {
		return respondError(c, err)
	}
	data, filename, err := h.reports.SimCardsPDF(c.UserContext(), GetActor(c), req, Lang(c))
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, data, filename)
}

// Create godoc
// @Summary      Registrar SIM card
// @Tags         simcards
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSimCardRequest  true  "Datos de la SIM card"
// @Success      201   {object}  dto.ResultResponse{data=dto.SimCardResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/simcards [post]
func (h *SimCardHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSimCardRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return writeOK(c, fiber.StatusCreated, domain.MsgSaved, out)
}

// GetByID godoc
// @Summary      Obtener SIM card
// @Tags         simcards
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la SIM card"
// @Success      200  {object}  dto.SimCardResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/simcards/{id} [get]
func (h *SimCardHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar SIM card
// @Tags         simcards
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la SIM card"
// @Param        body  body  dto.UpdateSimCardRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ResultResponse{data=dto.SimCardResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/simcards/{id} [put]
func (h *SimCardHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSimCardRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return writeOK(c, fiber.StatusOK, domain.MsgSaved, out)
}

// Delete godoc
// @Summary      Eliminar SIM card
// @Tags         simcards
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la SIM card"
// @Success      200  {object}  dto.ResultResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/simcards/{id} [delete]
func (h *SimCardHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return writeOK(c, fiber.StatusOK, domain.MsgDeleted, nil)
}

// ToggleBlock godoc
// @Summary      Bloquear / desbloquear SIM card
// @Tags         simcards
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la SIM card"
// @Success      200  {object}  dto.ResultResponse{data=dto.SimCardResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/simcards/{id}/block [put]
func (h *SimCardHandler) ToggleBlock(c *fiber.Ctx) error {
	out, err := h.uc.ToggleBlock(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return writeOK(c, fiber.StatusOK, domain.MsgSaved, out)
}

// Relocate godoc
// @Summary      Mover SIM card
// @Description  Una SIM card instalada se retira primero del slot.
// @Tags         simcards
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la SIM card"
// @Param        body  body  dto.LocationInput  true  "Nueva ubicación"
// @Success      200   {object}  dto.ResultResponse{data=dto.SimCardResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/simcards/{id}/relocate [post]
func (h *SimCardHandler) Relocate(c *fiber.Ctx) error {
	var in dto.LocationInput
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Relocate(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return writeOK(c, fiber.StatusOK, domain.MsgMoved, out)
}

// StorageLocation godoc
// @Summary      Ubicación de la SIM card
// @Tags         simcards
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la SIM card"
// @Success      200  {object}  dto.StorageLocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/simcards/{id}/storage-location [get]
func (h *SimCardHandler) StorageLocation(c *fiber.Ctx) error {
	out, err := h.locations.StorageLocationOf(c.UserContext(), GetActor(c), entity.DeviceSimCard, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Histórico de la SIM card
// @Tags         simcards
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la SIM card"
// @Param        start   query  int     false  "Offset"
// @Param        length  query  int     false  "Filas"
// @Success      200  {object}  dto.DataTablesResponse[dto.HistoryRow]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/simcards/{id}/history [get]
func (h *SimCardHandler) History(c *fiber.Ctx) error {
	return history(c, h.reports, entity.DeviceSimCard)
}
