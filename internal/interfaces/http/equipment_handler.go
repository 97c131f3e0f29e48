package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/inventory"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/reports"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
)

// EquipmentHandler CRUD, instalación, movimiento, listado, PDF e histórico de equipos.
type EquipmentHandler struct {
	uc        *inventory.EquipmentUseCase
	locations *inventory.LocationUseCase
	reports   *reports.ReportUseCase
}

// NewEquipmentHandler construye el handler.
func NewEquipmentHandler(uc *inventory.EquipmentUseCase, locations *inventory.LocationUseCase, rep *reports.ReportUseCase) *EquipmentHandler {
	return &EquipmentHandler{uc: uc, locations: locations, reports: rep}
}

// List godoc
// @Summary      Listar equipos (grilla)
// @Description  Equipos que el contratante tiene: propios sin comodato y los recibidos en comodato.
// @Tags         equipments
// @Security     Bearer
// @Produce      json
// @Param        draw       query  int     false  "Contador de la grilla"
// @Param        start      query  int     false  "Offset"  default(0)
// @Param        length     query  int     false  "Filas"   default(25)
// @Param        search     query  string  false  "Nº de série, IMEI o modelo"
// @Param        order_by   query  string  false  "serial_number, imei, model, supplier, location, created_at"
// @Param        order_dir  query  string  false  "asc | desc"
// @Param        location   query  string  false  "StoredOnDeposit, Installed, ..."
// @Param        target_id  query  string  false  "Depósito, técnico, prestador o vehículo"
// @Param        blocked    query  bool    false  "Filtrar bloqueados"
// @Success      200  {object}  dto.DataTablesResponse[dto.EquipmentRow]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/equipments [get]
func (h *EquipmentHandler) List(c *fiber.Ctx) error {
	var req dto.DataTablesRequest
	if err := bindQuery(c, &req); err != nil {
		return respondError(c, err)
	}
	out, err := h.reports.SearchEquipments(c.UserContext(), GetActor(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Imprimir listado de equipos
// @Tags         equipments
// @Security     Bearer
// @Produce      application/pdf
// @Param        search     query  string  false  "Mismos filtros de la grilla"
// @Param        location   query  string  false  "StoredOnDeposit, Installed, ..."
// @Param        target_id  query  string  false  "Destino de la ubicación"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/equipments/pdf [get]
func (h *EquipmentHandler) PDF(c *fiber.Ctx) error {
	var req dto.DataTablesRequest
	if err := bindQuery(c, &req); err != nil {
		return respondError(c, err)
	}
	data, filename, err := h.reports.EquipmentsPDF(c.UserContext(), GetActor(c), req, Lang(c))
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, data, filename)
}

// Create godoc
// @Summary      Registrar equipo
// @Description  El equipo entra en el depósito indicado o en el depósito por defecto del contratante.
// @Tags         equipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEquipmentRequest  true  "Datos del equipo"
// @Success      201   {object}  dto.ResultResponse{data=dto.EquipmentResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/equipments [post]
func (h *EquipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEquipmentRequest
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
// @Summary      Obtener equipo
// @Tags         equipments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del equipo"
// @Success      200  {object}  dto.EquipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipments/{id} [get]
func (h *EquipmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar equipo
// @Description  Edita los datos del equipo y aplica la transición de comodato en la misma transacción.
// @Tags         equipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del equipo"
// @Param        body  body  dto.UpdateEquipmentRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ResultResponse{data=dto.EquipmentResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/equipments/{id} [put]
func (h *EquipmentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEquipmentRequest
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
// @Summary      Eliminar equipo
// @Description  Retira las SIM cards de los slots y borra instalaciones y comodatos cerrados.
// @Tags         equipments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del equipo"
// @Success      200  {object}  dto.ResultResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/equipments/{id} [delete]
func (h *EquipmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return writeOK(c, fiber.StatusOK, domain.MsgDeleted, nil)
}

// ToggleBlock godoc
// @Summary      Bloquear / desbloquear equipo
// @Tags         equipments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del equipo"
// @Success      200  {object}  dto.ResultResponse{data=dto.EquipmentResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipments/{id}/block [put]
func (h *EquipmentHandler) ToggleBlock(c *fiber.Ctx) error {
	out, err := h.uc.ToggleBlock(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return writeOK(c, fiber.StatusOK, domain.MsgSaved, out)
}

// Install godoc
// @Summary      Instalar equipo en vehículo
// @Tags         equipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del equipo"
// @Param        body  body  dto.InstallRequest  true  "Vehículo"
// @Success      200   {object}  dto.ResultResponse{data=dto.EquipmentResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/equipments/{id}/install [post]
func (h *EquipmentHandler) Install(c *fiber.Ctx) error {
	var in dto.InstallRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Install(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return writeOK(c, fiber.StatusOK, domain.MsgSaved, out)
}

// Uninstall godoc
// @Summary      Desinstalar equipo
// @Tags         equipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del equipo"
// @Param        body  body  dto.LocationInput  true  "Destino del equipo retirado"
// @Success      200   {object}  dto.ResultResponse{data=dto.EquipmentResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/equipments/{id}/uninstall [post]
func (h *EquipmentHandler) Uninstall(c *fiber.Ctx) error {
	var in dto.LocationInput
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Uninstall(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return writeOK(c, fiber.StatusOK, domain.MsgSaved, out)
}

// Relocate godoc
// @Summary      Mover equipo guardado
// @Tags         equipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del equipo"
// @Param        body  body  dto.LocationInput  true  "Nueva ubicación"
// @Success      200   {object}  dto.ResultResponse{data=dto.EquipmentResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/equipments/{id}/relocate [post]
func (h *EquipmentHandler) Relocate(c *fiber.Ctx) error {
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
// @Summary      Ubicación del equipo
// @Tags         equipments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del equipo"
// @Success      200  {object}  dto.StorageLocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipments/{id}/storage-location [get]
func (h *EquipmentHandler) StorageLocation(c *fiber.Ctx) error {
	out, err := h.locations.StorageLocationOf(c.UserContext(), GetActor(c), entity.DeviceEquipment, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Histórico del equipo
// @Tags         equipments
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del equipo"
// @Param        start   query  int     false  "Offset"
// @Param        length  query  int     false  "Filas"
// @Success      200  {object}  dto.DataTablesResponse[dto.HistoryRow]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/equipments/{id}/history [get]
func (h *EquipmentHandler) History(c *fiber.Ctx) error {
	return history(c, h.reports, entity.DeviceEquipment)
}
