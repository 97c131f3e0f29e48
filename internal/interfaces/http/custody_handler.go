package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/usecase"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
)

// CustodyHandler depósitos, técnicos y prestadores de servicio (protegido).
type CustodyHandler struct {
	uc *usecase.CustodyUseCase
}

// NewCustodyHandler construye el handler.
func NewCustodyHandler(uc *usecase.CustodyUseCase) *CustodyHandler {
	return &CustodyHandler{uc: uc}
}

// CreateDeposit godoc
// @Summary      Crear depósito
// @Tags         custody
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDepositRequest  true  "Datos del depósito"
// @Success      201   {object}  dto.ResultResponse{data=dto.DepositResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/deposits [post]
func (h *CustodyHandler) CreateDeposit(c *fiber.Ctx) error {
	var in dto.CreateDepositRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateDeposit(c.UserContext(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return writeOK(c, fiber.StatusCreated, domain.MsgSaved, out)
}

// ListDeposits godoc
// @Summary      Listar depósitos
// @Description  Depósitos no bloqueados del contratante; el master primero.
// @Tags         custody
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.DepositListResponse
// @Router       /api/deposits [get]
func (h *CustodyHandler) ListDeposits(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, &page); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListDeposits(c.UserContext(), GetActor(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListTechnicians godoc
// @Summary      Listar técnicos
// @Tags         custody
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NamedResponse
// @Router       /api/technicians [get]
func (h *CustodyHandler) ListTechnicians(c *fiber.Ctx) error {
	out, err := h.uc.ListTechnicians(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListServiceProviders godoc
// @Summary      Listar prestadores de servicio
// @Tags         custody
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NamedResponse
// @Router       /api/service-providers [get]
func (h *CustodyHandler) ListServiceProviders(c *fiber.Ctx) error {
	out, err := h.uc.ListServiceProviders(c.UserContext(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
