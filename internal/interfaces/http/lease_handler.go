package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/leasing"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
)

// LeaseHandler consultas sobre comodatos.
type LeaseHandler struct {
	grace *leasing.GraceEndingUseCase
	now   func() time.Time
}

// NewLeaseHandler construye el handler.
func NewLeaseHandler(grace *leasing.GraceEndingUseCase) *LeaseHandler {
	return &LeaseHandler{grace: grace, now: time.Now}
}

// GraceEnding godoc
// @Summary      Comodatos cuya carencia termina en la fecha
// @Description  Comodatos abiertos del contratante (como comodante) cuyo período de carencia vence ese día.
// @Tags         leases
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "YYYY-MM-DD (hoy si se omite)"
// @Success      200   {array}   dto.LeaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/leases/grace-ending [get]
func (h *LeaseHandler) GraceEnding(c *fiber.Ctx) error {
	day := h.now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return respondError(c, domain.FieldError("date", domain.MsgInvalidFormat))
		}
		day = parsed
	}
	out, err := h.grace.List(c.UserContext(), GetContractorID(c), day)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
