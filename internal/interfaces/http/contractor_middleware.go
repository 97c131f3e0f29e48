package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/rs/zerolog/log"
)

// contractorChecker es el contrato mínimo que necesita el middleware.
// Lo implementa *usecase.ContractorService.
type contractorChecker interface {
	IsActive(ctx context.Context, contractorID string) (bool, error)
}

// RequireActiveContractor rechaza a los contratantes bloqueados o inexistentes.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalContractorID).
//   - 403 CONTRACTOR_BLOCKED → contratante bloqueado o dado de baja.
//   - 503 CONTRACTOR_CHECK_FAILED → fallo de infraestructura al consultar la DB.
func RequireActiveContractor(checker contractorChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		contractorID := GetContractorID(c)
		if contractorID == "" {
			return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", domain.MsgUnauthorized, nil)
		}

		active, err := checker.IsActive(c.UserContext(), contractorID)
		if err != nil {
			log.Error().Err(err).Str("contractor_id", contractorID).Msg("verificar contratante")
			return writeError(c, fiber.StatusServiceUnavailable, "CONTRACTOR_CHECK_FAILED", domain.MsgDatabaseError, nil)
		}
		if !active {
			return writeError(c, fiber.StatusForbidden, "CONTRACTOR_BLOCKED", domain.MsgBlocked, nil)
		}
		return c.Next()
	}
}
