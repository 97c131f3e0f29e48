package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/repository"
)

// ContractorService verifica el estado del contratante del token.
type ContractorService struct {
	repo repository.ContractorRepository
}

// NewContractorService construye el servicio.
func NewContractorService(repo repository.ContractorRepository) *ContractorService {
	return &ContractorService{repo: repo}
}

// IsActive informa si el contratante existe y no está bloqueado.
// Devuelve false (sin error) si no existe; error solo ante fallos de infraestructura.
func (s *ContractorService) IsActive(ctx context.Context, contractorID string) (bool, error) {
	if contractorID == "" {
		return false, fmt.Errorf("contractor: contractorID es obligatorio")
	}
	c, err := s.repo.GetByID(ctx, contractorID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !c.Blocked, nil
}
