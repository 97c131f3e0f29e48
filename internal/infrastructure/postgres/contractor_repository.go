package postgres

import (
	"context"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/repository"
)

// Asegura que ContractorRepo implementa repository.ContractorRepository.
var _ repository.ContractorRepository = (*ContractorRepo)(nil)

// ContractorRepo implementación del puerto ContractorRepository sobre PostgreSQL.
type ContractorRepo struct {
	q Querier
}

// NewContractorRepository construye el adaptador de lectura de contratantes.
func NewContractorRepository(q Querier) *ContractorRepo {
	return &ContractorRepo{q: q}
}

// GetByID obtiene un contratante por ID.
func (r *ContractorRepo) GetByID(ctx context.Context, id string) (*entity.Contractor, error) {
	query := `
		SELECT id, name, blocked, created_at, updated_at
		FROM contractors WHERE id = $1`
	var c entity.Contractor
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Blocked, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, dbError("get contractor", err)
	}
	return &c, nil
}
