package repository

import (
	"context"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
)

// ContractorRepository puerto de lectura de contratantes (tenants).
type ContractorRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Contractor, error)
}

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
