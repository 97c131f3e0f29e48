package repository

import (
	"context"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
)

// DepositRepository define el puerto de persistencia para depósitos.
type DepositRepository interface {
	Create(ctx context.Context, deposit *entity.Deposit) error
	GetByID(ctx context.Context, id string) (*entity.Deposit, error)
	// GetDefault devuelve el depósito master del contratante o, si no hay, el primero por nombre.
	// nil si el contratante no tiene depósitos.
	GetDefault(ctx context.Context, contractorID string) (*entity.Deposit, error)
	ListByContractor(ctx context.Context, contractorID string, limit, offset int) ([]*entity.Deposit, error)
}

type TechnicianRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Technician, error)
	ListByContractor(ctx context.Context, contractorID string) ([]*entity.Technician, error)
}

type ServiceProviderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.ServiceProvider, error)
	ListByContractor(ctx context.Context, contractorID string) ([]*entity.ServiceProvider, error)
}

type VehicleRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Vehicle, error)
}

type SupplierRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	// IsBlocked true si el proveedor o su matriz están bloqueados.
	IsBlocked(ctx context.Context, id string) (bool, error)
}

type EquipmentModelRepository interface {
	GetByID(ctx context.Context, id string) (*entity.EquipmentModel, error)
}
