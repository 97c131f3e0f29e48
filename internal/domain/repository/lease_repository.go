package repository

import (
	"context"
	"time"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
)

// LeaseRepository puerto de persistencia de comodatos. Hay una instancia por tipo de dispositivo.
type LeaseRepository interface {
	Create(ctx context.Context, lease *entity.Lease) error
	// GetActive comodato abierto del dispositivo con ese arrendatario; nil si no hay.
	GetActive(ctx context.Context, itemID, assignedToID string) (*entity.Lease, error)
	// Update actualiza los campos modificables (inicio, carencia, valor, notas).
	Update(ctx context.Context, lease *entity.Lease) error
	// Close fija end_date del comodato abierto y devuelve las filas afectadas.
	Close(ctx context.Context, itemID, assignedToID string, endDate time.Time) (int64, error)
	DeleteByItem(ctx context.Context, itemID string) error
	// ListGraceEnding comodatos abiertos cuya carencia termina en el día indicado.
	ListGraceEnding(ctx context.Context, day time.Time) ([]*entity.Lease, error)
}

// InstallationRepository puerto de persistencia de instalaciones en vehículos.
type InstallationRepository interface {
	Open(ctx context.Context, installation *entity.Installation) error
	GetOpen(ctx context.Context, equipmentID string) (*entity.Installation, error)
	Close(ctx context.Context, equipmentID string, at time.Time) (int64, error)
	// DeleteSideRecords elimina integraciones y autorizaciones ligadas a la instalación.
	DeleteSideRecords(ctx context.Context, equipmentID string) error
	DeleteByEquipment(ctx context.Context, equipmentID string) error
}
