package repository

import (
	"context"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
)

// DeviceFilter filtros de los listados paginados de dispositivos (formato DataTables).
type DeviceFilter struct {
	HolderID  string              // contratante que tiene el dispositivo (dueño sin comodato o arrendatario)
	Location  entity.LocationKind // opcional
	TargetID  string              // opcional: depósito/técnico/prestador/vehículo/equipo
	Search    string              // texto libre sobre serie, IMEI, ICCID, número
	Blocked   *bool
	OrderBy   string // nombre lógico de columna; el adaptador aplica lista blanca
	Desc      bool
	Start     int
	Length    int
}

// Page resultado paginado: Total sin filtros de búsqueda, Filtered con ellos.
type Page[T any] struct {
	Total    int
	Filtered int
	Rows     []T
}

// EquipmentListItem fila del listado de equipos con nombres ya resueltos.
type EquipmentListItem struct {
	Equipment      entity.Equipment
	ModelName      string
	SupplierName   string
	OwnerName      string
	AssignedToName string
	LocationName   string
}

// SimCardListItem fila del listado de SIM cards.
type SimCardListItem struct {
	SimCard        entity.SimCard
	SupplierName   string
	OwnerName      string
	AssignedToName string
	LocationName   string
}

// EquipmentRepository define el puerto de persistencia para equipos.
type EquipmentRepository interface {
	Create(ctx context.Context, equipment *entity.Equipment) error
	GetByID(ctx context.Context, id string) (*entity.Equipment, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene sentido dentro de una tx.
	GetForUpdate(ctx context.Context, id string) (*entity.Equipment, error)
	Update(ctx context.Context, equipment *entity.Equipment) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter DeviceFilter) (*Page[EquipmentListItem], error)
}

// SimCardRepository define el puerto de persistencia para SIM cards.
type SimCardRepository interface {
	Create(ctx context.Context, card *entity.SimCard) error
	GetByID(ctx context.Context, id string) (*entity.SimCard, error)
	GetForUpdate(ctx context.Context, id string) (*entity.SimCard, error)
	// Update persiste la SIM card. Un slot ocupado devuelve domain.ErrAlreadyInUse.
	Update(ctx context.Context, card *entity.SimCard) error
	Delete(ctx context.Context, id string) error
	// ListByEquipment SIM cards instaladas en el equipo, ordenadas por slot.
	ListByEquipment(ctx context.Context, equipmentID string) ([]*entity.SimCard, error)
	Search(ctx context.Context, filter DeviceFilter) (*Page[SimCardListItem], error)
}
