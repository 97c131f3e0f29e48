package postgres

import (
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
)

// locationRow columnas de ubicación tal como se leen de equipments/simcards.
type locationRow struct {
	kind              string
	depositID         *string
	technicianID      *string
	serviceProviderID *string
	holderID          *string // vehicle_id o equipment_id
	slot              *int
}

// dest punteros para Scan en el orden de las columnas.
func (l *locationRow) dest() []any {
	return []any{&l.kind, &l.depositID, &l.technicianID, &l.serviceProviderID, &l.holderID}
}

func (l *locationRow) location(op string) (entity.StorageLocation, error) {
	loc, err := entity.LocationFromColumns(entity.LocationColumns{
		Kind:              entity.LocationKind(l.kind),
		DepositID:         l.depositID,
		TechnicianID:      l.technicianID,
		ServiceProviderID: l.serviceProviderID,
		HolderID:          l.holderID,
		SlotNumber:        l.slot,
	})
	if err != nil {
		return entity.StorageLocation{}, &domain.DatabaseError{Op: op, Err: err}
	}
	return loc, nil
}

// locationFromTarget reconstruye una ubicación guardada como (tipo, destino, slot) en el histórico.
func locationFromTarget(kind string, target *string, slot *int) (entity.StorageLocation, error) {
	c := entity.LocationColumns{Kind: entity.LocationKind(kind), SlotNumber: slot}
	switch c.Kind {
	case entity.LocationDeposit:
		c.DepositID = target
	case entity.LocationTechnician:
		c.TechnicianID = target
	case entity.LocationServiceProvider:
		c.ServiceProviderID = target
	case entity.LocationInstalled:
		c.HolderID = target
	}
	return entity.LocationFromColumns(c)
}
