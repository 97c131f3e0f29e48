package inventory

import (
	"context"

	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/repository"
)

// LocationUseCase describe dónde está un dispositivo con el nombre del custodio.
type LocationUseCase struct {
	repos repository.Set
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repos repository.Set) *LocationUseCase {
	return &LocationUseCase{repos: repos}
}

// StorageLocationOf devuelve la ubicación del dispositivo y el nombre del depósito, técnico,
// prestador, placa del vehículo o serie del equipo donde está.
func (uc *LocationUseCase) StorageLocationOf(ctx context.Context, actor dto.Actor, kind entity.DeviceKind, id string) (*dto.StorageLocationResponse, error) {
	var loc entity.StorageLocation
	switch kind {
	case entity.DeviceEquipment:
		eq, err := uc.repos.Equipments.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !canView(actor, eq.ContractorID, eq.Holder()) {
			return nil, domain.ErrNotFound
		}
		loc = eq.Location
	case entity.DeviceSimCard:
		card, err := uc.repos.SimCards.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !canView(actor, card.ContractorID, card.Holder()) {
			return nil, domain.ErrNotFound
		}
		loc = card.Location
	default:
		return nil, domain.ErrInvalidInput
	}
	desc, err := Describe(ctx, uc.repos, loc)
	if err != nil {
		return nil, err
	}
	return &dto.StorageLocationResponse{
		Kind:        string(loc.Kind()),
		TargetID:    loc.TargetID(),
		SlotNumber:  loc.Slot(),
		Description: desc,
	}, nil
}

// Describe nombre del custodio de la ubicación; vacío para mantenimiento y devolución.
func Describe(ctx context.Context, repos repository.Set, loc entity.StorageLocation) (string, error) {
	switch loc.Kind() {
	case entity.LocationDeposit:
		d, err := repos.Deposits.GetByID(ctx, loc.TargetID())
		if err != nil {
			return "", err
		}
		return d.Name, nil
	case entity.LocationTechnician:
		t, err := repos.Technicians.GetByID(ctx, loc.TargetID())
		if err != nil {
			return "", err
		}
		return t.Name, nil
	case entity.LocationServiceProvider:
		p, err := repos.ServiceProviders.GetByID(ctx, loc.TargetID())
		if err != nil {
			return "", err
		}
		return p.Name, nil
	case entity.LocationInstalled:
		if loc.Slot() > 0 {
			eq, err := repos.Equipments.GetByID(ctx, loc.TargetID())
			if err != nil {
				return "", err
			}
			return eq.SerialNumber, nil
		}
		v, err := repos.Vehicles.GetByID(ctx, loc.TargetID())
		if err != nil {
			return "", err
		}
		return v.Plate, nil
	}
	return "", nil
}
