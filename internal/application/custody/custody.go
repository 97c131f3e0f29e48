// Package custody resuelve los destinos de guarda de un dispositivo: depósito por defecto del
// contratante y validación de depósito, técnico o prestador elegido en un formulario.
package custody

import (
	"context"
	"errors"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/repository"
)

// DefaultDeposit depósito master del contratante o, si no hay, el primero por nombre.
// ErrNoDefaultDeposit si no tiene ninguno.
func DefaultDeposit(ctx context.Context, repo repository.DepositRepository, contractorID string) (*entity.Deposit, error) {
	dep, err := repo.GetDefault(ctx, contractorID)
	if err != nil {
		return nil, err
	}
	if dep == nil {
		return nil, domain.ErrNoDefaultDeposit
	}
	return dep, nil
}

// ResolveDestination valida el destino enviado (tipo + id) y comprueba que pertenece al
// contratante que tendrá el dispositivo. Installed no se acepta: solo se llega instalando.
// allowed restringe los tipos aceptados; vacío acepta todos los de guarda.
func ResolveDestination(ctx context.Context, repos repository.Set, holderID string, kind entity.LocationKind, targetID string, allowed ...entity.LocationKind) (entity.StorageLocation, error) {
	if len(allowed) > 0 && !contains(allowed, kind) {
		return entity.StorageLocation{}, domain.FieldError("location", domain.MsgInvalidDestination)
	}
	loc, err := entity.ParseLocation(kind, targetID)
	if err != nil {
		if targetID == "" && kind.Valid() && kind != entity.LocationInstalled {
			return entity.StorageLocation{}, domain.FieldError("target_id", domain.MsgRequired)
		}
		return entity.StorageLocation{}, domain.FieldError("location", domain.MsgInvalidDestination)
	}

	var owner string
	var blocked bool
	switch kind {
	case entity.LocationDeposit:
		d, err := repos.Deposits.GetByID(ctx, targetID)
		if err != nil {
			return entity.StorageLocation{}, notFoundAsField(err)
		}
		owner, blocked = d.ContractorID, d.Blocked
	case entity.LocationTechnician:
		t, err := repos.Technicians.GetByID(ctx, targetID)
		if err != nil {
			return entity.StorageLocation{}, notFoundAsField(err)
		}
		owner, blocked = t.ContractorID, t.Blocked
	case entity.LocationServiceProvider:
		p, err := repos.ServiceProviders.GetByID(ctx, targetID)
		if err != nil {
			return entity.StorageLocation{}, notFoundAsField(err)
		}
		owner, blocked = p.ContractorID, p.Blocked
	default:
		return loc, nil
	}
	if owner != holderID {
		return entity.StorageLocation{}, domain.FieldError("target_id", domain.MsgInvalidDestination)
	}
	if blocked {
		return entity.StorageLocation{}, domain.FieldError("target_id", domain.MsgBlocked)
	}
	return loc, nil
}

func notFoundAsField(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.FieldError("target_id", domain.MsgNotFound)
	}
	return err
}

func contains(list []entity.LocationKind, k entity.LocationKind) bool {
	for _, v := range list {
		if v == k {
			return true
		}
	}
	return false
}

// Custodians tipos de destino que son personas o lugares del contratante.
var Custodians = []entity.LocationKind{
	entity.LocationDeposit, entity.LocationTechnician, entity.LocationServiceProvider,
}
