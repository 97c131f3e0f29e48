package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jeanheinriich/agendamentos-sub004/internal/application/audit"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/custody"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/leasing"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/ports"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/repository"
)

// SimCardUseCase casos de uso de SIM cards.
type SimCardUseCase struct {
	repos    repository.Set
	txRunner ports.TxRunner
	leasing  *leasing.Service
}

// NewSimCardUseCase construye el caso de uso.
func NewSimCardUseCase(repos repository.Set, txRunner ports.TxRunner, svc *leasing.Service) *SimCardUseCase {
	return &SimCardUseCase{repos: repos, txRunner: txRunner, leasing: svc}
}

// Create da de alta una SIM card en el depósito indicado o en el depósito por defecto.
func (uc *SimCardUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateSimCardRequest) (*dto.SimCardResponse, error) {
	if err := checkSupplier(ctx, uc.repos.Suppliers, in.SupplierID); err != nil {
		return nil, err
	}
	loc, err := entryLocation(ctx, uc.repos, actor.ContractorID, in.DepositID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	card := &entity.SimCard{
		ID:           uuid.New().String(),
		ContractorID: actor.ContractorID,
		ICCID:        in.ICCID,
		PhoneNumber:  in.PhoneNumber,
		SupplierID:   in.SupplierID,
		Location:     loc,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.txRunner.Run(ctx, func(repos repository.Set) error {
		if err := repos.SimCards.Create(ctx, card); err != nil {
			return err
		}
		return audit.Record(ctx, repos.History, actor, audit.SimCard(card, entity.ActionCreated), now)
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromSimCard(card)
	return &out, nil
}

// Get devuelve la SIM card si el actor es su dueño o su arrendatario.
func (uc *SimCardUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.SimCardResponse, error) {
	card, err := uc.repos.SimCards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, card.ContractorID, card.Holder()) {
		return nil, domain.ErrNotFound
	}
	out := dto.FromSimCard(card)
	return &out, nil
}

// Update edita la SIM card y aplica la transición de comodato en la misma transacción.
func (uc *SimCardUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateSimCardRequest) (*dto.SimCardResponse, error) {
	var card *entity.SimCard
	err := uc.txRunner.Run(ctx, func(repos repository.Set) error {
		var err error
		card, err = repos.SimCards.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if card.ContractorID != actor.ContractorID {
			return domain.ErrForbidden
		}
		now := time.Now()
		changed := false
		if in.ICCID != nil && *in.ICCID != card.ICCID {
			card.ICCID = *in.ICCID
			changed = true
		}
		if in.PhoneNumber != nil && *in.PhoneNumber != card.PhoneNumber {
			card.PhoneNumber = *in.PhoneNumber
			changed = true
		}
		if in.Lease != nil {
			if _, err := uc.leasing.ApplySimCard(ctx, repos, actor, card, leasing.InputFromDTO(*in.Lease), now); err != nil {
				return err
			}
		}
		card.UpdatedAt = now
		if err := repos.SimCards.Update(ctx, card); err != nil {
			return err
		}
		if changed {
			return audit.Record(ctx, repos.History, actor, audit.SimCard(card, entity.ActionUpdated), now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromSimCard(card)
	return &out, nil
}

// Delete elimina la SIM card y sus comodatos. Si estaba en un slot, el slot queda libre.
func (uc *SimCardUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	return uc.txRunner.Run(ctx, func(repos repository.Set) error {
		card, err := repos.SimCards.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if card.ContractorID != actor.ContractorID {
			return domain.ErrForbidden
		}
		if card.LeasingInProgress {
			return domain.FieldError("leasing_in_progress", domain.MsgLeased)
		}
		if err := repos.SimCardLeases.DeleteByItem(ctx, card.ID); err != nil {
			return err
		}
		return repos.SimCards.Delete(ctx, card.ID)
	})
}

// ToggleBlock bloquea o desbloquea la SIM card.
func (uc *SimCardUseCase) ToggleBlock(ctx context.Context, actor dto.Actor, id string) (*dto.SimCardResponse, error) {
	var card *entity.SimCard
	err := uc.txRunner.Run(ctx, func(repos repository.Set) error {
		var err error
		card, err = repos.SimCards.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if card.ContractorID != actor.ContractorID {
			return domain.ErrForbidden
		}
		now := time.Now()
		card.Blocked = !card.Blocked
		card.UpdatedAt = now
		if err := repos.SimCards.Update(ctx, card); err != nil {
			return err
		}
		return audit.Record(ctx, repos.History, actor, audit.SimCard(card, blockAction(card.Blocked)), now)
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromSimCard(card)
	return &out, nil
}

// Relocate mueve una SIM card guardada. Las instaladas se retiran por el slot del equipo.
func (uc *SimCardUseCase) Relocate(ctx context.Context, actor dto.Actor, id string, dest dto.LocationInput) (*dto.SimCardResponse, error) {
	var card *entity.SimCard
	err := uc.txRunner.Run(ctx, func(repos repository.Set) error {
		var err error
		card, err = repos.SimCards.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if card.Holder() != actor.ContractorID {
			return domain.ErrForbidden
		}
		if card.Location.Kind() == entity.LocationInstalled {
			return domain.FieldError("storage_location", domain.MsgInstalled)
		}
		kind := entity.LocationKind(dest.Kind)
		if kind == entity.LocationReturned && card.LeasingInProgress {
			return domain.FieldError("location", domain.MsgLeased)
		}
		loc, err := custody.ResolveDestination(ctx, repos, actor.ContractorID, kind, dest.TargetID)
		if err != nil {
			return err
		}
		now := time.Now()
		card.Location = loc
		card.UpdatedAt = now
		if err := repos.SimCards.Update(ctx, card); err != nil {
			return err
		}
		return audit.Record(ctx, repos.History, actor, audit.SimCard(card, moveAction(kind)), now)
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromSimCard(card)
	return &out, nil
}
