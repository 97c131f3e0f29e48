// Package slots instala y retira SIM cards de los slots de un equipo.
package slots

import (
	"context"
	"errors"
	"time"

	"github.com/jeanheinriich/agendamentos-sub004/internal/application/audit"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/custody"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/ports"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/repository"
)

// SlotUseCase casos de uso de slots.
type SlotUseCase struct {
	repos    repository.Set
	txRunner ports.TxRunner
}

// NewSlotUseCase construye el caso de uso.
func NewSlotUseCase(repos repository.Set, txRunner ports.TxRunner) *SlotUseCase {
	return &SlotUseCase{repos: repos, txRunner: txRunner}
}

// List devuelve los slots del modelo del equipo, ocupados o vacíos, en orden.
func (uc *SlotUseCase) List(ctx context.Context, actor dto.Actor, equipmentID string) ([]dto.SlotResponse, error) {
	eq, err := uc.repos.Equipments.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if actor.ContractorID != eq.ContractorID && actor.ContractorID != eq.Holder() {
		return nil, domain.ErrNotFound
	}
	model, err := uc.repos.Models.GetByID(ctx, eq.ModelID)
	if err != nil {
		return nil, err
	}
	cards, err := uc.repos.SimCards.ListByEquipment(ctx, eq.ID)
	if err != nil {
		return nil, err
	}
	bySlot := make(map[int]*entity.SimCard, len(cards))
	for _, c := range cards {
		bySlot[c.Location.Slot()] = c
	}
	out := make([]dto.SlotResponse, 0, model.MaxSimCards)
	for n := 1; n <= model.MaxSimCards; n++ {
		slot := dto.SlotResponse{SlotNumber: n}
		if c, ok := bySlot[n]; ok {
			r := dto.FromSimCard(c)
			slot.SimCard = &r
		}
		out = append(out, slot)
	}
	return out, nil
}

// Attach instala la SIM card en el slot. El índice único (equipment_id, slot_number) resuelve
// la carrera entre dos instalaciones simultáneas: la segunda recibe ErrAlreadyInUse.
func (uc *SlotUseCase) Attach(ctx context.Context, actor dto.Actor, equipmentID string, slot int, simCardID string) (*dto.SimCardResponse, error) {
	var card *entity.SimCard
	err := uc.txRunner.Run(ctx, func(repos repository.Set) error {
		eq, err := repos.Equipments.GetForUpdate(ctx, equipmentID)
		if err != nil {
			return err
		}
		if eq.Holder() != actor.ContractorID {
			return domain.ErrForbidden
		}
		model, err := repos.Models.GetByID(ctx, eq.ModelID)
		if err != nil {
			return err
		}
		if slot < 1 || slot > model.MaxSimCards {
			return domain.FieldError("slot_number", domain.MsgOutOfRange)
		}
		if eq.Blocked {
			return domain.FieldError("equipment_id", domain.MsgBlocked)
		}
		if eq.Location.Kind() == entity.LocationReturned {
			return domain.FieldError("equipment_id", domain.MsgInvalidLocation)
		}
		blocked, err := repos.Suppliers.IsBlocked(ctx, eq.SupplierID)
		if err != nil {
			return err
		}
		if blocked {
			return domain.FieldError("equipment_id", domain.MsgBlocked)
		}

		card, err = repos.SimCards.GetForUpdate(ctx, simCardID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.FieldError("simcard_id", domain.MsgNotFound)
		}
		if err != nil {
			return err
		}
		if card.Holder() != actor.ContractorID {
			return domain.FieldError("simcard_id", domain.MsgNotHolder)
		}
		if card.Blocked {
			return domain.FieldError("simcard_id", domain.MsgBlocked)
		}
		if card.Location.Kind() == entity.LocationInstalled {
			return domain.FieldError("simcard_id", domain.MsgInstalled)
		}
		if !card.Location.Kind().Stored() {
			return domain.FieldError("simcard_id", domain.MsgInvalidLocation)
		}

		now := time.Now()
		card.Location = entity.InSlot(eq.ID, slot)
		card.UpdatedAt = now
		if err := repos.SimCards.Update(ctx, card); err != nil {
			return err
		}
		return audit.Record(ctx, repos.History, actor, audit.SimCard(card, entity.ActionAttached).WithNotes(eq.SerialNumber), now)
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromSimCard(card)
	return &out, nil
}

// Detach retira la SIM card del slot y la guarda en un depósito, técnico o prestador del actor.
func (uc *SlotUseCase) Detach(ctx context.Context, actor dto.Actor, equipmentID string, slot int, dest dto.LocationInput) (*dto.SimCardResponse, error) {
	var card *entity.SimCard
	err := uc.txRunner.Run(ctx, func(repos repository.Set) error {
		eq, err := repos.Equipments.GetForUpdate(ctx, equipmentID)
		if err != nil {
			return err
		}
		if eq.Holder() != actor.ContractorID {
			return domain.ErrForbidden
		}
		cards, err := repos.SimCards.ListByEquipment(ctx, eq.ID)
		if err != nil {
			return err
		}
		for _, c := range cards {
			if c.Location.Slot() == slot {
				card = c
				break
			}
		}
		if card == nil {
			return domain.FieldError("slot_number", domain.MsgSlotEmpty)
		}
		if card, err = repos.SimCards.GetForUpdate(ctx, card.ID); err != nil {
			return err
		}
		loc, err := custody.ResolveDestination(ctx, repos, actor.ContractorID, entity.LocationKind(dest.Kind), dest.TargetID, custody.Custodians...)
		if err != nil {
			return err
		}
		now := time.Now()
		card.Location = loc
		card.UpdatedAt = now
		if err := repos.SimCards.Update(ctx, card); err != nil {
			return err
		}
		return audit.Record(ctx, repos.History, actor, audit.SimCard(card, entity.ActionDetached).WithNotes(eq.SerialNumber), now)
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromSimCard(card)
	return &out, nil
}
