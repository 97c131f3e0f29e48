package movimentation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jeanheinriich/agendamentos-sub004/internal/application/audit"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/custody"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/ports"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/repository"
)

var storedKinds = []entity.LocationKind{
	entity.LocationDeposit, entity.LocationTechnician, entity.LocationServiceProvider, entity.LocationMaintenance,
}

// UseCase pasos del asistente de movimentación.
type UseCase struct {
	repos    repository.Set
	txRunner ports.TxRunner
	store    ports.WizardStore
}

// NewUseCase construye el caso de uso.
func NewUseCase(repos repository.Set, txRunner ports.TxRunner, store ports.WizardStore) *UseCase {
	return &UseCase{repos: repos, txRunner: txRunner, store: store}
}

// Start crea un asistente nuevo.
func (uc *UseCase) Start(ctx context.Context, actor dto.Actor, in dto.StartMovimentationRequest) (*dto.MovimentationResponse, error) {
	w, err := NewWizard(uuid.New().String(), actor.ContractorID, actor.UserID, Mode(in.Mode), time.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.save(ctx, w); err != nil {
		return nil, err
	}
	return toResponse(w), nil
}

// Get devuelve el estado del asistente.
func (uc *UseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.MovimentationResponse, error) {
	w, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toResponse(w), nil
}

// Cancel descarta el asistente.
func (uc *UseCase) Cancel(ctx context.Context, actor dto.Actor, id string) error {
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	return uc.store.Delete(ctx, id)
}

// SelectOrigin paso 1: tipo de dispositivo y ubicación actual. Instalados no se mueven por aquí.
func (uc *UseCase) SelectOrigin(ctx context.Context, actor dto.Actor, id string, in dto.SelectOriginRequest) (*dto.MovimentationResponse, error) {
	w, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	kind := entity.LocationKind(in.Location)
	if kind == entity.LocationInstalled {
		return nil, domain.FieldError("location", domain.MsgInstalled)
	}
	origin, err := custody.ResolveDestination(ctx, uc.repos, actor.ContractorID, kind, in.TargetID, storedKinds...)
	if err != nil {
		return nil, err
	}
	if err := w.SetOrigin(entity.DeviceKind(in.DeviceKind), origin, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.save(ctx, w); err != nil {
		return nil, err
	}
	return toResponse(w), nil
}

// Candidates dispositivos del actor que están en el origen y no están bloqueados.
func (uc *UseCase) Candidates(ctx context.Context, actor dto.Actor, id string) ([]dto.DeviceCandidate, error) {
	w, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if w.Origin.IsZero() {
		return nil, domain.ErrInvalidTransition
	}
	return uc.candidates(ctx, actor, w)
}

func (uc *UseCase) candidates(ctx context.Context, actor dto.Actor, w *Wizard) ([]dto.DeviceCandidate, error) {
	notBlocked := false
	filter := repository.DeviceFilter{
		HolderID: actor.ContractorID,
		Location: w.Origin.Kind(),
		TargetID: w.Origin.TargetID(),
		Blocked:  &notBlocked,
	}
	out := []dto.DeviceCandidate{}
	switch w.DeviceKind {
	case entity.DeviceEquipment:
		page, err := uc.repos.Equipments.Search(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, r := range page.Rows {
			out = append(out, dto.DeviceCandidate{
				ID:                r.Equipment.ID,
				Label:             fmt.Sprintf("%s (%s)", r.Equipment.SerialNumber, r.ModelName),
				LeasingInProgress: r.Equipment.LeasingInProgress,
			})
		}
	case entity.DeviceSimCard:
		page, err := uc.repos.SimCards.Search(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, r := range page.Rows {
			out = append(out, dto.DeviceCandidate{
				ID:                r.SimCard.ID,
				Label:             fmt.Sprintf("%s (%s)", r.SimCard.ICCID, r.SupplierName),
				LeasingInProgress: r.SimCard.LeasingInProgress,
			})
		}
	}
	return out, nil
}

// SelectDevices paso 2. Cada ID debe estar entre los candidatos; en devolución no se aceptan
// dispositivos en comodato.
func (uc *UseCase) SelectDevices(ctx context.Context, actor dto.Actor, id string, in dto.SelectDevicesRequest) (*dto.MovimentationResponse, error) {
	w, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := w.enter(StepSelectDevices); err != nil {
		return nil, err
	}
	cands, err := uc.candidates(ctx, actor, w)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]dto.DeviceCandidate, len(cands))
	for _, c := range cands {
		byID[c.ID] = c
	}
	for _, devID := range in.DeviceIDs {
		c, ok := byID[devID]
		if !ok {
			return nil, domain.FieldError("device_ids", domain.MsgNotAtOrigin)
		}
		if w.Mode == ModeReturn && c.LeasingInProgress {
			return nil, domain.FieldError("device_ids", domain.MsgLeased)
		}
	}
	if err := w.SetDevices(in.DeviceIDs, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.save(ctx, w); err != nil {
		return nil, err
	}
	return toResponse(w), nil
}

// SelectDestination paso 3 (traslado).
func (uc *UseCase) SelectDestination(ctx context.Context, actor dto.Actor, id string, in dto.SelectDestinationRequest) (*dto.MovimentationResponse, error) {
	w, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := w.enter(StepSelectDestination); err != nil {
		return nil, err
	}
	dest, err := custody.ResolveDestination(ctx, uc.repos, actor.ContractorID, entity.LocationKind(in.Location), in.TargetID, storedKinds...)
	if err != nil {
		return nil, err
	}
	if err := w.SetDestination(dest, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.save(ctx, w); err != nil {
		return nil, err
	}
	return toResponse(w), nil
}

// Confirm mueve todos los dispositivos en una transacción. Cada uno se relee con bloqueo y debe
// seguir en el origen, con el actor y sin bloqueo; si uno falla no se mueve ninguno.
func (uc *UseCase) Confirm(ctx context.Context, actor dto.Actor, id string) (*dto.MovimentationResponse, error) {
	w, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := w.ReadyToConfirm(); err != nil {
		return nil, err
	}
	now := time.Now()
	action := entity.ActionMoved
	if w.Mode == ModeReturn {
		action = entity.ActionReturned
	}

	err = uc.txRunner.Run(ctx, func(repos repository.Set) error {
		for _, devID := range w.DeviceIDs {
			var err error
			if w.DeviceKind == entity.DeviceEquipment {
				err = moveEquipment(ctx, repos, actor, w, devID, action, now)
			} else {
				err = moveSimCard(ctx, repos, actor, w, devID, action, now)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	w.Finish(len(w.DeviceIDs), now)
	if err := uc.save(ctx, w); err != nil {
		return nil, err
	}
	return toResponse(w), nil
}

func moveEquipment(ctx context.Context, repos repository.Set, actor dto.Actor, w *Wizard, id, action string, now time.Time) error {
	eq, err := repos.Equipments.GetForUpdate(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.FieldError("device_ids", domain.MsgNotAtOrigin)
	}
	if err != nil {
		return err
	}
	if err := checkMovable(actor, w, eq.Holder(), eq.Location, eq.Blocked, eq.LeasingInProgress); err != nil {
		return err
	}
	eq.Location = w.Destination
	eq.UpdatedAt = now
	if err := repos.Equipments.Update(ctx, eq); err != nil {
		return err
	}
	return audit.Record(ctx, repos.History, actor, audit.Equipment(eq, action).WithNotes(w.ID), now)
}

func moveSimCard(ctx context.Context, repos repository.Set, actor dto.Actor, w *Wizard, id, action string, now time.Time) error {
	card, err := repos.SimCards.GetForUpdate(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.FieldError("device_ids", domain.MsgNotAtOrigin)
	}
	if err != nil {
		return err
	}
	if err := checkMovable(actor, w, card.Holder(), card.Location, card.Blocked, card.LeasingInProgress); err != nil {
		return err
	}
	card.Location = w.Destination
	card.UpdatedAt = now
	if err := repos.SimCards.Update(ctx, card); err != nil {
		return err
	}
	return audit.Record(ctx, repos.History, actor, audit.SimCard(card, action).WithNotes(w.ID), now)
}

func checkMovable(actor dto.Actor, w *Wizard, holder string, loc entity.StorageLocation, blocked, leased bool) error {
	if holder != actor.ContractorID || !loc.Equal(w.Origin) {
		return domain.FieldError("device_ids", domain.MsgNotAtOrigin)
	}
	if blocked {
		return domain.FieldError("device_ids", domain.MsgBlocked)
	}
	if w.Mode == ModeReturn && leased {
		return domain.FieldError("device_ids", domain.MsgLeased)
	}
	return nil
}

func (uc *UseCase) load(ctx context.Context, actor dto.Actor, id string) (*Wizard, error) {
	raw, err := uc.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	var w Wizard
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("movimentation: estado corrupto: %w", err)
	}
	if w.ContractorID != actor.ContractorID || w.UserID != actor.UserID {
		return nil, domain.ErrNotFound
	}
	return &w, nil
}

func (uc *UseCase) save(ctx context.Context, w *Wizard) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return err
	}
	return uc.store.Save(ctx, w.ID, raw)
}

func toResponse(w *Wizard) *dto.MovimentationResponse {
	return &dto.MovimentationResponse{
		ID:                  w.ID,
		Mode:                string(w.Mode),
		Step:                string(w.Step),
		DeviceKind:          string(w.DeviceKind),
		Origin:              string(w.Origin.Kind()),
		OriginTargetID:      w.Origin.TargetID(),
		DeviceIDs:           w.DeviceIDs,
		Destination:         string(w.Destination.Kind()),
		DestinationTargetID: w.Destination.TargetID(),
		Moved:               w.Moved,
		UpdatedAt:           w.UpdatedAt,
	}
}
