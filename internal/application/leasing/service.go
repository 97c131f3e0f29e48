// Package leasing aplica las transiciones de comodato dentro de la transacción del caso de uso que
// edita el dispositivo (inicio, fin, continuación) y propaga el cambio a las SIM cards de los slots.
package leasing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jeanheinriich/agendamentos-sub004/internal/application/audit"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/custody"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	leaserules "github.com/jeanheinriich/agendamentos-sub004/internal/domain/leasing"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/repository"
)

// Input campos de comodato enviados al editar un dispositivo. GracePeriod, MonthlyFee y Notes nil
// conservan lo guardado en el comodato abierto; al crear uno nuevo valen cero.
type Input struct {
	WillBeLeased bool
	AssignedToID string
	StartDate    *time.Time
	GracePeriod  *int
	MonthlyFee   *decimal.Decimal
	EndDate      *time.Time
	Notes        *string
}

// InputFromDTO convierte el bloque lease del formulario.
func InputFromDTO(in dto.LeaseInput) Input {
	return Input{
		WillBeLeased: in.LeasingInProgress,
		AssignedToID: in.AssignedToID,
		StartDate:    in.StartDate,
		GracePeriod:  in.GracePeriod,
		MonthlyFee:   in.MonthlyFee,
		EndDate:      in.EndDate,
		Notes:        in.Notes,
	}
}

func (in Input) terms() leaserules.Terms {
	t := leaserules.Terms{AssignedToID: in.AssignedToID, GracePeriod: in.grace(), EndDate: in.EndDate}
	if in.StartDate != nil {
		t.StartDate = *in.StartDate
	}
	return t
}

func (in Input) grace() int {
	if in.GracePeriod == nil {
		return 0
	}
	return *in.GracePeriod
}

func (in Input) notes() string {
	if in.Notes == nil {
		return ""
	}
	return *in.Notes
}

// merge copia sobre l los campos enviados.
func (in Input) merge(l *entity.Lease) {
	if in.StartDate != nil && !in.StartDate.IsZero() {
		l.StartDate = *in.StartDate
	}
	if in.GracePeriod != nil {
		l.GracePeriod = *in.GracePeriod
	}
	if in.MonthlyFee != nil {
		l.MonthlyFee = *in.MonthlyFee
	}
	if in.Notes != nil {
		l.Notes = *in.Notes
	}
}

func (in Input) fee() decimal.Decimal {
	if in.MonthlyFee == nil {
		return decimal.Zero
	}
	return *in.MonthlyFee
}

// Outcome resumen de lo aplicado; las listas tienen IDs de SIM cards.
type Outcome struct {
	Transition leaserules.Transition
	Followed   []string
	Kept       []string
	Unlinked   []string
}

// Service aplica las reglas de comodato. No abre transacciones: recibe el repository.Set de la
// transacción del caller.
type Service struct{}

// NewService construye el servicio.
func NewService() *Service { return &Service{} }

// ApplyEquipment aplica la transición de comodato al equipo ya bloqueado (GetForUpdate).
// Modifica eq en memoria; persistir eq queda a cargo del caller. Las SIM cards de los slots sí se
// persisten aquí.
func (s *Service) ApplyEquipment(ctx context.Context, repos repository.Set, actor dto.Actor, eq *entity.Equipment, in Input, now time.Time) (*Outcome, error) {
	tr := leaserules.Classify(eq.LeasingInProgress, in.WillBeLeased)
	out := &Outcome{Transition: tr}

	switch tr {
	case leaserules.TransitionBegin:
		terms := in.terms()
		if err := leaserules.ValidateTerms(eq.ContractorID, terms); err != nil {
			return nil, err
		}
		dep, err := lesseeDeposit(ctx, repos, terms.AssignedToID)
		if err != nil {
			return nil, err
		}
		if err := s.openLease(ctx, repos.EquipmentLeases, entity.DeviceEquipment, eq.ID, eq.ContractorID, in, now); err != nil {
			return nil, err
		}
		if eq.Location.Kind() == entity.LocationInstalled {
			if err := Uninstall(ctx, repos, actor, eq, now); err != nil {
				return nil, err
			}
		}
		oldHolder := eq.Holder()
		lessee := terms.AssignedToID
		eq.AssignedToID = &lessee
		eq.LeasingInProgress = true
		eq.Location = entity.OnDeposit(dep.ID)
		eq.UpdatedAt = now
		if err := s.reclassifySlots(ctx, repos, actor, eq, oldHolder, in, now, out); err != nil {
			return nil, err
		}
		if err := audit.Record(ctx, repos.History, actor, audit.Equipment(eq, entity.ActionLeaseBegin).WithNotes(in.notes()), now); err != nil {
			return nil, err
		}

	case leaserules.TransitionEnd:
		if eq.AssignedToID == nil {
			return nil, domain.ErrConflict
		}
		lessee := *eq.AssignedToID
		end := leaserules.EndDateOrNow(in.EndDate, now)
		n, err := repos.EquipmentLeases.Close(ctx, eq.ID, lessee, end)
		if err != nil {
			return nil, err
		}
		if n != 1 {
			return nil, domain.ErrConflict
		}
		dep, err := custody.DefaultDeposit(ctx, repos.Deposits, eq.ContractorID)
		if err != nil {
			return nil, err
		}
		if eq.Location.Kind() == entity.LocationInstalled {
			if err := Uninstall(ctx, repos, actor, eq, now); err != nil {
				return nil, err
			}
		}
		eq.AssignedToID = nil
		eq.LeasingInProgress = false
		eq.Location = entity.OnDeposit(dep.ID)
		eq.UpdatedAt = now
		if err := s.reclassifySlots(ctx, repos, actor, eq, lessee, in, now, out); err != nil {
			return nil, err
		}
		if err := audit.Record(ctx, repos.History, actor, audit.Equipment(eq, entity.ActionLeaseEnd), now); err != nil {
			return nil, err
		}

	case leaserules.TransitionContinue:
		if err := s.continueLease(ctx, repos.EquipmentLeases, eq.ID, eq.AssignedToID, in, now); err != nil {
			return nil, err
		}
		if err := audit.Record(ctx, repos.History, actor, audit.Equipment(eq, entity.ActionLeaseUpdate).WithNotes(in.notes()), now); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ApplySimCard aplica la transición de comodato a una SIM card editada directamente. Si estaba en
// un slot se retira del equipo y se guarda en el depósito del nuevo tenedor.
func (s *Service) ApplySimCard(ctx context.Context, repos repository.Set, actor dto.Actor, card *entity.SimCard, in Input, now time.Time) (*Outcome, error) {
	tr := leaserules.Classify(card.LeasingInProgress, in.WillBeLeased)
	out := &Outcome{Transition: tr}

	switch tr {
	case leaserules.TransitionBegin:
		terms := in.terms()
		if err := leaserules.ValidateTerms(card.ContractorID, terms); err != nil {
			return nil, err
		}
		dep, err := lesseeDeposit(ctx, repos, terms.AssignedToID)
		if err != nil {
			return nil, err
		}
		if err := s.openLease(ctx, repos.SimCardLeases, entity.DeviceSimCard, card.ID, card.ContractorID, in, now); err != nil {
			return nil, err
		}
		lessee := terms.AssignedToID
		card.AssignedToID = &lessee
		card.LeasingInProgress = true
		card.Location = entity.OnDeposit(dep.ID)
		card.UpdatedAt = now
		if err := audit.Record(ctx, repos.History, actor, audit.SimCard(card, entity.ActionLeaseBegin).WithNotes(in.notes()), now); err != nil {
			return nil, err
		}

	case leaserules.TransitionEnd:
		if card.AssignedToID == nil {
			return nil, domain.ErrConflict
		}
		end := leaserules.EndDateOrNow(in.EndDate, now)
		n, err := repos.SimCardLeases.Close(ctx, card.ID, *card.AssignedToID, end)
		if err != nil {
			return nil, err
		}
		if n != 1 {
			return nil, domain.ErrConflict
		}
		dep, err := custody.DefaultDeposit(ctx, repos.Deposits, card.ContractorID)
		if err != nil {
			return nil, err
		}
		card.AssignedToID = nil
		card.LeasingInProgress = false
		card.Location = entity.OnDeposit(dep.ID)
		card.UpdatedAt = now
		if err := audit.Record(ctx, repos.History, actor, audit.SimCard(card, entity.ActionLeaseEnd), now); err != nil {
			return nil, err
		}

	case leaserules.TransitionContinue:
		if err := s.continueLease(ctx, repos.SimCardLeases, card.ID, card.AssignedToID, in, now); err != nil {
			return nil, err
		}
		if err := audit.Record(ctx, repos.History, actor, audit.SimCard(card, entity.ActionLeaseUpdate).WithNotes(in.notes()), now); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// openLease crea el comodato o, si ya hay uno abierto con ese arrendatario, actualiza sus
// condiciones. Nunca quedan dos comodatos abiertos para el mismo par.
func (s *Service) openLease(ctx context.Context, repo repository.LeaseRepository, kind entity.DeviceKind, itemID, ownerID string, in Input, now time.Time) error {
	existing, err := repo.GetActive(ctx, itemID, in.AssignedToID)
	if err != nil {
		return err
	}
	if existing != nil {
		in.merge(existing)
		existing.UpdatedAt = now
		return repo.Update(ctx, existing)
	}
	return repo.Create(ctx, &entity.Lease{
		ID:           uuid.New().String(),
		Kind:         kind,
		ItemID:       itemID,
		ContractorID: ownerID,
		AssignedToID: in.AssignedToID,
		StartDate:    *in.StartDate,
		GracePeriod:  in.grace(),
		MonthlyFee:   in.fee(),
		Notes:        in.notes(),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// continueLease actualiza solo los campos modificables; el arrendatario no puede cambiar.
func (s *Service) continueLease(ctx context.Context, repo repository.LeaseRepository, itemID string, assignedTo *string, in Input, now time.Time) error {
	if assignedTo == nil {
		return domain.ErrConflict
	}
	if in.AssignedToID != "" && in.AssignedToID != *assignedTo {
		return domain.FieldError("assigned_to_id", domain.MsgLesseeChanged)
	}
	if in.GracePeriod != nil && *in.GracePeriod < 0 {
		return domain.FieldError("grace_period", domain.MsgOutOfRange)
	}
	lease, err := repo.GetActive(ctx, itemID, *assignedTo)
	if err != nil {
		return err
	}
	if lease == nil {
		return domain.ErrConflict
	}
	in.merge(lease)
	lease.UpdatedAt = now
	return repo.Update(ctx, lease)
}

// reclassifySlots recorre las SIM cards del equipo y decide cuál acompaña, cuál se mantiene y
// cuál se desvincula. eq ya tiene el nuevo tenedor.
func (s *Service) reclassifySlots(ctx context.Context, repos repository.Set, actor dto.Actor, eq *entity.Equipment, oldHolder string, in Input, now time.Time, out *Outcome) error {
	cards, err := repos.SimCards.ListByEquipment(ctx, eq.ID)
	if err != nil {
		return err
	}
	newHolder := eq.Holder()
	for _, c := range cards {
		card, err := repos.SimCards.GetForUpdate(ctx, c.ID)
		if err != nil {
			return err
		}
		action := leaserules.ClassifySlot(
			leaserules.CardHolding{OwnerID: card.ContractorID, HolderID: card.Holder()},
			eq.ContractorID, oldHolder, newHolder,
		)
		switch action {
		case leaserules.SlotKeep:
			out.Kept = append(out.Kept, card.ID)
			continue

		case leaserules.SlotFollow:
			if err := s.follow(ctx, repos, actor, card, newHolder, in, now); err != nil {
				return err
			}
			out.Followed = append(out.Followed, card.ID)

		case leaserules.SlotUnlink:
			dep, err := custody.DefaultDeposit(ctx, repos.Deposits, card.Holder())
			if err != nil {
				return err
			}
			card.Location = entity.OnDeposit(dep.ID)
			card.UpdatedAt = now
			if err := repos.SimCards.Update(ctx, card); err != nil {
				return err
			}
			if err := audit.Record(ctx, repos.History, actor, audit.SimCard(card, entity.ActionDetached).WithNotes(eq.SerialNumber), now); err != nil {
				return err
			}
			out.Unlinked = append(out.Unlinked, card.ID)
		}
	}
	return nil
}

// follow lleva la SIM card junto con el equipo: entra en comodato con el nuevo tenedor o, si
// vuelve a su dueño, cierra su comodato. Sigue instalada en el mismo slot. La mensualidad se
// cobra en el comodato del equipo; el de la SIM card se abre sin valor.
func (s *Service) follow(ctx context.Context, repos repository.Set, actor dto.Actor, card *entity.SimCard, newHolder string, in Input, now time.Time) error {
	action := entity.ActionLeaseBegin
	if newHolder == card.ContractorID {
		if card.AssignedToID == nil {
			return domain.ErrConflict
		}
		n, err := repos.SimCardLeases.Close(ctx, card.ID, *card.AssignedToID, leaserules.EndDateOrNow(in.EndDate, now))
		if err != nil {
			return err
		}
		if n != 1 {
			return domain.ErrConflict
		}
		card.AssignedToID = nil
		card.LeasingInProgress = false
		action = entity.ActionLeaseEnd
	} else {
		cardIn := in
		cardIn.AssignedToID = newHolder
		cardIn.MonthlyFee = nil
		if err := s.openLease(ctx, repos.SimCardLeases, entity.DeviceSimCard, card.ID, card.ContractorID, cardIn, now); err != nil {
			return err
		}
		holder := newHolder
		card.AssignedToID = &holder
		card.LeasingInProgress = true
	}
	card.UpdatedAt = now
	if err := repos.SimCards.Update(ctx, card); err != nil {
		return err
	}
	return audit.Record(ctx, repos.History, actor, audit.SimCard(card, action), now)
}

// Uninstall cierra la instalación abierta del equipo y borra integraciones y autorizaciones.
// No cambia eq.Location: el caller define a dónde va el equipo.
func Uninstall(ctx context.Context, repos repository.Set, actor dto.Actor, eq *entity.Equipment, now time.Time) error {
	if _, err := repos.Installations.Close(ctx, eq.ID, now); err != nil {
		return err
	}
	if err := repos.Installations.DeleteSideRecords(ctx, eq.ID); err != nil {
		return err
	}
	return audit.Record(ctx, repos.History, actor, audit.Equipment(eq, entity.ActionUninstalled), now)
}

// lesseeDeposit depósito por defecto del arrendatario; su ausencia es un error del formulario.
func lesseeDeposit(ctx context.Context, repos repository.Set, lesseeID string) (*entity.Deposit, error) {
	dep, err := custody.DefaultDeposit(ctx, repos.Deposits, lesseeID)
	if errors.Is(err, domain.ErrNoDefaultDeposit) {
		return nil, domain.FieldError("assigned_to_id", domain.MsgNoDefaultDeposit)
	}
	return dep, err
}

// GraceEndingUseCase lista comodatos cuya carencia termina en un día (cobranza).
type GraceEndingUseCase struct {
	equipmentLeases repository.LeaseRepository
	simCardLeases   repository.LeaseRepository
}

// NewGraceEndingUseCase construye el caso de uso.
func NewGraceEndingUseCase(equipmentLeases, simCardLeases repository.LeaseRepository) *GraceEndingUseCase {
	return &GraceEndingUseCase{equipmentLeases: equipmentLeases, simCardLeases: simCardLeases}
}

// List devuelve los comodatos de equipos y SIM cards del contratante cuya carencia termina en day.
// contractorID vacío devuelve todos (uso interno del scheduler).
func (uc *GraceEndingUseCase) List(ctx context.Context, contractorID string, day time.Time) ([]dto.LeaseResponse, error) {
	var out []dto.LeaseResponse
	for _, repo := range []repository.LeaseRepository{uc.equipmentLeases, uc.simCardLeases} {
		leases, err := repo.ListGraceEnding(ctx, day)
		if err != nil {
			return nil, err
		}
		for _, l := range leases {
			if contractorID != "" && l.ContractorID != contractorID {
				continue
			}
			out = append(out, dto.FromLease(l))
		}
	}
	if out == nil {
		out = []dto.LeaseResponse{}
	}
	return out, nil
}
