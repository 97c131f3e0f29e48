// Package inventory contiene los casos de uso de equipos y SIM cards: alta, edición con la
// transición de comodato, baja en cascada, bloqueo, instalación y reubicación.
package inventory

import (
	"context"
	"errors"
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

// EquipmentUseCase casos de uso de equipos. Las lecturas usan repos; toda escritura pasa por txRunner.
type EquipmentUseCase struct {
	repos    repository.Set
	txRunner ports.TxRunner
	leasing  *leasing.Service
}

// NewEquipmentUseCase construye el caso de uso.
func NewEquipmentUseCase(repos repository.Set, txRunner ports.TxRunner, svc *leasing.Service) *EquipmentUseCase {
	return &EquipmentUseCase{repos: repos, txRunner: txRunner, leasing: svc}
}

// Create da de alta un equipo del contratante del actor. Entra en el depósito indicado o en el
// depósito por defecto.
func (uc *EquipmentUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateEquipmentRequest) (*dto.EquipmentResponse, error) {
	if _, err := uc.repos.Models.GetByID(ctx, in.ModelID); err != nil {
		return nil, asField(err, "model_id")
	}
	if err := checkSupplier(ctx, uc.repos.Suppliers, in.SupplierID); err != nil {
		return nil, err
	}
	loc, err := entryLocation(ctx, uc.repos, actor.ContractorID, in.DepositID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	eq := &entity.Equipment{
		ID:           uuid.New().String(),
		ContractorID: actor.ContractorID,
		SerialNumber: in.SerialNumber,
		IMEI:         in.IMEI,
		ModelID:      in.ModelID,
		SupplierID:   in.SupplierID,
		Location:     loc,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.txRunner.Run(ctx, func(repos repository.Set) error {
		if err := repos.Equipments.Create(ctx, eq); err != nil {
			return err
		}
		return audit.Record(ctx, repos.History, actor, audit.Equipment(eq, entity.ActionCreated), now)
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromEquipment(eq)
	return &out, nil
}

// Get devuelve el equipo si el actor es su dueño o su arrendatario.
func (uc *EquipmentUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.EquipmentResponse, error) {
	eq, err := uc.repos.Equipments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, eq.ContractorID, eq.Holder()) {
		return nil, domain.ErrNotFound
	}
	out := dto.FromEquipment(eq)
	return &out, nil
}

// Update edita los campos del equipo y aplica la transición de comodato en la misma transacción.
func (uc *EquipmentUseCase) Update(ctx context.Context, actor dto.Actor, id string, in dto.UpdateEquipmentRequest) (*dto.EquipmentResponse, error) {
	var eq *entity.Equipment
	err := uc.txRunner.Run(ctx, func(repos repository.Set) error {
		var err error
		eq, err = repos.Equipments.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if eq.ContractorID != actor.ContractorID {
			return domain.ErrForbidden
		}
		now := time.Now()
		changed, err := applyEquipmentFields(ctx, repos, eq, in)
		if err != nil {
			return err
		}
		if in.Lease != nil {
			if _, err := uc.leasing.ApplyEquipment(ctx, repos, actor, eq, leasing.InputFromDTO(*in.Lease), now); err != nil {
				return err
			}
		}
		eq.UpdatedAt = now
		if err := repos.Equipments.Update(ctx, eq); err != nil {
			return err
		}
		if changed {
			return audit.Record(ctx, repos.History, actor, audit.Equipment(eq, entity.ActionUpdated), now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromEquipment(eq)
	return &out, nil
}

func applyEquipmentFields(ctx context.Context, repos repository.Set, eq *entity.Equipment, in dto.UpdateEquipmentRequest) (bool, error) {
	changed := false
	if in.SerialNumber != nil && *in.SerialNumber != eq.SerialNumber {
		eq.SerialNumber = *in.SerialNumber
		changed = true
	}
	if in.IMEI != nil && *in.IMEI != eq.IMEI {
		eq.IMEI = *in.IMEI
		changed = true
	}
	if in.ModelID != nil && *in.ModelID != eq.ModelID {
		model, err := repos.Models.GetByID(ctx, *in.ModelID)
		if err != nil {
			return false, asField(err, "model_id")
		}
		// El nuevo modelo debe tener lugar para las SIM cards ya instaladas.
		cards, err := repos.SimCards.ListByEquipment(ctx, eq.ID)
		if err != nil {
			return false, err
		}
		for _, c := range cards {
			if c.Location.Slot() > model.MaxSimCards {
				return false, domain.FieldError("model_id", domain.MsgOutOfRange)
			}
		}
		eq.ModelID = model.ID
		changed = true
	}
	return changed, nil
}

// Delete elimina el equipo: desinstala, retira las SIM cards de los slots hacia el depósito de
// su tenedor y borra comodatos e instalaciones. El histórico se conserva.
func (uc *EquipmentUseCase) Delete(ctx context.Context, actor dto.Actor, id string) error {
	return uc.txRunner.Run(ctx, func(repos repository.Set) error {
		eq, err := repos.Equipments.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if eq.ContractorID != actor.ContractorID {
			return domain.ErrForbidden
		}
		if eq.LeasingInProgress {
			return domain.FieldError("leasing_in_progress", domain.MsgLeased)
		}
		now := time.Now()
		if eq.Location.Kind() == entity.LocationInstalled {
			if err := leasing.Uninstall(ctx, repos, actor, eq, now); err != nil {
				return err
			}
		}
		cards, err := repos.SimCards.ListByEquipment(ctx, eq.ID)
		if err != nil {
			return err
		}
		for _, c := range cards {
			dep, err := custody.DefaultDeposit(ctx, repos.Deposits, c.Holder())
			if err != nil {
				return err
			}
			c.Location = entity.OnDeposit(dep.ID)
			c.UpdatedAt = now
			if err := repos.SimCards.Update(ctx, c); err != nil {
				return err
			}
			if err := audit.Record(ctx, repos.History, actor, audit.SimCard(c, entity.ActionDetached).WithNotes(eq.SerialNumber), now); err != nil {
				return err
			}
		}
		if err := repos.EquipmentLeases.DeleteByItem(ctx, eq.ID); err != nil {
			return err
		}
		if err := repos.Installations.DeleteByEquipment(ctx, eq.ID); err != nil {
			return err
		}
		return repos.Equipments.Delete(ctx, eq.ID)
	})
}

// ToggleBlock bloquea o desbloquea el equipo.
func (uc *EquipmentUseCase) ToggleBlock(ctx context.Context, actor dto.Actor, id string) (*dto.EquipmentResponse, error) {
	var eq *entity.Equipment
	err := uc.txRunner.Run(ctx, func(repos repository.Set) error {
		var err error
		eq, err = repos.Equipments.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if eq.ContractorID != actor.ContractorID {
			return domain.ErrForbidden
		}
		now := time.Now()
		eq.Blocked = !eq.Blocked
		eq.UpdatedAt = now
		if err := repos.Equipments.Update(ctx, eq); err != nil {
			return err
		}
		return audit.Record(ctx, repos.History, actor, audit.Equipment(eq, blockAction(eq.Blocked)), now)
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromEquipment(eq)
	return &out, nil
}

// Install instala el equipo en un vehículo del tenedor y abre el registro de instalación.
func (uc *EquipmentUseCase) Install(ctx context.Context, actor dto.Actor, id string, in dto.InstallRequest) (*dto.EquipmentResponse, error) {
	var eq *entity.Equipment
	err := uc.txRunner.Run(ctx, func(repos repository.Set) error {
		var err error
		eq, err = repos.Equipments.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if eq.Holder() != actor.ContractorID {
			return domain.ErrForbidden
		}
		if eq.Blocked {
			return domain.FieldError("equipment_id", domain.MsgBlocked)
		}
		switch kind := eq.Location.Kind(); {
		case kind == entity.LocationInstalled:
			return domain.FieldError("storage_location", domain.MsgInstalled)
		case kind == entity.LocationMaintenance || !kind.Stored():
			return domain.FieldError("storage_location", domain.MsgInvalidLocation)
		}
		vehicle, err := repos.Vehicles.GetByID(ctx, in.VehicleID)
		if err != nil {
			return asField(err, "vehicle_id")
		}
		if vehicle.ContractorID != actor.ContractorID {
			return domain.FieldError("vehicle_id", domain.MsgInvalidDestination)
		}
		if vehicle.Blocked {
			return domain.FieldError("vehicle_id", domain.MsgBlocked)
		}
		now := time.Now()
		at := now
		if in.InstalledAt != nil && !in.InstalledAt.IsZero() {
			at = *in.InstalledAt
		}
		if err := repos.Installations.Open(ctx, &entity.Installation{
			ID:          uuid.New().String(),
			EquipmentID: eq.ID,
			VehicleID:   vehicle.ID,
			InstalledAt: at,
		}); err != nil {
			return err
		}
		eq.Location = entity.InstalledOn(vehicle.ID)
		eq.UpdatedAt = now
		if err := repos.Equipments.Update(ctx, eq); err != nil {
			return err
		}
		return audit.Record(ctx, repos.History, actor, audit.Equipment(eq, entity.ActionInstalled).WithNotes(vehicle.Plate), now)
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromEquipment(eq)
	return &out, nil
}

// Uninstall retira el equipo del vehículo y lo guarda en el destino indicado.
func (uc *EquipmentUseCase) Uninstall(ctx context.Context, actor dto.Actor, id string, dest dto.LocationInput) (*dto.EquipmentResponse, error) {
	var eq *entity.Equipment
	err := uc.txRunner.Run(ctx, func(repos repository.Set) error {
		var err error
		eq, err = repos.Equipments.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if eq.Holder() != actor.ContractorID {
			return domain.ErrForbidden
		}
		if eq.Location.Kind() != entity.LocationInstalled {
			return domain.FieldError("storage_location", domain.MsgNotInstalled)
		}
		loc, err := custody.ResolveDestination(ctx, repos, actor.ContractorID, entity.LocationKind(dest.Kind), dest.TargetID, custody.Custodians...)
		if err != nil {
			return err
		}
		now := time.Now()
		if err := leasing.Uninstall(ctx, repos, actor, eq, now); err != nil {
			return err
		}
		eq.Location = loc
		eq.UpdatedAt = now
		if err := repos.Equipments.Update(ctx, eq); err != nil {
			return err
		}
		return audit.Record(ctx, repos.History, actor, audit.Equipment(eq, entity.ActionMoved), now)
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromEquipment(eq)
	return &out, nil
}

// Relocate mueve un equipo guardado a otro destino (depósito, técnico, prestador, mantenimiento
// o devolución al proveedor).
func (uc *EquipmentUseCase) Relocate(ctx context.Context, actor dto.Actor, id string, dest dto.LocationInput) (*dto.EquipmentResponse, error) {
	var eq *entity.Equipment
	err := uc.txRunner.Run(ctx, func(repos repository.Set) error {
		var err error
		eq, err = repos.Equipments.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if eq.Holder() != actor.ContractorID {
			return domain.ErrForbidden
		}
		if eq.Location.Kind() == entity.LocationInstalled {
			return domain.FieldError("storage_location", domain.MsgInstalled)
		}
		kind := entity.LocationKind(dest.Kind)
		if kind == entity.LocationReturned && eq.LeasingInProgress {
			return domain.FieldError("location", domain.MsgLeased)
		}
		loc, err := custody.ResolveDestination(ctx, repos, actor.ContractorID, kind, dest.TargetID)
		if err != nil {
			return err
		}
		now := time.Now()
		eq.Location = loc
		eq.UpdatedAt = now
		if err := repos.Equipments.Update(ctx, eq); err != nil {
			return err
		}
		return audit.Record(ctx, repos.History, actor, audit.Equipment(eq, moveAction(kind)), now)
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromEquipment(eq)
	return &out, nil
}

// ---------------------------------------------------------------------------
// Auxiliares compartidos con SimCardUseCase
// ---------------------------------------------------------------------------

// canView dueño o tenedor actual.
func canView(actor dto.Actor, ownerID, holderID string) bool {
	return actor.ContractorID == ownerID || actor.ContractorID == holderID
}

// asField convierte un not-found de una referencia en error del campo.
func asField(err error, field string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.FieldError(field, domain.MsgNotFound)
	}
	return err
}

func checkSupplier(ctx context.Context, repo repository.SupplierRepository, supplierID string) error {
	blocked, err := repo.IsBlocked(ctx, supplierID)
	if err != nil {
		return asField(err, "supplier_id")
	}
	if blocked {
		return domain.FieldError("supplier_id", domain.MsgBlocked)
	}
	return nil
}

// entryLocation depósito de entrada de un dispositivo nuevo.
func entryLocation(ctx context.Context, repos repository.Set, contractorID, depositID string) (entity.StorageLocation, error) {
	if depositID == "" {
		dep, err := custody.DefaultDeposit(ctx, repos.Deposits, contractorID)
		if errors.Is(err, domain.ErrNoDefaultDeposit) {
			return entity.StorageLocation{}, domain.FieldError("deposit_id", domain.MsgNoDefaultDeposit)
		}
		if err != nil {
			return entity.StorageLocation{}, err
		}
		return entity.OnDeposit(dep.ID), nil
	}
	loc, err := custody.ResolveDestination(ctx, repos, contractorID, entity.LocationDeposit, depositID)
	if err != nil {
		var v *domain.ValidationError
		if errors.As(err, &v) {
			return entity.StorageLocation{}, domain.FieldError("deposit_id", v.Fields["target_id"])
		}
		return entity.StorageLocation{}, err
	}
	return loc, nil
}

func blockAction(blocked bool) string {
	if blocked {
		return entity.ActionBlocked
	}
	return entity.ActionUnblocked
}

func moveAction(kind entity.LocationKind) string {
	if kind == entity.LocationReturned {
		return entity.ActionReturned
	}
	return entity.ActionMoved
}
