// Package movimentation implementa el asistente de traslado y devolución masiva de dispositivos.
// El estado vive en un WizardStore entre pasos; la confirmación mueve todo en una transacción.
package movimentation

import (
	"time"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
)

// Mode tipo de movimiento.
type Mode string

const (
	ModeTransfer Mode = "transfer"
	ModeReturn   Mode = "return"
)

// Step paso actual del asistente.
type Step string

const (
	StepSelectOrigin      Step = "select_origin"
	StepSelectDevices     Step = "select_devices"
	StepSelectDestination Step = "select_destination"
	StepConfirm           Step = "confirm"
	StepDone              Step = "done"
)

var stepOrder = map[Step]int{
	StepSelectOrigin:      1,
	StepSelectDevices:     2,
	StepSelectDestination: 3,
	StepConfirm:           4,
	StepDone:              5,
}

// Wizard estado serializable del asistente.
type Wizard struct {
	ID           string                 `json:"id"`
	ContractorID string                 `json:"contractor_id"`
	UserID       string                 `json:"user_id"`
	Mode         Mode                   `json:"mode"`
	Step         Step                   `json:"step"`
	DeviceKind   entity.DeviceKind      `json:"device_kind,omitempty"`
	Origin       entity.StorageLocation `json:"origin"`
	DeviceIDs    []string               `json:"device_ids,omitempty"`
	Destination  entity.StorageLocation `json:"destination"`
	Moved        int                    `json:"moved,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// NewWizard crea el asistente en el primer paso.
func NewWizard(id, contractorID, userID string, mode Mode, now time.Time) (*Wizard, error) {
	if mode != ModeTransfer && mode != ModeReturn {
		return nil, domain.FieldError("mode", domain.MsgInvalidFormat)
	}
	return &Wizard{
		ID:           id,
		ContractorID: contractorID,
		UserID:       userID,
		Mode:         mode,
		Step:         StepSelectOrigin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// enter valida que se pueda ir al paso: se puede repetir el actual o volver a uno anterior,
// nunca saltar hacia adelante ni tocar un asistente terminado.
func (w *Wizard) enter(step Step) error {
	if w.Step == StepDone {
		return domain.ErrInvalidTransition
	}
	if step == StepSelectDestination && w.Mode != ModeTransfer {
		return domain.ErrInvalidTransition
	}
	if stepOrder[step] > stepOrder[w.Step] {
		return domain.ErrInvalidTransition
	}
	return nil
}

// SetOrigin paso 1. Volver a este paso descarta la selección y el destino.
func (w *Wizard) SetOrigin(kind entity.DeviceKind, origin entity.StorageLocation, now time.Time) error {
	if err := w.enter(StepSelectOrigin); err != nil {
		return err
	}
	if !kind.Valid() {
		return domain.FieldError("device_kind", domain.MsgInvalidFormat)
	}
	if !origin.Kind().Stored() {
		return domain.FieldError("location", domain.MsgInvalidLocation)
	}
	w.DeviceKind = kind
	w.Origin = origin
	w.DeviceIDs = nil
	w.Destination = entity.StorageLocation{}
	w.Step = StepSelectDevices
	w.UpdatedAt = now
	return nil
}

// SetDevices paso 2. En devolución el destino queda fijo y se pasa directo a confirmar.
func (w *Wizard) SetDevices(ids []string, now time.Time) error {
	if err := w.enter(StepSelectDevices); err != nil {
		return err
	}
	ids = dedupe(ids)
	if len(ids) == 0 {
		return domain.FieldError("device_ids", domain.MsgRequired)
	}
	w.DeviceIDs = ids
	if w.Mode == ModeReturn {
		w.Destination = entity.ReturnedToSupplier()
		w.Step = StepConfirm
	} else {
		w.Destination = entity.StorageLocation{}
		w.Step = StepSelectDestination
	}
	w.UpdatedAt = now
	return nil
}

// SetDestination paso 3, solo en traslados.
func (w *Wizard) SetDestination(dest entity.StorageLocation, now time.Time) error {
	if err := w.enter(StepSelectDestination); err != nil {
		return err
	}
	if !dest.Kind().Stored() {
		return domain.FieldError("location", domain.MsgInvalidDestination)
	}
	if dest.Equal(w.Origin) {
		return domain.FieldError("location", domain.MsgInvalidDestination)
	}
	w.Destination = dest
	w.Step = StepConfirm
	w.UpdatedAt = now
	return nil
}

// ReadyToConfirm informa si el asistente puede confirmarse.
func (w *Wizard) ReadyToConfirm() error {
	if w.Step != StepConfirm || len(w.DeviceIDs) == 0 || w.Destination.IsZero() {
		return domain.ErrInvalidTransition
	}
	return nil
}

// Finish marca el asistente como terminado.
func (w *Wizard) Finish(moved int, now time.Time) {
	w.Moved = moved
	w.Step = StepDone
	w.UpdatedAt = now
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
