// Package audit escribe el histórico de movimientos de los dispositivos.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/repository"
)

// Event lo que se registra de un dispositivo tras un cambio.
type Event struct {
	Kind         entity.DeviceKind
	ItemID       string
	ContractorID string
	Action       string
	Location     entity.StorageLocation
	AssignedToID *string
	Notes        string
}

// Equipment foto del equipo para el histórico.
func Equipment(e *entity.Equipment, action string) Event {
	return Event{
		Kind:         entity.DeviceEquipment,
		ItemID:       e.ID,
		ContractorID: e.ContractorID,
		Action:       action,
		Location:     e.Location,
		AssignedToID: e.AssignedToID,
	}
}

// SimCard foto de la SIM card para el histórico.
func SimCard(s *entity.SimCard, action string) Event {
	return Event{
		Kind:         entity.DeviceSimCard,
		ItemID:       s.ID,
		ContractorID: s.ContractorID,
		Action:       action,
		Location:     s.Location,
		AssignedToID: s.AssignedToID,
	}
}

// WithNotes agrega una nota libre.
func (e Event) WithNotes(notes string) Event {
	e.Notes = notes
	return e
}

// Record persiste el evento.
func Record(ctx context.Context, repo repository.HistoryRepository, actor dto.Actor, ev Event, at time.Time) error {
	return repo.Record(ctx, &entity.HistoryEntry{
		ID:           uuid.New().String(),
		Kind:         ev.Kind,
		ItemID:       ev.ItemID,
		ContractorID: ev.ContractorID,
		UserID:       actor.UserID,
		Action:       ev.Action,
		Location:     ev.Location,
		AssignedToID: ev.AssignedToID,
		Notes:        ev.Notes,
		CreatedAt:    at,
	})
}
