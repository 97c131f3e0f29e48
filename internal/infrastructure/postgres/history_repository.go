package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo histórico de dispositivos. No tiene FK al ítem: sobrevive a su eliminación.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// Record persiste una línea del histórico.
func (r *HistoryRepo) Record(ctx context.Context, h *entity.HistoryEntry) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	var slot *int
	if s := h.Location.Slot(); s > 0 {
		slot = &s
	}
	query := `
		INSERT INTO device_history (id, kind, item_id, contractor_id, user_id, action,
			storage_location, target_id, slot_number, assigned_to_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		h.ID, string(h.Kind), h.ItemID, h.ContractorID, nullable(h.UserID), h.Action,
		string(h.Location.Kind()), nullable(h.Location.TargetID()), slot, h.AssignedToID, h.Notes, h.CreatedAt,
	)
	return dbError("insert history", err)
}

// List histórico del dispositivo, del más reciente al más antiguo.
func (r *HistoryRepo) List(ctx context.Context, f repository.HistoryFilter) (*repository.Page[*entity.HistoryEntry], error) {
	b := newSelect(`id, kind, item_id, contractor_id, user_id, action, storage_location, target_id,
		slot_number, assigned_to_id, notes, created_at`, "device_history").
		Where("kind = ?", string(f.Kind)).
		Where("item_id = ?", f.ItemID).
		OrderBy("", true, nil, "created_at").
		Page(f.Length, f.Start)

	page := &repository.Page[*entity.HistoryEntry]{}
	if err := count(ctx, r.q, b, &page.Total); err != nil {
		return nil, dbError("count history", err)
	}
	page.Filtered = page.Total

	sql, args := b.SQL()
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbError("list history", err)
	}
	defer rows.Close()
	for rows.Next() {
		var h entity.HistoryEntry
		var kind, locKind string
		var userID, target *string
		var slot *int
		if err := rows.Scan(&h.ID, &kind, &h.ItemID, &h.ContractorID, &userID, &h.Action, &locKind, &target,
			&slot, &h.AssignedToID, &h.Notes, &h.CreatedAt); err != nil {
			return nil, dbError("scan history", err)
		}
		h.Kind = entity.DeviceKind(kind)
		h.UserID = deref(userID)
		if locKind != "" {
			if h.Location, err = locationFromTarget(locKind, target, slot); err != nil {
				return nil, dbError("scan history", err)
			}
		}
		page.Rows = append(page.Rows, &h)
	}
	return page, dbError("list history", rows.Err())
}
