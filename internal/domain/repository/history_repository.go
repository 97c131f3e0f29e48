package repository

import (
	"context"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
)

// HistoryFilter filtros del histórico de un dispositivo.
type HistoryFilter struct {
	Kind   entity.DeviceKind
	ItemID string
	Start  int
	Length int
}

// HistoryRepository puerto de persistencia del histórico de dispositivos.
type HistoryRepository interface {
	Record(ctx context.Context, entry *entity.HistoryEntry) error
	List(ctx context.Context, filter HistoryFilter) (*Page[*entity.HistoryEntry], error)
}
