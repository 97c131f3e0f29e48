package ports

import (
	"context"
	"encoding/json"
)

// WizardStore guarda el estado serializado de los asistentes de varios pasos.
// Load devuelve domain.ErrNotFound si el asistente no existe o expiró.
type WizardStore interface {
	Save(ctx context.Context, id string, state json.RawMessage) error
	Load(ctx context.Context, id string) (json.RawMessage, error)
	Delete(ctx context.Context, id string) error
}
