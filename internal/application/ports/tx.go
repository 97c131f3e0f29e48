package ports

import (
	"context"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback y nada de lo hecho dentro queda persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Set) error) error
}
