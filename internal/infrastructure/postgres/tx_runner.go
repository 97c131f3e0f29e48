package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jeanheinriich/agendamentos-sub004/internal/application/ports"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/repository"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Set) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return dbError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSet(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return dbError("commit transaction", fmt.Errorf("commit: %w", err))
	}
	return nil
}

// NewSet construye todos los repositorios de inventario sobre q (pool o tx).
func NewSet(q Querier) repository.Set {
	return repository.Set{
		Equipments:       NewEquipmentRepository(q),
		SimCards:         NewSimCardRepository(q),
		EquipmentLeases:  NewEquipmentLeaseRepository(q),
		SimCardLeases:    NewSimCardLeaseRepository(q),
		Installations:    NewInstallationRepository(q),
		Deposits:         NewDepositRepository(q),
		Technicians:      NewTechnicianRepository(q),
		ServiceProviders: NewServiceProviderRepository(q),
		Vehicles:         NewVehicleRepository(q),
		Suppliers:        NewSupplierRepository(q),
		Models:           NewEquipmentModelRepository(q),
		History:          NewHistoryRepository(q),
	}
}
