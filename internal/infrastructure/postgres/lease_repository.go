package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/repository"
)

var _ repository.LeaseRepository = (*LeaseRepo)(nil)

// LeaseRepo comodatos de un tipo de dispositivo (leased_equipments o leased_simcards).
type LeaseRepo struct {
	q       Querier
	kind    entity.DeviceKind
	table   string
	itemCol string
}

// NewEquipmentLeaseRepository comodatos de equipos.
func NewEquipmentLeaseRepository(q Querier) *LeaseRepo {
	return &LeaseRepo{q: q, kind: entity.DeviceEquipment, table: "leased_equipments", itemCol: "equipment_id"}
}

// NewSimCardLeaseRepository comodatos de SIM cards.
func NewSimCardLeaseRepository(q Querier) *LeaseRepo {
	return &LeaseRepo{q: q, kind: entity.DeviceSimCard, table: "leased_simcards", itemCol: "simcard_id"}
}

func (r *LeaseRepo) columns() string {
	return fmt.Sprintf(`id, %s, contractor_id, assigned_to_id, start_date, grace_period, monthly_fee,
		notes, end_date, created_at, updated_at`, r.itemCol)
}

func (r *LeaseRepo) scan(row pgx.Row) (*entity.Lease, error) {
	l := entity.Lease{Kind: r.kind}
	err := row.Scan(&l.ID, &l.ItemID, &l.ContractorID, &l.AssignedToID, &l.StartDate, &l.GracePeriod,
		&l.MonthlyFee, &l.Notes, &l.EndDate, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create abre un comodato. Un segundo comodato abierto para (item, arrendatario) viola el
// índice único parcial y devuelve domain.ErrAlreadyInUse.
func (r *LeaseRepo) Create(ctx context.Context, l *entity.Lease) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, %s, contractor_id, assigned_to_id, start_date, grace_period, monthly_fee,
			notes, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`, r.table, r.itemCol)
	_, err := r.q.Exec(ctx, query,
		l.ID, l.ItemID, l.ContractorID, l.AssignedToID, l.StartDate, l.GracePeriod, l.MonthlyFee,
		l.Notes, l.EndDate, l.CreatedAt, l.UpdatedAt,
	)
	return dbError("insert "+r.table, err)
}

// GetActive comodato abierto del ítem con ese arrendatario; nil si no hay.
func (r *LeaseRepo) GetActive(ctx context.Context, itemID, assignedToID string) (*entity.Lease, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND assigned_to_id = $2 AND end_date IS NULL FOR UPDATE`,
		r.columns(), r.table, r.itemCol)
	l, err := r.scan(r.q.QueryRow(ctx, query, itemID, assignedToID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get active "+r.table, err)
	}
	return l, nil
}

// Update actualiza los campos modificables del comodato.
func (r *LeaseRepo) Update(ctx context.Context, l *entity.Lease) error {
	query := fmt.Sprintf(`
		UPDATE %s SET start_date = $2, grace_period = $3, monthly_fee = $4, notes = $5, updated_at = $6
		WHERE id = $1`, r.table)
	cmd, err := r.q.Exec(ctx, query, l.ID, l.StartDate, l.GracePeriod, l.MonthlyFee, l.Notes, l.UpdatedAt)
	if err != nil {
		return dbError("update "+r.table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Close fija end_date del comodato abierto y devuelve las filas afectadas.
func (r *LeaseRepo) Close(ctx context.Context, itemID, assignedToID string, endDate time.Time) (int64, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET end_date = $3, updated_at = now()
		WHERE %s = $1 AND assigned_to_id = $2 AND end_date IS NULL`, r.table, r.itemCol)
	cmd, err := r.q.Exec(ctx, query, itemID, assignedToID, endDate)
	if err != nil {
		return 0, dbError("close "+r.table, err)
	}
	return cmd.RowsAffected(), nil
}

// DeleteByItem elimina todos los comodatos del ítem.
func (r *LeaseRepo) DeleteByItem(ctx context.Context, itemID string) error {
	_, err := r.q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, r.table, r.itemCol), itemID)
	return dbError("delete "+r.table, err)
}

// ListGraceEnding comodatos abiertos cuya carencia termina en day.
func (r *LeaseRepo) ListGraceEnding(ctx context.Context, day time.Time) ([]*entity.Lease, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE end_date IS NULL
		  AND (start_date + make_interval(months => grace_period))::date = $1::date
		ORDER BY %s`, r.columns(), r.table, r.itemCol)
	rows, err := r.q.Query(ctx, query, day)
	if err != nil {
		return nil, dbError("grace ending "+r.table, err)
	}
	defer rows.Close()
	var list []*entity.Lease
	for rows.Next() {
		l, err := r.scan(rows)
		if err != nil {
			return nil, dbError("scan "+r.table, err)
		}
		list = append(list, l)
	}
	return list, dbError("grace ending "+r.table, rows.Err())
}
