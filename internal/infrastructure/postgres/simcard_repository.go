package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/repository"
)

var _ repository.SimCardRepository = (*SimCardRepo)(nil)

// SimCardRepo implementación sobre PostgreSQL (usable con pool o tx).
type SimCardRepo struct {
	q Querier
}

// NewSimCardRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSimCardRepository(q Querier) *SimCardRepo {
	return &SimCardRepo{q: q}
}

const simCardColumns = `c.id, c.contractor_id, c.assigned_to_id, c.iccid, c.phone_number, c.supplier_id,
	c.leasing_in_progress, c.blocked, c.created_at, c.updated_at,
	c.storage_location, c.deposit_id, c.technician_id, c.service_provider_id, c.equipment_id, c.slot_number`

const simCardHolderExpr = `CASE WHEN c.leasing_in_progress AND c.assigned_to_id IS NOT NULL
	THEN c.assigned_to_id ELSE c.contractor_id END`

var simCardOrder = map[string]string{
	"iccid":            "c.iccid",
	"phone_number":     "c.phone_number",
	"carrier":          "s.name",
	"storage_location": "c.storage_location",
	"created_at":       "c.created_at",
}

func scanSimCard(row pgx.Row, extra ...any) (*entity.SimCard, error) {
	var c entity.SimCard
	var loc locationRow
	dest := append([]any{
		&c.ID, &c.ContractorID, &c.AssignedToID, &c.ICCID, &c.PhoneNumber, &c.SupplierID,
		&c.LeasingInProgress, &c.Blocked, &c.CreatedAt, &c.UpdatedAt,
	}, loc.dest()...)
	dest = append(dest, &loc.slot)
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	var err error
	if c.Location, err = loc.location("scan simcard"); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una SIM card. ICCID repetido → domain.ErrAlreadyInUse.
func (r *SimCardRepo) Create(ctx context.Context, c *entity.SimCard) error {
	col := c.Location.Columns()
	query := `
		INSERT INTO simcards (id, contractor_id, assigned_to_id, iccid, phone_number, supplier_id,
			storage_location, deposit_id, technician_id, service_provider_id, equipment_id, slot_number,
			leasing_in_progress, blocked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.ContractorID, c.AssignedToID, c.ICCID, c.PhoneNumber, c.SupplierID,
		string(col.Kind), col.DepositID, col.TechnicianID, col.ServiceProviderID, col.HolderID, col.SlotNumber,
		c.LeasingInProgress, c.Blocked, c.CreatedAt, c.UpdatedAt,
	)
	return dbError("insert simcard", err)
}

// GetByID obtiene una SIM card por ID.
func (r *SimCardRepo) GetByID(ctx context.Context, id string) (*entity.SimCard, error) {
	c, err := scanSimCard(r.q.QueryRow(ctx, `SELECT `+simCardColumns+` FROM simcards c WHERE c.id = $1`, id))
	if err != nil {
		return nil, dbError("get simcard", err)
	}
	return c, nil
}

// GetForUpdate obtiene la SIM card y bloquea la fila.
func (r *SimCardRepo) GetForUpdate(ctx context.Context, id string) (*entity.SimCard, error) {
	c, err := scanSimCard(r.q.QueryRow(ctx, `SELECT `+simCardColumns+` FROM simcards c WHERE c.id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, dbError("get simcard for update", err)
	}
	return c, nil
}

// Update persiste la SIM card. El índice único (equipment_id, slot_number) impide ocupar
// un slot dos veces: la violación llega como domain.ErrAlreadyInUse.
func (r *SimCardRepo) Update(ctx context.Context, c *entity.SimCard) error {
	col := c.Location.Columns()
	query := `
		UPDATE simcards SET assigned_to_id = $2, iccid = $3, phone_number = $4, supplier_id = $5,
			storage_location = $6, deposit_id = $7, technician_id = $8, service_provider_id = $9,
			equipment_id = $10, slot_number = $11, leasing_in_progress = $12, blocked = $13,
			updated_at = $14
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		c.ID, c.AssignedToID, c.ICCID, c.PhoneNumber, c.SupplierID,
		string(col.Kind), col.DepositID, col.TechnicianID, col.ServiceProviderID,
		col.HolderID, col.SlotNumber, c.LeasingInProgress, c.Blocked,
		c.UpdatedAt,
	)
	if err != nil {
		return dbError("update simcard", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una SIM card por ID.
func (r *SimCardRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM simcards WHERE id = $1`, id)
	if err != nil {
		return dbError("delete simcard", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByEquipment SIM cards instaladas en el equipo, ordenadas por slot.
func (r *SimCardRepo) ListByEquipment(ctx context.Context, equipmentID string) ([]*entity.SimCard, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+simCardColumns+` FROM simcards c WHERE c.equipment_id = $1 ORDER BY c.slot_number`, equipmentID)
	if err != nil {
		return nil, dbError("list simcards by equipment", err)
	}
	defer rows.Close()
	var list []*entity.SimCard
	for rows.Next() {
		c, err := scanSimCard(rows)
		if err != nil {
			return nil, dbError("scan simcard", err)
		}
		list = append(list, c)
	}
	return list, dbError("list simcards by equipment", rows.Err())
}

// Search página de SIM cards del contratante con nombres resueltos.
func (r *SimCardRepo) Search(ctx context.Context, f repository.DeviceFilter) (*repository.Page[repository.SimCardListItem], error) {
	from := `simcards c
		JOIN suppliers s ON s.id = c.supplier_id
		JOIN contractors o ON o.id = c.contractor_id
		LEFT JOIN contractors a ON a.id = c.assigned_to_id AND c.leasing_in_progress
		LEFT JOIN deposits d ON d.id = c.deposit_id
		LEFT JOIN technicians t ON t.id = c.technician_id
		LEFT JOIN service_providers p ON p.id = c.service_provider_id
		LEFT JOIN equipments eq ON eq.id = c.equipment_id`
	columns := simCardColumns + `, s.name, o.name, COALESCE(a.name, ''),
		COALESCE(d.name, t.name, p.name, eq.serial_number, '')`

	base := newSelect(columns, from).Where(simCardHolderExpr+" = ?", f.HolderID)
	filtered := base.Clone().
		WhereIf(f.Location != "", "c.storage_location = ?", string(f.Location)).
		WhereIf(f.TargetID != "", "COALESCE(c.deposit_id, c.technician_id, c.service_provider_id, c.equipment_id) = ?", f.TargetID).
		WhereIf(f.Blocked != nil, "c.blocked = ?", f.Blocked).
		WhereIf(f.Search != "", "c.iccid ILIKE ? OR c.phone_number ILIKE ?", likePattern(f.Search), likePattern(f.Search)).
		OrderBy(f.OrderBy, f.Desc, simCardOrder, "c.iccid").
		Page(f.Length, f.Start)

	page := &repository.Page[repository.SimCardListItem]{}
	if err := count(ctx, r.q, base, &page.Total); err != nil {
		return nil, dbError("count simcards", err)
	}
	if err := count(ctx, r.q, filtered, &page.Filtered); err != nil {
		return nil, dbError("count simcards", err)
	}

	sql, args := filtered.SQL()
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbError("search simcards", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item repository.SimCardListItem
		c, err := scanSimCard(rows, &item.SupplierName, &item.OwnerName, &item.AssignedToName, &item.LocationName)
		if err != nil {
			return nil, dbError("scan simcard", err)
		}
		item.SimCard = *c
		page.Rows = append(page.Rows, item)
	}
	return page, dbError("search simcards", rows.Err())
}
