package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/repository"
)

var _ repository.EquipmentRepository = (*EquipmentRepo)(nil)

// EquipmentRepo implementación sobre PostgreSQL (usable con pool o tx).
type EquipmentRepo struct {
	q Querier
}

// NewEquipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEquipmentRepository(q Querier) *EquipmentRepo {
	return &EquipmentRepo{q: q}
}

const equipmentColumns = `e.id, e.contractor_id, e.assigned_to_id, e.serial_number, e.imei, e.model_id,
	e.supplier_id, e.leasing_in_progress, e.blocked, e.created_at, e.updated_at,
	e.storage_location, e.deposit_id, e.technician_id, e.service_provider_id, e.vehicle_id`

// holderExpr contratante que tiene el equipo: arrendatario durante el comodato, si no el dueño.
const equipmentHolderExpr = `CASE WHEN e.leasing_in_progress AND e.assigned_to_id IS NOT NULL
	THEN e.assigned_to_id ELSE e.contractor_id END`

var equipmentOrder = map[string]string{
	"serial_number":    "e.serial_number",
	"imei":             "e.imei",
	"model":            "m.name",
	"supplier":         "s.name",
	"storage_location": "e.storage_location",
	"created_at":       "e.created_at",
}

func scanEquipment(row pgx.Row, extra ...any) (*entity.Equipment, error) {
	var e entity.Equipment
	var loc locationRow
	dest := append([]any{
		&e.ID, &e.ContractorID, &e.AssignedToID, &e.SerialNumber, &e.IMEI, &e.ModelID,
		&e.SupplierID, &e.LeasingInProgress, &e.Blocked, &e.CreatedAt, &e.UpdatedAt,
	}, loc.dest()...)
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	var err error
	if e.Location, err = loc.location("scan equipment"); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create persiste un equipo.
func (r *EquipmentRepo) Create(ctx context.Context, e *entity.Equipment) error {
	c := e.Location.Columns()
	query := `
		INSERT INTO equipments (id, contractor_id, assigned_to_id, serial_number, imei, model_id, supplier_id,
			storage_location, deposit_id, technician_id, service_provider_id, vehicle_id,
			leasing_in_progress, blocked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.ContractorID, e.AssignedToID, e.SerialNumber, e.IMEI, e.ModelID, e.SupplierID,
		string(c.Kind), c.DepositID, c.TechnicianID, c.ServiceProviderID, c.HolderID,
		e.LeasingInProgress, e.Blocked, e.CreatedAt, e.UpdatedAt,
	)
	return dbError("insert equipment", err)
}

// GetByID obtiene un equipo por ID.
func (r *EquipmentRepo) GetByID(ctx context.Context, id string) (*entity.Equipment, error) {
	e, err := scanEquipment(r.q.QueryRow(ctx, `SELECT `+equipmentColumns+` FROM equipments e WHERE e.id = $1`, id))
	if err != nil {
		return nil, dbError("get equipment", err)
	}
	return e, nil
}

// GetForUpdate obtiene el equipo y bloquea la fila (SELECT FOR UPDATE).
func (r *EquipmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Equipment, error) {
	e, err := scanEquipment(r.q.QueryRow(ctx, `SELECT `+equipmentColumns+` FROM equipments e WHERE e.id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, dbError("get equipment for update", err)
	}
	return e, nil
}

// Update persiste todos los campos modificables, incluida la ubicación.
func (r *EquipmentRepo) Update(ctx context.Context, e *entity.Equipment) error {
	c := e.Location.Columns()
	query := `
		UPDATE equipments SET assigned_to_id = $2, serial_number = $3, imei = $4, model_id = $5,
			supplier_id = $6, storage_location = $7, deposit_id = $8, technician_id = $9,
			service_provider_id = $10, vehicle_id = $11, leasing_in_progress = $12, blocked = $13,
			updated_at = $14
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		e.ID, e.AssignedToID, e.SerialNumber, e.IMEI, e.ModelID,
		e.SupplierID, string(c.Kind), c.DepositID, c.TechnicianID,
		c.ServiceProviderID, c.HolderID, e.LeasingInProgress, e.Blocked,
		e.UpdatedAt,
	)
	if err != nil {
		return dbError("update equipment", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un equipo por ID.
func (r *EquipmentRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM equipments WHERE id = $1`, id)
	if err != nil {
		return dbError("delete equipment", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search página de equipos del contratante con nombres resueltos.
func (r *EquipmentRepo) Search(ctx context.Context, f repository.DeviceFilter) (*repository.Page[repository.EquipmentListItem], error) {
	from := `equipments e
		JOIN equipment_models m ON m.id = e.model_id
		JOIN suppliers s ON s.id = e.supplier_id
		JOIN contractors o ON o.id = e.contractor_id
		LEFT JOIN contractors a ON a.id = e.assigned_to_id AND e.leasing_in_progress
		LEFT JOIN deposits d ON d.id = e.deposit_id
		LEFT JOIN technicians t ON t.id = e.technician_id
		LEFT JOIN service_providers p ON p.id = e.service_provider_id
		LEFT JOIN vehicles v ON v.id = e.vehicle_id`
	columns := equipmentColumns + `, m.name, s.name, o.name, COALESCE(a.name, ''),
		COALESCE(d.name, t.name, p.name, v.plate, '')`

	base := newSelect(columns, from).Where(equipmentHolderExpr+" = ?", f.HolderID)
	filtered := base.Clone().
		WhereIf(f.Location != "", "e.storage_location = ?", string(f.Location)).
		WhereIf(f.TargetID != "", "COALESCE(e.deposit_id, e.technician_id, e.service_provider_id, e.vehicle_id) = ?", f.TargetID).
		WhereIf(f.Blocked != nil, "e.blocked = ?", f.Blocked).
		WhereIf(f.Search != "", "e.serial_number ILIKE ? OR e.imei ILIKE ?", likePattern(f.Search), likePattern(f.Search)).
		OrderBy(f.OrderBy, f.Desc, equipmentOrder, "e.serial_number").
		Page(f.Length, f.Start)

	page := &repository.Page[repository.EquipmentListItem]{}
	if err := count(ctx, r.q, base, &page.Total); err != nil {
		return nil, dbError("count equipments", err)
	}
	if err := count(ctx, r.q, filtered, &page.Filtered); err != nil {
		return nil, dbError("count equipments", err)
	}

	sql, args := filtered.SQL()
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbError("search equipments", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item repository.EquipmentListItem
		e, err := scanEquipment(rows, &item.ModelName, &item.SupplierName, &item.OwnerName, &item.AssignedToName, &item.LocationName)
		if err != nil {
			return nil, dbError("scan equipment", err)
		}
		item.Equipment = *e
		page.Rows = append(page.Rows, item)
	}
	return page, dbError("search equipments", rows.Err())
}

func count(ctx context.Context, q Querier, b *selectBuilder, dst *int) error {
	sql, args := b.CountSQL()
	return q.QueryRow(ctx, sql, args...).Scan(dst)
}
