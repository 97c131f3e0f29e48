package postgres

import (
	"context"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/repository"
)

var (
	_ repository.DepositRepository         = (*DepositRepo)(nil)
	_ repository.TechnicianRepository      = (*TechnicianRepo)(nil)
	_ repository.ServiceProviderRepository = (*ServiceProviderRepo)(nil)
	_ repository.VehicleRepository         = (*VehicleRepo)(nil)
	_ repository.SupplierRepository        = (*SupplierRepo)(nil)
	_ repository.EquipmentModelRepository  = (*EquipmentModelRepo)(nil)
)

// ---------------------------------------------------------------------------
// Depósitos
// ---------------------------------------------------------------------------

// DepositRepo implementación del puerto DepositRepository sobre PostgreSQL.
type DepositRepo struct {
	q Querier
}

// NewDepositRepository construye el adaptador de persistencia para depósitos. Pasar pool o tx.
func NewDepositRepository(q Querier) *DepositRepo {
	return &DepositRepo{q: q}
}

const depositColumns = `id, contractor_id, name, address, master, blocked, created_at, updated_at`

// Create persiste un nuevo depósito.
func (r *DepositRepo) Create(ctx context.Context, d *entity.Deposit) error {
	query := `
		INSERT INTO deposits (id, contractor_id, name, address, master, blocked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.ContractorID, d.Name, d.Address, d.Master, d.Blocked, d.CreatedAt, d.UpdatedAt,
	)
	return dbError("insert deposit", err)
}

// GetByID obtiene un depósito por ID.
func (r *DepositRepo) GetByID(ctx context.Context, id string) (*entity.Deposit, error) {
	var d entity.Deposit
	err := r.q.QueryRow(ctx, `SELECT `+depositColumns+` FROM deposits WHERE id = $1`, id).Scan(
		&d.ID, &d.ContractorID, &d.Name, &d.Address, &d.Master, &d.Blocked, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, dbError("get deposit", err)
	}
	return &d, nil
}

// GetDefault depósito master del contratante o, si no hay, el primero por nombre.
func (r *DepositRepo) GetDefault(ctx context.Context, contractorID string) (*entity.Deposit, error) {
	list, err := r.ListByContractor(ctx, contractorID, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// ListByContractor lista los depósitos activos: primero el master, luego por nombre.
func (r *DepositRepo) ListByContractor(ctx context.Context, contractorID string, limit, offset int) ([]*entity.Deposit, error) {
	sql, args := newSelect(depositColumns, "deposits").
		Where("contractor_id = ?", contractorID).
		Where("NOT blocked").
		OrderBy("", false, nil, "master DESC, name").
		Page(limit, offset).
		SQL()
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbError("list deposits", err)
	}
	defer rows.Close()
	var list []*entity.Deposit
	for rows.Next() {
		var d entity.Deposit
		if err := rows.Scan(&d.ID, &d.ContractorID, &d.Name, &d.Address, &d.Master, &d.Blocked, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, dbError("scan deposit", err)
		}
		list = append(list, &d)
	}
	return list, dbError("list deposits", rows.Err())
}

// ---------------------------------------------------------------------------
// Técnicos y prestadores de servicios
// ---------------------------------------------------------------------------

// TechnicianRepo implementación de TechnicianRepository.
type TechnicianRepo struct {
	q Querier
}

// NewTechnicianRepository construye el adaptador.
func NewTechnicianRepository(q Querier) *TechnicianRepo {
	return &TechnicianRepo{q: q}
}

func (r *TechnicianRepo) GetByID(ctx context.Context, id string) (*entity.Technician, error) {
	var t entity.Technician
	err := r.q.QueryRow(ctx,
		`SELECT id, contractor_id, name, blocked FROM technicians WHERE id = $1`, id,
	).Scan(&t.ID, &t.ContractorID, &t.Name, &t.Blocked)
	if err != nil {
		return nil, dbError("get technician", err)
	}
	return &t, nil
}

func (r *TechnicianRepo) ListByContractor(ctx context.Context, contractorID string) ([]*entity.Technician, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, contractor_id, name, blocked FROM technicians
		 WHERE contractor_id = $1 AND NOT blocked ORDER BY name`, contractorID)
	if err != nil {
		return nil, dbError("list technicians", err)
	}
	defer rows.Close()
	var list []*entity.Technician
	for rows.Next() {
		var t entity.Technician
		if err := rows.Scan(&t.ID, &t.ContractorID, &t.Name, &t.Blocked); err != nil {
			return nil, dbError("scan technician", err)
		}
		list = append(list, &t)
	}
	return list, dbError("list technicians", rows.Err())
}

// ServiceProviderRepo implementación de ServiceProviderRepository.
type ServiceProviderRepo struct {
	q Querier
}

// NewServiceProviderRepository construye el adaptador.
func NewServiceProviderRepository(q Querier) *ServiceProviderRepo {
	return &ServiceProviderRepo{q: q}
}

func (r *ServiceProviderRepo) GetByID(ctx context.Context, id string) (*entity.ServiceProvider, error) {
	var p entity.ServiceProvider
	err := r.q.QueryRow(ctx,
		`SELECT id, contractor_id, name, blocked FROM service_providers WHERE id = $1`, id,
	).Scan(&p.ID, &p.ContractorID, &p.Name, &p.Blocked)
	if err != nil {
		return nil, dbError("get service provider", err)
	}
	return &p, nil
}

func (r *ServiceProviderRepo) ListByContractor(ctx context.Context, contractorID string) ([]*entity.ServiceProvider, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, contractor_id, name, blocked FROM service_providers
		 WHERE contractor_id = $1 AND NOT blocked ORDER BY name`, contractorID)
	if err != nil {
		return nil, dbError("list service providers", err)
	}
	defer rows.Close()
	var list []*entity.ServiceProvider
	for rows.Next() {
		var p entity.ServiceProvider
		if err := rows.Scan(&p.ID, &p.ContractorID, &p.Name, &p.Blocked); err != nil {
			return nil, dbError("scan service provider", err)
		}
		list = append(list, &p)
	}
	return list, dbError("list service providers", rows.Err())
}

// ---------------------------------------------------------------------------
// Vehículos, proveedores y modelos
// ---------------------------------------------------------------------------

// VehicleRepo implementación de VehicleRepository.
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador.
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

func (r *VehicleRepo) GetByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := r.q.QueryRow(ctx,
		`SELECT id, contractor_id, plate, blocked FROM vehicles WHERE id = $1`, id,
	).Scan(&v.ID, &v.ContractorID, &v.Plate, &v.Blocked)
	if err != nil {
		return nil, dbError("get vehicle", err)
	}
	return &v, nil
}

// SupplierRepo implementación de SupplierRepository.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(ctx,
		`SELECT id, name, parent_id, blocked FROM suppliers WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.ParentID, &s.Blocked)
	if err != nil {
		return nil, dbError("get supplier", err)
	}
	return &s, nil
}

// IsBlocked true si el proveedor o su matriz están bloqueados.
func (r *SupplierRepo) IsBlocked(ctx context.Context, id string) (bool, error) {
	query := `
		SELECT s.blocked OR COALESCE(p.blocked, false)
		FROM suppliers s
		LEFT JOIN suppliers p ON p.id = s.parent_id
		WHERE s.id = $1`
	var blocked bool
	if err := r.q.QueryRow(ctx, query, id).Scan(&blocked); err != nil {
		return false, dbError("supplier blocked", err)
	}
	return blocked, nil
}

// EquipmentModelRepo implementación de EquipmentModelRepository.
type EquipmentModelRepo struct {
	q Querier
}

// NewEquipmentModelRepository construye el adaptador.
func NewEquipmentModelRepository(q Querier) *EquipmentModelRepo {
	return &EquipmentModelRepo{q: q}
}

func (r *EquipmentModelRepo) GetByID(ctx context.Context, id string) (*entity.EquipmentModel, error) {
	var m entity.EquipmentModel
	err := r.q.QueryRow(ctx,
		`SELECT id, name, max_simcards FROM equipment_models WHERE id = $1`, id,
	).Scan(&m.ID, &m.Name, &m.MaxSimCards)
	if err != nil {
		return nil, dbError("get equipment model", err)
	}
	return &m, nil
}
