package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/repository"
)

var _ repository.InstallationRepository = (*InstallationRepo)(nil)

// InstallationRepo instalaciones de equipos en vehículos.
type InstallationRepo struct {
	q Querier
}

// NewInstallationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInstallationRepository(q Querier) *InstallationRepo {
	return &InstallationRepo{q: q}
}

// Open registra una instalación. Solo puede haber una abierta por equipo.
func (r *InstallationRepo) Open(ctx context.Context, in *entity.Installation) error {
	query := `
		INSERT INTO installations (id, equipment_id, vehicle_id, installed_at, uninstalled_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, in.ID, in.EquipmentID, in.VehicleID, in.InstalledAt, in.UninstalledAt)
	return dbError("open installation", err)
}

// GetOpen instalación abierta del equipo; nil si no está instalado.
func (r *InstallationRepo) GetOpen(ctx context.Context, equipmentID string) (*entity.Installation, error) {
	query := `
		SELECT id, equipment_id, vehicle_id, installed_at, uninstalled_at
		FROM installations WHERE equipment_id = $1 AND uninstalled_at IS NULL`
	var in entity.Installation
	err := r.q.QueryRow(ctx, query, equipmentID).Scan(
		&in.ID, &in.EquipmentID, &in.VehicleID, &in.InstalledAt, &in.UninstalledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbError("get open installation", err)
	}
	return &in, nil
}

// Close cierra la instalación abierta.
func (r *InstallationRepo) Close(ctx context.Context, equipmentID string, at time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE installations SET uninstalled_at = $2 WHERE equipment_id = $1 AND uninstalled_at IS NULL`,
		equipmentID, at)
	if err != nil {
		return 0, dbError("close installation", err)
	}
	return cmd.RowsAffected(), nil
}

// DeleteSideRecords elimina integraciones y autorizaciones ligadas al equipo instalado.
func (r *InstallationRepo) DeleteSideRecords(ctx context.Context, equipmentID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM installation_integrations WHERE equipment_id = $1`, equipmentID); err != nil {
		return dbError("delete integrations", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM installation_authorizations WHERE equipment_id = $1`, equipmentID); err != nil {
		return dbError("delete authorizations", err)
	}
	return nil
}

// DeleteByEquipment elimina todas las instalaciones del equipo.
func (r *InstallationRepo) DeleteByEquipment(ctx context.Context, equipmentID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM installations WHERE equipment_id = $1`, equipmentID)
	return dbError("delete installations", err)
}
