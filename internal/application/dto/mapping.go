package dto

import (
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
)

// FromEquipment convierte la entidad en su salida HTTP.
func FromEquipment(e *entity.Equipment) EquipmentResponse {
	cols := e.Location.Columns()
	return EquipmentResponse{
		ID:                e.ID,
		ContractorID:      e.ContractorID,
		AssignedToID:      e.AssignedToID,
		SerialNumber:      e.SerialNumber,
		IMEI:              e.IMEI,
		ModelID:           e.ModelID,
		SupplierID:        e.SupplierID,
		StorageLocation:   string(cols.Kind),
		DepositID:         cols.DepositID,
		TechnicianID:      cols.TechnicianID,
		ServiceProviderID: cols.ServiceProviderID,
		VehicleID:         cols.HolderID,
		LeasingInProgress: e.LeasingInProgress,
		Blocked:           e.Blocked,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

// FromSimCard convierte la entidad en su salida HTTP.
func FromSimCard(s *entity.SimCard) SimCardResponse {
	cols := s.Location.Columns()
	return SimCardResponse{
		ID:                s.ID,
		ContractorID:      s.ContractorID,
		AssignedToID:      s.AssignedToID,
		ICCID:             s.ICCID,
		PhoneNumber:       s.PhoneNumber,
		SupplierID:        s.SupplierID,
		StorageLocation:   string(cols.Kind),
		DepositID:         cols.DepositID,
		TechnicianID:      cols.TechnicianID,
		ServiceProviderID: cols.ServiceProviderID,
		EquipmentID:       cols.HolderID,
		SlotNumber:        s.Location.Slot(),
		LeasingInProgress: s.LeasingInProgress,
		Blocked:           s.Blocked,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// FromLease convierte un comodato.
func FromLease(l *entity.Lease) LeaseResponse {
	return LeaseResponse{
		ID:           l.ID,
		Kind:         string(l.Kind),
		ItemID:       l.ItemID,
		ContractorID: l.ContractorID,
		AssignedToID: l.AssignedToID,
		StartDate:    l.StartDate,
		GracePeriod:  l.GracePeriod,
		GraceEndsAt:  l.GraceEndsAt(),
		MonthlyFee:   l.MonthlyFee,
		EndDate:      l.EndDate,
	}
}

// FromHistory convierte una línea del histórico.
func FromHistory(h *entity.HistoryEntry) HistoryRow {
	return HistoryRow{
		ID:              h.ID,
		Action:          h.Action,
		StorageLocation: string(h.Location.Kind()),
		TargetID:        h.Location.TargetID(),
		AssignedToID:    h.AssignedToID,
		UserID:          h.UserID,
		Notes:           h.Notes,
		CreatedAt:       h.CreatedAt,
	}
}

// FromDeposit convierte un depósito.
func FromDeposit(d *entity.Deposit) DepositResponse {
	return DepositResponse{
		ID:           d.ID,
		ContractorID: d.ContractorID,
		Name:         d.Name,
		Address:      d.Address,
		Master:       d.Master,
		Blocked:      d.Blocked,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// FromUser convierte un usuario (sin hash).
func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		ContractorID: u.ContractorID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
