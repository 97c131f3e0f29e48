package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LocationInput destino enviado en formularios (detach, desinstalar, mover).
type LocationInput struct {
	Kind     string `json:"kind" validate:"required,location_kind"`
	TargetID string `json:"target_id"`
}

// LeaseInput campos de comodato del formulario de edición. Los punteros nil conservan el valor
// guardado.
type LeaseInput struct {
	LeasingInProgress bool             `json:"leasing_in_progress"`
	AssignedToID      string           `json:"assigned_to_id"`
	StartDate         *time.Time       `json:"start_date"`
	GracePeriod       *int             `json:"grace_period" validate:"omitempty,min=0,max=120"`
	MonthlyFee        *decimal.Decimal `json:"monthly_fee"`
	EndDate           *time.Time       `json:"end_date"`
	Notes             *string          `json:"notes" validate:"omitempty,max=500"`
}

// CreateEquipmentRequest alta de equipo; entra siempre en un depósito.
type CreateEquipmentRequest struct {
	SerialNumber string `json:"serial_number" validate:"required,max=40"`
	IMEI         string `json:"imei" validate:"omitempty,numeric,len=15"`
	ModelID      string `json:"model_id" validate:"required"`
	SupplierID   string `json:"supplier_id" validate:"required"`
	DepositID    string `json:"deposit_id"`
}

// UpdateEquipmentRequest edición de equipo. Sin bloque lease el comodato no se toca.
type UpdateEquipmentRequest struct {
	SerialNumber *string     `json:"serial_number" validate:"omitempty,min=1,max=40"`
	IMEI         *string     `json:"imei" validate:"omitempty,numeric,len=15"`
	ModelID      *string     `json:"model_id"`
	Lease        *LeaseInput `json:"lease"`
}

// InstallRequest instalación en vehículo.
type InstallRequest struct {
	VehicleID   string     `json:"vehicle_id" validate:"required"`
	InstalledAt *time.Time `json:"installed_at"`
}

// EquipmentResponse salida de un equipo.
type EquipmentResponse struct {
	ID                string    `json:"id"`
	ContractorID      string    `json:"contractor_id"`
	AssignedToID      *string   `json:"assigned_to_id,omitempty"`
	SerialNumber      string    `json:"serial_number"`
	IMEI              string    `json:"imei"`
	ModelID           string    `json:"model_id"`
	SupplierID        string    `json:"supplier_id"`
	StorageLocation   string    `json:"storage_location"`
	DepositID         *string   `json:"deposit_id,omitempty"`
	TechnicianID      *string   `json:"technician_id,omitempty"`
	ServiceProviderID *string   `json:"service_provider_id,omitempty"`
	VehicleID         *string   `json:"vehicle_id,omitempty"`
	LeasingInProgress bool      `json:"leasing_in_progress"`
	Blocked           bool      `json:"blocked"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// EquipmentRow fila del listado de equipos.
type EquipmentRow struct {
	EquipmentResponse
	ModelName      string `json:"model_name"`
	SupplierName   string `json:"supplier_name"`
	OwnerName      string `json:"owner_name"`
	AssignedToName string `json:"assigned_to_name,omitempty"`
	LocationName   string `json:"location_name"`
}

// CreateSimCardRequest alta de SIM card.
type CreateSimCardRequest struct {
	ICCID       string `json:"iccid" validate:"required,numeric,min=18,max=22"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
	SupplierID  string `json:"supplier_id" validate:"required"`
	DepositID   string `json:"deposit_id"`
}

// UpdateSimCardRequest edición de SIM card. Sin bloque lease el comodato no se toca.
type UpdateSimCardRequest struct {
	ICCID       *string     `json:"iccid" validate:"omitempty,numeric,min=18,max=22"`
	PhoneNumber *string     `json:"phone_number" validate:"omitempty,max=20"`
	Lease       *LeaseInput `json:"lease"`
}

// SimCardResponse salida de una SIM card.
type SimCardResponse struct {
	ID                string    `json:"id"`
	ContractorID      string    `json:"contractor_id"`
	AssignedToID      *string   `json:"assigned_to_id,omitempty"`
	ICCID             string    `json:"iccid"`
	PhoneNumber       string    `json:"phone_number"`
	SupplierID        string    `json:"supplier_id"`
	StorageLocation   string    `json:"storage_location"`
	DepositID         *string   `json:"deposit_id,omitempty"`
	TechnicianID      *string   `json:"technician_id,omitempty"`
	ServiceProviderID *string   `json:"service_provider_id,omitempty"`
	EquipmentID       *string   `json:"equipment_id,omitempty"`
	SlotNumber        int       `json:"slot_number"`
	LeasingInProgress bool      `json:"leasing_in_progress"`
	Blocked           bool      `json:"blocked"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// SimCardRow fila del listado de SIM cards.
type SimCardRow struct {
	SimCardResponse
	SupplierName   string `json:"supplier_name"`
	OwnerName      string `json:"owner_name"`
	AssignedToName string `json:"assigned_to_name,omitempty"`
	LocationName   string `json:"location_name"`
}

// SlotResponse un slot del equipo con su ocupante.
type SlotResponse struct {
	SlotNumber int              `json:"slot_number"`
	SimCard    *SimCardResponse `json:"simcard,omitempty"`
}

// AttachSimCardRequest SIM card a instalar en un slot.
type AttachSimCardRequest struct {
	SimCardID string `json:"simcard_id" validate:"required"`
}

// StorageLocationResponse descripción legible de la ubicación.
type StorageLocationResponse struct {
	Kind        string `json:"kind"`
	TargetID    string `json:"target_id,omitempty"`
	SlotNumber  int    `json:"slot_number,omitempty"`
	Description string `json:"description"`
}

// HistoryRow línea del histórico.
type HistoryRow struct {
	ID              string    `json:"id"`
	Action          string    `json:"action"`
	StorageLocation string    `json:"storage_location"`
	TargetID        string    `json:"target_id,omitempty"`
	AssignedToID    *string   `json:"assigned_to_id,omitempty"`
	UserID          string    `json:"user_id"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// LeaseResponse salida de un comodato.
type LeaseResponse struct {
	ID           string          `json:"id"`
	Kind         string          `json:"kind"`
	ItemID       string          `json:"item_id"`
	ContractorID string          `json:"contractor_id"`
	AssignedToID string          `json:"assigned_to_id"`
	StartDate    time.Time       `json:"start_date"`
	GracePeriod  int             `json:"grace_period"`
	GraceEndsAt  time.Time       `json:"grace_ends_at"`
	MonthlyFee   decimal.Decimal `json:"monthly_fee"`
	EndDate      *time.Time      `json:"end_date,omitempty"`
}
