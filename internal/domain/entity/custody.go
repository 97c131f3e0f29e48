package entity

import "time"

// Deposit es un depósito del contratante. El marcado como Master es el depósito por defecto.
type Deposit struct {
	ID           string
	ContractorID string
	Name         string
	Address      string
	Master       bool
	Blocked      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Technician técnico de campo que puede tener equipos y SIM cards en su poder.
type Technician struct {
	ID           string
	ContractorID string
	Name         string
	Blocked      bool
}

// ServiceProvider prestador de servicios que puede custodiar dispositivos.
type ServiceProvider struct {
	ID           string
	ContractorID string
	Name         string
	Blocked      bool
}

// Vehicle vehículo donde se instalan los rastreadores.
type Vehicle struct {
	ID           string
	ContractorID string
	Plate        string
	Blocked      bool
}

// Supplier proveedor de equipos u operadora de SIM cards. Una filial es un Supplier con ParentID.
type Supplier struct {
	ID       string
	Name     string
	ParentID *string
	Blocked  bool
}

// EquipmentModel modelo de rastreador; define cuántos slots de SIM card tiene.
type EquipmentModel struct {
	ID          string
	Name        string
	MaxSimCards int
}
