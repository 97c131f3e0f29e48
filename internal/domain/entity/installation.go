package entity

import "time"

// Installation registro de instalación de un equipo en un vehículo. UninstalledAt nil = instalado.
type Installation struct {
	ID            string
	EquipmentID   string
	VehicleID     string
	InstalledAt   time.Time
	UninstalledAt *time.Time
}
