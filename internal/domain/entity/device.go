package entity

import "time"

// DeviceKind distingue los dos tipos de dispositivo del inventario.
type DeviceKind string

const (
	DeviceEquipment DeviceKind = "equipment"
	DeviceSimCard   DeviceKind = "simcard"
)

// Valid informa si el tipo es conocido.
func (k DeviceKind) Valid() bool { return k == DeviceEquipment || k == DeviceSimCard }

// Equipment rastreador del inventario.
type Equipment struct {
	ID                string
	ContractorID      string  // dueño
	AssignedToID      *string // arrendatario mientras hay comodato
	SerialNumber      string
	IMEI              string
	ModelID           string
	SupplierID        string
	Location          StorageLocation
	LeasingInProgress bool
	Blocked           bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Holder es quien tiene el equipo a disposición: el arrendatario si hay comodato, si no el dueño.
func (e *Equipment) Holder() string { return holderOf(e.ContractorID, e.AssignedToID, e.LeasingInProgress) }

// SimCard tarjeta SIM del inventario.
type SimCard struct {
	ID                string
	ContractorID      string
	AssignedToID      *string
	ICCID             string
	PhoneNumber       string
	SupplierID        string // operadora
	Location          StorageLocation
	LeasingInProgress bool
	Blocked           bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Holder ver Equipment.Holder.
func (s *SimCard) Holder() string { return holderOf(s.ContractorID, s.AssignedToID, s.LeasingInProgress) }

// EquipmentID devuelve el equipo y slot donde está instalada, si lo está.
func (s *SimCard) EquipmentID() (string, int, bool) {
	if s.Location.Kind() == LocationInstalled && s.Location.Slot() > 0 {
		return s.Location.TargetID(), s.Location.Slot(), true
	}
	return "", 0, false
}

func holderOf(owner string, assignedTo *string, leased bool) string {
	if leased && assignedTo != nil && *assignedTo != "" {
		return *assignedTo
	}
	return owner
}
