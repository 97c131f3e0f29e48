package entity

import (
	"encoding/json"
	"fmt"
)

// LocationKind indica dónde está físicamente un dispositivo.
type LocationKind string

const (
	LocationDeposit         LocationKind = "StoredOnDeposit"
	LocationInstalled       LocationKind = "Installed"
	LocationTechnician      LocationKind = "StoredWithTechnician"
	LocationServiceProvider LocationKind = "StoredWithServiceProvider"
	LocationMaintenance     LocationKind = "UnderMaintenance"
	LocationReturned        LocationKind = "ReturnedToSupplier"
)

// Valid informa si el tipo es uno de los conocidos.
func (k LocationKind) Valid() bool {
	switch k {
	case LocationDeposit, LocationInstalled, LocationTechnician,
		LocationServiceProvider, LocationMaintenance, LocationReturned:
		return true
	}
	return false
}

// Stored informa si el dispositivo está guardado (no instalado, no devuelto).
func (k LocationKind) Stored() bool {
	switch k {
	case LocationDeposit, LocationTechnician, LocationServiceProvider, LocationMaintenance:
		return true
	}
	return false
}

// StorageLocation es la ubicación de un dispositivo: el tipo más exactamente el destino que le
// corresponde. Solo se construye con OnDeposit, WithTechnician, etc., por lo que nunca hay dos
// destinos rellenos a la vez.
type StorageLocation struct {
	kind     LocationKind
	targetID string
	slot     int
}

// OnDeposit guardado en un depósito.
func OnDeposit(depositID string) StorageLocation {
	return StorageLocation{kind: LocationDeposit, targetID: depositID}
}

// WithTechnician en poder de un técnico.
func WithTechnician(technicianID string) StorageLocation {
	return StorageLocation{kind: LocationTechnician, targetID: technicianID}
}

// WithServiceProvider en poder de un prestador de servicios.
func WithServiceProvider(providerID string) StorageLocation {
	return StorageLocation{kind: LocationServiceProvider, targetID: providerID}
}

// InstalledOn equipo instalado en un vehículo.
func InstalledOn(vehicleID string) StorageLocation {
	return StorageLocation{kind: LocationInstalled, targetID: vehicleID}
}

// InSlot SIM card instalada en el slot de un equipo (slots empiezan en 1).
func InSlot(equipmentID string, slot int) StorageLocation {
	return StorageLocation{kind: LocationInstalled, targetID: equipmentID, slot: slot}
}

// UnderMaintenance en mantenimiento.
func UnderMaintenance() StorageLocation { return StorageLocation{kind: LocationMaintenance} }

// ReturnedToSupplier devuelto al proveedor.
func ReturnedToSupplier() StorageLocation { return StorageLocation{kind: LocationReturned} }

func (l StorageLocation) Kind() LocationKind { return l.kind }
func (l StorageLocation) TargetID() string   { return l.targetID }
func (l StorageLocation) Slot() int          { return l.slot }
func (l StorageLocation) IsZero() bool       { return l.kind == "" }

// DepositID devuelve el depósito solo si la ubicación es un depósito.
func (l StorageLocation) DepositID() (string, bool) {
	return l.targetID, l.kind == LocationDeposit
}

// Equal compara tipo, destino y slot.
func (l StorageLocation) Equal(o StorageLocation) bool {
	return l.kind == o.kind && l.targetID == o.targetID && l.slot == o.slot
}

func (l StorageLocation) String() string {
	switch {
	case l.kind == LocationInstalled && l.slot > 0:
		return fmt.Sprintf("%s(%s#%d)", l.kind, l.targetID, l.slot)
	case l.targetID != "":
		return fmt.Sprintf("%s(%s)", l.kind, l.targetID)
	}
	return string(l.kind)
}

// LocationColumns es la forma persistida: exactamente una clave foránea no nula (o ninguna).
type LocationColumns struct {
	Kind              LocationKind
	DepositID         *string
	TechnicianID      *string
	ServiceProviderID *string
	HolderID          *string // vehicle_id para equipos, equipment_id para SIM cards
	SlotNumber        *int
}

// Columns proyecta la ubicación a columnas.
func (l StorageLocation) Columns() LocationColumns {
	c := LocationColumns{Kind: l.kind}
	id := l.targetID
	switch l.kind {
	case LocationDeposit:
		c.DepositID = &id
	case LocationTechnician:
		c.TechnicianID = &id
	case LocationServiceProvider:
		c.ServiceProviderID = &id
	case LocationInstalled:
		c.HolderID = &id
		if l.slot > 0 {
			slot := l.slot
			c.SlotNumber = &slot
		}
	}
	return c
}

// LocationFromColumns reconstruye la ubicación y rechaza filas donde la clave foránea rellena
// no corresponde al tipo.
func LocationFromColumns(c LocationColumns) (StorageLocation, error) {
	filled := 0
	for _, p := range []*string{c.DepositID, c.TechnicianID, c.ServiceProviderID, c.HolderID} {
		if p != nil && *p != "" {
			filled++
		}
	}
	slot := 0
	if c.SlotNumber != nil {
		slot = *c.SlotNumber
	}
	bad := fmt.Errorf("ubicación inconsistente: %s", c.Kind)
	switch c.Kind {
	case LocationDeposit:
		if filled != 1 || c.DepositID == nil {
			return StorageLocation{}, bad
		}
		return OnDeposit(*c.DepositID), nil
	case LocationTechnician:
		if filled != 1 || c.TechnicianID == nil {
			return StorageLocation{}, bad
		}
		return WithTechnician(*c.TechnicianID), nil
	case LocationServiceProvider:
		if filled != 1 || c.ServiceProviderID == nil {
			return StorageLocation{}, bad
		}
		return WithServiceProvider(*c.ServiceProviderID), nil
	case LocationInstalled:
		if filled != 1 || c.HolderID == nil {
			return StorageLocation{}, bad
		}
		if slot > 0 {
			return InSlot(*c.HolderID, slot), nil
		}
		return InstalledOn(*c.HolderID), nil
	case LocationMaintenance, LocationReturned:
		if filled != 0 {
			return StorageLocation{}, bad
		}
		return StorageLocation{kind: c.Kind}, nil
	}
	return StorageLocation{}, fmt.Errorf("tipo de ubicación desconocido: %q", c.Kind)
}

// ParseLocation construye una ubicación a partir de la entrada de un formulario.
// Installed no se acepta aquí: solo se llega a él instalando.
func ParseLocation(kind LocationKind, targetID string) (StorageLocation, error) {
	switch kind {
	case LocationDeposit, LocationTechnician, LocationServiceProvider:
		if targetID == "" {
			return StorageLocation{}, fmt.Errorf("%s requiere destino", kind)
		}
		return StorageLocation{kind: kind, targetID: targetID}, nil
	case LocationMaintenance, LocationReturned:
		return StorageLocation{kind: kind}, nil
	}
	return StorageLocation{}, fmt.Errorf("tipo de ubicación no permitido: %q", kind)
}

type locationJSON struct {
	Kind     LocationKind `json:"kind"`
	TargetID string       `json:"target_id,omitempty"`
	Slot     int          `json:"slot,omitempty"`
}

func (l StorageLocation) MarshalJSON() ([]byte, error) {
	return json.Marshal(locationJSON{Kind: l.kind, TargetID: l.targetID, Slot: l.slot})
}

func (l *StorageLocation) UnmarshalJSON(b []byte) error {
	var raw locationJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Kind == "" {
		*l = StorageLocation{}
		return nil
	}
	if !raw.Kind.Valid() {
		return fmt.Errorf("tipo de ubicación desconocido: %q", raw.Kind)
	}
	*l = StorageLocation{kind: raw.Kind, targetID: raw.TargetID, slot: raw.Slot}
	return nil
}
