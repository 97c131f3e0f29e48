package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lease registro de comodato (leasedequipments / leasedsimcards). EndDate nil = activo.
type Lease struct {
	ID           string
	Kind         DeviceKind
	ItemID       string
	ContractorID string // dueño del dispositivo
	AssignedToID string // arrendatario
	StartDate    time.Time
	GracePeriod  int // meses
	MonthlyFee   decimal.Decimal
	Notes        string
	EndDate      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active informa si el comodato sigue abierto.
func (l *Lease) Active() bool { return l.EndDate == nil }

// GraceEndsAt fecha en que termina el período de carencia.
func (l *Lease) GraceEndsAt() time.Time { return l.StartDate.AddDate(0, l.GracePeriod, 0) }
