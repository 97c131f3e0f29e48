package entity

import "time"

// Acciones registradas en el histórico de dispositivos.
const (
	ActionCreated     = "CREATED"
	ActionUpdated     = "UPDATED"
	ActionMoved       = "MOVED"
	ActionInstalled   = "INSTALLED"
	ActionUninstalled = "UNINSTALLED"
	ActionAttached    = "ATTACHED"
	ActionDetached    = "DETACHED"
	ActionLeaseBegin  = "LEASE_BEGIN"
	ActionLeaseEnd    = "LEASE_END"
	ActionLeaseUpdate = "LEASE_UPDATE"
	ActionBlocked     = "BLOCKED"
	ActionUnblocked   = "UNBLOCKED"
	ActionReturned    = "RETURNED"
)

// HistoryEntry una línea del histórico de un dispositivo.
type HistoryEntry struct {
	ID           string
	Kind         DeviceKind
	ItemID       string
	ContractorID string
	UserID       string
	Action       string
	Location     StorageLocation
	AssignedToID *string
	Notes        string
	CreatedAt    time.Time
}
