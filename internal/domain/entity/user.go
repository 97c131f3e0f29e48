package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// User representa un usuario del sistema (pertenece a un Contractor).
type User struct {
	ID           string
	ContractorID string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Role         string // admin, operator, viewer
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
