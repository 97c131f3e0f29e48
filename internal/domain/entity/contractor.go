package entity

import "time"

// Contractor representa el tenant del ERP: dueño del inventario y, en un comodato, también el arrendatario.
type Contractor struct {
	ID        string
	Name      string
	Blocked   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
