package dto

import "time"

// CreateDepositRequest entrada para crear un depósito.
type CreateDepositRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Address string `json:"address" validate:"max=200"`
	Master  bool   `json:"master"`
}

// DepositResponse salida de un depósito.
type DepositResponse struct {
	ID           string    `json:"id"`
	ContractorID string    `json:"contractor_id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Master       bool      `json:"master"`
	Blocked      bool      `json:"blocked"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DepositListResponse lista paginada de depósitos.
type DepositListResponse struct {
	Items []DepositResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// NamedResponse técnicos y prestadores de servicio en los combos del formulario.
type NamedResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Blocked bool   `json:"blocked"`
}
