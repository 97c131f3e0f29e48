package dto

import "time"

// StartMovimentationRequest inicia el asistente.
type StartMovimentationRequest struct {
	Mode string `json:"mode" validate:"required,oneof=transfer return"`
}

// SelectOriginRequest paso 1: tipo de dispositivo y ubicación actual.
type SelectOriginRequest struct {
	DeviceKind string `json:"device_kind" validate:"required,oneof=equipment simcard"`
	Location   string `json:"location" validate:"required,location_kind"`
	TargetID   string `json:"target_id"`
}

// SelectDevicesRequest paso 2: dispositivos elegidos.
type SelectDevicesRequest struct {
	DeviceIDs []string `json:"device_ids" validate:"required,min=1,max=500,dive,required"`
}

// SelectDestinationRequest paso 3 (solo traslado).
type SelectDestinationRequest struct {
	Location string `json:"location" validate:"required,location_kind"`
	TargetID string `json:"target_id"`
}

// MovimentationResponse estado del asistente.
type MovimentationResponse struct {
	ID                  string    `json:"id"`
	Mode                string    `json:"mode"`
	Step                string    `json:"step"`
	DeviceKind          string    `json:"device_kind,omitempty"`
	Origin              string    `json:"origin,omitempty"`
	OriginTargetID      string    `json:"origin_target_id,omitempty"`
	DeviceIDs           []string  `json:"device_ids,omitempty"`
	Destination         string    `json:"destination,omitempty"`
	DestinationTargetID string    `json:"destination_target_id,omitempty"`
	Moved               int       `json:"moved,omitempty"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// DeviceCandidate dispositivo elegible en el paso 2.
type DeviceCandidate struct {
	ID                string `json:"id"`
	Label             string `json:"label"`
	LeasingInProgress bool   `json:"leasing_in_progress"`
}
