package dto

// Actor identifica a quien hace la petición (sale del JWT). Se pasa explícitamente a cada caso de uso.
type Actor struct {
	UserID       string
	ContractorID string
	Role         string
}

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// Valores de Result.
const (
	ResultOK  = "OK"
	ResultNOK = "NOK"
)

// ResultResponse respuesta de las operaciones de escritura.
type ResultResponse struct {
	Result  string `json:"result"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Result  string            `json:"result"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// DataTablesRequest parámetros que envía el componente de grilla del cliente.
type DataTablesRequest struct {
	Draw      int    `query:"draw"`
	Start     int    `query:"start" validate:"min=0"`
	Length    int    `query:"length" validate:"min=0,max=500"`
	Search    string `query:"search" validate:"max=100"`
	OrderBy   string `query:"order_by" validate:"omitempty,max=40"`
	OrderDir  string `query:"order_dir" validate:"omitempty,oneof=asc desc"`
	Location  string `query:"location" validate:"omitempty,location_kind"`
	TargetID  string `query:"target_id"`
	Blocked   *bool  `query:"blocked"`
}

// Normalize aplica límites por defecto.
func (r *DataTablesRequest) Normalize() {
	if r.Length <= 0 {
		r.Length = 25
	}
	if r.Length > 500 {
		r.Length = 500
	}
	if r.Start < 0 {
		r.Start = 0
	}
}

// DataTablesResponse respuesta con el formato que espera la grilla.
type DataTablesResponse[T any] struct {
	Draw            int `json:"draw"`
	RecordsTotal    int `json:"recordsTotal"`
	RecordsFiltered int `json:"recordsFiltered"`
	Data            []T `json:"data"`
}
