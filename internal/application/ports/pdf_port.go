package ports

import (
	"context"
	"time"
)

// ReportTable tabla lista para imprimir. Los textos ya vienen traducidos.
type ReportTable struct {
	Title       string
	Subtitle    string
	Contractor  string
	Columns     []string
	Widths      []int // suma 12 (grilla de maroto)
	Rows        [][]string
	Footer      string
	GeneratedAt time.Time
}

// ReportPDFGenerator genera la versión imprimible de los listados.
type ReportPDFGenerator interface {
	GenerateReport(ctx context.Context, table ReportTable) ([]byte, error)
}
