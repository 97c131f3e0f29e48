// Package pdf implementa la versión imprimible de los listados de dispositivos.
//
// Layout de la página A4 apaisada:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Contratante + título  │  Fecha de generación       │
//	│  FILTROS aplicados                                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una columna por campo del listado                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de registros                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jeanheinriich/agendamentos-sub004/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ ports.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateReport genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReport(_ context.Context, table ports.ReportTable) ([]byte, error) {
	if err := checkWidths(table); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(table.Title, true).
		WithAuthor(table.Contractor, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(table))
	if table.Subtitle != "" {
		m.AddRows(filterRow(table.Subtitle))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow(table.Columns, table.Widths))
	m.AddRows(tableBodyRows(table.Rows, table.Widths)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	if table.Footer != "" {
		m.AddRows(footerRow(table.Footer))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: contratante + título (izq) y fecha de generación (der).
func headerRow(table ports.ReportTable) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(nonEmpty(table.Contractor, "—"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(table.Title, props.Text{
				Size: 10, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(table.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func filterRow(subtitle string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(subtitle, props.Text{Size: 8, Color: colorGray, Top: 1}),
	))
}

// tableHeaderRow: cabecera con fondo azul.
func tableHeaderRow(columns []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for i, label := range columns {
		cols = append(cols, col.New(widths[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Left,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableBodyRows: una fila por registro, alternando fondo.
func tableBodyRows(rows [][]string, widths []int) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for i, cells := range rows {
		cols := make([]core.Col, 0, len(widths))
		for j, w := range widths {
			value := ""
			if j < len(cells) {
				value = cells[j]
			}
			cols = append(cols, col.New(w).Add(text.New(
				nonEmpty(value, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Right: 1},
			)))
		}
		r := row.New(6).Add(cols...)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

func footerRow(footer string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(footer, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// checkWidths valida que haya un ancho por columna y que sumen las 12 columnas de la grilla.
func checkWidths(table ports.ReportTable) error {
	if len(table.Widths) != len(table.Columns) {
		return fmt.Errorf("pdf: %d columnas y %d anchos", len(table.Columns), len(table.Widths))
	}
	sum := 0
	for _, w := range table.Widths {
		sum += w
	}
	if sum != 12 {
		return fmt.Errorf("pdf: los anchos suman %d, se esperaba 12", sum)
	}
	return nil
}
