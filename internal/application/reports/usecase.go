// Package reports lista equipos y SIM cards con paginación del lado del servidor, el histórico
// de cada dispositivo y la versión imprimible (PDF) de los listados.
package reports

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/ports"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/repository"
	"github.com/jeanheinriich/agendamentos-sub004/pkg/i18n"
)

// MaxPrintRows límite de filas de un listado impreso.
const MaxPrintRows = 5000

// ReportUseCase casos de uso de listados.
type ReportUseCase struct {
	repos       repository.Set
	contractors repository.ContractorRepository
	generator   ports.ReportPDFGenerator
}

// NewReportUseCase construye el caso de uso inyectando sus dependencias.
func NewReportUseCase(repos repository.Set, contractors repository.ContractorRepository, generator ports.ReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{repos: repos, contractors: contractors, generator: generator}
}

func filterFrom(actor dto.Actor, req dto.DataTablesRequest) repository.DeviceFilter {
	return repository.DeviceFilter{
		HolderID: actor.ContractorID,
		Location: entity.LocationKind(req.Location),
		TargetID: req.TargetID,
		Search:   req.Search,
		Blocked:  req.Blocked,
		OrderBy:  req.OrderBy,
		Desc:     req.OrderDir == "desc",
		Start:    req.Start,
		Length:   req.Length,
	}
}

// SearchEquipments página de equipos que el actor tiene (propios sin comodato o arrendados a él).
func (uc *ReportUseCase) SearchEquipments(ctx context.Context, actor dto.Actor, req dto.DataTablesRequest) (*dto.DataTablesResponse[dto.EquipmentRow], error) {
	req.Normalize()
	page, err := uc.repos.Equipments.Search(ctx, filterFrom(actor, req))
	if err != nil {
		return nil, err
	}
	rows := make([]dto.EquipmentRow, 0, len(page.Rows))
	for _, r := range page.Rows {
		rows = append(rows, equipmentRow(r))
	}
	return &dto.DataTablesResponse[dto.EquipmentRow]{
		Draw: req.Draw, RecordsTotal: page.Total, RecordsFiltered: page.Filtered, Data: rows,
	}, nil
}

// SearchSimCards página de SIM cards.
func (uc *ReportUseCase) SearchSimCards(ctx context.Context, actor dto.Actor, req dto.DataTablesRequest) (*dto.DataTablesResponse[dto.SimCardRow], error) {
	req.Normalize()
	page, err := uc.repos.SimCards.Search(ctx, filterFrom(actor, req))
	if err != nil {
		return nil, err
	}
	rows := make([]dto.SimCardRow, 0, len(page.Rows))
	for _, r := range page.Rows {
		rows = append(rows, simCardRow(r))
	}
	return &dto.DataTablesResponse[dto.SimCardRow]{
		Draw: req.Draw, RecordsTotal: page.Total, RecordsFiltered: page.Filtered, Data: rows,
	}, nil
}

// History histórico del dispositivo, del más reciente al más antiguo.
func (uc *ReportUseCase) History(ctx context.Context, actor dto.Actor, kind entity.DeviceKind, id string, req dto.DataTablesRequest) (*dto.DataTablesResponse[dto.HistoryRow], error) {
	req.Normalize()
	var owner, holder string
	switch kind {
	case entity.DeviceEquipment:
		eq, err := uc.repos.Equipments.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		owner, holder = eq.ContractorID, eq.Holder()
	case entity.DeviceSimCard:
		card, err := uc.repos.SimCards.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		owner, holder = card.ContractorID, card.Holder()
	default:
		return nil, domain.ErrInvalidInput
	}
	if actor.ContractorID != owner && actor.ContractorID != holder {
		return nil, domain.ErrNotFound
	}
	page, err := uc.repos.History.List(ctx, repository.HistoryFilter{Kind: kind, ItemID: id, Start: req.Start, Length: req.Length})
	if err != nil {
		return nil, err
	}
	rows := make([]dto.HistoryRow, 0, len(page.Rows))
	for _, h := range page.Rows {
		rows = append(rows, dto.FromHistory(h))
	}
	return &dto.DataTablesResponse[dto.HistoryRow]{
		Draw: req.Draw, RecordsTotal: page.Total, RecordsFiltered: page.Filtered, Data: rows,
	}, nil
}

// EquipmentsPDF imprime el listado de equipos con los mismos filtros de la grilla.
// Retorna los bytes del PDF y el nombre de archivo sugerido.
func (uc *ReportUseCase) EquipmentsPDF(ctx context.Context, actor dto.Actor, req dto.DataTablesRequest, lang language.Tag) ([]byte, string, error) {
	// ── 1. Cargar todas las filas filtradas ──────────────────────────────────
	f := filterFrom(actor, req)
	f.Start, f.Length = 0, MaxPrintRows
	page, err := uc.repos.Equipments.Search(ctx, f)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: listar equipos: %w", err)
	}

	// ── 2. Armar la tabla ────────────────────────────────────────────────────
	p := i18n.Printer(lang)
	table := ports.ReportTable{
		Title:    p.Sprintf("report.equipments"),
		Subtitle: filterLine(p, req),
		Columns: []string{
			p.Sprintf("col.serial"), p.Sprintf("col.imei"), p.Sprintf("col.model"),
			p.Sprintf("col.supplier"), p.Sprintf("col.location"), p.Sprintf("col.leased_to"),
		},
		Widths:      []int{2, 2, 2, 2, 2, 2},
		GeneratedAt: time.Now(),
	}
	for _, r := range page.Rows {
		table.Rows = append(table.Rows, []string{
			r.Equipment.SerialNumber,
			r.Equipment.IMEI,
			r.ModelName,
			r.SupplierName,
			locationText(p, r.Equipment.Location, r.LocationName),
			r.AssignedToName,
		})
	}

	// ── 3. Generar ───────────────────────────────────────────────────────────
	return uc.render(ctx, actor, p, table, "equipamentos")
}

// SimCardsPDF imprime el listado de SIM cards.
func (uc *ReportUseCase) SimCardsPDF(ctx context.Context, actor dto.Actor, req dto.DataTablesRequest, lang language.Tag) ([]byte, string, error) {
	f := filterFrom(actor, req)
	f.Start, f.Length = 0, MaxPrintRows
	page, err := uc.repos.SimCards.Search(ctx, f)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: listar simcards: %w", err)
	}

	p := i18n.Printer(lang)
	table := ports.ReportTable{
		Title:    p.Sprintf("report.simcards"),
		Subtitle: filterLine(p, req),
		Columns: []string{
			p.Sprintf("col.iccid"), p.Sprintf("col.phone"), p.Sprintf("col.carrier"),
			p.Sprintf("col.location"), p.Sprintf("col.leased_to"),
		},
		Widths:      []int{3, 2, 2, 3, 2},
		GeneratedAt: time.Now(),
	}
	for _, r := range page.Rows {
		table.Rows = append(table.Rows, []string{
			r.SimCard.ICCID,
			r.SimCard.PhoneNumber,
			r.SupplierName,
			locationText(p, r.SimCard.Location, r.LocationName),
			r.AssignedToName,
		})
	}
	return uc.render(ctx, actor, p, table, "simcards")
}

func (uc *ReportUseCase) render(ctx context.Context, actor dto.Actor, p *message.Printer, table ports.ReportTable, name string) ([]byte, string, error) {
	contractor, err := uc.contractors.GetByID(ctx, actor.ContractorID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener contratante: %w", err)
	}
	table.Contractor = contractor.Name
	table.Footer = p.Sprintf("report.footer", len(table.Rows))
	pdfBytes, err := uc.generator.GenerateReport(ctx, table)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar: %w", err)
	}
	filename := fmt.Sprintf("%s-%s.pdf", name, table.GeneratedAt.Format("20060102-1504"))
	return pdfBytes, filename, nil
}

func equipmentRow(r repository.EquipmentListItem) dto.EquipmentRow {
	return dto.EquipmentRow{
		EquipmentResponse: dto.FromEquipment(&r.Equipment),
		ModelName:         r.ModelName,
		SupplierName:      r.SupplierName,
		OwnerName:         r.OwnerName,
		AssignedToName:    r.AssignedToName,
		LocationName:      r.LocationName,
	}
}

func simCardRow(r repository.SimCardListItem) dto.SimCardRow {
	return dto.SimCardRow{
		SimCardResponse: dto.FromSimCard(&r.SimCard),
		SupplierName:    r.SupplierName,
		OwnerName:       r.OwnerName,
		AssignedToName:  r.AssignedToName,
		LocationName:    r.LocationName,
	}
}

func locationText(p *message.Printer, loc entity.StorageLocation, name string) string {
	label := p.Sprintf(string(loc.Kind()))
	switch {
	case name == "":
		return label
	case loc.Slot() > 0:
		return fmt.Sprintf("%s: %s #%d", label, name, loc.Slot())
	}
	return fmt.Sprintf("%s: %s", label, name)
}

func filterLine(p *message.Printer, req dto.DataTablesRequest) string {
	line := ""
	if req.Location != "" {
		line = p.Sprintf(req.Location)
	}
	if req.Search != "" {
		if line != "" {
			line += " · "
		}
		line += fmt.Sprintf("%q", req.Search)
	}
	return line
}
