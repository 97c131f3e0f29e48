// Package memstore implementa los puertos de persistencia en memoria para las pruebas de los casos
// de uso. El TxRunner toma una copia del estado y la restaura si fn devuelve error, igual que el
// rollback de Postgres.
package memstore

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jeanheinriich/agendamentos-sub004/internal/application/ports"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/repository"
)

// Store estado completo. Los mapas guardan valores: cada lectura devuelve una copia.
type Store struct {
	txMu sync.Mutex

	Contractors      map[string]entity.Contractor
	Users            map[string]entity.User
	Deposits         map[string]entity.Deposit
	Technicians      map[string]entity.Technician
	ServiceProviders map[string]entity.ServiceProvider
	Vehicles         map[string]entity.Vehicle
	Suppliers        map[string]entity.Supplier
	Models           map[string]entity.EquipmentModel
	Equipments       map[string]entity.Equipment
	SimCards         map[string]entity.SimCard
	EquipmentLeases  map[string]entity.Lease
	SimCardLeases    map[string]entity.Lease
	Installations    map[string]entity.Installation
	SideRecords      map[string]int // equipment_id -> integraciones/autorizaciones
	History          []entity.HistoryEntry

	// FailUpdate fuerza error al actualizar el dispositivo con ese ID.
	FailUpdate map[string]error
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		Contractors:      map[string]entity.Contractor{},
		Users:            map[string]entity.User{},
		Deposits:         map[string]entity.Deposit{},
		Technicians:      map[string]entity.Technician{},
		ServiceProviders: map[string]entity.ServiceProvider{},
		Vehicles:         map[string]entity.Vehicle{},
		Suppliers:        map[string]entity.Supplier{},
		Models:           map[string]entity.EquipmentModel{},
		Equipments:       map[string]entity.Equipment{},
		SimCards:         map[string]entity.SimCard{},
		EquipmentLeases:  map[string]entity.Lease{},
		SimCardLeases:    map[string]entity.Lease{},
		Installations:    map[string]entity.Installation{},
		SideRecords:      map[string]int{},
		FailUpdate:       map[string]error{},
	}
}

type snapshot struct {
	equipments      map[string]entity.Equipment
	simCards        map[string]entity.SimCard
	equipmentLeases map[string]entity.Lease
	simCardLeases   map[string]entity.Lease
	installations   map[string]entity.Installation
	sideRecords     map[string]int
	deposits        map[string]entity.Deposit
	history         []entity.HistoryEntry
}

func clone[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		equipments:      clone(s.Equipments),
		simCards:        clone(s.SimCards),
		equipmentLeases: clone(s.EquipmentLeases),
		simCardLeases:   clone(s.SimCardLeases),
		installations:   clone(s.Installations),
		sideRecords:     clone(s.SideRecords),
		deposits:        clone(s.Deposits),
		history:         append([]entity.HistoryEntry(nil), s.History...),
	}
}

func (s *Store) restore(snap snapshot) {
	s.Equipments = snap.equipments
	s.SimCards = snap.simCards
	s.EquipmentLeases = snap.equipmentLeases
	s.SimCardLeases = snap.simCardLeases
	s.Installations = snap.installations
	s.SideRecords = snap.sideRecords
	s.Deposits = snap.deposits
	s.History = snap.history
}

// Set repositorios sobre el store.
func (s *Store) Set() repository.Set {
	return repository.Set{
		Equipments:       &equipmentRepo{s},
		SimCards:         &simCardRepo{s},
		EquipmentLeases:  &leaseRepo{s, entity.DeviceEquipment},
		SimCardLeases:    &leaseRepo{s, entity.DeviceSimCard},
		Installations:    &installationRepo{s},
		Deposits:         &depositRepo{s},
		Technicians:      &technicianRepo{s},
		ServiceProviders: &serviceProviderRepo{s},
		Vehicles:         &vehicleRepo{s},
		Suppliers:        &supplierRepo{s},
		Models:           &modelRepo{s},
		History:          &historyRepo{s},
	}
}

// Contractors repositorio de contratantes.
func (s *Store) ContractorRepo() repository.ContractorRepository { return &contractorRepo{s} }

// UserRepo repositorio de usuarios.
func (s *Store) UserRepo() repository.UserRepository { return &userRepo{s} }

// TxRunner ejecuta fn con rollback en memoria.
func (s *Store) TxRunner() ports.TxRunner { return &txRunner{s} }

type txRunner struct{ s *Store }

func (r *txRunner) Run(ctx context.Context, fn func(repos repository.Set) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	snap := r.s.snapshot()
	if err := fn(r.s.Set()); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

// HistoryOf acciones registradas para un dispositivo, en orden.
func (s *Store) HistoryOf(itemID string) []string {
	var out []string
	for _, h := range s.History {
		if h.ItemID == itemID {
			out = append(out, h.Action)
		}
	}
	return out
}

// ActiveLeases comodatos abiertos del dispositivo.
func (s *Store) ActiveLeases(kind entity.DeviceKind, itemID string) []entity.Lease {
	m := s.EquipmentLeases
	if kind == entity.DeviceSimCard {
		m = s.SimCardLeases
	}
	var out []entity.Lease
	for _, l := range m {
		if l.ItemID == itemID && l.EndDate == nil {
			out = append(out, l)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Custodios
// ---------------------------------------------------------------------------

type contractorRepo struct{ s *Store }

func (r *contractorRepo) GetByID(_ context.Context, id string) (*entity.Contractor, error) {
	c, ok := r.s.Contractors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

type userRepo struct{ s *Store }

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.s.Users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.Users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type depositRepo struct{ s *Store }

func (r *depositRepo) Create(_ context.Context, d *entity.Deposit) error {
	if _, ok := r.s.Deposits[d.ID]; ok {
		return domain.ErrAlreadyInUse
	}
	r.s.Deposits[d.ID] = *d
	return nil
}

func (r *depositRepo) GetByID(_ context.Context, id string) (*entity.Deposit, error) {
	d, ok := r.s.Deposits[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

func (r *depositRepo) GetDefault(_ context.Context, contractorID string) (*entity.Deposit, error) {
	list := r.byContractor(contractorID)
	if len(list) == 0 {
		return nil, nil
	}
	for _, d := range list {
		if d.Master {
			return d, nil
		}
	}
	return list[0], nil
}

func (r *depositRepo) ListByContractor(_ context.Context, contractorID string, limit, offset int) ([]*entity.Deposit, error) {
	return paginate(r.byContractor(contractorID), offset, limit), nil
}

func (r *depositRepo) byContractor(contractorID string) []*entity.Deposit {
	var out []*entity.Deposit
	for _, d := range r.s.Deposits {
		if d.ContractorID == contractorID && !d.Blocked {
			d := d
			out = append(out, &d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

type technicianRepo struct{ s *Store }

func (r *technicianRepo) GetByID(_ context.Context, id string) (*entity.Technician, error) {
	t, ok := r.s.Technicians[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (r *technicianRepo) ListByContractor(_ context.Context, contractorID string) ([]*entity.Technician, error) {
	var out []*entity.Technician
	for _, t := range r.s.Technicians {
		if t.ContractorID == contractorID {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type serviceProviderRepo struct{ s *Store }

func (r *serviceProviderRepo) GetByID(_ context.Context, id string) (*entity.ServiceProvider, error) {
	p, ok := r.s.ServiceProviders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *serviceProviderRepo) ListByContractor(_ context.Context, contractorID string) ([]*entity.ServiceProvider, error) {
	var out []*entity.ServiceProvider
	for _, p := range r.s.ServiceProviders {
		if p.ContractorID == contractorID {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type vehicleRepo struct{ s *Store }

func (r *vehicleRepo) GetByID(_ context.Context, id string) (*entity.Vehicle, error) {
	v, ok := r.s.Vehicles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

type supplierRepo struct{ s *Store }

func (r *supplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	sp, ok := r.s.Suppliers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sp, nil
}

func (r *supplierRepo) IsBlocked(_ context.Context, id string) (bool, error) {
	sp, ok := r.s.Suppliers[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if sp.Blocked {
		return true, nil
	}
	if sp.ParentID != nil {
		return r.s.Suppliers[*sp.ParentID].Blocked, nil
	}
	return false, nil
}

type modelRepo struct{ s *Store }

func (r *modelRepo) GetByID(_ context.Context, id string) (*entity.EquipmentModel, error) {
	m, ok := r.s.Models[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

// ---------------------------------------------------------------------------
// Dispositivos
// ---------------------------------------------------------------------------

type equipmentRepo struct{ s *Store }

func (r *equipmentRepo) Create(_ context.Context, e *entity.Equipment) error {
	for _, other := range r.s.Equipments {
		if other.ID == e.ID || other.SerialNumber == e.SerialNumber {
			return domain.ErrAlreadyInUse
		}
	}
	r.s.Equipments[e.ID] = *e
	return nil
}

func (r *equipmentRepo) GetByID(_ context.Context, id string) (*entity.Equipment, error) {
	e, ok := r.s.Equipments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (r *equipmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Equipment, error) {
	return r.GetByID(ctx, id)
}

func (r *equipmentRepo) Update(_ context.Context, e *entity.Equipment) error {
	if err := r.s.FailUpdate[e.ID]; err != nil {
		return err
	}
	if _, ok := r.s.Equipments[e.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.Equipments[e.ID] = *e
	return nil
}

func (r *equipmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.Equipments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.Equipments, id)
	return nil
}

func (r *equipmentRepo) Search(_ context.Context, f repository.DeviceFilter) (*repository.Page[repository.EquipmentListItem], error) {
	var total []entity.Equipment
	for _, e := range r.s.Equipments {
		if e.Holder() == f.HolderID {
			total = append(total, e)
		}
	}
	var rows []repository.EquipmentListItem
	for _, e := range total {
		if !matchLocation(e.Location, f) || !matchBlocked(e.Blocked, f) {
			continue
		}
		if f.Search != "" && !containsFold(f.Search, e.SerialNumber, e.IMEI) {
			continue
		}
		rows = append(rows, repository.EquipmentListItem{
			Equipment:    e,
			ModelName:    r.s.Models[e.ModelID].Name,
			SupplierName: r.s.Suppliers[e.SupplierID].Name,
			OwnerName:      r.s.Contractors[e.ContractorID].Name,
			AssignedToName: r.s.lesseeName(e.AssignedToID, e.LeasingInProgress),
			LocationName:   r.s.locationName(e.Location),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		less := rows[i].Equipment.SerialNumber < rows[j].Equipment.SerialNumber
		if f.Desc {
			return !less
		}
		return less
	})
	return &repository.Page[repository.EquipmentListItem]{
		Total: len(total), Filtered: len(rows), Rows: paginate(rows, f.Start, f.Length),
	}, nil
}

type simCardRepo struct{ s *Store }

func (r *simCardRepo) Create(_ context.Context, c *entity.SimCard) error {
	for _, other := range r.s.SimCards {
		if other.ID == c.ID || other.ICCID == c.ICCID {
			return domain.ErrAlreadyInUse
		}
	}
	r.s.SimCards[c.ID] = *c
	return nil
}

func (r *simCardRepo) GetByID(_ context.Context, id string) (*entity.SimCard, error) {
	c, ok := r.s.SimCards[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *simCardRepo) GetForUpdate(ctx context.Context, id string) (*entity.SimCard, error) {
	return r.GetByID(ctx, id)
}

func (r *simCardRepo) Update(_ context.Context, c *entity.SimCard) error {
	if err := r.s.FailUpdate[c.ID]; err != nil {
		return err
	}
	if _, ok := r.s.SimCards[c.ID]; !ok {
		return domain.ErrNotFound
	}
	// Índice único (equipment_id, slot_number).
	if _, _, inSlot := c.EquipmentID(); inSlot {
		for _, other := range r.s.SimCards {
			if other.ID != c.ID && other.Location.Equal(c.Location) {
				return domain.ErrAlreadyInUse
			}
		}
	}
	r.s.SimCards[c.ID] = *c
	return nil
}

func (r *simCardRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.SimCards[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.SimCards, id)
	return nil
}

func (r *simCardRepo) ListByEquipment(_ context.Context, equipmentID string) ([]*entity.SimCard, error) {
	var out []*entity.SimCard
	for _, c := range r.s.SimCards {
		if eqID, _, ok := c.EquipmentID(); ok && eqID == equipmentID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location.Slot() < out[j].Location.Slot() })
	return out, nil
}

func (r *simCardRepo) Search(_ context.Context, f repository.DeviceFilter) (*repository.Page[repository.SimCardListItem], error) {
	var total []entity.SimCard
	for _, c := range r.s.SimCards {
		if c.Holder() == f.HolderID {
			total = append(total, c)
		}
	}
	var rows []repository.SimCardListItem
	for _, c := range total {
		if !matchLocation(c.Location, f) || !matchBlocked(c.Blocked, f) {
			continue
		}
		if f.Search != "" && !containsFold(f.Search, c.ICCID, c.PhoneNumber) {
			continue
		}
		rows = append(rows, repository.SimCardListItem{
			SimCard:      c,
			SupplierName: r.s.Suppliers[c.SupplierID].Name,
			OwnerName:      r.s.Contractors[c.ContractorID].Name,
			AssignedToName: r.s.lesseeName(c.AssignedToID, c.LeasingInProgress),
			LocationName:   r.s.locationName(c.Location),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		less := rows[i].SimCard.ICCID < rows[j].SimCard.ICCID
		if f.Desc {
			return !less
		}
		return less
	})
	return &repository.Page[repository.SimCardListItem]{
		Total: len(total), Filtered: len(rows), Rows: paginate(rows, f.Start, f.Length),
	}, nil
}

func (s *Store) lesseeName(assignedTo *string, leased bool) string {
	if !leased || assignedTo == nil {
		return ""
	}
	return s.Contractors[*assignedTo].Name
}

func (s *Store) locationName(l entity.StorageLocation) string {
	switch l.Kind() {
	case entity.LocationDeposit:
		return s.Deposits[l.TargetID()].Name
	case entity.LocationTechnician:
		return s.Technicians[l.TargetID()].Name
	case entity.LocationServiceProvider:
		return s.ServiceProviders[l.TargetID()].Name
	case entity.LocationInstalled:
		if l.Slot() > 0 {
			return s.Equipments[l.TargetID()].SerialNumber
		}
		return s.Vehicles[l.TargetID()].Plate
	}
	return ""
}

func matchLocation(l entity.StorageLocation, f repository.DeviceFilter) bool {
	if f.Location != "" && l.Kind() != f.Location {
		return false
	}
	return f.TargetID == "" || l.TargetID() == f.TargetID
}

func matchBlocked(blocked bool, f repository.DeviceFilter) bool {
	return f.Blocked == nil || *f.Blocked == blocked
}

func containsFold(needle string, haystack ...string) bool {
	needle = strings.ToLower(needle)
	for _, h := range haystack {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

func paginate[T any](rows []T, start, length int) []T {
	if start >= len(rows) {
		return []T{}
	}
	end := len(rows)
	if length > 0 && start+length < end {
		end = start + length
	}
	return rows[start:end]
}

// ---------------------------------------------------------------------------
// Comodatos, instalaciones e histórico
// ---------------------------------------------------------------------------

type leaseRepo struct {
	s    *Store
	kind entity.DeviceKind
}

func (r *leaseRepo) m() map[string]entity.Lease {
	if r.kind == entity.DeviceSimCard {
		return r.s.SimCardLeases
	}
	return r.s.EquipmentLeases
}

func (r *leaseRepo) Create(_ context.Context, l *entity.Lease) error {
	// Índice único parcial (item, assigned_to) WHERE end_date IS NULL.
	for _, other := range r.m() {
		if other.ItemID == l.ItemID && other.AssignedToID == l.AssignedToID && other.EndDate == nil {
			return domain.ErrAlreadyInUse
		}
	}
	r.m()[l.ID] = *l
	return nil
}

func (r *leaseRepo) GetActive(_ context.Context, itemID, assignedToID string) (*entity.Lease, error) {
	for _, l := range r.m() {
		if l.ItemID == itemID && l.AssignedToID == assignedToID && l.EndDate == nil {
			l := l
			return &l, nil
		}
	}
	return nil, nil
}

func (r *leaseRepo) Update(_ context.Context, l *entity.Lease) error {
	if _, ok := r.m()[l.ID]; !ok {
		return domain.ErrNotFound
	}
	r.m()[l.ID] = *l
	return nil
}

func (r *leaseRepo) Close(_ context.Context, itemID, assignedToID string, endDate time.Time) (int64, error) {
	var n int64
	for id, l := range r.m() {
		if l.ItemID == itemID && l.AssignedToID == assignedToID && l.EndDate == nil {
			end := endDate
			l.EndDate = &end
			r.m()[id] = l
			n++
		}
	}
	return n, nil
}

func (r *leaseRepo) DeleteByItem(_ context.Context, itemID string) error {
	for id, l := range r.m() {
		if l.ItemID == itemID {
			delete(r.m(), id)
		}
	}
	return nil
}

func (r *leaseRepo) ListGraceEnding(_ context.Context, day time.Time) ([]*entity.Lease, error) {
	y, m, d := day.Date()
	var out []*entity.Lease
	for _, l := range r.m() {
		if l.EndDate != nil {
			continue
		}
		ly, lm, ld := l.GraceEndsAt().Date()
		if ly == y && lm == m && ld == d {
			l := l
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

type installationRepo struct{ s *Store }

func (r *installationRepo) Open(_ context.Context, in *entity.Installation) error {
	for _, other := range r.s.Installations {
		if other.EquipmentID == in.EquipmentID && other.UninstalledAt == nil {
			return domain.ErrAlreadyInUse
		}
	}
	r.s.Installations[in.ID] = *in
	r.s.SideRecords[in.EquipmentID]++
	return nil
}

func (r *installationRepo) GetOpen(_ context.Context, equipmentID string) (*entity.Installation, error) {
	for _, in := range r.s.Installations {
		if in.EquipmentID == equipmentID && in.UninstalledAt == nil {
			in := in
			return &in, nil
		}
	}
	return nil, nil
}

func (r *installationRepo) Close(_ context.Context, equipmentID string, at time.Time) (int64, error) {
	var n int64
	for id, in := range r.s.Installations {
		if in.EquipmentID == equipmentID && in.UninstalledAt == nil {
			t := at
			in.UninstalledAt = &t
			r.s.Installations[id] = in
			n++
		}
	}
	return n, nil
}

func (r *installationRepo) DeleteSideRecords(_ context.Context, equipmentID string) error {
	delete(r.s.SideRecords, equipmentID)
	return nil
}

func (r *installationRepo) DeleteByEquipment(_ context.Context, equipmentID string) error {
	for id, in := range r.s.Installations {
		if in.EquipmentID == equipmentID {
			delete(r.s.Installations, id)
		}
	}
	return nil
}

type historyRepo struct{ s *Store }

func (r *historyRepo) Record(_ context.Context, h *entity.HistoryEntry) error {
	r.s.History = append(r.s.History, *h)
	return nil
}

func (r *historyRepo) List(_ context.Context, f repository.HistoryFilter) (*repository.Page[*entity.HistoryEntry], error) {
	var rows []*entity.HistoryEntry
	for i := len(r.s.History) - 1; i >= 0; i-- {
		h := r.s.History[i]
		if h.Kind == f.Kind && h.ItemID == f.ItemID {
			rows = append(rows, &h)
		}
	}
	return &repository.Page[*entity.HistoryEntry]{
		Total: len(rows), Filtered: len(rows), Rows: paginate(rows, f.Start, f.Length),
	}, nil
}

// ---------------------------------------------------------------------------
// Asistente
// ---------------------------------------------------------------------------

// WizardStore guarda el estado del asistente en memoria.
type WizardStore struct {
	mu    sync.Mutex
	items map[string]json.RawMessage
}

// NewWizardStore crea el store.
func NewWizardStore() *WizardStore { return &WizardStore{items: map[string]json.RawMessage{}} }

func (w *WizardStore) Save(_ context.Context, id string, state json.RawMessage) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items[id] = append(json.RawMessage(nil), state...)
	return nil
}

func (w *WizardStore) Load(_ context.Context, id string) (json.RawMessage, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	raw, ok := w.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return raw, nil
}

func (w *WizardStore) Delete(_ context.Context, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.items, id)
	return nil
}

var (
	_ ports.TxRunner   = (*txRunner)(nil)
	_ ports.WizardStore = (*WizardStore)(nil)
)
