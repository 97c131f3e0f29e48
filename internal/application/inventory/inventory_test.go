package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/inventory"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/leasing"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	"github.com/jeanheinriich/agendamentos-sub004/internal/testutil/memstore"
)

var (
	actorA = dto.Actor{UserID: "u1", ContractorID: "A", Role: entity.RoleAdmin}
	actorB = dto.Actor{UserID: "u2", ContractorID: "B", Role: entity.RoleAdmin}
)

func newStore() *memstore.Store {
	st := memstore.New()
	st.AddContractor("A", "Alfa")
	st.AddContractor("B", "Beta")
	st.Technicians["t7"] = entity.Technician{ID: "t7", ContractorID: "A", Name: "Técnico 7"}
	st.Technicians["tB"] = entity.Technician{ID: "tB", ContractorID: "B", Name: "Técnico de B"}
	return st
}

func equipments(st *memstore.Store) *inventory.EquipmentUseCase {
	return inventory.NewEquipmentUseCase(st.Set(), st.TxRunner(), leasing.NewService())
}

func simcards(st *memstore.Store) *inventory.SimCardUseCase {
	return inventory.NewSimCardUseCase(st.Set(), st.TxRunner(), leasing.NewService())
}

func fieldOf(t *testing.T, err error, field string) string {
	t.Helper()
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v), "se esperaba ValidationError, llegó %v", err)
	return v.Fields[field]
}

// ---------------------------------------------------------------------------
// Alta
// ---------------------------------------------------------------------------

func TestEquipmentCreate_EntraEnDepositoPorDefecto(t *testing.T) {
	st := newStore()
	st.Models["m2"] = entity.EquipmentModel{ID: "m2", Name: "TK-2", MaxSimCards: 2}
	st.Suppliers["sup"] = entity.Supplier{ID: "sup", Name: "Proveedor"}

	out, err := equipments(st).Create(context.Background(), actorA, dto.CreateEquipmentRequest{
		SerialNumber: "SN-100", ModelID: "m2", SupplierID: "sup",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.LocationDeposit), out.StorageLocation)
	require.NotNil(t, out.DepositID)
	assert.Equal(t, "A-dep", *out.DepositID)
	assert.Nil(t, out.TechnicianID)
	assert.Equal(t, []string{entity.ActionCreated}, st.HistoryOf(out.ID))
}

func TestEquipmentCreate_FilialBloqueada(t *testing.T) {
	st := newStore()
	st.Models["m2"] = entity.EquipmentModel{ID: "m2", Name: "TK-2", MaxSimCards: 2}
	parent := "matriz"
	st.Suppliers["matriz"] = entity.Supplier{ID: "matriz", Name: "Matriz", Blocked: true}
	st.Suppliers["filial"] = entity.Supplier{ID: "filial", Name: "Filial", ParentID: &parent}

	_, err := equipments(st).Create(context.Background(), actorA, dto.CreateEquipmentRequest{
		SerialNumber: "SN-100", ModelID: "m2", SupplierID: "filial",
	})
	assert.Equal(t, domain.MsgBlocked, fieldOf(t, err, "supplier_id"))
	assert.Empty(t, st.Equipments)
}

func TestSimCardCreate_DepositoDeOtroContratante(t *testing.T) {
	st := newStore()
	st.Suppliers["op"] = entity.Supplier{ID: "op", Name: "Operadora"}

	_, err := simcards(st).Create(context.Background(), actorA, dto.CreateSimCardRequest{
		ICCID: "8955000000000000009", SupplierID: "op", DepositID: "B-dep",
	})
	assert.Equal(t, domain.MsgInvalidDestination, fieldOf(t, err, "deposit_id"))
}

// ---------------------------------------------------------------------------
// Visibilidad y edición
// ---------------------------------------------------------------------------

func TestEquipmentGet_ArrendatarioVeDuenioVe(t *testing.T) {
	st := newStore()
	st.AddContractor("C", "Gama")
	st.AddEquipment("E", "A", "SN-1")
	st.Lease(entity.DeviceEquipment, "E", "B", memstore.Seeded, 0)

	_, err := equipments(st).Get(context.Background(), actorA, "E")
	require.NoError(t, err)
	_, err = equipments(st).Get(context.Background(), actorB, "E")
	require.NoError(t, err)
	_, err = equipments(st).Get(context.Background(), dto.Actor{ContractorID: "C"}, "E")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEquipmentUpdate_SoloElDuenio(t *testing.T) {
	st := newStore()
	st.AddEquipment("E", "A", "SN-1")
	st.Lease(entity.DeviceEquipment, "E", "B", memstore.Seeded, 0)

	serial := "SN-2"
	_, err := equipments(st).Update(context.Background(), actorB, "E", dto.UpdateEquipmentRequest{
		SerialNumber: &serial, Lease: &dto.LeaseInput{LeasingInProgress: true},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, "SN-1", st.Equipments["E"].SerialNumber)
}

func TestEquipmentUpdate_CamposYComodatoEnUnaTransaccion(t *testing.T) {
	st := newStore()
	st.AddEquipment("E", "A", "SN-1")
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	serial, grace := "SN-1B", 2
	out, err := equipments(st).Update(context.Background(), actorA, "E", dto.UpdateEquipmentRequest{
		SerialNumber: &serial,
		Lease:        &dto.LeaseInput{LeasingInProgress: true, AssignedToID: "B", StartDate: &start, GracePeriod: &grace},
	})
	require.NoError(t, err)
	assert.Equal(t, "SN-1B", out.SerialNumber)
	assert.True(t, out.LeasingInProgress)
	require.NotNil(t, out.DepositID)
	assert.Equal(t, "B-dep", *out.DepositID)
	assert.Equal(t, []string{entity.ActionLeaseBegin, entity.ActionUpdated}, st.HistoryOf("E"))
}

func TestEquipmentUpdate_ErrorDeComodatoRevierteLosCampos(t *testing.T) {
	st := newStore()
	st.AddEquipment("E", "A", "SN-1")

	serial := "SN-1B"
	_, err := equipments(st).Update(context.Background(), actorA, "E", dto.UpdateEquipmentRequest{
		SerialNumber: &serial,
		Lease:        &dto.LeaseInput{LeasingInProgress: true, AssignedToID: "A"},
	})
	require.Error(t, err)
	assert.Equal(t, "SN-1", st.Equipments["E"].SerialNumber)
	assert.Empty(t, st.History)
}

func TestEquipmentUpdate_SinBloqueLeaseMantieneElComodato(t *testing.T) {
	st := newStore()
	st.AddEquipment("E", "A", "SN-1")
	st.AddSimCard("s1", "A", "8955000000000000001")
	st.PutInSlot("s1", "E", 1)
	st.Lease(entity.DeviceEquipment, "E", "B", memstore.Seeded, 2)
	st.Lease(entity.DeviceSimCard, "s1", "B", memstore.Seeded, 2)
	e := st.Equipments["E"]
	e.Location = entity.OnDeposit("B-dep")
	st.Equipments["E"] = e

	serial := "SN-RENOMBRADO"
	out, err := equipments(st).Update(context.Background(), actorA, "E", dto.UpdateEquipmentRequest{SerialNumber: &serial})
	require.NoError(t, err)
	assert.Equal(t, "SN-RENOMBRADO", out.SerialNumber)
	assert.True(t, out.LeasingInProgress)
	require.NotNil(t, out.AssignedToID)
	assert.Equal(t, "B", *out.AssignedToID)
	assert.Equal(t, entity.OnDeposit("B-dep"), st.Equipments["E"].Location)
	assert.Len(t, st.ActiveLeases(entity.DeviceEquipment, "E"), 1)
	assert.Len(t, st.ActiveLeases(entity.DeviceSimCard, "s1"), 1)
	assert.Equal(t, entity.InSlot("E", 1), st.SimCards["s1"].Location)
	assert.Equal(t, []string{entity.ActionUpdated}, st.HistoryOf("E"))
}

func TestSimCardUpdate_SinBloqueLeaseMantieneElComodato(t *testing.T) {
	st := newStore()
	st.AddSimCard("s1", "A", "8955000000000000001")
	st.Lease(entity.DeviceSimCard, "s1", "B", memstore.Seeded, 1)
	c := st.SimCards["s1"]
	c.Location = entity.OnDeposit("B-dep")
	st.SimCards["s1"] = c

	phone := "+5511999990000"
	out, err := simcards(st).Update(context.Background(), actorA, "s1", dto.UpdateSimCardRequest{PhoneNumber: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, out.PhoneNumber)
	assert.True(t, out.LeasingInProgress)
	assert.Equal(t, entity.OnDeposit("B-dep"), st.SimCards["s1"].Location)
	assert.Len(t, st.ActiveLeases(entity.DeviceSimCard, "s1"), 1)
}

func TestSimCardUpdate_BloqueLeaseFalsoTerminaElComodato(t *testing.T) {
	st := newStore()
	st.AddSimCard("s1", "A", "8955000000000000001")
	st.Lease(entity.DeviceSimCard, "s1", "B", memstore.Seeded, 1)

	out, err := simcards(st).Update(context.Background(), actorA, "s1", dto.UpdateSimCardRequest{
		Lease: &dto.LeaseInput{LeasingInProgress: false},
	})
	require.NoError(t, err)
	assert.False(t, out.LeasingInProgress)
	assert.Empty(t, st.ActiveLeases(entity.DeviceSimCard, "s1"))
	assert.Equal(t, entity.OnDeposit("A-dep"), st.SimCards["s1"].Location)
}

func TestEquipmentUpdate_ModeloSinSlotsSuficientes(t *testing.T) {
	st := newStore()
	st.AddEquipment("E", "A", "SN-1")
	st.Models["m1"] = entity.EquipmentModel{ID: "m1", Name: "TK-1", MaxSimCards: 1}
	st.AddSimCard("s2", "A", "8955000000000000002")
	st.PutInSlot("s2", "E", 2)

	model := "m1"
	_, err := equipments(st).Update(context.Background(), actorA, "E", dto.UpdateEquipmentRequest{ModelID: &model})
	assert.Equal(t, domain.MsgOutOfRange, fieldOf(t, err, "model_id"))
}

// ---------------------------------------------------------------------------
// Baja en cascada
// ---------------------------------------------------------------------------

func TestEquipmentDelete_Cascada(t *testing.T) {
	st := newStore()
	st.AddEquipment("E", "A", "SN-1")
	st.Install("E", "v1")
	st.AddSimCard("s1", "A", "8955000000000000001")
	st.PutInSlot("s1", "E", 1)
	st.EquipmentLeases["old"] = entity.Lease{ID: "old", ItemID: "E", AssignedToID: "B", EndDate: &memstore.Seeded}

	require.NoError(t, equipments(st).Delete(context.Background(), actorA, "E"))

	assert.NotContains(t, st.Equipments, "E")
	assert.Empty(t, st.EquipmentLeases)
	assert.Empty(t, st.Installations)
	assert.Zero(t, st.SideRecords["E"])
	assert.Equal(t, entity.OnDeposit("A-dep"), st.SimCards["s1"].Location)
	assert.Contains(t, st.HistoryOf("E"), entity.ActionUninstalled, "el histórico se conserva")
}

func TestEquipmentDelete_ConComodatoActivo(t *testing.T) {
	st := newStore()
	st.AddEquipment("E", "A", "SN-1")
	st.Lease(entity.DeviceEquipment, "E", "B", memstore.Seeded, 0)

	err := equipments(st).Delete(context.Background(), actorA, "E")
	assert.Equal(t, domain.MsgLeased, fieldOf(t, err, "leasing_in_progress"))
	assert.Contains(t, st.Equipments, "E")
}

func TestSimCardDelete_BorraComodatosCerrados(t *testing.T) {
	st := newStore()
	st.AddSimCard("s1", "A", "8955000000000000001")
	st.SimCardLeases["old"] = entity.Lease{ID: "old", ItemID: "s1", AssignedToID: "B", EndDate: &memstore.Seeded}

	require.NoError(t, simcards(st).Delete(context.Background(), actorA, "s1"))
	assert.Empty(t, st.SimCards)
	assert.Empty(t, st.SimCardLeases)
}

// ---------------------------------------------------------------------------
// Instalación y reubicación
// ---------------------------------------------------------------------------

func TestEquipmentInstallYUninstall(t *testing.T) {
	st := newStore()
	st.AddEquipment("E", "A", "SN-1")
	st.Vehicles["v1"] = entity.Vehicle{ID: "v1", ContractorID: "A", Plate: "ABC1D23"}

	out, err := equipments(st).Install(context.Background(), actorA, "E", dto.InstallRequest{VehicleID: "v1"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.LocationInstalled), out.StorageLocation)
	require.NotNil(t, out.VehicleID)
	assert.Equal(t, "v1", *out.VehicleID)
	assert.Nil(t, out.DepositID)

	_, err = equipments(st).Install(context.Background(), actorA, "E", dto.InstallRequest{VehicleID: "v1"})
	assert.Equal(t, domain.MsgInstalled, fieldOf(t, err, "storage_location"))

	out, err = equipments(st).Uninstall(context.Background(), actorA, "E", dto.LocationInput{
		Kind: string(entity.LocationTechnician), TargetID: "t7",
	})
	require.NoError(t, err)
	require.NotNil(t, out.TechnicianID)
	assert.Equal(t, "t7", *out.TechnicianID)
	assert.Nil(t, out.VehicleID)

	open, err := st.Set().Installations.GetOpen(context.Background(), "E")
	require.NoError(t, err)
	assert.Nil(t, open)
}

func TestEquipmentInstall_EnMantenimientoODevuelto(t *testing.T) {
	for _, loc := range []entity.StorageLocation{entity.UnderMaintenance(), entity.ReturnedToSupplier()} {
		st := newStore()
		e := st.AddEquipment("E", "A", "SN-1")
		e.Location = loc
		st.Equipments["E"] = *e
		st.Vehicles["v1"] = entity.Vehicle{ID: "v1", ContractorID: "A", Plate: "ABC1D23"}

		_, err := equipments(st).Install(context.Background(), actorA, "E", dto.InstallRequest{VehicleID: "v1"})
		assert.Equal(t, domain.MsgInvalidLocation, fieldOf(t, err, "storage_location"), loc.Kind())
		assert.Empty(t, st.Installations)
		assert.Equal(t, loc, st.Equipments["E"].Location)
	}
}

func TestEquipmentInstall_VehiculoDeOtro(t *testing.T) {
	st := newStore()
	st.AddEquipment("E", "A", "SN-1")
	st.Vehicles["vB"] = entity.Vehicle{ID: "vB", ContractorID: "B", Plate: "XYZ9K87"}

	_, err := equipments(st).Install(context.Background(), actorA, "E", dto.InstallRequest{VehicleID: "vB"})
	assert.Equal(t, domain.MsgInvalidDestination, fieldOf(t, err, "vehicle_id"))
}

func TestRelocate_TecnicoDeOtroContratante(t *testing.T) {
	st := newStore()
	st.AddSimCard("s1", "A", "8955000000000000001")

	_, err := simcards(st).Relocate(context.Background(), actorA, "s1", dto.LocationInput{
		Kind: string(entity.LocationTechnician), TargetID: "tB",
	})
	assert.Equal(t, domain.MsgInvalidDestination, fieldOf(t, err, "target_id"))

	out, err := simcards(st).Relocate(context.Background(), actorA, "s1", dto.LocationInput{
		Kind: string(entity.LocationReturned),
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.LocationReturned), out.StorageLocation)
	assert.Equal(t, []string{entity.ActionReturned}, st.HistoryOf("s1"))
}

func TestSimCardRelocate_InstaladaSeRetiraPorElSlot(t *testing.T) {
	st := newStore()
	st.AddEquipment("E", "A", "SN-1")
	st.AddSimCard("s1", "A", "8955000000000000001")
	st.PutInSlot("s1", "E", 1)

	_, err := simcards(st).Relocate(context.Background(), actorA, "s1", dto.LocationInput{
		Kind: string(entity.LocationDeposit), TargetID: "A-dep",
	})
	assert.Equal(t, domain.MsgInstalled, fieldOf(t, err, "storage_location"))
}

func TestStorageLocationOf(t *testing.T) {
	st := newStore()
	st.AddEquipment("E", "A", "SN-1")
	st.AddSimCard("s1", "A", "8955000000000000001")
	st.PutInSlot("s1", "E", 2)

	uc := inventory.NewLocationUseCase(st.Set())
	out, err := uc.StorageLocationOf(context.Background(), actorA, entity.DeviceSimCard, "s1")
	require.NoError(t, err)
	assert.Equal(t, "SN-1", out.Description)
	assert.Equal(t, 2, out.SlotNumber)

	out, err = uc.StorageLocationOf(context.Background(), actorA, entity.DeviceEquipment, "E")
	require.NoError(t, err)
	assert.Equal(t, "Depósito Alfa", out.Description)

	_, err = uc.StorageLocationOf(context.Background(), actorB, entity.DeviceEquipment, "E")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
