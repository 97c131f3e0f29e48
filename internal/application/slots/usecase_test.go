package slots_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/slots"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	"github.com/jeanheinriich/agendamentos-sub004/internal/testutil/memstore"
)

var actorA = dto.Actor{UserID: "u1", ContractorID: "A", Role: entity.RoleOperator}

func setup() (*memstore.Store, *slots.SlotUseCase) {
	st := memstore.New()
	st.AddContractor("A", "Alfa")
	st.AddContractor("B", "Beta")
	st.AddEquipment("E", "A", "SN-1")
	st.AddSimCard("s1", "A", "8955000000000000001")
	st.AddSimCard("s2", "A", "8955000000000000002")
	st.Technicians["7"] = entity.Technician{ID: "7", ContractorID: "A", Name: "Técnico 7"}
	return st, slots.NewSlotUseCase(st.Set(), st.TxRunner())
}

func fieldOf(t *testing.T, err error, field string) string {
	t.Helper()
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v), "se esperaba ValidationError, llegó %v", err)
	return v.Fields[field]
}

func TestList_SlotsVaciosYOcupados(t *testing.T) {
	st, uc := setup()
	st.PutInSlot("s2", "E", 2)

	list, err := uc.List(context.Background(), actorA, "E")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].SlotNumber)
	assert.Nil(t, list[0].SimCard)
	require.NotNil(t, list[1].SimCard)
	assert.Equal(t, "s2", list[1].SimCard.ID)
}

func TestAttach_Exitoso(t *testing.T) {
	st, uc := setup()

	out, err := uc.Attach(context.Background(), actorA, "E", 1, "s1")
	require.NoError(t, err)
	require.NotNil(t, out.EquipmentID)
	assert.Equal(t, "E", *out.EquipmentID)
	assert.Equal(t, 1, out.SlotNumber)
	assert.Nil(t, out.DepositID)
	assert.Equal(t, entity.InSlot("E", 1), st.SimCards["s1"].Location)
	assert.Equal(t, []string{entity.ActionAttached}, st.HistoryOf("s1"))
}

func TestAttach_SlotOcupadoEsYaEnUso(t *testing.T) {
	st, uc := setup()
	st.PutInSlot("s1", "E", 1)

	_, err := uc.Attach(context.Background(), actorA, "E", 1, "s2")
	assert.ErrorIs(t, err, domain.ErrAlreadyInUse)
	assert.Equal(t, entity.OnDeposit("A-dep"), st.SimCards["s2"].Location)
}

func TestAttach_EquipoDevueltoAlProveedor(t *testing.T) {
	st, uc := setup()
	e := st.Equipments["E"]
	e.Location = entity.ReturnedToSupplier()
	st.Equipments["E"] = e

	_, err := uc.Attach(context.Background(), actorA, "E", 1, "s1")
	assert.Equal(t, domain.MsgInvalidLocation, fieldOf(t, err, "equipment_id"))
	assert.Equal(t, entity.OnDeposit("A-dep"), st.SimCards["s1"].Location)
	assert.Empty(t, st.HistoryOf("s1"))
}

func TestAttach_Rechazos(t *testing.T) {
	st, uc := setup()

	_, err := uc.Attach(context.Background(), actorA, "E", 3, "s1")
	assert.Equal(t, domain.MsgOutOfRange, fieldOf(t, err, "slot_number"))

	_, err = uc.Attach(context.Background(), actorA, "E", 0, "s1")
	assert.Equal(t, domain.MsgOutOfRange, fieldOf(t, err, "slot_number"))

	sup := st.Suppliers["sup"]
	sup.Blocked = true
	st.Suppliers["sup"] = sup
	_, err = uc.Attach(context.Background(), actorA, "E", 1, "s1")
	assert.Equal(t, domain.MsgBlocked, fieldOf(t, err, "equipment_id"))
	sup.Blocked = false
	st.Suppliers["sup"] = sup

	st.AddSimCard("sB", "B", "8955000000000000003")
	_, err = uc.Attach(context.Background(), actorA, "E", 1, "sB")
	assert.Equal(t, domain.MsgNotHolder, fieldOf(t, err, "simcard_id"))

	st.PutInSlot("s2", "E", 2)
	_, err = uc.Attach(context.Background(), actorA, "E", 1, "s2")
	assert.Equal(t, domain.MsgInstalled, fieldOf(t, err, "simcard_id"))
}

func TestDetach_SlotDosATecnicoSiete(t *testing.T) {
	st, uc := setup()
	st.PutInSlot("s2", "E", 2)

	out, err := uc.Detach(context.Background(), actorA, "E", 2, dto.LocationInput{
		Kind: string(entity.LocationTechnician), TargetID: "7",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.LocationTechnician), out.StorageLocation)
	require.NotNil(t, out.TechnicianID)
	assert.Equal(t, "7", *out.TechnicianID)
	assert.Nil(t, out.EquipmentID)
	assert.Zero(t, out.SlotNumber)

	cols := st.SimCards["s2"].Location.Columns()
	assert.Nil(t, cols.HolderID)
	assert.Nil(t, cols.SlotNumber)
	assert.Nil(t, cols.DepositID)

	list, err := uc.List(context.Background(), actorA, "E")
	require.NoError(t, err)
	assert.Nil(t, list[1].SimCard)
}

func TestDetach_DestinoInvalido(t *testing.T) {
	st, uc := setup()
	st.PutInSlot("s2", "E", 2)

	_, err := uc.Detach(context.Background(), actorA, "E", 2, dto.LocationInput{Kind: string(entity.LocationMaintenance)})
	assert.Equal(t, domain.MsgInvalidDestination, fieldOf(t, err, "location"))

	_, err = uc.Detach(context.Background(), actorA, "E", 1, dto.LocationInput{Kind: string(entity.LocationDeposit), TargetID: "A-dep"})
	assert.Equal(t, domain.MsgSlotEmpty, fieldOf(t, err, "slot_number"))

	assert.Equal(t, entity.InSlot("E", 2), st.SimCards["s2"].Location)
}
