package leasing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/leasing"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	leaserules "github.com/jeanheinriich/agendamentos-sub004/internal/domain/leasing"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/repository"
	"github.com/jeanheinriich/agendamentos-sub004/internal/testutil/memstore"
)

var actorA = dto.Actor{UserID: "u1", ContractorID: "A", Role: entity.RoleAdmin}

func newStore() *memstore.Store {
	st := memstore.New()
	st.AddContractor("A", "Alfa")
	st.AddContractor("B", "Beta")
	st.AddContractor("C", "Gama")
	return st
}

// applyEquipment corre la transición dentro de una tx y persiste el equipo como lo hace el caso de uso.
func applyEquipment(t *testing.T, st *memstore.Store, id string, in leasing.Input) (*leasing.Outcome, error) {
	t.Helper()
	var out *leasing.Outcome
	err := st.TxRunner().Run(context.Background(), func(repos repository.Set) error {
		eq, err := repos.Equipments.GetForUpdate(context.Background(), id)
		if err != nil {
			return err
		}
		out, err = leasing.NewService().ApplyEquipment(context.Background(), repos, actorA, eq, in, time.Now())
		if err != nil {
			return err
		}
		return repos.Equipments.Update(context.Background(), eq)
	})
	return out, err
}

func months(n int) *int { return &n }

func text(s string) *string { return &s }

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// ---------------------------------------------------------------------------
// Inicio de comodato
// ---------------------------------------------------------------------------

func TestApplyEquipment_InicioDesinstalaYPropagaASlots(t *testing.T) {
	st := newStore()
	st.AddEquipment("E", "A", "SN-1")
	st.Install("E", "v1")
	st.AddSimCard("s1", "A", "8955000000000000001")
	st.AddSimCard("s2", "C", "8955000000000000002")
	st.PutInSlot("s1", "E", 1)
	st.PutInSlot("s2", "E", 2)

	fee := decimal.RequireFromString("45.90")
	out, err := applyEquipment(t, st, "E", leasing.Input{
		WillBeLeased: true, AssignedToID: "B", StartDate: date(2026, 1, 10), GracePeriod: months(2), MonthlyFee: &fee,
	})
	require.NoError(t, err)
	assert.Equal(t, leaserules.TransitionBegin, out.Transition)
	assert.Equal(t, []string{"s1"}, out.Followed)
	assert.Equal(t, []string{"s2"}, out.Unlinked)

	eq := st.Equipments["E"]
	assert.True(t, eq.LeasingInProgress)
	require.NotNil(t, eq.AssignedToID)
	assert.Equal(t, "B", *eq.AssignedToID)
	assert.Equal(t, entity.OnDeposit("B-dep"), eq.Location)

	// Instalación cerrada y registros laterales eliminados.
	assert.NotNil(t, st.Installations["inst-E"].UninstalledAt)
	assert.Zero(t, st.SideRecords["E"])

	leases := st.ActiveLeases(entity.DeviceEquipment, "E")
	require.Len(t, leases, 1)
	assert.Equal(t, "B", leases[0].AssignedToID)
	assert.Equal(t, 2, leases[0].GracePeriod)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), leases[0].GraceEndsAt())
	assert.True(t, fee.Equal(leases[0].MonthlyFee))

	// La SIM del dueño acompaña al equipo y sigue en el slot.
	s1 := st.SimCards["s1"]
	assert.True(t, s1.LeasingInProgress)
	assert.Equal(t, "B", s1.Holder())
	assert.Equal(t, entity.InSlot("E", 1), s1.Location)
	cardLeases := st.ActiveLeases(entity.DeviceSimCard, "s1")
	require.Len(t, cardLeases, 1)
	assert.True(t, cardLeases[0].MonthlyFee.IsZero(), "la mensualidad se cobra solo en el comodato del equipo")
	assert.Equal(t, 2, cardLeases[0].GracePeriod)

	// La de un tercero vuelve al depósito de su tenedor.
	assert.Equal(t, entity.OnDeposit("C-dep"), st.SimCards["s2"].Location)

	assert.Equal(t, []string{entity.ActionUninstalled, entity.ActionLeaseBegin}, st.HistoryOf("E"))
}

func TestApplyEquipment_InicioIdempotente(t *testing.T) {
	st := newStore()
	st.AddEquipment("E", "A", "SN-1")
	// Comodato abierto huérfano: el flag quedó en false.
	st.EquipmentLeases["old"] = entity.Lease{
		ID: "old", Kind: entity.DeviceEquipment, ItemID: "E", ContractorID: "A", AssignedToID: "B",
		StartDate: *date(2025, 6, 1), GracePeriod: 1,
	}

	_, err := applyEquipment(t, st, "E", leasing.Input{
		WillBeLeased: true, AssignedToID: "B", StartDate: date(2026, 2, 1), GracePeriod: months(3),
	})
	require.NoError(t, err)

	leases := st.ActiveLeases(entity.DeviceEquipment, "E")
	require.Len(t, leases, 1, "nunca dos comodatos abiertos para el mismo par")
	assert.Equal(t, "old", leases[0].ID)
	assert.Equal(t, 3, leases[0].GracePeriod)
	assert.Equal(t, *date(2026, 2, 1), leases[0].StartDate)
}

func TestApplyEquipment_InicioConSiMismoEsInvalido(t *testing.T) {
	st := newStore()
	st.AddEquipment("E", "A", "SN-1")

	_, err := applyEquipment(t, st, "E", leasing.Input{WillBeLeased: true, AssignedToID: "A", StartDate: date(2026, 1, 1)})
	require.Error(t, err)
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v))
	assert.Equal(t, domain.MsgSelfLease, v.Fields["assigned_to_id"])
	assert.False(t, st.Equipments["E"].LeasingInProgress)
}

func TestApplyEquipment_InicioSinDepositoDelArrendatario(t *testing.T) {
	st := newStore()
	st.AddEquipment("E", "A", "SN-1")
	st.Contractors["D"] = entity.Contractor{ID: "D", Name: "Sin depósito"}

	_, err := applyEquipment(t, st, "E", leasing.Input{WillBeLeased: true, AssignedToID: "D", StartDate: date(2026, 1, 1)})
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v))
	assert.Equal(t, domain.MsgNoDefaultDeposit, v.Fields["assigned_to_id"])
	assert.Empty(t, st.ActiveLeases(entity.DeviceEquipment, "E"))
}

// ---------------------------------------------------------------------------
// Fin de comodato
// ---------------------------------------------------------------------------

func TestApplyEquipment_FinCierraUnSoloComodato(t *testing.T) {
	st := newStore()
	st.AddEquipment("E", "A", "SN-1")
	st.Lease(entity.DeviceEquipment, "E", "B", *date(2026, 1, 1), 0)
	st.AddSimCard("s1", "A", "8955000000000000001")
	st.Lease(entity.DeviceSimCard, "s1", "B", *date(2026, 1, 1), 0)
	st.PutInSlot("s1", "E", 1)
	st.AddSimCard("s2", "B", "8955000000000000002")
	st.PutInSlot("s2", "E", 2)

	out, err := applyEquipment(t, st, "E", leasing.Input{WillBeLeased: false, EndDate: date(2026, 4, 30)})
	require.NoError(t, err)
	assert.Equal(t, leaserules.TransitionEnd, out.Transition)

	eq := st.Equipments["E"]
	assert.False(t, eq.LeasingInProgress)
	assert.Nil(t, eq.AssignedToID)
	assert.Equal(t, entity.OnDeposit("A-dep"), eq.Location)
	assert.Empty(t, st.ActiveLeases(entity.DeviceEquipment, "E"))
	closed := st.EquipmentLeases["lease-E-B"]
	require.NotNil(t, closed.EndDate)
	assert.Equal(t, *date(2026, 4, 30), *closed.EndDate)

	// La SIM de A vuelve con el equipo; la propia de B se queda con B.
	s1 := st.SimCards["s1"]
	assert.False(t, s1.LeasingInProgress)
	assert.Equal(t, entity.InSlot("E", 1), s1.Location)
	assert.Empty(t, st.ActiveLeases(entity.DeviceSimCard, "s1"))
	assert.Equal(t, entity.OnDeposit("B-dep"), st.SimCards["s2"].Location)
}

func TestApplyEquipment_FinSinComodatoAbiertoEsConflicto(t *testing.T) {
	st := newStore()
	st.AddEquipment("E", "A", "SN-1")
	st.Lease(entity.DeviceEquipment, "E", "B", *date(2026, 1, 1), 0)
	delete(st.EquipmentLeases, "lease-E-B")

	_, err := applyEquipment(t, st, "E", leasing.Input{WillBeLeased: false})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, st.Equipments["E"].LeasingInProgress, "rollback")
}

// ---------------------------------------------------------------------------
// Continuación
// ---------------------------------------------------------------------------

func TestApplyEquipment_ContinuacionActualizaCampos(t *testing.T) {
	st := newStore()
	st.AddEquipment("E", "A", "SN-1")
	st.Lease(entity.DeviceEquipment, "E", "B", *date(2026, 1, 1), 0)

	fee := decimal.NewFromInt(30)
	out, err := applyEquipment(t, st, "E", leasing.Input{WillBeLeased: true, AssignedToID: "B", GracePeriod: months(4), MonthlyFee: &fee, Notes: text("renegociado")})
	require.NoError(t, err)
	assert.Equal(t, leaserules.TransitionContinue, out.Transition)

	l := st.EquipmentLeases["lease-E-B"]
	assert.Equal(t, 4, l.GracePeriod)
	assert.True(t, fee.Equal(l.MonthlyFee))
	assert.Equal(t, "renegociado", l.Notes)
	assert.Equal(t, *date(2026, 1, 1), l.StartDate)
}

func TestApplyEquipment_ContinuacionSoloMensualidadConservaLoDemas(t *testing.T) {
	st := newStore()
	st.AddEquipment("E", "A", "SN-1")
	st.Lease(entity.DeviceEquipment, "E", "B", *date(2026, 1, 1), 3)
	l := st.EquipmentLeases["lease-E-B"]
	l.Notes = "contrato 42"
	st.EquipmentLeases["lease-E-B"] = l

	fee := decimal.NewFromInt(55)
	_, err := applyEquipment(t, st, "E", leasing.Input{WillBeLeased: true, MonthlyFee: &fee})
	require.NoError(t, err)

	l = st.EquipmentLeases["lease-E-B"]
	assert.True(t, fee.Equal(l.MonthlyFee))
	assert.Equal(t, 3, l.GracePeriod)
	assert.Equal(t, "contrato 42", l.Notes)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), l.GraceEndsAt())
}

func TestApplyEquipment_ContinuacionNoCambiaArrendatario(t *testing.T) {
	st := newStore()
	st.AddEquipment("E", "A", "SN-1")
	st.Lease(entity.DeviceEquipment, "E", "B", *date(2026, 1, 1), 0)

	_, err := applyEquipment(t, st, "E", leasing.Input{WillBeLeased: true, AssignedToID: "C"})
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v))
	assert.Equal(t, domain.MsgLesseeChanged, v.Fields["assigned_to_id"])
}

// ---------------------------------------------------------------------------
// SIM card editada directamente
// ---------------------------------------------------------------------------

func TestApplySimCard_InicioRetiraDelSlot(t *testing.T) {
	st := newStore()
	st.AddEquipment("E", "A", "SN-1")
	st.AddSimCard("s1", "A", "8955000000000000001")
	st.PutInSlot("s1", "E", 1)

	err := st.TxRunner().Run(context.Background(), func(repos repository.Set) error {
		card, err := repos.SimCards.GetForUpdate(context.Background(), "s1")
		if err != nil {
			return err
		}
		if _, err := leasing.NewService().ApplySimCard(context.Background(), repos, actorA, card,
			leasing.Input{WillBeLeased: true, AssignedToID: "B", StartDate: date(2026, 1, 1)}, time.Now()); err != nil {
			return err
		}
		return repos.SimCards.Update(context.Background(), card)
	})
	require.NoError(t, err)

	s1 := st.SimCards["s1"]
	assert.Equal(t, entity.OnDeposit("B-dep"), s1.Location)
	assert.Equal(t, "B", s1.Holder())
	assert.Len(t, st.ActiveLeases(entity.DeviceSimCard, "s1"), 1)
}

// ---------------------------------------------------------------------------
// Carencia
// ---------------------------------------------------------------------------

func TestGraceEnding_FiltraPorContratanteYDia(t *testing.T) {
	st := newStore()
	st.AddEquipment("E1", "A", "SN-1")
	st.AddEquipment("E2", "C", "SN-2")
	st.AddSimCard("s1", "A", "8955000000000000001")
	st.Lease(entity.DeviceEquipment, "E1", "B", *date(2026, 1, 10), 2)
	st.Lease(entity.DeviceEquipment, "E2", "B", *date(2026, 1, 10), 2)
	st.Lease(entity.DeviceSimCard, "s1", "B", *date(2026, 2, 10), 1)

	repos := st.Set()
	uc := leasing.NewGraceEndingUseCase(repos.EquipmentLeases, repos.SimCardLeases)

	list, err := uc.List(context.Background(), "A", *date(2026, 3, 10))
	require.NoError(t, err)
	require.Len(t, list, 2)
	ids := []string{list[0].ItemID, list[1].ItemID}
	assert.ElementsMatch(t, []string{"E1", "s1"}, ids)

	all, err := uc.List(context.Background(), "", *date(2026, 3, 10))
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := uc.List(context.Background(), "A", *date(2026, 3, 11))
	require.NoError(t, err)
	assert.Empty(t, none)
}
