package movimentation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
	"github.com/jeanheinriich/agendamentos-sub004/internal/application/movimentation"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
	"github.com/jeanheinriich/agendamentos-sub004/internal/testutil/memstore"
)

var actorA = dto.Actor{UserID: "u1", ContractorID: "A", Role: entity.RoleOperator}

func setup() (*memstore.Store, *movimentation.UseCase) {
	st := memstore.New()
	st.AddContractor("A", "Alfa")
	st.AddContractor("B", "Beta")
	st.Technicians["t7"] = entity.Technician{ID: "t7", ContractorID: "A", Name: "Técnico 7"}
	st.AddEquipment("e1", "A", "SN-1")
	st.AddEquipment("e2", "A", "SN-2")
	st.AddEquipment("e3", "A", "SN-3")
	return st, movimentation.NewUseCase(st.Set(), st.TxRunner(), memstore.NewWizardStore())
}

func fieldOf(t *testing.T, err error, field string) string {
	t.Helper()
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v), "se esperaba ValidationError, llegó %v", err)
	return v.Fields[field]
}

// transferUntilConfirm lleva un traslado de e1 y e2 desde el depósito de A hasta el técnico t7.
func transferUntilConfirm(t *testing.T, uc *movimentation.UseCase) string {
	t.Helper()
	ctx := context.Background()
	w, err := uc.Start(ctx, actorA, dto.StartMovimentationRequest{Mode: "transfer"})
	require.NoError(t, err)
	_, err = uc.SelectOrigin(ctx, actorA, w.ID, dto.SelectOriginRequest{
		DeviceKind: "equipment", Location: string(entity.LocationDeposit), TargetID: "A-dep",
	})
	require.NoError(t, err)
	_, err = uc.SelectDevices(ctx, actorA, w.ID, dto.SelectDevicesRequest{DeviceIDs: []string{"e1", "e2"}})
	require.NoError(t, err)
	out, err := uc.SelectDestination(ctx, actorA, w.ID, dto.SelectDestinationRequest{
		Location: string(entity.LocationTechnician), TargetID: "t7",
	})
	require.NoError(t, err)
	assert.Equal(t, string(movimentation.StepConfirm), out.Step)
	return w.ID
}

func TestTraslado_Confirmado(t *testing.T) {
	st, uc := setup()
	id := transferUntilConfirm(t, uc)

	out, err := uc.Confirm(context.Background(), actorA, id)
	require.NoError(t, err)
	assert.Equal(t, string(movimentation.StepDone), out.Step)
	assert.Equal(t, 2, out.Moved)

	assert.Equal(t, entity.WithTechnician("t7"), st.Equipments["e1"].Location)
	assert.Equal(t, entity.WithTechnician("t7"), st.Equipments["e2"].Location)
	assert.Equal(t, entity.OnDeposit("A-dep"), st.Equipments["e3"].Location)
	assert.Equal(t, []string{entity.ActionMoved}, st.HistoryOf("e1"))

	_, err = uc.Confirm(context.Background(), actorA, id)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "no se confirma dos veces")
}

func TestTraslado_TodoONada(t *testing.T) {
	st, uc := setup()
	id := transferUntilConfirm(t, uc)

	// e2 se movió por otra vía después de la selección.
	e2 := st.Equipments["e2"]
	e2.Location = entity.UnderMaintenance()
	st.Equipments["e2"] = e2

	_, err := uc.Confirm(context.Background(), actorA, id)
	assert.Equal(t, domain.MsgNotAtOrigin, fieldOf(t, err, "device_ids"))

	assert.Equal(t, entity.OnDeposit("A-dep"), st.Equipments["e1"].Location, "e1 no debe quedar movido")
	assert.Empty(t, st.HistoryOf("e1"))

	got, err := uc.Get(context.Background(), actorA, id)
	require.NoError(t, err)
	assert.Equal(t, string(movimentation.StepConfirm), got.Step)
}

func TestTraslado_FalloDeEscrituraRevierte(t *testing.T) {
	st, uc := setup()
	id := transferUntilConfirm(t, uc)
	st.FailUpdate["e2"] = errors.New("conexión perdida")

	_, err := uc.Confirm(context.Background(), actorA, id)
	require.Error(t, err)
	assert.Equal(t, entity.OnDeposit("A-dep"), st.Equipments["e1"].Location)
}

func TestSelectDevices_FueraDelOrigenOBloqueado(t *testing.T) {
	st, uc := setup()
	ctx := context.Background()
	e3 := st.Equipments["e3"]
	e3.Blocked = true
	st.Equipments["e3"] = e3
	st.AddEquipment("eB", "B", "SN-B")

	w, err := uc.Start(ctx, actorA, dto.StartMovimentationRequest{Mode: "transfer"})
	require.NoError(t, err)
	_, err = uc.SelectOrigin(ctx, actorA, w.ID, dto.SelectOriginRequest{
		DeviceKind: "equipment", Location: string(entity.LocationDeposit), TargetID: "A-dep",
	})
	require.NoError(t, err)

	cands, err := uc.Candidates(ctx, actorA, w.ID)
	require.NoError(t, err)
	ids := make([]string, 0, len(cands))
	for _, c := range cands {
		ids = append(ids, c.ID)
	}
	assert.ElementsMatch(t, []string{"e1", "e2"}, ids)

	_, err = uc.SelectDevices(ctx, actorA, w.ID, dto.SelectDevicesRequest{DeviceIDs: []string{"e1", "e3"}})
	assert.Equal(t, domain.MsgNotAtOrigin, fieldOf(t, err, "device_ids"))
	_, err = uc.SelectDevices(ctx, actorA, w.ID, dto.SelectDevicesRequest{DeviceIDs: []string{"eB"}})
	assert.Equal(t, domain.MsgNotAtOrigin, fieldOf(t, err, "device_ids"))
}

func TestSelectOrigin_InstaladoRechazado(t *testing.T) {
	_, uc := setup()
	ctx := context.Background()
	w, err := uc.Start(ctx, actorA, dto.StartMovimentationRequest{Mode: "transfer"})
	require.NoError(t, err)

	_, err = uc.SelectOrigin(ctx, actorA, w.ID, dto.SelectOriginRequest{
		DeviceKind: "equipment", Location: string(entity.LocationInstalled), TargetID: "v1",
	})
	assert.Equal(t, domain.MsgInstalled, fieldOf(t, err, "location"))
}

func TestDevolucion_SimCards(t *testing.T) {
	st, uc := setup()
	ctx := context.Background()
	st.AddSimCard("s1", "A", "8955000000000000001")
	st.AddSimCard("s2", "A", "8955000000000000002")
	st.Lease(entity.DeviceSimCard, "s2", "B", memstore.Seeded, 0)
	// s2 en comodato está con B; A no la ve como candidata.

	w, err := uc.Start(ctx, actorA, dto.StartMovimentationRequest{Mode: "return"})
	require.NoError(t, err)
	_, err = uc.SelectOrigin(ctx, actorA, w.ID, dto.SelectOriginRequest{
		DeviceKind: "simcard", Location: string(entity.LocationDeposit), TargetID: "A-dep",
	})
	require.NoError(t, err)
	out, err := uc.SelectDevices(ctx, actorA, w.ID, dto.SelectDevicesRequest{DeviceIDs: []string{"s1"}})
	require.NoError(t, err)
	assert.Equal(t, string(movimentation.StepConfirm), out.Step)
	assert.Equal(t, string(entity.LocationReturned), out.Destination)

	_, err = uc.SelectDestination(ctx, actorA, w.ID, dto.SelectDestinationRequest{Location: string(entity.LocationDeposit), TargetID: "A-dep"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.Confirm(ctx, actorA, w.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReturnedToSupplier(), st.SimCards["s1"].Location)
	assert.Equal(t, []string{entity.ActionReturned}, st.HistoryOf("s1"))
}

func TestAsistenteDeOtroUsuario(t *testing.T) {
	_, uc := setup()
	ctx := context.Background()
	w, err := uc.Start(ctx, actorA, dto.StartMovimentationRequest{Mode: "transfer"})
	require.NoError(t, err)

	other := dto.Actor{UserID: "u9", ContractorID: "A"}
	_, err = uc.Get(ctx, other, w.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.Cancel(ctx, actorA, w.ID))
	_, err = uc.Get(ctx, actorA, w.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
