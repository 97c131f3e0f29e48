package movimentation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanheinriich/agendamentos-sub004/internal/application/movimentation"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/entity"
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestWizard_TrasladoCompleto(t *testing.T) {
	w, err := movimentation.NewWizard("w1", "A", "u1", movimentation.ModeTransfer, now)
	require.NoError(t, err)
	assert.Equal(t, movimentation.StepSelectOrigin, w.Step)

	require.NoError(t, w.SetOrigin(entity.DeviceEquipment, entity.OnDeposit("d1"), now))
	assert.Equal(t, movimentation.StepSelectDevices, w.Step)

	require.NoError(t, w.SetDevices([]string{"e1", "e2", "e1", ""}, now))
	assert.Equal(t, []string{"e1", "e2"}, w.DeviceIDs)
	assert.Equal(t, movimentation.StepSelectDestination, w.Step)
	assert.ErrorIs(t, w.ReadyToConfirm(), domain.ErrInvalidTransition)

	require.NoError(t, w.SetDestination(entity.WithTechnician("t7"), now))
	assert.Equal(t, movimentation.StepConfirm, w.Step)
	require.NoError(t, w.ReadyToConfirm())

	w.Finish(2, now)
	assert.Equal(t, movimentation.StepDone, w.Step)
	assert.ErrorIs(t, w.SetOrigin(entity.DeviceEquipment, entity.OnDeposit("d1"), now), domain.ErrInvalidTransition)
}

func TestWizard_DevolucionSaltaElDestino(t *testing.T) {
	w, err := movimentation.NewWizard("w1", "A", "u1", movimentation.ModeReturn, now)
	require.NoError(t, err)
	require.NoError(t, w.SetOrigin(entity.DeviceSimCard, entity.OnDeposit("d1"), now))
	require.NoError(t, w.SetDevices([]string{"s1"}, now))

	assert.Equal(t, movimentation.StepConfirm, w.Step)
	assert.Equal(t, entity.ReturnedToSupplier(), w.Destination)
	assert.ErrorIs(t, w.SetDestination(entity.OnDeposit("d2"), now), domain.ErrInvalidTransition)
}

func TestWizard_NoSaltaPasos(t *testing.T) {
	w, err := movimentation.NewWizard("w1", "A", "u1", movimentation.ModeTransfer, now)
	require.NoError(t, err)

	assert.ErrorIs(t, w.SetDevices([]string{"e1"}, now), domain.ErrInvalidTransition)
	assert.ErrorIs(t, w.SetDestination(entity.OnDeposit("d2"), now), domain.ErrInvalidTransition)
	assert.ErrorIs(t, w.ReadyToConfirm(), domain.ErrInvalidTransition)
}

func TestWizard_VolverAlOrigenDescartaSeleccion(t *testing.T) {
	w, err := movimentation.NewWizard("w1", "A", "u1", movimentation.ModeTransfer, now)
	require.NoError(t, err)
	require.NoError(t, w.SetOrigin(entity.DeviceEquipment, entity.OnDeposit("d1"), now))
	require.NoError(t, w.SetDevices([]string{"e1"}, now))
	require.NoError(t, w.SetDestination(entity.OnDeposit("d2"), now))

	require.NoError(t, w.SetOrigin(entity.DeviceEquipment, entity.WithTechnician("t7"), now))
	assert.Empty(t, w.DeviceIDs)
	assert.True(t, w.Destination.IsZero())
	assert.Equal(t, movimentation.StepSelectDevices, w.Step)
}

func TestWizard_OrigenYDestinoInvalidos(t *testing.T) {
	w, err := movimentation.NewWizard("w1", "A", "u1", movimentation.ModeTransfer, now)
	require.NoError(t, err)

	assert.ErrorIs(t, w.SetOrigin(entity.DeviceEquipment, entity.InstalledOn("v1"), now), domain.ErrInvalidInput)
	assert.ErrorIs(t, w.SetOrigin(entity.DeviceKind("router"), entity.OnDeposit("d1"), now), domain.ErrInvalidInput)

	require.NoError(t, w.SetOrigin(entity.DeviceEquipment, entity.OnDeposit("d1"), now))
	require.NoError(t, w.SetDevices([]string{"e1"}, now))
	assert.ErrorIs(t, w.SetDestination(entity.OnDeposit("d1"), now), domain.ErrInvalidInput, "destino igual al origen")
	assert.ErrorIs(t, w.SetDestination(entity.ReturnedToSupplier(), now), domain.ErrInvalidInput)

	_, err = movimentation.NewWizard("w2", "A", "u1", movimentation.Mode("loan"), now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
