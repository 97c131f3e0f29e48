package leasing_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
	"github.com/jeanheinriich/agendamentos-sub004/internal/domain/leasing"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, leasing.TransitionNone, leasing.Classify(false, false))
	assert.Equal(t, leasing.TransitionBegin, leasing.Classify(false, true))
	assert.Equal(t, leasing.TransitionEnd, leasing.Classify(true, false))
	assert.Equal(t, leasing.TransitionContinue, leasing.Classify(true, true))
}

func TestClassifySlot_InicioDeComodato(t *testing.T) {
	// Equipo de A pasa a B.
	const owner, oldHolder, newHolder = "A", "A", "B"

	assert.Equal(t, leasing.SlotFollow,
		leasing.ClassifySlot(leasing.CardHolding{OwnerID: "A", HolderID: "A"}, owner, oldHolder, newHolder),
		"SIM de A sin comodato acompaña al equipo")

	assert.Equal(t, leasing.SlotKeep,
		leasing.ClassifySlot(leasing.CardHolding{OwnerID: "B", HolderID: "B"}, owner, oldHolder, newHolder),
		"SIM propia de B ya está con quien corresponde")

	assert.Equal(t, leasing.SlotKeep,
		leasing.ClassifySlot(leasing.CardHolding{OwnerID: "A", HolderID: "B"}, owner, oldHolder, newHolder),
		"SIM de A ya arrendada a B se mantiene")

	assert.Equal(t, leasing.SlotUnlink,
		leasing.ClassifySlot(leasing.CardHolding{OwnerID: "C", HolderID: "C"}, owner, oldHolder, newHolder),
		"SIM de un tercero se desvincula")

	assert.Equal(t, leasing.SlotUnlink,
		leasing.ClassifySlot(leasing.CardHolding{OwnerID: "A", HolderID: "C"}, owner, oldHolder, newHolder),
		"SIM de A arrendada a otro no puede seguir en el equipo")
}

func TestClassifySlot_FinDeComodato(t *testing.T) {
	// Equipo de A vuelve desde B.
	const owner, oldHolder, newHolder = "A", "B", "A"

	assert.Equal(t, leasing.SlotFollow,
		leasing.ClassifySlot(leasing.CardHolding{OwnerID: "A", HolderID: "B"}, owner, oldHolder, newHolder))
	assert.Equal(t, leasing.SlotKeep,
		leasing.ClassifySlot(leasing.CardHolding{OwnerID: "A", HolderID: "A"}, owner, oldHolder, newHolder))
	assert.Equal(t, leasing.SlotUnlink,
		leasing.ClassifySlot(leasing.CardHolding{OwnerID: "B", HolderID: "B"}, owner, oldHolder, newHolder),
		"la SIM propia del arrendatario no vuelve con el equipo")
}

func TestValidateTerms(t *testing.T) {
	start := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, leasing.ValidateTerms("A", leasing.Terms{AssignedToID: "B", StartDate: start, GracePeriod: 2}))

	err := leasing.ValidateTerms("A", leasing.Terms{AssignedToID: "A", StartDate: start})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	var v *domain.ValidationError
	require.True(t, errors.As(err, &v))
	assert.Equal(t, domain.MsgSelfLease, v.Fields["assigned_to_id"])

	before := start.AddDate(0, 0, -1)
	err = leasing.ValidateTerms("A", leasing.Terms{AssignedToID: "B", StartDate: start, EndDate: &before, GracePeriod: -1})
	require.True(t, errors.As(err, &v))
	assert.Equal(t, domain.MsgEndBeforeStart, v.Fields["end_date"])
	assert.Equal(t, domain.MsgOutOfRange, v.Fields["grace_period"])

	err = leasing.ValidateTerms("A", leasing.Terms{})
	require.True(t, errors.As(err, &v))
	assert.Equal(t, domain.MsgRequired, v.Fields["assigned_to_id"])
	assert.Equal(t, domain.MsgRequired, v.Fields["start_date"])
}

func TestEndDateOrNow(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, now, leasing.EndDateOrNow(nil, now))
	d := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, d, leasing.EndDateOrNow(&d, now))
}
