package scheduler

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
)

type fakeLister struct {
	day    time.Time
	leases []dto.LeaseResponse
	err    error
}

func (f *fakeLister) List(_ context.Context, contractorID string, day time.Time) ([]dto.LeaseResponse, error) {
	f.day = day
	return f.leases, f.err
}

func TestSweepGrace_RegistraCadaComodato(t *testing.T) {
	var buf bytes.Buffer
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	lister := &fakeLister{leases: []dto.LeaseResponse{
		{Kind: "equipment", ItemID: "E", ContractorID: "A", AssignedToID: "B", GraceEndsAt: day, MonthlyFee: decimal.NewFromInt(50)},
		{Kind: "simcard", ItemID: "s1", ContractorID: "A", AssignedToID: "B", GraceEndsAt: day},
	}}

	n, err := SweepGrace(context.Background(), lister, zerolog.New(&buf), day)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, day, lister.day)
	assert.Contains(t, buf.String(), `"item_id":"E"`)
	assert.Contains(t, buf.String(), `"monthly_fee":"50.00"`)
	assert.Contains(t, buf.String(), `"item_id":"s1"`)
}

func TestSweepGrace_Error(t *testing.T) {
	_, err := SweepGrace(context.Background(), &fakeLister{err: errors.New("db caída")}, zerolog.Nop(), time.Now())
	assert.Error(t, err)
}

func TestRegister_ExpresionInvalida(t *testing.T) {
	s := New(zerolog.Nop())
	err := s.Register(Job{Name: "x", Schedule: "cada hora", Run: func(context.Context) error { return nil }})
	assert.Error(t, err)

	err = s.Register(GraceSweep(&fakeLister{}, zerolog.Nop(), "0 6 * * *", time.Now))
	assert.NoError(t, err)
}

func TestStartStop(t *testing.T) {
	s := New(zerolog.Nop())
	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
