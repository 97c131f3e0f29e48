// Package scheduler registra las tareas periódicas con robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jeanheinriich/agendamentos-sub004/internal/application/dto"
)

// GraceLister lista comodatos cuya carencia termina en un día.
type GraceLister interface {
	List(ctx context.Context, contractorID string, day time.Time) ([]dto.LeaseResponse, error)
}

// Job tarea programada.
type Job struct {
	Name     string
	Schedule string
	Run      func(ctx context.Context) error
}

// Scheduler envuelve cron.Cron con logging por ejecución.
type Scheduler struct {
	c   *cron.Cron
	log zerolog.Logger
}

// New construye el scheduler. Las tareas no se ejecutan hasta Start.
func New(log zerolog.Logger) *Scheduler {
	return &Scheduler{c: cron.New(), log: log}
}

// Register agrega una tarea. Una expresión cron inválida es error.
func (s *Scheduler) Register(job Job) error {
	_, err := s.c.AddFunc(job.Schedule, func() {
		start := time.Now()
		if err := job.Run(context.Background()); err != nil {
			s.log.Error().Err(err).Str("job", job.Name).Msg("tarea programada falló")
			return
		}
		s.log.Info().Str("job", job.Name).Dur("duration", time.Since(start)).Msg("tarea programada ejecutada")
	})
	if err != nil {
		return fmt.Errorf("registrar tarea %s: %w", job.Name, err)
	}
	return nil
}

// Start arranca el cron en su propia goroutine.
func (s *Scheduler) Start() { s.c.Start() }

// Stop detiene el cron y espera a que terminen las tareas en curso o venza ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.c.Stop().Done():
	case <-ctx.Done():
	}
}

// GraceSweep tarea que registra en el log los comodatos cuya carencia termina hoy.
func GraceSweep(lister GraceLister, log zerolog.Logger, schedule string, now func() time.Time) Job {
	return Job{
		Name:     "grace-sweep",
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			_, err := SweepGrace(ctx, lister, log, now())
			return err
		},
	}
}

// SweepGrace lista los comodatos cuya carencia termina en day y los registra. Devuelve cuántos hubo.
func SweepGrace(ctx context.Context, lister GraceLister, log zerolog.Logger, day time.Time) (int, error) {
	leases, err := lister.List(ctx, "", day)
	if err != nil {
		return 0, fmt.Errorf("listar fin de carencia: %w", err)
	}
	for _, l := range leases {
		log.Info().
			Str("kind", l.Kind).
			Str("item_id", l.ItemID).
			Str("contractor_id", l.ContractorID).
			Str("assigned_to_id", l.AssignedToID).
			Time("grace_ends_at", l.GraceEndsAt).
			Str("monthly_fee", l.MonthlyFee.StringFixed(2)).
			Msg("fin de carencia: inicia cobranza del comodato")
	}
	return len(leases), nil
}
