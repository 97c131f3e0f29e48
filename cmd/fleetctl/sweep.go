package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeanheinriich/agendamentos-sub004/internal/application/leasing"
	"github.com/jeanheinriich/agendamentos-sub004/internal/infrastructure/postgres"
	"github.com/jeanheinriich/agendamentos-sub004/internal/infrastructure/scheduler"
)

var sweepDate string

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Ejecuta a mano las tareas del scheduler",
}

var sweepGraceCmd = &cobra.Command{
	Use:   "grace",
	Short: "Lista los comodatos cuya carencia termina en la fecha (hoy por defecto)",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDay(sweepDate, time.Now())
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer pool.Close()

		repos := postgres.NewSet(pool)
		uc := leasing.NewGraceEndingUseCase(repos.EquipmentLeases, repos.SimCardLeases)
		n, err := scheduler.SweepGrace(ctx, uc, log.Component("cli"), day)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d comodato(s)\n", day.Format(time.DateOnly), n)
		return err
	},
}

// parseDay interpreta --date (YYYY-MM-DD); vacío es el día de now.
func parseDay(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return now, nil
	}
	day, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("--date inválida %q: se espera YYYY-MM-DD", raw)
	}
	return day, nil
}

func init() {
	sweepGraceCmd.Flags().StringVar(&sweepDate, "date", "", "Día a revisar (YYYY-MM-DD)")
	sweepCmd.AddCommand(sweepGraceCmd)
	rootCmd.AddCommand(sweepCmd)
}
