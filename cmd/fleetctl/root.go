package main

import (
	"github.com/spf13/cobra"

	"github.com/jeanheinriich/agendamentos-sub004/pkg/config"
	"github.com/jeanheinriich/agendamentos-sub004/pkg/logger"
)

var (
	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "fleetctl",
	Short:         "Operación del inventario de flota",
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Output: cmd.ErrOrStderr()})
		return nil
	},
}
