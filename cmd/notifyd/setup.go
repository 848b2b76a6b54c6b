package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/chatwire/internal/config"
	"github.com/alfredjeanlab/chatwire/internal/store/postgres"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Apply the chat schema and notification triggers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		st, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(); err != nil {
			return err
		}
		slog.Info("migrations applied")
		return nil
	},
}
