package main

import (
	"github.com/Abraxas-365/skillbridge/migrations"
	"github.com/Abraxas-365/skillbridge/pkg/logx"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and create vector collections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			container, err := NewContainer(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer container.Close()

			applied, err := migrations.Up(cmd.Context(), container.DB)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				logx.Info("Schema is up to date")
				return nil
			}
			logx.Infof("Applied %d migration(s)", len(applied))
			return nil
		},
	}
}
