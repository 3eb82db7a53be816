package main

import (
	"context"
	"os"

	"github.com/Abraxas-365/skillbridge/pkg/config"
	"github.com/Abraxas-365/skillbridge/pkg/logx"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "skillbridge",
		Short:         "Resume to job matching service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML config file")

	root.AddCommand(
		newServeCmd(),
		newIngestCmd(),
		newMigrateCmd(),
	)

	if err := root.ExecuteContext(context.Background()); err != nil {
		logx.Errorf("%v", err)
		logx.Sync()
		os.Exit(1)
	}
	logx.Sync()
}

// loadConfig reads configuration and applies the log settings
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logx.Configure(cfg.Log.JSON, logx.ParseLevel(cfg.Log.Level))
	return cfg, nil
}
