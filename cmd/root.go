// Package cmd holds the recipe-api command line.
package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"recipe-api/config"
	"recipe-api/infra"
)

var configPath string

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "recipe-api",
		Short:         "Recipe management REST backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (default ./config.yaml when present)")

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(migrateCmd())
	cmd.AddCommand(createSuperuserCmd())
	cmd.AddCommand(waitForDBCmd())

	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

// bootstrap loads .env, configuration and the root logger.
func bootstrap() (*config.Config, zerolog.Logger, error) {
	infra.Initialize()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("load config: %w", err)
	}
	return cfg, infra.NewLogger(cfg.Logging), nil
}
