package cmd

import (
	"github.com/spf13/cobra"

	"recipe-api/infra"
	"recipe-api/migrations"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}

			db, err := infra.SetupDB(cfg.Database, logger)
			if err != nil {
				return err
			}
			if err := migrations.Run(db); err != nil {
				return err
			}
			logger.Info().Msg("Database migrated")
			return nil
		},
	}
}
