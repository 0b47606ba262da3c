package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"recipe-api/config"
	"recipe-api/infra"
)

func waitForDBCmd() *cobra.Command {
	var timeout, interval time.Duration

	cmd := &cobra.Command{
		Use:   "wait-for-db",
		Short: "Block until the database accepts connections",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if _, err := waitForDB(ctx, cfg.Database, logger, interval); err != nil {
				return err
			}
			logger.Info().Msg("Database available!")
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "give up after this long")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "delay between attempts")
	return cmd
}

// waitForDB opens and pings the database until it answers or ctx ends.
func waitForDB(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger, interval time.Duration) (*gorm.DB, error) {
	logger.Info().Msg("Waiting for database...")
	for {
		db, err := infra.SetupDB(cfg, logger)
		if err == nil {
			if err = infra.Ping(ctx, db, interval); err == nil {
				return db, nil
			}
		}
		logger.Warn().Err(err).Dur("retry_in", interval).Msg("Database unavailable")

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("database not available: %w", ctx.Err())
		case <-time.After(interval):
		}
	}
}
