package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"recipe-api/infra"
	"recipe-api/migrations"
	"recipe-api/repositories"
	"recipe-api/router"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			if cfg.Env == "prod" {
				gin.SetMode(gin.ReleaseMode)
			}

			db, err := infra.SetupDB(cfg.Database, logger)
			if err != nil {
				return err
			}
			if cfg.Database.AutoMigrate {
				if err := migrations.Run(db); err != nil {
					return err
				}
				logger.Info().Msg("Database migrated")
			}

			tokenRepository := repositories.NewTokenRepository(db)
			if cfg.Redis.Enabled {
				client, err := infra.SetupRedis(cmd.Context(), cfg.Redis)
				if err != nil {
					return err
				}
				defer client.Close()
				tokenRepository = repositories.NewRedisTokenRepository(client, cfg.Redis.Prefix)
				logger.Info().Str("addr", cfg.Redis.Addr).Msg("Using redis token revocation store")
			}

			r := router.SetupRouter(router.Options{
				DB:              db,
				TokenRepository: tokenRepository,
				SecretKey:       []byte(cfg.Auth.SecretKey),
				TokenTTL:        cfg.Auth.TokenTTL,
				AllowedOrigins:  cfg.Server.AllowedOrigins,
				Logger:          logger,
			})

			srv := &http.Server{
				Addr:         ":" + cfg.Server.Port,
				Handler:      r,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				IdleTimeout:  cfg.Server.IdleTimeout,
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go cleanExpiredTokens(ctx, tokenRepository, cfg.Auth.CleanupInterval, logger)

			serverErr := make(chan error, 1)
			go func() {
				logger.Info().Str("port", cfg.Server.Port).Msg("Starting server")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case err := <-serverErr:
				return err
			case <-quit:
			}

			logger.Info().Msg("Shutting down server...")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer shutdownCancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			logger.Info().Msg("Server exited")
			return nil
		},
	}
}

func cleanExpiredTokens(ctx context.Context, tokenRepository repositories.ITokenRepository, interval time.Duration, logger zerolog.Logger) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := tokenRepository.CleanExpiredTokens(ctx)
			if err != nil {
				logger.Error().Err(err).Msg("failed to clean expired tokens")
				continue
			}
			if removed > 0 {
				logger.Debug().Int64("removed", removed).Msg("expired tokens cleaned")
			}
		}
	}
}
