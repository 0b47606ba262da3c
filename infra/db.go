package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"recipe-api/config"
)

// SetupDB opens the application database. Postgres is used when the
// driver is "postgres"; otherwise sqlite at cfg.Path (":memory:" by default).
func SetupDB(cfg config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}

	if cfg.IsPostgres() {
		db, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres %s@%s:%s/%s: %w", cfg.User, cfg.Host, cfg.Port, cfg.Name, err)
		}
		log.Info().Str("host", cfg.Host).Str("dbname", cfg.Name).Msg("Setup postgres database")
		return db, nil
	}

	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	db, err := gorm.Open(sqlite.Open(path), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	// A single connection keeps an in-memory database alive and avoids
	// sqlite writer contention.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	log.Info().Str("path", path).Msg("Setup sqlite database")
	return db, nil
}

// Ping checks that the database answers within timeout.
func Ping(ctx context.Context, db *gorm.DB, timeout time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
