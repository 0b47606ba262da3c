package infra

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-api/config"
)

func TestSetupDBSqlite(t *testing.T) {
	db, err := SetupDB(config.DatabaseConfig{Driver: "sqlite"}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "sqlite", db.Dialector.Name())
	assert.NoError(t, Ping(context.Background(), db, time.Second))
}

func TestNewLoggerLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, NewLogger(config.LoggingConfig{Level: "debug", Format: "json"}).GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewLogger(config.LoggingConfig{Level: "bogus"}).GetLevel())
}
