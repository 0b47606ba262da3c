package infra

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Initialize loads a .env file into the process environment when one exists.
func Initialize() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found; using environment variables")
	}
}
