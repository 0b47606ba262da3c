package services_test

import (
	"os"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"recipe-api/services"
)

func TestMain(m *testing.M) {
	services.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}
