// Package migrations creates and updates the database schema.
package migrations

import (
	"fmt"

	"gorm.io/gorm"

	"recipe-api/models"
)

// Run migrates every table, join tables included.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.BlacklistedToken{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
