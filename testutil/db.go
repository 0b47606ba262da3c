// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recipe-api/config"
	"recipe-api/infra"
	"recipe-api/migrations"
	"recipe-api/models"
)

// NewDB returns a migrated in-memory sqlite database private to the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := infra.SetupDB(config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts an active user with a hashed password.
func CreateUser(t testing.TB, db *gorm.DB, email, password, name string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Email: email, Password: string(hashed), Name: name, IsActive: true}
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error)
	return user
}

func CreateTag(t testing.TB, db *gorm.DB, userID uint, name string) *models.Tag {
	t.Helper()

	tag := &models.Tag{Name: name, UserID: userID}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

func CreateIngredient(t testing.TB, db *gorm.DB, userID uint, name string) *models.Ingredient {
	t.Helper()

	ingredient := &models.Ingredient{Name: name, UserID: userID}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

// CreateRecipe inserts a recipe priced at 5.00 and links the given rows.
func CreateRecipe(t testing.TB, db *gorm.DB, userID uint, title string, tags []models.Tag, ingredients []models.Ingredient) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		UserID:      userID,
		Title:       title,
		TimeMinutes: 10,
		Price:       decimal.RequireFromString("5.00"),
		Tags:        tags,
		Ingredients: ingredients,
	}
	require.NoError(t, db.Omit("Tags.*", "Ingredients.*").Create(recipe).Error)
	return recipe
}
