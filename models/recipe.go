package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RecipeTagsTable        = "recipe_tags"
	RecipeIngredientsTable = "recipe_ingredients"
)

type Recipe struct {
	ID          uint            `gorm:"primarykey"`
	UserID      uint            `gorm:"not null;index"`
	Title       string          `gorm:"size:255;not null"`
	TimeMinutes int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Link        string          `gorm:"size:255"`
	Ingredients []Ingredient    `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE;"`
	Tags        []Tag           `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE;"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TagIDs returns the ids of the attached tags in their loaded order.
func (r *Recipe) TagIDs() []uint {
	ids := make([]uint, 0, len(r.Tags))
	for _, t := range r.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

func (r *Recipe) IngredientIDs() []uint {
	ids := make([]uint, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		ids = append(ids, i.ID)
	}
	return ids
}
