package dto

import (
	"github.com/shopspring/decimal"

	"recipe-api/constants"
	"recipe-api/models"
)

// CreateRecipeInput is used for POST and PUT. Tags and Ingredients are
// left untouched on PUT when omitted.
type CreateRecipeInput struct {
	Title       string           `json:"title" binding:"required,max=255"`
	TimeMinutes *int             `json:"time_minutes" binding:"required,min=0"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Link        string           `json:"link" binding:"max=255"`
	Tags        []uint           `json:"tags"`
	Ingredients []uint           `json:"ingredients"`
}

type UpdateRecipeInput struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=255"`
	TimeMinutes *int             `json:"time_minutes" binding:"omitempty,min=0"`
	Price       *decimal.Decimal `json:"price"`
	Link        *string          `json:"link" binding:"omitempty,max=255"`
	Tags        []uint           `json:"tags"`
	Ingredients []uint           `json:"ingredients"`
}

// RecipeResponse is the list representation: associations as ids.
type RecipeResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Ingredients []uint `json:"ingredients"`
	Tags        []uint `json:"tags"`
	TimeMinutes int    `json:"time_minutes"`
	Price       string `json:"price"`
	Link        string `json:"link"`
}

// RecipeDetailResponse is the single item representation: associations nested.
type RecipeDetailResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Ingredients []AttributeResponse `json:"ingredients"`
	Tags        []AttributeResponse `json:"tags"`
	TimeMinutes int                 `json:"time_minutes"`
	Price       string              `json:"price"`
	Link        string              `json:"link"`
}

func NewRecipeResponse(recipe *models.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		Ingredients: recipe.IngredientIDs(),
		Tags:        recipe.TagIDs(),
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price.StringFixed(constants.PricePlaces),
		Link:        recipe.Link,
	}
}

func NewRecipeResponses(recipes []models.Recipe) []RecipeResponse {
	responses := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		responses = append(responses, NewRecipeResponse(&recipes[i]))
	}
	return responses
}

func NewRecipeDetailResponse(recipe *models.Recipe) RecipeDetailResponse {
	return RecipeDetailResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		Ingredients: NewAttributeResponses(recipe.Ingredients),
		Tags:        NewAttributeResponses(recipe.Tags),
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price.StringFixed(constants.PricePlaces),
		Link:        recipe.Link,
	}
}
