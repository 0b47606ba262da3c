package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"recipe-api/constants"
	"recipe-api/dto"
	"recipe-api/models"
	"recipe-api/repositories"
)

type IRecipeService interface {
	FindAll(ctx context.Context, userID uint, filter repositories.RecipeFilter) ([]models.Recipe, error)
	FindById(ctx context.Context, recipeID uint, userID uint) (*models.Recipe, error)
	Create(ctx context.Context, input dto.CreateRecipeInput, userID uint) (*models.Recipe, error)
	Replace(ctx context.Context, recipeID uint, userID uint, input dto.CreateRecipeInput) (*models.Recipe, error)
	Update(ctx context.Context, recipeID uint, userID uint, input dto.UpdateRecipeInput) (*models.Recipe, error)
	Delete(ctx context.Context, recipeID uint, userID uint) error
}

type RecipeService struct {
	repository           repositories.IRecipeRepository
	tagRepository        repositories.IAttributeRepository[models.Tag]
	ingredientRepository repositories.IAttributeRepository[models.Ingredient]
}

func NewRecipeService(
	repository repositories.IRecipeRepository,
	tagRepository repositories.IAttributeRepository[models.Tag],
	ingredientRepository repositories.IAttributeRepository[models.Ingredient],
) IRecipeService {
	return &RecipeService{
		repository:           repository,
		tagRepository:        tagRepository,
		ingredientRepository: ingredientRepository,
	}
}

func (s *RecipeService) FindAll(ctx context.Context, userID uint, filter repositories.RecipeFilter) ([]models.Recipe, error) {
	return s.repository.FindAll(ctx, userID, filter)
}

func (s *RecipeService) FindById(ctx context.Context, recipeID uint, userID uint) (*models.Recipe, error) {
	recipe, err := s.repository.FindById(ctx, recipeID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecipeNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *RecipeService) Create(ctx context.Context, input dto.CreateRecipeInput, userID uint) (*models.Recipe, error) {
	verr := &ValidationError{}
	validatePrice(verr, *input.Price)
	tags, err := resolveAttributes(ctx, verr, "tags", s.tagRepository, userID, input.Tags)
	if err != nil {
		return nil, err
	}
	ingredients, err := resolveAttributes(ctx, verr, "ingredients", s.ingredientRepository, userID, input.Ingredients)
	if err != nil {
		return nil, err
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	newRecipe := models.Recipe{
		UserID:      userID,
		Title:       input.Title,
		TimeMinutes: *input.TimeMinutes,
		Price:       *input.Price,
		Link:        input.Link,
		Tags:        tags,
		Ingredients: ingredients,
	}
	created, err := s.repository.Create(ctx, newRecipe)
	if err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return created, nil
}

// Replace is a full update: every scalar field is rewritten. Associations
// are only replaced when supplied.
func (s *RecipeService) Replace(ctx context.Context, recipeID uint, userID uint, input dto.CreateRecipeInput) (*models.Recipe, error) {
	return s.Update(ctx, recipeID, userID, dto.UpdateRecipeInput{
		Title:       &input.Title,
		TimeMinutes: input.TimeMinutes,
		Price:       input.Price,
		Link:        &input.Link,
		Tags:        input.Tags,
		Ingredients: input.Ingredients,
	})
}

// Update applies the fields present in input to a recipe owned by userID.
func (s *RecipeService) Update(ctx context.Context, recipeID uint, userID uint, input dto.UpdateRecipeInput) (*models.Recipe, error) {
	verr := &ValidationError{}
	update := repositories.RecipeUpdate{Fields: map[string]interface{}{}}

	if input.Title != nil {
		update.Fields["title"] = *input.Title
	}
	if input.TimeMinutes != nil {
		update.Fields["time_minutes"] = *input.TimeMinutes
	}
	if input.Price != nil {
		validatePrice(verr, *input.Price)
		update.Fields["price"] = *input.Price
	}
	if input.Link != nil {
		update.Fields["link"] = *input.Link
	}

	var err error
	if input.Tags != nil {
		update.SetTags = true
		update.Tags, err = resolveAttributes(ctx, verr, "tags", s.tagRepository, userID, input.Tags)
		if err != nil {
			return nil, err
		}
	}
	if input.Ingredients != nil {
		update.SetIngredients = true
		update.Ingredients, err = resolveAttributes(ctx, verr, "ingredients", s.ingredientRepository, userID, input.Ingredients)
		if err != nil {
			return nil, err
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	updated, err := s.repository.Update(ctx, recipeID, userID, update)
	if err != nil {
		if errors.Is(err, repositories.ErrRecipeNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return updated, nil
}

func (s *RecipeService) Delete(ctx context.Context, recipeID uint, userID uint) error {
	if err := s.repository.Delete(ctx, recipeID, userID); err != nil {
		if errors.Is(err, repositories.ErrRecipeNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

func validatePrice(verr *ValidationError, price decimal.Decimal) {
	if -price.Exponent() > constants.PricePlaces {
		verr.Add("price", fmt.Sprintf("Ensure that there are no more than %d decimal places.", constants.PricePlaces))
		return
	}
	limit := decimal.New(1, constants.PriceMaxDigits-constants.PricePlaces)
	if price.Abs().GreaterThanOrEqual(limit) {
		verr.Add("price", fmt.Sprintf("Ensure that there are no more than %d digits in total.", constants.PriceMaxDigits))
	}
}

// resolveAttributes loads the caller's rows for ids. Ids that are unknown
// or owned by another user are reported on field.
func resolveAttributes[T models.Attribute](
	ctx context.Context,
	verr *ValidationError,
	field string,
	repository repositories.IAttributeRepository[T],
	userID uint,
	ids []uint,
) ([]T, error) {
	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	items, err := repository.FindByIDs(ctx, userID, unique)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", field, err)
	}

	found := make(map[uint]bool, len(items))
	for _, item := range items {
		found[item.GetID()] = true
	}
	for _, id := range unique {
		if !found[id] {
			verr.Add(field, fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
		}
	}
	return items, nil
}
