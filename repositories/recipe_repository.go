package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recipe-api/models"
)

var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeFilter narrows a recipe listing to recipes carrying any of the
// given tag ids and any of the given ingredient ids. Empty means no filter.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeUpdate carries column changes and, when the Set flags are true,
// the complete new set of associations.
type RecipeUpdate struct {
	Fields         map[string]interface{}
	Tags           []models.Tag
	Ingredients    []models.Ingredient
	SetTags        bool
	SetIngredients bool
}

type IRecipeRepository interface {
	FindAll(ctx context.Context, userID uint, filter RecipeFilter) ([]models.Recipe, error)
	FindById(ctx context.Context, recipeID uint, userID uint) (*models.Recipe, error)
	Create(ctx context.Context, newRecipe models.Recipe) (*models.Recipe, error)
	Update(ctx context.Context, recipeID uint, userID uint, update RecipeUpdate) (*models.Recipe, error)
	Delete(ctx context.Context, recipeID uint, userID uint) error
}

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) IRecipeRepository {
	return &RecipeRepository{db: db}
}

func preloadAssociations(db *gorm.DB) *gorm.DB {
	byID := func(db *gorm.DB) *gorm.DB { return db.Order("id") }
	return db.Preload("Tags", byID).Preload("Ingredients", byID)
}

func (r *RecipeRepository) FindAll(ctx context.Context, userID uint, filter RecipeFilter) ([]models.Recipe, error) {
	db := r.db.WithContext(ctx)
	query := db.Scopes(BelongsTo(userID), preloadAssociations)
	if len(filter.TagIDs) > 0 {
		query = query.Where("id IN (?)",
			db.Table(models.RecipeTagsTable).Select("recipe_id").Where("tag_id IN ?", filter.TagIDs))
	}
	if len(filter.IngredientIDs) > 0 {
		query = query.Where("id IN (?)",
			db.Table(models.RecipeIngredientsTable).Select("recipe_id").Where("ingredient_id IN ?", filter.IngredientIDs))
	}

	var recipes []models.Recipe
	if err := query.Order("id DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *RecipeRepository) FindById(ctx context.Context, recipeID uint, userID uint) (*models.Recipe, error) {
	return findRecipe(r.db.WithContext(ctx), recipeID, userID)
}

func findRecipe(db *gorm.DB, recipeID uint, userID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	result := db.Scopes(BelongsTo(userID), preloadAssociations).First(&recipe, "id = ?", recipeID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, result.Error
	}
	return &recipe, nil
}

// Create inserts the recipe and its association rows. The referenced tags
// and ingredients must already exist.
func (r *RecipeRepository) Create(ctx context.Context, newRecipe models.Recipe) (*models.Recipe, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Tags.*", "Ingredients.*").Create(&newRecipe).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindById(ctx, newRecipe.ID, newRecipe.UserID)
}

func (r *RecipeRepository) Update(ctx context.Context, recipeID uint, userID uint, update RecipeUpdate) (*models.Recipe, error) {
	var updated *models.Recipe
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := findRecipe(tx, recipeID, userID)
		if err != nil {
			return err
		}

		if len(update.Fields) > 0 {
			result := tx.Model(&models.Recipe{}).
				Scopes(BelongsTo(userID)).
				Where("id = ?", recipeID).
				Updates(update.Fields)
			if result.Error != nil {
				return result.Error
			}
		}
		if update.SetTags {
			if err := tx.Model(recipe).Omit("Tags.*").Association("Tags").Replace(update.Tags); err != nil {
				return err
			}
		}
		if update.SetIngredients {
			if err := tx.Model(recipe).Omit("Ingredients.*").Association("Ingredients").Replace(update.Ingredients); err != nil {
				return err
			}
		}

		updated, err = findRecipe(tx, recipeID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *RecipeRepository) Delete(ctx context.Context, recipeID uint, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Scopes(BelongsTo(userID)).First(&recipe, "id = ?", recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}
		return tx.Select(clause.Associations).Delete(&recipe).Error
	})
}
