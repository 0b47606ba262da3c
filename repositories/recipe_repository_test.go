package repositories

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-api/models"
	"recipe-api/testutil"
)

func TestRecipeRepository_FindAllScopedNewestFirst(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "user@example.com", "testpass", "User")
	other := testutil.CreateUser(t, db, "other@example.com", "testpass", "Other")
	first := testutil.CreateRecipe(t, db, user.ID, "First", nil, nil)
	testutil.CreateRecipe(t, db, other.ID, "Not mine", nil, nil)
	second := testutil.CreateRecipe(t, db, user.ID, "Second", nil, nil)

	recipes, err := repo.FindAll(ctx, user.ID, RecipeFilter{})
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, second.ID, recipes[0].ID)
	assert.Equal(t, first.ID, recipes[1].ID)
}

func TestRecipeRepository_FindAllFilters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "user@example.com", "testpass", "User")
	vegan := testutil.CreateTag(t, db, user.ID, "Vegan")
	feta := testutil.CreateIngredient(t, db, user.ID, "Feta")
	curry := testutil.CreateRecipe(t, db, user.ID, "Curry", []models.Tag{*vegan}, nil)
	salad := testutil.CreateRecipe(t, db, user.ID, "Greek salad", nil, []models.Ingredient{*feta})
	testutil.CreateRecipe(t, db, user.ID, "Fish and chips", nil, nil)

	recipes, err := repo.FindAll(ctx, user.ID, RecipeFilter{TagIDs: []uint{vegan.ID}})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, curry.ID, recipes[0].ID)

	recipes, err = repo.FindAll(ctx, user.ID, RecipeFilter{IngredientIDs: []uint{feta.ID}})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, salad.ID, recipes[0].ID)
}

func TestRecipeRepository_CreateLoadsAssociations(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "user@example.com", "testpass", "User")
	tag := testutil.CreateTag(t, db, user.ID, "Vegan")
	ingredient := testutil.CreateIngredient(t, db, user.ID, "Kale")

	created, err := repo.Create(ctx, models.Recipe{
		UserID:      user.ID,
		Title:       "Kale chips",
		TimeMinutes: 20,
		Price:       decimal.RequireFromString("3.50"),
		Tags:        []models.Tag{*tag},
		Ingredients: []models.Ingredient{*ingredient},
	})
	require.NoError(t, err)
	assert.Equal(t, []uint{tag.ID}, created.TagIDs())
	assert.Equal(t, []uint{ingredient.ID}, created.IngredientIDs())
	assert.Equal(t, "3.50", created.Price.StringFixed(2))

	var tagCount int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&tagCount).Error)
	assert.Equal(t, int64(1), tagCount, "associated rows are linked, not duplicated")
}

func TestRecipeRepository_UpdateScopedToOwner(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "user@example.com", "testpass", "User")
	other := testutil.CreateUser(t, db, "other@example.com", "testpass", "Other")
	oldTag := testutil.CreateTag(t, db, user.ID, "Old")
	newTag := testutil.CreateTag(t, db, user.ID, "New")
	recipe := testutil.CreateRecipe(t, db, user.ID, "Stew", []models.Tag{*oldTag}, nil)

	_, err := repo.Update(ctx, recipe.ID, other.ID, RecipeUpdate{Fields: map[string]interface{}{"title": "Hijacked"}})
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	updated, err := repo.Update(ctx, recipe.ID, user.ID, RecipeUpdate{
		Fields:  map[string]interface{}{"title": "Beef stew"},
		Tags:    []models.Tag{*newTag},
		SetTags: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Beef stew", updated.Title)
	assert.Equal(t, []uint{newTag.ID}, updated.TagIDs())
}

func TestRecipeRepository_DeleteScopedToOwner(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "user@example.com", "testpass", "User")
	other := testutil.CreateUser(t, db, "other@example.com", "testpass", "Other")
	tag := testutil.CreateTag(t, db, user.ID, "Vegan")
	recipe := testutil.CreateRecipe(t, db, user.ID, "Curry", []models.Tag{*tag}, nil)

	assert.ErrorIs(t, repo.Delete(ctx, recipe.ID, other.ID), ErrRecipeNotFound)
	require.NoError(t, repo.Delete(ctx, recipe.ID, user.ID))

	_, err := repo.FindById(ctx, recipe.ID, user.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	var links, tags int64
	require.NoError(t, db.Table(models.RecipeTagsTable).Count(&links).Error)
	require.NoError(t, db.Model(&models.Tag{}).Count(&tags).Error)
	assert.Zero(t, links)
	assert.Equal(t, int64(1), tags, "deleting a recipe keeps its tags")
}
