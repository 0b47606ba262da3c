package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-api/models"
	"recipe-api/testutil"
)

func tagNames(tags []models.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

func TestAttributeRepository_FindAllScopedAndOrdered(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "user@example.com", "testpass", "User")
	other := testutil.CreateUser(t, db, "other@example.com", "testpass", "Other")
	testutil.CreateTag(t, db, user.ID, "Dessert")
	testutil.CreateTag(t, db, user.ID, "Vegan")
	testutil.CreateTag(t, db, user.ID, "Breakfast")
	testutil.CreateTag(t, db, other.ID, "Fruity")

	tags, err := repo.FindAll(ctx, user.ID, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Vegan", "Dessert", "Breakfast"}, tagNames(tags))
}

func TestAttributeRepository_FindAllAssignedOnly(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewIngredientRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "user@example.com", "testpass", "User")
	used := testutil.CreateIngredient(t, db, user.ID, "Eggs")
	testutil.CreateIngredient(t, db, user.ID, "Turkey")
	testutil.CreateRecipe(t, db, user.ID, "Eggs benedict", nil, []models.Ingredient{*used})
	testutil.CreateRecipe(t, db, user.ID, "Omelette", nil, []models.Ingredient{*used})

	ingredients, err := repo.FindAll(ctx, user.ID, true)
	require.NoError(t, err)
	require.Len(t, ingredients, 1)
	assert.Equal(t, used.ID, ingredients[0].ID)
}

func TestAttributeRepository_FindByIDsIgnoresOtherOwners(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "user@example.com", "testpass", "User")
	other := testutil.CreateUser(t, db, "other@example.com", "testpass", "Other")
	mine := testutil.CreateTag(t, db, user.ID, "Vegan")
	theirs := testutil.CreateTag(t, db, other.ID, "Dessert")

	tags, err := repo.FindByIDs(ctx, user.ID, []uint{mine.ID, theirs.ID})
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, mine.ID, tags[0].ID)

	tags, err = repo.FindByIDs(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestAttributeRepository_Create(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewTagRepository(db)
	user := testutil.CreateUser(t, db, "user@example.com", "testpass", "User")

	tag := models.NewAttribute[models.Tag]("Vegan", user.ID)
	require.NoError(t, repo.Create(context.Background(), &tag))
	assert.NotZero(t, tag.ID)
	assert.Equal(t, user.ID, tag.UserID)
}
