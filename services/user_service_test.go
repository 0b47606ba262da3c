package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"recipe-api/dto"
	"recipe-api/models"
	"recipe-api/repositories"
	"recipe-api/services"
	"recipe-api/testutil"
)

func newUserService(t *testing.T) (services.IUserService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return services.NewUserService(repositories.NewUserRepository(db), zerolog.Nop()), db
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "domain lower-cased", input: "Test@LONDONAPPDEV.COM", want: "Test@londonappdev.com"},
		{name: "already normal", input: "test@example.com", want: "test@example.com"},
		{name: "surrounding space trimmed", input: "  a@B.io ", want: "a@b.io"},
		{name: "no at sign", input: "not-an-email", want: "not-an-email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.NormalizeEmail(tt.input))
		})
	}
}

func TestUserService_CreateUser(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "test@LONDONAPPDEV.com", "testpass123", services.UserExtra{Name: "Test"})
	require.NoError(t, err)
	assert.Equal(t, "test@londonappdev.com", user.Email)
	assert.Equal(t, "Test", user.Name)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsStaff)
	assert.NotEqual(t, "testpass123", user.Password)
	assert.True(t, services.CheckPassword(user, "testpass123"))
	assert.False(t, services.CheckPassword(user, "wrong"))
}

func TestUserService_CreateUserRequiresEmail(t *testing.T) {
	svc, _ := newUserService(t)

	_, err := svc.CreateUser(context.Background(), "", "testpass123", services.UserExtra{})

	var verr *services.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "email")
}

func TestUserService_CreateSuperuser(t *testing.T) {
	svc, _ := newUserService(t)

	user, err := svc.CreateSuperuser(context.Background(), "admin@example.com", "password123")
	require.NoError(t, err)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
	assert.True(t, services.CheckPassword(user, "password123"))
}

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name      string
		input     dto.CreateUserInput
		wantField string
	}{
		{
			name:  "success",
			input: dto.CreateUserInput{Email: "new@example.com", Password: "testpass", Name: "New"},
		},
		{
			name:      "duplicate email",
			input:     dto.CreateUserInput{Email: "taken@example.com", Password: "testpass", Name: "Dup"},
			wantField: "email",
		},
		{
			name:      "duplicate email with different domain case",
			input:     dto.CreateUserInput{Email: "taken@EXAMPLE.com", Password: "testpass", Name: "Dup"},
			wantField: "email",
		},
		{
			name:      "password too short",
			input:     dto.CreateUserInput{Email: "short@example.com", Password: "pw", Name: "Short"},
			wantField: "password",
		},
		{
			name:      "five characters is still too short",
			input:     dto.CreateUserInput{Email: "five@example.com", Password: "12345", Name: "Five"},
			wantField: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, db := newUserService(t)
			testutil.CreateUser(t, db, "taken@example.com", "testpass", "Taken")

			user, err := svc.Register(context.Background(), tt.input)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.True(t, services.CheckPassword(user, tt.input.Password))
				return
			}

			var verr *services.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Contains(t, verr.Fields, tt.wantField)

			var count int64
			require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
			assert.Equal(t, int64(1), count, "no extra row is created")
		})
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "test@example.com", "testpass", "name")

	newName, newPassword := "new name", "newpassword123"
	updated, err := svc.UpdateProfile(ctx, user.ID, dto.UpdateUserInput{Name: &newName, Password: &newPassword})
	require.NoError(t, err)
	assert.Equal(t, "new name", updated.Name)
	assert.True(t, services.CheckPassword(updated, newPassword))
	assert.False(t, services.CheckPassword(updated, "testpass"))

	short := "pw"
	_, err = svc.UpdateProfile(ctx, user.ID, dto.UpdateUserInput{Password: &short})
	var verr *services.ValidationError
	assert.True(t, errors.As(err, &verr))

	unchanged, err := svc.UpdateProfile(ctx, user.ID, dto.UpdateUserInput{})
	require.NoError(t, err)
	assert.Equal(t, "new name", unchanged.Name)

	_, err = svc.UpdateProfile(ctx, user.ID+99, dto.UpdateUserInput{Name: &newName})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestUserService_DeleteCascades(t *testing.T) {
	svc, db := newUserService(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "test@example.com", "testpass", "name")
	tag := testutil.CreateTag(t, db, user.ID, "Vegan")
	testutil.CreateRecipe(t, db, user.ID, "Curry", []models.Tag{*tag}, nil)

	require.NoError(t, svc.Delete(ctx, user.ID))

	var recipes, tags int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipes).Error)
	require.NoError(t, db.Model(&models.Tag{}).Count(&tags).Error)
	assert.Zero(t, recipes)
	assert.Zero(t, tags)

	assert.ErrorIs(t, svc.Delete(ctx, user.ID), services.ErrNotFound)
}
