package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"recipe-api/models"
)

var ErrUserNotFound = errors.New("user not found")

type IUserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUser(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, userID uint) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, userID uint, updates map[string]interface{}) (*models.User, error)
	TouchLastLogin(ctx context.Context, userID uint, at time.Time) error
	Delete(ctx context.Context, userID uint) error
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) IUserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindUser(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, userID uint, updates map[string]interface{}) (*models.User, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return r.FindByID(ctx, userID)
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, userID uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_login", at).Error
}

// Delete removes the user and everything the user owns in one transaction:
// recipe associations, recipes, ingredients, tags, then the user row.
func (r *UserRepository) Delete(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipeIDs, tagIDs, ingredientIDs []uint
		if err := tx.Model(&models.Recipe{}).Scopes(BelongsTo(userID)).Pluck("id", &recipeIDs).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Tag{}).Scopes(BelongsTo(userID)).Pluck("id", &tagIDs).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Ingredient{}).Scopes(BelongsTo(userID)).Pluck("id", &ingredientIDs).Error; err != nil {
			return err
		}

		if len(recipeIDs) > 0 {
			if err := tx.Exec("DELETE FROM "+models.RecipeTagsTable+" WHERE recipe_id IN ?", recipeIDs).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM "+models.RecipeIngredientsTable+" WHERE recipe_id IN ?", recipeIDs).Error; err != nil {
				return err
			}
		}
		if len(tagIDs) > 0 {
			if err := tx.Exec("DELETE FROM "+models.RecipeTagsTable+" WHERE tag_id IN ?", tagIDs).Error; err != nil {
				return err
			}
		}
		if len(ingredientIDs) > 0 {
			if err := tx.Exec("DELETE FROM "+models.RecipeIngredientsTable+" WHERE ingredient_id IN ?", ingredientIDs).Error; err != nil {
				return err
			}
		}

		for _, owned := range []interface{}{&models.Recipe{}, &models.Ingredient{}, &models.Tag{}} {
			if err := tx.Scopes(BelongsTo(userID)).Delete(owned).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&models.User{}, userID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}
