package repositories

import (
	"context"

	"gorm.io/gorm"

	"recipe-api/models"
)

// IAttributeRepository stores the user-owned lookup rows recipes reference.
type IAttributeRepository[T models.Attribute] interface {
	FindAll(ctx context.Context, userID uint, assignedOnly bool) ([]T, error)
	FindByIDs(ctx context.Context, userID uint, ids []uint) ([]T, error)
	Create(ctx context.Context, item *T) error
}

type AttributeRepository[T models.Attribute] struct {
	db         *gorm.DB
	joinTable  string
	joinColumn string
}

func NewTagRepository(db *gorm.DB) IAttributeRepository[models.Tag] {
	return &AttributeRepository[models.Tag]{db: db, joinTable: models.RecipeTagsTable, joinColumn: "tag_id"}
}

func NewIngredientRepository(db *gorm.DB) IAttributeRepository[models.Ingredient] {
	return &AttributeRepository[models.Ingredient]{db: db, joinTable: models.RecipeIngredientsTable, joinColumn: "ingredient_id"}
}

// FindAll lists the user's rows by name descending. With assignedOnly set,
// only rows attached to at least one recipe are returned.
func (r *AttributeRepository[T]) FindAll(ctx context.Context, userID uint, assignedOnly bool) ([]T, error) {
	db := r.db.WithContext(ctx)
	query := db.Scopes(BelongsTo(userID))
	if assignedOnly {
		query = query.Where("id IN (?)", db.Table(r.joinTable).Distinct(r.joinColumn))
	}

	var items []T
	if err := query.Order("name DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByIDs returns the user's rows among ids, ordered by id.
func (r *AttributeRepository[T]) FindByIDs(ctx context.Context, userID uint, ids []uint) ([]T, error) {
	items := []T{}
	if len(ids) == 0 {
		return items, nil
	}
	result := r.db.WithContext(ctx).
		Scopes(BelongsTo(userID)).
		Where("id IN ?", ids).
		Order("id").
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return items, nil
}

func (r *AttributeRepository[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}
