package services

import (
	"context"
	"fmt"
	"strings"

	"recipe-api/constants"
	"recipe-api/dto"
	"recipe-api/models"
	"recipe-api/repositories"
)

type IAttributeService[T models.Attribute] interface {
	FindAll(ctx context.Context, userID uint, assignedOnly bool) ([]T, error)
	Create(ctx context.Context, input dto.CreateAttributeInput, userID uint) (*T, error)
}

type AttributeService[T models.Attribute] struct {
	repository repositories.IAttributeRepository[T]
}

func NewAttributeService[T models.Attribute](repository repositories.IAttributeRepository[T]) IAttributeService[T] {
	return &AttributeService[T]{repository: repository}
}

func (s *AttributeService[T]) FindAll(ctx context.Context, userID uint, assignedOnly bool) ([]T, error) {
	return s.repository.FindAll(ctx, userID, assignedOnly)
}

// Create stores a new row owned by userID. The name is trimmed and must
// not end up empty.
func (s *AttributeService[T]) Create(ctx context.Context, input dto.CreateAttributeInput, userID uint) (*T, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, NewValidationError("name", constants.ErrFieldBlank)
	}

	item := models.NewAttribute[T](name, userID)
	if err := s.repository.Create(ctx, &item); err != nil {
		return nil, fmt.Errorf("create %T: %w", item, err)
	}
	return &item, nil
}
