package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recipe-api/constants"
	"recipe-api/dto"
	"recipe-api/models"
	"recipe-api/repositories"
)

// BcryptCost is the work factor used for new password hashes.
var BcryptCost = bcrypt.DefaultCost

// UserExtra holds the optional fields accepted by CreateUser.
type UserExtra struct {
	Name string
}

type IUserService interface {
	CreateUser(ctx context.Context, email string, password string, extra UserExtra) (*models.User, error)
	CreateSuperuser(ctx context.Context, email string, password string) (*models.User, error)
	Register(ctx context.Context, input dto.CreateUserInput) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, input dto.UpdateUserInput) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	FindById(ctx context.Context, userID uint) (*models.User, error)
	Delete(ctx context.Context, userID uint) error
}

type UserService struct {
	repository repositories.IUserRepository
	logger     zerolog.Logger
}

func NewUserService(repository repositories.IUserRepository, logger zerolog.Logger) IUserService {
	return &UserService{
		repository: repository,
		logger:     logger.With().Str("service", "user").Logger(),
	}
}

// NormalizeEmail lower-cases the domain part of an address and leaves the
// local part untouched.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

func (s *UserService) CreateUser(ctx context.Context, email string, password string, extra UserExtra) (*models.User, error) {
	if email == "" {
		return nil, NewValidationError("email", "Users must have an email address")
	}

	hashedPassword, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:    NormalizeEmail(email),
		Name:     extra.Name,
		Password: hashedPassword,
		IsActive: true,
	}
	if err := s.repository.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewValidationError("email", constants.ErrEmailExists)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (s *UserService) CreateSuperuser(ctx context.Context, email string, password string) (*models.User, error) {
	user, err := s.CreateUser(ctx, email, password, UserExtra{})
	if err != nil {
		return nil, err
	}

	user, err = s.repository.Update(ctx, user.ID, map[string]interface{}{
		"is_staff":     true,
		"is_superuser": true,
	})
	if err != nil {
		return nil, fmt.Errorf("elevate user: %w", err)
	}
	s.logger.Info().Uint("user_id", user.ID).Str("email", user.Email).Msg("superuser created")
	return user, nil
}

// Register is the self-service sign up path.
func (s *UserService) Register(ctx context.Context, input dto.CreateUserInput) (*models.User, error) {
	if len(input.Password) < constants.MinPasswordLength {
		return nil, NewValidationError("password", passwordTooShort())
	}

	exists, err := s.repository.ExistsByEmail(ctx, NormalizeEmail(input.Email))
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, NewValidationError("email", constants.ErrEmailExists)
	}

	return s.CreateUser(ctx, input.Email, input.Password, UserExtra{Name: input.Name})
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input dto.UpdateUserInput) (*models.User, error) {
	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Password != nil {
		if len(*input.Password) < constants.MinPasswordLength {
			return nil, NewValidationError("password", passwordTooShort())
		}
		hashedPassword, err := HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updates["password"] = hashedPassword
	}

	if len(updates) == 0 {
		return s.FindById(ctx, userID)
	}

	user, err := s.repository.Update(ctx, userID, updates)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *UserService) FindAll(ctx context.Context) ([]models.User, error) {
	return s.repository.List(ctx)
}

func (s *UserService) FindById(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repository.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// Delete removes the user together with every tag, ingredient and recipe they own.
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	if err := s.repository.Delete(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	s.logger.Info().Uint("user_id", userID).Msg("user deleted")
	return nil
}

func passwordTooShort() string {
	return fmt.Sprintf("Ensure this field has at least %d characters.", constants.MinPasswordLength)
}
