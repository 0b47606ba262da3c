package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"recipe-api/models"
	"recipe-api/repositories"
)

// Claims carried by issued tokens. Subject holds the user id and ID a
// unique token id used for revocation.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

type IAuthService interface {
	Login(ctx context.Context, email string, password string) (string, error)
	GetUserFromToken(ctx context.Context, tokenString string) (*models.User, error)
	Logout(ctx context.Context, tokenString string) error
}

type AuthService struct {
	repository      repositories.IUserRepository
	tokenRepository repositories.ITokenRepository
	secretKey       []byte
	tokenTTL        time.Duration
	logger          zerolog.Logger
	now             func() time.Time
}

func NewAuthService(
	repository repositories.IUserRepository,
	tokenRepository repositories.ITokenRepository,
	secretKey []byte,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) IAuthService {
	return &AuthService{
		repository:      repository,
		tokenRepository: tokenRepository,
		secretKey:       secretKey,
		tokenTTL:        tokenTTL,
		logger:          logger.With().Str("service", "auth").Logger(),
		now:             time.Now,
	}
}

// Login exchanges valid credentials for a token. Unknown users, wrong
// passwords and inactive accounts all yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email string, password string) (string, error) {
	foundUser, err := s.repository.FindUser(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !foundUser.IsActive || !CheckPassword(foundUser, password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.CreateToken(foundUser)
	if err != nil {
		return "", err
	}

	if err := s.repository.TouchLastLogin(ctx, foundUser.ID, s.now()); err != nil {
		return "", fmt.Errorf("record last login: %w", err)
	}
	return token, nil
}

func (s *AuthService) CreateToken(user *models.User) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		Email: user.Email,
	})

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

func (s *AuthService) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GetUserFromToken resolves a bearer token to an active user.
func (s *AuthService) GetUserFromToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}

	isBlacklisted, err := s.tokenRepository.IsTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if isBlacklisted {
		return nil, fmt.Errorf("%w: token is revoked", ErrInvalidToken)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	user, err := s.repository.FindByID(ctx, uint(userID))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", ErrInvalidToken)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user is inactive", ErrInvalidToken)
	}
	return user, nil
}

// Logout revokes the token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return err
	}

	expiresAt := s.now().Add(s.tokenTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := s.tokenRepository.AddBlacklistedToken(ctx, claims.ID, expiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.logger.Debug().Str("jti", claims.ID).Str("sub", claims.Subject).Msg("token revoked")
	return nil
}
