package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/velizhask/KADA-Connect/internal/auth"
	"github.com/velizhask/KADA-Connect/internal/dto"
	"github.com/velizhask/KADA-Connect/internal/repository"
)

// ErrEmailAlreadyExists is returned when registration hits a taken email.
var ErrEmailAlreadyExists = errors.New("email already registered")

// SelfServeRoles are the roles a visitor may register as. Admin accounts
// are only created through the admin user endpoints.
var SelfServeRoles = []string{"trainee", "company"}

// AuthService coordinates credential validation and token issuance.
type AuthService struct {
	users repository.UsersRepository
	jwt   *auth.JWTManager
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UsersRepository, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{users: users, jwt: jwtManager}
}

// Register creates an account and returns a fresh token pair.
func (s *AuthService) Register(ctx context.Context, email, password, role string) (dto.TokenPairResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	role = strings.TrimSpace(role)

	if email == "" || password == "" {
		return dto.TokenPairResponse{}, errors.New("email and password must not be empty")
	}
	if len(password) < 6 {
		return dto.TokenPairResponse{}, errors.New("password must be at least 6 characters")
	}
	if role == "" {
		role = "trainee"
	}
	if !selfServeRole(role) {
		return dto.TokenPairResponse{}, fmt.Errorf("role must be one of: %s", strings.Join(SelfServeRoles, ", "))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dto.TokenPairResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, email, string(hashed), role)
	if err != nil {
		if errors.Is(err, repository.ErrEmailDuplicate) {
			return dto.TokenPairResponse{}, ErrEmailAlreadyExists
		}
		return dto.TokenPairResponse{}, err
	}

	return s.tokenPair(user.ID.String(), user.Email, user.Role)
}

// Login validates credentials and returns a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (dto.TokenPairResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return dto.TokenPairResponse{}, errors.New("email and password must not be empty")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return dto.TokenPairResponse{}, errors.New("invalid credentials")
		}
		return dto.TokenPairResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return dto.TokenPairResponse{}, errors.New("invalid credentials")
	}

	return s.tokenPair(user.ID.String(), user.Email, user.Role)
}

// Refresh exchanges a valid refresh token for a new pair. The account is
// re-read so a deleted user or changed role invalidates outstanding
// refresh tokens.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (dto.TokenPairResponse, error) {
	claims, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return dto.TokenPairResponse{}, errors.New("invalid refresh token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return dto.TokenPairResponse{}, errors.New("invalid refresh token")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return dto.TokenPairResponse{}, errors.New("invalid refresh token")
		}
		return dto.TokenPairResponse{}, err
	}

	return s.tokenPair(user.ID.String(), user.Email, user.Role)
}

func (s *AuthService) tokenPair(subject, email, role string) (dto.TokenPairResponse, error) {
	access, refresh, err := s.jwt.GeneratePair(subject, email, role)
	if err != nil {
		return dto.TokenPairResponse{}, err
	}
	return dto.TokenPairResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func selfServeRole(role string) bool {
	for _, known := range SelfServeRoles {
		if role == known {
			return true
		}
	}
	return false
}
