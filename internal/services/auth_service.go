package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/umanari145/blog-backend/internal/models"
	"github.com/umanari145/blog-backend/internal/repositories"
)

// ErrUnauthorized is returned when a credential check fails
var ErrUnauthorized = errors.New("unauthorized")

type authService struct {
	userRepo repositories.UserRepository
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Login returns the user when the password matches the stored credential.
// Unknown addresses and wrong passwords both yield ErrUnauthorized.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, repositories.ValidationError("users", "", fmt.Errorf("email and password are required"))
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !PasswordMatches(user.Password, password) {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// PasswordMatches compares a candidate password with a stored credential.
// Stored values are bcrypt hashes, or plaintext for accounts created before hashing.
func PasswordMatches(stored, candidate string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
