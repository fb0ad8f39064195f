package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/janus/apiserver/internal/store"
	"github.com/janus/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost used for provisioned accounts.
const PasswordCost = 12

// ErrInvalidCredentials is returned for an unknown user or a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository defines the credential store lookups.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByUsername(ctx context.Context, username string) (types.User, error)
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Authenticate checks username and password. On a wrong password for an
// existing account the user is returned together with ErrInvalidCredentials
// so the caller can attribute the failure.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (types.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return user, ErrInvalidCredentials
	}
	return user, nil
}

// HashPassword returns a bcrypt hash suitable for the users table.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
