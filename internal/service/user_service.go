package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AlyonaQA/ptm-server/internal/auth"
	dom "github.com/AlyonaQA/ptm-server/internal/domain"
	"github.com/AlyonaQA/ptm-server/internal/repo"
	"github.com/AlyonaQA/ptm-server/internal/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrUsernameTaken = errors.New("username already taken")

// UserService handles registration, credential verification, token
// issuance and account deletion.
type UserService struct {
	repo     repo.UserRepo
	secret   []byte
	tokenTTL time.Duration
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo, secret []byte, tokenTTL time.Duration) *UserService {
	return &UserService{repo: repo, secret: secret, tokenTTL: tokenTTL}
}

// Register creates a new user with a fresh random salt and a salted hash
// of the password. A duplicate username fails with ErrUsernameTaken and
// leaves existing state untouched.
func (s *UserService) Register(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	salt, err := auth.NewSalt()
	if err != nil {
		return dom.User{}, fmt.Errorf("generate salt: %w", err)
	}
	u, err := s.repo.Create(ctx, dom.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: auth.HashPassword(password, salt),
		Salt:         salt,
	})
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrUsernameTaken
		}
		return dom.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// ValidateCredentials checks username and password; returns the user if
// valid. Unknown username and wrong password are indistinguishable.
func (s *UserService) ValidateCredentials(ctx context.Context, username, password string) (dom.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, fmt.Errorf("load user: %w", err)
	}
	if !auth.VerifyPassword(password, u.Salt, u.PasswordHash) {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// SignIn verifies credentials and issues a signed session token.
func (s *UserService) SignIn(ctx context.Context, username, password string) (string, error) {
	u, err := s.ValidateCredentials(ctx, username, password)
	if err != nil {
		return "", err
	}
	token, err := auth.GenerateToken(u.ID, u.Username, s.secret, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Delete removes the user account. The persistence layer cascades the
// user's tasks.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	deleted, err := s.repo.Delete(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
