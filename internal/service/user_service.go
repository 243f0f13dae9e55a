package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"TaskTracker/internal/clock"
	dom "TaskTracker/internal/domain"
	"TaskTracker/internal/repo"
	"TaskTracker/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum number of characters in a password.
const MinPasswordLength = 6

// SessionStore keeps server-side session identities.
type SessionStore interface {
	Create(ctx context.Context, userID int64) (string, error)
	GetUserID(ctx context.Context, id string) (int64, bool, error)
	Delete(ctx context.Context, id string) error
}

// UserService handles registration, login and session resolution.
type UserService struct {
	repo     repo.UserRepo
	sessions SessionStore
	clock    clock.Clock
	cost     int
}

// NewUserService returns a new UserService. A cost of zero selects
// bcrypt.DefaultCost.
func NewUserService(r repo.UserRepo, sessions SessionStore, clk clock.Clock, cost int) *UserService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &UserService{repo: r, sessions: sessions, clock: clk, cost: cost}
}

// Register creates a new user with a hashed password.
func (s *UserService) Register(ctx context.Context, username, email, password, confirm string) (dom.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	switch {
	case username == "":
		return dom.User{}, invalid("username", "username is required")
	case email == "":
		return dom.User{}, invalid("email", "email is required")
	case password == "":
		return dom.User{}, invalid("password", "password is required")
	case confirm == "":
		return dom.User{}, invalid("confirm_password", "please confirm your password")
	case password != confirm:
		return dom.User{}, invalid("confirm_password", "passwords do not match")
	case utf8.RuneCountInString(password) < MinPasswordLength:
		return dom.User{}, invalid("password", fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	hash, err := HashPassword(password, s.cost)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, dom.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now().UTC(),
	})
	if err != nil {
		if column, ok := utils.UniqueViolation(err); ok {
			field := strings.TrimPrefix(column, "users.")
			return dom.User{}, &ConflictError{Field: field}
		}
		return dom.User{}, err
	}
	return u, nil
}

// Login verifies credentials and starts a session bound to the user.
func (s *UserService) Login(ctx context.Context, username, password string) (dom.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return dom.User{}, "", errInvalidCredentials
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.User{}, "", errInvalidCredentials
		}
		return dom.User{}, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, "", errInvalidCredentials
	}
	sessionID, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return dom.User{}, "", fmt.Errorf("create session: %w", err)
	}
	return u, sessionID, nil
}

// Logout destroys the session. Empty or unknown ids are not an error.
func (s *UserService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// CurrentUser resolves a session to its user, reading storage every time.
func (s *UserService) CurrentUser(ctx context.Context, sessionID string) (dom.User, error) {
	if sessionID == "" {
		return dom.User{}, errNoSession
	}
	userID, ok, err := s.sessions.GetUserID(ctx, sessionID)
	if err != nil {
		return dom.User{}, err
	}
	if !ok {
		return dom.User{}, errNoSession
	}
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return dom.User{}, errNoSession
		}
		return dom.User{}, err
	}
	return u, nil
}

// HashPassword returns the bcrypt hash of password at the given cost.
func HashPassword(password string, cost int) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", invalid("password", "password is too long")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}
