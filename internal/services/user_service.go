// Package services – UserService
//
// This file implements account registration and lookup. Passwords are
// stored as bcrypt hashes and never leave the service.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/bcrypt"

	"github.com/tbourn/go-property-backend/internal/domain"
	"github.com/tbourn/go-property-backend/internal/observability"
	"github.com/tbourn/go-property-backend/internal/repo"
)

// Account limits.
const (
	MinUsernameLen = 3
	MaxUsernameLen = 64
	MinPasswordLen = 8
	// bcrypt ignores input past 72 bytes.
	MaxPasswordBytes = 72
)

// UserStore is the persistence contract required by UserService.
type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserService registers and looks up accounts.
type UserService struct {
	Store UserStore
	// Cost is the bcrypt work factor.
	Cost int
}

// NewUserService constructs a UserService using bcrypt.DefaultCost.
func NewUserService(store UserStore) *UserService {
	return &UserService{Store: store, Cost: bcrypt.DefaultCost}
}

// Register creates an account. Usernames and emails are unique; a clash
// returns ErrUserExists. Invalid input returns an error wrapping
// ErrInvalidUser.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	ctx, span := observability.StartSpan(ctx, "services/UserService", "Register",
		attribute.String("user.username", username))
	defer span.End()

	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if n := utf8.RuneCountInString(username); n < MinUsernameLen || n > MaxUsernameLen {
		return nil, fmt.Errorf("%w: username must be %d-%d characters", ErrInvalidUser, MinUsernameLen, MaxUsernameLen)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, fmt.Errorf("%w: email is not valid", ErrInvalidUser)
	}
	if utf8.RuneCountInString(password) < MinPasswordLen || len(password) > MaxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at least %d characters and at most %d bytes", ErrInvalidUser, MinPasswordLen, MaxPasswordBytes)
	}

	if _, err := s.Store.GetUserByUsername(ctx, username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if _, err := s.Store.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	cost := s.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{Username: username, Email: email, Password: string(hash)}
	if err := s.Store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return u, nil
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := observability.StartSpan(ctx, "services/UserService", "Get", attribute.String("user.id", id))
	defer span.End()

	u, err := s.Store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
