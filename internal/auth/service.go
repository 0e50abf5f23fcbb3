package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/userboard/userboard/internal/user"
)

var (
	ErrMissingSignUpFields = errors.New("email, password, and name are required")
	ErrMissingCredentials  = errors.New("email and password are required")
	ErrInvalidEmailFormat  = errors.New("invalid email format")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters long")
	ErrUserExists          = errors.New("user already exists with this email")
	ErrInvalidCredentials  = errors.New("invalid credentials")
)

// UserStore is the slice of the user repository the auth service needs
type UserStore interface {
	Create(ctx context.Context, u *user.User) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	RecordLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

// Service handles sign-up and login orchestration.
// It returns errors only; logging happens at the handler boundary.
type Service struct {
	users  UserStore
	hasher *Hasher
	tokens *TokenService
}

func NewService(users UserStore, hasher *Hasher, tokens *TokenService) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// SignUp validates the input, creates the user, and issues a token.
// Single pass, no retries; every rejection leaves no partial state behind.
func (s *Service) SignUp(ctx context.Context, email, password, name string) (string, *user.User, error) {
	// Validate input
	if email == "" || password == "" || name == "" {
		return "", nil, ErrMissingSignUpFields
	}
	if !IsValidEmail(email) {
		return "", nil, ErrInvalidEmailFormat
	}
	if !IsValidPassword(password) {
		return "", nil, ErrPasswordTooShort
	}

	normalizedEmail := strings.ToLower(email)

	// Check if user already exists. Check-then-insert is not atomic; the
	// uniqueness invariant ultimately rests on the store.
	_, err := s.users.GetByEmail(ctx, normalizedEmail)
	if err == nil {
		return "", nil, ErrUserExists
	}
	if !errors.Is(err, user.ErrNotFound) {
		return "", nil, fmt.Errorf("failed to look up existing user: %w", err)
	}

	// Hash password and persist the new record
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	newUser, err := s.users.Create(ctx, &user.User{
		Email:        normalizedEmail,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return "", nil, ErrUserExists
		}
		return "", nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.CreateToken(newUser.ID.Hex())
	if err != nil {
		return "", nil, fmt.Errorf("failed to create token: %w", err)
	}

	return token, newUser, nil
}

// Login authenticates a user, records the login, and issues a token.
// A missing user and a wrong password yield the same error so callers
// cannot enumerate registered emails.
func (s *Service) Login(ctx context.Context, email, password string) (string, *user.User, error) {
	if email == "" || password == "" {
		return "", nil, ErrMissingCredentials
	}
	if !IsValidEmail(email) {
		return "", nil, ErrInvalidEmailFormat
	}

	existing, err := s.users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.hasher.Verify(password, existing.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(existing.ID.Hex())
	if err != nil {
		return "", nil, fmt.Errorf("failed to create token: %w", err)
	}

	// Update last login; the returned record keeps its pre-login timestamps
	if err := s.users.RecordLogin(ctx, existing.ID, time.Now()); err != nil {
		return "", nil, fmt.Errorf("failed to record login: %w", err)
	}

	return token, existing, nil
}
