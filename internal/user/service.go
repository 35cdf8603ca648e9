package user

import (
	"context"
	"errors"
	"strings"

	"github.com/swiftroute/bus-ticketing-backend/internal/auth"
	"github.com/swiftroute/bus-ticketing-backend/internal/clock"
)

// RegisterRequest carries the fields needed to create an account.
type RegisterRequest struct {
	Email    string
	Password string
	FullName string
	Phone    string
}

// Service defines business logic related to users.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
	clock  clock.Clock

	minPasswordLength int
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher, clk clock.Clock) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		clock:             clk,
		minPasswordLength: 8,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(req.Password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if name := strings.TrimSpace(req.FullName); name != "" {
		u.FullName = &name
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		u.Phone = &phone
	}

	// The unique constraint on email is the authority here; a pre-check
	// would still race with a concurrent registration.
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrInactiveUser
	}

	now := s.clock.Now()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		return nil, err
	}
	u.LastLoginAt = &now

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
