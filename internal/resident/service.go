package resident

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/condokit/amenity-booking-backend/internal/auth"
)

type RegisterRequest struct {
	Email       string
	Password    string
	DisplayName string
	Unit        string
}

// Service defines business logic around resident identity. Authentication
// stops at "who is this and are they an administrator"; everything else
// about residents belongs to the wider management application.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Resident, error)
	Login(ctx context.Context, email, password string) (*Resident, error)
	GetByID(ctx context.Context, id string) (*Resident, error)
	List(ctx context.Context, filter Filter) ([]*Resident, int, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher

	minPasswordLength int
}

func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		minPasswordLength: 8,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Resident, error) {
	cleanEmail := normalizeEmail(req.Email)
	if cleanEmail == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(req.Password) < s.minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", s.minPasswordLength)
	}

	_, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		return nil, ErrEmailAlreadyUsed
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	res := &Resident{
		Email:        cleanEmail,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Unit:         strings.TrimSpace(req.Unit),
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}

	return res, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*Resident, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	res, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch resident by email: %w", err)
	}

	if !res.IsActive {
		return nil, ErrInactiveResident
	}

	if err := s.hasher.Compare(res.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort; a failed timestamp update must not fail the login.
	_ = s.repo.UpdateLastLogin(ctx, res.ID, time.Now().UTC())

	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Resident, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Resident, int, error) {
	return s.repo.List(ctx, filter)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
