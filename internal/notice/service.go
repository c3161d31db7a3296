package notice

import (
	"context"
	"errors"
	"strings"

	"github.com/condokit/amenity-booking-backend/internal/amenity"
)

var ErrAmenityNotFound = errors.New("amenity not found")

type CreateRequest struct {
	Title     string
	Body      string
	AmenityID *string
	AuthorID  string
}

type UpdateRequest struct {
	Title *string
	Body  *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Notice, error)
	GetByID(ctx context.Context, id string) (*Notice, error)
	List(ctx context.Context, filter Filter) ([]*Notice, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Notice, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo       Repository
	amenitySvc amenity.Service
}

func NewService(repo Repository, amenitySvc amenity.Service) Service {
	return &service{
		repo:       repo,
		amenitySvc: amenitySvc,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Notice, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, ErrBodyRequired
	}

	// A scoped notice must point at a real amenity.
	if req.AmenityID != nil {
		if _, err := s.amenitySvc.GetByID(ctx, *req.AmenityID); err != nil {
			if errors.Is(err, amenity.ErrNotFound) {
				return nil, ErrAmenityNotFound
			}
			return nil, err
		}
	}

	n := &Notice{
		Title:     req.Title,
		Body:      req.Body,
		AmenityID: req.AmenityID,
		AuthorID:  req.AuthorID,
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Notice, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Notice, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Notice, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrTitleRequired
		}
		n.Title = *req.Title
	}

	if req.Body != nil {
		if strings.TrimSpace(*req.Body) == "" {
			return nil, ErrBodyRequired
		}
		n.Body = *req.Body
	}

	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	// Check existence first
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
