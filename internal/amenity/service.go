package amenity

import (
	"context"
	"errors"
	"strings"

	"github.com/condokit/amenity-booking-backend/internal/schedule"
)

type CreateRequest struct {
	Name        string
	Description string
}

type UpdateRequest struct {
	Name        *string
	Description *string
}

// SetAvailabilityRequest carries the new operating envelope. Weekdays uses
// integer indices 0 (Sunday) through 6 (Saturday). An empty weekday list is
// legal and means the amenity is closed every day.
type SetAvailabilityRequest struct {
	Weekdays []int
	Opens    schedule.TimeOfDay
	Closes   schedule.TimeOfDay
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Amenity, error)
	GetByID(ctx context.Context, id string) (*Amenity, error)
	List(ctx context.Context, filter Filter) ([]*Amenity, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Amenity, error)
	SetAvailability(ctx context.Context, id string, req SetAvailabilityRequest) (*Amenity, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Amenity, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}

	a := &Amenity{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Amenity, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Amenity, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Amenity, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		a.Name = *req.Name
	}
	if req.Description != nil {
		a.Description = *req.Description
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) SetAvailability(ctx context.Context, id string, req SetAvailabilityRequest) (*Amenity, error) {
	if !req.Opens.Valid() || !req.Closes.Valid() || req.Opens >= req.Closes {
		return nil, ErrInvalidWindow
	}

	weekdays, err := schedule.WeekdaySetFromInts(req.Weekdays)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	av := &Availability{
		Weekdays: weekdays,
		Opens:    req.Opens,
		Closes:   req.Closes,
	}
	if err := s.repo.SetAvailability(ctx, id, av); err != nil {
		return nil, err
	}

	a.Availability = av
	return a, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Source adapts the amenity service to the scheduling engine's availability
// source. A missing amenity or an unconfigured envelope both surface as
// schedule.ErrNoAvailability, which the engine treats as closed every day.
type Source struct {
	svc Service
}

func NewSource(svc Service) Source {
	return Source{svc: svc}
}

func (s Source) AvailabilityFor(ctx context.Context, resourceID string) (*schedule.Availability, error) {
	a, err := s.svc.GetByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, schedule.ErrNoAvailability
		}
		return nil, err
	}

	w := a.Window()
	if w == nil {
		return nil, schedule.ErrNoAvailability
	}
	return w, nil
}
