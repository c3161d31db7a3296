package booking

import (
	"context"
	"errors"
	"time"

	"github.com/condokit/amenity-booking-backend/internal/amenity"
	"github.com/condokit/amenity-booking-backend/internal/schedule"
)

// CreateRequest is a submission of the proposal the requester has been
// editing. The service re-validates it against the live data before writing;
// the client-side verdict is advisory only.
type CreateRequest struct {
	RequesterID string
	ResourceID  string
	Date        time.Time
	Start       schedule.TimeOfDay
	End         schedule.TimeOfDay
}

type Service interface {
	// Create gates and persists a new pending booking.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	// UpdateStatus applies a status transition on behalf of actorID.
	UpdateStatus(ctx context.Context, id string, status Status, actorID string, isAdmin bool) (*Booking, error)
	// Verdict evaluates a proposal synchronously. A failed fetch yields an
	// Unknown verdict, never a false "no conflict".
	Verdict(ctx context.Context, p schedule.Proposal) (schedule.Verdict, error)
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

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// Degenerate windows are an input error, rejected before the engine
	// ever runs.
	if !req.Start.Valid() || !req.End.Valid() || req.Start >= req.End {
		return nil, ErrInvalidTimeRange
	}

	if _, err := s.amenitySvc.GetByID(ctx, req.ResourceID); err != nil {
		if errors.Is(err, amenity.ErrNotFound) {
			return nil, ErrAmenityNotFound
		}
		return nil, err
	}

	proposal := schedule.Proposal{
		ResourceID: req.ResourceID,
		Date:       schedule.Date(req.Date),
		Start:      req.Start,
		End:        req.End,
	}

	verdict, err := s.Verdict(ctx, proposal)
	if err != nil {
		return nil, err
	}
	switch {
	case verdict.Unknown:
		// Fail closed: without a verdict nothing gets written.
		return nil, ErrVerdictUnknown
	case verdict.DayNotAvailable:
		return nil, ErrDayNotAvailable
	case verdict.TimeOutOfRange:
		return nil, ErrOutsideOpenHours
	case verdict.HasConflict():
		return nil, ErrTimeConflict
	}

	b := &Booking{
		ResourceID:  req.ResourceID,
		RequesterID: req.RequesterID,
		Date:        proposal.Date,
		Start:       req.Start,
		End:         req.End,
		Status:      StatusPending,
	}

	// The check above and this write are not transactional; the overlap
	// constraint in the repository settles any race as ErrTimeConflict.
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Verdict(ctx context.Context, p schedule.Proposal) (schedule.Verdict, error) {
	avail, err := amenity.NewSource(s.amenitySvc).AvailabilityFor(ctx, p.ResourceID)
	if err != nil && !errors.Is(err, schedule.ErrNoAvailability) {
		return schedule.Verdict{Unknown: true}, nil
	}

	existing, err := s.repo.ListActive(ctx, p.ResourceID, p.Date)
	if err != nil {
		return schedule.Verdict{Unknown: true}, nil
	}

	slots := make([]schedule.Booking, len(existing))
	for i, b := range existing {
		slots[i] = b.Slot()
	}

	return schedule.Evaluate(p, avail, slots), nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status, actorID string, isAdmin bool) (*Booking, error) {
	if !status.Valid() || status == StatusPending {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	isOwner := b.RequesterID == actorID
	if !isOwner && !isAdmin {
		return nil, ErrPermissionDenied
	}

	// A requester may only withdraw their own booking; approval and
	// rejection are administrator decisions.
	if !isAdmin && status != StatusCancelled {
		return nil, ErrPermissionDenied
	}

	if !transitionAllowed(b.Status, status) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	b.Status = status
	return b, nil
}

// transitionAllowed encodes the booking lifecycle: pending may be decided or
// withdrawn, approved may still be cancelled, rejected and cancelled are
// terminal.
func transitionAllowed(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected || to == StatusCancelled
	case StatusApproved:
		return to == StatusCancelled
	default:
		return false
	}
}

// Source adapts the booking repository to the scheduling engine's booking
// source, feeding live validator sessions.
type Source struct {
	repo Repository
}

func NewSource(repo Repository) Source {
	return Source{repo: repo}
}

func (s Source) ActiveBookings(ctx context.Context, resourceID string, date time.Time) ([]schedule.Booking, error) {
	bookings, err := s.repo.ListActive(ctx, resourceID, date)
	if err != nil {
		return nil, err
	}

	slots := make([]schedule.Booking, len(bookings))
	for i, b := range bookings {
		slots[i] = b.Slot()
	}
	return slots, nil
}
