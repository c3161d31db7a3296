package booking

import (
	"net/http"
	"time"

	"github.com/condokit/amenity-booking-backend/internal/pkg/apperror"
	"github.com/condokit/amenity-booking-backend/internal/schedule"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrAmenityNotFound   = apperror.New(http.StatusNotFound, "amenity not found")
	ErrInvalidTimeRange  = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrDayNotAvailable   = apperror.New(http.StatusConflict, "amenity is not available on the requested day")
	ErrOutsideOpenHours  = apperror.New(http.StatusConflict, "requested time is outside the amenity's opening hours")
	ErrTimeConflict      = apperror.New(http.StatusConflict, "time slot already booked")
	ErrVerdictUnknown    = apperror.New(http.StatusServiceUnavailable, "could not verify booking availability")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidTransition = apperror.New(http.StatusConflict, "booking status cannot change this way")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
)

// Status aliases the scheduling engine's status type so both packages agree
// on which bookings occupy a slot.
type Status = schedule.Status

const (
	StatusPending   = schedule.StatusPending
	StatusApproved  = schedule.StatusApproved
	StatusRejected  = schedule.StatusRejected
	StatusCancelled = schedule.StatusCancelled
)

// Booking is a persisted reservation of one amenity for a half-open window
// [Start, End) on one civil date. After creation only Status ever changes.
type Booking struct {
	ID            string
	ResourceID    string
	ResourceName  string
	RequesterID   string
	RequesterName string
	Date          time.Time // civil date, midnight UTC
	Start         schedule.TimeOfDay
	End           schedule.TimeOfDay
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Slot returns the engine's view of this booking.
func (b *Booking) Slot() schedule.Booking {
	return schedule.Booking{
		ID:          b.ID,
		ResourceID:  b.ResourceID,
		Date:        b.Date,
		Start:       b.Start,
		End:         b.End,
		Status:      b.Status,
		RequesterID: b.RequesterID,
	}
}

// Filter defines parameters for listing bookings.
type Filter struct {
	RequesterID string
	ResourceID  string
	Status      string
	DateFrom    *time.Time
	DateTo      *time.Time
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}
