package amenity

import (
	"errors"
	"time"

	"github.com/condokit/amenity-booking-backend/internal/schedule"
)

var (
	ErrNotFound      = errors.New("amenity not found")
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrInvalidWindow = errors.New("opening time must be before closing time")
)

// Amenity represents a shared reservable facility of the condominium
// (party room, pool, barbecue pit). Each amenity is a single reservable
// unit.
type Amenity struct {
	ID           string
	Name         string
	Description  string
	Availability *Availability // nil until an administrator configures it
	CreatedAt    time.Time
}

// Availability is the amenity's operating envelope: the weekdays it opens
// and its daily opening hours. It is edited by administrators only; the
// scheduling engine reads it and treats a missing envelope as closed.
type Availability struct {
	Weekdays schedule.WeekdaySet
	Opens    schedule.TimeOfDay
	Closes   schedule.TimeOfDay
}

// Window returns the engine's view of the amenity's operating envelope,
// or nil when none is configured.
func (a *Amenity) Window() *schedule.Availability {
	if a.Availability == nil {
		return nil
	}
	return &schedule.Availability{
		ResourceID: a.ID,
		Weekdays:   a.Availability.Weekdays,
		Opens:      a.Availability.Opens,
		Closes:     a.Availability.Closes,
	}
}

// Filter defines parameters for listing amenities.
type Filter struct {
	Keyword  string
	Page     int
	PageSize int
}
