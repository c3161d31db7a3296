package http

import (
	"time"

	amenityHttp "github.com/condokit/amenity-booking-backend/internal/amenity/http"
	"github.com/condokit/amenity-booking-backend/internal/booking"
	"github.com/condokit/amenity-booking-backend/internal/pkg/request"
	residentHttp "github.com/condokit/amenity-booking-backend/internal/resident/http"
	"github.com/condokit/amenity-booking-backend/internal/schedule"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	ResourceID  string `form:"resource_id" binding:"omitempty,uuid"`
	RequesterID string `form:"requester_id" binding:"omitempty,uuid"`
	Status      string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
	DateFrom    string `form:"date_from"`
	DateTo      string `form:"date_to"`
	SortBy      string `form:"sort_by" binding:"omitempty,oneof=date start_minute created_at status"`
}

type BookingResponse struct {
	ID        string                   `json:"id"`
	Amenity   amenityHttp.AmenityTag   `json:"amenity"`
	Requester residentHttp.ResidentTag `json:"requester"`
	Date      string                   `json:"date"`
	StartTime string                   `json:"start_time"`
	EndTime   string                   `json:"end_time"`
	Status    string                   `json:"status"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		Amenity:   amenityHttp.AmenityTag{ID: b.ResourceID, Name: b.ResourceName},
		Requester: residentHttp.ResidentTag{ID: b.RequesterID, Name: b.RequesterName},
		Date:      b.Date.Format("2006-01-02"),
		StartTime: b.Start.String(),
		EndTime:   b.End.String(),
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

type CreateBookingBody struct {
	ResourceID string `json:"resource_id" binding:"required,uuid"`
	Date       string `json:"date" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
}

type UpdateStatusBody struct {
	Status string `json:"status" binding:"required,oneof=approved rejected cancelled"`
}

// VerdictQuery carries one proposal through query parameters.
type VerdictQuery struct {
	ResourceID string `form:"resource_id" binding:"required,uuid"`
	Date       string `form:"date" binding:"required"`
	StartTime  string `form:"start_time" binding:"required"`
	EndTime    string `form:"end_time" binding:"required"`
}

// Proposal parses the query into an engine proposal.
func (q *VerdictQuery) Proposal() (schedule.Proposal, error) {
	date, err := schedule.ParseDate(q.Date)
	if err != nil {
		return schedule.Proposal{}, err
	}
	start, err := schedule.ParseTimeOfDay(q.StartTime)
	if err != nil {
		return schedule.Proposal{}, err
	}
	end, err := schedule.ParseTimeOfDay(q.EndTime)
	if err != nil {
		return schedule.Proposal{}, err
	}
	if start >= end {
		return schedule.Proposal{}, booking.ErrInvalidTimeRange
	}
	return schedule.Proposal{
		ResourceID: q.ResourceID,
		Date:       date,
		Start:      start,
		End:        end,
	}, nil
}

// ConflictEntry describes one occupied window blocking a proposal, so the
// client can tell the requester exactly which reservations are in the way.
type ConflictEntry struct {
	ID        string `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

type VerdictResponse struct {
	DayNotAvailable     bool            `json:"day_not_available"`
	TimeOutOfRange      bool            `json:"time_out_of_range"`
	HasConflict         bool            `json:"has_conflict"`
	ConflictingBookings []ConflictEntry `json:"conflicting_bookings"`
	IsEvaluating        bool            `json:"is_evaluating"`
	Unknown             bool            `json:"unknown"`
}

func NewVerdictResponse(v schedule.Verdict) VerdictResponse {
	entries := make([]ConflictEntry, len(v.Conflicts))
	for i, b := range v.Conflicts {
		entries[i] = ConflictEntry{
			ID:        b.ID,
			StartTime: b.Start.String(),
			EndTime:   b.End.String(),
			Status:    string(b.Status),
		}
	}
	return VerdictResponse{
		DayNotAvailable:     v.DayNotAvailable,
		TimeOutOfRange:      v.TimeOutOfRange,
		HasConflict:         v.HasConflict(),
		ConflictingBookings: entries,
		IsEvaluating:        v.Evaluating,
		Unknown:             v.Unknown,
	}
}
