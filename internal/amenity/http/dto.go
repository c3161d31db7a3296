package http

import (
	"time"

	"github.com/condokit/amenity-booking-backend/internal/amenity"
	"github.com/condokit/amenity-booking-backend/internal/pkg/request"
	"github.com/condokit/amenity-booking-backend/internal/schedule"
)

type AvailabilityResponse struct {
	AvailableWeekdays []int  `json:"available_weekdays"`
	OpeningTime       string `json:"opening_time"`
	ClosingTime       string `json:"closing_time"`
}

type AmenityResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	Availability *AvailabilityResponse `json:"availability"`
	CreatedAt    time.Time             `json:"created_at"`
}

// AmenityTag is the minimal amenity reference embedded in other responses.
type AmenityTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewResponse(a *amenity.Amenity) AmenityResponse {
	resp := AmenityResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
	}
	if a.Availability != nil {
		resp.Availability = &AvailabilityResponse{
			AvailableWeekdays: a.Availability.Weekdays.Ints(),
			OpeningTime:       a.Availability.Opens.String(),
			ClosingTime:       a.Availability.Closes.String(),
		}
	}
	return resp
}

type ListAmenitiesRequest struct {
	request.ListParams
	Keyword string `form:"keyword"`
}

type CreateBody struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateBody struct {
	Name        *string `json:"name" binding:"omitempty"`
	Description *string `json:"description"`
}

type SetAvailabilityBody struct {
	AvailableWeekdays []int  `json:"available_weekdays" binding:"required"`
	OpeningTime       string `json:"opening_time" binding:"required"`
	ClosingTime       string `json:"closing_time" binding:"required"`
}

// Window parses the clock strings into the service request.
func (b *SetAvailabilityBody) Window() (amenity.SetAvailabilityRequest, error) {
	opens, err := schedule.ParseTimeOfDay(b.OpeningTime)
	if err != nil {
		return amenity.SetAvailabilityRequest{}, err
	}
	closes, err := schedule.ParseTimeOfDay(b.ClosingTime)
	if err != nil {
		return amenity.SetAvailabilityRequest{}, err
	}
	return amenity.SetAvailabilityRequest{
		Weekdays: b.AvailableWeekdays,
		Opens:    opens,
		Closes:   closes,
	}, nil
}
