package http

import (
	"time"

	amenityHttp "github.com/condokit/amenity-booking-backend/internal/amenity/http"
	"github.com/condokit/amenity-booking-backend/internal/notice"
	"github.com/condokit/amenity-booking-backend/internal/pkg/request"
)

type NoticeResponse struct {
	ID        string                  `json:"id"`
	Title     string                  `json:"title"`
	Body      string                  `json:"body"`
	Amenity   *amenityHttp.AmenityTag `json:"amenity,omitempty"`
	AuthorID  string                  `json:"author_id"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

func NewResponse(n *notice.Notice) NoticeResponse {
	resp := NoticeResponse{
		ID:        n.ID,
		Title:     n.Title,
		Body:      n.Body,
		AuthorID:  n.AuthorID,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if n.AmenityID != nil {
		resp.Amenity = &amenityHttp.AmenityTag{ID: *n.AmenityID, Name: n.AmenityName}
	}
	return resp
}

type ListNoticesRequest struct {
	request.ListParams
	Keyword   string `form:"keyword"`
	AmenityID string `form:"amenity_id" binding:"omitempty,uuid"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=created_at updated_at title"`
}

type CreateBody struct {
	Title     string  `json:"title" binding:"required"`
	Body      string  `json:"body" binding:"required"`
	AmenityID *string `json:"amenity_id" binding:"omitempty,uuid"`
}

type UpdateBody struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}
