package http

import (
	"time"

	"github.com/condokit/amenity-booking-backend/internal/pkg/request"
	"github.com/condokit/amenity-booking-backend/internal/resident"
)

type RegisterBody struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	Unit        string `json:"unit"`
}

type LoginBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ResidentResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Unit        string     `json:"unit"`
	IsActive    bool       `json:"is_active"`
	IsAdmin     bool       `json:"is_admin"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

func NewResponse(r *resident.Resident) ResidentResponse {
	return ResidentResponse{
		ID:          r.ID,
		Email:       r.Email,
		DisplayName: r.DisplayName,
		Unit:        r.Unit,
		IsActive:    r.IsActive,
		IsAdmin:     r.IsAdmin,
		CreatedAt:   r.CreatedAt,
		LastLoginAt: r.LastLoginAt,
	}
}

// ResidentTag is the minimal resident reference embedded in other responses.
type ResidentTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type LoginResponse struct {
	AccessToken string           `json:"access_token"`
	Resident    ResidentResponse `json:"resident"`
}

type ListResidentsRequest struct {
	request.ListParams
	Keyword string `form:"keyword"`
}
