package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/condokit/amenity-booking-backend/internal/auth"
	"github.com/condokit/amenity-booking-backend/internal/booking"
	"github.com/condokit/amenity-booking-backend/internal/pkg/response"
	"github.com/condokit/amenity-booking-backend/internal/resident"
	"github.com/condokit/amenity-booking-backend/internal/schedule"
)

type Handler struct {
	service     booking.Service
	residentSvc resident.Service
}

func NewHandler(service booking.Service, residentSvc resident.Service) *Handler {
	return &Handler{
		service:     service,
		residentSvc: residentSvc,
	}
}

// checkIsAdmin reports whether the current resident is an administrator.
func (h *Handler) checkIsAdmin(c *gin.Context, residentID string) bool {
	r, err := h.residentSvc.GetByID(c.Request.Context(), residentID)
	if err != nil {
		return false
	}
	return r.IsAdmin
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := booking.Filter{
		ResourceID: req.ResourceID,
		Status:     req.Status,
		Page:       req.Page,
		PageSize:   req.PageSize,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	}

	if req.DateFrom != "" {
		d, err := schedule.ParseDate(req.DateFrom)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.DateFrom = &d
	}
	if req.DateTo != "" {
		d, err := schedule.ParseDate(req.DateTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.DateTo = &d
	}

	// Residents see their own bookings; administrators may see everyone's
	// or filter by requester.
	currentID := auth.GetResidentID(c)
	if h.checkIsAdmin(c, currentID) {
		filter.RequesterID = req.RequesterID
	} else {
		filter.RequesterID = currentID
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Verdict evaluates a proposal without creating anything. The response
// reports each violated rule separately so the client can explain whether
// the day, the hours or another booking is the problem.
func (h *Handler) Verdict(c *gin.Context) {
	var query VerdictQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	proposal, err := query.Proposal()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	verdict, err := h.service.Verdict(c.Request.Context(), proposal)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewVerdictResponse(verdict))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	requesterID := auth.GetResidentID(c)
	if requesterID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	date, err := schedule.ParseDate(body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := schedule.ParseTimeOfDay(body.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := schedule.ParseTimeOfDay(body.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		RequesterID: requesterID,
		ResourceID:  body.ResourceID,
		Date:        date,
		Start:       start,
		End:         end,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	residentID := auth.GetResidentID(c)
	if b.RequesterID != residentID && !h.checkIsAdmin(c, residentID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	residentID := auth.GetResidentID(c)
	isAdmin := h.checkIsAdmin(c, residentID)

	b, err := h.service.UpdateStatus(c.Request.Context(), id, booking.Status(body.Status), residentID, isAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
