package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	amenityHttp "github.com/condokit/amenity-booking-backend/internal/amenity/http"
	bookingHttp "github.com/condokit/amenity-booking-backend/internal/booking/http"
	"github.com/condokit/amenity-booking-backend/internal/pkg/response"
)

func TestBookingLifecycle(t *testing.T) {
	clearTables()

	// ==== Setup Residents & Tokens ====
	admin := createTestResident(t, "admin@condo.test", "pass", true)
	alice := createTestResident(t, "alice@condo.test", "pass", false)
	bob := createTestResident(t, "bob@condo.test", "pass", false)

	adminToken := generateToken(admin.ID, admin.Email)
	aliceToken := generateToken(alice.ID, alice.Email)
	bobToken := generateToken(bob.ID, bob.Email)

	// Shared Variables
	var poolID string
	var bookingID string

	// 2026-06-01 is a Monday, 2026-06-06 a Saturday.
	const bookingDate = "2026-06-01"

	// ==== Setup Amenity (catalogue entry + operating envelope) ====
	t.Run("Setup Amenity", func(t *testing.T) {
		w := executeRequest("POST", "/v1/amenities", amenityHttp.CreateBody{
			Name:        "Swimming Pool",
			Description: "Rooftop pool, max 20 people",
		}, adminToken)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp amenityHttp.AmenityResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		poolID = resp.ID

		// Open weekdays only, 08:00-22:00
		wAvail := executeRequest("PUT", fmt.Sprintf("/v1/amenities/%s/availability", poolID),
			amenityHttp.SetAvailabilityBody{
				AvailableWeekdays: []int{1, 2, 3, 4, 5},
				OpeningTime:       "08:00",
				ClosingTime:       "22:00",
			}, adminToken)
		require.Equal(t, http.StatusOK, wAvail.Code)
	})

	// ==== Create Booking Tests ====

	t.Run("Create Booking: Bad Request (Invalid Input Format)", func(t *testing.T) {
		// Case: Missing Resource ID
		w := executeRequest("POST", "/v1/bookings", map[string]any{
			"date":       bookingDate,
			"start_time": "10:00",
			"end_time":   "12:00",
		}, aliceToken)
		assert.Equal(t, http.StatusBadRequest, w.Code, "Should return 400 for missing required fields")

		// Case: Invalid UUID format for Resource ID
		wUUID := executeRequest("POST", "/v1/bookings", map[string]any{
			"resource_id": "not-a-uuid",
			"date":        bookingDate,
			"start_time":  "10:00",
			"end_time":    "12:00",
		}, aliceToken)
		assert.Equal(t, http.StatusBadRequest, wUUID.Code, "Should return 400 for invalid UUID")

		// Case: Invalid Time Format
		wTime := executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingBody{
			ResourceID: poolID,
			Date:       bookingDate,
			StartTime:  "25:99",
			EndTime:    "26:00",
		}, aliceToken)
		assert.Equal(t, http.StatusBadRequest, wTime.Code, "Should return 400 for invalid time format")
	})

	t.Run("Create Booking: Bad Request (Business Logic)", func(t *testing.T) {
		// End Time Before Start Time
		w := executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingBody{
			ResourceID: poolID,
			Date:       bookingDate,
			StartTime:  "12:00",
			EndTime:    "10:00",
		}, aliceToken)
		assert.Equal(t, http.StatusBadRequest, w.Code, "Should return 400 for invalid time range")
	})

	t.Run("Create Booking: Closed Day and Closed Hours", func(t *testing.T) {
		// Saturday: the pool only opens on weekdays
		wDay := executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingBody{
			ResourceID: poolID,
			Date:       "2026-06-06",
			StartTime:  "10:00",
			EndTime:    "12:00",
		}, aliceToken)
		assert.Equal(t, http.StatusConflict, wDay.Code, "Should return 409 on a closed day")

		// Window sticking out past closing time
		wHours := executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingBody{
			ResourceID: poolID,
			Date:       bookingDate,
			StartTime:  "21:00",
			EndTime:    "23:00",
		}, aliceToken)
		assert.Equal(t, http.StatusConflict, wHours.Code, "Should return 409 outside opening hours")
	})

	t.Run("Create Booking: Success", func(t *testing.T) {
		w := executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingBody{
			ResourceID: poolID,
			Date:       bookingDate,
			StartTime:  "10:00",
			EndTime:    "12:00",
		}, aliceToken)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, poolID, resp.Amenity.ID)
		assert.Equal(t, alice.ID, resp.Requester.ID)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, bookingDate, resp.Date)

		bookingID = resp.ID
	})

	t.Run("Create Booking: Conflict (Overlap)", func(t *testing.T) {
		// Same slot, different resident
		w := executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingBody{
			ResourceID: poolID,
			Date:       bookingDate,
			StartTime:  "10:00",
			EndTime:    "12:00",
		}, bobToken)
		assert.Equal(t, http.StatusConflict, w.Code, "Should return 409 Conflict for overlapping booking")

		// Partial overlap
		wPartial := executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingBody{
			ResourceID: poolID,
			Date:       bookingDate,
			StartTime:  "11:00",
			EndTime:    "13:00",
		}, bobToken)
		assert.Equal(t, http.StatusConflict, wPartial.Code, "Should return 409 for partial overlap")

		// Back-to-back is allowed: windows are half-open
		wTouch := executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingBody{
			ResourceID: poolID,
			Date:       bookingDate,
			StartTime:  "12:00",
			EndTime:    "13:00",
		}, bobToken)
		assert.Equal(t, http.StatusCreated, wTouch.Code, "Adjacent windows should not conflict")
	})

	// ==== Verdict Endpoint ====

	t.Run("Verdict: reports conflicts without writing", func(t *testing.T) {
		path := fmt.Sprintf("/v1/bookings/verdict?resource_id=%s&date=%s&start_time=11:00&end_time=13:00", poolID, bookingDate)
		w := executeRequest("GET", path, nil, bobToken)
		require.Equal(t, http.StatusOK, w.Code)

		var v bookingHttp.VerdictResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
		assert.True(t, v.HasConflict)
		assert.False(t, v.DayNotAvailable)
		assert.False(t, v.TimeOutOfRange)
		// Alice's 10:00-12:00 and Bob's 12:00-13:00 both overlap 11:00-13:00
		require.Len(t, v.ConflictingBookings, 2)
		assert.Equal(t, "10:00", v.ConflictingBookings[0].StartTime)

		// A free slot reads clear
		freePath := fmt.Sprintf("/v1/bookings/verdict?resource_id=%s&date=%s&start_time=14:00&end_time=15:00", poolID, bookingDate)
		wFree := executeRequest("GET", freePath, nil, bobToken)
		require.Equal(t, http.StatusOK, wFree.Code)

		var free bookingHttp.VerdictResponse
		require.NoError(t, json.Unmarshal(wFree.Body.Bytes(), &free))
		assert.False(t, free.HasConflict)
		assert.Empty(t, free.ConflictingBookings)
	})

	// ==== List Bookings ====

	t.Run("List Bookings: Visibility Control", func(t *testing.T) {
		// Alice sees only her own booking
		wAlice := executeRequest("GET", "/v1/bookings", nil, aliceToken)
		assert.Equal(t, http.StatusOK, wAlice.Code)
		var respAlice response.PageResponse[bookingHttp.BookingResponse]
		json.Unmarshal(wAlice.Body.Bytes(), &respAlice)
		require.Equal(t, 1, respAlice.Total)
		assert.Equal(t, bookingID, respAlice.Items[0].ID)

		// Admin sees everything
		wAdmin := executeRequest("GET", "/v1/bookings", nil, adminToken)
		assert.Equal(t, http.StatusOK, wAdmin.Code)
		var respAdmin response.PageResponse[bookingHttp.BookingResponse]
		json.Unmarshal(wAdmin.Body.Bytes(), &respAdmin)
		assert.Equal(t, 2, respAdmin.Total)

		// Admin can filter by requester
		path := fmt.Sprintf("/v1/bookings?requester_id=%s", alice.ID)
		wFiltered := executeRequest("GET", path, nil, adminToken)
		assert.Equal(t, http.StatusOK, wFiltered.Code)
		var respFiltered response.PageResponse[bookingHttp.BookingResponse]
		json.Unmarshal(wFiltered.Body.Bytes(), &respFiltered)
		assert.Equal(t, 1, respFiltered.Total)
	})

	// ==== Get Single Booking ====

	t.Run("Get Booking: Permission Matrix", func(t *testing.T) {
		path := fmt.Sprintf("/v1/bookings/%s", bookingID)

		// Owner -> OK
		wOwner := executeRequest("GET", path, nil, aliceToken)
		assert.Equal(t, http.StatusOK, wOwner.Code)

		// Admin -> OK
		wAdmin := executeRequest("GET", path, nil, adminToken)
		assert.Equal(t, http.StatusOK, wAdmin.Code)

		// Another resident -> Forbidden
		wBob := executeRequest("GET", path, nil, bobToken)
		assert.Equal(t, http.StatusForbidden, wBob.Code, "Residents should not view others' bookings")
	})

	// ==== Status Transitions ====

	t.Run("Update Status: Owner Restrictions", func(t *testing.T) {
		path := fmt.Sprintf("/v1/bookings/%s/status", bookingID)

		// Owner tries to approve their own booking -> Forbidden
		w := executeRequest("PATCH", path, bookingHttp.UpdateStatusBody{Status: "approved"}, aliceToken)
		assert.Equal(t, http.StatusForbidden, w.Code, "Resident cannot approve their own booking")

		// Stranger tries to cancel -> Forbidden
		wBob := executeRequest("PATCH", path, bookingHttp.UpdateStatusBody{Status: "cancelled"}, bobToken)
		assert.Equal(t, http.StatusForbidden, wBob.Code, "Another resident cannot touch the booking")

		// Bad status enum -> 400
		wBad := executeRequest("PATCH", path, map[string]any{"status": "archived"}, adminToken)
		assert.Equal(t, http.StatusBadRequest, wBad.Code)
	})

	t.Run("Update Status: Admin Decision and Terminal States", func(t *testing.T) {
		path := fmt.Sprintf("/v1/bookings/%s/status", bookingID)

		// Admin approves
		w := executeRequest("PATCH", path, bookingHttp.UpdateStatusBody{Status: "approved"}, adminToken)
		require.Equal(t, http.StatusOK, w.Code)
		var resp bookingHttp.BookingResponse
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Equal(t, "approved", resp.Status)

		// Approved slot still blocks newcomers
		wConflict := executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingBody{
			ResourceID: poolID,
			Date:       bookingDate,
			StartTime:  "11:00",
			EndTime:    "12:00",
		}, bobToken)
		assert.Equal(t, http.StatusConflict, wConflict.Code)

		// Owner withdraws the approved booking
		wCancel := executeRequest("PATCH", path, bookingHttp.UpdateStatusBody{Status: "cancelled"}, aliceToken)
		assert.Equal(t, http.StatusOK, wCancel.Code, "Owner should be able to cancel an approved booking")

		// Cancelled is terminal
		wRevive := executeRequest("PATCH", path, bookingHttp.UpdateStatusBody{Status: "approved"}, adminToken)
		assert.Equal(t, http.StatusConflict, wRevive.Code, "Terminal status should not change")

		// The freed slot can be booked again
		wRebook := executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingBody{
			ResourceID: poolID,
			Date:       bookingDate,
			StartTime:  "10:00",
			EndTime:    "12:00",
		}, bobToken)
		assert.Equal(t, http.StatusCreated, wRebook.Code, "Cancelled booking should release the slot")
	})

	// ==== Not Found & Invalid ID Edge Cases ====

	t.Run("Interact with Non-Existent Booking", func(t *testing.T) {
		fakeID := "00000000-0000-0000-0000-000000000000"

		wGet := executeRequest("GET", fmt.Sprintf("/v1/bookings/%s", fakeID), nil, adminToken)
		assert.Equal(t, http.StatusNotFound, wGet.Code, "Should return 404 for non-existent ID")

		wPatch := executeRequest("PATCH", fmt.Sprintf("/v1/bookings/%s/status", fakeID),
			bookingHttp.UpdateStatusBody{Status: "cancelled"}, adminToken)
		assert.Equal(t, http.StatusNotFound, wPatch.Code, "Should return 404 for updating non-existent ID")
	})

	t.Run("Interact with Invalid UUID Path Parameter", func(t *testing.T) {
		wGet := executeRequest("GET", "/v1/bookings/not-a-uuid", nil, adminToken)
		assert.Equal(t, http.StatusBadRequest, wGet.Code, "Should return 400 for invalid UUID in GET")

		wPatch := executeRequest("PATCH", "/v1/bookings/not-a-uuid/status",
			bookingHttp.UpdateStatusBody{Status: "cancelled"}, adminToken)
		assert.Equal(t, http.StatusBadRequest, wPatch.Code, "Should return 400 for invalid UUID in PATCH")
	})
}
