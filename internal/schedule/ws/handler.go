package ws

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/condokit/amenity-booking-backend/internal/auth"
	"github.com/condokit/amenity-booking-backend/internal/schedule"
)

const (
	pingInterval = 30 * time.Second
	readDeadline = 60 * time.Second
)

// errInvalidWindow rejects an inverted or empty window before it reaches the
// engine, which only evaluates well-formed [start, end) intervals.
var errInvalidWindow = errors.New("start time must be before end time")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for the websocket endpoint is handled at the proxy.
		return true
	},
}

// Handler upgrades a connection into a live validation session: the client
// streams proposal edits, the server pushes a verdict for each. One Validator
// per connection keeps the staleness guard scoped to that client's input.
type Handler struct {
	jwtManager    *auth.JWTManager
	availability  schedule.AvailabilitySource
	bookings      schedule.BookingSource
	validatorOpts []schedule.ValidatorOption
}

func NewHandler(jwtManager *auth.JWTManager, availability schedule.AvailabilitySource, bookings schedule.BookingSource, opts ...schedule.ValidatorOption) *Handler {
	return &Handler{
		jwtManager:    jwtManager,
		availability:  availability,
		bookings:      bookings,
		validatorOpts: opts,
	}
}

// proposalMessage is one edit of the booking form. Leaving any field empty
// resets the session to the neutral "not yet evaluated" verdict.
type proposalMessage struct {
	ResourceID string `json:"resource_id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

type conflictMessage struct {
	ID        string `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

type verdictMessage struct {
	Type                string            `json:"type"`
	DayNotAvailable     bool              `json:"day_not_available"`
	TimeOutOfRange      bool              `json:"time_out_of_range"`
	HasConflict         bool              `json:"has_conflict"`
	ConflictingBookings []conflictMessage `json:"conflicting_bookings"`
	IsEvaluating        bool              `json:"is_evaluating"`
	Unknown             bool              `json:"unknown"`
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func newVerdictMessage(v schedule.Verdict) verdictMessage {
	conflicts := make([]conflictMessage, len(v.Conflicts))
	for i, b := range v.Conflicts {
		conflicts[i] = conflictMessage{
			ID:        b.ID,
			StartTime: b.Start.String(),
			EndTime:   b.End.String(),
			Status:    string(b.Status),
		}
	}
	return verdictMessage{
		Type:                "verdict",
		DayNotAvailable:     v.DayNotAvailable,
		TimeOutOfRange:      v.TimeOutOfRange,
		HasConflict:         v.HasConflict(),
		ConflictingBookings: conflicts,
		IsEvaluating:        v.Evaluating,
		Unknown:             v.Unknown,
	}
}

// Live handles GET /v1/ws/validate?token=JWT.
// Websocket clients cannot set an Authorization header, so the token rides
// in the query string.
func (h *Handler) Live(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token query parameter is required"})
		return
	}

	claims, err := h.jwtManager.ParseAndValidate(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	validator := schedule.NewValidator(h.availability, h.bookings, h.validatorOpts...)

	done := make(chan struct{})
	defer close(done)

	// All frames go out through writeLoop; gorilla connections allow one
	// concurrent writer.
	inputErrs := make(chan string, 4)
	go h.writeLoop(conn, validator, inputErrs, done)

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readDeadline))
	})

	h.readLoop(c, conn, validator, inputErrs, claims.ResidentID)
}

func (h *Handler) readLoop(c *gin.Context, conn *websocket.Conn, validator *schedule.Validator, inputErrs chan<- string, residentID string) {
	for {
		var msg proposalMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
				websocket.CloseAbnormalClosure) {
				log.Printf("websocket error for resident %s: %v", residentID, err)
			}
			return
		}

		proposal, err := msg.proposal()
		if err != nil {
			select {
			case inputErrs <- err.Error():
			default:
			}
			continue
		}

		validator.Propose(c.Request.Context(), proposal)
	}
}

func (h *Handler) writeLoop(conn *websocket.Conn, validator *schedule.Validator, inputErrs <-chan string, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-validator.Updates():
			if err := conn.WriteJSON(newVerdictMessage(validator.Current())); err != nil {
				return
			}
		case errText := <-inputErrs:
			if err := conn.WriteJSON(errorMessage{Type: "error", Error: errText}); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// proposal parses the message. Empty fields yield an incomplete proposal,
// which resets the verdict; malformed values are input errors.
func (m proposalMessage) proposal() (schedule.Proposal, error) {
	var p schedule.Proposal

	p.ResourceID = m.ResourceID
	if m.Date != "" {
		date, err := schedule.ParseDate(m.Date)
		if err != nil {
			return schedule.Proposal{}, err
		}
		p.Date = date
	}
	if m.StartTime != "" {
		start, err := schedule.ParseTimeOfDay(m.StartTime)
		if err != nil {
			return schedule.Proposal{}, err
		}
		p.Start = start
	}
	if m.EndTime != "" {
		end, err := schedule.ParseTimeOfDay(m.EndTime)
		if err != nil {
			return schedule.Proposal{}, err
		}
		p.End = end
	}
	if m.StartTime != "" && m.EndTime != "" && p.Start >= p.End {
		return schedule.Proposal{}, errInvalidWindow
	}

	return p, nil
}
