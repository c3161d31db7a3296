package schedule

import "time"

// Status is the lifecycle state of a booking. Only pending and approved
// bookings occupy their time slot; rejected and cancelled ones are invisible
// to conflict detection.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Active reports whether a booking in this status occupies its slot.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusApproved
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Availability is the legal operating envelope of a reservable resource:
// which weekdays it opens and its opening hours. Overnight windows are not
// supported; Opens < Closes within one day.
type Availability struct {
	ResourceID string
	Weekdays   WeekdaySet
	Opens      TimeOfDay
	Closes     TimeOfDay
}

// Booking is the engine's read-only view of a persisted reservation.
type Booking struct {
	ID          string
	ResourceID  string
	Date        time.Time // civil date, midnight UTC
	Start       TimeOfDay
	End         TimeOfDay
	Status      Status
	RequesterID string
}

// Proposal is a candidate reservation under evaluation. It exists only for
// the duration of one validation cycle and is never persisted.
type Proposal struct {
	ResourceID string
	Date       time.Time
	Start      TimeOfDay
	End        TimeOfDay
}

// Complete reports whether every input of the proposal is set. An incomplete
// proposal cannot be evaluated and yields the neutral verdict.
func (p Proposal) Complete() bool {
	return p.ResourceID != "" && !p.Date.IsZero() && p.Start != p.End
}

// Verdict is the structured result of one conflict evaluation. The three
// illegality flags are independent so callers can report which rule was
// violated instead of one opaque rejection.
type Verdict struct {
	// DayNotAvailable is true when the proposal's weekday is outside the
	// resource's operating weekdays, or no availability is configured.
	DayNotAvailable bool
	// TimeOutOfRange is true when the proposed window extends beyond the
	// resource's opening hours.
	TimeOutOfRange bool
	// Conflicts holds the pending/approved bookings on the same resource and
	// date whose window overlaps the proposal, in their original order.
	Conflicts []Booking
	// Evaluating is true while a fetch of existing bookings is in flight.
	Evaluating bool
	// Unknown is true when the existing bookings could not be fetched.
	// Submission must stay blocked; an unknown verdict never implies
	// "no conflict".
	Unknown bool
}

func (v Verdict) HasConflict() bool {
	return len(v.Conflicts) > 0
}

// Clear reports whether the verdict is fully evaluated with no rule violated.
func (v Verdict) Clear() bool {
	return !v.Evaluating && !v.Unknown &&
		!v.DayNotAvailable && !v.TimeOutOfRange && !v.HasConflict()
}

// Overlaps reports whether the half-open windows [s1,e1) and [s2,e2) share
// any time. Touching windows (e1 == s2) do not overlap, which is what makes
// back-to-back bookings legal.
func Overlaps(s1, e1, s2, e2 TimeOfDay) bool {
	return s1 < e2 && s2 < e1
}

// Evaluate computes the conflict verdict for a proposal against the
// resource's availability and its existing bookings. It is pure: no I/O, no
// mutation of its inputs, deterministic.
//
// The day, hours and overlap checks are computed independently and all
// reported; a proposal on a closed day still gets its overlap list so the
// caller can surface every violated rule at once.
//
// A nil availability means the resource has no operating envelope configured
// and is treated as closed every day.
//
// Degenerate proposals (Start >= End) are the caller's input error and must
// be rejected before calling Evaluate.
func Evaluate(p Proposal, avail *Availability, existing []Booking) Verdict {
	var v Verdict

	if avail == nil {
		v.DayNotAvailable = true
	} else {
		v.DayNotAvailable = !avail.Weekdays.Has(p.Date.Weekday())
		v.TimeOutOfRange = p.Start < avail.Opens || p.End > avail.Closes
	}

	for _, b := range existing {
		if b.ResourceID != p.ResourceID || !SameDate(b.Date, p.Date) {
			continue
		}
		if !b.Status.Active() {
			continue
		}
		if Overlaps(p.Start, p.End, b.Start, b.End) {
			v.Conflicts = append(v.Conflicts, b)
		}
	}

	return v
}
