package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAvailability struct {
	avail *Availability
	err   error
}

func (s *stubAvailability) AvailabilityFor(ctx context.Context, resourceID string) (*Availability, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.avail, nil
}

// fetchCall is one in-flight ActiveBookings call the test can resolve at will.
type fetchCall struct {
	resourceID string
	result     []Booking
	err        error
	release    chan struct{}
}

// controlledBookings hands each ActiveBookings call to the test over a
// channel and blocks until the test releases it.
type controlledBookings struct {
	calls chan *fetchCall
}

func newControlledBookings() *controlledBookings {
	return &controlledBookings{calls: make(chan *fetchCall, 8)}
}

func (c *controlledBookings) ActiveBookings(ctx context.Context, resourceID string, date time.Time) ([]Booking, error) {
	call := &fetchCall{resourceID: resourceID, release: make(chan struct{})}
	c.calls <- call
	select {
	case <-call.release:
		return call.result, call.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *controlledBookings) next(t *testing.T) *fetchCall {
	t.Helper()
	select {
	case call := <-c.calls:
		return call
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a bookings fetch")
		return nil
	}
}

func openAllWeek(t *testing.T, resourceID string) *Availability {
	t.Helper()
	return &Availability{
		ResourceID: resourceID,
		Weekdays:   everyDay(),
		Opens:      mustClock(t, "08:00"),
		Closes:     mustClock(t, "22:00"),
	}
}

func settledVerdict(t *testing.T, v *Validator) Verdict {
	t.Helper()
	require.Eventually(t, func() bool {
		return !v.Current().Evaluating
	}, time.Second, 2*time.Millisecond)
	return v.Current()
}

func TestValidatorIncompleteProposalIsNeutral(t *testing.T) {
	bookings := newControlledBookings()
	v := NewValidator(&stubAvailability{}, bookings)

	v.Propose(context.Background(), Proposal{ResourceID: "pool"})

	verdict := v.Current()
	assert.False(t, verdict.Evaluating)
	assert.False(t, verdict.Unknown)
	assert.False(t, verdict.HasConflict())
	// No fetch may be issued for an incomplete proposal.
	assert.Empty(t, bookings.calls)
}

func TestValidatorPublishesEvaluatingThenVerdict(t *testing.T) {
	date := mustDate(t, "2026-06-01")
	bookings := newControlledBookings()
	v := NewValidator(&stubAvailability{avail: openAllWeek(t, "pool")}, bookings)

	v.Propose(context.Background(), Proposal{
		ResourceID: "pool", Date: date,
		Start: mustClock(t, "10:00"), End: mustClock(t, "11:00"),
	})
	assert.True(t, v.Current().Evaluating)

	call := bookings.next(t)
	call.result = []Booking{
		{ID: "b1", ResourceID: "pool", Date: date,
			Start: mustClock(t, "10:30"), End: mustClock(t, "11:30"),
			Status: StatusApproved},
	}
	close(call.release)

	verdict := settledVerdict(t, v)
	assert.True(t, verdict.HasConflict())
	require.Len(t, verdict.Conflicts, 1)
	assert.Equal(t, "b1", verdict.Conflicts[0].ID)
}

func TestValidatorStaleFetchNeverOverwritesNewerVerdict(t *testing.T) {
	date := mustDate(t, "2026-06-01")
	bookings := newControlledBookings()
	v := NewValidator(&stubAvailability{avail: openAllWeek(t, "pool")}, bookings)

	// Input X, then Y before X's fetch resolves.
	v.Propose(context.Background(), Proposal{
		ResourceID: "pool", Date: date,
		Start: mustClock(t, "10:00"), End: mustClock(t, "11:00"),
	})
	callX := bookings.next(t)

	v.Propose(context.Background(), Proposal{
		ResourceID: "pool", Date: date,
		Start: mustClock(t, "12:00"), End: mustClock(t, "13:00"),
	})
	callY := bookings.next(t)

	// Y resolves first: no conflicts.
	close(callY.release)
	verdict := settledVerdict(t, v)
	assert.True(t, verdict.Clear())

	// X resolves late with a conflict; its result must be discarded.
	callX.result = []Booking{
		{ID: "stale", ResourceID: "pool", Date: date,
			Start: mustClock(t, "10:00"), End: mustClock(t, "11:00"),
			Status: StatusApproved},
	}
	close(callX.release)

	time.Sleep(20 * time.Millisecond)
	verdict = v.Current()
	assert.True(t, verdict.Clear(), "stale fetch result overwrote the newer verdict")
}

func TestValidatorFetchFailureFailsClosed(t *testing.T) {
	date := mustDate(t, "2026-06-01")
	bookings := newControlledBookings()
	v := NewValidator(&stubAvailability{avail: openAllWeek(t, "pool")}, bookings)

	v.Propose(context.Background(), Proposal{
		ResourceID: "pool", Date: date,
		Start: mustClock(t, "10:00"), End: mustClock(t, "11:00"),
	})

	call := bookings.next(t)
	call.err = errors.New("backend down")
	close(call.release)

	verdict := settledVerdict(t, v)
	assert.True(t, verdict.Unknown)
	assert.False(t, verdict.Clear())
	assert.False(t, verdict.HasConflict(), "a failed fetch must not fabricate conflicts")
}

func TestValidatorFetchTimeoutTurnsUnknown(t *testing.T) {
	date := mustDate(t, "2026-06-01")
	bookings := newControlledBookings()
	v := NewValidator(
		&stubAvailability{avail: openAllWeek(t, "pool")},
		bookings,
		WithFetchTimeout(20*time.Millisecond),
	)

	v.Propose(context.Background(), Proposal{
		ResourceID: "pool", Date: date,
		Start: mustClock(t, "10:00"), End: mustClock(t, "11:00"),
	})

	// Never release the fetch; the bounded timeout must settle the verdict.
	bookings.next(t)

	verdict := settledVerdict(t, v)
	assert.True(t, verdict.Unknown)
}

func TestValidatorMissingAvailabilityIsClosedNotAnError(t *testing.T) {
	date := mustDate(t, "2026-06-01")
	bookings := newControlledBookings()
	v := NewValidator(&stubAvailability{err: ErrNoAvailability}, bookings)

	v.Propose(context.Background(), Proposal{
		ResourceID: "new-sauna", Date: date,
		Start: mustClock(t, "10:00"), End: mustClock(t, "11:00"),
	})

	call := bookings.next(t)
	close(call.release)

	verdict := settledVerdict(t, v)
	assert.True(t, verdict.DayNotAvailable)
	assert.False(t, verdict.Unknown)
}

func TestValidatorSignalsOnUpdates(t *testing.T) {
	date := mustDate(t, "2026-06-01")
	bookings := newControlledBookings()
	v := NewValidator(&stubAvailability{avail: openAllWeek(t, "pool")}, bookings)

	v.Propose(context.Background(), Proposal{
		ResourceID: "pool", Date: date,
		Start: mustClock(t, "10:00"), End: mustClock(t, "11:00"),
	})

	select {
	case <-v.Updates():
	case <-time.After(time.Second):
		t.Fatal("no update signal after Propose")
	}

	call := bookings.next(t)
	close(call.release)
	settledVerdict(t, v)
}
