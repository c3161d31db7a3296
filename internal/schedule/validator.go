package schedule

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNoAvailability is returned by an AvailabilitySource when the resource
// has no operating envelope configured. The validator treats it as "closed
// every day" rather than as a failure.
var ErrNoAvailability = errors.New("no availability configured for resource")

// AvailabilitySource provides the committed operating envelope of a resource.
type AvailabilitySource interface {
	AvailabilityFor(ctx context.Context, resourceID string) (*Availability, error)
}

// BookingSource provides the pending/approved bookings for a resource on one
// civil date.
type BookingSource interface {
	ActiveBookings(ctx context.Context, resourceID string, date time.Time) ([]Booking, error)
}

const defaultFetchTimeout = 5 * time.Second

// Validator bridges the pure engine to a changing proposal and an external
// booking source. Each call to Propose supersedes the previous one: results
// of an older fetch are discarded on arrival, so the published verdict always
// corresponds to the newest proposal (last input wins).
//
// In-flight fetches are not hard-cancelled beyond their bounded timeout;
// they are idempotent reads, so discarding a superseded result is enough.
type Validator struct {
	availability AvailabilitySource
	bookings     BookingSource
	fetchTimeout time.Duration

	mu      sync.Mutex
	gen     uint64
	current Verdict

	updates chan struct{}
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithFetchTimeout bounds each bookings fetch. On expiry the verdict becomes
// Unknown instead of leaving the caller evaluating forever.
func WithFetchTimeout(d time.Duration) ValidatorOption {
	return func(v *Validator) {
		if d > 0 {
			v.fetchTimeout = d
		}
	}
}

func NewValidator(availability AvailabilitySource, bookings BookingSource, opts ...ValidatorOption) *Validator {
	v := &Validator{
		availability: availability,
		bookings:     bookings,
		fetchTimeout: defaultFetchTimeout,
		updates:      make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Current returns the latest published verdict.
func (v *Validator) Current() Verdict {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Updates returns a coalesced change signal. After receiving, read the
// verdict with Current.
func (v *Validator) Updates() <-chan struct{} {
	return v.updates
}

// Propose submits a new candidate for evaluation and returns immediately.
// An incomplete proposal resets to the neutral verdict without touching the
// network. A complete one publishes Evaluating and resolves asynchronously.
func (v *Validator) Propose(ctx context.Context, p Proposal) {
	v.mu.Lock()
	v.gen++
	gen := v.gen

	if !p.Complete() {
		v.current = Verdict{}
		v.mu.Unlock()
		v.signal()
		return
	}

	v.current = Verdict{Evaluating: true}
	v.mu.Unlock()
	v.signal()

	go v.evaluate(ctx, gen, p)
}

func (v *Validator) evaluate(ctx context.Context, gen uint64, p Proposal) {
	ctx, cancel := context.WithTimeout(ctx, v.fetchTimeout)
	defer cancel()

	verdict, err := v.resolve(ctx, p)
	if err != nil {
		// Fail closed: an unreachable backend must never read as
		// "no conflict".
		verdict = Verdict{Unknown: true}
	}

	v.publish(gen, verdict)
}

func (v *Validator) resolve(ctx context.Context, p Proposal) (Verdict, error) {
	avail, err := v.availability.AvailabilityFor(ctx, p.ResourceID)
	if errors.Is(err, ErrNoAvailability) {
		avail, err = nil, nil
	}
	if err != nil {
		return Verdict{}, err
	}

	existing, err := v.bookings.ActiveBookings(ctx, p.ResourceID, p.Date)
	if err != nil {
		return Verdict{}, err
	}

	return Evaluate(p, avail, existing), nil
}

// publish installs the verdict unless a newer proposal has been issued since
// the fetch started.
func (v *Validator) publish(gen uint64, verdict Verdict) {
	v.mu.Lock()
	if gen != v.gen {
		v.mu.Unlock()
		return
	}
	v.current = verdict
	v.mu.Unlock()
	v.signal()
}

func (v *Validator) signal() {
	select {
	case v.updates <- struct{}{}:
	default:
	}
}
