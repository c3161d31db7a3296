package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condokit/amenity-booking-backend/internal/schedule"
)

func TestProposalMessageParsing(t *testing.T) {
	t.Run("complete message parses", func(t *testing.T) {
		p, err := proposalMessage{
			ResourceID: "pool",
			Date:       "2026-06-01",
			StartTime:  "10:00",
			EndTime:    "11:00",
		}.proposal()
		require.NoError(t, err)
		assert.True(t, p.Complete())
		assert.Equal(t, "pool", p.ResourceID)
	})

	t.Run("empty fields make an incomplete proposal, not an error", func(t *testing.T) {
		p, err := proposalMessage{ResourceID: "pool", Date: "2026-06-01"}.proposal()
		require.NoError(t, err)
		assert.False(t, p.Complete())
	})

	t.Run("malformed values are input errors", func(t *testing.T) {
		_, err := proposalMessage{Date: "01/06/2026"}.proposal()
		assert.Error(t, err)

		_, err = proposalMessage{StartTime: "25:99"}.proposal()
		assert.Error(t, err)
	})
}

func TestProposalMessageRejectsInvertedWindow(t *testing.T) {
	// An inverted window slips past every engine flag (no day, hours or
	// overlap check can fire on it), so it must be stopped here instead of
	// reaching the client as a clear verdict.
	_, err := proposalMessage{
		ResourceID: "pool",
		Date:       "2026-06-01",
		StartTime:  "20:00",
		EndTime:    "10:00",
	}.proposal()
	assert.ErrorIs(t, err, errInvalidWindow)

	_, err = proposalMessage{
		ResourceID: "pool",
		Date:       "2026-06-01",
		StartTime:  "10:00",
		EndTime:    "10:00",
	}.proposal()
	assert.ErrorIs(t, err, errInvalidWindow)

	// A window missing one bound stays an incomplete proposal.
	p, err := proposalMessage{
		ResourceID: "pool",
		Date:       "2026-06-01",
		StartTime:  "10:00",
	}.proposal()
	require.NoError(t, err)
	assert.False(t, p.Complete())
}

func TestVerdictMessageMirrorsVerdict(t *testing.T) {
	start, err := schedule.ParseTimeOfDay("10:00")
	require.NoError(t, err)
	end, err := schedule.ParseTimeOfDay("11:00")
	require.NoError(t, err)

	v := schedule.Verdict{
		TimeOutOfRange: true,
		Conflicts: []schedule.Booking{
			{ID: "b1", ResourceID: "pool", Date: time.Now(),
				Start: start, End: end, Status: schedule.StatusApproved},
		},
	}

	msg := newVerdictMessage(v)
	assert.Equal(t, "verdict", msg.Type)
	assert.True(t, msg.TimeOutOfRange)
	assert.True(t, msg.HasConflict)
	require.Len(t, msg.ConflictingBookings, 1)
	assert.Equal(t, "10:00", msg.ConflictingBookings[0].StartTime)
	assert.Equal(t, "approved", msg.ConflictingBookings[0].Status)
}
