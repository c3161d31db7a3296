package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "08:30", want: 8*60 + 30},
		{in: "22:00", want: 22 * 60},
		{in: "24:00", want: MinutesPerDay},
		{in: "09:00:00", want: 9 * 60},
		{in: "24:01", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "09:00:30", wantErr: true},
		{in: "9", wantErr: true},
		{in: "", wantErr: true},
		{in: "ab:cd", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "08:05", TimeOfDay(8*60+5).String())
	assert.Equal(t, "00:00", TimeOfDay(0).String())
	assert.Equal(t, "23:59", TimeOfDay(23*60+59).String())
}

func TestWeekdaySet(t *testing.T) {
	s := NewWeekdaySet(time.Monday, time.Wednesday, time.Friday)

	assert.True(t, s.Has(time.Monday))
	assert.True(t, s.Has(time.Friday))
	assert.False(t, s.Has(time.Sunday))
	assert.False(t, s.Empty())
	assert.True(t, WeekdaySet(0).Empty())

	assert.Equal(t, []int{1, 3, 5}, s.Ints())
}

func TestWeekdaySetFromInts(t *testing.T) {
	s, err := WeekdaySetFromInts([]int{0, 6})
	require.NoError(t, err)
	assert.True(t, s.Has(time.Sunday))
	assert.True(t, s.Has(time.Saturday))
	assert.False(t, s.Has(time.Wednesday))

	_, err = WeekdaySetFromInts([]int{7})
	assert.Error(t, err)

	_, err = WeekdaySetFromInts([]int{-1})
	assert.Error(t, err)
}

func TestDateNormalization(t *testing.T) {
	loc := time.FixedZone("X", 3*3600)
	in := time.Date(2026, 6, 1, 18, 45, 12, 0, loc)

	d := Date(in)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), d)
	assert.True(t, SameDate(d, in))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())

	_, err = ParseDate("01/06/2026")
	assert.Error(t, err)
}
