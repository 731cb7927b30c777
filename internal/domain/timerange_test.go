package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rangeAnchor = time.Date(2017, 3, 26, 13, 45, 0, 0, time.FixedZone("", -6*3600))

func TestNewTimeRange_PositiveDuration(t *testing.T) {
	r, err := NewTimeRange(rangeAnchor, 30*time.Minute)
	require.NoError(t, err)

	assert.True(t, r.Start().Equal(rangeAnchor))
	assert.True(t, r.End().Equal(rangeAnchor.Add(30*time.Minute)))
	assert.Equal(t, 30*time.Minute, r.Duration())
}

func TestNewTimeRange_NegativeDurationAnchorsEnd(t *testing.T) {
	r, err := NewTimeRange(rangeAnchor, -30*time.Minute)
	require.NoError(t, err)

	assert.True(t, r.Start().Equal(rangeAnchor.Add(-30*time.Minute)))
	assert.True(t, r.End().Equal(rangeAnchor))
	assert.Equal(t, 30*time.Minute, r.Duration(), "stored duration is the absolute value")
}

func TestNewTimeRange_Overflow(t *testing.T) {
	yearNineK := time.Date(9999, 12, 31, 23, 0, 0, 0, time.UTC)
	_, err := NewTimeRange(yearNineK, 2*time.Hour)
	assert.ErrorIs(t, err, ErrRangeOverflow)

	yearOne := time.Time{}.Add(time.Hour)
	_, err = NewTimeRange(yearOne, -2*time.Hour)
	assert.ErrorIs(t, err, ErrRangeOverflow)

	beforeYearOne := time.Time{}.Add(-time.Hour)
	_, err = NewTimeRange(beforeYearOne, 30*time.Minute)
	assert.ErrorIs(t, err, ErrRangeOverflow, "anchor before the minimum is rejected even with a positive duration")

	_, err = NewTimeRange(yearNineK.Add(2*time.Hour), -time.Hour)
	assert.ErrorIs(t, err, ErrRangeOverflow, "end past the maximum is rejected even with a negative duration")
}

func TestIncludes_Instant(t *testing.T) {
	r := mustRange(rangeAnchor, time.Hour)

	assert.True(t, r.Includes(rangeAnchor), "start is included")
	assert.True(t, r.Includes(rangeAnchor.Add(30*time.Minute)))
	assert.False(t, r.Includes(rangeAnchor.Add(time.Hour)), "end is excluded")
	assert.False(t, r.Includes(rangeAnchor.Add(-time.Nanosecond)))
}

func TestIncludes_ZeroDurationIncludesExactlyAnchor(t *testing.T) {
	r := mustRange(rangeAnchor, 0)

	assert.True(t, r.Includes(rangeAnchor))
	assert.False(t, r.Includes(rangeAnchor.Add(time.Nanosecond)))
	assert.False(t, r.Includes(rangeAnchor.Add(-time.Nanosecond)))
}

func TestNever_IncludesNothing(t *testing.T) {
	assert.False(t, Never.Includes(time.Time{}))
	assert.False(t, Never.Includes(Never.Start()))
	assert.False(t, Never.Includes(rangeAnchor))
	assert.False(t, Never.IncludesRange(Never), "not even itself")
	assert.False(t, Never.IncludesRange(mustRange(rangeAnchor, time.Hour)))
	assert.False(t, mustRange(rangeAnchor, time.Hour).IncludesRange(Never))
}

func TestIncludesRange(t *testing.T) {
	outer := mustRange(rangeAnchor, time.Hour)

	cases := []struct {
		name  string
		inner TimeRange
		want  bool
	}{
		{"identical", mustRange(rangeAnchor, time.Hour), true},
		{"strictly inside", mustRange(rangeAnchor.Add(10*time.Minute), 30*time.Minute), true},
		{"same start shorter", mustRange(rangeAnchor, 30*time.Minute), true},
		{"starts before", mustRange(rangeAnchor.Add(-time.Minute), 30*time.Minute), false},
		{"ends after", mustRange(rangeAnchor, 2*time.Hour), false},
		{"instant at start", mustRange(rangeAnchor, 0), true},
		{"instant at end excluded", mustRange(rangeAnchor.Add(time.Hour), 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, outer.IncludesRange(tc.inner))
		})
	}
}

func TestTimeRange_Equal(t *testing.T) {
	a := mustRange(rangeAnchor, time.Hour)
	b := mustRange(rangeAnchor, time.Hour)
	c := mustRange(rangeAnchor, 2*time.Hour)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	// a negative-duration construction equals the positive one over the
	// same window
	d := mustRange(rangeAnchor.Add(time.Hour), -time.Hour)
	assert.True(t, a.Equal(d))
}

func TestRestoreTimeRange(t *testing.T) {
	r := RestoreTimeRange(rangeAnchor, rangeAnchor.Add(time.Hour))
	assert.True(t, r.Equal(mustRange(rangeAnchor, time.Hour)))
}
