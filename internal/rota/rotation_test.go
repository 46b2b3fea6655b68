package rota

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveIndex(t *testing.T) {
	ref := Reference{Date: date(2024, time.January, 1), Index: 3}

	tests := []struct {
		name   string
		target time.Time
		want   int
	}{
		{"same week", date(2024, time.January, 4), 3},
		{"next week", date(2024, time.January, 8), 4},
		{"wraps forward past the cycle end", date(2024, time.April, 1), 1},
		{"one week before the reference", date(2023, time.December, 25), 2},
		{"wraps backward below index 1", date(2023, time.December, 11), 15},
		{"far in the future", date(2026, time.January, 5), ((3 - 1 + 105) % 15) + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveIndex(ref, tt.target, 15)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Index)
		})
	}
}

func TestResolveIndexWeekBounds(t *testing.T) {
	ref := Reference{Date: date(2024, time.January, 1), Index: 1}

	got, err := ResolveIndex(ref, date(2024, time.August, 14), 15)
	require.NoError(t, err)

	assert.Equal(t, date(2024, time.August, 12), got.WeekStart)
	assert.Equal(t, date(2024, time.August, 18), got.WeekEnd)
}

func TestResolveIndexMidWeekReference(t *testing.T) {
	// The reference date does not have to be a Monday; any date in the
	// reference week anchors the same way.
	monday := Reference{Date: date(2024, time.January, 1), Index: 7}
	friday := Reference{Date: date(2024, time.January, 5), Index: 7}

	target := date(2024, time.March, 20)

	a, err := ResolveIndex(monday, target, 15)
	require.NoError(t, err)
	b, err := ResolveIndex(friday, target, 15)
	require.NoError(t, err)

	assert.Equal(t, a.Index, b.Index)
}

func TestResolveIndexCyclePeriodicity(t *testing.T) {
	ref := Reference{Date: date(2024, time.January, 1), Index: 9}

	day := date(2024, time.June, 3)
	for i := 0; i < 30; i++ {
		now, err := ResolveIndex(ref, day, 15)
		require.NoError(t, err)
		before, err := ResolveIndex(ref, day.AddDate(0, 0, -15*7), 15)
		require.NoError(t, err)

		assert.Equal(t, now.Index, before.Index, "date %s", day.Format("2006-01-02"))
		day = day.AddDate(0, 0, 11)
	}
}

func TestResolveIndexRejectsBadInput(t *testing.T) {
	_, err := ResolveIndex(Reference{Date: date(2024, time.January, 1), Index: 1}, date(2024, time.January, 1), 0)
	assert.Error(t, err)

	_, err = ResolveIndex(Reference{Date: date(2024, time.January, 1), Index: 16}, date(2024, time.January, 1), 15)
	assert.Error(t, err)

	_, err = ResolveIndex(Reference{Date: date(2024, time.January, 1), Index: 0}, date(2024, time.January, 1), 15)
	assert.Error(t, err)
}
