package rota

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMondayOf(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday stays", date(2024, time.August, 12), date(2024, time.August, 12)},
		{"wednesday", date(2024, time.August, 14), date(2024, time.August, 12)},
		{"sunday", date(2024, time.August, 18), date(2024, time.August, 12)},
		{"across month boundary", date(2024, time.September, 1), date(2024, time.August, 26)},
		{"across year boundary", date(2026, time.January, 1), date(2025, time.December, 29)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MondayOf(tt.in))
		})
	}
}

func TestISOWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want int
	}{
		{"first monday of 2024", date(2024, time.January, 1), 1},
		{"mid year", date(2024, time.August, 14), 33},
		{"last day of 2024 belongs to week 1 of 2025", date(2024, time.December, 31), 1},
		{"jan 1 2021 belongs to week 53 of 2020", date(2021, time.January, 1), 53},
		{"jan 1 2023 belongs to week 52 of 2022", date(2023, time.January, 1), 52},
		{"jan 1 2026 is a thursday in week 1", date(2026, time.January, 1), 1},
		{"late december before a year 53 boundary", date(2025, time.December, 28), 52},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ISOWeek(tt.in))
		})
	}
}

func TestISOWeekMatchesStdlib(t *testing.T) {
	// The stdlib result is the ground truth; walk two full years.
	day := date(2023, time.January, 1)
	for day.Year() < 2025 {
		_, want := day.ISOWeek()
		assert.Equal(t, want, ISOWeek(day), "date %s", day.Format("2006-01-02"))
		day = day.AddDate(0, 0, 1)
	}
}

func TestWeekdayIndex(t *testing.T) {
	assert.Equal(t, 0, WeekdayIndex(date(2024, time.August, 12))) // Monday
	assert.Equal(t, 4, WeekdayIndex(date(2024, time.August, 16))) // Friday
	assert.Equal(t, 6, WeekdayIndex(date(2024, time.August, 18))) // Sunday
}
