package rota

import (
	"testing"
	"time"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		cell      string
		wantStart string
		wantEnd   string
		wantErr   bool
	}{
		{"06:00-14:00", "06:00", "14:00", false},
		{"06:00 - 14:00", "06:00", "14:00", false},
		{"22:00-06:00", "22:00", "06:00", false},
		{"6:00-14:00", "", "", true},
		{"06:00-24:00", "", "", true},
		{"OFF", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			start, end, err := ParseTimeRange(tt.cell)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestClassifyStart(t *testing.T) {
	tests := []struct {
		start string
		want  domain.ShiftType
	}{
		{"06:00", domain.ShiftMorning},
		{"12:59", domain.ShiftMorning},
		{"13:00", domain.ShiftAfternoon},
		{"21:59", domain.ShiftAfternoon},
		{"22:00", domain.ShiftNight},
		{"05:59", domain.ShiftNight},
		{"00:00", domain.ShiftNight},
	}

	for _, tt := range tests {
		t.Run(tt.start, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyStart(tt.start))
		})
	}
}

func TestShiftDuration(t *testing.T) {
	d, err := ShiftDuration("06:00", "14:00")
	require.NoError(t, err)
	assert.Equal(t, 8*time.Hour, d)

	// Crosses midnight.
	d, err = ShiftDuration("22:00", "06:00")
	require.NoError(t, err)
	assert.Equal(t, 8*time.Hour, d)

	_, err = ShiftDuration("bad", "06:00")
	assert.Error(t, err)
}
