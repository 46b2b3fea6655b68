package rota

import (
	"fmt"
	"regexp"
	"time"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
)

// TimeRangePattern matches the "HH:MM-HH:MM" cell format of shift templates
// and annual plan grids.
var TimeRangePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])\s*-\s*([01][0-9]|2[0-3]):([0-5][0-9])$`)

// ParseTimeRange splits a "HH:MM-HH:MM" cell into start and end time.
func ParseTimeRange(cell string) (string, string, error) {
	m := TimeRangePattern.FindStringSubmatch(cell)
	if m == nil {
		return "", "", fmt.Errorf("rota: invalid time range %q", cell)
	}
	return m[1] + ":" + m[2], m[3] + ":" + m[4], nil
}

// ClassifyStart derives a shift type from the start hour: [06,13) is a
// morning shift, [13,22) an afternoon shift, everything else a night shift.
// This is a heuristic; a stored label, when present, wins over it.
func ClassifyStart(start string) domain.ShiftType {
	t, err := time.Parse("15:04", start)
	if err != nil {
		return domain.ShiftNight
	}
	switch hour := t.Hour(); {
	case hour >= 6 && hour < 13:
		return domain.ShiftMorning
	case hour >= 13 && hour < 22:
		return domain.ShiftAfternoon
	default:
		return domain.ShiftNight
	}
}

// ShiftDuration returns the wall-clock length of a shift. Night shifts may
// cross midnight, in which case a day is added before subtracting.
func ShiftDuration(start, end string) (time.Duration, error) {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return 0, err
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return 0, err
	}
	if !e.After(s) {
		e = e.Add(24 * time.Hour)
	}
	return e.Sub(s), nil
}
