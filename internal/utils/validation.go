package utils

import (
	"fmt"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
	"github.com/pendlerapp-dev/schichtplan/backend/internal/rota"
)

// ValidateRotationPattern checks everything the database schema cannot
// express: clock time formats, day tokens and the cycle bound.
func ValidateRotationPattern(pattern *domain.RotationPattern, cycleLength int) error {
	if pattern.RotationIndex < 1 || pattern.RotationIndex > cycleLength {
		return fmt.Errorf("rotation index %d outside cycle of %d weeks", pattern.RotationIndex, cycleLength)
	}

	ranges := map[string]string{
		"morning":   pattern.MorningStart + " - " + pattern.MorningEnd,
		"afternoon": pattern.AfternoonStart + " - " + pattern.AfternoonEnd,
		"night":     pattern.NightStart + " - " + pattern.NightEnd,
	}
	for name, timeRange := range ranges {
		if !rota.TimeRangePattern.MatchString(timeRange) {
			return fmt.Errorf("invalid %s time range %q, expected HH:MM - HH:MM", name, timeRange)
		}
	}

	for i, day := range pattern.Days {
		switch domain.ShiftType(day) {
		case domain.ShiftMorning, domain.ShiftAfternoon, domain.ShiftNight:
		default:
			if day != domain.DayOff {
				return fmt.Errorf("day %d holds unknown token %q", i, day)
			}
		}
	}

	return nil
}
