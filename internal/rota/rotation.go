package rota

import (
	"fmt"
	"time"
)

// Reference anchors the rotation cycle: on Date the active rotation index
// was Index.
type Reference struct {
	Date  time.Time
	Index int
}

// WeekResolution is the outcome of resolving the rotation index for a date.
type WeekResolution struct {
	Index     int       `json:"index"`
	WeekStart time.Time `json:"weekStart"`
	WeekEnd   time.Time `json:"weekEnd"`
}

// ResolveIndex computes the rotation index ("Woche") active on the target
// date. Both dates are normalized to the Monday of their week first; the
// cycle is continuous across year boundaries and target dates before the
// reference date are valid.
func ResolveIndex(ref Reference, target time.Time, cycleLength int) (WeekResolution, error) {
	if cycleLength <= 0 {
		return WeekResolution{}, fmt.Errorf("rota: invalid cycle length %d", cycleLength)
	}
	if ref.Index < 1 || ref.Index > cycleLength {
		return WeekResolution{}, fmt.Errorf("rota: reference index %d outside [1,%d]", ref.Index, cycleLength)
	}

	refMonday := MondayOf(ref.Date)
	targetMonday := MondayOf(target)

	// Both ends are Monday midnight, so the difference is an exact number
	// of weeks. Computing in UTC keeps DST transitions out of the division.
	days := int(toUTCDate(targetMonday).Sub(toUTCDate(refMonday)).Hours() / 24)
	weeksElapsed := days / 7

	// The double mod keeps the result in [1,N] for negative weeksElapsed too.
	index := ((ref.Index-1+weeksElapsed)%cycleLength+cycleLength)%cycleLength + 1

	return WeekResolution{
		Index:     index,
		WeekStart: targetMonday,
		WeekEnd:   targetMonday.AddDate(0, 0, 6),
	}, nil
}

func toUTCDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
