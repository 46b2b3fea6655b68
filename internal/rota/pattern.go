package rota

import (
	"errors"
	"fmt"
	"time"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
)

// ErrNoActivePattern marks a data error: a pattern-based position was asked
// to resolve against a rotation index without an active pattern row.
var ErrNoActivePattern = errors.New("rota: no active rotation pattern")

type patternSource struct {
	store PatternStore
	cache map[int]*domain.RotationPattern
}

func (s *patternSource) Flag() domain.ShiftSource {
	return domain.SourcePattern
}

func (s *patternSource) ResolveDay(date time.Time, rotationIndex int) (*Shift, error) {
	pattern, err := s.lookup(rotationIndex)
	if err != nil {
		return nil, err
	}

	cell := pattern.Days[WeekdayIndex(date)]
	if cell == "" || cell == domain.DayOff {
		// Free day, or a weekday the pattern does not cover at all.
		return nil, nil
	}

	shiftType := domain.ShiftType(cell)
	start, end, ok := pattern.TimesFor(shiftType)
	if !ok {
		return nil, fmt.Errorf("rota: pattern for index %d holds unknown shift type %q", rotationIndex, cell)
	}

	return &Shift{Start: start, End: end, Type: shiftType}, nil
}

// lookup keeps one pattern row per rotation index for the lifetime of the
// source, so a range generation reads each index at most once.
func (s *patternSource) lookup(rotationIndex int) (*domain.RotationPattern, error) {
	if s.cache == nil {
		s.cache = make(map[int]*domain.RotationPattern)
	}
	if pattern, ok := s.cache[rotationIndex]; ok {
		return pattern, nil
	}

	pattern, err := s.store.GetActivePattern(rotationIndex)
	if err != nil {
		return nil, err
	}
	if pattern == nil {
		return nil, fmt.Errorf("%w for index %d", ErrNoActivePattern, rotationIndex)
	}

	s.cache[rotationIndex] = pattern
	return pattern, nil
}
