package rota

import (
	"fmt"
	"time"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
)

// Shift is a resolved concrete shift before persistence.
type Shift struct {
	Start string
	End   string
	Type  domain.ShiftType
}

// PatternStore reads active rotation pattern rows. Implementations return
// (nil, nil) when no active row exists for the index.
type PatternStore interface {
	GetActivePattern(rotationIndex int) (*domain.RotationPattern, error)
}

// TemplateStore reads shift template rows. Implementations return (nil, nil)
// when no row exists for the key, which the engine treats as "no data".
type TemplateStore interface {
	GetTemplate(positionID int64, rotationIndex int, isoWeek int) (*domain.ShiftTemplate, error)
}

// ScheduleSource resolves the shift for a single calendar day given the
// rotation index active in that day's week. A (nil, nil) return means the
// day is free; that is never an error. The two implementations correspond
// to the two scheduling dialects (pattern-based and template-based
// positions) and are selected once per worker, not once per day.
type ScheduleSource interface {
	ResolveDay(date time.Time, rotationIndex int) (*Shift, error)
	Flag() domain.ShiftSource
}

// SourceFor picks the schedule source matching the position's family.
func SourceFor(position *domain.Position, patterns PatternStore, templates TemplateStore) (ScheduleSource, error) {
	switch position.Family {
	case domain.FamilyPattern:
		return &patternSource{store: patterns}, nil
	case domain.FamilyTemplate:
		return &templateSource{store: templates, positionID: position.ID}, nil
	default:
		return nil, fmt.Errorf("rota: unknown position family %q", position.Family)
	}
}
