package rota

import (
	"errors"
	"fmt"
	"time"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
)

// ErrNoAssignment marks a generation request for a worker without an active
// assignment or rotation reference. The whole request fails, nothing partial
// is produced.
var ErrNoAssignment = errors.New("rota: worker has no active assignment")

// Generator walks a date range and resolves zero or one shift per day. It is
// side-effect-free: persisting the returned shifts (as one batched upsert
// keyed by user and date) is the caller's job, which keeps repeated
// generation idempotent.
type Generator struct {
	CycleLength int
	Patterns    PatternStore
	Templates   TemplateStore
}

func NewGenerator(cycleLength int, patterns PatternStore, templates TemplateStore) *Generator {
	return &Generator{
		CycleLength: cycleLength,
		Patterns:    patterns,
		Templates:   templates,
	}
}

// Generate resolves every day from start to end (inclusive) for one worker.
// Days without a pattern or template entry are skipped silently; a missing
// assignment or pattern row aborts the whole range.
func (g *Generator) Generate(assignment *domain.WorkerAssignment, position *domain.Position, start, end time.Time) ([]*domain.GeneratedShift, error) {
	if assignment == nil || !assignment.IsActive {
		return nil, ErrNoAssignment
	}
	if position == nil || position.ID != assignment.PositionID {
		return nil, fmt.Errorf("rota: position does not match assignment")
	}

	first := toUTCDate(start)
	last := toUTCDate(end)
	if last.Before(first) {
		return nil, fmt.Errorf("rota: end date %s before start date %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	source, err := SourceFor(position, g.Patterns, g.Templates)
	if err != nil {
		return nil, err
	}

	ref := Reference{Date: assignment.ReferenceDate, Index: assignment.ReferenceIndex}
	shifts := make([]*domain.GeneratedShift, 0)

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		week, err := ResolveIndex(ref, day, g.CycleLength)
		if err != nil {
			return nil, err
		}

		shift, err := source.ResolveDay(day, week.Index)
		if err != nil {
			return nil, err
		}
		if shift == nil {
			continue
		}

		shifts = append(shifts, &domain.GeneratedShift{
			UserID:     assignment.UserID,
			Date:       day,
			StartTime:  shift.Start,
			EndTime:    shift.End,
			ShiftType:  shift.Type,
			PositionID: position.ID,
			Source:     source.Flag(),
			Notes:      fmt.Sprintf("Woche %d, KW %02d", week.Index, ISOWeek(day)),
		})
	}

	return shifts, nil
}
