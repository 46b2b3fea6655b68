package rota

import (
	"strings"
	"time"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
)

type templateSource struct {
	store      TemplateStore
	positionID int64
}

func (s *templateSource) Flag() domain.ShiftSource {
	return domain.SourceTemplate
}

func (s *templateSource) ResolveDay(date time.Time, rotationIndex int) (*Shift, error) {
	row, err := s.store.GetTemplate(s.positionID, rotationIndex, ISOWeek(date))
	if err != nil {
		return nil, err
	}
	if row == nil {
		// No template data for this week. Distinct from an explicit "OFF"
		// cell, but both resolve to a free day.
		return nil, nil
	}

	day := WeekdayIndex(date)
	cell := strings.TrimSpace(row.Days[day])
	if cell == "" || strings.EqualFold(cell, domain.TemplateOff) {
		return nil, nil
	}

	start, end, err := ParseTimeRange(cell)
	if err != nil {
		// An unparseable cell never produces a shift.
		return nil, nil
	}

	shiftType := ClassifyStart(start)
	if label := row.Labels[day]; label != "" {
		// The stored label is authoritative, the start-hour bucket is only
		// the fallback for rows imported without one.
		shiftType = domain.ShiftType(label)
	}

	return &Shift{Start: start, End: end, Type: shiftType}, nil
}
