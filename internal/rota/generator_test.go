package rota

import (
	"fmt"
	"testing"
	"time"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePatternStore struct {
	patterns map[int]*domain.RotationPattern
	calls    int
}

func (s *fakePatternStore) GetActivePattern(rotationIndex int) (*domain.RotationPattern, error) {
	s.calls++
	return s.patterns[rotationIndex], nil
}

type fakeTemplateStore struct {
	templates map[string]*domain.ShiftTemplate
}

func (s *fakeTemplateStore) GetTemplate(positionID int64, rotationIndex, isoWeek int) (*domain.ShiftTemplate, error) {
	return s.templates[fmt.Sprintf("%d-%d-%d", positionID, rotationIndex, isoWeek)], nil
}

func standardPattern(index int, days [7]string) *domain.RotationPattern {
	return &domain.RotationPattern{
		RotationIndex:  index,
		Days:           days,
		MorningStart:   "06:00",
		MorningEnd:     "14:00",
		AfternoonStart: "14:00",
		AfternoonEnd:   "22:00",
		NightStart:     "22:00",
		NightEnd:       "06:00",
		IsActive:       true,
	}
}

func patternAssignment() (*domain.WorkerAssignment, *domain.Position) {
	assignment := &domain.WorkerAssignment{
		UserID:         7,
		PositionID:     1,
		ReferenceDate:  date(2024, time.January, 1),
		ReferenceIndex: 3,
		IsActive:       true,
	}
	position := &domain.Position{ID: 1, Name: "Fahrdienst", Family: domain.FamilyPattern}
	return assignment, position
}

func TestGeneratePatternWeek(t *testing.T) {
	// Two weeks after the reference the rotation sits at index 5.
	patterns := &fakePatternStore{patterns: map[int]*domain.RotationPattern{
		5: standardPattern(5, [7]string{"morning", "morning", "afternoon", "off", "night", "off", "off"}),
	}}
	assignment, position := patternAssignment()
	g := NewGenerator(15, patterns, &fakeTemplateStore{})

	shifts, err := g.Generate(assignment, position, date(2024, time.January, 15), date(2024, time.January, 21))
	require.NoError(t, err)
	require.Len(t, shifts, 4)

	monday := shifts[0]
	assert.Equal(t, int64(7), monday.UserID)
	assert.Equal(t, date(2024, time.January, 15), monday.Date)
	assert.Equal(t, "06:00", monday.StartTime)
	assert.Equal(t, "14:00", monday.EndTime)
	assert.Equal(t, domain.ShiftMorning, monday.ShiftType)
	assert.Equal(t, domain.SourcePattern, monday.Source)
	assert.Equal(t, "Woche 5, KW 03", monday.Notes)

	assert.Equal(t, domain.ShiftAfternoon, shifts[2].ShiftType)
	assert.Equal(t, date(2024, time.January, 17), shifts[2].Date)

	night := shifts[3]
	assert.Equal(t, date(2024, time.January, 19), night.Date)
	assert.Equal(t, "22:00", night.StartTime)
	assert.Equal(t, "06:00", night.EndTime)
	assert.Equal(t, domain.ShiftNight, night.ShiftType)
}

func TestGenerateCachesPatternLookups(t *testing.T) {
	patterns := &fakePatternStore{patterns: map[int]*domain.RotationPattern{
		3: standardPattern(3, [7]string{"morning", "morning", "morning", "morning", "morning", "off", "off"}),
		4: standardPattern(4, [7]string{"night", "night", "night", "off", "off", "night", "night"}),
	}}
	assignment, position := patternAssignment()
	g := NewGenerator(15, patterns, &fakeTemplateStore{})

	_, err := g.Generate(assignment, position, date(2024, time.January, 1), date(2024, time.January, 14))
	require.NoError(t, err)

	// 14 days over two rotation indices must not mean 14 store reads.
	assert.Equal(t, 2, patterns.calls)
}

func TestGenerateMissingPatternFailsWholeRange(t *testing.T) {
	patterns := &fakePatternStore{patterns: map[int]*domain.RotationPattern{
		3: standardPattern(3, [7]string{"morning", "morning", "morning", "morning", "morning", "off", "off"}),
	}}
	assignment, position := patternAssignment()
	g := NewGenerator(15, patterns, &fakeTemplateStore{})

	// The second week resolves to index 4, which has no active pattern.
	shifts, err := g.Generate(assignment, position, date(2024, time.January, 1), date(2024, time.January, 14))
	assert.ErrorIs(t, err, ErrNoActivePattern)
	assert.Nil(t, shifts)
}

func TestGenerateRejectsBadAssignment(t *testing.T) {
	g := NewGenerator(15, &fakePatternStore{}, &fakeTemplateStore{})
	assignment, position := patternAssignment()

	_, err := g.Generate(nil, position, date(2024, time.January, 1), date(2024, time.January, 7))
	assert.ErrorIs(t, err, ErrNoAssignment)

	inactive := *assignment
	inactive.IsActive = false
	_, err = g.Generate(&inactive, position, date(2024, time.January, 1), date(2024, time.January, 7))
	assert.ErrorIs(t, err, ErrNoAssignment)

	otherPosition := &domain.Position{ID: 99, Family: domain.FamilyPattern}
	_, err = g.Generate(assignment, otherPosition, date(2024, time.January, 1), date(2024, time.January, 7))
	assert.Error(t, err)

	_, err = g.Generate(assignment, position, date(2024, time.January, 7), date(2024, time.January, 1))
	assert.Error(t, err)
}

func TestGenerateTemplateWeek(t *testing.T) {
	row := &domain.ShiftTemplate{
		PositionID:    2,
		RotationIndex: 3,
		ISOWeek:       1,
		Days:          [7]string{"06:00-14:00", "OFF", "", "14:00-22:00", "garbled", "06:00-14:00", "OFF"},
		Labels:        [7]string{"", "", "", "", "", "night", ""},
	}
	templates := &fakeTemplateStore{templates: map[string]*domain.ShiftTemplate{
		"2-3-1": row,
	}}

	assignment := &domain.WorkerAssignment{
		UserID:         7,
		PositionID:     2,
		ReferenceDate:  date(2024, time.January, 1),
		ReferenceIndex: 3,
		IsActive:       true,
	}
	position := &domain.Position{ID: 2, Name: "Werkstatt", Family: domain.FamilyTemplate}
	g := NewGenerator(15, &fakePatternStore{}, templates)

	shifts, err := g.Generate(assignment, position, date(2024, time.January, 1), date(2024, time.January, 7))
	require.NoError(t, err)
	require.Len(t, shifts, 3)

	assert.Equal(t, date(2024, time.January, 1), shifts[0].Date)
	assert.Equal(t, domain.ShiftMorning, shifts[0].ShiftType)
	assert.Equal(t, domain.SourceTemplate, shifts[0].Source)

	assert.Equal(t, date(2024, time.January, 4), shifts[1].Date)
	assert.Equal(t, domain.ShiftAfternoon, shifts[1].ShiftType)

	// Saturday carries a stored label which overrides the start-hour bucket.
	assert.Equal(t, date(2024, time.January, 6), shifts[2].Date)
	assert.Equal(t, domain.ShiftNight, shifts[2].ShiftType)
}

func TestGenerateTemplateWithoutDataIsEmpty(t *testing.T) {
	assignment := &domain.WorkerAssignment{
		UserID:         7,
		PositionID:     2,
		ReferenceDate:  date(2024, time.January, 1),
		ReferenceIndex: 1,
		IsActive:       true,
	}
	position := &domain.Position{ID: 2, Family: domain.FamilyTemplate}
	g := NewGenerator(15, &fakePatternStore{}, &fakeTemplateStore{})

	shifts, err := g.Generate(assignment, position, date(2024, time.January, 1), date(2024, time.January, 31))
	require.NoError(t, err)
	assert.Empty(t, shifts)
}

func TestSourceForRejectsUnknownFamily(t *testing.T) {
	_, err := SourceFor(&domain.Position{Family: "weird"}, &fakePatternStore{}, &fakeTemplateStore{})
	assert.Error(t, err)
}
