package importer

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	positions    map[string]*domain.Position
	replaced     map[int64][]*domain.ShiftTemplate
	logs         []*domain.ImportLog
	replaceErr   error
	replaceCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		positions: make(map[string]*domain.Position),
		replaced:  make(map[int64][]*domain.ShiftTemplate),
	}
}

func (s *fakeStore) GetPositionByName(name string) (*domain.Position, error) {
	return s.positions[name], nil
}

func (s *fakeStore) ReplaceShiftTemplates(positionID int64, rows []*domain.ShiftTemplate) ([]int64, error) {
	s.replaceCalls++
	if s.replaceErr != nil {
		return nil, s.replaceErr
	}
	s.replaced[positionID] = rows
	ids := make([]int64, len(rows))
	for i := range rows {
		ids[i] = int64(i + 1)
	}
	return ids, nil
}

func (s *fakeStore) CreateImportLog(log *domain.ImportLog) error {
	s.logs = append(s.logs, log)
	return nil
}

func validGrid() [][]string {
	return [][]string{
		{"Kalenderwoche", "Woche 1", "Woche 2", "Woche 3"},
		{"KW01", "06:00 - 14:00", "14:00 - 22:00", "22:00 - 06:00"},
		{"KW02", "OFF", "06:00 - 14:00", ""},
	}
}

func TestValidateAcceptsWellFormedGrid(t *testing.T) {
	result := Validate(validGrid(), 15)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, 2, result.Summary.Weeks)
	assert.Equal(t, 3, result.Summary.Groups)
	assert.Equal(t, 6, result.Summary.Cells)
	assert.Equal(t, 2, result.Summary.OffCells)
}

func TestValidateCollectsStructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		grid [][]string
		want string
	}{
		{
			"too small",
			[][]string{{"Kalenderwoche", "Woche 1"}},
			"grid must contain a header row",
		},
		{
			"bad group header",
			[][]string{{"", "Gruppe 1"}, {"KW01", "OFF"}},
			"does not match the rotation group naming",
		},
		{
			"rotation index above the cycle",
			[][]string{{"", "Woche 16"}, {"KW01", "OFF"}},
			"outside [1,15]",
		},
		{
			"bad week key",
			[][]string{{"", "Woche 1"}, {"KW54", "OFF"}},
			"does not match KW01..KW53",
		},
		{
			"week key without padding",
			[][]string{{"", "Woche 1"}, {"KW1", "OFF"}},
			"does not match KW01..KW53",
		},
		{
			"duplicate week",
			[][]string{{"", "Woche 1"}, {"KW01", "OFF"}, {"KW01", "OFF"}},
			"duplicate week key",
		},
		{
			"row overflows the header",
			[][]string{{"", "Woche 1"}, {"KW01", "OFF", "OFF"}},
			"more cells than rotation group columns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.grid, 15)
			assert.False(t, result.IsValid)
			require.NotEmpty(t, result.Errors)
			assert.Contains(t, strings.Join(result.Errors, "\n"), tt.want)
		})
	}
}

func TestValidateWarnsWithoutBlocking(t *testing.T) {
	grid := [][]string{
		{"Kalenderwoche", "Woche 1"},
		{"KW01", "6am to 2pm"},
		{"KW03", "06:00 - 14:00"},
	}

	result := Validate(grid, 15)

	assert.True(t, result.IsValid)
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], "treated as a day off")
	assert.Contains(t, result.Warnings[1], "missing weeks: KW02")
}

func TestTransform(t *testing.T) {
	rows := Transform(validGrid(), 42)
	require.Len(t, rows, 6)

	byKey := make(map[string]*domain.ShiftTemplate)
	for _, row := range rows {
		assert.Equal(t, int64(42), row.PositionID)
		byKey[fmt.Sprintf("%d-%d", row.ISOWeek, row.RotationIndex)] = row
	}

	morning := byKey["1-1"]
	require.NotNil(t, morning)
	for day := 0; day < 5; day++ {
		assert.Equal(t, "06:00-14:00", morning.Days[day])
		assert.Equal(t, string(domain.ShiftMorning), morning.Labels[day])
	}
	assert.Equal(t, domain.TemplateOff, morning.Days[5])
	assert.Equal(t, domain.TemplateOff, morning.Days[6])

	night := byKey["1-3"]
	require.NotNil(t, night)
	assert.Equal(t, "22:00-06:00", night.Days[0])
	assert.Equal(t, string(domain.ShiftNight), night.Labels[0])

	// Explicit OFF and blank cells both become all-off rows.
	for _, key := range []string{"2-1", "2-3"} {
		row := byKey[key]
		require.NotNil(t, row)
		for day := 0; day < 7; day++ {
			assert.Equal(t, domain.TemplateOff, row.Days[day])
			assert.Empty(t, row.Labels[day])
		}
	}
}

func TestImportReplacesAndLogs(t *testing.T) {
	store := newFakeStore()
	store.positions["Werkstatt"] = &domain.Position{ID: 42, Name: "Werkstatt", Family: domain.FamilyTemplate}

	imp := New(store, 15)
	result, err := imp.Import(validGrid(), "Werkstatt", 9)
	require.NoError(t, err)

	assert.Equal(t, 6, result.RecordsProcessed)
	assert.Len(t, result.ScheduleIDs, 6)
	assert.Len(t, store.replaced[42], 6)

	require.Len(t, store.logs, 1)
	log := store.logs[0]
	assert.Equal(t, int64(9), log.ActorID)
	assert.Equal(t, domain.ImportStatusSuccess, log.Status)
	assert.Equal(t, 6, log.RecordsProcessed)
}

func TestImportRejectsInvalidGridWithoutWriting(t *testing.T) {
	store := newFakeStore()
	store.positions["Werkstatt"] = &domain.Position{ID: 42, Name: "Werkstatt"}

	grid := validGrid()
	grid[2][0] = "KW01" // duplicate week key

	imp := New(store, 15)
	_, err := imp.Import(grid, "Werkstatt", 9)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Errors)

	// Fail closed: nothing replaced, but the attempt is on record.
	assert.Equal(t, 0, store.replaceCalls)
	require.Len(t, store.logs, 1)
	assert.Equal(t, domain.ImportStatusFailed, store.logs[0].Status)
}

func TestImportRejectsUnknownPosition(t *testing.T) {
	store := newFakeStore()

	imp := New(store, 15)
	_, err := imp.Import(validGrid(), "Niemand", 9)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "does not exist")
	assert.Equal(t, 0, store.replaceCalls)
}

func TestImportRejectsEmptyPositionName(t *testing.T) {
	store := newFakeStore()

	imp := New(store, 15)
	_, err := imp.Import(validGrid(), "  ", 9)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, store.replaceCalls)
	require.Len(t, store.logs, 1)
	assert.Equal(t, domain.ImportStatusFailed, store.logs[0].Status)
}

func TestImportSurfacesStoreErrors(t *testing.T) {
	store := newFakeStore()
	store.positions["Werkstatt"] = &domain.Position{ID: 42, Name: "Werkstatt"}
	store.replaceErr = errors.New("connection lost")

	imp := New(store, 15)
	_, err := imp.Import(validGrid(), "Werkstatt", 9)

	require.Error(t, err)
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))

	require.Len(t, store.logs, 1)
	assert.Equal(t, domain.ImportStatusFailed, store.logs[0].Status)
}
