package importer

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
	"github.com/pendlerapp-dev/schichtplan/backend/internal/rota"
)

var (
	weekKeyPattern  = regexp.MustCompile(`^KW(0[1-9]|[1-4][0-9]|5[0-3])$`)
	groupKeyPattern = regexp.MustCompile(`^Woche\s+([1-9][0-9]?)$`)
)

// Summary describes the shape of a validated annual plan grid.
type Summary struct {
	Weeks    int `json:"weeks"`
	Groups   int `json:"groups"`
	Cells    int `json:"cells"`
	OffCells int `json:"offCells"`
}

// ValidationResult collects everything found while checking a grid. Errors
// are fatal to an import; warnings are reported but do not block it.
type ValidationResult struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Summary  Summary  `json:"summary"`
}

// ValidationError wraps the collected structural errors of a rejected grid.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "importer: invalid annual plan: " + strings.Join(e.Errors, "; ")
}

// Store is the persistence surface the importer writes through.
// GetPositionByName returns (nil, nil) when no position carries the name.
type Store interface {
	GetPositionByName(name string) (*domain.Position, error)
	ReplaceShiftTemplates(positionID int64, rows []*domain.ShiftTemplate) ([]int64, error)
	CreateImportLog(log *domain.ImportLog) error
}

type Importer struct {
	store       Store
	cycleLength int
}

func New(store Store, cycleLength int) *Importer {
	return &Importer{
		store:       store,
		cycleLength: cycleLength,
	}
}

// Result reports a committed import.
type Result struct {
	ScheduleIDs      []int64  `json:"scheduleIds"`
	RecordsProcessed int      `json:"recordsProcessed"`
	Warnings         []string `json:"warnings"`
}

// Validate checks the structure of a raw annual plan grid without touching
// any store. The first row must hold the rotation group headers ("Woche 1"
// .. "Woche N"), every following row an ISO week key ("KW01" .. "KW53")
// plus one cell per group. All errors are collected before returning so the
// caller can show them as one list.
func Validate(grid [][]string, cycleLength int) *ValidationResult {
	result := &ValidationResult{
		Errors:   make([]string, 0),
		Warnings: make([]string, 0),
	}

	if len(grid) < 2 {
		result.Errors = append(result.Errors, "grid must contain a header row and at least one week row")
		return result
	}

	header := grid[0]
	if len(header) < 2 {
		result.Errors = append(result.Errors, "header row must contain at least one rotation group column")
		return result
	}

	// Header cells after the week-key column name the rotation groups.
	groups := make([]int, 0, len(header)-1)
	for _, cell := range header[1:] {
		cell = strings.TrimSpace(cell)
		m := groupKeyPattern.FindStringSubmatch(cell)
		if m == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("column header %q does not match the rotation group naming (\"Woche N\")", cell))
			groups = append(groups, 0)
			continue
		}
		index, _ := strconv.Atoi(m[1])
		if index < 1 || index > cycleLength {
			result.Errors = append(result.Errors, fmt.Sprintf("rotation index %d in column %q outside [1,%d]", index, cell, cycleLength))
		}
		groups = append(groups, index)
	}

	seenWeeks := make(map[int]bool)
	for i, row := range grid[1:] {
		if len(row) == 0 {
			continue
		}
		key := strings.TrimSpace(row[0])
		m := weekKeyPattern.FindStringSubmatch(key)
		if m == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: week key %q does not match KW01..KW53", i+2, key))
			continue
		}
		week, _ := strconv.Atoi(m[1])
		if seenWeeks[week] {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: duplicate week key %q", i+2, key))
			continue
		}
		seenWeeks[week] = true
		result.Summary.Weeks++

		for j, cell := range row[1:] {
			if j >= len(groups) {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: more cells than rotation group columns", i+2))
				break
			}
			cell = strings.TrimSpace(cell)
			result.Summary.Cells++
			if cell == "" || strings.EqualFold(cell, domain.TemplateOff) {
				result.Summary.OffCells++
				continue
			}
			if !rota.TimeRangePattern.MatchString(cell) {
				result.Warnings = append(result.Warnings, fmt.Sprintf("row %d, column %d: cell %q is not a HH:MM-HH:MM range and will be treated as a day off", i+2, j+2, cell))
			}
		}
	}

	result.Summary.Groups = len(groups)

	// Gaps in the covered weeks are worth a warning: a plan usually spans
	// the full year, but a shorter import is still allowed.
	if len(seenWeeks) > 0 {
		minWeek, maxWeek := 54, 0
		for week := range seenWeeks {
			if week < minWeek {
				minWeek = week
			}
			if week > maxWeek {
				maxWeek = week
			}
		}
		missing := make([]string, 0)
		for week := minWeek; week <= maxWeek; week++ {
			if !seenWeeks[week] {
				missing = append(missing, fmt.Sprintf("KW%02d", week))
			}
		}
		sort.Strings(missing)
		if len(missing) > 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("missing weeks: %s", strings.Join(missing, ", ")))
		}
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

// Import validates the grid, transforms it into shift template rows and
// replaces the position's whole template set in one transaction. Nothing is
// written when any structural error exists, and every attempt leaves an
// audit row behind.
func (imp *Importer) Import(grid [][]string, positionName string, actorID int64) (*Result, error) {
	positionName = strings.TrimSpace(positionName)
	if positionName == "" {
		err := &ValidationError{Errors: []string{"position name must not be empty"}}
		imp.logAttempt(actorID, positionName, domain.ImportStatusFailed, 0, err.Errors, nil)
		return nil, err
	}

	validation := Validate(grid, imp.cycleLength)

	position, err := imp.store.GetPositionByName(positionName)
	if err != nil {
		return nil, err
	}
	if position == nil {
		validation.Errors = append(validation.Errors, fmt.Sprintf("position %q does not exist", positionName))
		validation.IsValid = false
	}

	if !validation.IsValid {
		verr := &ValidationError{Errors: validation.Errors}
		imp.logAttempt(actorID, positionName, domain.ImportStatusFailed, 0, validation.Errors, validation.Warnings)
		return nil, verr
	}

	rows := Transform(grid, position.ID)

	ids, err := imp.store.ReplaceShiftTemplates(position.ID, rows)
	if err != nil {
		imp.logAttempt(actorID, positionName, domain.ImportStatusFailed, 0, []string{err.Error()}, validation.Warnings)
		return nil, err
	}

	imp.logAttempt(actorID, positionName, domain.ImportStatusSuccess, len(rows), nil, validation.Warnings)

	return &Result{
		ScheduleIDs:      ids,
		RecordsProcessed: len(rows),
		Warnings:         validation.Warnings,
	}, nil
}

// Transform turns a structurally valid grid into shift template rows, one
// per (week, rotation group) cell. The annual plan stores a single time
// range per cell which applies to the five workdays; Saturday and Sunday
// stay off. Cells that are blank, "OFF" or malformed become rows with all
// days off, keeping the explicit-off case distinct from a missing row.
func Transform(grid [][]string, positionID int64) []*domain.ShiftTemplate {
	header := grid[0]
	groups := make([]int, 0, len(header)-1)
	for _, cell := range header[1:] {
		m := groupKeyPattern.FindStringSubmatch(strings.TrimSpace(cell))
		index, _ := strconv.Atoi(m[1])
		groups = append(groups, index)
	}

	rows := make([]*domain.ShiftTemplate, 0, (len(grid)-1)*len(groups))

	for _, row := range grid[1:] {
		if len(row) == 0 {
			continue
		}
		m := weekKeyPattern.FindStringSubmatch(strings.TrimSpace(row[0]))
		week, _ := strconv.Atoi(m[1])

		for j, index := range groups {
			template := &domain.ShiftTemplate{
				PositionID:    positionID,
				RotationIndex: index,
				ISOWeek:       week,
			}
			for day := range template.Days {
				template.Days[day] = domain.TemplateOff
			}

			cell := ""
			if j+1 < len(row) {
				cell = strings.TrimSpace(row[j+1])
			}

			if start, end, err := rota.ParseTimeRange(cell); err == nil {
				label := string(rota.ClassifyStart(start))
				for day := 0; day < 5; day++ {
					template.Days[day] = start + "-" + end
					template.Labels[day] = label
				}
			}

			rows = append(rows, template)
		}
	}

	return rows
}

func (imp *Importer) logAttempt(actorID int64, positionName string, status domain.ImportStatus, records int, errs, warnings []string) {
	metadata, _ := json.Marshal(map[string]any{
		"errors":   errs,
		"warnings": warnings,
	})

	log := &domain.ImportLog{
		ActorID:          actorID,
		Label:            fmt.Sprintf("annual plan import: %s", positionName),
		Status:           status,
		RecordsProcessed: records,
		Metadata:         string(metadata),
	}

	// The audit row is best effort; a failed log write must not mask the
	// import outcome.
	_ = imp.store.CreateImportLog(log)
}
