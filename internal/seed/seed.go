package seed

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
	"github.com/pendlerapp-dev/schichtplan/backend/internal/importer"
	"github.com/pendlerapp-dev/schichtplan/backend/internal/repository"
)

// demoPatternDays is a plausible 15 week rotation: blocks of morning,
// afternoon and night weeks with the free days drifting through the week.
var demoPatternDays = map[int][7]string{
	1:  {"morning", "morning", "morning", "morning", "morning", "off", "off"},
	2:  {"morning", "morning", "morning", "morning", "off", "morning", "off"},
	3:  {"off", "morning", "morning", "morning", "morning", "morning", "off"},
	4:  {"afternoon", "afternoon", "afternoon", "afternoon", "afternoon", "off", "off"},
	5:  {"afternoon", "afternoon", "afternoon", "off", "afternoon", "afternoon", "off"},
	6:  {"off", "afternoon", "afternoon", "afternoon", "afternoon", "off", "afternoon"},
	7:  {"night", "night", "night", "night", "night", "off", "off"},
	8:  {"night", "night", "night", "off", "off", "night", "night"},
	9:  {"off", "off", "night", "night", "night", "night", "night"},
	10: {"morning", "morning", "afternoon", "afternoon", "night", "off", "off"},
	11: {"morning", "afternoon", "afternoon", "night", "night", "off", "off"},
	12: {"off", "morning", "morning", "afternoon", "afternoon", "night", "off"},
	13: {"night", "off", "morning", "morning", "afternoon", "afternoon", "off"},
	14: {"afternoon", "night", "night", "off", "morning", "morning", "off"},
	15: {"off", "off", "off", "off", "off", "off", "off"},
}

// SeedDemoData fills an empty database with two positions, the full rotation
// table and one imported annual plan so the API is explorable right away.
func SeedDemoData(r *repository.Repository, cycleLength int, actorID int64) {
	fahrdienst := &domain.Position{
		Name:       "Fahrdienst",
		Family:     domain.FamilyPattern,
		CycleWeeks: cycleRange(cycleLength),
	}
	if err := r.CreatePosition(fahrdienst); err != nil {
		slog.Error("unable to create the pattern position", "error", err)
		return
	}

	werkstatt := &domain.Position{
		Name:       "Werkstatt",
		Family:     domain.FamilyTemplate,
		CycleWeeks: cycleRange(cycleLength),
	}
	if err := r.CreatePosition(werkstatt); err != nil {
		slog.Error("unable to create the template position", "error", err)
		return
	}

	for index := 1; index <= cycleLength; index++ {
		days, ok := demoPatternDays[index]
		if !ok {
			days = demoPatternDays[15]
		}

		pattern := &domain.RotationPattern{
			RotationIndex:  index,
			Days:           days,
			MorningStart:   "06:00",
			MorningEnd:     "14:00",
			AfternoonStart: "14:00",
			AfternoonEnd:   "22:00",
			NightStart:     "22:00",
			NightEnd:       "06:00",
		}
		if err := r.CreateRotationPattern(pattern); err != nil {
			slog.Error("unable to create a rotation pattern", "error", err, "index", index)
			return
		}
		if err := r.ActivateRotationPattern(pattern.ID); err != nil {
			slog.Error("unable to activate a rotation pattern", "error", err, "index", index)
			return
		}
	}

	imp := importer.New(r, cycleLength)
	result, err := imp.Import(demoAnnualPlan(cycleLength), werkstatt.Name, actorID)
	if err != nil {
		slog.Error("unable to import the demo annual plan", "error", err)
		return
	}

	slog.Info("demo data seeded",
		"positions", 2,
		"patterns", cycleLength,
		"templateRows", result.RecordsProcessed,
	)
}

// SeedAssignments anchors every worker without an active assignment in the
// rotation, spreading them over the cycle starting from this week's Monday.
func SeedAssignments(r *repository.Repository, cycleLength int) {
	users, err := r.GetAllUsers()
	if err != nil {
		slog.Error("unable to list users", "error", err)
		return
	}

	positions, err := r.GetAllPositions()
	if err != nil || len(positions) == 0 {
		slog.Error("unable to list positions, seed demo data first", "error", err)
		return
	}

	monday := time.Now()
	for monday.Weekday() != time.Monday {
		monday = monday.AddDate(0, 0, -1)
	}
	monday = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)

	cnt := 0
	for i, user := range users {
		if user.Role != domain.RoleWorker {
			continue
		}
		if existing, err := r.GetActiveAssignment(user.ID); err == nil && existing != nil {
			continue
		}

		assignment := &domain.WorkerAssignment{
			UserID:         user.ID,
			PositionID:     positions[i%len(positions)].ID,
			ReferenceDate:  monday,
			ReferenceIndex: i%cycleLength + 1,
		}
		if err := r.ReplaceAssignment(assignment); err != nil {
			slog.Error("unable to create an assignment", "error", err, "user", user.Username)
			continue
		}
		cnt++
	}

	slog.Info("assignments seeded", "count", cnt)
}

// demoAnnualPlan builds a grid in the upload format: group headers in the
// first row, one "KWnn" keyed row per calendar week.
func demoAnnualPlan(cycleLength int) [][]string {
	cellCycle := []string{"06:00 - 14:00", "14:00 - 22:00", "22:00 - 06:00", "OFF"}

	header := []string{"Kalenderwoche"}
	for index := 1; index <= cycleLength; index++ {
		header = append(header, fmt.Sprintf("Woche %d", index))
	}

	grid := [][]string{header}
	for week := 1; week <= 52; week++ {
		row := []string{fmt.Sprintf("KW%02d", week)}
		for index := 1; index <= cycleLength; index++ {
			row = append(row, cellCycle[(week+index)%len(cellCycle)])
		}
		grid = append(grid, row)
	}

	return grid
}

func cycleRange(cycleLength int) []int32 {
	weeks := make([]int32, 0, cycleLength)
	for i := 1; i <= cycleLength; i++ {
		weeks = append(weeks, int32(i))
	}
	return weeks
}
