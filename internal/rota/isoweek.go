package rota

import "time"

// MondayOf returns the Monday of the ISO week containing t, truncated to
// midnight in t's location. ISO weeks start on Monday.
func MondayOf(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// ISOWeek returns the ISO-8601 week number (1..53) of t. The week containing
// the year's first Thursday is week 1, so the calculation shifts t to the
// Thursday of its own week and counts whole weeks from that year's first
// Thursday. Template lookups are keyed by this number, an off-by-one here
// silently assigns wrong shifts.
func ISOWeek(t time.Time) int {
	thursday := MondayOf(t).AddDate(0, 0, 3)

	jan1 := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	firstThursday := jan1.AddDate(0, 0, (int(time.Thursday)-int(jan1.Weekday())+7)%7)

	return (thursday.YearDay()-firstThursday.YearDay())/7 + 1
}

// WeekdayIndex maps a date to its weekday column, 0 = Monday .. 6 = Sunday.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
