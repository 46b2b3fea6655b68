// Package ical renders generated shifts into calendar interchange formats:
// a full ICS document and a single-event Google Calendar deep link. Pure
// formatting, no network calls.
package ical

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
)

const timestampLayout = "20060102T150405Z"

var shiftTitles = map[domain.ShiftType]string{
	domain.ShiftMorning:   "Frühschicht",
	domain.ShiftAfternoon: "Spätschicht",
	domain.ShiftNight:     "Nachtschicht",
}

// EventTimes combines a shift's date with its wall-clock times. A night
// shift whose end is not after its start rolls the end over to the next
// calendar day.
func EventTimes(shift *domain.GeneratedShift) (time.Time, time.Time) {
	start := combine(shift.Date, shift.StartTime)
	end := combine(shift.Date, shift.EndTime)
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end
}

func combine(date time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// Document renders one VEVENT per shift wrapped in a single VCALENDAR.
func Document(calendarName string, shifts []*domain.GeneratedShift) string {
	var b strings.Builder

	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//schichtplan//backend//DE\r\n")
	b.WriteString("CALSCALE:GREGORIAN\r\n")
	b.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escape(calendarName)))

	stamp := time.Now().UTC().Format(timestampLayout)

	for _, shift := range shifts {
		start, end := EventTimes(shift)

		b.WriteString("BEGIN:VEVENT\r\n")
		b.WriteString(fmt.Sprintf("UID:%s\r\n", UID(shift)))
		b.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", stamp))
		b.WriteString(fmt.Sprintf("DTSTART:%s\r\n", start.Format(timestampLayout)))
		b.WriteString(fmt.Sprintf("DTEND:%s\r\n", end.Format(timestampLayout)))
		b.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escape(Summary(shift))))
		b.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escape(Description(shift))))
		b.WriteString("END:VEVENT\r\n")
	}

	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

// GoogleCalendarLink builds the add-single-event deep link for one shift.
func GoogleCalendarLink(shift *domain.GeneratedShift) string {
	start, end := EventTimes(shift)

	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", Summary(shift))
	params.Set("dates", start.Format(timestampLayout)+"/"+end.Format(timestampLayout))
	params.Set("details", Description(shift))

	return "https://calendar.google.com/calendar/render?" + params.Encode()
}

// UID is stable per (user, date), so re-exported documents update events
// instead of duplicating them.
func UID(shift *domain.GeneratedShift) string {
	return fmt.Sprintf("shift-%d-%s@schichtplan", shift.UserID, shift.Date.Format("20060102"))
}

func Summary(shift *domain.GeneratedShift) string {
	title, ok := shiftTitles[shift.ShiftType]
	if !ok {
		title = "Schicht"
	}
	return fmt.Sprintf("%s %s-%s", title, shift.StartTime, shift.EndTime)
}

func Description(shift *domain.GeneratedShift) string {
	if shift.Notes == "" {
		return fmt.Sprintf("Dienst %s-%s", shift.StartTime, shift.EndTime)
	}
	return fmt.Sprintf("Dienst %s-%s (%s)", shift.StartTime, shift.EndTime, shift.Notes)
}

// escape applies the TEXT escaping rules of RFC 5545.
func escape(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return replacer.Replace(s)
}
