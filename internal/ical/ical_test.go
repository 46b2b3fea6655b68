package ical

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleShift() *domain.GeneratedShift {
	return &domain.GeneratedShift{
		UserID:    7,
		Date:      time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		StartTime: "06:00",
		EndTime:   "14:00",
		ShiftType: domain.ShiftMorning,
		Notes:     "Woche 5, KW 03",
	}
}

func TestEventTimes(t *testing.T) {
	start, end := EventTimes(sampleShift())
	assert.Equal(t, time.Date(2024, time.January, 15, 6, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.January, 15, 14, 0, 0, 0, time.UTC), end)
}

func TestEventTimesNightShiftRollsOver(t *testing.T) {
	shift := sampleShift()
	shift.StartTime = "22:00"
	shift.EndTime = "06:00"
	shift.ShiftType = domain.ShiftNight

	start, end := EventTimes(shift)
	assert.Equal(t, time.Date(2024, time.January, 15, 22, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.January, 16, 6, 0, 0, 0, time.UTC), end)
}

func TestDocument(t *testing.T) {
	shifts := []*domain.GeneratedShift{sampleShift()}

	doc := Document("Schichtplan", shifts)

	assert.True(t, strings.HasPrefix(doc, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(doc, "END:VCALENDAR\r\n"))
	assert.Contains(t, doc, "X-WR-CALNAME:Schichtplan\r\n")
	assert.Contains(t, doc, "BEGIN:VEVENT\r\n")
	assert.Contains(t, doc, "UID:shift-7-20240115@schichtplan\r\n")
	assert.Contains(t, doc, "DTSTART:20240115T060000Z\r\n")
	assert.Contains(t, doc, "DTEND:20240115T140000Z\r\n")
	assert.Contains(t, doc, "SUMMARY:Frühschicht 06:00-14:00\r\n")

	// The note contains a comma, which TEXT escaping must protect.
	assert.Contains(t, doc, "DESCRIPTION:Dienst 06:00-14:00 (Woche 5\\, KW 03)\r\n")
}

func TestDocumentWithoutShiftsIsStillACalendar(t *testing.T) {
	doc := Document("Schichtplan", nil)

	assert.Contains(t, doc, "VERSION:2.0\r\n")
	assert.NotContains(t, doc, "BEGIN:VEVENT")
}

func TestGoogleCalendarLink(t *testing.T) {
	shift := sampleShift()
	shift.StartTime = "22:00"
	shift.EndTime = "06:00"
	shift.ShiftType = domain.ShiftNight

	link := GoogleCalendarLink(shift)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "calendar.google.com", u.Host)
	assert.Equal(t, "/calendar/render", u.Path)

	q := u.Query()
	assert.Equal(t, "TEMPLATE", q.Get("action"))
	assert.Equal(t, "Nachtschicht 22:00-06:00", q.Get("text"))
	assert.Equal(t, "20240115T220000Z/20240116T060000Z", q.Get("dates"))
	assert.Contains(t, q.Get("details"), "Woche 5")
}

func TestUIDIsStablePerUserAndDate(t *testing.T) {
	a := sampleShift()
	b := sampleShift()
	b.StartTime = "14:00"
	b.EndTime = "22:00"

	// Regenerating a day must update the event, not duplicate it.
	assert.Equal(t, UID(a), UID(b))

	c := sampleShift()
	c.Date = c.Date.AddDate(0, 0, 1)
	assert.NotEqual(t, UID(a), UID(c))
}
