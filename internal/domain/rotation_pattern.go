package domain

import "time"

type ShiftType string

const (
	ShiftMorning   ShiftType = "morning"
	ShiftAfternoon ShiftType = "afternoon"
	ShiftNight     ShiftType = "night"
)

// DayOff is the weekday cell value marking an explicit free day, both in
// rotation patterns and in shift templates (templates store it as "OFF").
const DayOff = "off"

// RotationPattern holds one row of the fixed rotation table: the weekday
// shift-type tokens for a single rotation index plus the clock times shared
// by all cells of that pattern. Days[0] is Monday, Days[6] is Sunday.
type RotationPattern struct {
	ID             int64     `json:"id"`
	RotationIndex  int       `json:"rotationIndex"`
	Days           [7]string `json:"days"`
	MorningStart   string    `json:"morningStart"`
	MorningEnd     string    `json:"morningEnd"`
	AfternoonStart string    `json:"afternoonStart"`
	AfternoonEnd   string    `json:"afternoonEnd"`
	NightStart     string    `json:"nightStart"`
	NightEnd       string    `json:"nightEnd"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	Version        int32     `json:"-"`
}

// TimesFor returns the clock times the pattern assigns to a shift type.
func (p *RotationPattern) TimesFor(t ShiftType) (string, string, bool) {
	switch t {
	case ShiftMorning:
		return p.MorningStart, p.MorningEnd, true
	case ShiftAfternoon:
		return p.AfternoonStart, p.AfternoonEnd, true
	case ShiftNight:
		return p.NightStart, p.NightEnd, true
	default:
		return "", "", false
	}
}
