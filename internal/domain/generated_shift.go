package domain

import "time"

type ShiftSource string

const (
	SourcePattern  ShiftSource = "pattern"
	SourceTemplate ShiftSource = "template"
)

// GeneratedShift is one concrete resolved shift for one worker on one date.
// At most one row exists per (UserID, Date); regeneration overwrites it.
type GeneratedShift struct {
	ID         int64       `json:"id"`
	UserID     int64       `json:"userId"`
	Date       time.Time   `json:"date"`
	StartTime  string      `json:"startTime"` // "HH:MM" wall clock
	EndTime    string      `json:"endTime"`
	ShiftType  ShiftType   `json:"shiftType"`
	PositionID int64       `json:"positionId"`
	Source     ShiftSource `json:"source"`
	Notes      string      `json:"notes"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}
