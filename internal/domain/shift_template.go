package domain

import "time"

// TemplateOff is the literal cell value for an explicit free day in a shift
// template. A missing template row means "no data" instead, the two cases
// are deliberately kept apart.
const TemplateOff = "OFF"

// ShiftTemplate is one row of the calendar-week-indexed template table:
// explicit "HH:MM-HH:MM" time ranges per weekday for a single
// (position, rotation index, ISO week) combination. Days[0] is Monday.
// Labels carries the stored shift-type token per weekday when known; an
// empty label means the type has to be derived from the start hour.
type ShiftTemplate struct {
	ID            int64     `json:"id"`
	PositionID    int64     `json:"positionId"`
	RotationIndex int       `json:"rotationIndex"`
	ISOWeek       int       `json:"isoWeek"`
	Days          [7]string `json:"days"`
	Labels        [7]string `json:"labels"`
	CreatedAt     time.Time `json:"createdAt"`
}
