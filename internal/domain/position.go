package domain

import "time"

type PositionFamily string

const (
	// FamilyPattern positions derive their shifts from the shared
	// per-rotation-index weekday table plus fixed shift-type clock times.
	FamilyPattern PositionFamily = "pattern"
	// FamilyTemplate positions carry explicit per-week time templates
	// keyed by ISO calendar week.
	FamilyTemplate PositionFamily = "template"
)

type Position struct {
	ID     int64          `json:"id"`
	Name   string         `json:"name"`
	Family PositionFamily `json:"family"`
	// CycleWeeks lists the rotation indices this position takes part in.
	CycleWeeks []int32   `json:"cycleWeeks"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`
}
