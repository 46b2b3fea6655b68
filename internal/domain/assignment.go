package domain

import "time"

// WorkerAssignment anchors a worker in the rotation: on ReferenceDate the
// worker's active rotation index was ReferenceIndex. The anchor is replaced
// wholesale when the employer changes it, never patched.
type WorkerAssignment struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	PositionID     int64     `json:"positionId"`
	ReferenceDate  time.Time `json:"referenceDate"`
	ReferenceIndex int       `json:"referenceIndex"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}
