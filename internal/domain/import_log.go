package domain

import "time"

type ImportStatus string

const (
	ImportStatusSuccess ImportStatus = "success"
	ImportStatusFailed  ImportStatus = "failed"
)

// ImportLog is the append-only audit row written for every annual plan
// import attempt.
type ImportLog struct {
	ID               int64        `json:"id"`
	ActorID          int64        `json:"actorId"`
	Label            string       `json:"label"`
	Status           ImportStatus `json:"status"`
	RecordsProcessed int          `json:"recordsProcessed"`
	Metadata         string       `json:"metadata"`
	CreatedAt        time.Time    `json:"createdAt"`
}
