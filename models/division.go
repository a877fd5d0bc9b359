package models

import "time"

// DivisionStatus tracks the schedule lifecycle of a division.
type DivisionStatus string

const (
	DivisionStatusDraft     DivisionStatus = "draft"
	DivisionStatusScheduled DivisionStatus = "scheduled"
	DivisionStatusCompleted DivisionStatus = "completed"
)

// Division is a competitive bracket of a tournament. Its teams are
// partitioned into pools when a schedule is generated.
type Division struct {
	ID           int            `json:"id" db:"id"`
	TournamentID int            `json:"tournament_id" db:"tournament_id"`
	Name         string         `json:"name" db:"name"`
	Status       DivisionStatus `json:"status" db:"status"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`

	Teams []Team `json:"teams,omitempty" db:"-"`
	Pools []Pool `json:"pools,omitempty" db:"-"`
}
