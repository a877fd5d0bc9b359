package models

import "time"

type MatchStatus string

const (
	MatchStatusPending    MatchStatus = "pending"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
	MatchStatusWalkover   MatchStatus = "walkover"
	MatchStatusForfeit    MatchStatus = "forfeit"
	MatchStatusCancelled  MatchStatus = "cancelled"
)

// ValidMatchStatus reports whether s is one of the recognized match statuses.
func ValidMatchStatus(s MatchStatus) bool {
	switch s {
	case MatchStatusPending, MatchStatusInProgress, MatchStatusCompleted,
		MatchStatusWalkover, MatchStatusForfeit, MatchStatusCancelled:
		return true
	}
	return false
}

// Match is a stored fixture between two teams of the same pool. Pairing
// fields (pool, round, teams, match number) are fixed at generation time;
// only scores, status and slot index change afterwards.
type Match struct {
	ID          int         `json:"id" db:"id"`
	PoolID      int         `json:"pool_id" db:"pool_id"`
	DivisionID  int         `json:"division_id" db:"division_id"`
	Round       int         `json:"round" db:"round"`
	MatchNumber int         `json:"match_number" db:"match_number"`
	TeamAID     int         `json:"team_a_id" db:"team_a_id"`
	TeamBID     int         `json:"team_b_id" db:"team_b_id"`
	ScoreA      *int        `json:"score_a,omitempty" db:"score_a"`
	ScoreB      *int        `json:"score_b,omitempty" db:"score_b"`
	Status      MatchStatus `json:"status" db:"status"`
	SlotIndex   *int        `json:"slot_index,omitempty" db:"slot_index"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`

	// Optional linked data, populated by services when listing.
	TeamA *Team `json:"team_a,omitempty" db:"-"`
	TeamB *Team `json:"team_b,omitempty" db:"-"`
}
