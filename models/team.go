package models

import "time"

// Team is a registered entrant of a division. PoolHint is an optional
// organizer-provided grouping wish honored by the respect-input strategy.
type Team struct {
	ID         int       `json:"id" db:"id"`
	DivisionID int       `json:"division_id" db:"division_id"`
	Name       string    `json:"name" db:"name"`
	PoolHint   *int      `json:"pool_hint,omitempty" db:"pool_hint"`
	PoolID     *int      `json:"pool_id,omitempty" db:"pool_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
