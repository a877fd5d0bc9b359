package models

import "time"

// Pool is a stored subgroup of division teams that play a complete
// round-robin among themselves.
type Pool struct {
	ID         int       `json:"id" db:"id"`
	DivisionID int       `json:"division_id" db:"division_id"`
	Name       string    `json:"name" db:"name"`
	OrderIndex int       `json:"order_index" db:"order_index"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	Teams []Team `json:"teams,omitempty" db:"-"`
}
