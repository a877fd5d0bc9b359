package models

// StandingsRow is one team's aggregated record within a pool, computed from
// completed matches only. Rows are ordered by wins, then point differential,
// then points for, then team id.
type StandingsRow struct {
	TeamID        int `json:"team_id"`
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	PointsFor     int `json:"points_for"`
	PointsAgainst int `json:"points_against"`
	PointDiff     int `json:"point_diff"`

	Team *Team `json:"team,omitempty"`
}
