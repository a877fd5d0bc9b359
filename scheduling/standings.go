package scheduling

import (
	"sort"

	"github.com/piotronm/tourney-backend-sub001/models"
)

// ComputeStandings aggregates completed matches of one pool into ranked
// per-team records. Matches in any other status, or belonging to another
// pool, or referencing teams outside the pool are ignored. Every pool member
// gets a row, including teams with no completed matches yet.
//
// The side with the strictly higher score is credited a win, the other a
// loss. An equal-score completed match credits neither side with a result
// but still counts toward both teams' points.
//
// Ordering: wins desc, point differential desc, points for desc, team ID asc
// as the final deterministic tiebreak.
func ComputeStandings(pool Pool, matches []Match) []StandingsRow {
	rows := make(map[int]*StandingsRow, len(pool.TeamIDs))
	for _, id := range pool.TeamIDs {
		rows[id] = &StandingsRow{TeamID: id}
	}

	for _, m := range matches {
		if m.PoolID != pool.ID || m.Status != models.MatchStatusCompleted {
			continue
		}
		if m.ScoreA == nil || m.ScoreB == nil {
			continue
		}
		a, okA := rows[m.TeamAID]
		b, okB := rows[m.TeamBID]
		if !okA || !okB {
			continue
		}

		a.PointsFor += *m.ScoreA
		a.PointsAgainst += *m.ScoreB
		b.PointsFor += *m.ScoreB
		b.PointsAgainst += *m.ScoreA

		switch {
		case *m.ScoreA > *m.ScoreB:
			a.Wins++
			b.Losses++
		case *m.ScoreB > *m.ScoreA:
			b.Wins++
			a.Losses++
		}
	}

	out := make([]StandingsRow, 0, len(pool.TeamIDs))
	for _, id := range pool.TeamIDs {
		row := rows[id]
		row.PointDiff = row.PointsFor - row.PointsAgainst
		out = append(out, *row)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		if out[i].PointDiff != out[j].PointDiff {
			return out[i].PointDiff > out[j].PointDiff
		}
		if out[i].PointsFor != out[j].PointsFor {
			return out[i].PointsFor > out[j].PointsFor
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out
}
