package scheduling

import (
	"testing"

	"github.com/piotronm/tourney-backend-sub001/models"
)

func score(v int) *int { return &v }

func completed(poolID, a, b, scoreA, scoreB int) Match {
	return Match{
		PoolID:  poolID,
		TeamAID: a,
		TeamBID: b,
		ScoreA:  score(scoreA),
		ScoreB:  score(scoreB),
		Status:  models.MatchStatusCompleted,
	}
}

func TestStandingsBasicAggregation(t *testing.T) {
	pool := Pool{ID: 1, TeamIDs: []int{1, 2, 3}}
	matches := []Match{
		completed(1, 1, 2, 21, 15),
		completed(1, 2, 3, 21, 18),
	}

	rows := ComputeStandings(pool, matches)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	byTeam := make(map[int]StandingsRow)
	played := map[int]int{1: 1, 2: 2, 3: 1}
	for _, r := range rows {
		byTeam[r.TeamID] = r
		if r.Wins+r.Losses != played[r.TeamID] {
			t.Errorf("team %d: wins+losses = %d, want %d",
				r.TeamID, r.Wins+r.Losses, played[r.TeamID])
		}
		if r.PointDiff != r.PointsFor-r.PointsAgainst {
			t.Errorf("team %d: pointDiff %d != %d - %d",
				r.TeamID, r.PointDiff, r.PointsFor, r.PointsAgainst)
		}
	}

	if byTeam[1].Wins != 1 || byTeam[1].Losses != 0 {
		t.Errorf("team 1 record = %d-%d, want 1-0", byTeam[1].Wins, byTeam[1].Losses)
	}
	if byTeam[2].Wins != 1 || byTeam[2].Losses != 1 {
		t.Errorf("team 2 record = %d-%d, want 1-1", byTeam[2].Wins, byTeam[2].Losses)
	}
	if byTeam[2].PointsFor != 36 || byTeam[2].PointsAgainst != 39 {
		t.Errorf("team 2 points = %d/%d, want 36/39", byTeam[2].PointsFor, byTeam[2].PointsAgainst)
	}
}

func TestStandingsOrdering(t *testing.T) {
	pool := Pool{ID: 1, TeamIDs: []int{1, 2, 3, 4}}
	matches := []Match{
		completed(1, 1, 2, 10, 20), // 2 beats 1 by 10
		completed(1, 3, 4, 30, 15), // 3 beats 4 by 15
	}

	rows := ComputeStandings(pool, matches)
	// 3 and 2 both 1-0; 3 ranks first on point diff (+15 vs +10).
	// 1 and 4 both 0-1; 4's diff (-15) is worse than 1's (-10).
	wantOrder := []int{3, 2, 1, 4}
	for i, r := range rows {
		if r.TeamID != wantOrder[i] {
			t.Errorf("rank %d: team %d, want %d", i+1, r.TeamID, wantOrder[i])
		}
	}
}

func TestStandingsTeamIDFinalTiebreak(t *testing.T) {
	pool := Pool{ID: 1, TeamIDs: []int{2, 1}}
	rows := ComputeStandings(pool, nil)
	if rows[0].TeamID != 1 || rows[1].TeamID != 2 {
		t.Errorf("all-zero rows ordered %d, %d; want ascending by team id",
			rows[0].TeamID, rows[1].TeamID)
	}
}

func TestStandingsIncludesIdleTeams(t *testing.T) {
	pool := Pool{ID: 1, TeamIDs: []int{1, 2, 3}}
	rows := ComputeStandings(pool, []Match{completed(1, 1, 2, 5, 3)})
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3 (idle team included)", len(rows))
	}
	// Winless teams sort by point diff: the idle team's 0 ranks above
	// the loser's -2.
	wantOrder := []int{1, 3, 2}
	for i, r := range rows {
		if r.TeamID != wantOrder[i] {
			t.Errorf("rank %d: team %d, want %d", i+1, r.TeamID, wantOrder[i])
		}
	}
	idle := rows[1]
	if idle.Wins != 0 || idle.Losses != 0 || idle.PointsFor != 0 || idle.PointsAgainst != 0 {
		t.Errorf("idle team row not all-zero: %+v", idle)
	}
}

func TestStandingsIgnoresNonCompletedAndForeign(t *testing.T) {
	pool := Pool{ID: 1, TeamIDs: []int{1, 2}}

	pending := completed(1, 1, 2, 9, 9)
	pending.Status = models.MatchStatusPending

	walkover := completed(1, 1, 2, 21, 0)
	walkover.Status = models.MatchStatusWalkover

	otherPool := completed(2, 1, 2, 21, 5)

	rows := ComputeStandings(pool, []Match{pending, walkover, otherPool})
	for _, r := range rows {
		if r.Wins != 0 || r.Losses != 0 || r.PointsFor != 0 {
			t.Errorf("team %d accumulated from ignored matches: %+v", r.TeamID, r)
		}
	}
}

func TestStandingsEqualScoreCountsPointsOnly(t *testing.T) {
	pool := Pool{ID: 1, TeamIDs: []int{1, 2}}
	rows := ComputeStandings(pool, []Match{completed(1, 1, 2, 15, 15)})
	for _, r := range rows {
		if r.Wins != 0 || r.Losses != 0 {
			t.Errorf("team %d credited a result from an equal-score match", r.TeamID)
		}
		if r.PointsFor != 15 || r.PointsAgainst != 15 {
			t.Errorf("team %d points = %d/%d, want 15/15", r.TeamID, r.PointsFor, r.PointsAgainst)
		}
	}
}
