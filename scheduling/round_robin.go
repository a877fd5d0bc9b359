package scheduling

import "github.com/piotronm/tourney-backend-sub001/models"

// byeSlot marks the virtual slot appended when a pool has an odd team count.
const byeSlot = -1

// GenerateFixtures produces the complete round-robin match list for one pool
// using the circle method: slot 0 stays pinned while the remaining slots
// rotate one position per round. The rotation is computed as index arithmetic
// over an immutable base ordering rather than by mutating a slot list, which
// is equivalent to removing the last slot and reinserting it at index 1 after
// each round.
//
// For n teams exactly n*(n-1)/2 matches come out, every unordered pair
// exactly once. Odd pools get a virtual bye slot; a pairing against the bye
// emits no match record, so each team sits out exactly one round. Pools with
// fewer than 2 teams emit nothing.
//
// startingMatchNumber threads the tournament-global numbering across pools:
// the returned next number feeds the following pool's call.
func GenerateFixtures(pool Pool, startingMatchNumber int) ([]Match, int) {
	n := len(pool.TeamIDs)
	if n < 2 {
		return nil, startingMatchNumber
	}

	base := make([]int, n, n+1)
	copy(base, pool.TeamIDs)
	if n%2 == 1 {
		base = append(base, byeSlot)
	}
	total := len(base)
	rounds := total - 1
	perRound := total / 2

	// slotAt resolves the team occupying slot p in round r. Slot 0 is
	// pinned; slots 1..total-1 hold the base ordering shifted right by r.
	slotAt := func(p, r int) int {
		if p == 0 {
			return base[0]
		}
		m := total - 1
		return base[1+((p-1-r)%m+m)%m]
	}

	matches := make([]Match, 0, n*(n-1)/2)
	matchNumber := startingMatchNumber
	for r := 0; r < rounds; r++ {
		for i := 0; i < perRound; i++ {
			a := slotAt(i, r)
			b := slotAt(total-1-i, r)
			if a == byeSlot || b == byeSlot {
				continue
			}
			matches = append(matches, Match{
				ID:          len(matches) + 1,
				PoolID:      pool.ID,
				Round:       r + 1,
				MatchNumber: matchNumber,
				TeamAID:     a,
				TeamBID:     b,
				Status:      models.MatchStatusPending,
			})
			matchNumber++
		}
	}
	return matches, matchNumber
}
