package scheduling

import "math"

// AssignSlots orders the full match set in time by assigning increasing slot
// indices, greedily picking at each step the match whose teams have rested
// longest. A team that has not played yet counts as infinitely rested. Ties
// break by first-encountered input order, which keeps the result
// deterministic.
//
// This is a greedy approximation, not a global optimum, and the scan is
// quadratic in match count. At tournament scale (hundreds of matches) that is
// fine. The input slice is not modified; a copy with populated slot indices
// is returned.
func AssignSlots(matches []Match) []Match {
	out := make([]Match, len(matches))
	copy(out, matches)

	lastSlot := make(map[int]int)
	assigned := make([]bool, len(out))

	for current := 0; current < len(out); current++ {
		bestIdx := -1
		bestScore := -1
		for i := range out {
			if assigned[i] {
				continue
			}
			score := minGap(lastSlot, current, out[i].TeamAID, out[i].TeamBID)
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}

		slot := current
		out[bestIdx].SlotIndex = &slot
		assigned[bestIdx] = true
		lastSlot[out[bestIdx].TeamAID] = current
		lastSlot[out[bestIdx].TeamBID] = current
	}
	return out
}

// minGap scores a match by the smaller of its two teams' rest gaps at the
// given slot.
func minGap(lastSlot map[int]int, current, teamA, teamB int) int {
	gap := func(team int) int {
		last, ok := lastSlot[team]
		if !ok {
			return math.MaxInt
		}
		return current - last
	}
	ga, gb := gap(teamA), gap(teamB)
	if ga < gb {
		return ga
	}
	return gb
}
