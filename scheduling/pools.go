package scheduling

import (
	"fmt"
	"sort"
)

// PoolName derives a pool's display name from its 1-indexed position:
// "Pool A" through "Pool Z" for positions 1-26, "Pool <n>" beyond that.
func PoolName(position int) string {
	if position >= 1 && position <= 26 {
		return fmt.Sprintf("Pool %c", 'A'+position-1)
	}
	return fmt.Sprintf("Pool %d", position)
}

// AssignPools partitions normalized teams into pools under the chosen
// strategy. Empty input yields an empty pool list for both strategies.
func AssignPools(teams []Team, maxPools int, strategy PoolStrategy) []Pool {
	if len(teams) == 0 {
		return []Pool{}
	}
	if strategy == StrategyBalanced {
		return assignBalanced(teams, maxPools)
	}
	return assignRespectInput(teams, maxPools)
}

// assignRespectInput groups teams by their pool hint. Without any hints the
// whole field goes into a single pool. Hint groups are ordered by ascending
// hint value and relabeled sequentially; groups beyond maxPools are dropped,
// which is a documented policy outcome rather than an error.
func assignRespectInput(teams []Team, maxPools int) []Pool {
	hinted := false
	for _, t := range teams {
		if t.PoolHint != nil {
			hinted = true
			break
		}
	}
	if !hinted {
		return []Pool{singlePool(teams)}
	}

	// Teams without a hint in a mixed set fall into group 1.
	groups := make(map[int][]int)
	for _, t := range teams {
		hint := 1
		if t.PoolHint != nil {
			hint = *t.PoolHint
		}
		groups[hint] = append(groups[hint], t.ID)
	}

	hints := make([]int, 0, len(groups))
	for h := range groups {
		hints = append(hints, h)
	}
	sort.Ints(hints)

	if len(hints) > maxPools {
		hints = hints[:maxPools]
	}

	pools := make([]Pool, 0, len(hints))
	for i, h := range hints {
		pools = append(pools, Pool{
			ID:      i + 1,
			Name:    PoolName(i + 1),
			TeamIDs: groups[h],
		})
	}
	return pools
}

// assignBalanced splits teams into contiguous, near-equal pools. Fewer than
// 4 teams always form a single pool; otherwise the pool count is capped at
// half the team count, which guarantees every pool has at least 2 teams.
func assignBalanced(teams []Team, maxPools int) []Pool {
	if len(teams) < 4 {
		return []Pool{singlePool(teams)}
	}

	effective := maxPools
	if half := len(teams) / 2; half < effective {
		effective = half
	}
	numPools := effective
	if numPools < 1 {
		numPools = 1
	}

	base := len(teams) / numPools
	remainder := len(teams) % numPools

	pools := make([]Pool, 0, numPools)
	offset := 0
	for i := 0; i < numPools; i++ {
		size := base
		if i < remainder {
			size++
		}
		ids := make([]int, 0, size)
		for _, t := range teams[offset : offset+size] {
			ids = append(ids, t.ID)
		}
		pools = append(pools, Pool{
			ID:      i + 1,
			Name:    PoolName(i + 1),
			TeamIDs: ids,
		})
		offset += size
	}
	return pools
}

func singlePool(teams []Team) Pool {
	ids := make([]int, 0, len(teams))
	for _, t := range teams {
		ids = append(ids, t.ID)
	}
	return Pool{ID: 1, Name: PoolName(1), TeamIDs: ids}
}
