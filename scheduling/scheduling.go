// Package scheduling is the round-robin scheduling engine: it partitions
// teams into pools, generates a complete fixture list per pool via the circle
// method, optionally orders matches to spread each team's appearances, and
// aggregates reported results into ranked standings.
//
// The engine is pure: it performs no I/O, holds no state between runs, and
// operates only on locally owned copies of its inputs. Identical inputs
// always produce identical output. Team, pool and match IDs are engine-local
// to one run; mapping them to durable identifiers is the caller's job.
package scheduling

import (
	"errors"
	"fmt"

	"github.com/piotronm/tourney-backend-sub001/models"
)

type PoolStrategy string

const (
	StrategyRespectInput PoolStrategy = "respect-input"
	StrategyBalanced     PoolStrategy = "balanced"
)

// DefaultSeed is used when a scheduling request does not carry a seed.
const DefaultSeed uint32 = 42

var (
	ErrNotEnoughTeams  = errors.New("at least 2 teams are required to generate a schedule")
	ErrInvalidMaxPools = errors.New("max pools must be at least 1")
	ErrUnknownStrategy = errors.New("unknown pool strategy")
)

// TeamEntry is one input team as submitted by the caller.
type TeamEntry struct {
	Name     string
	PoolHint *int
}

// Team is a normalized input team with an engine-local identity. IDs start
// at 1 and are stable for the lifetime of one scheduling run only.
type Team struct {
	ID       int
	Name     string
	PoolHint *int
}

// Pool is a generated subgroup of teams that play a round-robin among
// themselves. Name derives from the pool's 1-indexed position.
type Pool struct {
	ID      int
	Name    string
	TeamIDs []int
}

// Match is one generated fixture. ID is pool-local; MatchNumber is
// tournament-global and strictly increasing in generation order. Byes are
// never recorded as matches, so both team IDs are always set.
type Match struct {
	ID          int
	PoolID      int
	Round       int
	MatchNumber int
	TeamAID     int
	TeamBID     int
	ScoreA      *int
	ScoreB      *int
	Status      models.MatchStatus
	SlotIndex   *int
}

// StandingsRow is one team's aggregated win/loss/point record.
type StandingsRow struct {
	TeamID        int
	Wins          int
	Losses        int
	PointsFor     int
	PointsAgainst int
	PointDiff     int
}

// Options configures one scheduling run. The zero value is not a usable
// default; use DefaultOptions.
type Options struct {
	Seed            uint32
	Shuffle         bool
	PoolStrategy    PoolStrategy
	AvoidBackToBack bool
}

func DefaultOptions() Options {
	return Options{
		Seed:         DefaultSeed,
		PoolStrategy: StrategyRespectInput,
	}
}

// Schedule is the complete output of one run.
type Schedule struct {
	Teams   []Team
	Pools   []Pool
	Matches []Match
}

// BuildSchedule runs the full pipeline: normalize, assign pools, generate
// fixtures, and (optionally) assign ordering slots. Validation is
// all-or-nothing; no partial schedule is ever returned.
func BuildSchedule(entries []TeamEntry, maxPools int, opts Options) (*Schedule, error) {
	if maxPools < 1 {
		return nil, ErrInvalidMaxPools
	}
	if len(entries) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrNotEnoughTeams, len(entries))
	}

	strategy := opts.PoolStrategy
	if strategy == "" {
		strategy = StrategyRespectInput
	}
	if strategy != StrategyRespectInput && strategy != StrategyBalanced {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	gen := NewGenerator(opts.Seed)
	teams := NormalizeTeams(entries, gen, opts.Shuffle)

	pools := AssignPools(teams, maxPools, strategy)

	var matches []Match
	matchNumber := 1
	for _, pool := range pools {
		var poolMatches []Match
		poolMatches, matchNumber = GenerateFixtures(pool, matchNumber)
		matches = append(matches, poolMatches...)
	}

	if opts.AvoidBackToBack {
		matches = AssignSlots(matches)
	}

	return &Schedule{Teams: teams, Pools: pools, Matches: matches}, nil
}
