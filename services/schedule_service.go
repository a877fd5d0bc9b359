package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/piotronm/tourney-backend-sub001/models"
	"github.com/piotronm/tourney-backend-sub001/repositories"
	"github.com/piotronm/tourney-backend-sub001/scheduling"
)

type GenerateScheduleInput struct {
	Seed            *uint32 `json:"seed,omitempty"`
	Shuffle         bool    `json:"shuffle"`
	MaxPools        int     `json:"max_pools"`
	PoolStrategy    string  `json:"pool_strategy,omitempty"`
	AvoidBackToBack bool    `json:"avoid_back_to_back"`
}

// DivisionSchedule is the persisted outcome of a generation run.
type DivisionSchedule struct {
	Division *models.Division `json:"division"`
	Pools    []*models.Pool   `json:"pools"`
	Matches  []*models.Match  `json:"matches"`
}

type ScheduleService interface {
	Generate(ctx context.Context, tournamentID, divisionID int, input GenerateScheduleInput) (*DivisionSchedule, error)
	Get(ctx context.Context, tournamentID, divisionID int) (*DivisionSchedule, error)
}

type scheduleService struct {
	db           *sql.DB
	divisionRepo repositories.DivisionRepository
	teamRepo     repositories.TeamRepository
	poolRepo     repositories.PoolRepository
	matchRepo    repositories.MatchRepository
	logger       *slog.Logger
}

func NewScheduleService(
	db *sql.DB,
	divisionRepo repositories.DivisionRepository,
	teamRepo repositories.TeamRepository,
	poolRepo repositories.PoolRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) ScheduleService {
	return &scheduleService{
		db:           db,
		divisionRepo: divisionRepo,
		teamRepo:     teamRepo,
		poolRepo:     poolRepo,
		matchRepo:    matchRepo,
		logger:       logger,
	}
}

// Generate runs the round-robin engine over the division's teams and
// replaces any previously persisted pools and fixtures in a single
// transaction. Generation is idempotent for a fixed seed and input.
func (s *scheduleService) Generate(ctx context.Context, tournamentID, divisionID int, input GenerateScheduleInput) (result *DivisionSchedule, err error) {
	division, err := s.loadScopedDivision(ctx, tournamentID, divisionID)
	if err != nil {
		return nil, err
	}

	dbTeams, err := s.teamRepo.ListByDivision(ctx, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for division %d: %w", divisionID, err)
	}

	entries := make([]scheduling.TeamEntry, len(dbTeams))
	for i, t := range dbTeams {
		entries[i] = scheduling.TeamEntry{Name: t.Name, PoolHint: t.PoolHint}
	}

	maxPools := input.MaxPools
	if maxPools == 0 {
		maxPools = 1
	}
	opts := scheduling.DefaultOptions()
	opts.Shuffle = input.Shuffle
	opts.AvoidBackToBack = input.AvoidBackToBack
	if input.PoolStrategy != "" {
		opts.PoolStrategy = scheduling.PoolStrategy(input.PoolStrategy)
	}
	if input.Seed != nil {
		opts.Seed = *input.Seed
	}

	plan, err := scheduling.BuildSchedule(entries, maxPools, opts)
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrNotEnoughTeams):
			return nil, ErrNotEnoughTeams
		case errors.Is(err, scheduling.ErrInvalidMaxPools):
			return nil, ErrInvalidMaxPools
		case errors.Is(err, scheduling.ErrUnknownStrategy):
			return nil, ErrUnknownPoolStrategy
		}
		return nil, fmt.Errorf("failed to build schedule for division %d: %w", divisionID, err)
	}

	// Engine team IDs are positional. Resolve them back to DB rows by
	// name, which is unique within a division.
	teamByName := make(map[string]*models.Team, len(dbTeams))
	for _, t := range dbTeams {
		teamByName[t.Name] = t
	}
	engineTeamToDB := make(map[int]int, len(plan.Teams))
	for _, et := range plan.Teams {
		dbTeam, ok := teamByName[et.Name]
		if !ok {
			return nil, fmt.Errorf("engine returned unknown team %q for division %d", et.Name, divisionID)
		}
		engineTeamToDB[et.ID] = dbTeam.ID
	}

	s.warnDroppedTeams(divisionID, plan)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("rollback failed after schedule generation error",
					slog.Int("division_id", divisionID),
					slog.Any("rollback_error", rbErr),
					slog.Any("error", txErr))
			}
		} else {
			if cErr := tx.Commit(); cErr != nil {
				result = nil
				err = fmt.Errorf("failed to commit schedule for division %d: %w", divisionID, cErr)
			}
		}
	}()

	if txErr = s.matchRepo.DeleteByDivision(ctx, tx, divisionID); txErr != nil {
		return nil, txErr
	}
	if txErr = s.teamRepo.ClearPoolsByDivision(ctx, tx, divisionID); txErr != nil {
		return nil, txErr
	}
	if txErr = s.poolRepo.DeleteByDivision(ctx, tx, divisionID); txErr != nil {
		return nil, txErr
	}

	enginePoolToDB := make(map[int]int, len(plan.Pools))
	dbPools := make([]*models.Pool, 0, len(plan.Pools))
	for i, ep := range plan.Pools {
		pool := &models.Pool{
			DivisionID: divisionID,
			Name:       ep.Name,
			OrderIndex: i,
		}
		if txErr = s.poolRepo.Create(ctx, tx, pool); txErr != nil {
			return nil, txErr
		}
		enginePoolToDB[ep.ID] = pool.ID
		dbPools = append(dbPools, pool)

		for _, engineTeamID := range ep.TeamIDs {
			dbTeamID := engineTeamToDB[engineTeamID]
			poolID := pool.ID
			if txErr = s.teamRepo.SetPool(ctx, tx, dbTeamID, &poolID); txErr != nil {
				return nil, txErr
			}
		}
	}

	dbMatches := make([]*models.Match, 0, len(plan.Matches))
	for _, em := range plan.Matches {
		match := &models.Match{
			PoolID:      enginePoolToDB[em.PoolID],
			DivisionID:  divisionID,
			Round:       em.Round,
			MatchNumber: em.MatchNumber,
			TeamAID:     engineTeamToDB[em.TeamAID],
			TeamBID:     engineTeamToDB[em.TeamBID],
			Status:      models.MatchStatusPending,
			SlotIndex:   em.SlotIndex,
		}
		if txErr = s.matchRepo.Create(ctx, tx, match); txErr != nil {
			return nil, txErr
		}
		dbMatches = append(dbMatches, match)
	}

	if txErr = s.divisionRepo.UpdateStatus(ctx, tx, divisionID, models.DivisionStatusScheduled); txErr != nil {
		return nil, txErr
	}
	division.Status = models.DivisionStatusScheduled

	result = &DivisionSchedule{Division: division, Pools: dbPools, Matches: dbMatches}

	s.logger.Info("schedule generated",
		slog.Int("tournament_id", tournamentID),
		slog.Int("division_id", divisionID),
		slog.Int("pools", len(dbPools)),
		slog.Int("matches", len(dbMatches)))

	return result, nil
}

func (s *scheduleService) Get(ctx context.Context, tournamentID, divisionID int) (*DivisionSchedule, error) {
	division, err := s.loadScopedDivision(ctx, tournamentID, divisionID)
	if err != nil {
		return nil, err
	}
	if division.Status == models.DivisionStatusDraft {
		return nil, ErrDivisionNotScheduled
	}

	pools, err := s.poolRepo.ListByDivision(ctx, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pools for division %d: %w", divisionID, err)
	}
	matches, err := s.matchRepo.ListByDivision(ctx, divisionID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for division %d: %w", divisionID, err)
	}

	return &DivisionSchedule{Division: division, Pools: pools, Matches: matches}, nil
}

func (s *scheduleService) warnDroppedTeams(divisionID int, plan *scheduling.Schedule) {
	pooled := make(map[int]bool)
	for _, p := range plan.Pools {
		for _, id := range p.TeamIDs {
			pooled[id] = true
		}
	}
	for _, t := range plan.Teams {
		if !pooled[t.ID] {
			s.logger.Warn("team excluded from schedule by pool cap",
				slog.Int("division_id", divisionID),
				slog.String("team", t.Name))
		}
	}
}

func (s *scheduleService) loadScopedDivision(ctx context.Context, tournamentID, divisionID int) (*models.Division, error) {
	division, err := s.divisionRepo.GetByID(ctx, divisionID)
	if err != nil {
		if errors.Is(err, repositories.ErrDivisionNotFound) {
			return nil, ErrDivisionNotFound
		}
		return nil, fmt.Errorf("failed to get division %d: %w", divisionID, err)
	}
	if division.TournamentID != tournamentID {
		return nil, ErrDivisionNotFound
	}
	return division, nil
}
