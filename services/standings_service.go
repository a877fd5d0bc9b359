package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/piotronm/tourney-backend-sub001/models"
	"github.com/piotronm/tourney-backend-sub001/repositories"
	"github.com/piotronm/tourney-backend-sub001/scheduling"
)

// PoolStandings pairs a pool with its ranked table.
type PoolStandings struct {
	Pool *models.Pool          `json:"pool"`
	Rows []models.StandingsRow `json:"rows"`
}

type StandingsService interface {
	ByDivision(ctx context.Context, tournamentID, divisionID int) ([]PoolStandings, error)
}

type standingsService struct {
	divisionRepo repositories.DivisionRepository
	teamRepo     repositories.TeamRepository
	poolRepo     repositories.PoolRepository
	matchRepo    repositories.MatchRepository
}

func NewStandingsService(
	divisionRepo repositories.DivisionRepository,
	teamRepo repositories.TeamRepository,
	poolRepo repositories.PoolRepository,
	matchRepo repositories.MatchRepository,
) StandingsService {
	return &standingsService{
		divisionRepo: divisionRepo,
		teamRepo:     teamRepo,
		poolRepo:     poolRepo,
		matchRepo:    matchRepo,
	}
}

func (s *standingsService) ByDivision(ctx context.Context, tournamentID, divisionID int) ([]PoolStandings, error) {
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
	if division.Status == models.DivisionStatusDraft {
		return nil, ErrDivisionNotScheduled
	}

	var (
		pools   []*models.Pool
		teams   []*models.Team
		matches []*models.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pools, err = s.poolRepo.ListByDivision(gctx, divisionID)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByDivision(gctx, divisionID)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByDivision(gctx, divisionID, nil, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load standings inputs for division %d: %w", divisionID, err)
	}

	teamByID := make(map[int]*models.Team, len(teams))
	for _, t := range teams {
		teamByID[t.ID] = t
	}

	engineMatches := make([]scheduling.Match, 0, len(matches))
	for _, m := range matches {
		engineMatches = append(engineMatches, scheduling.Match{
			PoolID:  m.PoolID,
			TeamAID: m.TeamAID,
			TeamBID: m.TeamBID,
			ScoreA:  m.ScoreA,
			ScoreB:  m.ScoreB,
			Status:  m.Status,
		})
	}

	result := make([]PoolStandings, 0, len(pools))
	for _, pool := range pools {
		enginePool := scheduling.Pool{ID: pool.ID, Name: pool.Name}
		for _, t := range teams {
			if t.PoolID != nil && *t.PoolID == pool.ID {
				enginePool.TeamIDs = append(enginePool.TeamIDs, t.ID)
			}
		}

		engineRows := scheduling.ComputeStandings(enginePool, engineMatches)
		rows := make([]models.StandingsRow, 0, len(engineRows))
		for _, er := range engineRows {
			rows = append(rows, models.StandingsRow{
				TeamID:        er.TeamID,
				Wins:          er.Wins,
				Losses:        er.Losses,
				PointsFor:     er.PointsFor,
				PointsAgainst: er.PointsAgainst,
				PointDiff:     er.PointDiff,
				Team:          teamByID[er.TeamID],
			})
		}
		result = append(result, PoolStandings{Pool: pool, Rows: rows})
	}

	return result, nil
}
