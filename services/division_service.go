package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/piotronm/tourney-backend-sub001/models"
	"github.com/piotronm/tourney-backend-sub001/repositories"
)

type CreateDivisionInput struct {
	Name string `json:"name"`
}

type DivisionService interface {
	Create(ctx context.Context, tournamentID int, input CreateDivisionInput) (*models.Division, error)
	GetByID(ctx context.Context, tournamentID, divisionID int) (*models.Division, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Division, error)
	Delete(ctx context.Context, tournamentID, divisionID int) error
}

type divisionService struct {
	tournamentRepo repositories.TournamentRepository
	divisionRepo   repositories.DivisionRepository
	teamRepo       repositories.TeamRepository
	poolRepo       repositories.PoolRepository
}

func NewDivisionService(
	tournamentRepo repositories.TournamentRepository,
	divisionRepo repositories.DivisionRepository,
	teamRepo repositories.TeamRepository,
	poolRepo repositories.PoolRepository,
) DivisionService {
	return &divisionService{
		tournamentRepo: tournamentRepo,
		divisionRepo:   divisionRepo,
		teamRepo:       teamRepo,
		poolRepo:       poolRepo,
	}
}

func (s *divisionService) Create(ctx context.Context, tournamentID int, input CreateDivisionInput) (*models.Division, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrDivisionNameRequired
	}
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", tournamentID, err)
	}

	division := &models.Division{
		TournamentID: tournamentID,
		Name:         name,
		Status:       models.DivisionStatusDraft,
	}
	if err := s.divisionRepo.Create(ctx, division); err != nil {
		if errors.Is(err, repositories.ErrDivisionTournamentInvalid) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to create division: %w", err)
	}
	return division, nil
}

// GetByID loads a division with its teams and pools. The tournament ID
// scopes the lookup so a division cannot be read through another
// tournament's URL.
func (s *divisionService) GetByID(ctx context.Context, tournamentID, divisionID int) (*models.Division, error) {
	division, err := s.loadScoped(ctx, tournamentID, divisionID)
	if err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByDivision(ctx, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for division %d: %w", divisionID, err)
	}
	division.Teams = make([]models.Team, 0, len(teams))
	for _, t := range teams {
		division.Teams = append(division.Teams, *t)
	}

	pools, err := s.poolRepo.ListByDivision(ctx, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pools for division %d: %w", divisionID, err)
	}
	division.Pools = make([]models.Pool, 0, len(pools))
	for _, p := range pools {
		pool := *p
		for _, t := range division.Teams {
			if t.PoolID != nil && *t.PoolID == pool.ID {
				pool.Teams = append(pool.Teams, t)
			}
		}
		division.Pools = append(division.Pools, pool)
	}

	return division, nil
}

func (s *divisionService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Division, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", tournamentID, err)
	}
	return s.divisionRepo.ListByTournament(ctx, tournamentID)
}

func (s *divisionService) Delete(ctx context.Context, tournamentID, divisionID int) error {
	if _, err := s.loadScoped(ctx, tournamentID, divisionID); err != nil {
		return err
	}
	if err := s.divisionRepo.Delete(ctx, divisionID); err != nil {
		if errors.Is(err, repositories.ErrDivisionNotFound) {
			return ErrDivisionNotFound
		}
		return fmt.Errorf("failed to delete division %d: %w", divisionID, err)
	}
	return nil
}

func (s *divisionService) loadScoped(ctx context.Context, tournamentID, divisionID int) (*models.Division, error) {
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
