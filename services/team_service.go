package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/piotronm/tourney-backend-sub001/models"
	"github.com/piotronm/tourney-backend-sub001/repositories"
)

type TeamInput struct {
	Name     string `json:"name"`
	PoolHint *int   `json:"pool_hint,omitempty"`
}

type TeamService interface {
	Create(ctx context.Context, divisionID int, input TeamInput) (*models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListByDivision(ctx context.Context, divisionID int) ([]*models.Team, error)
	Update(ctx context.Context, id int, input TeamInput) (*models.Team, error)
	Delete(ctx context.Context, id int) error
}

type teamService struct {
	divisionRepo repositories.DivisionRepository
	teamRepo     repositories.TeamRepository
}

func NewTeamService(divisionRepo repositories.DivisionRepository, teamRepo repositories.TeamRepository) TeamService {
	return &teamService{
		divisionRepo: divisionRepo,
		teamRepo:     teamRepo,
	}
}

func (s *teamService) Create(ctx context.Context, divisionID int, input TeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	if input.PoolHint != nil && *input.PoolHint < 1 {
		return nil, fmt.Errorf("%w: pool hint must be positive", ErrValidationFailed)
	}

	division, err := s.divisionRepo.GetByID(ctx, divisionID)
	if err != nil {
		if errors.Is(err, repositories.ErrDivisionNotFound) {
			return nil, ErrDivisionNotFound
		}
		return nil, fmt.Errorf("failed to get division %d: %w", divisionID, err)
	}
	// Rosters freeze once fixtures exist. Regenerating the schedule is
	// the way to change a scheduled division's teams.
	if division.Status != models.DivisionStatusDraft {
		return nil, ErrDivisionNotDraft
	}

	team := &models.Team{
		DivisionID: divisionID,
		Name:       name,
		PoolHint:   input.PoolHint,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, s.mapTeamError(err)
	}
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapTeamError(err)
	}
	return team, nil
}

func (s *teamService) ListByDivision(ctx context.Context, divisionID int) ([]*models.Team, error) {
	if _, err := s.divisionRepo.GetByID(ctx, divisionID); err != nil {
		if errors.Is(err, repositories.ErrDivisionNotFound) {
			return nil, ErrDivisionNotFound
		}
		return nil, fmt.Errorf("failed to get division %d: %w", divisionID, err)
	}
	return s.teamRepo.ListByDivision(ctx, divisionID)
}

func (s *teamService) Update(ctx context.Context, id int, input TeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapTeamError(err)
	}

	team.Name = name
	team.PoolHint = input.PoolHint
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, s.mapTeamError(err)
	}
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, id int) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return s.mapTeamError(err)
	}

	division, err := s.divisionRepo.GetByID(ctx, team.DivisionID)
	if err != nil {
		return fmt.Errorf("failed to get division %d: %w", team.DivisionID, err)
	}
	if division.Status != models.DivisionStatusDraft {
		return ErrDivisionNotDraft
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return s.mapTeamError(err)
	}
	return nil
}

func (s *teamService) mapTeamError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrTeamNameConflict):
		return ErrTeamNameConflict
	case errors.Is(err, repositories.ErrTeamDivisionInvalid):
		return ErrDivisionNotFound
	default:
		return err
	}
}
