package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/piotronm/tourney-backend-sub001/models"
	"github.com/piotronm/tourney-backend-sub001/repositories"
)

type CreateTournamentInput struct {
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

type TournamentService interface {
	Create(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error)
	UpdateStatus(ctx context.Context, requesterID int, id int, status models.TournamentStatus) (*models.Tournament, error)
	Delete(ctx context.Context, requesterID int, id int) error
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	divisionRepo   repositories.DivisionRepository
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	divisionRepo repositories.DivisionRepository,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		divisionRepo:   divisionRepo,
	}
}

func (s *tournamentService) Create(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}
	if !input.StartDate.IsZero() && !input.EndDate.IsZero() && input.EndDate.Before(input.StartDate) {
		return nil, fmt.Errorf("%w: end date before start date", ErrValidationFailed)
	}

	tournament := &models.Tournament{
		Name:        name,
		Description: input.Description,
		OrganizerID: organizerID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      models.TournamentStatusUpcoming,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}

	divisions, err := s.divisionRepo.ListByTournament(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list divisions for tournament %d: %w", id, err)
	}
	tournament.Divisions = make([]models.Division, 0, len(divisions))
	for _, d := range divisions {
		tournament.Divisions = append(tournament.Divisions, *d)
	}
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error) {
	return s.tournamentRepo.List(ctx, status)
}

func (s *tournamentService) UpdateStatus(ctx context.Context, requesterID int, id int, status models.TournamentStatus) (*models.Tournament, error) {
	switch status {
	case models.TournamentStatusUpcoming, models.TournamentStatusActive,
		models.TournamentStatusCompleted, models.TournamentStatusCanceled:
	default:
		return nil, fmt.Errorf("%w: %q", ErrValidationFailed, status)
	}

	tournament, err := s.requireOwnership(ctx, requesterID, id)
	if err != nil {
		return nil, err
	}

	if err := s.tournamentRepo.UpdateStatus(ctx, nil, id, status); err != nil {
		return nil, fmt.Errorf("failed to update tournament %d status: %w", id, err)
	}
	tournament.Status = status
	return tournament, nil
}

func (s *tournamentService) Delete(ctx context.Context, requesterID int, id int) error {
	if _, err := s.requireOwnership(ctx, requesterID, id); err != nil {
		return err
	}
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	return nil
}

func (s *tournamentService) requireOwnership(ctx context.Context, requesterID, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	if tournament.OrganizerID != requesterID {
		return nil, ErrForbiddenOperation
	}
	return tournament, nil
}
