package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/piotronm/tourney-backend-sub001/models"
	"github.com/piotronm/tourney-backend-sub001/repositories"
)

// ScheduleBroadcaster pushes live updates to subscribers of a division.
// The websocket hub implements it; a nil broadcaster disables pushes.
type ScheduleBroadcaster interface {
	BroadcastDivisionUpdate(divisionID int, event string, payload interface{})
}

type ReportScoreInput struct {
	ScoreA *int               `json:"score_a"`
	ScoreB *int               `json:"score_b"`
	Status models.MatchStatus `json:"status"`
}

type MatchService interface {
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByDivision(ctx context.Context, divisionID int, round *int, status *models.MatchStatus) ([]*models.Match, error)
	ReportScore(ctx context.Context, matchID int, input ReportScoreInput) (*models.Match, error)
}

type matchService struct {
	matchRepo   repositories.MatchRepository
	teamRepo    repositories.TeamRepository
	broadcaster ScheduleBroadcaster
	logger      *slog.Logger
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	broadcaster ScheduleBroadcaster,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		matchRepo:   matchRepo,
		teamRepo:    teamRepo,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	if err := s.populateTeams(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *matchService) ListByDivision(ctx context.Context, divisionID int, round *int, status *models.MatchStatus) ([]*models.Match, error) {
	if status != nil && !models.ValidMatchStatus(*status) {
		return nil, ErrInvalidMatchStatus
	}
	return s.matchRepo.ListByDivision(ctx, divisionID, round, status)
}

// ReportScore records a result and moves the match through its status
// lifecycle. Walkovers and forfeits may omit scores; a completed match
// must carry both.
func (s *matchService) ReportScore(ctx context.Context, matchID int, input ReportScoreInput) (*models.Match, error) {
	if !models.ValidMatchStatus(input.Status) {
		return nil, ErrInvalidMatchStatus
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", matchID, err)
	}

	if !validMatchTransition(match.Status, input.Status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidStatusTransition, match.Status, input.Status)
	}

	scoreA, scoreB := input.ScoreA, input.ScoreB
	switch input.Status {
	case models.MatchStatusCompleted:
		if scoreA == nil || scoreB == nil {
			return nil, ErrScoreRequired
		}
		if *scoreA < 0 || *scoreB < 0 {
			return nil, ErrInvalidScore
		}
	case models.MatchStatusPending, models.MatchStatusCancelled:
		// Reverting or cancelling wipes any partial score.
		scoreA, scoreB = nil, nil
	default:
		if scoreA != nil && *scoreA < 0 || scoreB != nil && *scoreB < 0 {
			return nil, ErrInvalidScore
		}
	}

	if err := s.matchRepo.UpdateScoreStatus(ctx, nil, matchID, scoreA, scoreB, input.Status); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update match %d: %w", matchID, err)
	}

	match.ScoreA = scoreA
	match.ScoreB = scoreB
	match.Status = input.Status

	if err := s.populateTeams(ctx, match); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastDivisionUpdate(match.DivisionID, "match_updated", match)
	}
	s.logger.Info("match result recorded",
		slog.Int("match_id", matchID),
		slog.Int("division_id", match.DivisionID),
		slog.String("status", string(match.Status)))

	return match, nil
}

// validMatchTransition encodes the allowed status lifecycle. A match can
// always be reset back to pending, which reopens scoring.
func validMatchTransition(current, next models.MatchStatus) bool {
	if current == next {
		return true
	}
	allowed := map[models.MatchStatus][]models.MatchStatus{
		models.MatchStatusPending: {
			models.MatchStatusInProgress,
			models.MatchStatusCompleted,
			models.MatchStatusWalkover,
			models.MatchStatusForfeit,
			models.MatchStatusCancelled,
		},
		models.MatchStatusInProgress: {
			models.MatchStatusCompleted,
			models.MatchStatusWalkover,
			models.MatchStatusForfeit,
			models.MatchStatusCancelled,
			models.MatchStatusPending,
		},
		models.MatchStatusCompleted: {models.MatchStatusPending},
		models.MatchStatusWalkover:  {models.MatchStatusPending},
		models.MatchStatusForfeit:   {models.MatchStatusPending},
		models.MatchStatusCancelled: {models.MatchStatusPending},
	}
	for _, s := range allowed[current] {
		if next == s {
			return true
		}
	}
	return false
}

func (s *matchService) populateTeams(ctx context.Context, match *models.Match) error {
	teamA, err := s.teamRepo.GetByID(ctx, match.TeamAID)
	if err != nil {
		return fmt.Errorf("failed to load team %d: %w", match.TeamAID, err)
	}
	teamB, err := s.teamRepo.GetByID(ctx, match.TeamBID)
	if err != nil {
		return fmt.Errorf("failed to load team %d: %w", match.TeamBID, err)
	}
	match.TeamA = teamA
	match.TeamB = teamB
	return nil
}
