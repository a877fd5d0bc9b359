package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/piotronm/tourney-backend-sub001/models"
	"github.com/piotronm/tourney-backend-sub001/repositories"
)

type fakeMatchRepo struct {
	matches map[int]*models.Match
}

func newFakeMatchRepo(matches ...*models.Match) *fakeMatchRepo {
	repo := &fakeMatchRepo{matches: make(map[int]*models.Match)}
	for _, m := range matches {
		repo.matches[m.ID] = m
	}
	return repo
}

func (f *fakeMatchRepo) Create(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	match.ID = len(f.matches) + 1
	match.CreatedAt = time.Now()
	copied := *match
	f.matches[match.ID] = &copied
	return nil
}

func (f *fakeMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	m, ok := f.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMatchRepo) ListByDivision(ctx context.Context, divisionID int, round *int, status *models.MatchStatus) ([]*models.Match, error) {
	out := make([]*models.Match, 0)
	for _, m := range f.matches {
		if m.DivisionID != divisionID {
			continue
		}
		if round != nil && m.Round != *round {
			continue
		}
		if status != nil && m.Status != *status {
			continue
		}
		copied := *m
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeMatchRepo) ListByPool(ctx context.Context, poolID int) ([]*models.Match, error) {
	out := make([]*models.Match, 0)
	for _, m := range f.matches {
		if m.PoolID == poolID {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) UpdateScoreStatus(ctx context.Context, exec repositories.SQLExecutor, id int, scoreA, scoreB *int, status models.MatchStatus) error {
	m, ok := f.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.ScoreA = scoreA
	m.ScoreB = scoreB
	m.Status = status
	return nil
}

func (f *fakeMatchRepo) DeleteByDivision(ctx context.Context, exec repositories.SQLExecutor, divisionID int) error {
	for id, m := range f.matches {
		if m.DivisionID == divisionID {
			delete(f.matches, id)
		}
	}
	return nil
}

type fakeTeamRepo struct {
	teams map[int]*models.Team
}

func newFakeTeamRepo(teams ...*models.Team) *fakeTeamRepo {
	repo := &fakeTeamRepo{teams: make(map[int]*models.Team)}
	for _, t := range teams {
		repo.teams[t.ID] = t
	}
	return repo
}

func (f *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	team.ID = len(f.teams) + 1
	copied := *team
	f.teams[team.ID] = &copied
	return nil
}

func (f *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTeamRepo) ListByDivision(ctx context.Context, divisionID int) ([]*models.Team, error) {
	out := make([]*models.Team, 0)
	for _, t := range f.teams {
		if t.DivisionID == divisionID {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) ListByPool(ctx context.Context, poolID int) ([]*models.Team, error) {
	out := make([]*models.Team, 0)
	for _, t := range f.teams {
		if t.PoolID != nil && *t.PoolID == poolID {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) Update(ctx context.Context, team *models.Team) error {
	if _, ok := f.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	copied := *team
	f.teams[team.ID] = &copied
	return nil
}

func (f *fakeTeamRepo) SetPool(ctx context.Context, exec repositories.SQLExecutor, teamID int, poolID *int) error {
	t, ok := f.teams[teamID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.PoolID = poolID
	return nil
}

func (f *fakeTeamRepo) ClearPoolsByDivision(ctx context.Context, exec repositories.SQLExecutor, divisionID int) error {
	for _, t := range f.teams {
		if t.DivisionID == divisionID {
			t.PoolID = nil
		}
	}
	return nil
}

func (f *fakeTeamRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(f.teams, id)
	return nil
}

type recordingBroadcaster struct {
	divisionIDs []int
	events      []string
}

func (b *recordingBroadcaster) BroadcastDivisionUpdate(divisionID int, event string, payload interface{}) {
	b.divisionIDs = append(b.divisionIDs, divisionID)
	b.events = append(b.events, event)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intp(v int) *int { return &v }

func pendingMatch(id int) *models.Match {
	return &models.Match{
		ID:         id,
		PoolID:     1,
		DivisionID: 7,
		Round:      1,
		TeamAID:    11,
		TeamBID:    12,
		Status:     models.MatchStatusPending,
	}
}

func matchTestTeams() *fakeTeamRepo {
	return newFakeTeamRepo(
		&models.Team{ID: 11, DivisionID: 7, Name: "Hawks"},
		&models.Team{ID: 12, DivisionID: 7, Name: "Owls"},
	)
}

func TestReportScoreCompletesMatch(t *testing.T) {
	repo := newFakeMatchRepo(pendingMatch(1))
	broadcaster := &recordingBroadcaster{}
	svc := NewMatchService(repo, matchTestTeams(), broadcaster, discardLogger())

	match, err := svc.ReportScore(context.Background(), 1, ReportScoreInput{
		ScoreA: intp(21),
		ScoreB: intp(15),
		Status: models.MatchStatusCompleted,
	})
	if err != nil {
		t.Fatalf("ReportScore() error: %v", err)
	}

	if match.Status != models.MatchStatusCompleted {
		t.Errorf("status = %q, want completed", match.Status)
	}
	if match.ScoreA == nil || *match.ScoreA != 21 || match.ScoreB == nil || *match.ScoreB != 15 {
		t.Errorf("scores not recorded: %v %v", match.ScoreA, match.ScoreB)
	}
	if match.TeamA == nil || match.TeamA.Name != "Hawks" {
		t.Error("team A not populated on response")
	}
	if len(broadcaster.events) != 1 || broadcaster.events[0] != "match_updated" {
		t.Errorf("broadcast events = %v, want one match_updated", broadcaster.events)
	}
	if broadcaster.divisionIDs[0] != 7 {
		t.Errorf("broadcast division = %d, want 7", broadcaster.divisionIDs[0])
	}
}

func TestReportScoreValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   ReportScoreInput
		wantErr error
	}{
		{"completed without scores", ReportScoreInput{Status: models.MatchStatusCompleted}, ErrScoreRequired},
		{"completed missing one score", ReportScoreInput{ScoreA: intp(10), Status: models.MatchStatusCompleted}, ErrScoreRequired},
		{"negative score", ReportScoreInput{ScoreA: intp(-1), ScoreB: intp(5), Status: models.MatchStatusCompleted}, ErrInvalidScore},
		{"unknown status", ReportScoreInput{Status: "postponed"}, ErrInvalidMatchStatus},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeMatchRepo(pendingMatch(1))
			svc := NewMatchService(repo, matchTestTeams(), nil, discardLogger())

			_, err := svc.ReportScore(context.Background(), 1, tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestReportScoreStatusLifecycle(t *testing.T) {
	tests := []struct {
		name    string
		from    models.MatchStatus
		to      models.MatchStatus
		allowed bool
	}{
		{"pending to in_progress", models.MatchStatusPending, models.MatchStatusInProgress, true},
		{"pending to completed", models.MatchStatusPending, models.MatchStatusCompleted, true},
		{"pending to walkover", models.MatchStatusPending, models.MatchStatusWalkover, true},
		{"completed reopened", models.MatchStatusCompleted, models.MatchStatusPending, true},
		{"completed to in_progress", models.MatchStatusCompleted, models.MatchStatusInProgress, false},
		{"cancelled to completed", models.MatchStatusCancelled, models.MatchStatusCompleted, false},
		{"walkover to forfeit", models.MatchStatusWalkover, models.MatchStatusForfeit, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := pendingMatch(1)
			m.Status = tc.from
			if tc.from == models.MatchStatusCompleted {
				m.ScoreA, m.ScoreB = intp(10), intp(8)
			}
			svc := NewMatchService(newFakeMatchRepo(m), matchTestTeams(), nil, discardLogger())

			input := ReportScoreInput{Status: tc.to}
			if tc.to == models.MatchStatusCompleted {
				input.ScoreA, input.ScoreB = intp(15), intp(12)
			}

			_, err := svc.ReportScore(context.Background(), 1, input)
			if tc.allowed && err != nil {
				t.Errorf("transition rejected: %v", err)
			}
			if !tc.allowed && !errors.Is(err, ErrInvalidStatusTransition) {
				t.Errorf("error = %v, want ErrInvalidStatusTransition", err)
			}
		})
	}
}

func TestReportScoreResetClearsScores(t *testing.T) {
	m := pendingMatch(1)
	m.Status = models.MatchStatusCompleted
	m.ScoreA, m.ScoreB = intp(10), intp(8)
	svc := NewMatchService(newFakeMatchRepo(m), matchTestTeams(), nil, discardLogger())

	match, err := svc.ReportScore(context.Background(), 1, ReportScoreInput{Status: models.MatchStatusPending})
	if err != nil {
		t.Fatalf("ReportScore() error: %v", err)
	}
	if match.ScoreA != nil || match.ScoreB != nil {
		t.Errorf("scores survived reset: %v %v", match.ScoreA, match.ScoreB)
	}
}

func TestReportScoreUnknownMatch(t *testing.T) {
	svc := NewMatchService(newFakeMatchRepo(), matchTestTeams(), nil, discardLogger())
	_, err := svc.ReportScore(context.Background(), 99, ReportScoreInput{Status: models.MatchStatusInProgress})
	if !errors.Is(err, ErrMatchNotFound) {
		t.Errorf("error = %v, want ErrMatchNotFound", err)
	}
}
