package services

import (
	"context"
	"errors"
	"testing"

	"github.com/piotronm/tourney-backend-sub001/models"
	"github.com/piotronm/tourney-backend-sub001/repositories"
)

type fakeDivisionRepo struct {
	divisions map[int]*models.Division
}

func newFakeDivisionRepo(divisions ...*models.Division) *fakeDivisionRepo {
	repo := &fakeDivisionRepo{divisions: make(map[int]*models.Division)}
	for _, d := range divisions {
		repo.divisions[d.ID] = d
	}
	return repo
}

func (f *fakeDivisionRepo) Create(ctx context.Context, division *models.Division) error {
	division.ID = len(f.divisions) + 1
	copied := *division
	f.divisions[division.ID] = &copied
	return nil
}

func (f *fakeDivisionRepo) GetByID(ctx context.Context, id int) (*models.Division, error) {
	d, ok := f.divisions[id]
	if !ok {
		return nil, repositories.ErrDivisionNotFound
	}
	copied := *d
	return &copied, nil
}

func (f *fakeDivisionRepo) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Division, error) {
	out := make([]*models.Division, 0)
	for _, d := range f.divisions {
		if d.TournamentID == tournamentID {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeDivisionRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, status models.DivisionStatus) error {
	d, ok := f.divisions[id]
	if !ok {
		return repositories.ErrDivisionNotFound
	}
	d.Status = status
	return nil
}

func (f *fakeDivisionRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.divisions[id]; !ok {
		return repositories.ErrDivisionNotFound
	}
	delete(f.divisions, id)
	return nil
}

type fakePoolRepo struct {
	pools map[int]*models.Pool
}

func newFakePoolRepo(pools ...*models.Pool) *fakePoolRepo {
	repo := &fakePoolRepo{pools: make(map[int]*models.Pool)}
	for _, p := range pools {
		repo.pools[p.ID] = p
	}
	return repo
}

func (f *fakePoolRepo) Create(ctx context.Context, exec repositories.SQLExecutor, pool *models.Pool) error {
	pool.ID = len(f.pools) + 1
	copied := *pool
	f.pools[pool.ID] = &copied
	return nil
}

func (f *fakePoolRepo) GetByID(ctx context.Context, id int) (*models.Pool, error) {
	p, ok := f.pools[id]
	if !ok {
		return nil, repositories.ErrPoolNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePoolRepo) ListByDivision(ctx context.Context, divisionID int) ([]*models.Pool, error) {
	out := make([]*models.Pool, 0)
	for _, p := range f.pools {
		if p.DivisionID == divisionID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakePoolRepo) DeleteByDivision(ctx context.Context, exec repositories.SQLExecutor, divisionID int) error {
	for id, p := range f.pools {
		if p.DivisionID == divisionID {
			delete(f.pools, id)
		}
	}
	return nil
}

func TestStandingsByDivision(t *testing.T) {
	poolID := 1
	divisions := newFakeDivisionRepo(&models.Division{ID: 7, TournamentID: 3, Status: models.DivisionStatusScheduled})
	pools := newFakePoolRepo(&models.Pool{ID: poolID, DivisionID: 7, Name: "Pool A"})
	teams := newFakeTeamRepo(
		&models.Team{ID: 11, DivisionID: 7, Name: "Hawks", PoolID: &poolID},
		&models.Team{ID: 12, DivisionID: 7, Name: "Owls", PoolID: &poolID},
		&models.Team{ID: 13, DivisionID: 7, Name: "Crows", PoolID: &poolID},
	)
	matches := newFakeMatchRepo(
		&models.Match{ID: 1, PoolID: poolID, DivisionID: 7, TeamAID: 11, TeamBID: 12,
			ScoreA: intp(21), ScoreB: intp(15), Status: models.MatchStatusCompleted},
		&models.Match{ID: 2, PoolID: poolID, DivisionID: 7, TeamAID: 12, TeamBID: 13,
			ScoreA: intp(18), ScoreB: intp(25), Status: models.MatchStatusCompleted},
		&models.Match{ID: 3, PoolID: poolID, DivisionID: 7, TeamAID: 11, TeamBID: 13,
			Status: models.MatchStatusPending},
	)

	svc := NewStandingsService(divisions, teams, pools, matches)
	standings, err := svc.ByDivision(context.Background(), 3, 7)
	if err != nil {
		t.Fatalf("ByDivision() error: %v", err)
	}

	if len(standings) != 1 {
		t.Fatalf("got %d pools, want 1", len(standings))
	}
	rows := standings[0].Rows
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	// Hawks and Crows are 1-0; Crows has the better point differential.
	if rows[0].TeamID != 13 || rows[0].Team == nil || rows[0].Team.Name != "Crows" {
		t.Errorf("first place = %+v, want Crows", rows[0])
	}
	if rows[1].TeamID != 11 {
		t.Errorf("second place team = %d, want 11 (Hawks)", rows[1].TeamID)
	}
	if rows[2].TeamID != 12 || rows[2].Wins != 0 || rows[2].Losses != 2 {
		t.Errorf("third place = %+v, want winless Owls", rows[2])
	}
}

func TestStandingsRequiresSchedule(t *testing.T) {
	divisions := newFakeDivisionRepo(&models.Division{ID: 7, TournamentID: 3, Status: models.DivisionStatusDraft})
	svc := NewStandingsService(divisions, newFakeTeamRepo(), newFakePoolRepo(), newFakeMatchRepo())

	if _, err := svc.ByDivision(context.Background(), 3, 7); !errors.Is(err, ErrDivisionNotScheduled) {
		t.Errorf("error = %v, want ErrDivisionNotScheduled", err)
	}
}

func TestStandingsScopedToTournament(t *testing.T) {
	divisions := newFakeDivisionRepo(&models.Division{ID: 7, TournamentID: 3, Status: models.DivisionStatusScheduled})
	svc := NewStandingsService(divisions, newFakeTeamRepo(), newFakePoolRepo(), newFakeMatchRepo())

	if _, err := svc.ByDivision(context.Background(), 99, 7); !errors.Is(err, ErrDivisionNotFound) {
		t.Errorf("error = %v, want ErrDivisionNotFound", err)
	}
}
