package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/piotronm/tourney-backend-sub001/models"
)

var (
	ErrTeamNotFound        = errors.New("team not found")
	ErrTeamNameConflict    = errors.New("team name already taken in division")
	ErrTeamDivisionInvalid = errors.New("team division conflict or invalid")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListByDivision(ctx context.Context, divisionID int) ([]*models.Team, error)
	ListByPool(ctx context.Context, poolID int) ([]*models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	SetPool(ctx context.Context, exec SQLExecutor, teamID int, poolID *int) error
	ClearPoolsByDivision(ctx context.Context, exec SQLExecutor, divisionID int) error
	Delete(ctx context.Context, id int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (division_id, name, pool_hint)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		team.DivisionID,
		team.Name,
		team.PoolHint,
	).Scan(&team.ID, &team.CreatedAt)

	return r.handleTeamError(err)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT id, division_id, name, pool_hint, pool_id, created_at
		FROM teams
		WHERE id = $1`

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID,
		&team.DivisionID,
		&team.Name,
		&team.PoolHint,
		&team.PoolID,
		&team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan team by id %d: %w", id, err)
	}
	return team, nil
}

func (r *postgresTeamRepository) ListByDivision(ctx context.Context, divisionID int) ([]*models.Team, error) {
	query := `
		SELECT id, division_id, name, pool_hint, pool_id, created_at
		FROM teams
		WHERE division_id = $1
		ORDER BY id ASC`
	return r.queryTeams(ctx, query, divisionID)
}

func (r *postgresTeamRepository) ListByPool(ctx context.Context, poolID int) ([]*models.Team, error) {
	query := `
		SELECT id, division_id, name, pool_hint, pool_id, created_at
		FROM teams
		WHERE pool_id = $1
		ORDER BY id ASC`
	return r.queryTeams(ctx, query, poolID)
}

func (r *postgresTeamRepository) queryTeams(ctx context.Context, query string, arg interface{}) ([]*models.Team, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var t models.Team
		if scanErr := rows.Scan(&t.ID, &t.DivisionID, &t.Name, &t.PoolHint, &t.PoolID, &t.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", scanErr)
		}
		teams = append(teams, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team rows: %w", err)
	}
	return teams, nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `UPDATE teams SET name = $1, pool_hint = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, team.Name, team.PoolHint, team.ID)
	if err != nil {
		return r.handleTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) SetPool(ctx context.Context, exec SQLExecutor, teamID int, poolID *int) error {
	query := `UPDATE teams SET pool_id = $1 WHERE id = $2`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, poolID, teamID)
	if err != nil {
		return fmt.Errorf("failed to set pool for team %d: %w", teamID, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) ClearPoolsByDivision(ctx context.Context, exec SQLExecutor, divisionID int) error {
	query := `UPDATE teams SET pool_id = NULL WHERE division_id = $1`
	_, err := r.getExecutor(exec).ExecContext(ctx, query, divisionID)
	if err != nil {
		return fmt.Errorf("failed to clear pool assignments for division %d: %w", divisionID, err)
	}
	return nil
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM teams WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete team %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "teams_division_id_name_key":
			return ErrTeamNameConflict
		case "teams_division_id_fkey":
			return ErrTeamDivisionInvalid
		}
	}
	return err
}
