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
	ErrDivisionNotFound          = errors.New("division not found")
	ErrDivisionTournamentInvalid = errors.New("division tournament conflict or invalid")
)

type DivisionRepository interface {
	Create(ctx context.Context, division *models.Division) error
	GetByID(ctx context.Context, id int) (*models.Division, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Division, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.DivisionStatus) error
	Delete(ctx context.Context, id int) error
}

type postgresDivisionRepository struct {
	db *sql.DB
}

func NewPostgresDivisionRepository(db *sql.DB) DivisionRepository {
	return &postgresDivisionRepository{db: db}
}

func (r *postgresDivisionRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresDivisionRepository) Create(ctx context.Context, division *models.Division) error {
	query := `
		INSERT INTO divisions (tournament_id, name, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		division.TournamentID,
		division.Name,
		division.Status,
	).Scan(&division.ID, &division.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "divisions_tournament_id_fkey" {
			return ErrDivisionTournamentInvalid
		}
		return fmt.Errorf("failed to insert division: %w", err)
	}
	return nil
}

func (r *postgresDivisionRepository) GetByID(ctx context.Context, id int) (*models.Division, error) {
	query := `
		SELECT id, tournament_id, name, status, created_at
		FROM divisions
		WHERE id = $1`

	division := &models.Division{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&division.ID,
		&division.TournamentID,
		&division.Name,
		&division.Status,
		&division.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDivisionNotFound
		}
		return nil, fmt.Errorf("failed to scan division by id %d: %w", id, err)
	}
	return division, nil
}

func (r *postgresDivisionRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Division, error) {
	query := `
		SELECT id, tournament_id, name, status, created_at
		FROM divisions
		WHERE tournament_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query divisions for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	divisions := make([]*models.Division, 0)
	for rows.Next() {
		var d models.Division
		if scanErr := rows.Scan(&d.ID, &d.TournamentID, &d.Name, &d.Status, &d.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan division row: %w", scanErr)
		}
		divisions = append(divisions, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating division rows: %w", err)
	}
	return divisions, nil
}

func (r *postgresDivisionRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.DivisionStatus) error {
	query := `UPDATE divisions SET status = $1 WHERE id = $2`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update division %d status: %w", id, err)
	}
	return checkAffectedRows(result, ErrDivisionNotFound)
}

func (r *postgresDivisionRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM divisions WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete division %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrDivisionNotFound)
}
