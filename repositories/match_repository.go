package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/piotronm/tourney-backend-sub001/models"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchPoolInvalid = errors.New("match pool conflict or invalid")
	ErrMatchTeamInvalid = errors.New("match team conflict or invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByDivision(ctx context.Context, divisionID int, round *int, status *models.MatchStatus) ([]*models.Match, error)
	ListByPool(ctx context.Context, poolID int) ([]*models.Match, error)
	UpdateScoreStatus(ctx context.Context, exec SQLExecutor, id int, scoreA, scoreB *int, status models.MatchStatus) error
	DeleteByDivision(ctx context.Context, exec SQLExecutor, divisionID int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches
			(pool_id, division_id, round, match_number, team_a_id, team_b_id,
			 score_a, score_b, status, slot_index)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		match.PoolID,
		match.DivisionID,
		match.Round,
		match.MatchNumber,
		match.TeamAID,
		match.TeamBID,
		match.ScoreA,
		match.ScoreB,
		match.Status,
		match.SlotIndex,
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, pool_id, division_id, round, match_number, team_a_id, team_b_id,
		       score_a, score_b, status, slot_index, created_at
		FROM matches
		WHERE id = $1`

	match := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&match.ID,
		&match.PoolID,
		&match.DivisionID,
		&match.Round,
		&match.MatchNumber,
		&match.TeamAID,
		&match.TeamBID,
		&match.ScoreA,
		&match.ScoreB,
		&match.Status,
		&match.SlotIndex,
		&match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) ListByDivision(ctx context.Context, divisionID int, round *int, status *models.MatchStatus) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, pool_id, division_id, round, match_number, team_a_id, team_b_id,
		       score_a, score_b, status, slot_index, created_at
		FROM matches
		WHERE division_id = $1`)

	args := []interface{}{divisionID}
	placeholderIndex := 2

	if round != nil {
		queryBuilder.WriteString(" AND round = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *round)
		placeholderIndex++
	}
	if status != nil {
		queryBuilder.WriteString(" AND status = $")
		queryBuilder.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *status)
	}

	queryBuilder.WriteString(" ORDER BY match_number ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for division %d: %w", divisionID, err)
	}
	defer rows.Close()
	return r.scanMatches(rows)
}

func (r *postgresMatchRepository) ListByPool(ctx context.Context, poolID int) ([]*models.Match, error) {
	query := `
		SELECT id, pool_id, division_id, round, match_number, team_a_id, team_b_id,
		       score_a, score_b, status, slot_index, created_at
		FROM matches
		WHERE pool_id = $1
		ORDER BY match_number ASC`

	rows, err := r.db.QueryContext(ctx, query, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for pool %d: %w", poolID, err)
	}
	defer rows.Close()
	return r.scanMatches(rows)
}

func (r *postgresMatchRepository) scanMatches(rows *sql.Rows) ([]*models.Match, error) {
	matches := make([]*models.Match, 0)
	for rows.Next() {
		var m models.Match
		if scanErr := rows.Scan(
			&m.ID,
			&m.PoolID,
			&m.DivisionID,
			&m.Round,
			&m.MatchNumber,
			&m.TeamAID,
			&m.TeamBID,
			&m.ScoreA,
			&m.ScoreB,
			&m.Status,
			&m.SlotIndex,
			&m.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match rows: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateScoreStatus(ctx context.Context, exec SQLExecutor, id int, scoreA, scoreB *int, status models.MatchStatus) error {
	query := `UPDATE matches SET score_a = $1, score_b = $2, status = $3 WHERE id = $4`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, scoreA, scoreB, status, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteByDivision(ctx context.Context, exec SQLExecutor, divisionID int) error {
	query := `DELETE FROM matches WHERE division_id = $1`
	_, err := r.getExecutor(exec).ExecContext(ctx, query, divisionID)
	if err != nil {
		return fmt.Errorf("failed to delete matches for division %d: %w", divisionID, err)
	}
	return nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "matches_pool_id_fkey", "matches_division_id_fkey":
			return ErrMatchPoolInvalid
		case "matches_team_a_id_fkey", "matches_team_b_id_fkey":
			return ErrMatchTeamInvalid
		}
	}
	return err
}
