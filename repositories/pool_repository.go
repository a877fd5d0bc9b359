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
	ErrPoolNotFound        = errors.New("pool not found")
	ErrPoolDivisionInvalid = errors.New("pool division conflict or invalid")
)

type PoolRepository interface {
	Create(ctx context.Context, exec SQLExecutor, pool *models.Pool) error
	GetByID(ctx context.Context, id int) (*models.Pool, error)
	ListByDivision(ctx context.Context, divisionID int) ([]*models.Pool, error)
	DeleteByDivision(ctx context.Context, exec SQLExecutor, divisionID int) error
}

type postgresPoolRepository struct {
	db *sql.DB
}

func NewPostgresPoolRepository(db *sql.DB) PoolRepository {
	return &postgresPoolRepository{db: db}
}

func (r *postgresPoolRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPoolRepository) Create(ctx context.Context, exec SQLExecutor, pool *models.Pool) error {
	query := `
		INSERT INTO pools (division_id, name, order_index)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		pool.DivisionID,
		pool.Name,
		pool.OrderIndex,
	).Scan(&pool.ID, &pool.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "pools_division_id_fkey" {
			return ErrPoolDivisionInvalid
		}
		return fmt.Errorf("failed to insert pool: %w", err)
	}
	return nil
}

func (r *postgresPoolRepository) GetByID(ctx context.Context, id int) (*models.Pool, error) {
	query := `
		SELECT id, division_id, name, order_index, created_at
		FROM pools
		WHERE id = $1`

	pool := &models.Pool{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&pool.ID,
		&pool.DivisionID,
		&pool.Name,
		&pool.OrderIndex,
		&pool.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPoolNotFound
		}
		return nil, fmt.Errorf("failed to scan pool by id %d: %w", id, err)
	}
	return pool, nil
}

func (r *postgresPoolRepository) ListByDivision(ctx context.Context, divisionID int) ([]*models.Pool, error) {
	query := `
		SELECT id, division_id, name, order_index, created_at
		FROM pools
		WHERE division_id = $1
		ORDER BY order_index ASC`

	rows, err := r.db.QueryContext(ctx, query, divisionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pools for division %d: %w", divisionID, err)
	}
	defer rows.Close()

	pools := make([]*models.Pool, 0)
	for rows.Next() {
		var p models.Pool
		if scanErr := rows.Scan(&p.ID, &p.DivisionID, &p.Name, &p.OrderIndex, &p.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan pool row: %w", scanErr)
		}
		pools = append(pools, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pool rows: %w", err)
	}
	return pools, nil
}

func (r *postgresPoolRepository) DeleteByDivision(ctx context.Context, exec SQLExecutor, divisionID int) error {
	query := `DELETE FROM pools WHERE division_id = $1`
	_, err := r.getExecutor(exec).ExecContext(ctx, query, divisionID)
	if err != nil {
		return fmt.Errorf("failed to delete pools for division %d: %w", divisionID, err)
	}
	return nil
}
