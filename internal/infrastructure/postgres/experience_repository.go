package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillmate/skillmate-api/internal/domain/entity"
	"github.com/skillmate/skillmate-api/internal/domain/repository"
)

type ExperienceRepository struct {
	pool *pgxpool.Pool
}

func NewExperienceRepository(pool *pgxpool.Pool) *ExperienceRepository {
	return &ExperienceRepository{pool: pool}
}

func (r *ExperienceRepository) Create(ctx context.Context, e *entity.Experience) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO experiences (account_id, start_at, end_at, job_role, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, e.AccountID, e.StartAt, e.EndAt, e.JobRole, e.Description)

	return row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *ExperienceRepository) FindByID(ctx context.Context, id string) (*entity.Experience, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, account_id, start_at, end_at, job_role, description, created_at, updated_at
		FROM experiences WHERE id = $1`, id)
	return scanExperience(row)
}

func (r *ExperienceRepository) FindAll(ctx context.Context) ([]entity.Experience, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, account_id, start_at, end_at, job_role, description, created_at, updated_at
		FROM experiences ORDER BY start_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExperiences(rows)
}

func (r *ExperienceRepository) FindByAccountID(ctx context.Context, accountID string) ([]entity.Experience, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, account_id, start_at, end_at, job_role, description, created_at, updated_at
		FROM experiences WHERE account_id = $1 ORDER BY start_at DESC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectExperiences(rows)
}

func (r *ExperienceRepository) Update(ctx context.Context, e *entity.Experience) error {
	e.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE experiences
		SET account_id = $1, start_at = $2, end_at = $3, job_role = $4, description = $5, updated_at = $6
		WHERE id = $7
	`, e.AccountID, e.StartAt, e.EndAt, e.JobRole, e.Description, e.UpdatedAt, e.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ExperienceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM experiences WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanExperience(row pgx.Row) (*entity.Experience, error) {
	e := &entity.Experience{}
	if err := row.Scan(&e.ID, &e.AccountID, &e.StartAt, &e.EndAt,
		&e.JobRole, &e.Description, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func collectExperiences(rows pgx.Rows) ([]entity.Experience, error) {
	out := []entity.Experience{}
	for rows.Next() {
		e := entity.Experience{}
		if err := rows.Scan(&e.ID, &e.AccountID, &e.StartAt, &e.EndAt,
			&e.JobRole, &e.Description, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

var _ repository.ExperienceRepository = (*ExperienceRepository)(nil)
