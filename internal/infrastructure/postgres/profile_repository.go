package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillmate/skillmate-api/internal/domain/entity"
	"github.com/skillmate/skillmate-api/internal/domain/repository"
)

// activeOnly is the single soft-delete predicate applied by every profile
// query. Soft-deleted rows stay in the table but are invisible to the API.
const activeOnly = "deleted = FALSE"

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) Create(ctx context.Context, p *entity.Profile) error {
	skills, err := encodeSkills(p.Skills)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (account_id, name, avatar_url, job_role, skills)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, p.AccountID, p.Name, p.AvatarURL, p.JobRole, skills)

	return mapWriteErr(row.Scan(&p.CreatedAt, &p.UpdatedAt))
}

func (r *ProfileRepository) FindByAccountID(ctx context.Context, accountID string) (*entity.Profile, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT account_id, name, avatar_url, job_role, skills, deleted, created_at, updated_at
		FROM profiles
		WHERE account_id = $1 AND `+activeOnly, accountID)

	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProfileRepository) FindAll(ctx context.Context) ([]entity.Profile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT account_id, name, avatar_url, job_role, skills, deleted, created_at, updated_at
		FROM profiles
		WHERE `+activeOnly+`
		ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProfiles(rows)
}

// Update matches on accountID, the key the row currently holds, so a
// re-keyed p.AccountID lands on the right row.
func (r *ProfileRepository) Update(ctx context.Context, accountID string, p *entity.Profile) error {
	skills, err := encodeSkills(p.Skills)
	if err != nil {
		return err
	}
	p.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE profiles
		SET account_id = $1, name = $2, avatar_url = $3, job_role = $4, skills = $5, updated_at = $6
		WHERE account_id = $7 AND `+activeOnly,
		p.AccountID, p.Name, p.AvatarURL, p.JobRole, skills, p.UpdatedAt, accountID)
	if err != nil {
		return mapWriteErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) SoftDelete(ctx context.Context, accountID string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE profiles SET deleted = TRUE, updated_at = now()
		WHERE account_id = $1 AND `+activeOnly, accountID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) SaveSkills(ctx context.Context, accountID string, skills []entity.Skill) error {
	b, err := encodeSkills(skills)
	if err != nil {
		return err
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE profiles SET skills = $1, updated_at = now()
		WHERE account_id = $2 AND `+activeOnly, b, accountID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) SearchBySkillName(ctx context.Context, name string) ([]entity.Profile, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT account_id, name, avatar_url, job_role, skills, deleted, created_at, updated_at
		FROM profiles
		WHERE `+activeOnly+`
		  AND EXISTS (
			SELECT 1 FROM jsonb_array_elements(skills) AS s
			WHERE s->>'name' = $1
		  )
		ORDER BY created_at`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProfiles(rows)
}

func encodeSkills(skills []entity.Skill) ([]byte, error) {
	if skills == nil {
		skills = []entity.Skill{}
	}
	return json.Marshal(skills)
}

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	p := &entity.Profile{}
	var skills []byte
	if err := row.Scan(&p.AccountID, &p.Name, &p.AvatarURL, &p.JobRole,
		&skills, &p.Deleted, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(skills, &p.Skills); err != nil {
		return nil, err
	}
	return p, nil
}

func collectProfiles(rows pgx.Rows) ([]entity.Profile, error) {
	out := []entity.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)
