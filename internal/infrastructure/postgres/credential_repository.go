package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skillmate/skillmate-api/internal/domain/entity"
	"github.com/skillmate/skillmate-api/internal/domain/repository"
)

type CredentialRepository struct {
	pool *pgxpool.Pool
}

func NewCredentialRepository(pool *pgxpool.Pool) *CredentialRepository {
	return &CredentialRepository{pool: pool}
}

func (r *CredentialRepository) Create(ctx context.Context, c *entity.Credential) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO credentials (account_id, email_local, email_domain, password_hash, oauth_token, oauth_provider)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, c.AccountID, c.EmailLocal, c.EmailDomain, c.PasswordHash, c.OAuthToken, c.OAuthProvider)

	return mapWriteErr(row.Scan(&c.CreatedAt))
}

func (r *CredentialRepository) FindByEmail(ctx context.Context, local, domain string) (*entity.Credential, error) {
	c := &entity.Credential{}

	row := r.pool.QueryRow(ctx, `
		SELECT account_id, email_local, email_domain, password_hash, oauth_token, oauth_provider, created_at
		FROM credentials
		WHERE email_local = $1 AND email_domain = $2
	`, local, domain)

	if err := row.Scan(&c.AccountID, &c.EmailLocal, &c.EmailDomain, &c.PasswordHash,
		&c.OAuthToken, &c.OAuthProvider, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return c, nil
}

// DeleteByAccountID removes a credential. Deleting an absent credential is
// not an error; the signup compensation must be idempotent.
func (r *CredentialRepository) DeleteByAccountID(ctx context.Context, accountID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM credentials WHERE account_id = $1`, accountID)
	return err
}

var _ repository.CredentialRepository = (*CredentialRepository)(nil)
