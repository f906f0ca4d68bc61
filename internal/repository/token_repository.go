package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// TokenRepository is the authoritative store of live bearer tokens.
// A UNIQUE constraint on user_id backs the one-live-token-per-user rule.
type TokenRepository interface {
	Create(ctx context.Context, token *domain.Token) error
	GetByToken(ctx context.Context, raw string) (*domain.Token, error)
	GetByUser(ctx context.Context, userID string) (*domain.Token, error)
	// Replace removes any prior token for the user and inserts the new one
	// in a single transaction, so the user never holds two live tokens.
	Replace(ctx context.Context, userID string, token *domain.Token) error
	// Delete revokes a token by raw string. Deleting an absent token is a no-op.
	Delete(ctx context.Context, raw string) error
}

type tokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository returns a Postgres-backed implementation.
func NewTokenRepository(pool *pgxpool.Pool) TokenRepository {
	return &tokenRepository{pool: pool}
}

func (r *tokenRepository) Create(ctx context.Context, token *domain.Token) error {
	const query = `
        INSERT INTO tokens (token, user_id, token_kind)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		token.Token,
		token.UserID,
		token.Kind,
	).Scan(&token.ID, &token.CreatedAt)
}

func (r *tokenRepository) GetByToken(ctx context.Context, raw string) (*domain.Token, error) {
	const query = `
        SELECT id, token, user_id, token_kind, created_at
        FROM tokens WHERE token=$1`

	return scanToken(r.pool.QueryRow(ctx, query, raw))
}

func (r *tokenRepository) GetByUser(ctx context.Context, userID string) (*domain.Token, error) {
	const query = `
        SELECT id, token, user_id, token_kind, created_at
        FROM tokens WHERE user_id=$1`

	return scanToken(r.pool.QueryRow(ctx, query, userID))
}

func (r *tokenRepository) Replace(ctx context.Context, userID string, token *domain.Token) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM tokens WHERE user_id=$1`, userID); err != nil {
		return err
	}

	const insert = `
        INSERT INTO tokens (token, user_id, token_kind)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	if err := tx.QueryRow(ctx, insert,
		token.Token,
		token.UserID,
		token.Kind,
	).Scan(&token.ID, &token.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *tokenRepository) Delete(ctx context.Context, raw string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tokens WHERE token=$1`, raw)
	return err
}

func scanToken(row pgx.Row) (*domain.Token, error) {
	var token domain.Token
	if err := row.Scan(
		&token.ID,
		&token.Token,
		&token.UserID,
		&token.Kind,
		&token.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &token, nil
}
