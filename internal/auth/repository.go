// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/inventory-api/internal/core"
)

type Repository interface {
	Replace(ctx context.Context, token *Token) error
	FindByHash(ctx context.Context, tokenHash string) (*Token, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Token, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Replace drops every token the user holds and stores the new one. The
// user row is locked first so concurrent logins for the same user run one
// after the other and leave a single live token.
func (r *repository) Replace(ctx context.Context, token *Token) error {
	err := core.InTx(ctx, r.db, func(tx core.DBTX) error {
		lock := `SELECT id FROM users WHERE id = $1 FOR UPDATE`
		if _, err := tx.ExecContext(ctx, lock, token.UserID); err != nil {
			return fmt.Errorf("lock user: %w", err)
		}

		revoke := `DELETE FROM api_tokens WHERE user_id = $1`
		if _, err := tx.ExecContext(ctx, revoke, token.UserID); err != nil {
			return fmt.Errorf("revoke api tokens: %w", err)
		}

		insert := `
			INSERT INTO api_tokens (id, user_id, token_hash, expires_at)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at`

		return tx.GetContext(ctx, &token.CreatedAt, insert,
			token.ID,
			token.UserID,
			token.TokenHash,
			token.ExpiresAt,
		)
	})
	if err != nil {
		return fmt.Errorf("replace api token: %w", err)
	}

	return nil
}

func (r *repository) FindByHash(
	ctx context.Context,
	tokenHash string,
) (*Token, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, created_at
		FROM api_tokens
		WHERE token_hash = $1`

	var token Token
	err := r.db.GetContext(ctx, &token, query, tokenHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find api token: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find api token: %w", err)
	}

	return &token, nil
}

func (r *repository) FindByID(
	ctx context.Context,
	id uuid.UUID,
) (*Token, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, created_at
		FROM api_tokens
		WHERE id = $1`

	var token Token
	err := r.db.GetContext(ctx, &token, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find api token: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find api token: %w", err)
	}

	return &token, nil
}

func (r *repository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM api_tokens WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete api token: %w", err)
	}

	return nil
}

func (r *repository) DeleteAllForUser(
	ctx context.Context,
	userID uuid.UUID,
) error {
	query := `DELETE FROM api_tokens WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("delete user api tokens: %w", err)
	}

	return nil
}
