// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/inventory-api/internal/core"
)

const (
	emailConstraint = "users_email_key"
	phoneConstraint = "users_phone_key"
)

var (
	ErrEmailTaken = fmt.Errorf("email: %w", core.ErrDuplicateKey)
	ErrPhoneTaken = fmt.Errorf("phone: %w", core.ErrDuplicateKey)
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByEmail(ctx context.Context, email string, exclude uuid.UUID) (bool, error)
	ExistsByPhone(ctx context.Context, phone string, exclude uuid.UUID) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, name, email, phone, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, user, query,
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("create user: %w", mapUniqueViolation(err))
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `
		SELECT id, name, email, phone, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `
		SELECT id, name, email, phone, password_hash, created_at, updated_at
		FROM users
		WHERE lower(email) = lower($1)`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, phone = $4, password_hash = $5,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &user.UpdatedAt, query,
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update user: %w", mapUniqueViolation(err))
	}

	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id uuid.UUID,
	passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}

	return nil
}

// Delete removes the user and everything it owns in one transaction.
// Products restrict deletion of their category, so they go first; the
// category rows are locked up front so no product can be added to them
// in between.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return core.InTx(ctx, r.db, func(tx core.DBTX) error {
		lockCategories := `
			SELECT id FROM categories WHERE user_id = $1 FOR UPDATE`
		if _, err := tx.ExecContext(ctx, lockCategories, id); err != nil {
			return fmt.Errorf("lock user categories: %w", err)
		}

		deleteProducts := `
			DELETE FROM products
			USING categories
			WHERE products.category_id = categories.id
			  AND categories.user_id = $1`
		if _, err := tx.ExecContext(ctx, deleteProducts, id); err != nil {
			return fmt.Errorf("delete user products: %w", err)
		}

		deleteTokens := `DELETE FROM api_tokens WHERE user_id = $1`
		if _, err := tx.ExecContext(ctx, deleteTokens, id); err != nil {
			return fmt.Errorf("delete user api tokens: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}

		if rows == 0 {
			return fmt.Errorf("delete user: %w", core.ErrNotFound)
		}

		return nil
	})
}

// ExistsByEmail compares case-insensitively and ignores the row with id exclude; pass uuid.Nil to check
// every user.
func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
	exclude uuid.UUID,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM users WHERE lower(email) = lower($1) AND id <> $2
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email, exclude); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}

func (r *repository) ExistsByPhone(
	ctx context.Context,
	phone string,
	exclude uuid.UUID,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE phone = $1 AND id <> $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, phone, exclude); err != nil {
		return false, fmt.Errorf("check phone exists: %w", err)
	}

	return exists, nil
}

func mapUniqueViolation(err error) error {
	constraint, ok := core.IsUniqueViolation(err)
	if !ok {
		return err
	}

	switch constraint {
	case emailConstraint:
		return ErrEmailTaken
	case phoneConstraint:
		return ErrPhoneTaken
	default:
		return core.ErrDuplicateKey
	}
}
