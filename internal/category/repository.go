// AngelaMos | 2026
// repository.go

package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/inventory-api/internal/core"
)

const nameConstraint = "categories_user_id_name_key"

var ErrNameTaken = fmt.Errorf("category name: %w", core.ErrDuplicateKey)

type Repository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByName(
		ctx context.Context,
		userID uuid.UUID,
		name string,
		exclude uuid.UUID,
	) (bool, error)
	HasProducts(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, category *Category) error {
	query := `
		INSERT INTO categories (id, user_id, name)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, category, query,
		category.ID,
		category.UserID,
		category.Name,
	)
	if err != nil {
		return fmt.Errorf("create category: %w", mapUniqueViolation(err))
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM categories
		WHERE id = $1`

	var category Category
	err := r.db.GetContext(ctx, &category, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get category: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	return &category, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]Category, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM categories
		WHERE user_id = $1
		ORDER BY created_at, id`

	categories := []Category{}
	if err := r.db.SelectContext(ctx, &categories, query, userID); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

func (r *repository) Update(ctx context.Context, category *Category) error {
	query := `
		UPDATE categories
		SET name = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &category.UpdatedAt, query, category.ID, category.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update category: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update category: %w", mapUniqueViolation(err))
	}

	return nil
}

// Delete fails with core.ErrConflict while products still reference the
// category (products.category_id is ON DELETE RESTRICT).
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM categories WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if core.IsForeignKeyViolation(err) {
		return fmt.Errorf("delete category: %w", core.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete category: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ExistsByName(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	exclude uuid.UUID,
) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM categories
			WHERE user_id = $1 AND name = $2 AND id <> $3
		)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, name, exclude); err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}

	return exists, nil
}

func (r *repository) HasProducts(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM products WHERE category_id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("check category products: %w", err)
	}

	return exists, nil
}

func mapUniqueViolation(err error) error {
	constraint, ok := core.IsUniqueViolation(err)
	if !ok {
		return err
	}

	if constraint == nameConstraint {
		return ErrNameTaken
	}
	return core.ErrDuplicateKey
}
