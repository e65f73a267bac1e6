// AngelaMos | 2026
// repository.go

package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/inventory-api/internal/core"
)

type Repository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]Product, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]WithCategory, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Create reports core.ErrConflict when the category row is gone.
func (r *repository) Create(ctx context.Context, product *Product) error {
	query := `
		INSERT INTO products (id, category_id, name, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, product, query,
		product.ID,
		product.CategoryID,
		product.Name,
		product.Quantity,
	)
	if core.IsForeignKeyViolation(err) {
		return fmt.Errorf("create product: %w", core.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	query := `
		SELECT id, category_id, name, quantity, created_at, updated_at
		FROM products
		WHERE id = $1`

	var product Product
	err := r.db.GetContext(ctx, &product, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get product: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	return &product, nil
}

func (r *repository) ListByCategory(
	ctx context.Context,
	categoryID uuid.UUID,
) ([]Product, error) {
	query := `
		SELECT id, category_id, name, quantity, created_at, updated_at
		FROM products
		WHERE category_id = $1
		ORDER BY created_at, id`

	products := []Product{}
	if err := r.db.SelectContext(ctx, &products, query, categoryID); err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}

	return products, nil
}

// ListByUser returns every product whose category belongs to userID,
// each with that category loaded.
func (r *repository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]WithCategory, error) {
	query := `
		SELECT p.id, p.category_id, p.name, p.quantity, p.created_at, p.updated_at,
		       c.id         AS "category.id",
		       c.user_id    AS "category.user_id",
		       c.name       AS "category.name",
		       c.created_at AS "category.created_at",
		       c.updated_at AS "category.updated_at"
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE c.user_id = $1
		ORDER BY p.created_at, p.id`

	products := []WithCategory{}
	if err := r.db.SelectContext(ctx, &products, query, userID); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}

func (r *repository) Update(ctx context.Context, product *Product) error {
	query := `
		UPDATE products
		SET category_id = $2, name = $3, quantity = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &product.UpdatedAt, query,
		product.ID,
		product.CategoryID,
		product.Name,
		product.Quantity,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update product: %w", core.ErrNotFound)
	}
	if core.IsForeignKeyViolation(err) {
		return fmt.Errorf("update product: %w", core.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete product: %w", core.ErrNotFound)
	}

	return nil
}
