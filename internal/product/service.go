// AngelaMos | 2026
// service.go

package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/templates/inventory-api/internal/category"
	"github.com/carterperez-dev/templates/inventory-api/internal/core"
)

const (
	msgProductNotFound    = "Product not found."
	msgAddForbidden       = "You do not have permission to add products to this category."
	msgViewInCategory     = "You do not have permission to view products in this category."
	msgAssignForbidden    = "You do not have permission to assign this product to the specified category."
	msgProductForbiddenFn = "Forbidden. You do not have permission to %s this product."
)

const (
	actionView   = "view"
	actionUpdate = "update"
	actionDelete = "delete"
)

// CategoryReader loads a category by id regardless of owner; the service
// compares owners itself.
type CategoryReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error)
}

type Service struct {
	repo       Repository
	categories CategoryReader
}

func NewService(repo Repository, categories CategoryReader) *Service {
	return &Service{repo: repo, categories: categories}
}

// Create requires the target category to belong to the caller. A missing
// category is reported the same way as a foreign one.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	req CreateProductRequest,
) (*WithCategory, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("create product: %w", core.ErrUnauthorized)
	}

	ctx, span := core.StartSpan(ctx, "product.Create",
		attribute.String("category.id", req.CategoryID),
	)
	defer span.End()

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, core.ForbiddenError(msgAddForbidden)
	}

	cat, err := s.ownedCategory(ctx, userID, categoryID)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}
	if cat == nil {
		return nil, core.ForbiddenError(msgAddForbidden)
	}

	product := &Product{
		ID:         uuid.New(),
		CategoryID: cat.ID,
		Name:       req.Name,
		Quantity:   req.Quantity,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return nil, core.ForbiddenError(msgAddForbidden)
		}
		core.SetSpanError(ctx, err)
		return nil, err
	}

	return &WithCategory{Product: *product, Category: *cat}, nil
}

func (s *Service) ListByCategory(
	ctx context.Context,
	userID, categoryID uuid.UUID,
) ([]WithCategory, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("list products by category: %w", core.ErrUnauthorized)
	}

	cat, err := s.ownedCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, core.ForbiddenError(msgViewInCategory)
	}

	products, err := s.repo.ListByCategory(ctx, cat.ID)
	if err != nil {
		return nil, err
	}

	out := make([]WithCategory, len(products))
	for i := range products {
		out[i] = WithCategory{Product: products[i], Category: *cat}
	}
	return out, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]WithCategory, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("list products: %w", core.ErrUnauthorized)
	}

	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(
	ctx context.Context,
	userID, id uuid.UUID,
) (*WithCategory, error) {
	return s.authorize(ctx, userID, id, actionView)
}

// Update applies only the fields present in req. Moving the product to
// another category requires owning that category too.
func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	req UpdateProductRequest,
) (*WithCategory, error) {
	ctx, span := core.StartSpan(ctx, "product.Update")
	defer span.End()

	current, err := s.authorize(ctx, userID, id, actionUpdate)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, core.ForbiddenError(msgAssignForbidden)
		}

		cat, err := s.ownedCategory(ctx, userID, categoryID)
		if err != nil {
			core.SetSpanError(ctx, err)
			return nil, err
		}
		if cat == nil {
			return nil, core.ForbiddenError(msgAssignForbidden)
		}

		current.CategoryID = cat.ID
		current.Category = *cat
	}
	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Quantity != nil {
		current.Quantity = *req.Quantity
	}

	if err := s.repo.Update(ctx, &current.Product); err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			return nil, core.NotFoundError(msgProductNotFound)
		case errors.Is(err, core.ErrConflict):
			return nil, core.ForbiddenError(msgAssignForbidden)
		}
		core.SetSpanError(ctx, err)
		return nil, err
	}

	return current, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.authorize(ctx, userID, id, actionDelete); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return core.NotFoundError(msgProductNotFound)
		}
		return err
	}

	return nil
}

// authorize loads the product and its category: 404 when the product is
// absent, 403 when the category is missing or foreign.
func (s *Service) authorize(
	ctx context.Context,
	userID, id uuid.UUID,
	action string,
) (*WithCategory, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%s product: %w", action, core.ErrUnauthorized)
	}

	product, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return nil, core.NotFoundError(msgProductNotFound)
	}
	if err != nil {
		return nil, err
	}

	cat, err := s.ownedCategory(ctx, userID, product.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, core.ForbiddenError(fmt.Sprintf(msgProductForbiddenFn, action))
	}

	return &WithCategory{Product: *product, Category: *cat}, nil
}

// ownedCategory returns nil without error when the category is missing
// or belongs to someone else.
func (s *Service) ownedCategory(
	ctx context.Context,
	userID, categoryID uuid.UUID,
) (*category.Category, error) {
	cat, err := s.categories.GetByID(ctx, categoryID)
	if errors.Is(err, core.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}

	if !cat.OwnedBy(userID) {
		return nil, nil
	}
	return cat, nil
}
