// AngelaMos | 2026
// service.go

package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/inventory-api/internal/core"
)

const (
	msgNameTaken        = "The name has already been taken."
	msgCategoryNotFound = "Category not found."
	msgForbidden        = "You do not have permission to access this category."
	msgHasProducts      = "Category still has products."
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	req CreateCategoryRequest,
) (*Category, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("create category: %w", core.ErrUnauthorized)
	}

	ctx, span := core.StartSpan(ctx, "category.Create")
	defer span.End()

	if err := s.ensureUnique(ctx, userID, req.Name, uuid.Nil); err != nil {
		return nil, err
	}

	category := &Category{
		ID:     uuid.New(),
		UserID: userID,
		Name:   req.Name,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		core.SetSpanError(ctx, err)
		return nil, nameError(err)
	}

	return category, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Category, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("list categories: %w", core.ErrUnauthorized)
	}

	return s.repo.ListByUser(ctx, userID)
}

// Get returns 404 when the category does not exist and 403 when it
// belongs to another user.
func (s *Service) Get(
	ctx context.Context,
	userID, id uuid.UUID,
) (*Category, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("get category: %w", core.ErrUnauthorized)
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	if !category.OwnedBy(userID) {
		return nil, core.ForbiddenError(msgForbidden)
	}

	return category, nil
}

func (s *Service) Update(
	ctx context.Context,
	userID, id uuid.UUID,
	req UpdateCategoryRequest,
) (*Category, error) {
	category, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name == nil {
		return category, nil
	}

	if err := s.ensureUnique(ctx, userID, *req.Name, category.ID); err != nil {
		return nil, err
	}

	category.Name = *req.Name
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, notFound(nameError(err))
	}

	return category, nil
}

// Delete refuses to remove a category that still has products.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	ctx, span := core.StartSpan(ctx, "category.Delete")
	defer span.End()

	category, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}

	busy, err := s.repo.HasProducts(ctx, category.ID)
	if err != nil {
		core.SetSpanError(ctx, err)
		return err
	}
	if busy {
		return core.ConflictError(msgHasProducts)
	}

	if err := s.repo.Delete(ctx, category.ID); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return core.ConflictError(msgHasProducts)
		}
		return notFound(err)
	}

	return nil
}

func (s *Service) ensureUnique(
	ctx context.Context,
	userID uuid.UUID,
	name string,
	exclude uuid.UUID,
) error {
	taken, err := s.repo.ExistsByName(ctx, userID, name, exclude)
	if err != nil {
		return err
	}
	if taken {
		return core.ValidationError(msgNameTaken)
	}
	return nil
}

func nameError(err error) error {
	if errors.Is(err, ErrNameTaken) {
		return core.ValidationError(msgNameTaken)
	}
	return err
}

func notFound(err error) error {
	if errors.Is(err, core.ErrNotFound) {
		return core.NotFoundError(msgCategoryNotFound)
	}
	return err
}
