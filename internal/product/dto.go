// AngelaMos | 2026
// dto.go

package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/inventory-api/internal/category"
)

type CreateProductRequest struct {
	CategoryID string `json:"category_id" validate:"required,uuid"`
	Name       string `json:"name"        validate:"required,max=255"`
	Quantity   string `json:"quantity"    validate:"required,max=255"`
}

type UpdateProductRequest struct {
	CategoryID *string `json:"category_id" validate:"omitnil,filled,uuid"`
	Name       *string `json:"name"        validate:"omitnil,filled,max=255"`
	Quantity   *string `json:"quantity"    validate:"omitnil,filled,max=255"`
}

type ProductResponse struct {
	ID         uuid.UUID                 `json:"id"`
	CategoryID uuid.UUID                 `json:"category_id"`
	Name       string                    `json:"name"`
	Quantity   string                    `json:"quantity"`
	CreatedAt  time.Time                 `json:"created_at"`
	UpdatedAt  time.Time                 `json:"updated_at"`
	Category   category.CategoryResponse `json:"category"`
}

// ProductSummary is the list shape: id, name, quantity and the embedded
// category.
type ProductSummary struct {
	ID       uuid.UUID                 `json:"id"`
	Name     string                    `json:"name"`
	Quantity string                    `json:"quantity"`
	Category category.CategoryResponse `json:"category"`
}

func ToProductResponse(p *WithCategory) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		CategoryID: p.CategoryID,
		Name:       p.Name,
		Quantity:   p.Quantity,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Category:   category.ToCategoryResponse(&p.Category),
	}
}

func ToProductSummaries(products []WithCategory) []ProductSummary {
	out := make([]ProductSummary, len(products))
	for i := range products {
		p := &products[i]
		out[i] = ProductSummary{
			ID:       p.ID,
			Name:     p.Name,
			Quantity: p.Quantity,
			Category: category.ToCategoryResponse(&p.Category),
		}
	}
	return out
}
