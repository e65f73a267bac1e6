// AngelaMos | 2026
// entity.go

package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/inventory-api/internal/category"
)

type Product struct {
	ID         uuid.UUID `db:"id"`
	CategoryID uuid.UUID `db:"category_id"`
	Name       string    `db:"name"`
	Quantity   string    `db:"quantity"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// WithCategory is a product with its owning category loaded.
type WithCategory struct {
	Product
	Category category.Category `db:"category"`
}
