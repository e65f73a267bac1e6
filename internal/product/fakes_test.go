// AngelaMos | 2026
// fakes_test.go

package product

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/inventory-api/internal/category"
	"github.com/carterperez-dev/templates/inventory-api/internal/core"
	"github.com/carterperez-dev/templates/inventory-api/internal/middleware"
)

type fakeCategories struct {
	mu         sync.Mutex
	categories map[uuid.UUID]category.Category
	err        error
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{categories: map[uuid.UUID]category.Category{}}
}

func (f *fakeCategories) add(owner uuid.UUID, name string) category.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := category.Category{ID: uuid.New(), UserID: owner, Name: name, CreatedAt: time.Now().UTC()}
	f.categories[c.ID] = c
	return c
}

func (f *fakeCategories) GetByID(_ context.Context, id uuid.UUID) (*category.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.categories[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &c, nil
}

type memRepo struct {
	mu         sync.Mutex
	products   map[uuid.UUID]Product
	categories *fakeCategories
}

func newMemRepo(categories *fakeCategories) *memRepo {
	return &memRepo{products: map[uuid.UUID]Product{}, categories: categories}
}

func (m *memRepo) Create(_ context.Context, p *Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	m.products[p.ID] = *p
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &p, nil
}

func (m *memRepo) ListByCategory(_ context.Context, categoryID uuid.UUID) ([]Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Product{}
	for _, p := range m.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]WithCategory, error) {
	m.mu.Lock()
	products := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		products = append(products, p)
	}
	m.mu.Unlock()

	out := []WithCategory{}
	for _, p := range products {
		c, err := m.categories.GetByID(ctx, p.CategoryID)
		if err != nil {
			continue
		}
		if c.UserID == userID {
			out = append(out, WithCategory{Product: p, Category: *c})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memRepo) Update(_ context.Context, p *Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; !ok {
		return core.ErrNotFound
	}
	p.UpdatedAt = time.Now().UTC()
	m.products[p.ID] = *p
	return nil
}

func (m *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *memRepo) get(id uuid.UUID) (Product, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	return p, ok
}

// bearerIsUser treats the bearer secret as the caller's user id.
type bearerIsUser struct{}

func (bearerIsUser) Resolve(_ context.Context, secret string) (*middleware.ResolvedToken, error) {
	id, err := uuid.Parse(secret)
	if err != nil {
		return nil, core.ErrTokenInvalid
	}
	return &middleware.ResolvedToken{TokenID: uuid.New(), UserID: id}, nil
}
