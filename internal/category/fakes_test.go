// AngelaMos | 2026
// fakes_test.go

package category

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/inventory-api/internal/core"
	"github.com/carterperez-dev/templates/inventory-api/internal/middleware"
)

type memRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]Category
	products   map[uuid.UUID]int
}

func newMemRepo() *memRepo {
	return &memRepo{
		categories: map[uuid.UUID]Category{},
		products:   map[uuid.UUID]int{},
	}
}

func (m *memRepo) Create(_ context.Context, c *Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.categories {
		if existing.UserID == c.UserID && existing.Name == c.Name {
			return ErrNameTaken
		}
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	m.categories[c.ID] = *c
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &c, nil
}

func (m *memRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Category{}
	for _, c := range m.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memRepo) Update(_ context.Context, c *Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[c.ID]; !ok {
		return core.ErrNotFound
	}
	c.UpdatedAt = time.Now().UTC()
	m.categories[c.ID] = *c
	return nil
}

func (m *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return core.ErrNotFound
	}
	if m.products[id] > 0 {
		return core.ErrConflict
	}
	delete(m.categories, id)
	return nil
}

func (m *memRepo) ExistsByName(
	_ context.Context,
	userID uuid.UUID,
	name string,
	exclude uuid.UUID,
) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.categories {
		if c.UserID == userID && c.Name == name && id != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) HasProducts(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.products[id] > 0, nil
}

func (m *memRepo) addProduct(categoryID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[categoryID]++
}

func (m *memRepo) has(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.categories[id]
	return ok
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
