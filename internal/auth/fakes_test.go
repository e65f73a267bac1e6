// AngelaMos | 2026
// fakes_test.go

package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/inventory-api/internal/core"
)

type memTokenRepo struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]Token
	err    error
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: map[uuid.UUID]Token{}}
}

func (m *memTokenRepo) Replace(_ context.Context, token *Token) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for id, t := range m.tokens {
		if t.UserID == token.UserID {
			delete(m.tokens, id)
		}
	}
	token.CreatedAt = time.Now()
	m.tokens[token.ID] = *token
	return nil
}

func (m *memTokenRepo) FindByHash(_ context.Context, hash string) (*Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, t := range m.tokens {
		if t.TokenHash == hash {
			return &t, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *memTokenRepo) FindByID(_ context.Context, id uuid.UUID) (*Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.tokens[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &t, nil
}

func (m *memTokenRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, id)
	return nil
}

func (m *memTokenRepo) DeleteAllForUser(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, t := range m.tokens {
		if t.UserID == userID {
			delete(m.tokens, id)
		}
	}
	return nil
}

func (m *memTokenRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tokens)
}

type fakeUsers struct {
	mu       sync.Mutex
	byEmail  map[string]*UserInfo
	rehashed map[uuid.UUID]string
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byEmail:  map[string]*UserInfo{},
		rehashed: map[uuid.UUID]string{},
	}
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Create(
	_ context.Context,
	name, email, phone, passwordHash string,
) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := strings.ToLower(email)
	if _, ok := f.byEmail[key]; ok {
		return nil, core.ValidationError("The email has already been taken.")
	}
	now := time.Now()
	u := &UserInfo{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.byEmail[key] = u
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, userID uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rehashed[userID] = hash
	return nil
}
