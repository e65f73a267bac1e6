// AngelaMos | 2026
// entity.go

package auth

import (
	"time"

	"github.com/google/uuid"
)

// Token is a stored API token. The plaintext secret is never persisted;
// only its SHA-256 hash is.
type Token struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	TokenHash string    `db:"token_hash"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

func (t *Token) IsExpiredAt(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
