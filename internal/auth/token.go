// AngelaMos | 2026
// token.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/templates/inventory-api/internal/core"
	"github.com/carterperez-dev/templates/inventory-api/internal/middleware"
)

type TokenService struct {
	repo    Repository
	ttl     time.Duration
	now     func() time.Time
	metrics *core.Metrics
}

type TokenOption func(*TokenService)

func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

func WithMetrics(m *core.Metrics) TokenOption {
	return func(s *TokenService) {
		s.metrics = m
	}
}

func NewTokenService(
	repo Repository,
	ttl time.Duration,
	opts ...TokenOption,
) *TokenService {
	s := &TokenService{
		repo: repo,
		ttl:  ttl,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue mints a token for userID, revoking any the user already holds.
// The returned plaintext is the only copy of the secret.
func (s *TokenService) Issue(
	ctx context.Context,
	userID uuid.UUID,
) (string, *Token, error) {
	ctx, span := core.StartSpan(ctx, "auth.Issue",
		attribute.String("user.id", userID.String()),
	)
	defer span.End()

	plaintext, err := core.GenerateAPIToken()
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	token := &Token{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: core.HashToken(plaintext),
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	}

	if err := s.repo.Replace(ctx, token); err != nil {
		core.SetSpanError(ctx, err)
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.metrics.TokenIssued()

	return plaintext, token, nil
}

func (s *TokenService) Resolve(
	ctx context.Context,
	secret string,
) (*middleware.ResolvedToken, error) {
	ctx, span := core.StartSpan(ctx, "auth.Resolve")
	defer span.End()

	if !core.IsAPITokenFormat(secret) {
		return nil, fmt.Errorf("resolve token: %w", core.ErrTokenInvalid)
	}

	token, err := s.repo.FindByHash(ctx, core.HashToken(secret))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("resolve token: %w", core.ErrTokenInvalid)
		}
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("resolve token: %w", err)
	}

	if token.IsExpiredAt(s.now()) {
		s.discard(ctx, token.ID)
		return nil, fmt.Errorf("resolve token: %w", core.ErrTokenExpired)
	}

	span.SetAttributes(attribute.String("user.id", token.UserID.String()))

	return &middleware.ResolvedToken{
		TokenID: token.ID,
		UserID:  token.UserID,
	}, nil
}

// CheckExpiration re-reads the exact token by id and rejects it once it
// has expired, independently of Resolve.
func (s *TokenService) CheckExpiration(
	ctx context.Context,
	tokenID uuid.UUID,
) error {
	token, err := s.repo.FindByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("check expiration: %w", core.ErrTokenInvalid)
		}
		return fmt.Errorf("check expiration: %w", err)
	}

	if token.IsExpiredAt(s.now()) {
		s.discard(ctx, token.ID)
		return fmt.Errorf("check expiration: %w", core.ErrTokenExpired)
	}

	return nil
}

func (s *TokenService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	return nil
}

func (s *TokenService) discard(ctx context.Context, id uuid.UUID) {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		slog.WarnContext(ctx, "failed to delete expired token",
			"token_id", id.String(),
			"error", err,
		)
	}
}

var (
	_ middleware.TokenResolver          = (*TokenService)(nil)
	_ middleware.TokenExpirationChecker = (*TokenService)(nil)
)
