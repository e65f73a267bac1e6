// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/inventory-api/internal/core"
)

const (
	StageHeader     = "header"
	StageResolve    = "resolve"
	StageExpiration = "expiration"
)

type ResolvedToken struct {
	TokenID uuid.UUID
	UserID  uuid.UUID
}

type TokenResolver interface {
	Resolve(ctx context.Context, secret string) (*ResolvedToken, error)
}

type TokenExpirationChecker interface {
	CheckExpiration(ctx context.Context, tokenID uuid.UUID) error
}

type RejectionRecorder interface {
	AuthRejected(stage string)
}

// Authenticator resolves the bearer token and binds the owning user and
// token ids to the request context. Every rejection carries the same
// message.
func Authenticator(
	resolver TokenResolver,
	rec RejectionRecorder,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				reject(w, rec, StageHeader)
				return
			}

			resolved, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				handleAuthError(w, r, rec, StageResolve, err)
				return
			}

			ctx := WithIdentity(r.Context(), resolved)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExpirationGuard re-checks the expiry of the exact token bound by
// Authenticator. It must be mounted after Authenticator.
func ExpirationGuard(
	checker TokenExpirationChecker,
	rec RejectionRecorder,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenID := GetTokenID(r.Context())
			if tokenID == uuid.Nil {
				reject(w, rec, StageExpiration)
				return
			}

			if err := checker.CheckExpiration(r.Context(), tokenID); err != nil {
				handleAuthError(w, r, rec, StageExpiration, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

func handleAuthError(
	w http.ResponseWriter,
	r *http.Request,
	rec RejectionRecorder,
	stage string,
	err error,
) {
	switch {
	case errors.Is(err, core.ErrTokenInvalid),
		errors.Is(err, core.ErrTokenExpired):
		slog.DebugContext(r.Context(), "token rejected",
			"stage", stage,
			"reason", err.Error(),
			"request_id", GetRequestID(r.Context()),
		)
		reject(w, rec, stage)
	default:
		core.SetSpanError(r.Context(), err)
		core.InternalServerError(w, err)
	}
}

func reject(w http.ResponseWriter, rec RejectionRecorder, stage string) {
	if rec != nil {
		rec.AuthRejected(stage)
	}
	core.Unauthorized(w, core.MsgUnauthorized)
}
