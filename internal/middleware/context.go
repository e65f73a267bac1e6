// AngelaMos | 2026
// context.go

package middleware

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	TokenIDKey   contextKey = "token_id"
	RequestIDKey contextKey = "request_id"
	requestMeta  contextKey = "request_meta"
)

// requestInfo is created by Logger before routing so that values bound
// further down the chain can still be reported once the request ends.
type requestInfo struct {
	userID uuid.UUID
}

func withRequestInfo(ctx context.Context) (context.Context, *requestInfo) {
	info := &requestInfo{}
	return context.WithValue(ctx, requestMeta, info), info
}

func recordUserID(ctx context.Context, id uuid.UUID) {
	if info, ok := ctx.Value(requestMeta).(*requestInfo); ok {
		info.userID = id
	}
}

// GetUserID returns the caller bound by Authenticator, or uuid.Nil on an
// unauthenticated request.
func GetUserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func GetTokenID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(TokenIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithIdentity binds a resolved token to ctx. Authenticator is the only
// production caller; tests use it to build authenticated requests.
func WithIdentity(ctx context.Context, tok *ResolvedToken) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, tok.UserID)
	ctx = context.WithValue(ctx, TokenIDKey, tok.TokenID)
	recordUserID(ctx, tok.UserID)
	return ctx
}
