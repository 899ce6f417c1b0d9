package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrUnauthenticated indicates no user identity is attached to the request
// context.
var ErrUnauthenticated = errors.New("auth.unauthenticated")

type userIDContextKey struct{}

// CtxKeyUserID is the context key carrying the authenticated user id, as
// resolved from the external identity provider's session cookie. Exposed so
// the logger can extract it onto request-scoped records.
var CtxKeyUserID = userIDContextKey{}

// WithUserID attaches the authenticated user's id to the context.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, userID)
}

// UserID returns the authenticated user's id from the context, or
// ErrUnauthenticated.
func UserID(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(CtxKeyUserID).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, ErrUnauthenticated
	}
	return userID, nil
}
