package auth

import (
	"context"
)

// Context keys for authentication data
type contextKey string

const (
	// ContextKeyAddress is the context key for the authenticated wallet address
	ContextKeyAddress contextKey = "address"
	// ContextKeyUserID is the context key for the user's database ID
	ContextKeyUserID contextKey = "user_id"
)

// WithSession adds the verified session identity to the context
func WithSession(ctx context.Context, s *Session) context.Context {
	ctx = context.WithValue(ctx, ContextKeyUserID, s.UserID)
	ctx = context.WithValue(ctx, ContextKeyAddress, s.Address)
	return ctx
}

// UserIDFromContext retrieves the authenticated user ID from the context
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ContextKeyUserID).(int64)
	return id, ok
}

// AddressFromContext retrieves the authenticated wallet address from the context
func AddressFromContext(ctx context.Context) (string, bool) {
	addr, ok := ctx.Value(ContextKeyAddress).(string)
	return addr, ok
}

// SessionFromContext retrieves the full session identity from the context
func SessionFromContext(ctx context.Context) (*Session, bool) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return nil, false
	}
	addr, ok := AddressFromContext(ctx)
	if !ok {
		return nil, false
	}
	return &Session{UserID: id, Address: addr}, true
}
