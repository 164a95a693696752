// Package utils provides general-purpose helpers shared across the
// application: type-safe context keys, JSON response writing, HTTP client
// construction, JWT token generation and validation, and record id
// generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys. A dedicated type instead of
// a plain string prevents collisions with other packages storing values in
// the same context.
type contextKey string

// String implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key under which the auth middleware stores the
// authenticated owner id. Read it back with GetUserIDFromContext.
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext retrieves the owner id placed in the context by the
// auth middleware. ok is false when the value is missing or has an
// unexpected type.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
