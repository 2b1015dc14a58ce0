package middleware

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ctxUserID   contextKey = "user_id"
	ctxRole     contextKey = "actor_role"
	ctxVendorID contextKey = "vendor_id"
)

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}

func withString(ctx context.Context, key contextKey, value string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, key, value)
}

func UserIDFromContext(ctx context.Context) string {
	return stringValue(ctx, ctxUserID)
}

func RoleFromContext(ctx context.Context) string {
	return stringValue(ctx, ctxRole)
}

func VendorIDFromContext(ctx context.Context) string {
	return stringValue(ctx, ctxVendorID)
}

// WithUserID, WithRole and WithVendorID are set by Auth; tests use them to
// fake an authenticated caller.
func WithUserID(ctx context.Context, userID string) context.Context {
	return withString(ctx, ctxUserID, userID)
}

func WithRole(ctx context.Context, role string) context.Context {
	return withString(ctx, ctxRole, role)
}

func WithVendorID(ctx context.Context, vendorID string) context.Context {
	return withString(ctx, ctxVendorID, vendorID)
}

// ParsedUserID returns the authenticated user id, or false when absent or malformed.
func ParsedUserID(ctx context.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(UserIDFromContext(ctx))
	return id, err == nil
}

// ParsedVendorID returns nil for callers without a vendor profile.
func ParsedVendorID(ctx context.Context) *uuid.UUID {
	id, err := uuid.Parse(VendorIDFromContext(ctx))
	if err != nil {
		return nil
	}
	return &id
}
