// Package schoolcommon provides context management utilities for the
// school service: the acting tenant, the authenticated user, and test
// markers are carried on the request context, never in globals.
package schoolcommon

import (
	"context"

	"github.com/siakadlabs/siakad-internal/pkg/types"
)

type ctxKeyType string

const (
	ctxTenantIdKey    ctxKeyType = "SiakadTenantId"
	ctxUserContextKey ctxKeyType = "SiakadUserContext"
	ctxTestContextKey ctxKeyType = "SiakadTestContext"
)

// UserContext identifies the authenticated staff account acting on a
// request. Included in every audit log entry the policy layer emits.
type UserContext struct {
	UserID types.UserId
	Role   types.Role
}

// WithTenantID sets the acting tenant in the context.
func WithTenantID(ctx context.Context, tenantID types.TenantId) context.Context {
	return context.WithValue(ctx, ctxTenantIdKey, tenantID)
}

// GetTenantID retrieves the acting tenant from the context. Returns the
// empty TenantId when no tenant has been resolved.
func GetTenantID(ctx context.Context) types.TenantId {
	if tenantID, ok := ctx.Value(ctxTenantIdKey).(types.TenantId); ok {
		return tenantID
	}
	return ""
}

// WithUserContext sets the authenticated user in the context.
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, ctxUserContextKey, user)
}

// GetUserContext retrieves the authenticated user from the context.
func GetUserContext(ctx context.Context) *UserContext {
	if user, ok := ctx.Value(ctxUserContextKey).(*UserContext); ok {
		return user
	}
	return nil
}

// GetUserID returns the acting user id, or empty when unauthenticated.
func GetUserID(ctx context.Context) types.UserId {
	if user := GetUserContext(ctx); user != nil {
		return user.UserID
	}
	return ""
}

// WithTestContext marks the context as belonging to a test run.
func WithTestContext(ctx context.Context, isTest bool) context.Context {
	return context.WithValue(ctx, ctxTestContextKey, isTest)
}

// IsTestContext reports whether the context belongs to a test run.
func IsTestContext(ctx context.Context) bool {
	if isTest, ok := ctx.Value(ctxTestContextKey).(bool); ok {
		return isTest
	}
	return false
}
