package policy

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/schoolcommon"
)

// EnsureAccess verifies that e belongs to the tenant in the context.
// Records with an empty tenant id are treated as tenant-agnostic and
// allowed through with a warning; a mismatch is logged as a security
// event and rejected. The entity itself is never included in the error
// returned to the caller.
func EnsureAccess(ctx context.Context, e Scoped) apperrors.Error {
	want := schoolcommon.GetTenantID(ctx)
	got := e.ScopeTenantID()

	if got == "" {
		log.Ctx(ctx).Warn().
			Str("kind", e.EntityKind()).
			Str("key", e.EntityID()).
			Msg("access check on record without tenant scope")
		return nil
	}

	if got != want {
		log.Ctx(ctx).Warn().
			Str("user_id", string(schoolcommon.GetUserID(ctx))).
			Str("kind", e.EntityKind()).
			Str("key", e.EntityID()).
			Str("expected_tenant", string(want)).
			Str("actual_tenant", string(got)).
			Msg("cross-tenant access denied")
		return ErrForbidden
	}
	return nil
}
