package policy

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/models"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/schoolcommon"
)

// ResolveTenant loads the school for the tenant carried in the context.
// A missing or unknown tenant is an error; callers never receive a nil
// school without an error.
func ResolveTenant(ctx context.Context) (*models.School, apperrors.Error) {
	tenantID := schoolcommon.GetTenantID(ctx)
	if tenantID == "" {
		log.Ctx(ctx).Warn().Msg("tenant resolution attempted without tenant in context")
		return nil, ErrTenantNotFound
	}
	school, err := db.DB(ctx).GetSchool(ctx, tenantID)
	if err != nil {
		log.Ctx(ctx).Warn().
			Str("tenant_id", string(tenantID)).
			Err(err).
			Msg("unable to load school for tenant")
		return nil, ErrTenantNotFound
	}
	return school, nil
}
