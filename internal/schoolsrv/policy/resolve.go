package policy

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/schoolcommon"
)

// Loader fetches a record by id. Implementations are expected to filter
// by the context tenant before the id predicate, which the db layer
// managers all do.
type Loader[T Scoped] func(ctx context.Context, id string) (T, apperrors.Error)

// Resolve turns a Ref into a record the acting tenant may use. ByID refs
// go through the loader; Loaded refs skip the load. Both forms pass
// through EnsureAccess, so handing Resolve a pre-loaded foreign record
// does not bypass the guard. A failed load is reported as NotFound with
// the detail kept server-side.
func Resolve[T Scoped](ctx context.Context, ref Ref[T], load Loader[T]) (T, apperrors.Error) {
	var zero T

	v := ref.loaded
	if ref.IsByID() {
		var err apperrors.Error
		v, err = load(ctx, ref.id)
		if err != nil {
			log.Ctx(ctx).Warn().
				Str("user_id", string(schoolcommon.GetUserID(ctx))).
				Str("tenant_id", string(schoolcommon.GetTenantID(ctx))).
				Str("kind", zero.EntityKind()).
				Str("key", ref.id).
				Err(err).
				Msg("scoped record lookup failed")
			return zero, ErrNotFound
		}
	}

	if err := EnsureAccess(ctx, v); err != nil {
		return zero, err
	}
	return v, nil
}
