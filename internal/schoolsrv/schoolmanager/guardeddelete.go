package schoolmanager

import (
	"context"
	"database/sql"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/policy"
)

// guardedDelete counts dependents and runs del in one transaction on the
// scoped connection, so the counts and the delete see a consistent view.
// Statements issued through the scoped connection while the transaction
// is open run on the same session and are covered by the commit.
func guardedDelete(ctx context.Context, guards []policy.DependentGuard, del func(ctx context.Context) apperrors.Error) apperrors.Error {
	unit := func(ctx context.Context) apperrors.Error {
		issues, err := policy.CheckDependents(ctx, guards)
		if err != nil {
			return err
		}
		if len(issues) > 0 {
			return policy.DependencyError(issues)
		}
		return del(ctx)
	}

	conn := db.SqlConn(ctx)
	if conn == nil {
		return unit(ctx)
	}
	return policy.RunInTransaction(ctx, conn, func(ctx context.Context, _ *sql.Tx) apperrors.Error {
		return unit(ctx)
	})
}
