package policy

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/schoolcommon"
)

// Beginner starts a transaction. *sql.Conn satisfies it.
type Beginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// RunInTransaction runs fn inside a transaction on the scoped
// connection. An error from fn rolls everything back, is logged with
// the acting user, and is returned unchanged so callers keep its status
// code. Begin and commit failures surface as TransactionFailure.
func RunInTransaction(ctx context.Context, b Beginner, fn func(ctx context.Context, tx *sql.Tx) apperrors.Error) apperrors.Error {
	if b == nil {
		log.Ctx(ctx).Error().Msg("transaction requested without a connection")
		return ErrTransactionFailure
	}
	tx, err := b.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("unable to begin transaction")
		return ErrTransactionFailure
	}
	defer tx.Rollback()

	if aerr := fn(ctx, tx); aerr != nil {
		log.Ctx(ctx).Error().
			Str("user_id", string(schoolcommon.GetUserID(ctx))).
			Err(aerr).
			Msg("transaction rolled back")
		return aerr
	}
	if err := tx.Commit(); err != nil {
		log.Ctx(ctx).Error().
			Str("user_id", string(schoolcommon.GetUserID(ctx))).
			Err(err).
			Msg("transaction commit failed")
		return ErrTransactionFailure
	}
	return nil
}
