package db

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/siakadlabs/siakad-internal/internal/common/httpx"
)

// LoadScopedDBMiddleware loads a scoped db connection into the request
// context and closes it after the request is served.
func LoadScopedDBMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := ConnCtx(r.Context())
		if ctx.Value(ctxDbKey) == nil {
			log.Ctx(r.Context()).Error().Msg("unable to get db connection")
			httpx.ErrApplicationError("unable to service request at this time").Send(w)
			return
		}
		defer func() {
			if dbConn := DB(ctx); dbConn != nil {
				dbConn.Close(context.Background()) // background: request ctx may be canceled
			}
		}()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
