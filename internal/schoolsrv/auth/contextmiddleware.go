package auth

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/siakadlabs/siakad-internal/internal/common/httpx"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/config"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/schoolcommon"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

const (
	authHeaderPrefix = "Bearer "
	genericAuthError = "authentication failed"
)

// ContextMiddleware authenticates the request and loads the tenant and
// user into the context. In single-tenant mode a fixed development
// token maps to the default tenant, so a local setup needs no login
// flow.
func ContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := log.Ctx(ctx)

		// Test contexts carry tenant and user already.
		if schoolcommon.IsTestContext(ctx) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, authHeaderPrefix) {
			logger.Debug().Msg("missing or malformed authorization header")
			httpx.ErrUnAuthorized(genericAuthError).Send(w)
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, authHeaderPrefix))
		if tokenString == "" {
			logger.Debug().Msg("empty token")
			httpx.ErrUnAuthorized(genericAuthError).Send(w)
			return
		}

		cfg := config.Config()
		if cfg.SingleTenantMode && tokenString == cfg.FakeDevToken {
			ctx = schoolcommon.WithTenantID(ctx, types.TenantId(cfg.DefaultTenantID))
			ctx = schoolcommon.WithUserContext(ctx, &schoolcommon.UserContext{
				UserID: "UDEV001",
				Role:   types.RoleAdmin,
			})
			logger.Debug().Str("tenant_id", cfg.DefaultTenantID).Msg("using default tenant in single tenant mode")
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		token, err := ParseToken(ctx, tokenString)
		if err != nil || !token.Validate() {
			logger.Info().Err(err).Msg("token validation failed")
			httpx.ErrUnAuthorized(genericAuthError).Send(w)
			return
		}

		ctx = schoolcommon.WithTenantID(ctx, token.GetTenantID())
		ctx = schoolcommon.WithUserContext(ctx, &schoolcommon.UserContext{
			UserID: token.GetUserID(),
			Role:   token.GetRole(),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
