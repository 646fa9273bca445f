package auth

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/schoolcommon"
)

// Login verifies staff credentials and issues an access token. Lookup
// failure and a wrong password produce the same error, so the response
// does not reveal whether the account exists.
func Login(ctx context.Context, email, password string) (string, time.Time, apperrors.Error) {
	user, err := db.DB(ctx).GetUserByEmail(ctx, email)
	if err != nil {
		log.Ctx(ctx).Info().Str("email", email).Msg("login attempt for unknown account")
		return "", time.Time{}, ErrInvalidCredentials
	}

	if !schoolcommon.VerifyPassword(password, user.PasswordHash) {
		log.Ctx(ctx).Info().
			Str("user_id", string(user.UserID)).
			Msg("login attempt with wrong password")
		return "", time.Time{}, ErrInvalidCredentials
	}

	ctx = schoolcommon.WithTenantID(ctx, user.TenantID)
	return CreateAccessToken(ctx, user)
}
