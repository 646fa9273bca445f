package auth

import (
	"net/http"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
)

// Base auth error
var (
	ErrAuth apperrors.Error = apperrors.New("auth error").SetStatusCode(http.StatusInternalServerError)
)

// Authorization errors
var (
	ErrUnauthorized       apperrors.Error = ErrAuth.New("unauthorized access").SetStatusCode(http.StatusUnauthorized)
	ErrInvalidCredentials apperrors.Error = ErrAuth.New("invalid credentials").SetStatusCode(http.StatusUnauthorized)
	ErrInsufficientRole   apperrors.Error = ErrAuth.New("insufficient role").SetStatusCode(http.StatusForbidden)
)

// Token errors
var (
	ErrTokenGeneration apperrors.Error = ErrAuth.New("failed to generate token").SetStatusCode(http.StatusInternalServerError)
	ErrInvalidToken    apperrors.Error = ErrAuth.New("invalid token").SetStatusCode(http.StatusUnauthorized)
)
