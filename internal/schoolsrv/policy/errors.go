package policy

import (
	"net/http"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
)

var (
	ErrPolicy apperrors.Error = apperrors.New("policy error").SetStatusCode(http.StatusInternalServerError)

	// ErrNotFound covers both a genuinely missing record and a record
	// outside the acting tenant's scope. The two are deliberately
	// indistinguishable to callers.
	ErrNotFound apperrors.Error = ErrPolicy.New("not found").SetStatusCode(http.StatusNotFound)

	// ErrForbidden is returned when a loaded record belongs to another
	// tenant, or the acting role lacks the required capability.
	ErrForbidden apperrors.Error = ErrPolicy.New("access denied").SetStatusCode(http.StatusForbidden)

	ErrTenantNotFound     apperrors.Error = ErrNotFound.New("school not found").SetStatusCode(http.StatusNotFound)
	ErrValidation         apperrors.Error = ErrPolicy.New("validation failed").SetExpandError(true).SetStatusCode(http.StatusBadRequest)
	ErrDependencyConflict apperrors.Error = ErrPolicy.New("record has dependent records").SetExpandError(true).SetStatusCode(http.StatusConflict)
	ErrTransactionFailure apperrors.Error = ErrPolicy.New("operation failed").SetStatusCode(http.StatusInternalServerError)
)
