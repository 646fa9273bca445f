package dberror

import (
	"net/http"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
)

var (
	ErrDatabase        apperrors.Error = apperrors.New("db error").SetStatusCode(http.StatusInternalServerError)
	ErrAlreadyExists   apperrors.Error = ErrDatabase.New("already exists").SetStatusCode(http.StatusConflict)
	ErrNotFound        apperrors.Error = ErrDatabase.New("not found").SetStatusCode(http.StatusNotFound)
	ErrInvalidInput    apperrors.Error = ErrDatabase.New("invalid input").SetStatusCode(http.StatusBadRequest)
	ErrMissingTenantID apperrors.Error = ErrInvalidInput.New("missing tenant ID").SetStatusCode(http.StatusBadRequest)
	ErrInvalidRef      apperrors.Error = ErrDatabase.New("referenced record not found").SetStatusCode(http.StatusBadRequest)
	ErrHasDependents   apperrors.Error = ErrDatabase.New("record has dependent rows").SetStatusCode(http.StatusConflict)
)
