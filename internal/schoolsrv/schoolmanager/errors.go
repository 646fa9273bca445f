package schoolmanager

import (
	"net/http"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
)

var (
	ErrSchoolManager apperrors.Error = apperrors.New("school manager error").SetStatusCode(http.StatusInternalServerError)

	ErrInvalidRequest  apperrors.Error = ErrSchoolManager.New("invalid request").SetStatusCode(http.StatusBadRequest)
	ErrInvalidKind     apperrors.Error = ErrSchoolManager.New("unsupported resource kind").SetStatusCode(http.StatusBadRequest)
	ErrAlreadyExists   apperrors.Error = ErrSchoolManager.New("record already exists").SetStatusCode(http.StatusConflict)
	ErrInvalidRelation apperrors.Error = ErrSchoolManager.New("referenced record does not exist").SetStatusCode(http.StatusBadRequest)
)
