package apis

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/common/httpx"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/auth"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/schoolmanager"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

// getResourceKind maps the URL resource segment to an entity kind.
func getResourceKind(r *http.Request) string {
	return types.KindForResource(chi.URLParam(r, "resource"))
}

// getRequestContext extracts the object reference and query parameters.
// Export jobs use an opaque key; everything else uses a uuid.
func getRequestContext(r *http.Request, kind string) (schoolmanager.RequestContext, error) {
	rc := schoolmanager.RequestContext{QueryParams: r.URL.Query()}

	ref := chi.URLParam(r, "objectRef")
	if ref == "" {
		return rc, nil
	}
	if kind == types.ExportJobKind {
		rc.ObjectName = ref
		return rc, nil
	}
	id, err := uuid.Parse(ref)
	if err != nil {
		return rc, httpx.ErrInvalidRequest("invalid object id")
	}
	rc.ObjectID = id
	return rc, nil
}

// actionForRequest picks the capability an operation requires. Writes
// to grades and attendance have their own actions so the teacher role
// can record them without general write access.
func actionForRequest(method, kind string) auth.Action {
	if method == http.MethodGet {
		return auth.ActionRecordsRead
	}
	switch kind {
	case types.GradeKind:
		return auth.ActionGradesWrite
	case types.AttendanceKind:
		return auth.ActionAttendanceWrite
	case types.LetterKind:
		return auth.ActionLettersIssue
	case types.ExportJobKind:
		return auth.ActionExportsRun
	}
	if method == http.MethodDelete {
		return auth.ActionRecordsDelete
	}
	return auth.ActionRecordsWrite
}

// authorizeRequest runs the role capability check for the operation.
func authorizeRequest(r *http.Request, kind string) apperrors.Error {
	return auth.Authorize(r.Context(), actionForRequest(r.Method, kind))
}
