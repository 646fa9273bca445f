package apis

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/siakadlabs/siakad-internal/internal/common/httpx"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db"
)

var recordHandlers = []httpx.ResponseHandlerParam{
	{
		Method:  http.MethodPost,
		Path:    "/{resource}",
		Handler: createObject,
	},
	{
		Method:  http.MethodGet,
		Path:    "/{resource}",
		Handler: listObjects,
	},
	{
		Method:  http.MethodGet,
		Path:    "/{resource}/{objectRef}",
		Handler: getObject,
	},
	{
		Method:  http.MethodPut,
		Path:    "/{resource}/{objectRef}",
		Handler: updateObject,
	},
	{
		Method:  http.MethodDelete,
		Path:    "/{resource}/{objectRef}",
		Handler: deleteObject,
	},
}

var schoolHandlers = []httpx.ResponseHandlerParam{
	{
		Method:  http.MethodPost,
		Path:    "/schools",
		Handler: provisionSchool,
	},
	{
		Method:  http.MethodGet,
		Path:    "/school",
		Handler: getSchool,
	},
	{
		Method:  http.MethodPut,
		Path:    "/school",
		Handler: updateSchool,
	},
	{
		Method:  http.MethodPost,
		Path:    "/users",
		Handler: createStaffUser,
	},
}

// Router mounts the tenant-scoped record routes and the school
// metadata routes. Callers wrap it with the auth middleware; the DB
// middleware is installed here so every handler finds a scoped
// connection in the context.
func Router(r chi.Router) {
	r.Use(db.LoadScopedDBMiddleware)
	for _, handler := range schoolHandlers {
		r.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
	}
	for _, handler := range recordHandlers {
		r.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
	}
}
