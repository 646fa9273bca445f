package apis

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/siakadlabs/siakad-internal/internal/common/httpx"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/schoolmanager"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

func createObject(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()

	kind := getResourceKind(r)
	if kind == types.InvalidKind {
		return nil, httpx.ErrInvalidRequest()
	}
	if err := authorizeRequest(r, kind); err != nil {
		return nil, err
	}

	if r.Body == nil {
		return nil, httpx.ErrInvalidRequest()
	}
	req, rerr := io.ReadAll(r.Body)
	if rerr != nil {
		return nil, httpx.ErrUnableToReadRequest()
	}

	rc, err := getRequestContext(r, kind)
	if err != nil {
		return nil, err
	}
	rm, merr := schoolmanager.RecordManagerForKind(ctx, kind, rc)
	if merr != nil {
		return nil, merr
	}

	location, merr := rm.Create(ctx, req)
	if merr != nil {
		return nil, merr
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   location,
	}, nil
}

func getObject(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()

	kind := getResourceKind(r)
	if kind == types.InvalidKind {
		return nil, httpx.ErrInvalidRequest()
	}
	if err := authorizeRequest(r, kind); err != nil {
		return nil, err
	}

	rc, err := getRequestContext(r, kind)
	if err != nil {
		return nil, err
	}
	rm, merr := schoolmanager.RecordManagerForKind(ctx, kind, rc)
	if merr != nil {
		return nil, merr
	}

	rsp, merr := rm.Get(ctx)
	if merr != nil {
		return nil, merr
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   json.RawMessage(rsp),
	}, nil
}

func updateObject(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()

	kind := getResourceKind(r)
	if kind == types.InvalidKind {
		return nil, httpx.ErrInvalidRequest()
	}
	if err := authorizeRequest(r, kind); err != nil {
		return nil, err
	}

	if r.Body == nil {
		return nil, httpx.ErrInvalidRequest()
	}
	req, rerr := io.ReadAll(r.Body)
	if rerr != nil {
		return nil, httpx.ErrUnableToReadRequest()
	}

	rc, err := getRequestContext(r, kind)
	if err != nil {
		return nil, err
	}
	rm, merr := schoolmanager.RecordManagerForKind(ctx, kind, rc)
	if merr != nil {
		return nil, merr
	}

	if merr := rm.Update(ctx, req); merr != nil {
		return nil, merr
	}
	return &httpx.Response{StatusCode: http.StatusNoContent}, nil
}

func deleteObject(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()

	kind := getResourceKind(r)
	if kind == types.InvalidKind {
		return nil, httpx.ErrInvalidRequest()
	}
	if err := authorizeRequest(r, kind); err != nil {
		return nil, err
	}

	rc, err := getRequestContext(r, kind)
	if err != nil {
		return nil, err
	}
	rm, merr := schoolmanager.RecordManagerForKind(ctx, kind, rc)
	if merr != nil {
		return nil, merr
	}

	if merr := rm.Delete(ctx); merr != nil {
		return nil, merr
	}
	return &httpx.Response{StatusCode: http.StatusNoContent}, nil
}

func listObjects(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()

	kind := getResourceKind(r)
	if kind == types.InvalidKind {
		return nil, httpx.ErrInvalidRequest()
	}
	if err := authorizeRequest(r, kind); err != nil {
		return nil, err
	}

	rc, err := getRequestContext(r, kind)
	if err != nil {
		return nil, err
	}
	rm, merr := schoolmanager.RecordManagerForKind(ctx, kind, rc)
	if merr != nil {
		return nil, merr
	}

	rsp, merr := rm.List(ctx)
	if merr != nil {
		return nil, merr
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   json.RawMessage(rsp),
	}, nil
}
