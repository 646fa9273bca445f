package apis

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/siakadlabs/siakad-internal/internal/common/httpx"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/auth"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/schoolmanager"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

// provisionSchool registers a new tenant. Super-admin only.
func provisionSchool(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()

	if err := auth.Authorize(ctx, auth.ActionSchoolProvision); err != nil {
		return nil, err
	}

	if r.Body == nil {
		return nil, httpx.ErrInvalidRequest()
	}
	req, rerr := io.ReadAll(r.Body)
	if rerr != nil {
		return nil, httpx.ErrUnableToReadRequest()
	}

	school, err := schoolmanager.ProvisionSchool(ctx, req)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   "/" + types.ResourceNameSchools + "/" + string(school.TenantID),
		Response: map[string]string{
			"tenant_id": string(school.TenantID),
			"npsn":      school.NPSN,
		},
	}, nil
}

func getSchool(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()

	if err := auth.Authorize(ctx, auth.ActionRecordsRead); err != nil {
		return nil, err
	}
	rsp, err := schoolmanager.GetSchoolJSON(ctx)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   json.RawMessage(rsp),
	}, nil
}

func updateSchool(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()

	if err := auth.Authorize(ctx, auth.ActionRecordsWrite); err != nil {
		return nil, err
	}

	if r.Body == nil {
		return nil, httpx.ErrInvalidRequest()
	}
	req, rerr := io.ReadAll(r.Body)
	if rerr != nil {
		return nil, httpx.ErrUnableToReadRequest()
	}

	if err := schoolmanager.UpdateSchool(ctx, req); err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusNoContent}, nil
}

// createStaffUser registers a staff account under the acting tenant.
func createStaffUser(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()

	if err := auth.Authorize(ctx, auth.ActionRecordsWrite); err != nil {
		return nil, err
	}

	if r.Body == nil {
		return nil, httpx.ErrInvalidRequest()
	}
	req, rerr := io.ReadAll(r.Body)
	if rerr != nil {
		return nil, httpx.ErrUnableToReadRequest()
	}

	user, err := schoolmanager.CreateStaffUser(ctx, req)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   "/users/" + string(user.UserID),
		Response: map[string]string{
			"user_id": string(user.UserID),
			"email":   user.Email,
		},
	}, nil
}
