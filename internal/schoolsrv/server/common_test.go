package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/schoolcommon"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

type TestContext struct {
	TenantId types.TenantId
	UserId   types.UserId
	Role     types.Role
}

func executeTestRequest(t *testing.T, req *http.Request, testContext ...TestContext) *httptest.ResponseRecorder {
	s, err := CreateNewServer()
	assert.NoError(t, err, "create new server")

	s.MountHandlers()

	rr := httptest.NewRecorder()
	if len(testContext) > 0 {
		ctx := req.Context()
		ctx = schoolcommon.WithTenantID(ctx, testContext[0].TenantId)
		ctx = schoolcommon.WithUserContext(ctx, &schoolcommon.UserContext{
			UserID: testContext[0].UserId,
			Role:   testContext[0].Role,
		})
		ctx = schoolcommon.WithTestContext(ctx, true)
		req = req.WithContext(ctx)
	}
	s.Router.ServeHTTP(rr, req)

	return rr
}

func checkHeader(t *testing.T, h http.Header) {
	expected := "application/json"
	got := h.Get("Content-Type")
	assert.Equal(t, expected, got, "Content-Type expected %s, got %s", expected, got)
	assert.NotEmpty(t, h.Get("X-Siakad-Request-ID"), "no request id")
}

func compareJson(t *testing.T, expected any, actual string) {
	j, err := json.Marshal(expected)
	assert.NoError(t, err, "json marshal")
	assert.JSONEq(t, string(j), actual, "Expected: %v\n Got: %v\n", expected, actual)
}

var _ = setRequestBodyAndHeader

func setRequestBodyAndHeader(t *testing.T, req *http.Request, data any) {
	var jsonData []byte
	if s, ok := data.(string); ok {
		if json.Valid([]byte(s)) {
			jsonData = []byte(s)
		}
	} else if b, ok := data.([]byte); ok {
		if json.Valid(b) {
			jsonData = b
		}
	} else {
		var err error
		jsonData, err = json.Marshal(data)
		assert.NoError(t, err, "failed to marshal data into JSON")
	}

	req.Body = io.NopCloser(bytes.NewReader(jsonData))
	req.ContentLength = int64(len(jsonData))
	req.Header.Set("Content-Type", "application/json")
}
