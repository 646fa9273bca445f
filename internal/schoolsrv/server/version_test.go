package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetVersion(t *testing.T) {
	req, _ := http.NewRequest("GET", "/version", nil)
	testContext := TestContext{
		TenantId: "TABC123",
		UserId:   "UTEST01",
	}
	response := executeTestRequest(t, req, testContext)

	require.Equal(t, http.StatusOK, response.Code)
	checkHeader(t, response.Result().Header)

	compareJson(t,
		&GetVersionRsp{
			ServerVersion: "Siakad School Server: 0.1.0",
			ApiVersion:    "v1alpha1",
		}, response.Body.String())
}
