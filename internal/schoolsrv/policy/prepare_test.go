package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/models"
)

func testSchool() *models.School {
	return &models.School{
		TenantID: "TABC123",
		NPSN:     "20100001",
		Name:     "SMA Negeri 1",
	}
}

func TestPrepareForCreateStampsScope(t *testing.T) {
	out := PrepareForCreate(context.Background(), testSchool(), map[string]any{
		"name": "Budi",
	})
	assert.Equal(t, "TABC123", out["tenant_id"])
	assert.Equal(t, "20100001", out["npsn"])
	assert.Equal(t, "Budi", out["name"])
}

func TestPrepareForCreateDoesNotClobber(t *testing.T) {
	out := PrepareForCreate(context.Background(), testSchool(), map[string]any{
		"name":      "Budi",
		"tenant_id": "TIMPORT1",
		"npsn":      "20199999",
	})
	assert.Equal(t, "TIMPORT1", out["tenant_id"])
	assert.Equal(t, "20199999", out["npsn"])
}

func TestPrepareForCreateEmptyValuesAreStamped(t *testing.T) {
	out := PrepareForCreate(context.Background(), testSchool(), map[string]any{
		"tenant_id": "",
		"npsn":      "",
	})
	assert.Equal(t, "TABC123", out["tenant_id"])
	assert.Equal(t, "20100001", out["npsn"])
}

func TestPrepareForCreateLeavesInputAlone(t *testing.T) {
	in := map[string]any{"name": "Budi"}
	_ = PrepareForCreate(context.Background(), testSchool(), in)
	assert.Equal(t, map[string]any{"name": "Budi"}, in)
}
