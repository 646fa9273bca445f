package policy

import (
	"context"

	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/models"
)

// PrepareForCreate stamps the tenant id and npsn of the acting school
// onto a record about to be inserted. Existing non-empty values are left
// alone so that import and migration paths can carry their own scoping.
// The input map is not modified.
func PrepareForCreate(ctx context.Context, school *models.School, data map[string]any) map[string]any {
	out := make(map[string]any, len(data)+2)
	for k, v := range data {
		out[k] = v
	}
	if isEmptyValue(out["tenant_id"]) {
		out["tenant_id"] = string(school.TenantID)
	}
	if isEmptyValue(out["npsn"]) {
		out["npsn"] = school.NPSN
	}
	return out
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
