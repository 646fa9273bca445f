package policy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/models"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/schoolcommon"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

func newTestCtx(tenantID types.TenantId) context.Context {
	ctx := schoolcommon.WithTenantID(context.Background(), tenantID)
	return schoolcommon.WithUserContext(ctx, &schoolcommon.UserContext{
		UserID: "UTEST01",
		Role:   types.RoleAdmin,
	})
}

func newStudent(tenantID types.TenantId) *models.Student {
	return &models.Student{
		StudentID: uuid.New(),
		Name:      "Budi Santoso",
		TenantID:  tenantID,
	}
}

func TestEnsureAccessSameTenant(t *testing.T) {
	ctx := newTestCtx("TABC123")
	err := EnsureAccess(ctx, newStudent("TABC123"))
	assert.NoError(t, err)
}

func TestEnsureAccessCrossTenant(t *testing.T) {
	ctx := newTestCtx("TABC123")
	err := EnsureAccess(ctx, newStudent("TXYZ999"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestEnsureAccessTenantAgnostic(t *testing.T) {
	// Records without a tenant scope are allowed through.
	ctx := newTestCtx("TABC123")
	err := EnsureAccess(ctx, newStudent(""))
	assert.NoError(t, err)
}
