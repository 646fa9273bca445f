package policy

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/dberror"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/models"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

// fakeStudentLoader behaves like the db layer: it only returns records
// belonging to the given tenant.
func fakeStudentLoader(store map[string]*models.Student, tenantID types.TenantId) Loader[*models.Student] {
	return func(_ context.Context, id string) (*models.Student, apperrors.Error) {
		s, ok := store[id]
		if !ok || s.TenantID != tenantID {
			return nil, dberror.ErrNotFound.Msg("student not found")
		}
		return s, nil
	}
}

func TestResolveByID(t *testing.T) {
	ctx := newTestCtx("TABC123")
	s := newStudent("TABC123")
	load := fakeStudentLoader(map[string]*models.Student{s.StudentID.String(): s}, "TABC123")

	got, err := Resolve(ctx, ByID[*models.Student](s.StudentID.String()), load)
	require.NoError(t, err)
	assert.Equal(t, s.StudentID, got.StudentID)
}

func TestResolveByIDMissing(t *testing.T) {
	ctx := newTestCtx("TABC123")
	load := fakeStudentLoader(map[string]*models.Student{}, "TABC123")

	_, err := Resolve(ctx, ByID[*models.Student]("no-such-id"), load)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveByIDForeignTenant(t *testing.T) {
	// A scoped loader treats a foreign record the same as a missing
	// one. The caller cannot tell which it was.
	s := newStudent("TXYZ999")
	ctx := newTestCtx("TABC123")
	load := fakeStudentLoader(map[string]*models.Student{s.StudentID.String(): s}, "TABC123")

	_, err := Resolve(ctx, ByID[*models.Student](s.StudentID.String()), load)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveByIDMissingDiagnostics(t *testing.T) {
	// The lookup failure is logged as a warning carrying the entity
	// kind, the attempted key, and the acting user and tenant.
	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(newTestCtx("TABC123"))
	load := fakeStudentLoader(map[string]*models.Student{}, "TABC123")

	_, err := Resolve(ctx, ByID[*models.Student]("no-such-id"), load)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	logLine := buf.String()
	assert.Contains(t, logLine, `"level":"warn"`)
	assert.Contains(t, logLine, `"kind":"Student"`)
	assert.Contains(t, logLine, `"key":"no-such-id"`)
	assert.Contains(t, logLine, `"user_id":"UTEST01"`)
	assert.Contains(t, logLine, `"tenant_id":"TABC123"`)
}

func TestResolveLoadedStillGuarded(t *testing.T) {
	// Pre-loading a record from another tenant must not bypass the
	// access guard.
	ctx := newTestCtx("TABC123")
	foreign := newStudent("TXYZ999")

	_, err := Resolve(ctx, Loaded(foreign), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestResolveLoadedSameTenant(t *testing.T) {
	ctx := newTestCtx("TABC123")
	s := newStudent("TABC123")

	got, err := Resolve(ctx, Loaded(s), nil)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}
