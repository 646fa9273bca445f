package schoolmanager

import (
	"path"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/policy"
)

func TestStudentCreateClassOwnership(t *testing.T) {
	ctx := newDb(t)
	defer db.DB(ctx).Close(ctx)

	ctxA := provisionTestSchool(t, ctx)
	ctxB := provisionTestSchool(t, ctx)

	ch, err := NewClassRoomKindHandler(ctxA, RequestContext{})
	require.NoError(t, err)
	loc, err := ch.Create(ctxA, []byte(`{"name": "X IPA 1", "level": 10, "academic_year": "2026/2027"}`))
	require.NoError(t, err)
	classID := path.Base(loc)

	// A class owned by another tenant must read as nonexistent.
	sh, err := NewStudentKindHandler(ctxB, RequestContext{})
	require.NoError(t, err)
	_, err = sh.Create(ctxB, []byte(`{"nis": "20260001", "name": "Siti Rahmawati", "class_id": "`+classID+`"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, policy.ErrNotFound)

	// The owning tenant can enroll into it.
	sh, err = NewStudentKindHandler(ctxA, RequestContext{})
	require.NoError(t, err)
	_, err = sh.Create(ctxA, []byte(`{"nis": "20260001", "name": "Siti Rahmawati", "class_id": "`+classID+`"}`))
	require.NoError(t, err)
}

func TestStudentUpdateClassOwnership(t *testing.T) {
	ctx := newDb(t)
	defer db.DB(ctx).Close(ctx)

	ctxA := provisionTestSchool(t, ctx)
	ctxB := provisionTestSchool(t, ctx)

	ch, err := NewClassRoomKindHandler(ctxA, RequestContext{})
	require.NoError(t, err)
	classLoc, err := ch.Create(ctxA, []byte(`{"name": "X IPA 1", "level": 10, "academic_year": "2026/2027"}`))
	require.NoError(t, err)
	classID := path.Base(classLoc)

	sh, err := NewStudentKindHandler(ctxB, RequestContext{})
	require.NoError(t, err)
	loc, err := sh.Create(ctxB, []byte(`{"nis": "20260002", "name": "Budi Santoso"}`))
	require.NoError(t, err)
	studentID, perr := uuid.Parse(path.Base(loc))
	require.NoError(t, perr)

	sh, err = NewStudentKindHandler(ctxB, RequestContext{ObjectID: studentID})
	require.NoError(t, err)
	err = sh.Update(ctxB, []byte(`{"class_id": "`+classID+`"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, policy.ErrNotFound)
}
