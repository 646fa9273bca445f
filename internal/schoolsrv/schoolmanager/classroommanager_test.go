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

func TestClassRoomDeleteBlockedByDependents(t *testing.T) {
	ctx := newDb(t)
	defer db.DB(ctx).Close(ctx)

	tctx := provisionTestSchool(t, ctx)

	ch, err := NewClassRoomKindHandler(tctx, RequestContext{})
	require.NoError(t, err)
	loc, err := ch.Create(tctx, []byte(`{"name": "XII IPA 3", "level": 12, "academic_year": "2026/2027"}`))
	require.NoError(t, err)
	classID := path.Base(loc)

	sh, err := NewStudentKindHandler(tctx, RequestContext{})
	require.NoError(t, err)
	_, err = sh.Create(tctx, []byte(`{"nis": "20260010", "name": "Rina Wulandari", "class_id": "`+classID+`"}`))
	require.NoError(t, err)
	_, err = sh.Create(tctx, []byte(`{"nis": "20260011", "name": "Agus Prasetyo", "class_id": "`+classID+`"}`))
	require.NoError(t, err)

	classUUID, perr := uuid.Parse(classID)
	require.NoError(t, perr)
	ch, err = NewClassRoomKindHandler(tctx, RequestContext{ObjectID: classUUID})
	require.NoError(t, err)

	// Deletion reports the blocking relation and leaves the class alone.
	err = ch.Delete(tctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, policy.ErrDependencyConflict)
	assert.Contains(t, err.ErrorAll(), "class still has 2 enrolled students")

	_, err = ch.Get(tctx)
	require.NoError(t, err)
}

func TestClassRoomHomeroomTeacherOwnership(t *testing.T) {
	ctx := newDb(t)
	defer db.DB(ctx).Close(ctx)

	ctxA := provisionTestSchool(t, ctx)
	ctxB := provisionTestSchool(t, ctx)

	th, err := NewTeacherKindHandler(ctxA, RequestContext{})
	require.NoError(t, err)
	loc, err := th.Create(ctxA, []byte(`{"nip": "198501012010011001", "name": "Pak Ahmad"}`))
	require.NoError(t, err)
	teacherID := path.Base(loc)

	// A teacher owned by another tenant must read as nonexistent.
	ch, err := NewClassRoomKindHandler(ctxB, RequestContext{})
	require.NoError(t, err)
	_, err = ch.Create(ctxB, []byte(`{"name": "XI IPS 2", "level": 11, "academic_year": "2026/2027", "homeroom_teacher_id": "`+teacherID+`"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, policy.ErrNotFound)

	// The owning tenant can assign the homeroom.
	ch, err = NewClassRoomKindHandler(ctxA, RequestContext{})
	require.NoError(t, err)
	_, err = ch.Create(ctxA, []byte(`{"name": "XI IPS 2", "level": 11, "academic_year": "2026/2027", "homeroom_teacher_id": "`+teacherID+`"}`))
	require.NoError(t, err)
}
