package schoolmanager

import (
	"encoding/json"
	"fmt"
	"path"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db"
)

func TestGradeAdjustedScore(t *testing.T) {
	ctx := newDb(t)
	defer db.DB(ctx).Close(ctx)

	tctx := provisionTestSchool(t, ctx)

	sh, err := NewStudentKindHandler(tctx, RequestContext{})
	require.NoError(t, err)
	loc, err := sh.Create(tctx, []byte(`{"nis": "20260003", "name": "Dewi Lestari"}`))
	require.NoError(t, err)
	studentID := path.Base(loc)

	subh, err := NewSubjectKindHandler(tctx, RequestContext{})
	require.NoError(t, err)
	loc, err = subh.Create(tctx, []byte(`{"name": "Matematika", "code": "MTK", "level": 10}`))
	require.NoError(t, err)
	subjectID := path.Base(loc)

	createGrade := func(body string) gradeRep {
		gh, err := NewGradeKindHandler(tctx, RequestContext{})
		require.NoError(t, err)
		loc, err := gh.Create(tctx, []byte(body))
		require.NoError(t, err)
		gradeID, perr := uuid.Parse(path.Base(loc))
		require.NoError(t, perr)

		gh, err = NewGradeKindHandler(tctx, RequestContext{ObjectID: gradeID})
		require.NoError(t, err)
		out, err := gh.Get(tctx)
		require.NoError(t, err)
		var rep gradeRep
		require.NoError(t, json.Unmarshal(out, &rep))
		return rep
	}

	// An omitted adjusted score defaults to the raw score.
	rep := createGrade(fmt.Sprintf(
		`{"student_id": %q, "subject_id": %q, "exam_kind": "daily", "score": 80}`,
		studentID, subjectID))
	assert.Equal(t, 80.0, rep.Score)
	assert.Equal(t, 80.0, rep.AdjustedScore)

	// An explicit zero is a real value, not an absent one.
	rep = createGrade(fmt.Sprintf(
		`{"student_id": %q, "subject_id": %q, "exam_kind": "midterm", "score": 80, "adjusted_score": 0}`,
		studentID, subjectID))
	assert.Equal(t, 80.0, rep.Score)
	assert.Equal(t, 0.0, rep.AdjustedScore)
}
