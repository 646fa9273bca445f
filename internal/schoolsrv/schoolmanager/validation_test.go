package schoolmanager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/policy"
)

func TestStudentSchemaValidation(t *testing.T) {
	valid := &studentSchema{NIS: "2024001", Name: "Budi Santoso", Status: "active"}
	assert.NoError(t, validateSchema(valid))

	missing := &studentSchema{NIS: "2024001"}
	err := validateSchema(missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, policy.ErrValidation)
	assert.Contains(t, err.Error(), "name")

	badStatus := &studentSchema{NIS: "2024001", Name: "Budi", Status: "expelled"}
	err = validateSchema(badStatus)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")

	badClass := &studentSchema{NIS: "2024001", Name: "Budi", ClassID: "not-a-uuid"}
	err = validateSchema(badClass)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "class_id")
}

func TestScheduleSchemaValidation(t *testing.T) {
	valid := &scheduleSchema{
		ClassID:   "0b8667d8-48e5-44a4-b79c-4a4a2a2f9cfa",
		SubjectID: "12f667d8-48e5-44a4-b79c-4a4a2a2f9cfb",
		TeacherID: "22f667d8-48e5-44a4-b79c-4a4a2a2f9cfc",
		Weekday:   1,
		Period:    4,
	}
	assert.NoError(t, validateSchema(valid))

	valid.Weekday = 7
	err := validateSchema(valid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weekday")
}

func TestAcademicYearValidation(t *testing.T) {
	ok := &classRoomSchema{Name: "X IPA 1", Level: 10, AcademicYear: "2025/2026"}
	assert.NoError(t, validateSchema(ok))

	for _, bad := range []string{"2025", "25/26", "2025-2026", "abcd/efgh"} {
		schema := &classRoomSchema{Name: "X IPA 1", Level: 10, AcademicYear: bad}
		err := validateSchema(schema)
		require.Error(t, err, bad)
		assert.Contains(t, err.Error(), "academic_year")
	}
}

func TestGradeSchemaValidation(t *testing.T) {
	valid := &gradeSchema{
		StudentID: "0b8667d8-48e5-44a4-b79c-4a4a2a2f9cfa",
		SubjectID: "12f667d8-48e5-44a4-b79c-4a4a2a2f9cfb",
		ExamKind:  "midterm",
		Score:     87.5,
	}
	assert.NoError(t, validateSchema(valid))

	valid.ExamKind = "surprise"
	err := validateSchema(valid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exam_kind")

	valid.ExamKind = "daily"
	valid.Score = 120
	err = validateSchema(valid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "score")
}

func TestAttendanceRange(t *testing.T) {
	from, to, err := attendanceRange("2026-08-01", "2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), to)

	_, _, err = attendanceRange("2026-08-28", "2026-08-01")
	require.Error(t, err)

	_, _, err = attendanceRange("28-08-2026", "")
	require.Error(t, err)

	from, to, err = attendanceRange("", "")
	require.NoError(t, err)
	assert.True(t, to.After(from))
}

func TestSchoolSchemaValidation(t *testing.T) {
	valid := &schoolSchema{NPSN: "20100001", Name: "SMA Negeri 1"}
	assert.NoError(t, validateSchema(valid))

	badNPSN := &schoolSchema{NPSN: "123", Name: "SMA Negeri 1"}
	err := validateSchema(badNPSN)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "npsn")

	badEmail := &schoolSchema{NPSN: "20100001", Name: "SMA Negeri 1", Email: "nope"}
	err = validateSchema(badEmail)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}
