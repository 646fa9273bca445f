package schoolmanager

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/dberror"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/models"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/policy"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

var attendanceAllowedFields = []string{"student_id", "date", "status", "note"}

const attendanceDateLayout = "2006-01-02"

type attendanceSchema struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
	Date      string `json:"date" validate:"required"`
	Status    string `json:"status" validate:"required,attendanceStatus"`
	Note      string `json:"note"`
	TenantID  string `json:"tenant_id"`
	NPSN      string `json:"npsn"`
}

type attendanceRep struct {
	AttendanceID string `json:"attendance_id"`
	StudentID    string `json:"student_id"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	Note         string `json:"note,omitempty"`
	NPSN         string `json:"npsn"`
}

type attendanceManager struct {
	req      RequestContext
	location string
}

var _ KindHandler = (*attendanceManager)(nil)

func NewAttendanceKindHandler(_ context.Context, name RequestContext) (KindHandler, apperrors.Error) {
	return &attendanceManager{req: name}, nil
}

func attendanceByID(ctx context.Context, id string) (*models.Attendance, apperrors.Error) {
	aid, err := uuid.Parse(id)
	if err != nil {
		return nil, dberror.ErrInvalidInput.Msg("invalid attendance id")
	}
	return db.DB(ctx).GetAttendance(ctx, aid)
}

func (m *attendanceManager) Create(ctx context.Context, rsrcJSON []byte) (string, apperrors.Error) {
	school, err := policy.ResolveTenant(ctx)
	if err != nil {
		return "", err
	}

	var data map[string]any
	if uerr := json.Unmarshal(policy.FilterJSON(rsrcJSON, attendanceAllowedFields), &data); uerr != nil {
		return "", ErrInvalidRequest.Err(uerr)
	}
	data = policy.PrepareForCreate(ctx, school, data)

	schema := &attendanceSchema{}
	buf, _ := json.Marshal(data)
	if uerr := json.Unmarshal(buf, schema); uerr != nil {
		return "", ErrInvalidRequest.Err(uerr)
	}
	if verr := validateSchema(schema); verr != nil {
		return "", verr
	}

	date, derr := time.Parse(attendanceDateLayout, schema.Date)
	if derr != nil {
		return "", policy.ErrValidation.Msg("invalid value for: date")
	}

	student, err := policy.Resolve(ctx, policy.ByID[*models.Student](schema.StudentID), studentByID)
	if err != nil {
		return "", err
	}

	att := &models.Attendance{
		StudentID: student.StudentID,
		Date:      date,
		Status:    types.AttendanceStatus(schema.Status),
		Note:      schema.Note,
		TenantID:  types.TenantId(schema.TenantID),
		NPSN:      schema.NPSN,
	}
	if dbErr := db.DB(ctx).CreateAttendance(ctx, att); dbErr != nil {
		return "", mapRecordDBError(dbErr, "attendance record")
	}
	m.location = "/" + types.ResourceNameAttendance + "/" + att.AttendanceID.String()
	return m.location, nil
}

func (m *attendanceManager) Get(ctx context.Context) ([]byte, apperrors.Error) {
	att, err := policy.Resolve(ctx, policy.ByID[*models.Attendance](m.req.ObjectID.String()), attendanceByID)
	if err != nil {
		return nil, err
	}
	out, merr := json.Marshal(attendanceToRep(att))
	if merr != nil {
		return nil, ErrSchoolManager.Err(merr)
	}
	return out, nil
}

// Attendance is an append-only log; corrections are new entries.
func (m *attendanceManager) Update(ctx context.Context, _ []byte) apperrors.Error {
	return ErrInvalidRequest.Msg("attendance records cannot be updated")
}

func (m *attendanceManager) Delete(ctx context.Context) apperrors.Error {
	return ErrInvalidRequest.Msg("attendance records cannot be deleted")
}

func (m *attendanceManager) List(ctx context.Context) ([]byte, apperrors.Error) {
	studentParam := m.req.QueryParams.Get("student_id")
	if studentParam == "" {
		return nil, ErrInvalidRequest.Msg("student_id query parameter is required")
	}
	student, err := policy.Resolve(ctx, policy.ByID[*models.Student](studentParam), studentByID)
	if err != nil {
		return nil, err
	}

	from, to, rerr := attendanceRange(m.req.QueryParams.Get("from"), m.req.QueryParams.Get("to"))
	if rerr != nil {
		return nil, rerr
	}

	records, err := db.DB(ctx).ListAttendanceByStudent(ctx, student.StudentID, from, to)
	if err != nil {
		return nil, err
	}
	reps := make([]attendanceRep, 0, len(records))
	for _, a := range records {
		reps = append(reps, attendanceToRep(a))
	}
	out, merr := json.Marshal(reps)
	if merr != nil {
		return nil, ErrSchoolManager.Err(merr)
	}
	return out, nil
}

func (m *attendanceManager) Location() string {
	return m.location
}

// attendanceRange parses the optional from/to query parameters,
// defaulting to the last 30 days.
func attendanceRange(fromParam, toParam string) (time.Time, time.Time, apperrors.Error) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if fromParam != "" {
		t, err := time.Parse(attendanceDateLayout, fromParam)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidRequest.Msg("invalid from date")
		}
		from = t
	}
	if toParam != "" {
		t, err := time.Parse(attendanceDateLayout, toParam)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidRequest.Msg("invalid to date")
		}
		to = t
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrInvalidRequest.Msg("to date precedes from date")
	}
	return from, to, nil
}

func attendanceToRep(a *models.Attendance) attendanceRep {
	return attendanceRep{
		AttendanceID: a.AttendanceID.String(),
		StudentID:    a.StudentID.String(),
		Date:         a.Date.Format(attendanceDateLayout),
		Status:       string(a.Status),
		Note:         a.Note,
		NPSN:         a.NPSN,
	}
}
