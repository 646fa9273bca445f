package schoolmanager

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/dberror"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/models"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/policy"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

var scheduleAllowedFields = []string{"class_id", "subject_id", "teacher_id", "weekday", "period"}

type scheduleSchema struct {
	ClassID   string `json:"class_id" validate:"required,uuid"`
	SubjectID string `json:"subject_id" validate:"required,uuid"`
	TeacherID string `json:"teacher_id" validate:"required,uuid"`
	Weekday   int    `json:"weekday" validate:"required,min=1,max=6"`
	Period    int    `json:"period" validate:"required,min=1,max=12"`
	TenantID  string `json:"tenant_id"`
	NPSN      string `json:"npsn"`
}

type scheduleRep struct {
	ScheduleID string `json:"schedule_id"`
	ClassID    string `json:"class_id"`
	SubjectID  string `json:"subject_id"`
	TeacherID  string `json:"teacher_id"`
	Weekday    int    `json:"weekday"`
	Period     int    `json:"period"`
	NPSN       string `json:"npsn"`
}

type scheduleManager struct {
	req      RequestContext
	location string
}

var _ KindHandler = (*scheduleManager)(nil)

func NewScheduleKindHandler(_ context.Context, name RequestContext) (KindHandler, apperrors.Error) {
	return &scheduleManager{req: name}, nil
}

func scheduleByID(ctx context.Context, id string) (*models.Schedule, apperrors.Error) {
	sid, err := uuid.Parse(id)
	if err != nil {
		return nil, dberror.ErrInvalidInput.Msg("invalid schedule id")
	}
	return db.DB(ctx).GetSchedule(ctx, sid)
}

func (m *scheduleManager) Create(ctx context.Context, rsrcJSON []byte) (string, apperrors.Error) {
	school, err := policy.ResolveTenant(ctx)
	if err != nil {
		return "", err
	}

	var data map[string]any
	if uerr := json.Unmarshal(policy.FilterJSON(rsrcJSON, scheduleAllowedFields), &data); uerr != nil {
		return "", ErrInvalidRequest.Err(uerr)
	}
	data = policy.PrepareForCreate(ctx, school, data)

	schema := &scheduleSchema{}
	buf, _ := json.Marshal(data)
	if uerr := json.Unmarshal(buf, schema); uerr != nil {
		return "", ErrInvalidRequest.Err(uerr)
	}
	if verr := validateSchema(schema); verr != nil {
		return "", verr
	}

	// The referenced class, subject and teacher must belong to the
	// acting tenant; resolving each enforces that before the foreign
	// keys ever see the insert.
	class, err := policy.Resolve(ctx, policy.ByID[*models.ClassRoom](schema.ClassID), classRoomByID)
	if err != nil {
		return "", err
	}
	subject, err := policy.Resolve(ctx, policy.ByID[*models.Subject](schema.SubjectID), subjectByID)
	if err != nil {
		return "", err
	}
	teacher, err := policy.Resolve(ctx, policy.ByID[*models.Teacher](schema.TeacherID), teacherByID)
	if err != nil {
		return "", err
	}

	schedule := &models.Schedule{
		ClassID:   class.ClassID,
		SubjectID: subject.SubjectID,
		TeacherID: teacher.TeacherID,
		Weekday:   schema.Weekday,
		Period:    schema.Period,
		TenantID:  types.TenantId(schema.TenantID),
		NPSN:      schema.NPSN,
	}
	if dbErr := db.DB(ctx).CreateSchedule(ctx, schedule); dbErr != nil {
		return "", mapRecordDBError(dbErr, "schedule")
	}
	m.location = "/" + types.ResourceNameSchedules + "/" + schedule.ScheduleID.String()
	return m.location, nil
}

func (m *scheduleManager) Get(ctx context.Context) ([]byte, apperrors.Error) {
	schedule, err := policy.Resolve(ctx, policy.ByID[*models.Schedule](m.req.ObjectID.String()), scheduleByID)
	if err != nil {
		return nil, err
	}
	out, merr := json.Marshal(scheduleToRep(schedule))
	if merr != nil {
		return nil, ErrSchoolManager.Err(merr)
	}
	return out, nil
}

// Update is not supported; a schedule entry is replaced by deleting and
// recreating it.
func (m *scheduleManager) Update(ctx context.Context, _ []byte) apperrors.Error {
	return ErrInvalidRequest.Msg("schedule entries cannot be updated; delete and recreate")
}

func (m *scheduleManager) Delete(ctx context.Context) apperrors.Error {
	schedule, err := policy.Resolve(ctx, policy.ByID[*models.Schedule](m.req.ObjectID.String()), scheduleByID)
	if err != nil {
		return err
	}
	if dbErr := db.DB(ctx).DeleteSchedule(ctx, schedule.ScheduleID); dbErr != nil {
		return mapRecordDBError(dbErr, "schedule")
	}
	return nil
}

func (m *scheduleManager) List(ctx context.Context) ([]byte, apperrors.Error) {
	classParam := m.req.QueryParams.Get("class_id")
	if classParam == "" {
		return nil, ErrInvalidRequest.Msg("class_id query parameter is required")
	}
	classID, perr := uuid.Parse(classParam)
	if perr != nil {
		return nil, ErrInvalidRequest.Msg("invalid class_id")
	}
	schedules, err := db.DB(ctx).ListSchedulesByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	reps := make([]scheduleRep, 0, len(schedules))
	for _, s := range schedules {
		reps = append(reps, scheduleToRep(s))
	}
	out, merr := json.Marshal(reps)
	if merr != nil {
		return nil, ErrSchoolManager.Err(merr)
	}
	return out, nil
}

func (m *scheduleManager) Location() string {
	return m.location
}

func scheduleToRep(s *models.Schedule) scheduleRep {
	return scheduleRep{
		ScheduleID: s.ScheduleID.String(),
		ClassID:    s.ClassID.String(),
		SubjectID:  s.SubjectID.String(),
		TeacherID:  s.TeacherID.String(),
		Weekday:    s.Weekday,
		Period:     s.Period,
		NPSN:       s.NPSN,
	}
}
