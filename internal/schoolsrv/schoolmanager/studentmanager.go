package schoolmanager

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/dberror"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/models"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/policy"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

// Fields a client may set. Scoping columns are stamped server-side and
// stay off the list so a request body cannot move a record across
// tenants.
var studentAllowedFields = []string{
	"nis", "nisn", "name", "class_id", "guardian_name", "guardian_phone", "status",
}

type studentSchema struct {
	NIS           string `json:"nis" validate:"required"`
	NISN          string `json:"nisn"`
	Name          string `json:"name" validate:"required"`
	ClassID       string `json:"class_id" validate:"omitempty,uuid"`
	GuardianName  string `json:"guardian_name"`
	GuardianPhone string `json:"guardian_phone"`
	Status        string `json:"status" validate:"omitempty,oneof=active graduated transferred inactive"`
	TenantID      string `json:"tenant_id"`
	NPSN          string `json:"npsn"`
}

type studentRep struct {
	StudentID     string `json:"student_id"`
	NIS           string `json:"nis"`
	NISN          string `json:"nisn,omitempty"`
	Name          string `json:"name"`
	ClassID       string `json:"class_id,omitempty"`
	GuardianName  string `json:"guardian_name,omitempty"`
	GuardianPhone string `json:"guardian_phone,omitempty"`
	Status        string `json:"status"`
	NPSN          string `json:"npsn"`
}

type studentManager struct {
	req      RequestContext
	location string
}

var _ KindHandler = (*studentManager)(nil)

func NewStudentKindHandler(_ context.Context, name RequestContext) (KindHandler, apperrors.Error) {
	return &studentManager{req: name}, nil
}

func studentByID(ctx context.Context, id string) (*models.Student, apperrors.Error) {
	sid, err := uuid.Parse(id)
	if err != nil {
		return nil, dberror.ErrInvalidInput.Msg("invalid student id")
	}
	return db.DB(ctx).GetStudent(ctx, sid)
}

func (m *studentManager) Create(ctx context.Context, rsrcJSON []byte) (string, apperrors.Error) {
	school, err := policy.ResolveTenant(ctx)
	if err != nil {
		return "", err
	}

	var data map[string]any
	if uerr := json.Unmarshal(policy.FilterJSON(rsrcJSON, studentAllowedFields), &data); uerr != nil {
		return "", ErrInvalidRequest.Err(uerr)
	}
	data = policy.PrepareForCreate(ctx, school, data)

	schema := &studentSchema{}
	buf, _ := json.Marshal(data)
	if uerr := json.Unmarshal(buf, schema); uerr != nil {
		return "", ErrInvalidRequest.Err(uerr)
	}
	if verr := validateSchema(schema); verr != nil {
		return "", verr
	}

	student := &models.Student{
		NIS:           schema.NIS,
		NISN:          schema.NISN,
		Name:          schema.Name,
		GuardianName:  schema.GuardianName,
		GuardianPhone: schema.GuardianPhone,
		Status:        schema.Status,
		TenantID:      types.TenantId(schema.TenantID),
		NPSN:          schema.NPSN,
	}
	if student.Status == "" {
		student.Status = "active"
	}
	if schema.ClassID != "" {
		// The enrolling class must belong to the acting tenant;
		// resolving it enforces that before the foreign key ever
		// sees the insert.
		class, err := policy.Resolve(ctx, policy.ByID[*models.ClassRoom](schema.ClassID), classRoomByID)
		if err != nil {
			return "", err
		}
		student.ClassID = class.ClassID
	}

	if dbErr := db.DB(ctx).CreateStudent(ctx, student); dbErr != nil {
		return "", mapRecordDBError(dbErr, "student")
	}
	m.location = "/" + types.ResourceNameStudents + "/" + student.StudentID.String()
	return m.location, nil
}

func (m *studentManager) Get(ctx context.Context) ([]byte, apperrors.Error) {
	student, err := policy.Resolve(ctx, policy.ByID[*models.Student](m.req.ObjectID.String()), studentByID)
	if err != nil {
		return nil, err
	}
	out, merr := json.Marshal(studentToRep(student))
	if merr != nil {
		return nil, ErrSchoolManager.Err(merr)
	}
	return out, nil
}

func (m *studentManager) Update(ctx context.Context, rsrcJSON []byte) apperrors.Error {
	student, err := policy.Resolve(ctx, policy.ByID[*models.Student](m.req.ObjectID.String()), studentByID)
	if err != nil {
		return err
	}

	schema := &studentSchema{
		NIS:           student.NIS,
		NISN:          student.NISN,
		Name:          student.Name,
		GuardianName:  student.GuardianName,
		GuardianPhone: student.GuardianPhone,
		Status:        student.Status,
	}
	if student.ClassID != uuid.Nil {
		schema.ClassID = student.ClassID.String()
	}
	if uerr := json.Unmarshal(policy.FilterJSON(rsrcJSON, studentAllowedFields), schema); uerr != nil {
		return ErrInvalidRequest.Err(uerr)
	}
	if verr := validateSchema(schema); verr != nil {
		return verr
	}

	student.NIS = schema.NIS
	student.NISN = schema.NISN
	student.Name = schema.Name
	student.GuardianName = schema.GuardianName
	student.GuardianPhone = schema.GuardianPhone
	student.Status = schema.Status
	student.ClassID = uuid.Nil
	if schema.ClassID != "" {
		class, err := policy.Resolve(ctx, policy.ByID[*models.ClassRoom](schema.ClassID), classRoomByID)
		if err != nil {
			return err
		}
		student.ClassID = class.ClassID
	}

	if dbErr := db.DB(ctx).UpdateStudent(ctx, student); dbErr != nil {
		return mapRecordDBError(dbErr, "student")
	}
	return nil
}

func (m *studentManager) Delete(ctx context.Context) apperrors.Error {
	student, err := policy.Resolve(ctx, policy.ByID[*models.Student](m.req.ObjectID.String()), studentByID)
	if err != nil {
		return err
	}
	if dbErr := db.DB(ctx).DeleteStudent(ctx, student.StudentID); dbErr != nil {
		return mapRecordDBError(dbErr, "student")
	}
	return nil
}

func (m *studentManager) List(ctx context.Context) ([]byte, apperrors.Error) {
	classParam := m.req.QueryParams.Get("class_id")
	if classParam == "" {
		return nil, ErrInvalidRequest.Msg("class_id query parameter is required")
	}
	classID, perr := uuid.Parse(classParam)
	if perr != nil {
		return nil, ErrInvalidRequest.Msg("invalid class_id")
	}
	students, err := db.DB(ctx).ListStudentsByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	reps := make([]studentRep, 0, len(students))
	for _, s := range students {
		reps = append(reps, studentToRep(s))
	}
	out, merr := json.Marshal(reps)
	if merr != nil {
		return nil, ErrSchoolManager.Err(merr)
	}
	return out, nil
}

func (m *studentManager) Location() string {
	return m.location
}

func studentToRep(s *models.Student) studentRep {
	rep := studentRep{
		StudentID:     s.StudentID.String(),
		NIS:           s.NIS,
		NISN:          s.NISN,
		Name:          s.Name,
		GuardianName:  s.GuardianName,
		GuardianPhone: s.GuardianPhone,
		Status:        s.Status,
		NPSN:          s.NPSN,
	}
	if s.ClassID != uuid.Nil {
		rep.ClassID = s.ClassID.String()
	}
	return rep
}

// mapRecordDBError translates db-layer failures into client-facing
// manager errors. Unrecognized errors pass through with their own
// status codes.
func mapRecordDBError(err apperrors.Error, noun string) apperrors.Error {
	switch {
	case errors.Is(err, dberror.ErrAlreadyExists):
		return ErrAlreadyExists.Msg(noun + " already exists")
	case errors.Is(err, dberror.ErrInvalidRef):
		return ErrInvalidRelation.Msg("referenced record does not exist")
	case errors.Is(err, dberror.ErrHasDependents):
		return policy.ErrDependencyConflict.Msg(noun + " has dependent records")
	case errors.Is(err, dberror.ErrNotFound):
		return policy.ErrNotFound
	}
	return err
}
