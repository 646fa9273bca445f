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

var teacherAllowedFields = []string{"nip", "name", "phone"}

type teacherSchema struct {
	NIP      string `json:"nip" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
	TenantID string `json:"tenant_id"`
	NPSN     string `json:"npsn"`
}

type teacherRep struct {
	TeacherID string `json:"teacher_id"`
	NIP       string `json:"nip"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	NPSN      string `json:"npsn"`
}

type teacherManager struct {
	req      RequestContext
	location string
}

var _ KindHandler = (*teacherManager)(nil)

func NewTeacherKindHandler(_ context.Context, name RequestContext) (KindHandler, apperrors.Error) {
	return &teacherManager{req: name}, nil
}

func teacherByID(ctx context.Context, id string) (*models.Teacher, apperrors.Error) {
	tid, err := uuid.Parse(id)
	if err != nil {
		return nil, dberror.ErrInvalidInput.Msg("invalid teacher id")
	}
	return db.DB(ctx).GetTeacher(ctx, tid)
}

// teacherDependentGuards lists the relations that block deleting a
// teacher.
func teacherDependentGuards(teacherID uuid.UUID) []policy.DependentGuard {
	return []policy.DependentGuard{
		{
			Relation: "schedules",
			Message:  "teacher is assigned to %d schedule entries",
			Count: func(ctx context.Context) (int, apperrors.Error) {
				return db.DB(ctx).CountSchedulesForTeacher(ctx, teacherID)
			},
		},
		{
			Relation: "homerooms",
			Message:  "teacher is homeroom teacher for %d classes",
			Count: func(ctx context.Context) (int, apperrors.Error) {
				return db.DB(ctx).CountHomeroomsForTeacher(ctx, teacherID)
			},
		},
	}
}

func (m *teacherManager) Create(ctx context.Context, rsrcJSON []byte) (string, apperrors.Error) {
	school, err := policy.ResolveTenant(ctx)
	if err != nil {
		return "", err
	}

	var data map[string]any
	if uerr := json.Unmarshal(policy.FilterJSON(rsrcJSON, teacherAllowedFields), &data); uerr != nil {
		return "", ErrInvalidRequest.Err(uerr)
	}
	data = policy.PrepareForCreate(ctx, school, data)

	schema := &teacherSchema{}
	buf, _ := json.Marshal(data)
	if uerr := json.Unmarshal(buf, schema); uerr != nil {
		return "", ErrInvalidRequest.Err(uerr)
	}
	if verr := validateSchema(schema); verr != nil {
		return "", verr
	}

	teacher := &models.Teacher{
		NIP:      schema.NIP,
		Name:     schema.Name,
		Phone:    schema.Phone,
		TenantID: types.TenantId(schema.TenantID),
		NPSN:     schema.NPSN,
	}
	if dbErr := db.DB(ctx).CreateTeacher(ctx, teacher); dbErr != nil {
		return "", mapRecordDBError(dbErr, "teacher")
	}
	m.location = "/" + types.ResourceNameTeachers + "/" + teacher.TeacherID.String()
	return m.location, nil
}

func (m *teacherManager) Get(ctx context.Context) ([]byte, apperrors.Error) {
	teacher, err := policy.Resolve(ctx, policy.ByID[*models.Teacher](m.req.ObjectID.String()), teacherByID)
	if err != nil {
		return nil, err
	}
	out, merr := json.Marshal(teacherRep{
		TeacherID: teacher.TeacherID.String(),
		NIP:       teacher.NIP,
		Name:      teacher.Name,
		Phone:     teacher.Phone,
		NPSN:      teacher.NPSN,
	})
	if merr != nil {
		return nil, ErrSchoolManager.Err(merr)
	}
	return out, nil
}

func (m *teacherManager) Update(ctx context.Context, rsrcJSON []byte) apperrors.Error {
	teacher, err := policy.Resolve(ctx, policy.ByID[*models.Teacher](m.req.ObjectID.String()), teacherByID)
	if err != nil {
		return err
	}

	schema := &teacherSchema{
		NIP:   teacher.NIP,
		Name:  teacher.Name,
		Phone: teacher.Phone,
	}
	if uerr := json.Unmarshal(policy.FilterJSON(rsrcJSON, teacherAllowedFields), schema); uerr != nil {
		return ErrInvalidRequest.Err(uerr)
	}
	if verr := validateSchema(schema); verr != nil {
		return verr
	}

	teacher.NIP = schema.NIP
	teacher.Name = schema.Name
	teacher.Phone = schema.Phone

	if dbErr := db.DB(ctx).UpdateTeacher(ctx, teacher); dbErr != nil {
		return mapRecordDBError(dbErr, "teacher")
	}
	return nil
}

func (m *teacherManager) Delete(ctx context.Context) apperrors.Error {
	teacher, err := policy.Resolve(ctx, policy.ByID[*models.Teacher](m.req.ObjectID.String()), teacherByID)
	if err != nil {
		return err
	}

	return guardedDelete(ctx, teacherDependentGuards(teacher.TeacherID), func(ctx context.Context) apperrors.Error {
		if dbErr := db.DB(ctx).DeleteTeacher(ctx, teacher.TeacherID); dbErr != nil {
			return mapRecordDBError(dbErr, "teacher")
		}
		return nil
	})
}

func (m *teacherManager) List(ctx context.Context) ([]byte, apperrors.Error) {
	return nil, ErrInvalidRequest.Msg("listing teachers is not supported")
}

func (m *teacherManager) Location() string {
	return m.location
}
