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

var classRoomAllowedFields = []string{"name", "level", "homeroom_teacher_id", "academic_year"}

type classRoomSchema struct {
	Name              string `json:"name" validate:"required"`
	Level             int    `json:"level" validate:"required,min=1,max=13"`
	HomeroomTeacherID string `json:"homeroom_teacher_id" validate:"omitempty,uuid"`
	AcademicYear      string `json:"academic_year" validate:"required,academicYear"`
	TenantID          string `json:"tenant_id"`
	NPSN              string `json:"npsn"`
}

type classRoomRep struct {
	ClassID           string `json:"class_id"`
	Name              string `json:"name"`
	Level             int    `json:"level"`
	HomeroomTeacherID string `json:"homeroom_teacher_id,omitempty"`
	AcademicYear      string `json:"academic_year"`
	NPSN              string `json:"npsn"`
}

type classRoomManager struct {
	req      RequestContext
	location string
}

var _ KindHandler = (*classRoomManager)(nil)

func NewClassRoomKindHandler(_ context.Context, name RequestContext) (KindHandler, apperrors.Error) {
	return &classRoomManager{req: name}, nil
}

func classRoomByID(ctx context.Context, id string) (*models.ClassRoom, apperrors.Error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return nil, dberror.ErrInvalidInput.Msg("invalid class id")
	}
	return db.DB(ctx).GetClassRoom(ctx, cid)
}

// classRoomDependentGuards lists the relations that block deleting a
// class. All of them are reported at once so the client can clear
// everything in one pass.
func classRoomDependentGuards(classID uuid.UUID) []policy.DependentGuard {
	return []policy.DependentGuard{
		{
			Relation: "students",
			Message:  "class still has %d enrolled students",
			Count: func(ctx context.Context) (int, apperrors.Error) {
				return db.DB(ctx).CountStudentsInClass(ctx, classID)
			},
		},
		{
			Relation: "schedules",
			Message:  "class is referenced by %d schedule entries",
			Count: func(ctx context.Context) (int, apperrors.Error) {
				return db.DB(ctx).CountSchedulesForClass(ctx, classID)
			},
		},
	}
}

func (m *classRoomManager) Create(ctx context.Context, rsrcJSON []byte) (string, apperrors.Error) {
	school, err := policy.ResolveTenant(ctx)
	if err != nil {
		return "", err
	}

	var data map[string]any
	if uerr := json.Unmarshal(policy.FilterJSON(rsrcJSON, classRoomAllowedFields), &data); uerr != nil {
		return "", ErrInvalidRequest.Err(uerr)
	}
	data = policy.PrepareForCreate(ctx, school, data)

	schema := &classRoomSchema{}
	buf, _ := json.Marshal(data)
	if uerr := json.Unmarshal(buf, schema); uerr != nil {
		return "", ErrInvalidRequest.Err(uerr)
	}
	if verr := validateSchema(schema); verr != nil {
		return "", verr
	}

	class := &models.ClassRoom{
		Name:         schema.Name,
		Level:        schema.Level,
		AcademicYear: schema.AcademicYear,
		TenantID:     types.TenantId(schema.TenantID),
		NPSN:         schema.NPSN,
	}
	if schema.HomeroomTeacherID != "" {
		// The homeroom teacher must belong to the acting tenant;
		// resolving enforces that before the foreign key ever sees
		// the insert.
		teacher, err := policy.Resolve(ctx, policy.ByID[*models.Teacher](schema.HomeroomTeacherID), teacherByID)
		if err != nil {
			return "", err
		}
		class.HomeroomTeacherID = teacher.TeacherID
	}

	if dbErr := db.DB(ctx).CreateClassRoom(ctx, class); dbErr != nil {
		return "", mapRecordDBError(dbErr, "class")
	}
	m.location = "/" + types.ResourceNameClassRooms + "/" + class.ClassID.String()
	return m.location, nil
}

func (m *classRoomManager) Get(ctx context.Context) ([]byte, apperrors.Error) {
	class, err := policy.Resolve(ctx, policy.ByID[*models.ClassRoom](m.req.ObjectID.String()), classRoomByID)
	if err != nil {
		return nil, err
	}
	out, merr := json.Marshal(classRoomToRep(class))
	if merr != nil {
		return nil, ErrSchoolManager.Err(merr)
	}
	return out, nil
}

func (m *classRoomManager) Update(ctx context.Context, rsrcJSON []byte) apperrors.Error {
	class, err := policy.Resolve(ctx, policy.ByID[*models.ClassRoom](m.req.ObjectID.String()), classRoomByID)
	if err != nil {
		return err
	}

	schema := &classRoomSchema{
		Name:         class.Name,
		Level:        class.Level,
		AcademicYear: class.AcademicYear,
	}
	if class.HomeroomTeacherID != uuid.Nil {
		schema.HomeroomTeacherID = class.HomeroomTeacherID.String()
	}
	if uerr := json.Unmarshal(policy.FilterJSON(rsrcJSON, classRoomAllowedFields), schema); uerr != nil {
		return ErrInvalidRequest.Err(uerr)
	}
	if verr := validateSchema(schema); verr != nil {
		return verr
	}

	class.Name = schema.Name
	class.Level = schema.Level
	class.AcademicYear = schema.AcademicYear
	class.HomeroomTeacherID = uuid.Nil
	if schema.HomeroomTeacherID != "" {
		teacher, err := policy.Resolve(ctx, policy.ByID[*models.Teacher](schema.HomeroomTeacherID), teacherByID)
		if err != nil {
			return err
		}
		class.HomeroomTeacherID = teacher.TeacherID
	}

	if dbErr := db.DB(ctx).UpdateClassRoom(ctx, class); dbErr != nil {
		return mapRecordDBError(dbErr, "class")
	}
	return nil
}

func (m *classRoomManager) Delete(ctx context.Context) apperrors.Error {
	class, err := policy.Resolve(ctx, policy.ByID[*models.ClassRoom](m.req.ObjectID.String()), classRoomByID)
	if err != nil {
		return err
	}

	return guardedDelete(ctx, classRoomDependentGuards(class.ClassID), func(ctx context.Context) apperrors.Error {
		if dbErr := db.DB(ctx).DeleteClassRoom(ctx, class.ClassID); dbErr != nil {
			return mapRecordDBError(dbErr, "class")
		}
		return nil
	})
}

func (m *classRoomManager) List(ctx context.Context) ([]byte, apperrors.Error) {
	classes, err := db.DB(ctx).ListClassRooms(ctx)
	if err != nil {
		return nil, err
	}
	reps := make([]classRoomRep, 0, len(classes))
	for _, c := range classes {
		reps = append(reps, classRoomToRep(c))
	}
	out, merr := json.Marshal(reps)
	if merr != nil {
		return nil, ErrSchoolManager.Err(merr)
	}
	return out, nil
}

func (m *classRoomManager) Location() string {
	return m.location
}

func classRoomToRep(c *models.ClassRoom) classRoomRep {
	rep := classRoomRep{
		ClassID:      c.ClassID.String(),
		Name:         c.Name,
		Level:        c.Level,
		AcademicYear: c.AcademicYear,
		NPSN:         c.NPSN,
	}
	if c.HomeroomTeacherID != uuid.Nil {
		rep.HomeroomTeacherID = c.HomeroomTeacherID.String()
	}
	return rep
}
