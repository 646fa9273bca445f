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

var subjectAllowedFields = []string{"name", "code", "level"}

type subjectSchema struct {
	Name     string `json:"name" validate:"required"`
	Code     string `json:"code" validate:"required"`
	Level    int    `json:"level" validate:"required,min=1,max=13"`
	TenantID string `json:"tenant_id"`
	NPSN     string `json:"npsn"`
}

type subjectRep struct {
	SubjectID string `json:"subject_id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	Level     int    `json:"level"`
	NPSN      string `json:"npsn"`
}

type subjectManager struct {
	req      RequestContext
	location string
}

var _ KindHandler = (*subjectManager)(nil)

func NewSubjectKindHandler(_ context.Context, name RequestContext) (KindHandler, apperrors.Error) {
	return &subjectManager{req: name}, nil
}

func subjectByID(ctx context.Context, id string) (*models.Subject, apperrors.Error) {
	sid, err := uuid.Parse(id)
	if err != nil {
		return nil, dberror.ErrInvalidInput.Msg("invalid subject id")
	}
	return db.DB(ctx).GetSubject(ctx, sid)
}

func subjectDependentGuards(subjectID uuid.UUID) []policy.DependentGuard {
	return []policy.DependentGuard{
		{
			Relation: "schedules",
			Message:  "subject is referenced by %d schedule entries",
			Count: func(ctx context.Context) (int, apperrors.Error) {
				return db.DB(ctx).CountSchedulesForSubject(ctx, subjectID)
			},
		},
		{
			Relation: "grades",
			Message:  "subject has %d recorded grades",
			Count: func(ctx context.Context) (int, apperrors.Error) {
				return db.DB(ctx).CountGradesForSubject(ctx, subjectID)
			},
		},
	}
}

func (m *subjectManager) Create(ctx context.Context, rsrcJSON []byte) (string, apperrors.Error) {
	school, err := policy.ResolveTenant(ctx)
	if err != nil {
		return "", err
	}

	var data map[string]any
	if uerr := json.Unmarshal(policy.FilterJSON(rsrcJSON, subjectAllowedFields), &data); uerr != nil {
		return "", ErrInvalidRequest.Err(uerr)
	}
	data = policy.PrepareForCreate(ctx, school, data)

	schema := &subjectSchema{}
	buf, _ := json.Marshal(data)
	if uerr := json.Unmarshal(buf, schema); uerr != nil {
		return "", ErrInvalidRequest.Err(uerr)
	}
	if verr := validateSchema(schema); verr != nil {
		return "", verr
	}

	subject := &models.Subject{
		Name:     schema.Name,
		Code:     schema.Code,
		Level:    schema.Level,
		TenantID: types.TenantId(schema.TenantID),
		NPSN:     schema.NPSN,
	}
	if dbErr := db.DB(ctx).CreateSubject(ctx, subject); dbErr != nil {
		return "", mapRecordDBError(dbErr, "subject")
	}
	m.location = "/" + types.ResourceNameSubjects + "/" + subject.SubjectID.String()
	return m.location, nil
}

func (m *subjectManager) Get(ctx context.Context) ([]byte, apperrors.Error) {
	subject, err := policy.Resolve(ctx, policy.ByID[*models.Subject](m.req.ObjectID.String()), subjectByID)
	if err != nil {
		return nil, err
	}
	out, merr := json.Marshal(subjectRep{
		SubjectID: subject.SubjectID.String(),
		Name:      subject.Name,
		Code:      subject.Code,
		Level:     subject.Level,
		NPSN:      subject.NPSN,
	})
	if merr != nil {
		return nil, ErrSchoolManager.Err(merr)
	}
	return out, nil
}

func (m *subjectManager) Update(ctx context.Context, rsrcJSON []byte) apperrors.Error {
	subject, err := policy.Resolve(ctx, policy.ByID[*models.Subject](m.req.ObjectID.String()), subjectByID)
	if err != nil {
		return err
	}

	schema := &subjectSchema{
		Name:  subject.Name,
		Code:  subject.Code,
		Level: subject.Level,
	}
	if uerr := json.Unmarshal(policy.FilterJSON(rsrcJSON, subjectAllowedFields), schema); uerr != nil {
		return ErrInvalidRequest.Err(uerr)
	}
	if verr := validateSchema(schema); verr != nil {
		return verr
	}

	subject.Name = schema.Name
	subject.Code = schema.Code
	subject.Level = schema.Level

	if dbErr := db.DB(ctx).UpdateSubject(ctx, subject); dbErr != nil {
		return mapRecordDBError(dbErr, "subject")
	}
	return nil
}

func (m *subjectManager) Delete(ctx context.Context) apperrors.Error {
	subject, err := policy.Resolve(ctx, policy.ByID[*models.Subject](m.req.ObjectID.String()), subjectByID)
	if err != nil {
		return err
	}

	return guardedDelete(ctx, subjectDependentGuards(subject.SubjectID), func(ctx context.Context) apperrors.Error {
		if dbErr := db.DB(ctx).DeleteSubject(ctx, subject.SubjectID); dbErr != nil {
			return mapRecordDBError(dbErr, "subject")
		}
		return nil
	})
}

func (m *subjectManager) List(ctx context.Context) ([]byte, apperrors.Error) {
	return nil, ErrInvalidRequest.Msg("listing subjects is not supported")
}

func (m *subjectManager) Location() string {
	return m.location
}
