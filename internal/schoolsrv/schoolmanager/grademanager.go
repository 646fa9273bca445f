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

var gradeAllowedFields = []string{"student_id", "subject_id", "exam_kind", "score", "adjusted_score"}

type gradeSchema struct {
	StudentID string  `json:"student_id" validate:"required,uuid"`
	SubjectID string  `json:"subject_id" validate:"required,uuid"`
	ExamKind  string  `json:"exam_kind" validate:"required,examKind"`
	Score     float64 `json:"score" validate:"min=0,max=100"`
	// Pointer so an explicit zero is distinguishable from absent.
	AdjustedScore *float64 `json:"adjusted_score" validate:"omitempty,min=0,max=100"`
	TenantID      string   `json:"tenant_id"`
	NPSN          string   `json:"npsn"`
}

type gradeRep struct {
	GradeID       string  `json:"grade_id"`
	StudentID     string  `json:"student_id"`
	SubjectID     string  `json:"subject_id"`
	ExamKind      string  `json:"exam_kind"`
	Score         float64 `json:"score"`
	AdjustedScore float64 `json:"adjusted_score"`
	NPSN          string  `json:"npsn"`
}

type gradeManager struct {
	req      RequestContext
	location string
}

var _ KindHandler = (*gradeManager)(nil)

func NewGradeKindHandler(_ context.Context, name RequestContext) (KindHandler, apperrors.Error) {
	return &gradeManager{req: name}, nil
}

func gradeByID(ctx context.Context, id string) (*models.Grade, apperrors.Error) {
	gid, err := uuid.Parse(id)
	if err != nil {
		return nil, dberror.ErrInvalidInput.Msg("invalid grade id")
	}
	return db.DB(ctx).GetGrade(ctx, gid)
}

func (m *gradeManager) Create(ctx context.Context, rsrcJSON []byte) (string, apperrors.Error) {
	school, err := policy.ResolveTenant(ctx)
	if err != nil {
		return "", err
	}

	var data map[string]any
	if uerr := json.Unmarshal(policy.FilterJSON(rsrcJSON, gradeAllowedFields), &data); uerr != nil {
		return "", ErrInvalidRequest.Err(uerr)
	}
	data = policy.PrepareForCreate(ctx, school, data)

	schema := &gradeSchema{}
	buf, _ := json.Marshal(data)
	if uerr := json.Unmarshal(buf, schema); uerr != nil {
		return "", ErrInvalidRequest.Err(uerr)
	}
	if verr := validateSchema(schema); verr != nil {
		return "", verr
	}

	student, err := policy.Resolve(ctx, policy.ByID[*models.Student](schema.StudentID), studentByID)
	if err != nil {
		return "", err
	}
	subject, err := policy.Resolve(ctx, policy.ByID[*models.Subject](schema.SubjectID), subjectByID)
	if err != nil {
		return "", err
	}

	grade := &models.Grade{
		StudentID:     student.StudentID,
		SubjectID:     subject.SubjectID,
		ExamKind:      schema.ExamKind,
		Score:         schema.Score,
		AdjustedScore: schema.Score,
		TenantID:      types.TenantId(schema.TenantID),
		NPSN:          schema.NPSN,
	}
	if schema.AdjustedScore != nil {
		grade.AdjustedScore = *schema.AdjustedScore
	}

	if dbErr := db.DB(ctx).CreateGrade(ctx, grade); dbErr != nil {
		return "", mapRecordDBError(dbErr, "grade")
	}
	m.location = "/" + types.ResourceNameGrades + "/" + grade.GradeID.String()
	return m.location, nil
}

func (m *gradeManager) Get(ctx context.Context) ([]byte, apperrors.Error) {
	grade, err := policy.Resolve(ctx, policy.ByID[*models.Grade](m.req.ObjectID.String()), gradeByID)
	if err != nil {
		return nil, err
	}
	out, merr := json.Marshal(gradeToRep(grade))
	if merr != nil {
		return nil, ErrSchoolManager.Err(merr)
	}
	return out, nil
}

// Update only touches the scores; moving a grade to another student or
// subject is not a correction, it is a new record.
func (m *gradeManager) Update(ctx context.Context, rsrcJSON []byte) apperrors.Error {
	grade, err := policy.Resolve(ctx, policy.ByID[*models.Grade](m.req.ObjectID.String()), gradeByID)
	if err != nil {
		return err
	}

	adjusted := grade.AdjustedScore
	schema := &gradeSchema{
		StudentID:     grade.StudentID.String(),
		SubjectID:     grade.SubjectID.String(),
		ExamKind:      grade.ExamKind,
		Score:         grade.Score,
		AdjustedScore: &adjusted,
	}
	if uerr := json.Unmarshal(policy.FilterJSON(rsrcJSON, []string{"score", "adjusted_score"}), schema); uerr != nil {
		return ErrInvalidRequest.Err(uerr)
	}
	if verr := validateSchema(schema); verr != nil {
		return verr
	}

	grade.Score = schema.Score
	// An explicit null clears the adjustment back to the raw score.
	if schema.AdjustedScore != nil {
		grade.AdjustedScore = *schema.AdjustedScore
	} else {
		grade.AdjustedScore = schema.Score
	}

	if dbErr := db.DB(ctx).UpdateGrade(ctx, grade); dbErr != nil {
		return mapRecordDBError(dbErr, "grade")
	}
	return nil
}

func (m *gradeManager) Delete(ctx context.Context) apperrors.Error {
	return ErrInvalidRequest.Msg("grades cannot be deleted; record an adjusted score instead")
}

func (m *gradeManager) List(ctx context.Context) ([]byte, apperrors.Error) {
	studentParam := m.req.QueryParams.Get("student_id")
	if studentParam == "" {
		return nil, ErrInvalidRequest.Msg("student_id query parameter is required")
	}

	// Resolving the student first keeps foreign student ids from
	// turning into empty-but-successful listings.
	student, err := policy.Resolve(ctx, policy.ByID[*models.Student](studentParam), studentByID)
	if err != nil {
		return nil, err
	}

	grades, err := db.DB(ctx).ListGradesByStudent(ctx, student.StudentID)
	if err != nil {
		return nil, err
	}
	reps := make([]gradeRep, 0, len(grades))
	for _, g := range grades {
		reps = append(reps, gradeToRep(g))
	}
	out, merr := json.Marshal(reps)
	if merr != nil {
		return nil, ErrSchoolManager.Err(merr)
	}
	return out, nil
}

func (m *gradeManager) Location() string {
	return m.location
}

func gradeToRep(g *models.Grade) gradeRep {
	return gradeRep{
		GradeID:       g.GradeID.String(),
		StudentID:     g.StudentID.String(),
		SubjectID:     g.SubjectID.String(),
		ExamKind:      g.ExamKind,
		Score:         g.Score,
		AdjustedScore: g.AdjustedScore,
		NPSN:          g.NPSN,
	}
}
