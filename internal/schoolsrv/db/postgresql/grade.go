package postgresql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/dberror"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/models"
)

func (rm *recordManager) CreateGrade(ctx context.Context, grade *models.Grade) apperrors.Error {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return err
	}
	gradeID := grade.GradeID
	if gradeID == uuid.Nil {
		gradeID = uuid.New()
	}

	query := `
		INSERT INTO grades (grade_id, student_id, subject_id, exam_kind, score, adjusted_score, tenant_id, npsn)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (student_id, subject_id, exam_kind, tenant_id) DO NOTHING
		RETURNING grade_id;
	`
	row := rm.conn().QueryRowContext(ctx, query,
		gradeID, grade.StudentID, grade.SubjectID, grade.ExamKind,
		grade.Score, grade.AdjustedScore, tenantID, grade.NPSN)

	var insertedID uuid.UUID
	errDb := row.Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return dberror.ErrAlreadyExists.Msg("grade already recorded for this exam")
		}
		if pgErr, ok := errDb.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrInvalidRef.Msg("student or subject not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Msg("failed to insert grade")
		return dberror.ErrDatabase.Err(errDb)
	}
	grade.GradeID = insertedID
	return nil
}

func (rm *recordManager) GetGrade(ctx context.Context, gradeID uuid.UUID) (*models.Grade, apperrors.Error) {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT grade_id, student_id, subject_id, exam_kind, score, COALESCE(adjusted_score, 0), tenant_id, npsn
		FROM grades
		WHERE tenant_id = $1 AND grade_id = $2;
	`
	var grade models.Grade
	errDb := rm.conn().QueryRowContext(ctx, query, tenantID, gradeID).Scan(
		&grade.GradeID, &grade.StudentID, &grade.SubjectID, &grade.ExamKind,
		&grade.Score, &grade.AdjustedScore, &grade.TenantID, &grade.NPSN)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("grade not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("grade_id", gradeID.String()).Msg("failed to get grade")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &grade, nil
}

// UpdateGrade updates the score fields only. Which student/subject/exam
// a grade belongs to never changes after entry.
func (rm *recordManager) UpdateGrade(ctx context.Context, grade *models.Grade) apperrors.Error {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE grades
		SET score = $3, adjusted_score = $4
		WHERE tenant_id = $1 AND grade_id = $2;
	`
	result, errDb := rm.conn().ExecContext(ctx, query,
		tenantID, grade.GradeID, grade.Score, grade.AdjustedScore)
	if errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("grade_id", grade.GradeID.String()).Msg("failed to update grade")
		return dberror.ErrDatabase.Err(errDb)
	}
	rows, errDb := result.RowsAffected()
	if errDb != nil {
		return dberror.ErrDatabase.Err(errDb)
	}
	if rows == 0 {
		return dberror.ErrNotFound.Msg("grade not found")
	}
	return nil
}

func (rm *recordManager) ListGradesByStudent(ctx context.Context, studentID uuid.UUID) ([]*models.Grade, apperrors.Error) {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT grade_id, student_id, subject_id, exam_kind, score, COALESCE(adjusted_score, 0), tenant_id, npsn
		FROM grades
		WHERE tenant_id = $1 AND student_id = $2
		ORDER BY exam_kind;
	`
	rows, errDb := rm.conn().QueryContext(ctx, query, tenantID, studentID)
	if errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("student_id", studentID.String()).Msg("failed to list grades")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		var grade models.Grade
		if errDb := rows.Scan(
			&grade.GradeID, &grade.StudentID, &grade.SubjectID, &grade.ExamKind,
			&grade.Score, &grade.AdjustedScore, &grade.TenantID, &grade.NPSN); errDb != nil {
			return nil, dberror.ErrDatabase.Err(errDb)
		}
		grades = append(grades, &grade)
	}
	if errDb := rows.Err(); errDb != nil {
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return grades, nil
}

func (rm *recordManager) CountGradesForSubject(ctx context.Context, subjectID uuid.UUID) (int, apperrors.Error) {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return 0, err
	}

	query := `SELECT COUNT(*) FROM grades WHERE tenant_id = $1 AND subject_id = $2;`
	var count int
	if errDb := rm.conn().QueryRowContext(ctx, query, tenantID, subjectID).Scan(&count); errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("subject_id", subjectID.String()).Msg("failed to count grades")
		return 0, dberror.ErrDatabase.Err(errDb)
	}
	return count, nil
}
