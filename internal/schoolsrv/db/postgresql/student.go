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

// CreateStudent inserts a student under the context tenant. The NIS is
// unique per tenant, not globally.
func (rm *recordManager) CreateStudent(ctx context.Context, student *models.Student) apperrors.Error {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return err
	}
	studentID := student.StudentID
	if studentID == uuid.Nil {
		studentID = uuid.New()
	}

	query := `
		INSERT INTO students (student_id, nis, nisn, name, class_id, guardian_name, guardian_phone, status, tenant_id, npsn)
		VALUES ($1, $2, $3, $4, NULLIF($5, '00000000-0000-0000-0000-000000000000')::uuid, $6, $7, $8, $9, $10)
		ON CONFLICT (nis, tenant_id) DO NOTHING
		RETURNING student_id;
	`
	row := rm.conn().QueryRowContext(ctx, query,
		studentID, student.NIS, student.NISN, student.Name, student.ClassID.String(),
		student.GuardianName, student.GuardianPhone, student.Status, tenantID, student.NPSN)

	var insertedID uuid.UUID
	errDb := row.Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			log.Ctx(ctx).Info().Str("nis", student.NIS).Msg("student already exists")
			return dberror.ErrAlreadyExists.Msg("student already exists")
		}
		if pgErr, ok := errDb.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			log.Ctx(ctx).Info().Str("class_id", student.ClassID.String()).Msg("class not found")
			return dberror.ErrInvalidRef.Msg("class not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("nis", student.NIS).Msg("failed to insert student")
		return dberror.ErrDatabase.Err(errDb)
	}
	student.StudentID = insertedID
	return nil
}

// GetStudent loads a student by id, pre-filtered by the context tenant.
// A student belonging to another tenant is indistinguishable from a
// missing one.
func (rm *recordManager) GetStudent(ctx context.Context, studentID uuid.UUID) (*models.Student, apperrors.Error) {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT student_id, nis, COALESCE(nisn, ''), name,
		       COALESCE(class_id, '00000000-0000-0000-0000-000000000000'::uuid),
		       COALESCE(guardian_name, ''), COALESCE(guardian_phone, ''), status, tenant_id, npsn, created_at
		FROM students
		WHERE tenant_id = $1 AND student_id = $2;
	`
	var student models.Student
	errDb := rm.conn().QueryRowContext(ctx, query, tenantID, studentID).Scan(
		&student.StudentID, &student.NIS, &student.NISN, &student.Name, &student.ClassID,
		&student.GuardianName, &student.GuardianPhone, &student.Status,
		&student.TenantID, &student.NPSN, &student.CreatedAt)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("student not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("student_id", studentID.String()).Msg("failed to get student")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &student, nil
}

func (rm *recordManager) UpdateStudent(ctx context.Context, student *models.Student) apperrors.Error {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE students
		SET nis = $3, nisn = $4, name = $5,
		    class_id = NULLIF($6, '00000000-0000-0000-0000-000000000000')::uuid,
		    guardian_name = $7, guardian_phone = $8, status = $9
		WHERE tenant_id = $1 AND student_id = $2;
	`
	result, errDb := rm.conn().ExecContext(ctx, query,
		tenantID, student.StudentID, student.NIS, student.NISN, student.Name,
		student.ClassID.String(), student.GuardianName, student.GuardianPhone, student.Status)
	if errDb != nil {
		if pgErr, ok := errDb.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrInvalidRef.Msg("class not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("student_id", student.StudentID.String()).Msg("failed to update student")
		return dberror.ErrDatabase.Err(errDb)
	}
	rows, errDb := result.RowsAffected()
	if errDb != nil {
		return dberror.ErrDatabase.Err(errDb)
	}
	if rows == 0 {
		return dberror.ErrNotFound.Msg("student not found")
	}
	return nil
}

func (rm *recordManager) DeleteStudent(ctx context.Context, studentID uuid.UUID) apperrors.Error {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return err
	}

	query := `DELETE FROM students WHERE tenant_id = $1 AND student_id = $2;`
	result, errDb := rm.conn().ExecContext(ctx, query, tenantID, studentID)
	if errDb != nil {
		if pgErr, ok := errDb.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrHasDependents.Msg("student has dependent records")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("student_id", studentID.String()).Msg("failed to delete student")
		return dberror.ErrDatabase.Err(errDb)
	}
	rows, errDb := result.RowsAffected()
	if errDb != nil {
		return dberror.ErrDatabase.Err(errDb)
	}
	if rows == 0 {
		return dberror.ErrNotFound.Msg("student not found")
	}
	return nil
}

func (rm *recordManager) ListStudentsByClass(ctx context.Context, classID uuid.UUID) ([]*models.Student, apperrors.Error) {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT student_id, nis, COALESCE(nisn, ''), name,
		       COALESCE(class_id, '00000000-0000-0000-0000-000000000000'::uuid),
		       COALESCE(guardian_name, ''), COALESCE(guardian_phone, ''), status, tenant_id, npsn, created_at
		FROM students
		WHERE tenant_id = $1 AND class_id = $2
		ORDER BY name;
	`
	rows, errDb := rm.conn().QueryContext(ctx, query, tenantID, classID)
	if errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("class_id", classID.String()).Msg("failed to list students")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if errDb := rows.Scan(
			&student.StudentID, &student.NIS, &student.NISN, &student.Name, &student.ClassID,
			&student.GuardianName, &student.GuardianPhone, &student.Status,
			&student.TenantID, &student.NPSN, &student.CreatedAt); errDb != nil {
			return nil, dberror.ErrDatabase.Err(errDb)
		}
		students = append(students, &student)
	}
	if errDb := rows.Err(); errDb != nil {
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return students, nil
}

func (rm *recordManager) CountStudentsInClass(ctx context.Context, classID uuid.UUID) (int, apperrors.Error) {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return 0, err
	}

	query := `SELECT COUNT(*) FROM students WHERE tenant_id = $1 AND class_id = $2;`
	var count int
	if errDb := rm.conn().QueryRowContext(ctx, query, tenantID, classID).Scan(&count); errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("class_id", classID.String()).Msg("failed to count students")
		return 0, dberror.ErrDatabase.Err(errDb)
	}
	return count, nil
}
