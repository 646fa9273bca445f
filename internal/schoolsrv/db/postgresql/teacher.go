package postgresql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/dberror"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/models"
)

func (rm *recordManager) CreateTeacher(ctx context.Context, teacher *models.Teacher) apperrors.Error {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return err
	}
	teacherID := teacher.TeacherID
	if teacherID == uuid.Nil {
		teacherID = uuid.New()
	}

	query := `
		INSERT INTO teachers (teacher_id, nip, name, phone, tenant_id, npsn)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (nip, tenant_id) DO NOTHING
		RETURNING teacher_id;
	`
	row := rm.conn().QueryRowContext(ctx, query,
		teacherID, teacher.NIP, teacher.Name, teacher.Phone, tenantID, teacher.NPSN)

	var insertedID uuid.UUID
	errDb := row.Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			log.Ctx(ctx).Info().Str("nip", teacher.NIP).Msg("teacher already exists")
			return dberror.ErrAlreadyExists.Msg("teacher already exists")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("nip", teacher.NIP).Msg("failed to insert teacher")
		return dberror.ErrDatabase.Err(errDb)
	}
	teacher.TeacherID = insertedID
	return nil
}

func (rm *recordManager) GetTeacher(ctx context.Context, teacherID uuid.UUID) (*models.Teacher, apperrors.Error) {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT teacher_id, nip, name, COALESCE(phone, ''), tenant_id, npsn, created_at
		FROM teachers
		WHERE tenant_id = $1 AND teacher_id = $2;
	`
	var teacher models.Teacher
	errDb := rm.conn().QueryRowContext(ctx, query, tenantID, teacherID).Scan(
		&teacher.TeacherID, &teacher.NIP, &teacher.Name, &teacher.Phone,
		&teacher.TenantID, &teacher.NPSN, &teacher.CreatedAt)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("teacher not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("teacher_id", teacherID.String()).Msg("failed to get teacher")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &teacher, nil
}

func (rm *recordManager) UpdateTeacher(ctx context.Context, teacher *models.Teacher) apperrors.Error {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE teachers
		SET nip = $3, name = $4, phone = $5
		WHERE tenant_id = $1 AND teacher_id = $2;
	`
	result, errDb := rm.conn().ExecContext(ctx, query,
		tenantID, teacher.TeacherID, teacher.NIP, teacher.Name, teacher.Phone)
	if errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("teacher_id", teacher.TeacherID.String()).Msg("failed to update teacher")
		return dberror.ErrDatabase.Err(errDb)
	}
	rows, errDb := result.RowsAffected()
	if errDb != nil {
		return dberror.ErrDatabase.Err(errDb)
	}
	if rows == 0 {
		return dberror.ErrNotFound.Msg("teacher not found")
	}
	return nil
}

func (rm *recordManager) DeleteTeacher(ctx context.Context, teacherID uuid.UUID) apperrors.Error {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return err
	}

	query := `DELETE FROM teachers WHERE tenant_id = $1 AND teacher_id = $2;`
	result, errDb := rm.conn().ExecContext(ctx, query, tenantID, teacherID)
	if errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("teacher_id", teacherID.String()).Msg("failed to delete teacher")
		return dberror.ErrDatabase.Err(errDb)
	}
	rows, errDb := result.RowsAffected()
	if errDb != nil {
		return dberror.ErrDatabase.Err(errDb)
	}
	if rows == 0 {
		return dberror.ErrNotFound.Msg("teacher not found")
	}
	return nil
}

// CountHomeroomsForTeacher counts classes that have this teacher as
// their homeroom teacher. Used by the deletion guard.
func (rm *recordManager) CountHomeroomsForTeacher(ctx context.Context, teacherID uuid.UUID) (int, apperrors.Error) {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return 0, err
	}

	query := `SELECT COUNT(*) FROM classrooms WHERE tenant_id = $1 AND homeroom_teacher_id = $2;`
	var count int
	if errDb := rm.conn().QueryRowContext(ctx, query, tenantID, teacherID).Scan(&count); errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("teacher_id", teacherID.String()).Msg("failed to count homerooms")
		return 0, dberror.ErrDatabase.Err(errDb)
	}
	return count, nil
}
