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

func (rm *recordManager) CreateClassRoom(ctx context.Context, class *models.ClassRoom) apperrors.Error {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return err
	}
	classID := class.ClassID
	if classID == uuid.Nil {
		classID = uuid.New()
	}

	query := `
		INSERT INTO classrooms (class_id, name, level, homeroom_teacher_id, academic_year, tenant_id, npsn)
		VALUES ($1, $2, $3, NULLIF($4, '00000000-0000-0000-0000-000000000000')::uuid, $5, $6, $7)
		ON CONFLICT (name, academic_year, tenant_id) DO NOTHING
		RETURNING class_id;
	`
	row := rm.conn().QueryRowContext(ctx, query,
		classID, class.Name, class.Level, class.HomeroomTeacherID.String(),
		class.AcademicYear, tenantID, class.NPSN)

	var insertedID uuid.UUID
	errDb := row.Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			log.Ctx(ctx).Info().Str("name", class.Name).Msg("classroom already exists")
			return dberror.ErrAlreadyExists.Msg("classroom already exists")
		}
		if pgErr, ok := errDb.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrInvalidRef.Msg("homeroom teacher not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("name", class.Name).Msg("failed to insert classroom")
		return dberror.ErrDatabase.Err(errDb)
	}
	class.ClassID = insertedID
	return nil
}

func (rm *recordManager) GetClassRoom(ctx context.Context, classID uuid.UUID) (*models.ClassRoom, apperrors.Error) {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT class_id, name, level,
		       COALESCE(homeroom_teacher_id, '00000000-0000-0000-0000-000000000000'::uuid),
		       academic_year, tenant_id, npsn
		FROM classrooms
		WHERE tenant_id = $1 AND class_id = $2;
	`
	var class models.ClassRoom
	errDb := rm.conn().QueryRowContext(ctx, query, tenantID, classID).Scan(
		&class.ClassID, &class.Name, &class.Level, &class.HomeroomTeacherID,
		&class.AcademicYear, &class.TenantID, &class.NPSN)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("classroom not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("class_id", classID.String()).Msg("failed to get classroom")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &class, nil
}

func (rm *recordManager) UpdateClassRoom(ctx context.Context, class *models.ClassRoom) apperrors.Error {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE classrooms
		SET name = $3, level = $4,
		    homeroom_teacher_id = NULLIF($5, '00000000-0000-0000-0000-000000000000')::uuid,
		    academic_year = $6
		WHERE tenant_id = $1 AND class_id = $2;
	`
	result, errDb := rm.conn().ExecContext(ctx, query,
		tenantID, class.ClassID, class.Name, class.Level,
		class.HomeroomTeacherID.String(), class.AcademicYear)
	if errDb != nil {
		if pgErr, ok := errDb.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrInvalidRef.Msg("homeroom teacher not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("class_id", class.ClassID.String()).Msg("failed to update classroom")
		return dberror.ErrDatabase.Err(errDb)
	}
	rows, errDb := result.RowsAffected()
	if errDb != nil {
		return dberror.ErrDatabase.Err(errDb)
	}
	if rows == 0 {
		return dberror.ErrNotFound.Msg("classroom not found")
	}
	return nil
}

// DeleteClassRoom removes a class row. Callers must run the dependency
// guard first; the RESTRICT foreign keys are the backstop.
func (rm *recordManager) DeleteClassRoom(ctx context.Context, classID uuid.UUID) apperrors.Error {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return err
	}

	query := `DELETE FROM classrooms WHERE tenant_id = $1 AND class_id = $2;`
	result, errDb := rm.conn().ExecContext(ctx, query, tenantID, classID)
	if errDb != nil {
		if pgErr, ok := errDb.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			log.Ctx(ctx).Warn().Str("class_id", classID.String()).Msg("classroom has dependent records")
			return dberror.ErrHasDependents.Msg("classroom has dependent records")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("class_id", classID.String()).Msg("failed to delete classroom")
		return dberror.ErrDatabase.Err(errDb)
	}
	rows, errDb := result.RowsAffected()
	if errDb != nil {
		return dberror.ErrDatabase.Err(errDb)
	}
	if rows == 0 {
		return dberror.ErrNotFound.Msg("classroom not found")
	}
	return nil
}

func (rm *recordManager) ListClassRooms(ctx context.Context) ([]*models.ClassRoom, apperrors.Error) {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT class_id, name, level,
		       COALESCE(homeroom_teacher_id, '00000000-0000-0000-0000-000000000000'::uuid),
		       academic_year, tenant_id, npsn
		FROM classrooms
		WHERE tenant_id = $1
		ORDER BY level, name;
	`
	rows, errDb := rm.conn().QueryContext(ctx, query, tenantID)
	if errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Msg("failed to list classrooms")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	defer rows.Close()

	var classes []*models.ClassRoom
	for rows.Next() {
		var class models.ClassRoom
		if errDb := rows.Scan(
			&class.ClassID, &class.Name, &class.Level, &class.HomeroomTeacherID,
			&class.AcademicYear, &class.TenantID, &class.NPSN); errDb != nil {
			return nil, dberror.ErrDatabase.Err(errDb)
		}
		classes = append(classes, &class)
	}
	if errDb := rows.Err(); errDb != nil {
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return classes, nil
}
