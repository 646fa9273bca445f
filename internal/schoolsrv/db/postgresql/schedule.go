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

func (rm *recordManager) CreateSchedule(ctx context.Context, schedule *models.Schedule) apperrors.Error {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return err
	}
	scheduleID := schedule.ScheduleID
	if scheduleID == uuid.Nil {
		scheduleID = uuid.New()
	}

	query := `
		INSERT INTO schedules (schedule_id, class_id, subject_id, teacher_id, weekday, period, tenant_id, npsn)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (class_id, weekday, period, tenant_id) DO NOTHING
		RETURNING schedule_id;
	`
	row := rm.conn().QueryRowContext(ctx, query,
		scheduleID, schedule.ClassID, schedule.SubjectID, schedule.TeacherID,
		schedule.Weekday, schedule.Period, tenantID, schedule.NPSN)

	var insertedID uuid.UUID
	errDb := row.Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			log.Ctx(ctx).Info().Str("class_id", schedule.ClassID.String()).
				Int("weekday", schedule.Weekday).Int("period", schedule.Period).
				Msg("schedule slot already taken")
			return dberror.ErrAlreadyExists.Msg("schedule slot already taken")
		}
		if pgErr, ok := errDb.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrInvalidRef.Msg("class, subject or teacher not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Msg("failed to insert schedule")
		return dberror.ErrDatabase.Err(errDb)
	}
	schedule.ScheduleID = insertedID
	return nil
}

func (rm *recordManager) GetSchedule(ctx context.Context, scheduleID uuid.UUID) (*models.Schedule, apperrors.Error) {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT schedule_id, class_id, subject_id, teacher_id, weekday, period, tenant_id, npsn
		FROM schedules
		WHERE tenant_id = $1 AND schedule_id = $2;
	`
	var schedule models.Schedule
	errDb := rm.conn().QueryRowContext(ctx, query, tenantID, scheduleID).Scan(
		&schedule.ScheduleID, &schedule.ClassID, &schedule.SubjectID, &schedule.TeacherID,
		&schedule.Weekday, &schedule.Period, &schedule.TenantID, &schedule.NPSN)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("schedule not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("schedule_id", scheduleID.String()).Msg("failed to get schedule")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &schedule, nil
}

func (rm *recordManager) DeleteSchedule(ctx context.Context, scheduleID uuid.UUID) apperrors.Error {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return err
	}

	query := `DELETE FROM schedules WHERE tenant_id = $1 AND schedule_id = $2;`
	result, errDb := rm.conn().ExecContext(ctx, query, tenantID, scheduleID)
	if errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("schedule_id", scheduleID.String()).Msg("failed to delete schedule")
		return dberror.ErrDatabase.Err(errDb)
	}
	rows, errDb := result.RowsAffected()
	if errDb != nil {
		return dberror.ErrDatabase.Err(errDb)
	}
	if rows == 0 {
		return dberror.ErrNotFound.Msg("schedule not found")
	}
	return nil
}

func (rm *recordManager) ListSchedulesByClass(ctx context.Context, classID uuid.UUID) ([]*models.Schedule, apperrors.Error) {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT schedule_id, class_id, subject_id, teacher_id, weekday, period, tenant_id, npsn
		FROM schedules
		WHERE tenant_id = $1 AND class_id = $2
		ORDER BY weekday, period;
	`
	rows, errDb := rm.conn().QueryContext(ctx, query, tenantID, classID)
	if errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("class_id", classID.String()).Msg("failed to list schedules")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	defer rows.Close()

	var schedules []*models.Schedule
	for rows.Next() {
		var schedule models.Schedule
		if errDb := rows.Scan(
			&schedule.ScheduleID, &schedule.ClassID, &schedule.SubjectID, &schedule.TeacherID,
			&schedule.Weekday, &schedule.Period, &schedule.TenantID, &schedule.NPSN); errDb != nil {
			return nil, dberror.ErrDatabase.Err(errDb)
		}
		schedules = append(schedules, &schedule)
	}
	if errDb := rows.Err(); errDb != nil {
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return schedules, nil
}

func (rm *recordManager) CountSchedulesForClass(ctx context.Context, classID uuid.UUID) (int, apperrors.Error) {
	return rm.countSchedules(ctx, "class_id", classID)
}

func (rm *recordManager) CountSchedulesForSubject(ctx context.Context, subjectID uuid.UUID) (int, apperrors.Error) {
	return rm.countSchedules(ctx, "subject_id", subjectID)
}

func (rm *recordManager) CountSchedulesForTeacher(ctx context.Context, teacherID uuid.UUID) (int, apperrors.Error) {
	return rm.countSchedules(ctx, "teacher_id", teacherID)
}

// countSchedules counts schedule rows referencing the given entity.
// column is one of the fixed fk column names above, never user input.
func (rm *recordManager) countSchedules(ctx context.Context, column string, id uuid.UUID) (int, apperrors.Error) {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return 0, err
	}

	query := `SELECT COUNT(*) FROM schedules WHERE tenant_id = $1 AND ` + column + ` = $2;`
	var count int
	if errDb := rm.conn().QueryRowContext(ctx, query, tenantID, id).Scan(&count); errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str(column, id.String()).Msg("failed to count schedules")
		return 0, dberror.ErrDatabase.Err(errDb)
	}
	return count, nil
}
