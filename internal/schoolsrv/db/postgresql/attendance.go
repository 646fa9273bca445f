package postgresql

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/dberror"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/models"
)

func (rm *recordManager) CreateAttendance(ctx context.Context, att *models.Attendance) apperrors.Error {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return err
	}
	attendanceID := att.AttendanceID
	if attendanceID == uuid.Nil {
		attendanceID = uuid.New()
	}

	query := `
		INSERT INTO attendance (attendance_id, student_id, date, status, note, tenant_id, npsn)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (student_id, date, tenant_id) DO NOTHING
		RETURNING attendance_id;
	`
	row := rm.conn().QueryRowContext(ctx, query,
		attendanceID, att.StudentID, att.Date, att.Status, att.Note, tenantID, att.NPSN)

	var insertedID uuid.UUID
	errDb := row.Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return dberror.ErrAlreadyExists.Msg("attendance already recorded for this date")
		}
		if pgErr, ok := errDb.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrInvalidRef.Msg("student not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Msg("failed to insert attendance")
		return dberror.ErrDatabase.Err(errDb)
	}
	att.AttendanceID = insertedID
	return nil
}

func (rm *recordManager) GetAttendance(ctx context.Context, attendanceID uuid.UUID) (*models.Attendance, apperrors.Error) {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT attendance_id, student_id, date, status, COALESCE(note, ''), tenant_id, npsn
		FROM attendance
		WHERE tenant_id = $1 AND attendance_id = $2;
	`
	var att models.Attendance
	errDb := rm.conn().QueryRowContext(ctx, query, tenantID, attendanceID).Scan(
		&att.AttendanceID, &att.StudentID, &att.Date, &att.Status, &att.Note,
		&att.TenantID, &att.NPSN)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("attendance not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("attendance_id", attendanceID.String()).Msg("failed to get attendance")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &att, nil
}

func (rm *recordManager) ListAttendanceByStudent(ctx context.Context, studentID uuid.UUID, from, to time.Time) ([]*models.Attendance, apperrors.Error) {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT attendance_id, student_id, date, status, COALESCE(note, ''), tenant_id, npsn
		FROM attendance
		WHERE tenant_id = $1 AND student_id = $2 AND date >= $3 AND date <= $4
		ORDER BY date;
	`
	rows, errDb := rm.conn().QueryContext(ctx, query, tenantID, studentID, from, to)
	if errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("student_id", studentID.String()).Msg("failed to list attendance")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		var att models.Attendance
		if errDb := rows.Scan(
			&att.AttendanceID, &att.StudentID, &att.Date, &att.Status, &att.Note,
			&att.TenantID, &att.NPSN); errDb != nil {
			return nil, dberror.ErrDatabase.Err(errDb)
		}
		records = append(records, &att)
	}
	if errDb := rows.Err(); errDb != nil {
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return records, nil
}
