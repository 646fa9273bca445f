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

func (rm *recordManager) CreateSubject(ctx context.Context, subject *models.Subject) apperrors.Error {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return err
	}
	subjectID := subject.SubjectID
	if subjectID == uuid.Nil {
		subjectID = uuid.New()
	}

	query := `
		INSERT INTO subjects (subject_id, name, code, level, tenant_id, npsn)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (code, tenant_id) DO NOTHING
		RETURNING subject_id;
	`
	row := rm.conn().QueryRowContext(ctx, query,
		subjectID, subject.Name, subject.Code, subject.Level, tenantID, subject.NPSN)

	var insertedID uuid.UUID
	errDb := row.Scan(&insertedID)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			log.Ctx(ctx).Info().Str("code", subject.Code).Msg("subject already exists")
			return dberror.ErrAlreadyExists.Msg("subject already exists")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("code", subject.Code).Msg("failed to insert subject")
		return dberror.ErrDatabase.Err(errDb)
	}
	subject.SubjectID = insertedID
	return nil
}

func (rm *recordManager) GetSubject(ctx context.Context, subjectID uuid.UUID) (*models.Subject, apperrors.Error) {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT subject_id, name, code, level, tenant_id, npsn
		FROM subjects
		WHERE tenant_id = $1 AND subject_id = $2;
	`
	var subject models.Subject
	errDb := rm.conn().QueryRowContext(ctx, query, tenantID, subjectID).Scan(
		&subject.SubjectID, &subject.Name, &subject.Code, &subject.Level,
		&subject.TenantID, &subject.NPSN)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("subject not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("subject_id", subjectID.String()).Msg("failed to get subject")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &subject, nil
}

func (rm *recordManager) UpdateSubject(ctx context.Context, subject *models.Subject) apperrors.Error {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE subjects
		SET name = $3, code = $4, level = $5
		WHERE tenant_id = $1 AND subject_id = $2;
	`
	result, errDb := rm.conn().ExecContext(ctx, query,
		tenantID, subject.SubjectID, subject.Name, subject.Code, subject.Level)
	if errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("subject_id", subject.SubjectID.String()).Msg("failed to update subject")
		return dberror.ErrDatabase.Err(errDb)
	}
	rows, errDb := result.RowsAffected()
	if errDb != nil {
		return dberror.ErrDatabase.Err(errDb)
	}
	if rows == 0 {
		return dberror.ErrNotFound.Msg("subject not found")
	}
	return nil
}

func (rm *recordManager) DeleteSubject(ctx context.Context, subjectID uuid.UUID) apperrors.Error {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return err
	}

	query := `DELETE FROM subjects WHERE tenant_id = $1 AND subject_id = $2;`
	result, errDb := rm.conn().ExecContext(ctx, query, tenantID, subjectID)
	if errDb != nil {
		if pgErr, ok := errDb.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrHasDependents.Msg("subject has dependent records")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("subject_id", subjectID.String()).Msg("failed to delete subject")
		return dberror.ErrDatabase.Err(errDb)
	}
	rows, errDb := result.RowsAffected()
	if errDb != nil {
		return dberror.ErrDatabase.Err(errDb)
	}
	if rows == 0 {
		return dberror.ErrNotFound.Msg("subject not found")
	}
	return nil
}
