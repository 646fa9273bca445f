package postgresql

import (
	"context"
	"database/sql"

	"github.com/jackc/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/dberror"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/models"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

// CreateExportJob enqueues a bulk export/import job row. The external
// worker claims rows by status; this core only writes and polls them.
func (rm *recordManager) CreateExportJob(ctx context.Context, job *models.ExportJob) apperrors.Error {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO export_jobs (job_key, kind, params, status, requested_by, tenant_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (job_key) DO NOTHING
		RETURNING job_key;
	`
	row := rm.conn().QueryRowContext(ctx, query,
		job.JobKey, job.Kind, job.Params, types.ExportJobPending, job.RequestedBy, tenantID)

	var insertedKey string
	errDb := row.Scan(&insertedKey)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return dberror.ErrAlreadyExists.Msg("job already enqueued")
		}
		if pgErr, ok := errDb.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			return dberror.ErrInvalidRef.Msg("tenant not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("job_key", job.JobKey).Msg("failed to enqueue export job")
		return dberror.ErrDatabase.Err(errDb)
	}
	job.Status = types.ExportJobPending
	return nil
}

func (rm *recordManager) GetExportJob(ctx context.Context, jobKey string) (*models.ExportJob, apperrors.Error) {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT job_key, kind, params, status, COALESCE(result_url, ''), COALESCE(fail_reason, ''),
		       requested_by, tenant_id, created_at, updated_at
		FROM export_jobs
		WHERE tenant_id = $1 AND job_key = $2;
	`
	var job models.ExportJob
	errDb := rm.conn().QueryRowContext(ctx, query, tenantID, jobKey).Scan(
		&job.JobKey, &job.Kind, &job.Params, &job.Status, &job.ResultURL, &job.FailReason,
		&job.RequestedBy, &job.TenantID, &job.CreatedAt, &job.UpdatedAt)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("export job not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("job_key", jobKey).Msg("failed to get export job")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &job, nil
}

func (rm *recordManager) UpdateExportJobStatus(ctx context.Context, jobKey string, status types.ExportJobStatus, resultURL, failReason string) apperrors.Error {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return err
	}

	query := `
		UPDATE export_jobs
		SET status = $3, result_url = $4, fail_reason = $5, updated_at = now()
		WHERE tenant_id = $1 AND job_key = $2;
	`
	result, errDb := rm.conn().ExecContext(ctx, query, tenantID, jobKey, status, resultURL, failReason)
	if errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("job_key", jobKey).Msg("failed to update export job")
		return dberror.ErrDatabase.Err(errDb)
	}
	rows, errDb := result.RowsAffected()
	if errDb != nil {
		return dberror.ErrDatabase.Err(errDb)
	}
	if rows == 0 {
		return dberror.ErrNotFound.Msg("export job not found")
	}
	return nil
}
