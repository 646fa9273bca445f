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

// CreateSchool inserts a new tenant row. The NPSN registration code is
// unique across the deployment.
func (mm *metadataManager) CreateSchool(ctx context.Context, school *models.School) apperrors.Error {
	query := `
		INSERT INTO schools (tenant_id, npsn, name, address, phone, email)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tenant_id) DO NOTHING
		RETURNING tenant_id;
	`
	row := mm.conn().QueryRowContext(ctx, query,
		school.TenantID, school.NPSN, school.Name, school.Address, school.Phone, school.Email)

	var insertedID types.TenantId
	err := row.Scan(&insertedID)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Ctx(ctx).Info().Str("tenant_id", string(school.TenantID)).Msg("school already exists")
			return dberror.ErrAlreadyExists.Msg("school already exists")
		}
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			log.Ctx(ctx).Info().Str("npsn", school.NPSN).Msg("npsn already registered")
			return dberror.ErrAlreadyExists.Msg("npsn already registered")
		}
		log.Ctx(ctx).Error().Err(err).Str("tenant_id", string(school.TenantID)).Msg("failed to insert school")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (mm *metadataManager) GetSchool(ctx context.Context, tenantID types.TenantId) (*models.School, apperrors.Error) {
	query := `
		SELECT tenant_id, npsn, name, address, phone, email, created_at
		FROM schools
		WHERE tenant_id = $1;
	`
	var school models.School
	err := mm.conn().QueryRowContext(ctx, query, tenantID).Scan(
		&school.TenantID, &school.NPSN, &school.Name, &school.Address,
		&school.Phone, &school.Email, &school.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("school not found")
		}
		log.Ctx(ctx).Error().Err(err).Str("tenant_id", string(tenantID)).Msg("failed to get school")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return &school, nil
}

func (mm *metadataManager) GetSchoolByNPSN(ctx context.Context, npsn string) (*models.School, apperrors.Error) {
	query := `
		SELECT tenant_id, npsn, name, address, phone, email, created_at
		FROM schools
		WHERE npsn = $1;
	`
	var school models.School
	err := mm.conn().QueryRowContext(ctx, query, npsn).Scan(
		&school.TenantID, &school.NPSN, &school.Name, &school.Address,
		&school.Phone, &school.Email, &school.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("school not found")
		}
		log.Ctx(ctx).Error().Err(err).Str("npsn", npsn).Msg("failed to get school by npsn")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return &school, nil
}

// UpdateSchool updates the settings fields of a tenant row. The tenant
// id and npsn are immutable after provisioning.
func (mm *metadataManager) UpdateSchool(ctx context.Context, school *models.School) apperrors.Error {
	query := `
		UPDATE schools
		SET name = $2, address = $3, phone = $4, email = $5
		WHERE tenant_id = $1;
	`
	result, err := mm.conn().ExecContext(ctx, query,
		school.TenantID, school.Name, school.Address, school.Phone, school.Email)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("tenant_id", string(school.TenantID)).Msg("failed to update school")
		return dberror.ErrDatabase.Err(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return dberror.ErrDatabase.Err(err)
	}
	if rows == 0 {
		return dberror.ErrNotFound.Msg("school not found")
	}
	return nil
}

// DeleteSchool removes a tenant row. Foreign keys on every scoped table
// are RESTRICT: deletion fails while dependent records exist.
func (mm *metadataManager) DeleteSchool(ctx context.Context, tenantID types.TenantId) apperrors.Error {
	query := `DELETE FROM schools WHERE tenant_id = $1;`
	result, err := mm.conn().ExecContext(ctx, query, tenantID)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23503" {
			log.Ctx(ctx).Warn().Str("tenant_id", string(tenantID)).Msg("school has dependent records")
			return dberror.ErrHasDependents.Msg("school has dependent records")
		}
		log.Ctx(ctx).Error().Err(err).Str("tenant_id", string(tenantID)).Msg("failed to delete school")
		return dberror.ErrDatabase.Err(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return dberror.ErrDatabase.Err(err)
	}
	if rows == 0 {
		return dberror.ErrNotFound.Msg("school not found")
	}
	return nil
}
