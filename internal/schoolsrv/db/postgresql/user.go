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

func (mm *metadataManager) CreateUser(ctx context.Context, user *models.User) apperrors.Error {
	query := `
		INSERT INTO users (user_id, tenant_id, email, name, role, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING user_id;
	`
	row := mm.conn().QueryRowContext(ctx, query,
		user.UserID, user.TenantID, user.Email, user.Name, user.Role, user.PasswordHash)

	var insertedID types.UserId
	err := row.Scan(&insertedID)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrAlreadyExists.Msg("user already exists")
		}
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" {
				return dberror.ErrAlreadyExists.Msg("email already registered")
			}
			if pgErr.Code == "23503" {
				return dberror.ErrInvalidRef.Msg("tenant not found")
			}
		}
		log.Ctx(ctx).Error().Err(err).Str("user_id", string(user.UserID)).Msg("failed to insert user")
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}

func (mm *metadataManager) GetUser(ctx context.Context, userID types.UserId) (*models.User, apperrors.Error) {
	query := `
		SELECT user_id, tenant_id, email, name, role, password_hash, created_at
		FROM users
		WHERE user_id = $1;
	`
	var user models.User
	err := mm.conn().QueryRowContext(ctx, query, userID).Scan(
		&user.UserID, &user.TenantID, &user.Email, &user.Name,
		&user.Role, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("user not found")
		}
		log.Ctx(ctx).Error().Err(err).Str("user_id", string(userID)).Msg("failed to get user")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return &user, nil
}

func (mm *metadataManager) GetUserByEmail(ctx context.Context, email string) (*models.User, apperrors.Error) {
	query := `
		SELECT user_id, tenant_id, email, name, role, password_hash, created_at
		FROM users
		WHERE email = $1;
	`
	var user models.User
	err := mm.conn().QueryRowContext(ctx, query, email).Scan(
		&user.UserID, &user.TenantID, &user.Email, &user.Name,
		&user.Role, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("user not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to get user by email")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return &user, nil
}

func (mm *metadataManager) DeleteUser(ctx context.Context, userID types.UserId) apperrors.Error {
	query := `DELETE FROM users WHERE user_id = $1;`
	result, err := mm.conn().ExecContext(ctx, query, userID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user_id", string(userID)).Msg("failed to delete user")
		return dberror.ErrDatabase.Err(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return dberror.ErrDatabase.Err(err)
	}
	if rows == 0 {
		return dberror.ErrNotFound.Msg("user not found")
	}
	return nil
}
