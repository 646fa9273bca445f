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

// CreateLetter inserts a letter and assigns its number from the
// per-category counter inside a single transaction. The counter is
// incremented atomically in SQL so concurrent requests never issue the
// same number.
func (rm *recordManager) CreateLetter(ctx context.Context, letter *models.Letter) (err apperrors.Error) {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return err
	}
	letterID := letter.LetterID
	if letterID == uuid.Nil {
		letterID = uuid.New()
	}

	tx, errDb := rm.conn().BeginTx(ctx, &sql.TxOptions{})
	if errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Msg("failed to start transaction")
		return dberror.ErrDatabase.Err(errDb)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && rollbackErr != sql.ErrTxDone {
				log.Ctx(ctx).Error().Err(rollbackErr).Msg("failed to rollback transaction")
			}
		}
	}()

	counterQuery := `
		INSERT INTO letter_counters (category, tenant_id, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (category, tenant_id)
		DO UPDATE SET last_number = letter_counters.last_number + 1
		RETURNING last_number;
	`
	var number int
	if errDb := tx.QueryRowContext(ctx, counterQuery, letter.Category, tenantID).Scan(&number); errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("category", letter.Category).Msg("failed to advance letter counter")
		err = dberror.ErrDatabase.Err(errDb)
		return err
	}

	insertQuery := `
		INSERT INTO letters (letter_id, category, number, reference, subject, body, issued_date, tenant_id, npsn)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING letter_id;
	`
	var insertedID uuid.UUID
	if errDb := tx.QueryRowContext(ctx, insertQuery,
		letterID, letter.Category, number, letter.Reference, letter.Subject,
		letter.Body, letter.IssuedDate, tenantID, letter.NPSN).Scan(&insertedID); errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("category", letter.Category).Msg("failed to insert letter")
		err = dberror.ErrDatabase.Err(errDb)
		return err
	}

	if errDb := tx.Commit(); errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Msg("failed to commit transaction")
		err = dberror.ErrDatabase.Err(errDb)
		return err
	}

	letter.LetterID = insertedID
	letter.Number = number
	return nil
}

func (rm *recordManager) GetLetter(ctx context.Context, letterID uuid.UUID) (*models.Letter, apperrors.Error) {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT letter_id, category, number, reference, subject, body, issued_date, tenant_id, npsn
		FROM letters
		WHERE tenant_id = $1 AND letter_id = $2;
	`
	var letter models.Letter
	errDb := rm.conn().QueryRowContext(ctx, query, tenantID, letterID).Scan(
		&letter.LetterID, &letter.Category, &letter.Number, &letter.Reference,
		&letter.Subject, &letter.Body, &letter.IssuedDate, &letter.TenantID, &letter.NPSN)
	if errDb != nil {
		if errDb == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.Msg("letter not found")
		}
		log.Ctx(ctx).Error().Err(errDb).Str("letter_id", letterID.String()).Msg("failed to get letter")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return &letter, nil
}

func (rm *recordManager) ListLettersByCategory(ctx context.Context, category string) ([]*models.Letter, apperrors.Error) {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT letter_id, category, number, reference, subject, body, issued_date, tenant_id, npsn
		FROM letters
		WHERE tenant_id = $1 AND category = $2
		ORDER BY number;
	`
	rows, errDb := rm.conn().QueryContext(ctx, query, tenantID, category)
	if errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("category", category).Msg("failed to list letters")
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	defer rows.Close()

	var letters []*models.Letter
	for rows.Next() {
		var letter models.Letter
		if errDb := rows.Scan(
			&letter.LetterID, &letter.Category, &letter.Number, &letter.Reference,
			&letter.Subject, &letter.Body, &letter.IssuedDate, &letter.TenantID, &letter.NPSN); errDb != nil {
			return nil, dberror.ErrDatabase.Err(errDb)
		}
		letters = append(letters, &letter)
	}
	if errDb := rows.Err(); errDb != nil {
		return nil, dberror.ErrDatabase.Err(errDb)
	}
	return letters, nil
}

// NextLetterNumber advances the counter outside of a letter insert.
// Used by callers that preview the next number; normal issuance goes
// through CreateLetter.
func (rm *recordManager) NextLetterNumber(ctx context.Context, category string) (int, apperrors.Error) {
	tenantID, err := getTenantFromContext(ctx)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO letter_counters (category, tenant_id, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (category, tenant_id)
		DO UPDATE SET last_number = letter_counters.last_number + 1
		RETURNING last_number;
	`
	var number int
	if errDb := rm.conn().QueryRowContext(ctx, query, category, tenantID).Scan(&number); errDb != nil {
		log.Ctx(ctx).Error().Err(errDb).Str("category", category).Msg("failed to advance letter counter")
		return 0, dberror.ErrDatabase.Err(errDb)
	}
	return number, nil
}
