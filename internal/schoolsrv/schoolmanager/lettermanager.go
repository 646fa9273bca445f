package schoolmanager

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/dberror"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/models"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/policy"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

var letterAllowedFields = []string{"category", "subject", "body", "issued_date"}

const (
	letterRefAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	letterRefLength   = 8
)

type letterSchema struct {
	Category   string `json:"category" validate:"required,oneof=SK ST SP SU"`
	Subject    string `json:"subject" validate:"required"`
	Body       string `json:"body" validate:"required"`
	IssuedDate string `json:"issued_date"`
	TenantID   string `json:"tenant_id"`
	NPSN       string `json:"npsn"`
}

type letterRep struct {
	LetterID   string `json:"letter_id"`
	Category   string `json:"category"`
	Number     int    `json:"number"`
	Reference  string `json:"reference"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	IssuedDate string `json:"issued_date"`
	NPSN       string `json:"npsn"`
}

type letterManager struct {
	req      RequestContext
	location string
}

var _ KindHandler = (*letterManager)(nil)

func NewLetterKindHandler(_ context.Context, name RequestContext) (KindHandler, apperrors.Error) {
	return &letterManager{req: name}, nil
}

func letterByID(ctx context.Context, id string) (*models.Letter, apperrors.Error) {
	lid, err := uuid.Parse(id)
	if err != nil {
		return nil, dberror.ErrInvalidInput.Msg("invalid letter id")
	}
	return db.DB(ctx).GetLetter(ctx, lid)
}

func (m *letterManager) Create(ctx context.Context, rsrcJSON []byte) (string, apperrors.Error) {
	school, err := policy.ResolveTenant(ctx)
	if err != nil {
		return "", err
	}

	var data map[string]any
	if uerr := json.Unmarshal(policy.FilterJSON(rsrcJSON, letterAllowedFields), &data); uerr != nil {
		return "", ErrInvalidRequest.Err(uerr)
	}
	data = policy.PrepareForCreate(ctx, school, data)

	schema := &letterSchema{}
	buf, _ := json.Marshal(data)
	if uerr := json.Unmarshal(buf, schema); uerr != nil {
		return "", ErrInvalidRequest.Err(uerr)
	}
	if verr := validateSchema(schema); verr != nil {
		return "", verr
	}

	issued := time.Now()
	if schema.IssuedDate != "" {
		t, derr := time.Parse(attendanceDateLayout, schema.IssuedDate)
		if derr != nil {
			return "", policy.ErrValidation.Msg("invalid value for: issued_date")
		}
		issued = t
	}

	ref, rerr := gonanoid.Generate(letterRefAlphabet, letterRefLength)
	if rerr != nil {
		log.Ctx(ctx).Error().Err(rerr).Msg("unable to generate letter reference")
		return "", ErrSchoolManager.Err(rerr)
	}

	letter := &models.Letter{
		Category:   schema.Category,
		Reference:  ref,
		Subject:    schema.Subject,
		Body:       schema.Body,
		IssuedDate: issued,
		TenantID:   types.TenantId(schema.TenantID),
		NPSN:       schema.NPSN,
	}
	// The letter number is assigned inside CreateLetter from the
	// per-category counter, atomically with the insert.
	if dbErr := db.DB(ctx).CreateLetter(ctx, letter); dbErr != nil {
		return "", mapRecordDBError(dbErr, "letter")
	}
	m.location = "/" + types.ResourceNameLetters + "/" + letter.LetterID.String()
	return m.location, nil
}

func (m *letterManager) Get(ctx context.Context) ([]byte, apperrors.Error) {
	letter, err := policy.Resolve(ctx, policy.ByID[*models.Letter](m.req.ObjectID.String()), letterByID)
	if err != nil {
		return nil, err
	}
	out, merr := json.Marshal(letterToRep(letter))
	if merr != nil {
		return nil, ErrSchoolManager.Err(merr)
	}
	return out, nil
}

// Issued letters are immutable.
func (m *letterManager) Update(ctx context.Context, _ []byte) apperrors.Error {
	return ErrInvalidRequest.Msg("issued letters cannot be updated")
}

func (m *letterManager) Delete(ctx context.Context) apperrors.Error {
	return ErrInvalidRequest.Msg("issued letters cannot be deleted")
}

func (m *letterManager) List(ctx context.Context) ([]byte, apperrors.Error) {
	category := m.req.QueryParams.Get("category")
	if category == "" {
		return nil, ErrInvalidRequest.Msg("category query parameter is required")
	}
	letters, err := db.DB(ctx).ListLettersByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	reps := make([]letterRep, 0, len(letters))
	for _, l := range letters {
		reps = append(reps, letterToRep(l))
	}
	out, merr := json.Marshal(reps)
	if merr != nil {
		return nil, ErrSchoolManager.Err(merr)
	}
	return out, nil
}

func (m *letterManager) Location() string {
	return m.location
}

func letterToRep(l *models.Letter) letterRep {
	return letterRep{
		LetterID:   l.LetterID.String(),
		Category:   l.Category,
		Number:     l.Number,
		Reference:  l.Reference,
		Subject:    l.Subject,
		Body:       l.Body,
		IssuedDate: l.IssuedDate.Format(attendanceDateLayout),
		NPSN:       l.NPSN,
	}
}
