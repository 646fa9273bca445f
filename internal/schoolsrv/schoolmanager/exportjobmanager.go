package schoolmanager

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgtype"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/models"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/policy"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/schoolcommon"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

var exportJobAllowedFields = []string{"kind", "params"}

type exportJobSchema struct {
	Kind   string         `json:"kind" validate:"required,oneof=students grades attendance letters"`
	Params map[string]any `json:"params"`
}

type exportJobRep struct {
	JobKey      string `json:"job_key"`
	Kind        string `json:"kind"`
	Status      string `json:"status"`
	ResultURL   string `json:"result_url,omitempty"`
	FailReason  string `json:"fail_reason,omitempty"`
	RequestedBy string `json:"requested_by"`
	CreatedAt   string `json:"created_at"`
}

type exportJobManager struct {
	req      RequestContext
	jobKey   string
	location string
}

var _ KindHandler = (*exportJobManager)(nil)

func NewExportJobKindHandler(_ context.Context, name RequestContext) (KindHandler, apperrors.Error) {
	return &exportJobManager{req: name, jobKey: name.ObjectName}, nil
}

// Create enqueues an export job row. Processing happens out of band;
// clients poll the job by its key.
func (m *exportJobManager) Create(ctx context.Context, rsrcJSON []byte) (string, apperrors.Error) {
	if _, err := policy.ResolveTenant(ctx); err != nil {
		return "", err
	}

	schema := &exportJobSchema{}
	if uerr := json.Unmarshal(policy.FilterJSON(rsrcJSON, exportJobAllowedFields), schema); uerr != nil {
		return "", ErrInvalidRequest.Err(uerr)
	}
	if verr := validateSchema(schema); verr != nil {
		return "", verr
	}

	key, kerr := gonanoid.New()
	if kerr != nil {
		log.Ctx(ctx).Error().Err(kerr).Msg("unable to generate job key")
		return "", ErrSchoolManager.Err(kerr)
	}

	params := pgtype.JSONB{Status: pgtype.Null}
	if schema.Params != nil {
		buf, merr := json.Marshal(schema.Params)
		if merr != nil {
			return "", ErrInvalidRequest.Err(merr)
		}
		if perr := params.Set(buf); perr != nil {
			return "", ErrInvalidRequest.Err(perr)
		}
	}

	job := &models.ExportJob{
		JobKey:      key,
		Kind:        schema.Kind,
		Params:      params,
		Status:      types.ExportJobPending,
		RequestedBy: schoolcommon.GetUserID(ctx),
	}
	if dbErr := db.DB(ctx).CreateExportJob(ctx, job); dbErr != nil {
		return "", mapRecordDBError(dbErr, "export job")
	}
	m.jobKey = key
	m.location = "/" + types.ResourceNameExportJobs + "/" + key
	return m.location, nil
}

func (m *exportJobManager) Get(ctx context.Context) ([]byte, apperrors.Error) {
	if m.jobKey == "" {
		return nil, ErrInvalidRequest.Msg("job key is required")
	}
	job, err := db.DB(ctx).GetExportJob(ctx, m.jobKey)
	if err != nil {
		return nil, mapRecordDBError(err, "export job")
	}
	if aerr := policy.EnsureAccess(ctx, job); aerr != nil {
		return nil, aerr
	}
	out, merr := json.Marshal(exportJobRep{
		JobKey:      job.JobKey,
		Kind:        job.Kind,
		Status:      string(job.Status),
		ResultURL:   job.ResultURL,
		FailReason:  job.FailReason,
		RequestedBy: string(job.RequestedBy),
		CreatedAt:   job.CreatedAt.Format(time.RFC3339),
	})
	if merr != nil {
		return nil, ErrSchoolManager.Err(merr)
	}
	return out, nil
}

func (m *exportJobManager) Update(ctx context.Context, _ []byte) apperrors.Error {
	return ErrInvalidRequest.Msg("export jobs cannot be updated")
}

func (m *exportJobManager) Delete(ctx context.Context) apperrors.Error {
	return ErrInvalidRequest.Msg("export jobs cannot be deleted")
}

func (m *exportJobManager) List(ctx context.Context) ([]byte, apperrors.Error) {
	return nil, ErrInvalidRequest.Msg("listing export jobs is not supported")
}

func (m *exportJobManager) Location() string {
	return m.location
}
