package models

import (
	"time"

	"github.com/jackc/pgtype"

	"github.com/siakadlabs/siakad-internal/pkg/types"
)

// ExportJob is the handoff record for bulk export/import work. The core
// only enqueues the row and polls its status; processing happens in an
// external worker.
type ExportJob struct {
	JobKey      string                `db:"job_key"`
	Kind        string                `db:"kind"`
	Params      pgtype.JSONB          `db:"params"`
	Status      types.ExportJobStatus `db:"status"`
	ResultURL   string                `db:"result_url"`
	FailReason  string                `db:"fail_reason"`
	RequestedBy types.UserId          `db:"requested_by"`
	TenantID    types.TenantId        `db:"tenant_id"`
	CreatedAt   time.Time             `db:"created_at"`
	UpdatedAt   time.Time             `db:"updated_at"`
}

func (j *ExportJob) ScopeTenantID() types.TenantId { return j.TenantID }
func (j *ExportJob) EntityKind() string            { return types.ExportJobKind }
func (j *ExportJob) EntityID() string              { return j.JobKey }
