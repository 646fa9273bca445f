package models

import (
	"github.com/google/uuid"

	"github.com/siakadlabs/siakad-internal/pkg/types"
)

// Grade records an exam score. AdjustedScore holds the post-moderation
// value when a grade adjustment was applied; zero value means no
// adjustment.
type Grade struct {
	GradeID       uuid.UUID      `db:"grade_id"`
	StudentID     uuid.UUID      `db:"student_id"`
	SubjectID     uuid.UUID      `db:"subject_id"`
	ExamKind      string         `db:"exam_kind"`
	Score         float64        `db:"score"`
	AdjustedScore float64        `db:"adjusted_score"`
	TenantID      types.TenantId `db:"tenant_id"`
	NPSN          string         `db:"npsn"`
}

func (g *Grade) ScopeTenantID() types.TenantId { return g.TenantID }
func (g *Grade) EntityKind() string            { return types.GradeKind }
func (g *Grade) EntityID() string              { return g.GradeID.String() }
