package models

import (
	"github.com/google/uuid"

	"github.com/siakadlabs/siakad-internal/pkg/types"
)

type Subject struct {
	SubjectID uuid.UUID      `db:"subject_id"`
	Name      string         `db:"name"`
	Code      string         `db:"code"`
	Level     int            `db:"level"`
	TenantID  types.TenantId `db:"tenant_id"`
	NPSN      string         `db:"npsn"`
}

func (s *Subject) ScopeTenantID() types.TenantId { return s.TenantID }
func (s *Subject) EntityKind() string            { return types.SubjectKind }
func (s *Subject) EntityID() string              { return s.SubjectID.String() }
