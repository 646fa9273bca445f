package models

import (
	"github.com/google/uuid"

	"github.com/siakadlabs/siakad-internal/pkg/types"
)

// Schedule is one teaching slot: a subject taught to a class by a
// teacher on a weekday/period pair.
type Schedule struct {
	ScheduleID uuid.UUID      `db:"schedule_id"`
	ClassID    uuid.UUID      `db:"class_id"`
	SubjectID  uuid.UUID      `db:"subject_id"`
	TeacherID  uuid.UUID      `db:"teacher_id"`
	Weekday    int            `db:"weekday"`
	Period     int            `db:"period"`
	TenantID   types.TenantId `db:"tenant_id"`
	NPSN       string         `db:"npsn"`
}

func (s *Schedule) ScopeTenantID() types.TenantId { return s.TenantID }
func (s *Schedule) EntityKind() string            { return types.ScheduleKind }
func (s *Schedule) EntityID() string              { return s.ScheduleID.String() }
