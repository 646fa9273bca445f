package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/siakadlabs/siakad-internal/pkg/types"
)

type Attendance struct {
	AttendanceID uuid.UUID              `db:"attendance_id"`
	StudentID    uuid.UUID              `db:"student_id"`
	Date         time.Time              `db:"date"`
	Status       types.AttendanceStatus `db:"status"`
	Note         string                 `db:"note"`
	TenantID     types.TenantId         `db:"tenant_id"`
	NPSN         string                 `db:"npsn"`
}

func (a *Attendance) ScopeTenantID() types.TenantId { return a.TenantID }
func (a *Attendance) EntityKind() string            { return types.AttendanceKind }
func (a *Attendance) EntityID() string              { return a.AttendanceID.String() }
