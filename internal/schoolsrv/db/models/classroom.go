package models

import (
	"github.com/google/uuid"

	"github.com/siakadlabs/siakad-internal/pkg/types"
)

type ClassRoom struct {
	ClassID           uuid.UUID      `db:"class_id"`
	Name              string         `db:"name"`
	Level             int            `db:"level"`
	HomeroomTeacherID uuid.UUID      `db:"homeroom_teacher_id"`
	AcademicYear      string         `db:"academic_year"`
	TenantID          types.TenantId `db:"tenant_id"`
	NPSN              string         `db:"npsn"`
}

func (c *ClassRoom) ScopeTenantID() types.TenantId { return c.TenantID }
func (c *ClassRoom) EntityKind() string            { return types.ClassRoomKind }
func (c *ClassRoom) EntityID() string              { return c.ClassID.String() }
