package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/siakadlabs/siakad-internal/pkg/types"
)

type Teacher struct {
	TeacherID uuid.UUID      `db:"teacher_id"`
	NIP       string         `db:"nip"`
	Name      string         `db:"name"`
	Phone     string         `db:"phone"`
	TenantID  types.TenantId `db:"tenant_id"`
	NPSN      string         `db:"npsn"`
	CreatedAt time.Time      `db:"created_at"`
}

func (t *Teacher) ScopeTenantID() types.TenantId { return t.TenantID }
func (t *Teacher) EntityKind() string            { return types.TeacherKind }
func (t *Teacher) EntityID() string              { return t.TeacherID.String() }
