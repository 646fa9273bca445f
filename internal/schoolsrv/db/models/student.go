package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/siakadlabs/siakad-internal/pkg/types"
)

/*
   Column      |          Type          | Collation | Nullable |      Default
---------------+------------------------+-----------+----------+--------------------
 student_id    | uuid                   |           | not null | uuid_generate_v4()
 nis           | character varying(32)  |           | not null |
 nisn          | character varying(32)  |           |          |
 name          | character varying(128) |           | not null |
 class_id      | uuid                   |           |          |
 guardian_name | character varying(128) |           |          |
 guardian_phone| character varying(32)  |           |          |
 status        | character varying(20)  |           | not null | 'active'
 tenant_id     | character varying(10)  |           | not null |
 npsn          | character varying(16)  |           | not null |
*/

type Student struct {
	StudentID     uuid.UUID      `db:"student_id"`
	NIS           string         `db:"nis"`
	NISN          string         `db:"nisn"`
	Name          string         `db:"name"`
	ClassID       uuid.UUID      `db:"class_id"`
	GuardianName  string         `db:"guardian_name"`
	GuardianPhone string         `db:"guardian_phone"`
	Status        string         `db:"status"`
	TenantID      types.TenantId `db:"tenant_id"`
	NPSN          string         `db:"npsn"`
	CreatedAt     time.Time      `db:"created_at"`
}

func (s *Student) ScopeTenantID() types.TenantId { return s.TenantID }
func (s *Student) EntityKind() string            { return types.StudentKind }
func (s *Student) EntityID() string              { return s.StudentID.String() }
