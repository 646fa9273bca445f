package models

import (
	"time"

	"github.com/siakadlabs/siakad-internal/pkg/types"
)

/*
   Column     |          Type           | Collation | Nullable | Default
--------------+-------------------------+-----------+----------+---------
 tenant_id    | character varying(10)   |           | not null |
 npsn         | character varying(16)   |           | not null |
 name         | character varying(128)  |           | not null |
 address      | character varying(1024) |           |          |
 phone        | character varying(32)   |           |          |
 email        | character varying(128)  |           |          |
 created_at   | timestamp with tz       |           | not null | now()
*/

// School is the tenant row. Every scoped entity carries its tenant_id
// and a denormalized copy of its npsn for reporting.
type School struct {
	TenantID  types.TenantId `db:"tenant_id"`
	NPSN      string         `db:"npsn"`
	Name      string         `db:"name"`
	Address   string         `db:"address"`
	Phone     string         `db:"phone"`
	Email     string         `db:"email"`
	CreatedAt time.Time      `db:"created_at"`
}
