package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/siakadlabs/siakad-internal/pkg/types"
)

// Letter is an issued official document. Number is assigned from the
// per-category counter at creation time; Reference is a short random
// code printed on the document.
type Letter struct {
	LetterID   uuid.UUID      `db:"letter_id"`
	Category   string         `db:"category"`
	Number     int            `db:"number"`
	Reference  string         `db:"reference"`
	Subject    string         `db:"subject"`
	Body       string         `db:"body"`
	IssuedDate time.Time      `db:"issued_date"`
	TenantID   types.TenantId `db:"tenant_id"`
	NPSN       string         `db:"npsn"`
}

func (l *Letter) ScopeTenantID() types.TenantId { return l.TenantID }
func (l *Letter) EntityKind() string            { return types.LetterKind }
func (l *Letter) EntityID() string              { return l.LetterID.String() }

// LetterCounter tracks the last issued number per letter category and
// tenant. Incremented atomically in SQL, never read-then-written.
type LetterCounter struct {
	Category   string         `db:"category"`
	LastNumber int            `db:"last_number"`
	TenantID   types.TenantId `db:"tenant_id"`
}
