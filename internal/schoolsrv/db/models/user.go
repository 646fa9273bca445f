package models

import (
	"time"

	"github.com/siakadlabs/siakad-internal/pkg/types"
)

// User is a staff account. Users belong to exactly one tenant; the
// cross-tenant assignment mechanism is handled outside this service.
type User struct {
	UserID       types.UserId   `db:"user_id"`
	TenantID     types.TenantId `db:"tenant_id"`
	Email        string         `db:"email"`
	Name         string         `db:"name"`
	Role         types.Role     `db:"role"`
	PasswordHash string         `db:"password_hash"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (u *User) ScopeTenantID() types.TenantId { return u.TenantID }
func (u *User) EntityKind() string            { return "User" }
func (u *User) EntityID() string              { return string(u.UserID) }
