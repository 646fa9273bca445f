package auth

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/schoolcommon"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

// Action is a named capability checked against the acting role. This is
// coarse role-based authorization; tenant isolation is enforced
// separately by the policy guard regardless of role.
type Action string

const (
	ActionRecordsRead     Action = "records:read"
	ActionRecordsWrite    Action = "records:write"
	ActionRecordsDelete   Action = "records:delete"
	ActionGradesWrite     Action = "grades:write"
	ActionAttendanceWrite Action = "attendance:write"
	ActionLettersIssue    Action = "letters:issue"
	ActionExportsRun      Action = "exports:run"
	ActionSchoolProvision Action = "schools:provision"
)

var roleCapabilities = map[types.Role]map[Action]bool{
	types.RoleSuperAdmin: {
		ActionRecordsRead:     true,
		ActionRecordsWrite:    true,
		ActionRecordsDelete:   true,
		ActionGradesWrite:     true,
		ActionAttendanceWrite: true,
		ActionLettersIssue:    true,
		ActionExportsRun:      true,
		ActionSchoolProvision: true,
	},
	types.RoleAdmin: {
		ActionRecordsRead:     true,
		ActionRecordsWrite:    true,
		ActionRecordsDelete:   true,
		ActionGradesWrite:     true,
		ActionAttendanceWrite: true,
		ActionLettersIssue:    true,
		ActionExportsRun:      true,
	},
	types.RoleTeacher: {
		ActionRecordsRead:     true,
		ActionGradesWrite:     true,
		ActionAttendanceWrite: true,
	},
	types.RoleStaff: {
		ActionRecordsRead:  true,
		ActionLettersIssue: true,
		ActionExportsRun:   true,
	},
}

// HasCapability reports whether the role may perform the action.
func HasCapability(role types.Role, action Action) bool {
	return roleCapabilities[role][action]
}

// Authorize checks the acting user's role against the action and
// rejects with a Forbidden-class error on mismatch.
func Authorize(ctx context.Context, action Action) apperrors.Error {
	user := schoolcommon.GetUserContext(ctx)
	if user == nil {
		return ErrUnauthorized
	}
	if !HasCapability(user.Role, action) {
		log.Ctx(ctx).Warn().
			Str("user_id", string(user.UserID)).
			Str("role", string(user.Role)).
			Str("action", string(action)).
			Msg("action denied for role")
		return ErrInsufficientRole
	}
	return nil
}
