package policy

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
)

// DependentGuard declares one relation that blocks deletion of a record.
// Guards are declared statically per entity kind; the count function is
// a tenant-scoped query bound to the record being deleted.
type DependentGuard struct {
	// Relation names the dependent entity, e.g. "students".
	Relation string
	// Message is a fmt template with one %d verb for the count.
	Message string
	// Count returns how many dependents exist.
	Count func(ctx context.Context) (int, apperrors.Error)
}

// Issue is one reason a deletion is blocked.
type Issue struct {
	Relation string `json:"relation"`
	Count    int    `json:"count"`
	Message  string `json:"message"`
}

// CheckDependents evaluates every guard and returns all blocking issues
// at once, so a client can fix everything in one pass instead of
// replaying the deletion per relation. A failing count query aborts the
// check; deletion must not proceed on partial information.
func CheckDependents(ctx context.Context, guards []DependentGuard) ([]Issue, apperrors.Error) {
	var issues []Issue
	for _, g := range guards {
		n, err := g.Count(ctx)
		if err != nil {
			log.Ctx(ctx).Error().
				Str("relation", g.Relation).
				Err(err).
				Msg("dependent count failed")
			return nil, ErrTransactionFailure
		}
		if n > 0 {
			issues = append(issues, Issue{
				Relation: g.Relation,
				Count:    n,
				Message:  fmt.Sprintf(g.Message, n),
			})
		}
	}
	return issues, nil
}

// DependencyError folds a non-empty issue list into a single
// DependencyConflict error whose message lists every blocking relation.
func DependencyError(issues []Issue) apperrors.Error {
	msgs := make([]string, 0, len(issues))
	for _, is := range issues {
		msgs = append(msgs, is.Message)
	}
	return ErrDependencyConflict.Msg(strings.Join(msgs, "; "))
}
