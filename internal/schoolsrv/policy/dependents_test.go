package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/dberror"
)

func countOf(n int) func(context.Context) (int, apperrors.Error) {
	return func(context.Context) (int, apperrors.Error) { return n, nil }
}

func TestCheckDependentsReturnsAllIssues(t *testing.T) {
	guards := []DependentGuard{
		{Relation: "students", Message: "class still has %d enrolled students", Count: countOf(3)},
		{Relation: "schedules", Message: "class is referenced by %d schedule entries", Count: countOf(2)},
		{Relation: "homerooms", Message: "teacher is homeroom for %d classes", Count: countOf(0)},
	}

	issues, err := CheckDependents(newTestCtx("TABC123"), guards)
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "students", issues[0].Relation)
	assert.Equal(t, 3, issues[0].Count)
	assert.Equal(t, "class still has 3 enrolled students", issues[0].Message)
	assert.Equal(t, "schedules", issues[1].Relation)
	assert.Equal(t, "class is referenced by 2 schedule entries", issues[1].Message)
}

func TestCheckDependentsNoDependents(t *testing.T) {
	guards := []DependentGuard{
		{Relation: "students", Message: "class still has %d enrolled students", Count: countOf(0)},
	}
	issues, err := CheckDependents(newTestCtx("TABC123"), guards)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestCheckDependentsCountFailureAborts(t *testing.T) {
	guards := []DependentGuard{
		{Relation: "students", Message: "class still has %d enrolled students", Count: countOf(3)},
		{
			Relation: "schedules",
			Message:  "class is referenced by %d schedule entries",
			Count: func(context.Context) (int, apperrors.Error) {
				return 0, dberror.ErrDatabase.Msg("connection reset")
			},
		},
	}
	issues, err := CheckDependents(newTestCtx("TABC123"), guards)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransactionFailure)
	assert.Nil(t, issues)
}

func TestDependencyError(t *testing.T) {
	err := DependencyError([]Issue{
		{Relation: "students", Count: 3, Message: "class still has 3 enrolled students"},
		{Relation: "schedules", Count: 2, Message: "class is referenced by 2 schedule entries"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDependencyConflict)
	assert.Contains(t, err.Error(), "class still has 3 enrolled students")
	assert.Contains(t, err.Error(), "class is referenced by 2 schedule entries")
}
