// Package postgresql implements the school database against PostgreSQL.
// All record queries are filtered by the tenant carried in the request
// context before any identifier predicate is applied.
package postgresql

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/dberror"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/dbmanager"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/schoolcommon"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

type metadataManager struct {
	c dbmanager.ScopedConn
}

type recordManager struct {
	c dbmanager.ScopedConn
	m *metadataManager
}

type connectionManager struct {
	c dbmanager.ScopedConn
}

func newMetadataManager(c dbmanager.ScopedConn) *metadataManager {
	return &metadataManager{c: c}
}

func newRecordManager(c dbmanager.ScopedConn) *recordManager {
	return &recordManager{c: c}
}

func newConnectionManager(c dbmanager.ScopedConn) *connectionManager {
	return &connectionManager{c: c}
}

func (mm *metadataManager) conn() *sql.Conn { return mm.c.Conn() }
func (rm *recordManager) conn() *sql.Conn   { return rm.c.Conn() }

func NewSiakadDb(c dbmanager.ScopedConn) (*metadataManager, *recordManager, *connectionManager) {
	mm := newMetadataManager(c)
	rm := newRecordManager(c)
	cm := newConnectionManager(c)
	rm.m = mm
	return mm, rm, cm
}

func (cm *connectionManager) AddScopes(ctx context.Context, scopes map[string]string) {
	cm.c.AddScopes(ctx, scopes)
}

func (cm *connectionManager) DropScopes(ctx context.Context, scopes []string) error {
	return cm.c.DropScopes(ctx, scopes)
}

func (cm *connectionManager) AddScope(ctx context.Context, scope, value string) {
	cm.c.AddScope(ctx, scope, value)
}

func (cm *connectionManager) DropScope(ctx context.Context, scope string) error {
	return cm.c.DropScope(ctx, scope)
}

func (cm *connectionManager) DropAllScopes(ctx context.Context) error {
	return cm.c.DropAllScopes(ctx)
}

func (cm *connectionManager) Close(ctx context.Context) {
	cm.c.Close(ctx)
}

// getTenantFromContext validates that a tenant is present in the
// context before a scoped query runs. A missing tenant is a caller bug
// and fails the query outright.
func getTenantFromContext(ctx context.Context) (types.TenantId, apperrors.Error) {
	tenantID := schoolcommon.GetTenantID(ctx)
	if tenantID == "" {
		err := dberror.ErrMissingTenantID.Err(dberror.ErrInvalidInput)
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve tenant ID from context")
		return "", err
	}
	return tenantID, nil
}
