package schoolmanager

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"

	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/schoolcommon"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

var dbInitOnce sync.Once

func newDb(t *testing.T) context.Context {
	dbInitOnce.Do(func() {
		if err := db.Init(context.Background()); err != nil {
			t.Fatalf("unable to initialize database: %v", err)
		}
	})
	ctx := log.Logger.WithContext(context.Background())
	ctx = db.ConnCtx(ctx)
	return ctx
}

// provisionTestSchool registers a fresh school and returns a context
// bound to its tenant with an admin user.
func provisionTestSchool(t *testing.T, ctx context.Context) context.Context {
	npsn := randomNPSN(t)
	school, err := ProvisionSchool(ctx, []byte(fmt.Sprintf(
		`{"npsn": %q, "name": "Test School %s"}`, npsn, npsn)))
	require.NoError(t, err)

	tctx := schoolcommon.WithTenantID(ctx, school.TenantID)
	return schoolcommon.WithUserContext(tctx, &schoolcommon.UserContext{
		UserID: "UTEST01",
		Role:   types.RoleAdmin,
	})
}

func randomNPSN(t *testing.T) string {
	n, err := rand.Int(rand.Reader, big.NewInt(100000000))
	require.NoError(t, err)
	return fmt.Sprintf("%08d", n.Int64())
}
