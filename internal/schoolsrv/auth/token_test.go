package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/models"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

func testUser() *models.User {
	return &models.User{
		UserID:   "UTEST01",
		TenantID: "TABC123",
		Email:    "tu@example.com",
		Name:     "Tata Usaha",
		Role:     types.RoleAdmin,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	signed, expiry, err := CreateAccessToken(ctx, testUser())
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	assert.True(t, expiry.After(time.Now()))

	token, err := ParseToken(ctx, signed)
	require.NoError(t, err)
	assert.True(t, token.Validate())
	assert.Equal(t, types.TenantId("TABC123"), token.GetTenantID())
	assert.Equal(t, types.UserId("UTEST01"), token.GetUserID())
	assert.Equal(t, types.RoleAdmin, token.GetRole())
	assert.WithinDuration(t, expiry, token.GetExpiry(), time.Second)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken(context.Background(), "not.a.token")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenTampered(t *testing.T) {
	ctx := context.Background()
	signed, _, err := CreateAccessToken(ctx, testUser())
	require.NoError(t, err)

	tampered := signed[:len(signed)-2] + "xx"
	_, err = ParseToken(ctx, tampered)
	assert.Error(t, err)
}

func TestHasCapability(t *testing.T) {
	assert.True(t, HasCapability(types.RoleAdmin, ActionRecordsDelete))
	assert.True(t, HasCapability(types.RoleTeacher, ActionGradesWrite))
	assert.False(t, HasCapability(types.RoleTeacher, ActionRecordsDelete))
	assert.False(t, HasCapability(types.RoleStaff, ActionGradesWrite))
	assert.True(t, HasCapability(types.RoleSuperAdmin, ActionSchoolProvision))
	assert.False(t, HasCapability(types.RoleAdmin, ActionSchoolProvision))
}
