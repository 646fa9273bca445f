package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/auth/keymanager"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/config"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/db/models"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

const tokenIssuer = "siakadsrv"

var (
	keyManagerInstance *keymanager.KeyManager
	keyManagerOnce     sync.Once
)

func getKeyManager() *keymanager.KeyManager {
	keyManagerOnce.Do(func() {
		keyManagerInstance = keymanager.NewKeyManager()
	})
	return keyManagerInstance
}

// CreateAccessToken signs a token for a staff account. The token carries
// the tenant, user and role; everything the request context needs.
func CreateAccessToken(ctx context.Context, user *models.User) (string, time.Time, apperrors.Error) {
	key, err := getKeyManager().GetActiveKey()
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now()
	expiry := now.Add(time.Duration(config.Config().TokenValidity) * time.Second)
	claims := jwt.MapClaims{
		"iss":       tokenIssuer,
		"aud":       tokenIssuer,
		"sub":       string(user.UserID),
		"jti":       uuid.NewString(),
		"iat":       now.Unix(),
		"exp":       expiry.Unix(),
		"tenant_id": string(user.TenantID),
		"role":      string(user.Role),
	}

	signed, signErr := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(key.PrivateKey)
	if signErr != nil {
		log.Ctx(ctx).Error().Err(signErr).Msg("unable to sign access token")
		return "", time.Time{}, ErrTokenGeneration.Err(signErr)
	}
	return signed, expiry, nil
}

// Token is a parsed and signature-checked access token.
type Token struct {
	token  *jwt.Token
	claims jwt.MapClaims
}

// ParseToken verifies the signature and returns the token. Claim-level
// checks live in Validate.
func ParseToken(ctx context.Context, tokenString string) (*Token, apperrors.Error) {
	key, err := getKeyManager().GetActiveKey()
	if err != nil {
		return nil, err
	}

	token, parseErr := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key.PublicKey, nil
	})
	if parseErr != nil {
		log.Ctx(ctx).Info().Err(parseErr).Msg("failed to parse token")
		return nil, ErrInvalidToken.Err(parseErr)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return &Token{token: token, claims: claims}, nil
}

// Validate checks expiry, issuer and the presence of required claims.
func (t *Token) Validate() bool {
	if t.token == nil || !t.token.Valid {
		return false
	}

	now := time.Now()
	exp, ok := t.claims["exp"].(float64)
	if !ok || time.Unix(int64(exp), 0).Before(now) {
		return false
	}
	if iss, ok := t.claims["iss"].(string); !ok || iss != tokenIssuer {
		return false
	}
	for _, claim := range []string{"sub", "tenant_id", "role", "jti"} {
		if _, ok := t.claims[claim]; !ok {
			return false
		}
	}
	return true
}

func (t *Token) getString(key string) string {
	if v, ok := t.claims[key].(string); ok {
		return v
	}
	return ""
}

func (t *Token) GetTenantID() types.TenantId {
	return types.TenantId(t.getString("tenant_id"))
}

func (t *Token) GetUserID() types.UserId {
	return types.UserId(t.getString("sub"))
}

func (t *Token) GetRole() types.Role {
	return types.Role(t.getString("role"))
}

func (t *Token) GetExpiry() time.Time {
	exp, ok := t.claims["exp"].(float64)
	if !ok {
		return time.Time{}
	}
	return time.Unix(int64(exp), 0)
}
