// Package keymanager holds the Ed25519 key pair used to sign access
// tokens. Keys are generated at first use and kept in memory; a restart
// invalidates outstanding tokens, which is acceptable for access tokens
// with a short validity window.
package keymanager

import (
	"crypto/ed25519"
	"crypto/rand"
	"sync"
	"time"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
)

// SigningKey is an Ed25519 key pair with an expiry.
type SigningKey struct {
	PrivateKey ed25519.PrivateKey
	PublicKey  ed25519.PublicKey
	ExpiresAt  time.Time
}

func (sk *SigningKey) IsExpired() bool {
	return sk.ExpiresAt.Before(time.Now())
}

// KeyManager hands out the active signing key, rotating it when the
// current one expires.
type KeyManager struct {
	activeKey *SigningKey
	mu        sync.RWMutex
}

const keyLifetime = 30 * 24 * time.Hour

func NewKeyManager() *KeyManager {
	return &KeyManager{}
}

// GetActiveKey returns the current key, generating a fresh one when
// none exists or the current one has expired.
func (km *KeyManager) GetActiveKey() (*SigningKey, apperrors.Error) {
	km.mu.RLock()
	key := km.activeKey
	km.mu.RUnlock()
	if key != nil && !key.IsExpired() {
		return key, nil
	}
	return km.rotate()
}

func (km *KeyManager) rotate() (*SigningKey, apperrors.Error) {
	km.mu.Lock()
	defer km.mu.Unlock()

	if km.activeKey != nil && !km.activeKey.IsExpired() {
		return km.activeKey, nil
	}

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, apperrors.New("unable to generate signing key").Err(err)
	}
	km.activeKey = &SigningKey{
		PrivateKey: priv,
		PublicKey:  pub,
		ExpiresAt:  time.Now().Add(keyLifetime),
	}
	return km.activeKey, nil
}
