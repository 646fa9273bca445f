package schoolcommon

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

type IdType int

const (
	ID_TYPE_GENERIC = iota
	ID_TYPE_TENANT
	ID_TYPE_USER
)

const (
	CODE_LEN = 6
	LETTERS  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	DIGITS   = "0123456789"
	CHARS    = LETTERS + DIGITS
)

func secureRandomInt(max int) (int, error) {
	var buf [8]byte
	_, err := rand.Read(buf[:])
	if err != nil {
		return 0, fmt.Errorf("failed to generate random number: %w", err)
	}
	n := binary.BigEndian.Uint64(buf[:])
	return int(n % uint64(max)), nil
}

// GetUniqueId generates a short prefixed code for tenant and user ids.
// The code is random, not guaranteed unique: callers must check
// uniqueness in the database and retry on collision.
func GetUniqueId(t IdType) (string, error) {
	code, err := shortCode(CODE_LEN)
	if err != nil {
		return "", fmt.Errorf("failed to generate unique ID: %w", err)
	}

	prefix := ""
	switch t {
	case ID_TYPE_TENANT:
		prefix = "T"
	case ID_TYPE_USER:
		prefix = "U"
	}
	return prefix + code, nil
}

// shortCode generates a random alphanumeric string, first character
// always a letter.
func shortCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive, got %d", length)
	}

	result := make([]byte, length)

	letterIdx, err := secureRandomInt(len(LETTERS))
	if err != nil {
		return "", fmt.Errorf("failed to generate first character: %w", err)
	}
	result[0] = LETTERS[letterIdx]

	for i := 1; i < length; i++ {
		idx, err := secureRandomInt(len(CHARS))
		if err != nil {
			return "", fmt.Errorf("failed to generate character at position %d: %w", i, err)
		}
		result[i] = CHARS[idx]
	}

	return string(result), nil
}
