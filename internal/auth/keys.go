package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/boogeyman0929/chat-backend/internal/store"
)

// bcryptCost of 10 balances hashing time against brute-force resistance.
const bcryptCost = 10

// GenerateKey produces a new random access key. The plaintext is returned
// once; only its hash is ever persisted.
func GenerateKey() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashKey generates a bcrypt hash of the access key.
func HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash key: %w", err)
	}
	return string(hash), nil
}

// CompareKey compares a bcrypt hash with a plaintext access key.
func CompareKey(keyHash, key string) error {
	return bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key))
}

// ProvisionKey generates a new access key, persists its hash, and returns
// the plaintext exactly once alongside the stored record.
func ProvisionKey(ctx context.Context, keys store.KeyStore, label string) (string, *store.AccessKey, error) {
	key, err := GenerateKey()
	if err != nil {
		return "", nil, err
	}
	hash, err := HashKey(key)
	if err != nil {
		return "", nil, err
	}

	rec, err := keys.CreateKey(ctx, label, hash)
	if err != nil {
		return "", nil, fmt.Errorf("store key: %w", err)
	}
	return key, rec, nil
}
