package store

import (
	"context"
	"time"
)

// AccessKey is a provisioned login key. Only the bcrypt hash is stored; the
// plaintext key is shown once at provisioning time.
type AccessKey struct {
	ID        int64
	Label     string
	KeyHash   string
	CreatedAt time.Time
}

// KeyStore persists provisioned access keys.
type KeyStore interface {
	// CreateKey stores a new key hash under a human-readable label.
	CreateKey(ctx context.Context, label, keyHash string) (*AccessKey, error)
	// ListKeys returns all provisioned keys, oldest first.
	ListKeys(ctx context.Context) ([]*AccessKey, error)
	// DeleteKey removes a key by ID.
	DeleteKey(ctx context.Context, id int64) error
	// Close releases the underlying storage.
	Close() error
}
