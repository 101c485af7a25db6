package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/boogeyman0929/chat-backend/internal/core"
	"github.com/boogeyman0929/chat-backend/internal/store"
)

var (
	// ErrInvalidKey is returned when the access key matches nothing.
	ErrInvalidKey = errors.New("invalid access key")
	// ErrInvalidUsername is returned when the username doesn't meet constraints.
	ErrInvalidUsername = errors.New("invalid username")
	// ErrNameTaken is returned when the display name is already online.
	ErrNameTaken = errors.New("username already taken")
)

// Service validates access keys and hands out session tokens. Successful
// login claims the display name in the core registry, so uniqueness is
// settled before the WebSocket ever opens.
type Service struct {
	keys       store.KeyStore
	staticKeys map[string]struct{}
	registry   *core.Registry
	jwtConfig  *JWTConfig
}

// NewService creates an authentication service. keys may be nil when only
// config-file keys are in use.
func NewService(keys store.KeyStore, staticKeys []string, registry *core.Registry, jwtConfig *JWTConfig) *Service {
	static := make(map[string]struct{}, len(staticKeys))
	for _, k := range staticKeys {
		static[k] = struct{}{}
	}
	return &Service{
		keys:       keys,
		staticKeys: static,
		registry:   registry,
		jwtConfig:  jwtConfig,
	}
}

// Login validates the access key, claims the display name, and returns a
// session token for the WebSocket handshake.
func (s *Service) Login(ctx context.Context, key, username string) (string, error) {
	if err := s.validateKey(ctx, key); err != nil {
		return "", err
	}

	username = strings.TrimSpace(username)
	if len(username) < 1 || len(username) > 32 {
		return "", ErrInvalidUsername
	}

	if err := s.registry.Register(username); err != nil {
		if errors.Is(err, core.ErrNameTaken) {
			return "", ErrNameTaken
		}
		return "", fmt.Errorf("register identity: %w", err)
	}

	token, err := GenerateToken(s.jwtConfig, username, string(core.RoleUser))
	if err != nil {
		// Don't leave a name claimed by a session that never got a token.
		s.registry.Remove(username)
		return "", fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}

// ProvisionKey generates a new access key, persists its hash, and returns
// the plaintext exactly once.
func (s *Service) ProvisionKey(ctx context.Context, label string) (string, *store.AccessKey, error) {
	if s.keys == nil {
		return "", nil, errors.New("key store not configured")
	}
	return ProvisionKey(ctx, s.keys, label)
}

// ValidateToken validates a session token and returns the claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return ValidateToken(s.jwtConfig, tokenString)
}

// validateKey checks the config-file key set first, then the hashed keys in
// the store. The store holds few keys, so comparing against each hash is fine.
func (s *Service) validateKey(ctx context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if _, ok := s.staticKeys[key]; ok {
		return nil
	}
	if s.keys == nil {
		return ErrInvalidKey
	}

	keys, err := s.keys.ListKeys(ctx)
	if err != nil {
		return fmt.Errorf("list keys: %w", err)
	}
	for _, k := range keys {
		if CompareKey(k.KeyHash, key) == nil {
			return nil
		}
	}
	return ErrInvalidKey
}
