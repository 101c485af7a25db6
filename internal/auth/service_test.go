package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/boogeyman0929/chat-backend/internal/core"
	"github.com/boogeyman0929/chat-backend/internal/store/sqlite"
)

func testJWTConfig() *JWTConfig {
	return &JWTConfig{
		Secret:   []byte("test-secret"),
		Issuer:   "chat-backend",
		Audience: "chat-clients",
		TTL:      time.Hour,
	}
}

func newTestService(t *testing.T, staticKeys []string) *Service {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("create key store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	return NewService(st, staticKeys, core.NewRegistry(), testJWTConfig())
}

func TestLoginWithStaticKey(t *testing.T) {
	svc := newTestService(t, []string{"MYSECRETKEY"})

	token, err := svc.Login(context.Background(), "MYSECRETKEY", "alice")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.Username != "alice" || claims.Role != string(core.RoleUser) {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginRejectsInvalidKey(t *testing.T) {
	svc := newTestService(t, []string{"MYSECRETKEY"})

	if _, err := svc.Login(context.Background(), "WRONGKEY", "alice"); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "", "alice"); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey for empty key, got %v", err)
	}
}

func TestLoginRejectsTakenName(t *testing.T) {
	svc := newTestService(t, []string{"MYSECRETKEY"})

	if _, err := svc.Login(context.Background(), "MYSECRETKEY", "alice"); err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), "MYSECRETKEY", "alice"); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}
}

func TestLoginRejectsBlankUsername(t *testing.T) {
	svc := newTestService(t, []string{"MYSECRETKEY"})

	if _, err := svc.Login(context.Background(), "MYSECRETKEY", "   "); !errors.Is(err, ErrInvalidUsername) {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}
}

func TestLoginWithProvisionedKey(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	key, rec, err := svc.ProvisionKey(ctx, "friends")
	if err != nil {
		t.Fatalf("provision key: %v", err)
	}
	if rec.Label != "friends" || rec.KeyHash == key {
		t.Fatalf("unexpected key record: %+v", rec)
	}

	if _, err := svc.Login(ctx, key, "bob"); err != nil {
		t.Fatalf("login with provisioned key failed: %v", err)
	}
	if _, err := svc.Login(ctx, key+"tampered", "carol"); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(&JWTConfig{Secret: []byte("other"), TTL: time.Hour}, "alice", "user")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	svc := newTestService(t, nil)
	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatal("token signed with wrong secret accepted")
	}
}
