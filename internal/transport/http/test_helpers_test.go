package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/boogeyman0929/chat-backend/internal/auth"
	"github.com/boogeyman0929/chat-backend/internal/config"
	"github.com/boogeyman0929/chat-backend/internal/core"
)

const testAccessKey = "MYSECRETKEY"

func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := zerolog.Nop()

	registry := core.NewRegistry()
	channels := core.NewChannelStore()
	hub := core.NewHub(registry, channels, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	jwtConfig := &auth.JWTConfig{
		Secret:   []byte("test-secret"),
		Issuer:   "chat-backend",
		Audience: "chat-clients",
		TTL:      time.Hour,
	}
	authService := auth.NewService(nil, []string{testAccessKey}, registry, jwtConfig)

	server := NewServer(hub, authService, config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
	}, &logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func loginUser(t *testing.T, ts *httptest.Server, username string) string {
	t.Helper()

	body, _ := json.Marshal(LoginRequest{Key: testAccessKey, Username: username})
	resp, err := ts.Client().Post(ts.URL+"/api/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: unexpected status %d", username, resp.StatusCode)
	}

	var out LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return out.Token
}

type wsEnvelope struct {
	Type  string          `json:"type"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// mustWSEvent reads outbound envelopes until one with the given event name
// arrives, discarding others.
func mustWSEvent(t *testing.T, ctx context.Context, conn *websocket.Conn, event string) json.RawMessage {
	t.Helper()

	for {
		var env wsEnvelope
		if err := wsjson.Read(ctx, conn, &env); err != nil {
			t.Fatalf("read ws waiting for %q: %v", event, err)
		}
		if env.Type == "event" && env.Event == event {
			return env.Data
		}
	}
}

func readJSON(ctx context.Context, conn *websocket.Conn, v any) error {
	return wsjson.Read(ctx, conn, v)
}

func sendInbound(t *testing.T, ctx context.Context, conn *websocket.Conn, msgType string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s payload: %v", msgType, err)
	}
	if err := wsjson.Write(ctx, conn, map[string]any{"type": msgType, "data": json.RawMessage(payload)}); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}
