package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vaultpass/passgen-go/internal/crypto"
)

func clientEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ClientFromContext(r.Context())))
	})
}

func TestJWTAuth(t *testing.T) {
	secret := "test-secret"
	token, err := crypto.IssueToken("ci-runner", secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() unexpected error: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, "missing authorization header"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "invalid authorization format"},
		{"empty token", "Bearer ", http.StatusUnauthorized, "invalid authorization format"},
		{"bad token", "Bearer nope", http.StatusUnauthorized, "invalid or expired token"},
		{"valid token", "Bearer " + token, http.StatusOK, "ci-runner"},
	}

	handler := JWTAuth(secret)(clientEcho())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestClientFromContextAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := ClientFromContext(req.Context()); got != AnonymousClient {
		t.Errorf("ClientFromContext() = %q, want %q", got, AnonymousClient)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	handler := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := do("10.0.0.1:1234"); rec.Code != http.StatusNoContent {
			t.Fatalf("request %d within burst: status = %d", i, rec.Code)
		}
	}

	rec := do("10.0.0.1:5678")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("request over burst: status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "1" {
		t.Errorf("Retry-After = %q, want %q", rec.Header().Get("Retry-After"), "1")
	}

	if rec := do("10.0.0.2:1234"); rec.Code != http.StatusNoContent {
		t.Errorf("other IP: status = %d, want 204", rec.Code)
	}

	now = now.Add(time.Second)
	if rec := do("10.0.0.1:1234"); rec.Code != http.StatusNoContent {
		t.Errorf("after refill: status = %d, want 204", rec.Code)
	}
}

func TestRateLimiterEvict(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.reserve("10.0.0.1")
	now = now.Add(visitorTTL / 2)
	rl.reserve("10.0.0.2")
	now = now.Add(visitorTTL/2 + time.Second)

	if n := rl.Evict(); n != 1 {
		t.Errorf("Evict() = %d, want 1", n)
	}
	if _, ok := rl.visitors["10.0.0.2"]; !ok {
		t.Error("recent visitor was evicted")
	}
}

func TestRateLimiterRunStops(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		rl.Run(stop)
		close(done)
	}()
	close(stop)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after stop was closed")
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	line := buf.String()
	for _, want := range []string{"method=POST", "path=/api/v1/generate", "status=418", "bytes=15"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %q", line, want)
		}
	}
}
