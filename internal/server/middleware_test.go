package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"tailscale.com/client/tailscale/apitype"
	"tailscale.com/tailcfg"
)

type stubWhoIs struct {
	resp *apitype.WhoIsResponse
	err  error
}

func (s stubWhoIs) WhoIs(ctx context.Context, remoteAddr string) (*apitype.WhoIsResponse, error) {
	return s.resp, s.err
}

func identityEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, userInfoFromContext(r))
	})
}

// TestRequestIDGenerated verifies that a request without an ID gets one.
func TestRequestIDGenerated(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("request id missing from context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seen {
		t.Errorf("header = %q, want %q", got, seen)
	}
}

// TestRequestIDPreserved verifies that a client-supplied ID is echoed back.
func TestRequestIDPreserved(t *testing.T) {
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("header = %q, want abc-123", got)
	}
}

// TestCORSPreflight verifies OPTIONS requests short-circuit with 204.
func TestCORSPreflight(t *testing.T) {
	called := false
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/parse", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if called {
		t.Error("next handler called on preflight")
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing Access-Control-Allow-Origin")
	}
}

// TestDevIdentity verifies the dev user is injected.
func TestDevIdentity(t *testing.T) {
	var info UserInfo
	h := DevIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info = userInfoFromContext(r)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if info != devUser {
		t.Errorf("info = %+v, want %+v", info, devUser)
	}
}

// TestTailscaleIdentity verifies WhoIs results become the caller identity
// and unknown peers are rejected.
func TestTailscaleIdentity(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	known := stubWhoIs{resp: &apitype.WhoIsResponse{
		UserProfile: &tailcfg.UserProfile{LoginName: "alice@example.com", DisplayName: "Alice"},
	}}
	rec := httptest.NewRecorder()
	TailscaleIdentity(known, log)(identityEcho(t)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("known peer: status = %d, want 200", rec.Code)
	}

	unknown := stubWhoIs{err: errors.New("no such peer")}
	rec = httptest.NewRecorder()
	TailscaleIdentity(unknown, log)(identityEcho(t)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("unknown peer: status = %d, want 403", rec.Code)
	}
}
