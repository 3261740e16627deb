package shield_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pageintel/pageintel/kit"
	"github.com/pageintel/pageintel/shield"
)

func TestSecurityHeaders(t *testing.T) {
	h := shield.SecurityHeaders(shield.DefaultHeaders())(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
	if got := rec.Header().Get("Content-Security-Policy"); got == "" {
		t.Error("Content-Security-Policy not set")
	}
}

func TestTraceID(t *testing.T) {
	var sawTrace string
	h := shield.TraceID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawTrace = kit.GetTraceID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pages", nil))

	if sawTrace == "" {
		t.Fatal("trace ID not injected into context")
	}
	if got := rec.Header().Get("X-Trace-ID"); got != sawTrace {
		t.Errorf("X-Trace-ID header = %q, context = %q", got, sawTrace)
	}
	if len(sawTrace) != 8 {
		t.Errorf("trace ID length = %d, want 8 hex chars", len(sawTrace))
	}
}

func TestHeadToGet(t *testing.T) {
	var sawMethod string
	h := shield.HeadToGet(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawMethod = r.Method
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/", nil))

	if sawMethod != http.MethodGet {
		t.Errorf("method = %q, want GET", sawMethod)
	}
}

func TestMaxJSONBody(t *testing.T) {
	h := shield.MaxJSONBody(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		if _, err := r.Body.Read(buf); err != nil && !strings.Contains(err.Error(), "EOF") {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	big := strings.NewReader(strings.Repeat("x", 100))
	req := httptest.NewRequest(http.MethodPost, "/", big)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413 for oversized JSON body", rec.Code)
	}
}
