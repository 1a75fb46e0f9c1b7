package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bandroom/ratelimit"
)

func TestAllowBurst(t *testing.T) {
	l := ratelimit.New(60, 2)
	defer l.Close()

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("expected burst of 2 to be allowed")
	}
	if l.Allow("a") {
		t.Fatal("expected third immediate request to be denied")
	}
	// Other clients have their own bucket.
	if !l.Allow("b") {
		t.Fatal("expected fresh client to be allowed")
	}
}

func TestMiddleware(t *testing.T) {
	l := ratelimit.New(60, 1)
	defer l.Close()

	h := ratelimit.Middleware(l, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/concerts", nil)
	req.RemoteAddr = "192.0.2.1:51000"

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Same client, bucket empty.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}

	// A different client is not affected.
	req2 := httptest.NewRequest(http.MethodGet, "/api/concerts", nil)
	req2.RemoteAddr = "192.0.2.2:51000"
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req2)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for second client, got %d", rec.Code)
	}
}
