package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAllowBurstThenBlocks(t *testing.T) {
	l := NewLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !l.Allow("client") {
			t.Fatalf("request %d should be allowed within burst", i)
		}
	}
	if l.Allow("client") {
		t.Error("request beyond burst should be blocked")
	}
}

func TestAllowRefills(t *testing.T) {
	l := NewLimiter(100, 1)

	if !l.Allow("client") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("client") {
		t.Fatal("second immediate request should be blocked")
	}

	time.Sleep(50 * time.Millisecond)
	if !l.Allow("client") {
		t.Error("request after refill window should be allowed")
	}
}

func TestAllowIsPerClient(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("a") {
		t.Fatal("client a should be allowed")
	}
	if !l.Allow("b") {
		t.Error("client b has its own bucket")
	}
	if l.Allow("a") {
		t.Error("client a should be blocked")
	}
}

func TestMiddleware(t *testing.T) {
	l := NewLimiter(0.001, 1)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := l.Middleware(next)

	req := httptest.NewRequest(http.MethodPost, "/batch", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
}

func TestMiddlewareUsesForwardedFor(t *testing.T) {
	l := NewLimiter(0.001, 1)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := l.Middleware(next)

	// Same remote address, different forwarded clients.
	for _, client := range []string{"1.1.1.1", "2.2.2.2"} {
		req := httptest.NewRequest(http.MethodPost, "/batch", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", client)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("client %s: status = %d, want 204", client, rec.Code)
		}
	}
}
