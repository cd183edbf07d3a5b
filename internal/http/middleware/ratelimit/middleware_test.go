package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestHandler(opts Options) http.Handler {
	return Middleware(opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestMiddlewareLimitsPerClient(t *testing.T) {
	handler := newTestHandler(Options{
		Interval:  time.Minute,
		MaxBurst:  2,
		CacheSize: 16,
		CacheTTL:  time.Minute,
	})

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remoteAddr

		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)

		return res
	}

	for i := range 2 {
		if e, g := http.StatusOK, send("192.0.2.1:1234").Code; e != g {
			t.Fatalf("request %d: expected %d, got %d", i, e, g)
		}
	}

	res := send("192.0.2.1:1234")

	if e, g := http.StatusTooManyRequests, res.Code; e != g {
		t.Errorf("status: expected %d, got %d", e, g)
	}

	if res.Header().Get("Retry-After") == "" {
		t.Errorf("expected a Retry-After header")
	}

	// Another client keeps its own bucket
	if e, g := http.StatusOK, send("192.0.2.2:1234").Code; e != g {
		t.Errorf("status: expected %d, got %d", e, g)
	}
}

func TestMiddlewareTrustHeaders(t *testing.T) {
	handler := newTestHandler(Options{
		TrustHeaders: true,
		Interval:     time.Minute,
		MaxBurst:     1,
		CacheSize:    16,
		CacheTTL:     time.Minute,
	})

	send := func(forwardedFor string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		req.Header.Set("X-Forwarded-For", forwardedFor)

		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)

		return res
	}

	if e, g := http.StatusOK, send("198.51.100.1").Code; e != g {
		t.Fatalf("status: expected %d, got %d", e, g)
	}

	if e, g := http.StatusTooManyRequests, send("198.51.100.1").Code; e != g {
		t.Errorf("status: expected %d, got %d", e, g)
	}

	// A different forwarded client is not throttled
	if e, g := http.StatusOK, send("198.51.100.2").Code; e != g {
		t.Errorf("status: expected %d, got %d", e, g)
	}
}
