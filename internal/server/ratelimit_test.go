package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientLimiter_PerClientBudget(t *testing.T) {
	cl := newClientLimiter(1, 2)
	now := time.Unix(1_700_000_000, 0)
	cl.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		if !cl.Allow("10.0.0.1") {
			t.Fatalf("request %d denied within burst", i)
		}
	}
	if cl.Allow("10.0.0.1") {
		t.Error("third request allowed, want denied")
	}
	if !cl.Allow("10.0.0.2") {
		t.Error("other client denied, want its own budget")
	}

	now = now.Add(time.Second)
	if !cl.Allow("10.0.0.1") {
		t.Error("request after refill denied")
	}
}

func TestClientLimiter_ZeroRateDisables(t *testing.T) {
	cl := newClientLimiter(0, 0)
	for i := 0; i < 100; i++ {
		if !cl.Allow("10.0.0.1") {
			t.Fatalf("request %d denied with throttling disabled", i)
		}
	}
}

func TestClientLimiter_Cleanup(t *testing.T) {
	cl := newClientLimiter(5, 5)
	now := time.Unix(1_700_000_000, 0)
	cl.now = func() time.Time { return now }

	cl.Allow("old")
	now = now.Add(clientIdleTTL / 2)
	cl.Allow("fresh")
	now = now.Add(clientIdleTTL/2 + time.Second)

	if removed := cl.cleanup(); removed != 1 {
		t.Fatalf("cleanup removed %d, want 1", removed)
	}
	if _, ok := cl.limiters["fresh"]; !ok {
		t.Error("fresh limiter was removed")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"192.0.2.1:1234", "192.0.2.1"},
		{"[2001:db8::1]:80", "2001:db8::1"},
		{"unix-socket", "unix-socket"},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = tt.remote
		if got := clientIP(r); got != tt.want {
			t.Errorf("clientIP(%q) = %q, want %q", tt.remote, got, tt.want)
		}
	}
}
