package httpapi

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestAttemptLimiterSlidingWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 20, 0, 0, 0, time.UTC)
	limiter := newAttemptLimiter(2, time.Minute)
	limiter.now = func() time.Time { return now }

	if !limiter.Allow("a") || !limiter.Allow("a") {
		t.Fatalf("expected first two attempts to pass")
	}
	if limiter.Allow("a") {
		t.Fatalf("expected third attempt inside the window to be blocked")
	}
	if !limiter.Allow("b") {
		t.Fatalf("other clients must not share the budget")
	}

	now = now.Add(61 * time.Second)
	if !limiter.Allow("a") {
		t.Fatalf("expected attempts to recover after the window")
	}
}

func TestClientKeyStripsPort(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	if got := clientKey(req); got != "192.0.2.1" {
		t.Fatalf("expected bare ip, got %q", got)
	}

	req.RemoteAddr = "[2001:db8::1]:443"
	if got := clientKey(req); got != "2001:db8::1" {
		t.Fatalf("expected bare ipv6, got %q", got)
	}
}
