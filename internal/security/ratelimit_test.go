package security

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllowsUpToRate(t *testing.T) {
	rl := NewRateLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		if !rl.Allow("caller") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("caller") {
		t.Error("request beyond rate should be denied")
	}

	// A different caller has its own bucket
	if !rl.Allow("other") {
		t.Error("unrelated caller should be allowed")
	}
}

func TestRateLimiterRefills(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	if !rl.Allow("caller") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("caller") {
		t.Fatal("second immediate request should be denied")
	}

	time.Sleep(20 * time.Millisecond)
	if !rl.Allow("caller") {
		t.Error("request after refill window should be allowed")
	}
}

func TestClientKey(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	if got := ClientKey(r); got != "10.0.0.1:1234" {
		t.Errorf("ClientKey = %q, want remote addr", got)
	}

	r.Header.Set("X-Real-IP", "203.0.113.9")
	if got := ClientKey(r); got != "203.0.113.9" {
		t.Errorf("ClientKey = %q, want X-Real-IP", got)
	}

	r.Header.Set("X-Forwarded-For", "198.51.100.7")
	if got := ClientKey(r); got != "198.51.100.7" {
		t.Errorf("ClientKey = %q, want X-Forwarded-For", got)
	}
}
