package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		key      string
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial requests",
			rps:      1,
			burst:    3,
			key:      "firestore.googleapis.com",
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rps:      1,
			burst:    2,
			key:      "firestore.googleapis.com",
			calls:    4,
			wantPass: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			krl := New(tt.rps, tt.burst)

			passed := 0
			for range tt.calls {
				if krl.Allow(tt.key) {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("got %d passed, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedRateLimiter_IndependentKeys(t *testing.T) {
	krl := New(1, 1)

	if !krl.Allow("host-a") {
		t.Error("first request for host-a should pass")
	}
	if krl.Allow("host-a") {
		t.Error("second request for host-a should be limited")
	}
	// A different key has its own bucket.
	if !krl.Allow("host-b") {
		t.Error("first request for host-b should pass")
	}
}

func TestKeyedRateLimiter_WaitRespectsContext(t *testing.T) {
	krl := New(0.001, 1)
	krl.Allow("slow")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := krl.Wait(ctx, "slow"); err == nil {
		t.Error("expected context deadline error, got nil")
	}
}
