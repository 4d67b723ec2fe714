package service

import (
	"testing"
	"time"
)

func TestLimiterAllowsUpToCapacity(t *testing.T) {
	// An hour-long window makes refill negligible during the test.
	limiter := NewLookupLimiter(3, time.Hour)

	for i := 0; i < 3; i++ {
		if !limiter.Allow() {
			t.Fatalf("call %d rejected within capacity", i+1)
		}
	}

	if limiter.Allow() {
		t.Error("call beyond capacity was allowed")
	}
}

func TestLimiterRefills(t *testing.T) {
	// 10 per second refills a token every 100ms.
	limiter := NewLookupLimiter(10, time.Second)

	for limiter.Allow() {
	}

	time.Sleep(250 * time.Millisecond)

	if !limiter.Allow() {
		t.Error("no token available after refill interval")
	}
}
