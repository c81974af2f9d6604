package infra

import (
	"testing"
	"time"
)

func TestRateLimiter_Burst(t *testing.T) {
	r := NewRateLimiter(3, 100)

	for i := 0; i < 3; i++ {
		if !r.TryAcquire() {
			t.Fatalf("burst token %d should be available", i)
		}
	}
	if r.TryAcquire() {
		t.Error("bucket should be empty after burst")
	}
}

func TestRateLimiter_Refill(t *testing.T) {
	r := NewRateLimiter(1, 100) // 10ms per token

	if !r.TryAcquire() {
		t.Fatal("initial token should be available")
	}
	if r.TryAcquire() {
		t.Error("bucket should be empty")
	}

	time.Sleep(25 * time.Millisecond)
	if !r.TryAcquire() {
		t.Error("token should have refilled")
	}
}

func TestRateLimiter_WaitBlocks(t *testing.T) {
	r := NewRateLimiter(1, 50) // 20ms per token
	r.Wait()

	start := time.Now()
	r.Wait()
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("second Wait returned after %v, expected to block", elapsed)
	}
}
