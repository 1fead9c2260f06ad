package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestFirstCallDoesNotBlock(t *testing.T) {
	l := New(time.Second)

	start := time.Now()
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first Wait() blocked for %v", elapsed)
	}
}

func TestSecondCallWaitsInterval(t *testing.T) {
	const interval = 50 * time.Millisecond
	l := New(interval)

	ctx := context.Background()
	if err := l.Wait(ctx); err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	if err := l.Wait(ctx); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < interval {
		t.Errorf("second Wait() returned after %v, want >= %v", elapsed, interval)
	}
}

func TestZeroIntervalNeverBlocks(t *testing.T) {
	l := New(0)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if err := l.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
}

func TestWaitHonorsCancellation(t *testing.T) {
	l := New(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	if err := l.Wait(ctx); err != nil {
		t.Fatal(err)
	}

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := l.Wait(ctx)
	if err != context.Canceled {
		t.Errorf("Wait() error = %v, want context.Canceled", err)
	}
}
