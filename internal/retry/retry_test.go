package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func noWait(int) time.Duration { return 0 }

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), 3, noWait, func() (int, error) {
		calls++
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 || calls != 1 {
		t.Errorf("got=%d calls=%d", got, calls)
	}
}

func TestDoRecoversOnThirdAttempt(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), 3, noWait, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" || calls != 3 {
		t.Errorf("got=%q calls=%d", got, calls)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	fail := errors.New("always")
	calls := 0
	_, err := Do(context.Background(), 3, noWait, func() (int, error) {
		calls++
		return 0, fail
	})
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if !errors.Is(err, fail) {
		t.Errorf("error should wrap the last failure, got: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoContextCancelAbortsWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Do(ctx, 3, Linear(time.Hour), func() (int, error) {
		return 0, errors.New("fail once, then wait forever")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestLinearBackoffGrows(t *testing.T) {
	backoff := Linear(2 * time.Second)
	for attempt, want := range map[int]time.Duration{
		1: 2 * time.Second,
		2: 4 * time.Second,
		3: 6 * time.Second,
	} {
		if got := backoff(attempt); got != want {
			t.Errorf("backoff(%d) = %v, want %v", attempt, got, want)
		}
	}
}
