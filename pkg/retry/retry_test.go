package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	errs "nbafetch/pkg/errors"
	"nbafetch/pkg/logger"
)

func testConfig(maxAttempts int, attempts *int) *Config {
	return &Config{
		MaxAttempts: maxAttempts,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     func(err error) bool { return true },
		OnAttempt:   func(int) { *attempts++ },
		Context:     context.Background(),
		Logger:      logger.NewTestLogger(),
	}
}

func TestExponentialBackoff(t *testing.T) {
	backoff := &ExponentialBackoff{
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   1 * time.Second,
		Multiplier: 2.0,
	}

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, 1 * time.Second}, // capped at max
		{6, 1 * time.Second},
		{0, 0},
	}

	for _, test := range tests {
		if got := backoff.NextDelay(test.attempt); got != test.expected {
			t.Errorf("attempt %d: expected %v, got %v", test.attempt, test.expected, got)
		}
	}
}

func TestExponentialBackoffJitterVaries(t *testing.T) {
	backoff := &ExponentialBackoff{
		BaseDelay:    100 * time.Millisecond,
		MaxDelay:     1 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.3,
	}

	delays := make(map[time.Duration]bool)
	for i := 0; i < 10; i++ {
		delays[backoff.NextDelay(2)] = true
	}
	if len(delays) < 2 {
		t.Error("expected multiple different delays with jitter")
	}
}

func TestRetrySucceedsOnFinalAttempt(t *testing.T) {
	const maxAttempts = 4

	attempts := 0
	calls := 0
	op := func() error {
		calls++
		if calls < maxAttempts {
			return errors.New("temporary error")
		}
		return nil
	}

	err := Do(op, testConfig(maxAttempts, &attempts))
	if err != nil {
		t.Fatalf("expected success after retries, got error: %v", err)
	}
	if attempts != maxAttempts {
		t.Errorf("expected %d attempts counted, got %d", maxAttempts, attempts)
	}
}

func TestRetryExhaustion(t *testing.T) {
	const maxAttempts = 5

	attempts := 0
	op := func() error { return errors.New("persistent error") }

	err := Do(op, testConfig(maxAttempts, &attempts))
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if !errors.Is(err, ErrExhausted) {
		t.Errorf("expected error to wrap ErrExhausted, got %v", err)
	}
	if attempts != maxAttempts {
		t.Errorf("expected exactly %d attempts, got %d", maxAttempts, attempts)
	}
}

func TestRetryCountsEveryAttempt(t *testing.T) {
	for _, maxAttempts := range []int{1, 2, 3, 7} {
		attempts := 0
		_ = Do(func() error { return errors.New("nope") }, testConfig(maxAttempts, &attempts))
		if attempts != maxAttempts {
			t.Errorf("MaxAttempts=%d: counted %d attempts", maxAttempts, attempts)
		}
	}
}

func TestRetryNonRetryableError(t *testing.T) {
	attempts := 0
	terminal := &errs.Error{Type: errs.ErrorTypeNotFound, Message: "gone", Code: 404}

	cfg := testConfig(5, &attempts)
	cfg.RetryIf = DefaultRetryIf

	err := Do(func() error { return terminal }, cfg)
	if !errors.Is(err, error(terminal)) {
		t.Errorf("expected terminal error returned as-is, got %v", err)
	}
	if errors.Is(err, ErrExhausted) {
		t.Error("non-retryable error must not report exhaustion")
	}
	if attempts != 1 {
		t.Errorf("expected a single attempt, got %d", attempts)
	}
}

func TestRetryContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	cfg := testConfig(5, &attempts)
	cfg.Context = ctx
	cfg.Backoff = &ConstantBackoff{Delay: time.Second}

	op := func() error {
		cancel()
		return errors.New("fails then cancels")
	}

	err := Do(op, cfg)
	if err == nil || !errors.Is(err, context.Canceled) {
		t.Errorf("expected context cancellation error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected a single attempt before cancellation, got %d", attempts)
	}
}

func TestDoWithResult(t *testing.T) {
	attempts := 0
	calls := 0
	op := func() (string, error) {
		calls++
		if calls < 2 {
			return "", errors.New("transient")
		}
		return "payload", nil
	}

	got, err := DoWithResult(op, testConfig(3, &attempts))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "payload" {
		t.Errorf("expected result %q, got %q", "payload", got)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestDefaultRetryIf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"plain error", errors.New("boom"), true},
		{"network api error", &errs.Error{Type: errs.ErrorTypeNetwork}, true},
		{"not found api error", &errs.Error{Type: errs.ErrorTypeNotFound}, false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := DefaultRetryIf(test.err); got != test.want {
				t.Errorf("DefaultRetryIf(%v) = %v, want %v", test.err, got, test.want)
			}
		})
	}
}
