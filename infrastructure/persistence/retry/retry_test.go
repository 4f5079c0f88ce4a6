package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"podmarket/config"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

func TestFromAppConfigMapsRetrySection(t *testing.T) {
	appConfig := &config.Config{}
	appConfig.Database.Retry = config.RetryConfig{
		Enabled:            true,
		MaxAttempts:        7,
		InitialDelay:       50 * time.Millisecond,
		MaxDelay:           time.Second,
		BackoffFactor:      3.0,
		JitterEnabled:      false,
		RetryOnDeadlock:    true,
		RetryOnLockTimeout: false,
	}

	got := FromAppConfig(appConfig)
	if !got.Enabled || got.MaxAttempts != 7 || got.InitialDelay != 50*time.Millisecond ||
		got.MaxDelay != time.Second || got.BackoffFactor != 3.0 || got.JitterEnabled ||
		!got.RetryOnDeadlock || got.RetryOnLockTimeout {
		t.Errorf("FromAppConfig mapped %+v incorrectly: %+v", appConfig.Database.Retry, got)
	}
}

func TestExponentialBackoffWithJitterBounds(t *testing.T) {
	config := DefaultConfig

	for attempt := 1; attempt <= 6; attempt++ {
		expected := float64(config.InitialDelay)
		for i := 1; i < attempt; i++ {
			expected *= config.BackoffFactor
		}
		if expected > float64(config.MaxDelay) {
			expected = float64(config.MaxDelay)
		}
		lo := time.Duration(expected * 0.8)
		hi := time.Duration(expected * 1.2)

		for i := 0; i < 50; i++ {
			delay := ExponentialBackoffWithJitter(attempt, config)
			if delay < lo || delay > hi {
				t.Fatalf("attempt %d: delay %v outside [%v, %v]", attempt, delay, lo, hi)
			}
		}
	}
}

func TestExponentialBackoffZeroForNonPositiveAttempt(t *testing.T) {
	if ExponentialBackoffWithJitter(0, DefaultConfig) != 0 {
		t.Error("attempt 0 produced a delay")
	}
	if ExponentialBackoffWithJitter(-1, DefaultConfig) != 0 {
		t.Error("negative attempt produced a delay")
	}
}

func TestIsRetryableError(t *testing.T) {
	config := DefaultConfig

	cases := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"deadlock 1213", &mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found"}, true},
		{"lock wait 1205", &mysqlDriver.MySQLError{Number: 1205, Message: "Lock wait timeout"}, true},
		{"duplicate 1062", &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry"}, false},
		{"duplicated key", gorm.ErrDuplicatedKey, false},
		{"invalid transaction", gorm.ErrInvalidTransaction, true},
		{"connection lost", errors.New("mysql: connection lost during query"), true},
		{"plain error", errors.New("syntax error"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetryableError(tc.err, config); got != tc.retryable {
				t.Errorf("IsRetryableError(%v) = %v, want %v", tc.err, got, tc.retryable)
			}
		})
	}
}

func TestIsRetryableErrorHonorsPredicate(t *testing.T) {
	custom := errors.New("custom transient failure")
	config := DefaultConfig
	config.RetryPredicate = func(err error) bool { return errors.Is(err, custom) }

	if !IsRetryableError(custom, config) {
		t.Error("predicate match not retried")
	}
}

func TestExecuteWithRetryStopsOnPermanentError(t *testing.T) {
	config := DefaultConfig
	config.InitialDelay = time.Millisecond

	calls := 0
	err := ExecuteWithRetry(context.Background(), config, func(ctx context.Context) error {
		calls++
		return errors.New("permanent")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("permanent error retried %d times", calls)
	}
}

func TestExecuteWithRetryRetriesTransientError(t *testing.T) {
	config := DefaultConfig
	config.InitialDelay = time.Millisecond
	config.MaxDelay = 5 * time.Millisecond

	calls := 0
	err := ExecuteWithRetry(context.Background(), config, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return &mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found"}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("ExecuteWithRetry: %v", err)
	}
	if calls != 3 {
		t.Errorf("succeeded after %d calls, want 3", calls)
	}
}

func TestExecuteWithRetryExhaustsAttempts(t *testing.T) {
	config := DefaultConfig
	config.MaxAttempts = 2
	config.InitialDelay = time.Millisecond

	calls := 0
	deadlock := &mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found"}
	err := ExecuteWithRetry(context.Background(), config, func(ctx context.Context) error {
		calls++
		return deadlock
	})
	if !errors.Is(err, deadlock) {
		t.Fatalf("err = %v, want last deadlock error", err)
	}
	if calls != 2 {
		t.Errorf("ran %d attempts, want 2", calls)
	}
}

func TestExecuteWithRetryDisabledRunsOnce(t *testing.T) {
	config := DefaultConfig
	config.Enabled = false

	calls := 0
	ExecuteWithRetry(context.Background(), config, func(ctx context.Context) error {
		calls++
		return &mysqlDriver.MySQLError{Number: 1213}
	})
	if calls != 1 {
		t.Errorf("disabled retry still ran %d attempts", calls)
	}
}

func TestExecuteWithRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ExecuteWithRetry(ctx, DefaultConfig, func(ctx context.Context) error {
		t.Fatal("fn ran with cancelled context")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
