package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDo_SucceedsWithoutRetry(t *testing.T) {
	calls := 0
	result := Do(context.Background(), DefaultConfig(), func() error {
		calls++
		return nil
	})
	assert.NoError(t, result.Err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, result.Attempts)
}

func TestDo_RetriesTransientFailures(t *testing.T) {
	calls := 0
	cfg := Config{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Factor: 2}
	result := Do(context.Background(), cfg, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	assert.NoError(t, result.Err)
	assert.Equal(t, 3, calls)
}

func TestDo_StopsOnPermanentError(t *testing.T) {
	calls := 0
	cfg := Config{MaxAttempts: 5, InitialDelay: time.Millisecond}
	result := Do(context.Background(), cfg, func() error {
		calls++
		return Permanent(errors.New("bad request"))
	})
	assert.Error(t, result.Err)
	assert.Equal(t, 1, calls)
}

func TestDo_ExhaustsMaxAttempts(t *testing.T) {
	calls := 0
	cfg := Config{MaxAttempts: 2, InitialDelay: time.Millisecond}
	result := Do(context.Background(), cfg, func() error {
		calls++
		return errors.New("always fails")
	})
	assert.Error(t, result.Err)
	assert.Equal(t, 2, calls)
}

func TestDo_RespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := Do(ctx, DefaultConfig(), func() error {
		t.Fatal("op should not be called with a cancelled context")
		return nil
	})
	assert.Error(t, result.Err)
}
