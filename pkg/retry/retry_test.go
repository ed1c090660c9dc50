package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 4 * time.Millisecond, BackoffFactor: 2}
}

func TestDo_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(5), func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_GivesUp(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Do(context.Background(), fastConfig(3), func() error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestDoWithLog_LabelAndHook(t *testing.T) {
	var attempts []int
	err := DoWithLog(context.Background(), fastConfig(2), "sqlite", func() error {
		return errors.New("locked")
	}, func(attempt int, err error, next time.Duration) {
		attempts = append(attempts, attempt)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite: max retry attempts (2) exceeded")
	assert.Equal(t, []int{1}, attempts)
}

func TestDo_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, fastConfig(5), func() error {
		calls++
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestNextDelay(t *testing.T) {
	cfg := Config{BackoffFactor: 2, MaxDelay: 300 * time.Millisecond}
	assert.Equal(t, 200*time.Millisecond, nextDelay(100*time.Millisecond, cfg))
	assert.Equal(t, 300*time.Millisecond, nextDelay(200*time.Millisecond, cfg))
}

func TestQuickConfig(t *testing.T) {
	assert.Equal(t, 1, QuickConfig(0).MaxAttempts)
	assert.Equal(t, 4, QuickConfig(4).MaxAttempts)
	assert.Zero(t, QuickConfig(4).MaxTotalTimeout)
}
