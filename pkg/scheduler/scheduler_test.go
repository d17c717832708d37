package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/tripscope/pkg/scheduler/mocks"
)

func TestNewScheduler_Defaults(t *testing.T) {
	s := NewScheduler(&mocks.SessionCleanerMock{}, nil, Config{})
	assert.Equal(t, 24*time.Hour, s.sessionTTL)
	assert.Equal(t, time.Hour, s.cleanupInterval)
}

func TestScheduler_StartStop(t *testing.T) {
	cleaner := &mocks.SessionCleanerMock{
		DeleteSessionsBeforeFunc: func(context.Context, time.Time) (int64, error) { return 2, nil },
	}
	warmer := &mocks.WarmerMock{
		WarmFunc: func(_ context.Context, texts []string) (int, error) { return len(texts), nil },
	}

	s := NewScheduler(cleaner, warmer, Config{
		Examples:        []string{"take it slow", "pack the schedule"},
		SessionTTL:      2 * time.Hour,
		CleanupInterval: 20 * time.Millisecond,
	})
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Start(context.Background())
	require.Eventually(t, func() bool { return len(cleaner.DeleteSessionsBeforeCalls()) >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	calls := cleaner.DeleteSessionsBeforeCalls()
	assert.Equal(t, now.Add(-2*time.Hour), calls[0].Before)

	require.Len(t, warmer.WarmCalls(), 1)
	assert.Equal(t, []string{"take it slow", "pack the schedule"}, warmer.WarmCalls()[0].Texts)

	// no more calls after stop
	n := len(cleaner.DeleteSessionsBeforeCalls())
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, cleaner.DeleteSessionsBeforeCalls(), n)
}

func TestScheduler_NoWarmup(t *testing.T) {
	cleaner := &mocks.SessionCleanerMock{
		DeleteSessionsBeforeFunc: func(context.Context, time.Time) (int64, error) { return 0, nil },
	}
	warmer := &mocks.WarmerMock{WarmFunc: func(context.Context, []string) (int, error) { return 0, nil }}

	s := NewScheduler(cleaner, warmer, Config{CleanupInterval: time.Hour})
	s.Start(context.Background())
	require.Eventually(t, func() bool { return len(cleaner.DeleteSessionsBeforeCalls()) == 1 }, time.Second, 5*time.Millisecond)
	s.Stop()
	assert.Empty(t, warmer.WarmCalls(), "nothing to warm without examples")

	s = NewScheduler(cleaner, nil, Config{Examples: []string{"a"}, CleanupInterval: time.Hour})
	s.Start(context.Background())
	s.Stop()
}

func TestScheduler_Failures(t *testing.T) {
	cleaner := &mocks.SessionCleanerMock{
		DeleteSessionsBeforeFunc: func(context.Context, time.Time) (int64, error) { return 0, errors.New("db locked") },
	}
	warmer := &mocks.WarmerMock{
		WarmFunc: func(context.Context, []string) (int, error) { return 0, errors.New("embedding service down") },
	}

	s := NewScheduler(cleaner, warmer, Config{Examples: []string{"a"}, CleanupInterval: 10 * time.Millisecond})
	s.Start(context.Background())
	require.Eventually(t, func() bool { return len(cleaner.DeleteSessionsBeforeCalls()) >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()
	assert.Len(t, warmer.WarmCalls(), 1, "warmup is not repeated")
}

func TestScheduler_StopOnContextCancel(t *testing.T) {
	cleaner := &mocks.SessionCleanerMock{
		DeleteSessionsBeforeFunc: func(context.Context, time.Time) (int64, error) { return 0, nil },
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(cleaner, nil, Config{CleanupInterval: time.Hour})
	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("workers not stopped on context cancel")
	}
}
