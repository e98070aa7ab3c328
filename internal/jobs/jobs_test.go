package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAddRejectsInvalidSchedule(t *testing.T) {
	s := NewScheduler(testLogger())
	err := s.Add(Job{Name: "bad", Schedule: "every now and then", Run: func(context.Context) error { return nil }})
	assert.Error(t, err)
}

func TestAddSkipsEmptySchedule(t *testing.T) {
	s := NewScheduler(testLogger())
	require.NoError(t, s.Add(Job{Name: "off", Run: func(context.Context) error { return nil }}))
	assert.Empty(t, s.cron.Entries())
}

func TestRunInvokesJob(t *testing.T) {
	s := NewScheduler(testLogger())
	calls := 0
	s.run(Job{Name: "count", Run: func(ctx context.Context) error {
		calls++
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return nil
	}})
	s.run(Job{Name: "fail", Run: func(context.Context) error { return errors.New("boom") }})
	assert.Equal(t, 1, calls)
}

func TestStopCancelsContext(t *testing.T) {
	s := NewScheduler(testLogger())
	require.NoError(t, s.Add(Job{Name: "hourly", Schedule: "@hourly", Run: func(context.Context) error { return nil }}))
	assert.Len(t, s.cron.Entries(), 1)
	s.Start()
	s.Stop()
	assert.Error(t, s.ctx.Err())
}
