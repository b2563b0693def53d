package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalSchedulerRunsImmediately(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(time.Hour)
	fired := make(chan time.Time, 1)

	require.NoError(t, s.Start(context.Background(), func(trigger time.Time) {
		select {
		case fired <- trigger:
		default:
		}
	}))
	defer func() { _ = s.Stop(context.Background()) }()

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("job did not fire on start")
	}
}

func TestIntervalSchedulerStopIsIdempotent(t *testing.T) {
	t.Parallel()

	s := NewIntervalScheduler(time.Hour)
	require.NoError(t, s.Start(context.Background(), func(time.Time) {}))

	assert.NoError(t, s.Stop(context.Background()))
	assert.NoError(t, s.Stop(context.Background()))
}
