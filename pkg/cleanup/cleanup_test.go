package cleanup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePruner struct {
	mu      sync.Mutex
	cutoffs []time.Time
	removed int64
	err     error
}

func (f *fakePruner) PruneBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, cutoff)
	return f.removed, f.err
}

func (f *fakePruner) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cutoffs)
}

func TestSweepUsesRetentionCutoff(t *testing.T) {
	pruner := &fakePruner{removed: 3}
	svc := NewService(pruner, time.Hour, 30*24*time.Hour)

	before := time.Now().UTC().Add(-30 * 24 * time.Hour)
	svc.sweep()

	require.Equal(t, 1, pruner.calls())
	cutoff := pruner.cutoffs[0]
	assert.False(t, cutoff.Before(before))
	assert.True(t, cutoff.Before(time.Now().UTC().Add(-30*24*time.Hour+time.Minute)))
}

func TestSweepSurvivesPrunerError(t *testing.T) {
	pruner := &fakePruner{err: errors.New("connection refused")}
	svc := NewService(pruner, time.Hour, time.Hour)

	assert.NotPanics(t, svc.sweep)
	assert.Equal(t, 1, pruner.calls())
}

func TestStartSweepsImmediatelyAndStops(t *testing.T) {
	pruner := &fakePruner{}
	svc := NewService(pruner, time.Hour, time.Hour)

	done := make(chan struct{})
	go func() {
		svc.Start()
		close(done)
	}()

	require.Eventually(t, func() bool { return pruner.calls() >= 1 }, time.Second, 10*time.Millisecond)

	svc.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("service did not stop")
	}
}
