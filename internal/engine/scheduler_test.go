package engine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

type countingBackup struct {
	n atomic.Int32
}

func (c *countingBackup) run(context.Context) bool {
	c.n.Add(1)
	return true
}

func TestSchedulerBacksUpOnStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	var c countingBackup
	s := NewScheduler(c.run, 0, time.Hour, nil)
	s.Start(context.Background())
	assert.Equal(t, int32(1), c.n.Load())

	s.Start(context.Background())
	assert.Equal(t, int32(1), c.n.Load())
	s.Stop()
	s.Stop()
}

func TestSchedulerStopRightAfterStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	var c countingBackup
	for i := 0; i < 2000; i++ {
		s := NewScheduler(c.run, 0, time.Hour, nil)
		s.Start(context.Background())
		s.Stop()
	}
	assert.Equal(t, int32(2000), c.n.Load())
}

func TestSchedulerDebouncesTouches(t *testing.T) {
	defer goleak.VerifyNone(t)

	var c countingBackup
	s := NewScheduler(c.run, 0, 30*time.Millisecond, nil)
	s.Start(context.Background())
	defer s.Stop()

	for i := 0; i < 5; i++ {
		s.Touch()
		time.Sleep(2 * time.Millisecond)
	}
	assert.Eventually(t, func() bool { return c.n.Load() == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(2), c.n.Load())
}

func TestSchedulerRunsOnInterval(t *testing.T) {
	defer goleak.VerifyNone(t)

	var c countingBackup
	s := NewScheduler(c.run, 10*time.Millisecond, time.Hour, nil)
	s.Start(context.Background())
	assert.Eventually(t, func() bool { return c.n.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()
}

func TestSchedulerStopDropsPendingDebounce(t *testing.T) {
	defer goleak.VerifyNone(t)

	var c countingBackup
	s := NewScheduler(c.run, 0, 50*time.Millisecond, nil)
	s.Start(context.Background())
	s.Touch()
	s.Stop()
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(1), c.n.Load())
}

func TestSchedulerExitsWhenContextEnds(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	var c countingBackup
	s := NewScheduler(c.run, time.Hour, time.Hour, nil)
	s.Start(ctx)
	cancel()
	s.Stop()
}
