package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingTask struct {
	runs      atomic.Int32
	interval  time.Duration
	onStart   bool
	returnErr error
}

func (c *countingTask) Run(ctx context.Context) error {
	c.runs.Add(1)
	return c.returnErr
}

func (c *countingTask) Interval() time.Duration { return c.interval }
func (c *countingTask) Name() string            { return "counting" }

type startupTask struct {
	countingTask
}

func (s *startupTask) RunOnStart() bool { return s.onStart }

func TestScheduler_RunsOnInterval(t *testing.T) {
	task := &countingTask{interval: 20 * time.Millisecond}
	s := New(context.Background())
	s.AddTask(task)

	s.Start()
	time.Sleep(110 * time.Millisecond)
	s.Stop()

	assert.GreaterOrEqual(t, task.runs.Load(), int32(3))
}

func TestScheduler_NoRunBeforeFirstInterval(t *testing.T) {
	task := &countingTask{interval: time.Hour}
	s := New(context.Background())
	s.AddTask(task)

	s.Start()
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(0), task.runs.Load())
}

func TestScheduler_RunOnStart(t *testing.T) {
	task := &startupTask{countingTask{interval: time.Hour, onStart: true}}
	s := New(context.Background())
	s.AddTask(task)

	s.Start()
	assert.Eventually(t, func() bool { return task.runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	s.Stop()
}

func TestScheduler_NoRunsAfterStop(t *testing.T) {
	task := &countingTask{interval: 10 * time.Millisecond}
	s := New(context.Background())
	s.AddTask(task)

	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Stop()
	runs := task.runs.Load()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, runs, task.runs.Load())
}

func TestScheduler_StopIdempotent(t *testing.T) {
	s := New(context.Background())
	s.AddTask(&countingTask{interval: time.Hour})
	s.Start()

	assert.NotPanics(t, func() {
		s.Stop()
		s.Stop()
	})
}

func TestScheduler_TaskErrorKeepsRunning(t *testing.T) {
	task := &countingTask{interval: 10 * time.Millisecond, returnErr: assert.AnError}
	s := New(context.Background())
	s.AddTask(task)

	s.Start()
	time.Sleep(60 * time.Millisecond)
	s.Stop()

	assert.GreaterOrEqual(t, task.runs.Load(), int32(2))
}
