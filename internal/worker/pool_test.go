package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type testJob struct {
	executed *int32
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return nil
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(TestWorkerCount, TestQueueSize)
	pool.Start()

	job := &testJob{executed: &executed}
	pool.Enqueue(job)
	pool.Enqueue(job)

	// Wait a bit for workers to process
	time.Sleep(TestWorkerProcessWaitTime * time.Millisecond)

	pool.Stop()

	if atomic.LoadInt32(&executed) != TestExpectedJobCount {
		t.Errorf("Expected %d jobs executed, got %d", TestExpectedJobCount, executed)
	}
}

func TestPool_TryEnqueue(t *testing.T) {
	// No workers started: the queue fills and TryEnqueue must not block.
	pool := NewPool(0, 1)

	var executed int32
	job := &testJob{executed: &executed}

	if !pool.TryEnqueue(job) {
		t.Error("expected first TryEnqueue to succeed")
	}
	if pool.TryEnqueue(job) {
		t.Error("expected TryEnqueue on a full queue to fail")
	}
}
