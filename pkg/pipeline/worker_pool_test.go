package pipeline

import (
	"sync/atomic"
	"testing"

	"github.com/dd0wney/lngnet/pkg/logging"
)

func TestWorkerPoolRunsAllTasks(t *testing.T) {
	pool := newWorkerPool(4, logging.NewNopLogger())

	var counter int64
	for i := 0; i < 100; i++ {
		if !pool.submit(func() {
			atomic.AddInt64(&counter, 1)
		}) {
			t.Fatal("Submit failed on open pool")
		}
	}
	pool.wait()

	if counter != 100 {
		t.Errorf("Expected 100 tasks to run, got %d", counter)
	}
}

func TestWorkerPoolRejectsAfterWait(t *testing.T) {
	pool := newWorkerPool(2, logging.NewNopLogger())
	pool.wait()

	if pool.submit(func() {}) {
		t.Error("Expected submit to fail on closed pool")
	}
}

func TestWorkerPoolRecoversFromPanic(t *testing.T) {
	pool := newWorkerPool(1, logging.NewNopLogger())

	var ran int64
	pool.submit(func() { panic("boom") })
	pool.submit(func() { atomic.AddInt64(&ran, 1) })
	pool.wait()

	if ran != 1 {
		t.Error("Expected pool to survive a panicking task")
	}
}

func TestWorkerPoolDefaultsToOneWorker(t *testing.T) {
	pool := newWorkerPool(0, logging.NewNopLogger())
	if pool.workers != 1 {
		t.Errorf("Expected 1 worker, got %d", pool.workers)
	}
	pool.wait()
}
