package pipeline

import (
	"fmt"
	"sync"

	"github.com/dd0wney/lngnet/pkg/logging"
)

// workerPool fans year jobs out over a bounded set of goroutines. The
// analysis window is short (a dozen years) so the pool is sized either to
// the configured worker count or to one worker per year.
type workerPool struct {
	workers   int
	taskQueue chan func()
	wg        sync.WaitGroup
	once      sync.Once
	log       logging.Logger

	mu     sync.RWMutex // protects taskQueue from close during send
	closed bool
}

func newWorkerPool(workers int, log logging.Logger) *workerPool {
	if workers <= 0 {
		workers = 1
	}

	pool := &workerPool{
		workers:   workers,
		taskQueue: make(chan func(), workers*2),
		log:       log,
	}

	for i := 0; i < pool.workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}
	return pool
}

func (p *workerPool) worker() {
	defer p.wg.Done()

	for task := range p.taskQueue {
		func() {
			defer func() {
				if r := recover(); r != nil {
					p.log.Error("year worker panic recovered",
						logging.Any("panic", fmt.Sprintf("%v", r)))
				}
			}()
			task()
		}()
	}
}

// submit queues a task. Returns false once the pool is closed.
func (p *workerPool) submit(task func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return false
	}
	p.taskQueue <- task
	return true
}

// wait closes the queue and blocks until every queued task has finished.
func (p *workerPool) wait() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.taskQueue)
		p.mu.Unlock()
	})
	p.wg.Wait()
}
