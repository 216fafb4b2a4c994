// Package parallel provides a bounded worker pool for running
// independent solver subproblems. The pool applies backpressure:
// submitting blocks when every worker is busy and the queue is full,
// so a large search split cannot exhaust memory with queued work.
package parallel

import (
	"context"
	"runtime"
	"sync"
)

// Pool runs submitted tasks on a fixed set of worker goroutines.
type Pool struct {
	tasks   chan func()
	workers sync.WaitGroup
	pending sync.WaitGroup
	once    sync.Once
}

// NewPool starts a pool with the given number of workers. Zero or
// negative means one worker per CPU core.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &Pool{tasks: make(chan func(), workers*2)}
	for i := 0; i < workers; i++ {
		p.workers.Add(1)
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	defer p.workers.Done()
	for task := range p.tasks {
		task()
		p.pending.Done()
	}
}

// Submit queues a task, blocking under backpressure until a worker can
// take it or ctx is done. A task submitted successfully always runs.
func (p *Pool) Submit(ctx context.Context, task func()) error {
	p.pending.Add(1)
	select {
	case p.tasks <- task:
		return nil
	case <-ctx.Done():
		p.pending.Done()
		return ctx.Err()
	}
}

// Wait blocks until every submitted task has finished.
func (p *Pool) Wait() { p.pending.Wait() }

// Close shuts the pool down after the queued tasks drain. Submit must
// not be called after Close.
func (p *Pool) Close() {
	p.once.Do(func() { close(p.tasks) })
	p.workers.Wait()
}
