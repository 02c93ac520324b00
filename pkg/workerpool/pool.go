// Package workerpool provides a bounded goroutine pool.
//
// The revalidation fan-out uses a Pool to cap how many page-cache clears are
// in flight at once, so a webhook naming a table with many mapped paths
// cannot open an unbounded number of connections to the frontend.
//
//	pool := workerpool.New(8)
//	defer pool.Shutdown()
//
//	for _, path := range paths {
//	    path := path
//	    pool.SubmitWait(func() { revalidate(path) })
//	}
package workerpool

import (
	"errors"
	"sync"
)

// ErrPoolFull is returned by Submit when all workers are busy and the task
// queue is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned by Submit after Shutdown has been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool is a bounded goroutine pool.
type Pool struct {
	tasks   chan func()
	wg      sync.WaitGroup
	once    sync.Once
	closeCh chan struct{}
}

// New creates a Pool with the given number of workers.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	p := &Pool{
		// Buffer equal to 2× the worker count so bursts can be absorbed.
		tasks:   make(chan func(), size*2),
		closeCh: make(chan struct{}),
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

// Submit enqueues task for execution without blocking.
//   - Returns ErrPoolFull if the task queue is at capacity.
//   - Returns ErrPoolClosed if Shutdown has been called.
func (p *Pool) Submit(task func()) error {
	select {
	case <-p.closeCh:
		return ErrPoolClosed
	default:
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait is like Submit but blocks until a slot is available or the pool
// is closed.
func (p *Pool) SubmitWait(task func()) error {
	select {
	case <-p.closeCh:
		return ErrPoolClosed
	case p.tasks <- task:
		return nil
	}
}

// Shutdown stops accepting new tasks, waits for all in-flight tasks to
// complete, and releases all worker goroutines. Safe to call multiple times.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.closeCh)
		close(p.tasks)
		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		safeRun(task)
	}
}

// safeRun executes task, recovering from panics so a bad task doesn't kill
// the worker goroutine.
func safeRun(task func()) {
	defer func() {
		_ = recover()
	}()
	task()
}
