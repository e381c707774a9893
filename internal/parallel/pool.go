// Package parallel runs per-vertex pipeline stages across a fixed set of
// worker goroutines.
package parallel

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned when work is submitted to a closed pool.
var ErrClosed = errors.New("parallel: pool is closed")

// WorkerPool is a pool of goroutines that executes batches of work.
//
// Each worker owns a queue and steals from the other queues once its own is
// empty, so a slow chunk does not leave the rest of the pool idle.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.workQueues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case work := <-own:
			work()
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case work := <-own:
				work()
			}
		}
	}
}

func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

func (p *WorkerPool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll distributes work round-robin across the workers and waits for
// every item to finish. Items that cannot be queued because the pool is
// shutting down run on the calling goroutine.
func (p *WorkerPool) ExecuteAll(work []func()) error {
	if len(work) == 0 {
		return nil
	}
	if !p.running.Load() {
		return ErrClosed
	}

	var wg sync.WaitGroup
	wg.Add(len(work))
	for i, fn := range work {
		wrapped := func() {
			defer wg.Done()
			fn()
		}
		select {
		case p.workQueues[i%p.workers] <- wrapped:
		case <-p.done:
			wrapped()
		}
	}
	wg.Wait()
	return nil
}

// Range splits [0, n) into contiguous chunks of at least grain items and calls
// fn once per chunk. The first error returned by any chunk is reported after
// every chunk has finished. When n is at most grain, fn runs inline.
func (p *WorkerPool) Range(n, grain int, fn func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	grain = max(grain, 1)
	if n <= grain || p.workers == 1 {
		return fn(0, n)
	}

	chunks := min(p.workers, (n+grain-1)/grain)
	size := (n + chunks - 1) / chunks

	var (
		once     sync.Once
		firstErr error
	)
	work := make([]func(), 0, chunks)
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		work = append(work, func() {
			if err := fn(lo, hi); err != nil {
				once.Do(func() { firstErr = err })
			}
		})
	}
	if err := p.ExecuteAll(work); err != nil {
		return err
	}
	return firstErr
}

// Close stops the pool after the queued work has run.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
