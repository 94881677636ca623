package speech

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Pool runs background tasks with at most size running at once. Submitted
// tasks are never awaited by the submitter.
type Pool struct {
	sem    *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{sem: semaphore.NewWeighted(int64(size)), ctx: ctx, cancel: cancel}
}

// Submit queues task and returns immediately. Tasks submitted after
// Shutdown are dropped.
func (p *Pool) Submit(task func(ctx context.Context)) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		if err := p.sem.Acquire(p.ctx, 1); err != nil {
			return
		}
		defer p.sem.Release(1)
		task(p.ctx)
	}()
}

// Shutdown cancels running and queued tasks and waits for them to return,
// or for ctx to expire.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cancel()
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
