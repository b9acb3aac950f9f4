package executor

import (
	"context"
	"log"
	"sync"
)

// PoolConfig represents pool executor configuration.
type PoolConfig struct {
	// WorkerCount is the number of worker goroutines consuming the inbox.
	WorkerCount int

	// InboxSize is the buffer of the scheduling channel. Schedule blocks
	// once the buffer is full and every worker is busy.
	InboxSize int
}

// DefaultPoolConfig returns the default pool configuration.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		WorkerCount: 5,
		InboxSize:   100,
	}
}

// Pool is a fixed-size worker pool implementation of Service. Unlike
// GoExecutor it pins scheduled work to a bounded set of goroutines, which
// callers may prefer when tasks are CPU heavy.
type Pool struct {
	config   PoolConfig
	inbox    chan func()
	workerWg sync.WaitGroup

	mu       sync.Mutex
	cancelFn context.CancelFunc
	started  bool
	stopped  bool
}

type poolWorker struct {
	id   int
	pool *Pool
	ctx  context.Context
}

// NewPool creates a pool executor with the supplied configuration.
func NewPool(config PoolConfig) *Pool {
	if config.WorkerCount <= 0 {
		config.WorkerCount = DefaultPoolConfig().WorkerCount
	}
	if config.InboxSize <= 0 {
		config.InboxSize = DefaultPoolConfig().InboxSize
	}
	return &Pool{
		config: config,
		inbox:  make(chan func(), config.InboxSize),
	}
}

// Start launches the worker goroutines. Subsequent calls are no-ops.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true
	workerCtx, cancel := context.WithCancel(ctx)
	p.cancelFn = cancel
	for i := 0; i < p.config.WorkerCount; i++ {
		worker := &poolWorker{id: i, pool: p, ctx: workerCtx}
		p.workerWg.Add(1)
		go worker.run()
	}
}

// Schedule hands fn to the pool. It blocks when the inbox is full. Schedule
// must not be called after Shutdown.
func (p *Pool) Schedule(fn func()) {
	p.inbox <- fn
}

// Shutdown stops the workers after the inbox drains. It blocks until every
// worker goroutine has returned. Subsequent calls are no-ops.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if !p.started || p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	p.mu.Unlock()

	close(p.inbox)
	p.workerWg.Wait()
	p.cancelFn()
}

func (w *poolWorker) run() {
	defer w.pool.workerWg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case fn, ok := <-w.pool.inbox:
			if !ok {
				return
			}
			w.invoke(fn)
		}
	}
}

func (w *poolWorker) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("executor: worker %d recovered from panic: %v", w.id, r)
		}
	}()
	fn()
}

var _ Service = (*Pool)(nil)
