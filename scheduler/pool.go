package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/bibliocommons/self-refreshing-cache/logger"
	"github.com/bibliocommons/self-refreshing-cache/routine"
	"github.com/robfig/cron/v3"
	"github.com/smallnest/chanx"
	"go.uber.org/zap"
)

// Pool is the default Scheduler implementation: a robfig/cron timer
// loop that enqueues due tasks onto an unbounded channel drained by a
// fixed set of workers.
type Pool struct {
	config *Config
	logger logger.Logger

	cron   *cron.Cron
	queue  *chanx.UnboundedChan[Task]
	runner routine.Runner

	cancel  context.CancelFunc
	started atomic.Bool
	closed  atomic.Bool
}

// newPool creates an unstarted pool
func newPool(log logger.Logger, cfg *Config) (*Pool, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		defaultCfg := DefaultConfig()
		if cfg.PoolSize == 0 {
			cfg.PoolSize = defaultCfg.PoolSize
		}
		if cfg.QueueCapacity == 0 {
			cfg.QueueCapacity = defaultCfg.QueueCapacity
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.Nop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		config: cfg,
		logger: log,
		cron:   cron.New(),
		queue:  chanx.NewUnboundedChan[Task](ctx, cfg.QueueCapacity),
		runner: routine.New(log),
		cancel: cancel,
	}, nil
}

// Start begins the timer loop and the worker goroutines.
// It can be called multiple times safely.
func (p *Pool) Start() {
	if !p.started.CompareAndSwap(false, true) {
		return
	}

	for i := 0; i < p.config.PoolSize; i++ {
		p.runner.GoNamed(fmt.Sprintf("scheduler-worker-%d", i), p.workerLoop)
	}
	p.cron.Start()

	p.logger.Info("scheduler started",
		zap.Int("pool_size", p.config.PoolSize),
	)
}

// ScheduleOnce runs the task a single time after the given delay
func (p *Pool) ScheduleOnce(task Task, delay time.Duration) error {
	if task == nil {
		return ErrNilTask
	}
	if delay < 0 {
		return ErrInvalidDelay(delay)
	}
	if p.closed.Load() {
		return ErrSchedulerClosed
	}

	p.cron.Schedule(onceAfter(max(delay, minSchedulingDelay)), p.enqueue(task))

	p.logger.Debug("one-shot task scheduled",
		zap.String("task", task.Name()),
		zap.Duration("delay", delay),
	)
	return nil
}

// ScheduleRepeating runs the task after initialDelay and then every interval
func (p *Pool) ScheduleRepeating(task Task, initialDelay, interval time.Duration) error {
	if task == nil {
		return ErrNilTask
	}
	if initialDelay < 0 {
		return ErrInvalidDelay(initialDelay)
	}
	if interval <= 0 {
		return ErrInvalidInterval(interval)
	}
	if p.closed.Load() {
		return ErrSchedulerClosed
	}

	p.cron.Schedule(repeatingAfter(max(initialDelay, minSchedulingDelay), interval), p.enqueue(task))

	p.logger.Debug("repeating task scheduled",
		zap.String("task", task.Name()),
		zap.Duration("initial_delay", initialDelay),
		zap.Duration("interval", interval),
	)
	return nil
}

// Shutdown stops the timer loop, drops pending queued work, and waits
// for in-flight tasks to finish. It can be called multiple times safely.
func (p *Pool) Shutdown() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}

	p.logger.Info("scheduler shutting down")

	// Stop firing new activations and wait for in-flight enqueues
	ctx := p.cron.Stop()
	<-ctx.Done()

	// No producer remains; close the queue so workers drain and exit.
	// Workers observe the closed flag and skip anything still queued.
	close(p.queue.In)
	p.runner.Wait()
	p.cancel()

	p.logger.Info("scheduler shutdown complete")
}

// enqueue wraps a task as a cron.Job that hands it to the worker queue
func (p *Pool) enqueue(task Task) cron.Job {
	return enqueueJob{pool: p, task: task}
}

type enqueueJob struct {
	pool *Pool
	task Task
}

// Run implements cron.Job. It executes on the cron timer goroutine's
// job goroutine, so it must only hand off, never do the work itself.
func (j enqueueJob) Run() {
	if j.pool.closed.Load() {
		return
	}
	j.pool.queue.In <- j.task
}

// workerLoop drains the queue until it is closed
func (p *Pool) workerLoop() {
	for task := range p.queue.Out {
		if p.closed.Load() {
			// shutdown drops work that has not started
			continue
		}
		p.runTask(task)
	}
}

// runTask executes a single task, recovering panics so one bad task
// cannot take a worker down
func (p *Pool) runTask(task Task) {
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Error("scheduled task panicked",
				zap.String("task", task.Name()),
				zap.Any("panic", rec),
				zap.String("stack", string(debug.Stack())),
			)
		}
	}()

	task.Run()
}

// Compile-time check: Pool implements the Scheduler interface
var _ Scheduler = (*Pool)(nil)
