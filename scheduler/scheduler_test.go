package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/bibliocommons/self-refreshing-cache/logger"
)

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "debug", Encoding: "console"})
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return log
}

func newTestPool(t *testing.T, cfg *Config) *Pool {
	t.Helper()
	p, err := NewStarted(testLogger(t), cfg)
	if err != nil {
		t.Fatalf("failed to create scheduler: %v", err)
	}
	t.Cleanup(p.Shutdown)
	return p
}

// countTask counts its executions
type countTask struct {
	name string
	runs atomic.Int32
}

func (c *countTask) Name() string { return c.name }
func (c *countTask) Run()         { c.runs.Add(1) }

// funcTask runs an arbitrary function
type funcTask struct {
	name string
	fn   func()
}

func (f *funcTask) Name() string { return f.name }
func (f *funcTask) Run()         { f.fn() }

// waitFor polls cond until it holds or the deadline passes
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

// ============ Config ============

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"valid", &Config{PoolSize: 4, QueueCapacity: 16}, false},
		{"zero pool size", &Config{QueueCapacity: 16}, true},
		{"negative pool size", &Config{PoolSize: -1, QueueCapacity: 16}, true},
		{"zero queue capacity", &Config{PoolSize: 4}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig_PoolSizeEnvOverride(t *testing.T) {
	if got := DefaultConfig().PoolSize; got != defaultPoolSize {
		t.Errorf("default pool size = %d, want %d", got, defaultPoolSize)
	}

	t.Setenv(PoolSizeEnv, "3")
	if got := DefaultConfig().PoolSize; got != 3 {
		t.Errorf("pool size with env override = %d, want 3", got)
	}

	t.Setenv(PoolSizeEnv, "not-a-number")
	if got := DefaultConfig().PoolSize; got != defaultPoolSize {
		t.Errorf("pool size with bad env value = %d, want %d", got, defaultPoolSize)
	}
}

// ============ Scheduling ============

func TestPool_ScheduleOnce(t *testing.T) {
	p := newTestPool(t, nil)

	task := &countTask{name: "once"}
	if err := p.ScheduleOnce(task, 10*time.Millisecond); err != nil {
		t.Fatalf("ScheduleOnce failed: %v", err)
	}

	if !waitFor(t, time.Second, func() bool { return task.runs.Load() == 1 }) {
		t.Fatalf("task ran %d times, want 1", task.runs.Load())
	}

	// it must never fire again
	time.Sleep(100 * time.Millisecond)
	if n := task.runs.Load(); n != 1 {
		t.Errorf("one-shot task ran %d times", n)
	}
}

func TestPool_ScheduleOnce_ZeroDelay(t *testing.T) {
	p := newTestPool(t, nil)

	task := &countTask{name: "immediate"}
	if err := p.ScheduleOnce(task, 0); err != nil {
		t.Fatalf("ScheduleOnce failed: %v", err)
	}

	if !waitFor(t, time.Second, func() bool { return task.runs.Load() == 1 }) {
		t.Error("zero-delay task never ran")
	}
}

func TestPool_ScheduleRepeating(t *testing.T) {
	p := newTestPool(t, nil)

	task := &countTask{name: "repeating"}
	if err := p.ScheduleRepeating(task, 10*time.Millisecond, 25*time.Millisecond); err != nil {
		t.Fatalf("ScheduleRepeating failed: %v", err)
	}

	if !waitFor(t, 2*time.Second, func() bool { return task.runs.Load() >= 3 }) {
		t.Errorf("repeating task ran %d times, want >= 3", task.runs.Load())
	}
}

func TestPool_ScheduleInvalidInput(t *testing.T) {
	p := newTestPool(t, nil)

	if err := p.ScheduleOnce(nil, time.Second); err != ErrNilTask {
		t.Errorf("nil task: got %v, want ErrNilTask", err)
	}
	if err := p.ScheduleOnce(&countTask{name: "t"}, -time.Second); err == nil {
		t.Error("negative delay: expected error")
	}
	if err := p.ScheduleRepeating(&countTask{name: "t"}, 0, 0); err == nil {
		t.Error("zero interval: expected error")
	}
	if err := p.ScheduleRepeating(&countTask{name: "t"}, -time.Second, time.Second); err == nil {
		t.Error("negative initial delay: expected error")
	}
}

// ============ Worker pool ============

func TestPool_BoundedConcurrency(t *testing.T) {
	const poolSize = 2
	p := newTestPool(t, &Config{PoolSize: poolSize})

	var running, peak atomic.Int32
	block := make(chan struct{})
	for i := 0; i < 6; i++ {
		task := &funcTask{name: "blocker", fn: func() {
			n := running.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			<-block
			running.Add(-1)
		}}
		if err := p.ScheduleOnce(task, 5*time.Millisecond); err != nil {
			t.Fatalf("ScheduleOnce failed: %v", err)
		}
	}

	waitFor(t, time.Second, func() bool { return running.Load() == poolSize })
	time.Sleep(50 * time.Millisecond)
	close(block)

	if got := peak.Load(); got > poolSize {
		t.Errorf("observed %d concurrent tasks, pool size is %d", got, poolSize)
	}
}

func TestPool_TaskPanicDoesNotKillWorkers(t *testing.T) {
	p := newTestPool(t, &Config{PoolSize: 1})

	panicking := &funcTask{name: "panics", fn: func() { panic("boom") }}
	if err := p.ScheduleOnce(panicking, 5*time.Millisecond); err != nil {
		t.Fatalf("ScheduleOnce failed: %v", err)
	}

	task := &countTask{name: "survivor"}
	if err := p.ScheduleOnce(task, 20*time.Millisecond); err != nil {
		t.Fatalf("ScheduleOnce failed: %v", err)
	}

	if !waitFor(t, time.Second, func() bool { return task.runs.Load() == 1 }) {
		t.Error("worker did not survive a panicking task")
	}
}

// ============ Shutdown ============

func TestPool_Shutdown(t *testing.T) {
	p, err := NewStarted(testLogger(t), nil)
	if err != nil {
		t.Fatalf("failed to create scheduler: %v", err)
	}

	task := &countTask{name: "periodic"}
	if err := p.ScheduleRepeating(task, 5*time.Millisecond, 20*time.Millisecond); err != nil {
		t.Fatalf("ScheduleRepeating failed: %v", err)
	}
	waitFor(t, time.Second, func() bool { return task.runs.Load() >= 1 })

	p.Shutdown()
	// safe to call again
	p.Shutdown()

	if err := p.ScheduleOnce(&countTask{name: "late"}, time.Millisecond); err != ErrSchedulerClosed {
		t.Errorf("schedule after shutdown: got %v, want ErrSchedulerClosed", err)
	}

	runs := task.runs.Load()
	time.Sleep(100 * time.Millisecond)
	if n := task.runs.Load(); n != runs {
		t.Errorf("task ran %d more times after shutdown", n-runs)
	}
}

// ============ Process-wide default ============

func TestDefault_SharedInstance(t *testing.T) {
	// isolate from other tests touching the process-wide scheduler
	prev := Default()
	defer SetDefault(prev)

	p := newTestPool(t, &Config{PoolSize: 1})
	SetDefault(p)

	if Default() != Scheduler(p) {
		t.Error("Default did not return the injected scheduler")
	}
}
