// Package runtime holds the per-goroutine tick machinery: a microtask queue
// that drains once the current task unwinds.
package runtime

import (
	"sync"
)

type Runtime struct {
	mu sync.Mutex

	// nesting of Run calls, the queue drains when it drops back to 0
	depth int

	scheduler *Scheduler
	queue     *TaskQueue
}

func NewRuntime() *Runtime {
	return &Runtime{
		scheduler: NewScheduler(),
		queue:     NewTaskQueue(),
	}
}

// Schedule queues fn to run after the current task, preserving call order.
func (r *Runtime) Schedule(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.queue.Enqueue(fn)
	r.scheduler.Schedule()
}

// Run executes fn as a task. When the outermost Run returns, pending
// microtasks are drained.
// A panic in fn still drains the queue before it propagates.
func (r *Runtime) Run(fn func()) {
	r.depth++
	defer func() {
		r.depth--
		if r.depth == 0 {
			r.Flush()
		}
	}()

	fn()
}

func (r *Runtime) IsRunning() bool {
	return r.depth > 0
}

// Depth returns how many Run calls are on the stack.
func (r *Runtime) Depth() int {
	return r.depth
}

// Pending reports how many microtasks are waiting.
func (r *Runtime) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.queue.Len()
}

// Flush drains the microtask queue. Microtasks scheduled while draining run
// in the same flush. The first panic raised by a microtask is re-raised once
// the queue is empty.
func (r *Runtime) Flush() {
	var recovered any

	r.scheduler.Run(func() {
		for {
			r.mu.Lock()
			tasks := r.queue.Take()
			r.mu.Unlock()

			if len(tasks) == 0 {
				return
			}

			for _, task := range tasks {
				if p := runTask(task); p != nil && recovered == nil {
					recovered = p
				}
			}

			// tasks may have scheduled more work
			r.mu.Lock()
			r.scheduler.scheduled = false
			r.mu.Unlock()
		}
	})

	if recovered != nil {
		panic(recovered)
	}
}

// Ticks returns how many times the queue has been drained.
func (r *Runtime) Ticks() int {
	return r.scheduler.Time()
}

func runTask(task func()) (recovered any) {
	defer func() {
		recovered = recover()
	}()

	task()
	return nil
}
