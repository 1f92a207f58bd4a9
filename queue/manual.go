package queue

import (
	"sync"
	"time"
)

// Manual is a Dispatcher that only runs tasks when asked to. Tests use it to
// step through interleavings of UI-queue work deterministically.
type Manual struct {
	mu      sync.Mutex
	pending []func()
	signal  chan struct{}
}

// NewManual returns an empty manual queue.
func NewManual() *Manual {
	return &Manual{signal: make(chan struct{}, 1)}
}

// Dispatch enqueues a task. It is safe to call from any goroutine.
func (m *Manual) Dispatch(task func()) {
	m.mu.Lock()
	m.pending = append(m.pending, task)
	m.mu.Unlock()

	select {
	case m.signal <- struct{}{}:
	default:
	}
}

// Len reports the number of queued tasks.
func (m *Manual) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Drain runs queued tasks, including ones dispatched while draining, until
// the queue is empty. It returns the number of tasks run.
func (m *Manual) Drain() int {
	var n int
	for {
		m.mu.Lock()
		if len(m.pending) == 0 {
			m.mu.Unlock()
			return n
		}
		task := m.pending[0]
		m.pending = m.pending[1:]
		m.mu.Unlock()

		task()
		n++
	}
}

// DrainUntil keeps draining, waiting for tasks dispatched from other
// goroutines, until cond holds or the timeout elapses. It reports whether
// cond was satisfied.
func (m *Manual) DrainUntil(cond func() bool, timeout time.Duration) bool {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		m.Drain()
		if cond() {
			return true
		}

		select {
		case <-m.signal:
		case <-deadline.C:
			m.Drain()
			return cond()
		}
	}
}
