// Package queue provides the single logical UI task queue on which all playback
// state transitions run.
//
// Coordinator and ad session state is owned by the queue, not guarded by
// mutexes: any callback that originates on another goroutine (network
// completion, player event pumps, tickers) must hand its work to a
// [Dispatcher] instead of touching that state directly.
package queue

import "sync"

// Dispatcher schedules a task on the UI queue. Tasks run one at a time, in
// dispatch order, never concurrently with each other.
type Dispatcher interface {
	Dispatch(task func())
}

// Serial is a Dispatcher backed by a dedicated goroutine. It is the queue used
// when no UI event loop is available (headless playback).
type Serial struct {
	mu      sync.Mutex
	pending []func()
	closed  bool

	wake chan struct{}
	done chan struct{}
	exit chan struct{}
	once sync.Once
}

// NewSerial starts a serial queue. Call Close to stop it.
func NewSerial() *Serial {
	s := &Serial{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
		exit: make(chan struct{}),
	}
	go s.loop()
	return s
}

// Dispatch enqueues a task. Tasks dispatched after Close are dropped.
// Dispatch never blocks, so tasks may dispatch further tasks.
func (s *Serial) Dispatch(task func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.pending = append(s.pending, task)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Close stops the queue and waits for the running task, if any, to return.
// Pending tasks are discarded. Close is idempotent.
func (s *Serial) Close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.pending = nil
		s.mu.Unlock()
		close(s.done)
		<-s.exit
	})
}

func (s *Serial) loop() {
	defer close(s.exit)

	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}

		for {
			s.mu.Lock()
			if s.closed || len(s.pending) == 0 {
				s.mu.Unlock()
				break
			}
			task := s.pending[0]
			s.pending = s.pending[1:]
			s.mu.Unlock()

			task()
		}
	}
}
