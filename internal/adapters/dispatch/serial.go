// Package dispatch provides a serial execution context for UI callbacks.
package dispatch

import "sync"

// Serial runs dispatched functions one at a time, in dispatch order, on a single
// goroutine. It implements ports.Dispatcher and ports.Flusher.
type Serial struct {
	mu     sync.Mutex
	queue  []func()
	closed bool
	wake   chan struct{}
	done   chan struct{}
}

// NewSerial starts a Serial dispatcher. Call Close to stop it.
func NewSerial() *Serial {
	s := &Serial{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go s.loop()
	return s
}

// Dispatch queues fn without waiting for it to run. Functions dispatched after
// Close are dropped.
func (s *Serial) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, fn)
	s.mu.Unlock()
	s.signal()
}

// Flush blocks until every function dispatched before the call has run.
func (s *Serial) Flush() {
	ch := make(chan struct{})
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.queue = append(s.queue, func() { close(ch) })
	s.mu.Unlock()
	s.signal()
	<-ch
}

// Close runs what is already queued, then stops the loop.
func (s *Serial) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.signal()
	<-s.done
}

func (s *Serial) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Serial) loop() {
	defer close(s.done)
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return
			}
			<-s.wake
			continue
		}
		fn := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.mu.Unlock()

		fn()
	}
}
