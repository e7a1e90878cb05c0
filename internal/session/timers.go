package session

import (
	"sync"
	"time"

	"github.com/runoshun/syntern/internal/domain"
)

// timerSet owns every scheduled callback of a session so they can be
// cancelled together. Once stopped, pending and future callbacks are no-ops.
type timerSet struct {
	clock  domain.Clock
	timers map[int]domain.Timer
	next   int
	mu     sync.Mutex
	closed bool
}

func newTimerSet(clock domain.Clock) *timerSet {
	return &timerSet{
		clock:  clock,
		timers: make(map[int]domain.Timer),
	}
}

// after runs fn once after d. Returns false if the set is already stopped.
func (s *timerSet) after(d time.Duration, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}

	s.next++
	id := s.next
	s.timers[id] = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		_, live := s.timers[id]
		delete(s.timers, id)
		closed := s.closed
		s.mu.Unlock()
		if !live || closed {
			return
		}
		fn()
	})
	return true
}

// every runs fn every d until the set is stopped.
func (s *timerSet) every(d time.Duration, fn func()) {
	var tick func()
	tick = func() {
		fn()
		s.after(d, tick)
	}
	s.after(d, tick)
}

// stop cancels all pending callbacks. Safe to call more than once.
func (s *timerSet) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

// pending returns the number of scheduled callbacks.
func (s *timerSet) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
