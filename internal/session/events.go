package session

import (
	"sort"
	"sync"
	"time"

	"github.com/runoshun/syntern/internal/domain"
)

// EventKind identifies what changed.
type EventKind string

// Event kinds.
const (
	EventPhase        EventKind = "phase"
	EventMessage      EventKind = "message"
	EventNotification EventKind = "notification"
	EventMeeting      EventKind = "meeting"
	EventTasks        EventKind = "tasks"
	EventTyping       EventKind = "typing"
	EventTick         EventKind = "tick"
	EventReport       EventKind = "report"
)

// Event is published whenever session state changes.
// Surfaces re-read the session snapshot for anything beyond the payload.
// Fields are ordered to minimize memory padding.
type Event struct {
	Message   *domain.Message  `json:"message,omitempty"`
	SessionID string           `json:"session_id"`
	Kind      EventKind        `json:"kind"`
	Channel   domain.Channel   `json:"channel,omitempty"`
	Persona   domain.PersonaID `json:"persona,omitempty"`
	Phase     domain.Phase     `json:"phase,omitempty"`
	Remaining time.Duration    `json:"remaining,omitempty"`
}

// Bus is an in-process event fan-out.
// Handlers run on the publishing goroutine, after the session lock is released.
type Bus struct {
	handlers map[int]func(Event)
	next     int
	mu       sync.RWMutex
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[int]func(Event))}
}

// Subscribe registers handler and returns a function that removes it.
func (b *Bus) Subscribe(handler func(Event)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	id := b.next
	b.handlers[id] = handler

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.handlers, id)
		})
	}
}

// Publish delivers e to every subscriber in subscription order.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	ids := make([]int, 0, len(b.handlers))
	for id := range b.handlers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	handlers := make([]func(Event), 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, b.handlers[id])
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(e)
	}
}

// Len returns the number of subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}
