package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/runoshun/syntern/internal/domain"
)

// Factory builds a session for a validated profile.
type Factory func(profile domain.Profile, bus *Bus) *Session

// Manager holds at most one session for surfaces that outlive it (the HTTP API).
// Its bus survives session replacement, so subscribers keep receiving events.
type Manager struct {
	factory Factory
	bus     *Bus
	current *Session
	logger  domain.Logger
	wg      sync.WaitGroup
	mu      sync.Mutex
}

// NewManager creates a Manager with no session (the Setup state).
func NewManager(factory Factory, logger domain.Logger) *Manager {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Manager{
		factory: factory,
		bus:     NewBus(),
		logger:  logger,
	}
}

// Bus returns the event bus shared by every session of this manager.
func (m *Manager) Bus() *Bus { return m.bus }

// Create validates the setup, creates a session and starts it in the background.
// The session is returned in the Initializing phase (or later).
func (m *Manager) Create(in domain.SetupInput) (*Session, error) {
	profile, err := domain.NewProfile(in)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current != nil {
		return nil, domain.ErrSessionExists
	}
	s := m.factory(profile, m.bus)
	if _, err := s.beginStart(); err != nil {
		return nil, err
	}
	m.current = s

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := s.completeStart(context.Background(), profile); err != nil {
			m.logger.Warn("session", fmt.Sprintf("start %s: %v", s.ID(), err))
		}
	}()
	return s, nil
}

// Current returns the session, or ErrNoSession when there is none.
func (m *Manager) Current() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil, domain.ErrNoSession
	}
	return m.current, nil
}

// Discard closes the current session and returns to Setup.
func (m *Manager) Discard() error {
	m.mu.Lock()
	s := m.current
	m.current = nil
	m.mu.Unlock()
	if s == nil {
		return domain.ErrNoSession
	}
	s.Close()
	m.bus.Publish(Event{Kind: EventPhase, SessionID: s.ID(), Phase: domain.PhaseSetup})
	return nil
}

// Shutdown closes the current session and waits for background starts to return.
func (m *Manager) Shutdown() {
	_ = m.Discard()
	m.wg.Wait()
}
