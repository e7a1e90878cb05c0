package session

import (
	"sync"

	"github.com/runoshun/syntern/internal/domain"
)

// Store keeps the displayed messages and the completion history of every channel.
// A message and its turn are always appended together, so both stay the same length.
type Store struct {
	messages map[domain.Channel][]domain.Message
	turns    map[domain.Channel][]domain.Turn
	mu       sync.RWMutex
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		messages: make(map[domain.Channel][]domain.Message),
		turns:    make(map[domain.Channel][]domain.Turn),
	}
}

// Append records msg in its channel and returns it.
func (s *Store) Append(msg domain.Message) domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[msg.Channel] = append(s.messages[msg.Channel], msg)
	s.turns[msg.Channel] = append(s.turns[msg.Channel], msg.Turn())
	return msg
}

// Messages returns a copy of the channel's messages.
func (s *Store) Messages(ch domain.Channel) []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Message(nil), s.messages[ch]...)
}

// Turns returns a copy of the channel's completion history.
func (s *Store) Turns(ch domain.Channel) []domain.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Turn(nil), s.turns[ch]...)
}

// UserTexts returns everything the intern wrote, channel by channel.
func (s *Store) UserTexts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var texts []string
	for _, ch := range domain.AllChannels() {
		for _, m := range s.messages[ch] {
			if m.IsUser() {
				texts = append(texts, m.Text)
			}
		}
	}
	return texts
}

// Counts returns the number of persona messages per channel.
func (s *Store) Counts() map[domain.Channel]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[domain.Channel]int, len(s.messages))
	for ch, msgs := range s.messages {
		for _, m := range msgs {
			if !m.IsUser() {
				counts[ch]++
			}
		}
	}
	return counts
}
