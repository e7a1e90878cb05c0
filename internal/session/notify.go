package session

import (
	"github.com/runoshun/syntern/internal/domain"
	"github.com/runoshun/syntern/internal/usecase/shared"
)

// previewRunes is how much of a message a notification shows.
const previewRunes = 70

// Notification is the toast shown for a new persona message.
type Notification struct {
	Persona domain.Persona `json:"persona"`
	Channel domain.Channel `json:"channel"`
	Preview string         `json:"preview"`
	Seq     int            `json:"seq"`
}

// Preview shortens text for a notification.
func Preview(text string) string {
	return shared.Truncate(text, previewRunes, "...")
}

// notifier tracks the current toast and the meeting invitation.
// It is guarded by the owning Session's lock.
type notifier struct {
	current *Notification
	meeting *domain.Meeting
	seq     int
	offered bool
}

// notify replaces the current toast and returns its sequence number.
func (n *notifier) notify(p domain.Persona, ch domain.Channel, text string) Notification {
	n.seq++
	note := Notification{Persona: p, Channel: ch, Preview: Preview(text), Seq: n.seq}
	n.current = &note
	return note
}

// expire clears the toast if it is still the one numbered seq.
func (n *notifier) expire(seq int) bool {
	if n.current == nil || n.current.Seq != seq {
		return false
	}
	n.current = nil
	return true
}

// offer makes the standup invitation pending. It happens at most once.
func (n *notifier) offer(m domain.Meeting) bool {
	if n.offered {
		return false
	}
	n.offered = true
	n.meeting = &m
	return true
}

// resolve clears the pending invitation.
func (n *notifier) resolve() error {
	if n.meeting == nil {
		return domain.ErrNoMeeting
	}
	n.meeting = nil
	return nil
}

func (n *notifier) clear() {
	n.current = nil
	n.meeting = nil
}
