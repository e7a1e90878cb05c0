package tui

import (
	"github.com/runoshun/syntern/internal/domain"
	"github.com/runoshun/syntern/internal/session"
)

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgEvent carries a session event from the bus.
type MsgEvent struct {
	Event session.Event
}

func (MsgEvent) sealed() {}

// MsgSessionCreated is sent when the setup form was accepted.
type MsgSessionCreated struct {
	Session *session.Session
}

func (MsgSessionCreated) sealed() {}

// MsgSent is sent when a chat message (and its reply) went through.
type MsgSent struct {
	Channel domain.Channel
}

func (MsgSent) sealed() {}

// MsgSubmitted is sent when a submission was handed in.
type MsgSubmitted struct {
	TaskID int64
}

func (MsgSubmitted) sealed() {}

// MsgTasksAdded is sent when a follow-up batch arrived.
type MsgTasksAdded struct {
	Tasks []domain.Task
}

func (MsgTasksAdded) sealed() {}

// MsgReport is sent when the evaluation is ready.
type MsgReport struct {
	Report *domain.Report
}

func (MsgReport) sealed() {}

// MsgRoleHint rotates the role placeholder on the setup screen.
type MsgRoleHint struct {
	Index int
}

func (MsgRoleHint) sealed() {}

// MsgError is sent when an operation fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

// MsgClearError is sent to clear the error message.
type MsgClearError struct{}

func (MsgClearError) sealed() {}
