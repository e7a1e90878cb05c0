package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrService           = errors.New("completion service failed")
	ErrParse             = errors.New("unparseable model output")
	ErrInvalidURL        = errors.New("invalid repository URL")
	ErrNotFoundOrPrivate = errors.New("repo not found or is private")
	ErrUnreadable        = errors.New("repository could not be read")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidChannel    = errors.New("invalid channel")
	ErrInvalidPhase      = errors.New("operation not allowed in current phase")
	ErrTasksRemaining    = errors.New("tasks remaining on the board")
	ErrNoSubmission      = errors.New("task does not take a submission")
	ErrNoMeeting         = errors.New("no meeting pending")
	ErrEmptyMessage      = errors.New("message cannot be empty")
	ErrSessionClosed     = errors.New("session closed")
	ErrNoSession         = errors.New("no session")
	ErrSessionExists     = errors.New("session already exists")
	ErrConfigExists      = errors.New("config file already exists")
)

// ServiceError describes a failed call to a completion provider.
type ServiceError struct {
	Err        error
	Provider   string
	StatusCode int
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

// Unwrap lets errors.Is match both ErrService and the cause.
func (e *ServiceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrService}
	}
	return []error{ErrService, e.Err}
}
