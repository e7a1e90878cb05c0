package domain

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusTodo       Status = "todo"        // Created, not started
	StatusInProgress Status = "in_progress" // Intern working on it
	StatusReview     Status = "review"      // Submitted and reviewed, awaiting sign-off
	StatusDone       Status = "done"        // Finished
)

// AllStatuses returns all valid status values in board order.
func AllStatuses() []Status {
	return []Status{
		StatusTodo,
		StatusInProgress,
		StatusReview,
		StatusDone,
	}
}

// transitions defines the allowed manual status transitions.
// Flow: todo ⇄ in_progress ⇄ review → done
//
//	└──────────┴──────────────────┘ (any open state may be closed)
var transitions = map[Status][]Status{
	StatusTodo:       {StatusInProgress, StatusReview, StatusDone},
	StatusInProgress: {StatusTodo, StatusReview, StatusDone},
	StatusReview:     {StatusTodo, StatusInProgress, StatusDone},
	StatusDone:       {},
}

// CanTransitionTo returns true if the status can transition to the target status.
func (s Status) CanTransitionTo(target Status) bool {
	allowed, ok := transitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusDone
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusReview:
		return "In Review"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	default:
		return false
	}
}
