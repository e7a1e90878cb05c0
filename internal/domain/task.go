package domain

import (
	"fmt"
	"strings"
)

// Priority is the urgency of a task.
type Priority string

// Priorities.
const (
	PriorityHigh Priority = "HIGH"
	PriorityMed  Priority = "MED"
	PriorityLow  Priority = "LOW"
)

// ParsePriority normalizes a priority string; unknown values become MED.
func ParsePriority(s string) Priority {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HIGH":
		return PriorityHigh
	case "LOW":
		return PriorityLow
	default:
		return PriorityMed
	}
}

// TaskKind determines how a task is submitted.
type TaskKind string

// Task kinds.
const (
	KindTechnical    TaskKind = "technical"     // Submitted as a repository URL, code-reviewed
	KindNonTechnical TaskKind = "non-technical" // Submitted as a document link, auto-approved
	KindAction       TaskKind = "action"        // No submission, moved manually
)

// ParseTaskKind normalizes a kind string; missing or unknown values become technical.
func ParseTaskKind(s string) TaskKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "non-technical", "nontechnical", "non_technical":
		return KindNonTechnical
	case "action":
		return KindAction
	default:
		return KindTechnical
	}
}

// AcceptsSubmission returns true if work of this kind is handed in through a link.
func (k TaskKind) AcceptsSubmission() bool {
	return k == KindTechnical || k == KindNonTechnical
}

// SubmissionHint returns the placeholder shown in the submission input.
func (k TaskKind) SubmissionHint() string {
	switch k {
	case KindTechnical:
		return "GitHub repo URL"
	case KindNonTechnical:
		return "Google Docs or link"
	default:
		return ""
	}
}

// Task is an assignment on the intern's board.
// Fields are ordered to minimize memory padding.
type Task struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Deadline    string   `json:"deadline"`
	Priority    Priority `json:"priority"`
	Kind        TaskKind `json:"type"`
	Status      Status   `json:"status"`
	ID          int64    `json:"id"`
}

// CheckTransition validates a status change for this task.
// Action tasks never enter review.
func (t *Task) CheckTransition(target Status) error {
	if !target.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}
	if target == StatusReview && t.Kind == KindAction {
		return fmt.Errorf("%w: action tasks cannot be reviewed", ErrInvalidTransition)
	}
	if !t.Status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, t.Status, target)
	}
	return nil
}

// CanSubmit reports whether the task currently accepts a submission.
func (t *Task) CanSubmit() error {
	if !t.Kind.AcceptsSubmission() {
		return ErrNoSubmission
	}
	if t.Status.IsTerminal() {
		return fmt.Errorf("%w: task is already done", ErrInvalidTransition)
	}
	return nil
}

// AllDone returns true when the board is non-empty and every task is done.
func AllDone(tasks []Task) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if t.Status != StatusDone {
			return false
		}
	}
	return true
}

// CompletedTitles returns the titles of done tasks in board order.
func CompletedTitles(tasks []Task) []string {
	var titles []string
	for _, t := range tasks {
		if t.Status == StatusDone {
			titles = append(titles, t.Title)
		}
	}
	return titles
}

// Document is an onboarding document.
type Document struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
