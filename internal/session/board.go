package session

import (
	"fmt"

	"github.com/runoshun/syntern/internal/domain"
)

// Board holds the intern's tasks. It is guarded by the owning Session's lock.
type Board struct {
	tasks  []domain.Task
	nextID int64
}

// NewBoard creates a Board whose IDs start at seed.
func NewBoard(seed int64) *Board {
	return &Board{nextID: seed}
}

// Add assigns IDs to tasks and appends them. Existing tasks are kept.
func (b *Board) Add(tasks []domain.Task) []domain.Task {
	added := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		t.ID = b.nextID
		b.nextID++
		if t.Status == "" {
			t.Status = domain.StatusTodo
		}
		b.tasks = append(b.tasks, t)
		added = append(added, t)
	}
	return added
}

// Get returns the task with id.
func (b *Board) Get(id int64) (domain.Task, error) {
	for _, t := range b.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Task{}, fmt.Errorf("task %d: %w", id, domain.ErrTaskNotFound)
}

// SetStatus moves a task to status when the transition is allowed.
func (b *Board) SetStatus(id int64, status domain.Status) (domain.Task, error) {
	for i := range b.tasks {
		if b.tasks[i].ID != id {
			continue
		}
		if err := b.tasks[i].CheckTransition(status); err != nil {
			return b.tasks[i], fmt.Errorf("task %d: %w", id, err)
		}
		b.tasks[i].Status = status
		return b.tasks[i], nil
	}
	return domain.Task{}, fmt.Errorf("task %d: %w", id, domain.ErrTaskNotFound)
}

// Tasks returns a copy of the board.
func (b *Board) Tasks() []domain.Task {
	return append([]domain.Task(nil), b.tasks...)
}

// AllDone reports whether the board is non-empty and fully done.
func (b *Board) AllDone() bool {
	return domain.AllDone(b.tasks)
}

// Completed returns the titles of done tasks.
func (b *Board) Completed() []string {
	return domain.CompletedTitles(b.tasks)
}

// DoneCount returns the number of done tasks.
func (b *Board) DoneCount() int {
	return len(b.Completed())
}
