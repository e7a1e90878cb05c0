package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/syntern/internal/domain"
	"github.com/runoshun/syntern/internal/usecase/shared"
)

// GenerateTasksInput contains the parameters for generating a batch of tasks.
// Fields are ordered to minimize memory padding.
type GenerateTasksInput struct {
	Role      string
	Company   string
	Completed []string // Titles of finished tasks; non-empty requests a follow-up batch
	Minutes   int
}

// GenerateTasksOutput contains the generated batch.
// Tasks have no IDs; the session assigns them.
type GenerateTasksOutput struct {
	Cause    error // Why the fallback batch was used
	Tasks    []domain.Task
	Fallback bool
}

// GenerateTasks is the use case for producing role-specific tasks.
type GenerateTasks struct {
	completer domain.Completer
	logger    domain.Logger
}

// NewGenerateTasks creates a new GenerateTasks use case.
func NewGenerateTasks(completer domain.Completer, logger domain.Logger) *GenerateTasks {
	return &GenerateTasks{
		completer: completer,
		logger:    logger,
	}
}

type taskDTO struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Priority    string `json:"priority" yaml:"priority"`
	Deadline    string `json:"deadline" yaml:"deadline"`
	Type        string `json:"type" yaml:"type"`
}

// Execute generates tasks. Service and parse failures select the fallback batch;
// only context cancellation is returned as an error.
func (uc *GenerateTasks) Execute(ctx context.Context, in GenerateTasksInput) (*GenerateTasksOutput, error) {
	tasks, err := uc.generate(ctx, in)
	if err == nil {
		return &GenerateTasksOutput{Tasks: tasks}, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	uc.logger.Warn("generate", fmt.Sprintf("task generation failed, using fallback: %v", err))
	return &GenerateTasksOutput{
		Tasks:    FallbackTasks(in.Role, in.Company),
		Fallback: true,
		Cause:    err,
	}, nil
}

func (uc *GenerateTasks) generate(ctx context.Context, in GenerateTasksInput) ([]domain.Task, error) {
	prompt, err := shared.RenderPrompt(tasksTemplate, in)
	if err != nil {
		return nil, err
	}
	raw, err := uc.completer.Complete(ctx, taskSystemPrompt, userTurn(prompt))
	if err != nil {
		return nil, fmt.Errorf("complete tasks: %w", err)
	}
	dtos, err := shared.DecodeList[taskDTO](raw)
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(dtos))
	for _, d := range dtos {
		title := strings.TrimSpace(d.Title)
		if title == "" {
			continue
		}
		deadline := strings.TrimSpace(d.Deadline)
		if deadline == "" {
			deadline = "EOD"
		}
		tasks = append(tasks, domain.Task{
			Title:       title,
			Description: strings.TrimSpace(d.Description),
			Priority:    domain.ParsePriority(d.Priority),
			Deadline:    deadline,
			Kind:        domain.ParseTaskKind(d.Type),
			Status:      domain.StatusTodo,
		})
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("%w: no usable tasks", domain.ErrParse)
	}
	uc.logger.Debug("generate", fmt.Sprintf("generated %d tasks (follow-up=%t)", len(tasks), len(in.Completed) > 0))
	return tasks, nil
}

// FallbackTasks returns the fixed batch used when generation fails.
func FallbackTasks(role, company string) []domain.Task {
	return []domain.Task{
		{
			Title:       "Review advanced codebase",
			Description: fmt.Sprintf("Review the deeper architecture for your role as %s at %s.", role, company),
			Priority:    domain.PriorityHigh,
			Deadline:    "Today",
			Kind:        domain.KindTechnical,
			Status:      domain.StatusTodo,
		},
		{
			Title:       "Read company handbook",
			Description: "Go to the Docs panel and read the onboarding documents carefully.",
			Priority:    domain.PriorityHigh,
			Deadline:    "Today",
			Kind:        domain.KindAction,
			Status:      domain.StatusTodo,
		},
		{
			Title:       "Draft technical proposal",
			Description: "Write a short proposal for the next big feature we should build.",
			Priority:    domain.PriorityMed,
			Deadline:    "Tomorrow",
			Kind:        domain.KindNonTechnical,
			Status:      domain.StatusTodo,
		},
	}
}
