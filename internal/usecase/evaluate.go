package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/runoshun/syntern/internal/domain"
	"github.com/runoshun/syntern/internal/usecase/shared"
)

// EvaluateInput contains the session summary to evaluate.
type EvaluateInput struct {
	Summary domain.SessionSummary
}

// EvaluateOutput contains the parsed report.
type EvaluateOutput struct {
	Cause  error // Why the fallback report was used
	Report domain.Report
}

// Evaluate is the use case for scoring the intern at the end of a session.
type Evaluate struct {
	completer domain.Completer
	logger    domain.Logger
}

// NewEvaluate creates a new Evaluate use case.
func NewEvaluate(completer domain.Completer, logger domain.Logger) *Evaluate {
	return &Evaluate{
		completer: completer,
		logger:    logger,
	}
}

// Execute requests the evaluation once. Any failure yields the fallback report.
func (uc *Evaluate) Execute(ctx context.Context, in EvaluateInput) (*EvaluateOutput, error) {
	text, err := uc.complete(ctx, in.Summary)
	if err != nil {
		uc.logger.Warn("evaluate", fmt.Sprintf("evaluation failed, using fallback: %v", err))
		return &EvaluateOutput{Report: domain.FallbackReport(), Cause: err}, nil
	}

	report := domain.ParseReport(text)
	uc.logger.Info("evaluate", fmt.Sprintf("overall %.1f (%s)", report.Overall, report.Verdict.Label))
	return &EvaluateOutput{Report: report}, nil
}

func (uc *Evaluate) complete(ctx context.Context, summary domain.SessionSummary) (string, error) {
	prompt, err := shared.RenderPrompt(evaluationTemplate, summary)
	if err != nil {
		return "", err
	}
	text, err := uc.completer.Complete(ctx, evaluationSystemPrompt, userTurn(prompt))
	if err != nil {
		return "", fmt.Errorf("complete evaluation: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.Join(domain.ErrService, errors.New("empty evaluation"))
	}
	return text, nil
}
