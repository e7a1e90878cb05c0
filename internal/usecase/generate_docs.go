package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/syntern/internal/domain"
	"github.com/runoshun/syntern/internal/usecase/shared"
)

// docCount is the number of onboarding documents every session gets.
const docCount = 4

// GenerateDocsInput contains the parameters for generating onboarding documents.
type GenerateDocsInput struct {
	Role    string
	Company string
}

// GenerateDocsOutput contains the generated documents.
type GenerateDocsOutput struct {
	Cause    error
	Docs     []domain.Document
	Fallback bool
}

// GenerateDocs is the use case for producing the onboarding documents.
type GenerateDocs struct {
	completer domain.Completer
	logger    domain.Logger
}

// NewGenerateDocs creates a new GenerateDocs use case.
func NewGenerateDocs(completer domain.Completer, logger domain.Logger) *GenerateDocs {
	return &GenerateDocs{
		completer: completer,
		logger:    logger,
	}
}

type docDTO struct {
	Title   string `json:"title" yaml:"title"`
	Content string `json:"content" yaml:"content"`
}

// Execute generates exactly four documents, falling back to the fixed set on any failure.
func (uc *GenerateDocs) Execute(ctx context.Context, in GenerateDocsInput) (*GenerateDocsOutput, error) {
	docs, err := uc.generate(ctx, in)
	if err == nil {
		return &GenerateDocsOutput{Docs: docs}, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	uc.logger.Warn("generate", fmt.Sprintf("doc generation failed, using fallback: %v", err))
	return &GenerateDocsOutput{
		Docs:     FallbackDocs(in.Role, in.Company),
		Fallback: true,
		Cause:    err,
	}, nil
}

func (uc *GenerateDocs) generate(ctx context.Context, in GenerateDocsInput) ([]domain.Document, error) {
	prompt, err := shared.RenderPrompt(docsTemplate, in)
	if err != nil {
		return nil, err
	}
	raw, err := uc.completer.Complete(ctx, docSystemPrompt, userTurn(prompt))
	if err != nil {
		return nil, fmt.Errorf("complete docs: %w", err)
	}
	dtos, err := shared.DecodeList[docDTO](raw)
	if err != nil {
		return nil, err
	}
	if len(dtos) < docCount {
		return nil, fmt.Errorf("%w: got %d documents, want %d", domain.ErrParse, len(dtos), docCount)
	}

	docs := make([]domain.Document, 0, docCount)
	for _, d := range dtos[:docCount] {
		title, content := strings.TrimSpace(d.Title), strings.TrimSpace(d.Content)
		if title == "" || content == "" {
			return nil, fmt.Errorf("%w: document with empty title or content", domain.ErrParse)
		}
		docs = append(docs, domain.Document{Title: title, Content: content})
	}
	return docs, nil
}

// FallbackDocs returns the fixed documents used when generation fails.
func FallbackDocs(role, company string) []domain.Document {
	return []domain.Document{
		{
			Title: "📋 Project Brief",
			Content: fmt.Sprintf("Welcome to %s!\n\nYour role: %s\n\nExpectations:\n"+
				"- Daily async standups in #general\n- Update your tasks on the board\n- Flag blockers BEFORE deadline\n\n"+
				"Good luck. We're watching. 👀", company, role),
		},
		{
			Title: "🗺️ Product Roadmap",
			Content: "Current Sprint:\nSprint 14 · Ends Friday\n\nBlockers:\n" +
				"- Key deliverable (assigned: YOU)\n- Review pending\n- Backlog growing",
		},
		{
			Title: "📐 Guidelines",
			Content: "Standards:\n- Quality work expected\n- Follow team processes\n- Ask questions when blocked\n\n" +
				"When Stuck:\n1. Check docs first\n2. Ask in #engineering\n3. DM Marcus only if urgent",
		},
		{
			Title: "🤝 Team Norms",
			Content: "Communication:\n- Slack response < 2h\n- Threads for long discussions\n\n" +
				"Red Flags:\n❌ Going silent for > 3 hours\n❌ Missing standup without notice",
		},
	}
}
