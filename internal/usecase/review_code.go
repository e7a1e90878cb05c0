package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/runoshun/syntern/internal/domain"
	"github.com/runoshun/syntern/internal/usecase/shared"
)

// ReviewCodeInput contains the parameters for reviewing a submission.
type ReviewCodeInput struct {
	RepoURL   string
	TaskTitle string
	Role      string
}

// ReviewCodeOutput contains the tech lead's review.
type ReviewCodeOutput struct {
	Repo   *domain.RepoSnapshot
	Review string
}

// ReviewCode is the use case for code-reviewing a technical submission.
// Fields are ordered to minimize memory padding.
type ReviewCode struct {
	repos        domain.RepoFetcher
	completer    domain.Completer
	logger       domain.Logger
	excerptBytes int
}

// NewReviewCode creates a new ReviewCode use case.
// excerptBytes caps how much of each file is quoted in the prompt.
func NewReviewCode(repos domain.RepoFetcher, completer domain.Completer, excerptBytes int, logger domain.Logger) *ReviewCode {
	if excerptBytes <= 0 {
		excerptBytes = domain.DefaultExcerptBytes
	}
	return &ReviewCode{
		repos:        repos,
		completer:    completer,
		excerptBytes: excerptBytes,
		logger:       logger,
	}
}

type reviewFile struct {
	Path    string
	Content string
}

type reviewData struct {
	Repo  *domain.RepoSnapshot
	Title string
	Files []reviewFile
}

// Execute fetches the repository and asks the tech lead for a review.
// There is no fallback; fetch and completion errors are returned.
func (uc *ReviewCode) Execute(ctx context.Context, in ReviewCodeInput) (*ReviewCodeOutput, error) {
	url := strings.TrimSpace(in.RepoURL)
	if url == "" {
		return nil, fmt.Errorf("%w: empty repository URL", domain.ErrValidation)
	}

	repo, err := uc.repos.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch repo: %w", err)
	}

	data := reviewData{Repo: repo, Title: in.TaskTitle}
	for _, path := range repo.Order {
		content, ok := repo.Files[path]
		if !ok {
			continue
		}
		data.Files = append(data.Files, reviewFile{
			Path:    path,
			Content: shared.TruncateBytes(content, uc.excerptBytes),
		})
	}

	prompt, err := shared.RenderPrompt(reviewTemplate, data)
	if err != nil {
		return nil, err
	}
	review, err := uc.completer.Complete(ctx, reviewSystemPrompt(in.Role), userTurn(prompt))
	if err != nil {
		return nil, fmt.Errorf("complete review: %w", err)
	}
	review = strings.TrimSpace(review)
	if review == "" {
		return nil, fmt.Errorf("complete review: %w", errors.Join(domain.ErrService, errors.New("empty review")))
	}

	uc.logger.Info("review", fmt.Sprintf("reviewed %s (%d files)", repo.Name, len(data.Files)))
	return &ReviewCodeOutput{Repo: repo, Review: review}, nil
}
