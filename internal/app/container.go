// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/runoshun/syntern/internal/domain"
	"github.com/runoshun/syntern/internal/infra/config"
	"github.com/runoshun/syntern/internal/infra/github"
	"github.com/runoshun/syntern/internal/infra/gitsource"
	"github.com/runoshun/syntern/internal/infra/llm"
	"github.com/runoshun/syntern/internal/infra/logging"
	"github.com/runoshun/syntern/internal/session"
	"github.com/runoshun/syntern/internal/usecase"
)

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Completer     domain.Completer
	Repos         domain.RepoFetcher
	Clock         domain.Clock
	Logger        domain.Logger
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager

	// Configuration
	Config *domain.Config
}

// scoper is implemented by loggers that can tag entries with a session scope.
type scoper interface {
	WithScope(scope string) *logging.Logger
}

// New creates a new Container from the configuration visible from workDir.
func New(ctx context.Context, workDir string) (*Container, error) {
	loader := config.NewLoader(workDir)
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(logging.DefaultPath(), logging.ParseLevel(cfg.Log.Level))
	for _, w := range cfg.Warnings {
		logger.Warn("config", w)
	}

	return &Container{
		Completer:     llm.New(ctx, cfg.LLM, logger),
		Repos:         newRepoFetcher(cfg.Review, logger),
		Clock:         domain.RealClock{},
		Logger:        logger,
		ConfigLoader:  loader,
		ConfigManager: config.NewManager(workDir),
		Config:        cfg,
	}, nil
}

// newRepoFetcher picks the repository source named by [review] source.
func newRepoFetcher(cfg domain.ReviewConfig, logger domain.Logger) domain.RepoFetcher {
	if cfg.Source == domain.ReviewSourceGit {
		return gitsource.NewFetcher(cfg, logger)
	}
	return github.NewFetcher(cfg, logger)
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg *domain.Config, completer domain.Completer, repos domain.RepoFetcher, clock domain.Clock, logger domain.Logger) *Container {
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Container{
		Completer: completer,
		Repos:     repos,
		Clock:     clock,
		Logger:    logger,
		Config:    cfg,
	}
}

// Close releases the log file.
func (c *Container) Close() error {
	if l, ok := c.Logger.(*logging.Logger); ok {
		return l.Close()
	}
	return nil
}

// UseCase factory methods

// GenerateTasksUseCase returns a new GenerateTasks use case.
func (c *Container) GenerateTasksUseCase(logger domain.Logger) *usecase.GenerateTasks {
	return usecase.NewGenerateTasks(c.Completer, logger)
}

// GenerateDocsUseCase returns a new GenerateDocs use case.
func (c *Container) GenerateDocsUseCase(logger domain.Logger) *usecase.GenerateDocs {
	return usecase.NewGenerateDocs(c.Completer, logger)
}

// ReviewCodeUseCase returns a new ReviewCode use case.
func (c *Container) ReviewCodeUseCase(logger domain.Logger) *usecase.ReviewCode {
	return usecase.NewReviewCode(c.Repos, c.Completer, c.Config.Review.ExcerptBytes, logger)
}

// EvaluateUseCase returns a new Evaluate use case.
func (c *Container) EvaluateUseCase(logger domain.Logger) *usecase.Evaluate {
	return usecase.NewEvaluate(c.Completer, logger)
}

// ReplyUseCase returns a new Reply use case.
func (c *Container) ReplyUseCase(logger domain.Logger) *usecase.Reply {
	return usecase.NewReply(c.Completer, logger)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate(c.ConfigManager)
}

// Session factory methods

// SessionDeps returns the collaborators for a session with the given id.
// Log entries of the session and its use cases carry the session scope.
func (c *Container) SessionDeps(id string, bus *session.Bus) session.Deps {
	logger := c.Logger
	if s, ok := logger.(scoper); ok {
		logger = s.WithScope(logging.SessionScope(id))
	}
	return session.Deps{
		GenerateTasks: c.GenerateTasksUseCase(logger),
		GenerateDocs:  c.GenerateDocsUseCase(logger),
		ReviewCode:    c.ReviewCodeUseCase(logger),
		Evaluate:      c.EvaluateUseCase(logger),
		Reply:         c.ReplyUseCase(logger),
		Clock:         c.Clock,
		Logger:        logger,
		Bus:           bus,
		ID:            id,
		Timing:        c.Config.Timing,
	}
}

// NewSession creates a session in the Setup phase.
// A nil bus gives the session a private one.
func (c *Container) NewSession(profile domain.Profile, bus *session.Bus) *session.Session {
	return session.New(profile, c.SessionDeps(uuid.NewString(), bus))
}

// NewManager returns a session manager that builds sessions from this container.
func (c *Container) NewManager() *session.Manager {
	return session.NewManager(c.NewSession, c.Logger)
}
