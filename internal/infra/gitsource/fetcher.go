// Package gitsource reads repositories by cloning them into memory with go-git.
// It needs no API quota and works for hosts the REST API rate-limits.
package gitsource

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/runoshun/syntern/internal/domain"
	"github.com/runoshun/syntern/internal/infra/github"
)

// Ensure Fetcher implements domain.RepoFetcher.
var _ domain.RepoFetcher = (*Fetcher)(nil)

// Fetcher clones a shallow single-branch copy and reads files from HEAD.
// Fields are ordered to minimize memory padding.
type Fetcher struct {
	logger       domain.Logger
	cloneURL     func(github.RepoRef) string
	token        string
	depth        int
	maxFiles     int
	maxFileBytes int
	treeLimit    int
}

// NewFetcher creates a new Fetcher.
func NewFetcher(cfg domain.ReviewConfig, logger domain.Logger) *Fetcher {
	return &Fetcher{
		logger:       logger,
		cloneURL:     github.RepoRef.CloneURL,
		token:        cfg.Token,
		depth:        1,
		maxFiles:     positive(cfg.MaxFiles, domain.DefaultMaxFiles),
		maxFileBytes: positive(cfg.MaxFileBytes, domain.DefaultMaxFileBytes),
		treeLimit:    positive(cfg.TreeLimit, domain.DefaultTreeLimit),
	}
}

func positive(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// Fetch clones the repository and builds a snapshot from its HEAD tree.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*domain.RepoSnapshot, error) {
	ref, err := github.ParseRepoURL(rawURL)
	if err != nil {
		return nil, err
	}

	opts := &git.CloneOptions{
		URL:          f.cloneURL(ref),
		Depth:        f.depth,
		SingleBranch: true,
		Tags:         git.NoTags,
	}
	if f.token != "" {
		opts.Auth = &githttp.BasicAuth{Username: "x-access-token", Password: f.token}
	}

	repo, err := git.CloneContext(ctx, memory.NewStorage(), nil, opts)
	if err != nil {
		if isMissing(err) {
			return nil, fmt.Errorf("%s: %w", ref, domain.ErrNotFoundOrPrivate)
		}
		return nil, fmt.Errorf("clone %s: %w: %v", ref, domain.ErrUnreadable, err)
	}

	tree, err := headTree(repo)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %v", ref, domain.ErrUnreadable, err)
	}

	var all []string
	if err := tree.Files().ForEach(func(file *object.File) error {
		all = append(all, file.Name)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("walk %s: %w: %v", ref, domain.ErrUnreadable, err)
	}
	paths := github.FilterTree(all)

	snap := &domain.RepoSnapshot{
		Name:        ref.Name,
		Description: "No description",
		Language:    github.DominantLanguage(paths),
		Tree:        paths[:min(len(paths), f.treeLimit)],
		Files:       make(map[string]string),
	}
	for _, p := range github.SelectFiles(paths, f.maxFiles) {
		content, err := f.readFile(tree, p)
		if err != nil {
			f.logger.Debug("review", fmt.Sprintf("skip %s/%s: %v", ref, p, err))
			continue
		}
		snap.Files[p] = content
		snap.Order = append(snap.Order, p)
	}

	f.logger.Info("review", fmt.Sprintf("cloned %s: %d paths, %d files", ref, len(paths), len(snap.Order)))
	return snap, nil
}

func headTree(repo *git.Repository) (*object.Tree, error) {
	head, err := repo.Head()
	if err != nil {
		return nil, err
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, err
	}
	return commit.Tree()
}

func (f *Fetcher) readFile(tree *object.Tree, p string) (string, error) {
	file, err := tree.File(p)
	if err != nil {
		return "", err
	}
	if file.Size >= int64(f.maxFileBytes) {
		return "", fmt.Errorf("too large (%d bytes)", file.Size)
	}
	if bin, err := file.IsBinary(); err != nil || bin {
		return "", errors.New("binary file")
	}
	return file.Contents()
}

func isMissing(err error) bool {
	return errors.Is(err, transport.ErrRepositoryNotFound) ||
		errors.Is(err, transport.ErrAuthenticationRequired) ||
		errors.Is(err, transport.ErrAuthorizationFailed) ||
		errors.Is(err, transport.ErrEmptyRemoteRepository)
}
