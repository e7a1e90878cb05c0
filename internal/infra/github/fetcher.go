package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/runoshun/syntern/internal/domain"
)

// Ensure Fetcher implements domain.RepoFetcher.
var _ domain.RepoFetcher = (*Fetcher)(nil)

// Fetcher reads repository snapshots through the REST API.
// Fields are ordered to minimize memory padding.
type Fetcher struct {
	http         *http.Client
	logger       domain.Logger
	apiBase      string
	token        string
	maxFiles     int
	maxFileBytes int
	treeLimit    int
}

// NewFetcher creates a new Fetcher.
func NewFetcher(cfg domain.ReviewConfig, logger domain.Logger) *Fetcher {
	apiBase := cfg.GitHubAPI
	if apiBase == "" {
		apiBase = domain.DefaultGitHubAPI
	}
	return &Fetcher{
		http:         &http.Client{Timeout: 30 * time.Second},
		logger:       logger,
		apiBase:      strings.TrimRight(apiBase, "/"),
		token:        cfg.Token,
		maxFiles:     orDefault(cfg.MaxFiles, domain.DefaultMaxFiles),
		maxFileBytes: orDefault(cfg.MaxFileBytes, domain.DefaultMaxFileBytes),
		treeLimit:    orDefault(cfg.TreeLimit, domain.DefaultTreeLimit),
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type repoResponse struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Language      string `json:"language"`
	DefaultBranch string `json:"default_branch"`
	Stars         int    `json:"stargazers_count"`
}

type treeResponse struct {
	Tree []struct {
		Path string `json:"path"`
		Type string `json:"type"`
	} `json:"tree"`
}

type contentResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	Size     int    `json:"size"`
}

// errStatus carries a non-2xx response code.
type errStatus int

func (e errStatus) Error() string { return fmt.Sprintf("status %d", int(e)) }

// Fetch reads metadata, the recursive tree, and up to maxFiles selected files.
// Individual file failures are skipped.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*domain.RepoSnapshot, error) {
	ref, err := ParseRepoURL(rawURL)
	if err != nil {
		return nil, err
	}

	var meta repoResponse
	if err := f.getJSON(ctx, "/repos/"+ref.String(), &meta); err != nil {
		var status errStatus
		if errors.As(err, &status) && int(status) == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w", ref, domain.ErrNotFoundOrPrivate)
		}
		return nil, fmt.Errorf("%s metadata: %w: %v", ref, domain.ErrUnreadable, err)
	}
	branch := meta.DefaultBranch
	if branch == "" {
		branch = "main"
	}

	var tree treeResponse
	treePath := fmt.Sprintf("/repos/%s/git/trees/%s?recursive=1", ref, url.PathEscape(branch))
	if err := f.getJSON(ctx, treePath, &tree); err != nil {
		return nil, fmt.Errorf("%s tree: %w: %v", ref, domain.ErrUnreadable, err)
	}
	var blobs []string
	for _, e := range tree.Tree {
		if e.Type == "blob" {
			blobs = append(blobs, e.Path)
		}
	}
	paths := FilterTree(blobs)

	snap := &domain.RepoSnapshot{
		Name:        meta.Name,
		Description: meta.Description,
		Language:    meta.Language,
		Stars:       meta.Stars,
		Tree:        paths[:min(len(paths), f.treeLimit)],
		Files:       make(map[string]string),
	}
	if snap.Name == "" {
		snap.Name = ref.Name
	}
	if snap.Description == "" {
		snap.Description = "No description"
	}
	if snap.Language == "" {
		snap.Language = unknownLanguage
	}

	for _, p := range SelectFiles(paths, f.maxFiles) {
		content, err := f.fileContent(ctx, ref, p)
		if err != nil {
			f.logger.Debug("review", fmt.Sprintf("skip %s/%s: %v", ref, p, err))
			continue
		}
		snap.Files[p] = content
		snap.Order = append(snap.Order, p)
	}

	f.logger.Info("review", fmt.Sprintf("fetched %s: %d paths, %d files", ref, len(paths), len(snap.Order)))
	return snap, nil
}

func (f *Fetcher) fileContent(ctx context.Context, ref RepoRef, p string) (string, error) {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	var c contentResponse
	if err := f.getJSON(ctx, fmt.Sprintf("/repos/%s/contents/%s", ref, strings.Join(segments, "/")), &c); err != nil {
		return "", err
	}
	if c.Encoding != "base64" {
		return "", fmt.Errorf("unsupported encoding %q", c.Encoding)
	}
	if c.Size >= f.maxFileBytes {
		return "", fmt.Errorf("too large (%d bytes)", c.Size)
	}
	data, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(c.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	return string(data), nil
}

func (f *Fetcher) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.apiBase+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errStatus(resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
