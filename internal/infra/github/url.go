// Package github reads public repositories through the GitHub REST API.
package github

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/runoshun/syntern/internal/domain"
)

const githubHost = "github.com"

// RepoRef identifies a GitHub repository.
type RepoRef struct {
	Owner string
	Name  string
}

// CloneURL returns the HTTPS clone URL.
func (r RepoRef) CloneURL() string {
	return fmt.Sprintf("https://%s/%s/%s.git", githubHost, r.Owner, r.Name)
}

func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepoURL extracts owner and repository name from https, ssh or scp-style GitHub URLs.
// Extra path segments (e.g. /tree/main) are ignored.
func ParseRepoURL(raw string) (RepoRef, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, githubHost+"/") || strings.HasPrefix(s, "www."+githubHost+"/") {
		s = "https://" + s
	}

	ep, err := transport.NewEndpoint(s)
	if err != nil {
		return RepoRef{}, fmt.Errorf("%w: %v", domain.ErrInvalidURL, err)
	}
	host := strings.TrimPrefix(strings.ToLower(ep.Host), "www.")
	if host != githubHost {
		return RepoRef{}, fmt.Errorf("%w: %q is not a GitHub URL", domain.ErrInvalidURL, raw)
	}

	parts := strings.Split(strings.Trim(ep.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return RepoRef{}, fmt.Errorf("%w: %q has no owner/repo", domain.ErrInvalidURL, raw)
	}
	name := strings.TrimSuffix(parts[1], ".git")
	if name == "" {
		return RepoRef{}, fmt.Errorf("%w: %q has no repo name", domain.ErrInvalidURL, raw)
	}
	return RepoRef{Owner: parts[0], Name: name}, nil
}
