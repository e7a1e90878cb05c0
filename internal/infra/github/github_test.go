package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/runoshun/syntern/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		in    string
		owner string
		name  string
	}{
		{"https://github.com/aria/todo-app", "aria", "todo-app"},
		{"https://github.com/aria/todo-app.git", "aria", "todo-app"},
		{"https://github.com/aria/todo-app/tree/main/src", "aria", "todo-app"},
		{"https://github.com/aria/todo-app?tab=readme#intro", "aria", "todo-app"},
		{"github.com/aria/todo-app", "aria", "todo-app"},
		{"git@github.com:aria/todo-app.git", "aria", "todo-app"},
		{"  https://www.github.com/aria/todo-app  ", "aria", "todo-app"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ref, err := ParseRepoURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.owner, ref.Owner)
			assert.Equal(t, tt.name, ref.Name)
		})
	}
}

func TestParseRepoURL_Invalid(t *testing.T) {
	for _, in := range []string{"", "hello", "https://gitlab.com/aria/todo", "https://github.com/aria", "https://github.com/"} {
		_, err := ParseRepoURL(in)
		assert.ErrorIs(t, err, domain.ErrInvalidURL, in)
	}
}

func TestRepoRef_CloneURL(t *testing.T) {
	assert.Equal(t, "https://github.com/aria/todo.git", RepoRef{Owner: "aria", Name: "todo"}.CloneURL())
}

func TestSelectFiles(t *testing.T) {
	paths := []string{"src/util.go", "docs/guide.txt", "README.md", "cmd/main.py", "web/App.tsx", "a.go", "b.go", "c.go", "d.go", "e.go"}

	got := SelectFiles(paths, 8)

	assert.Equal(t, []string{"README.md", "cmd/main.py", "web/App.tsx", "src/util.go", "a.go", "b.go", "c.go", "d.go"}, got)
}

func TestFilterTree(t *testing.T) {
	got := FilterTree([]string{"node_modules/x/index.js", "yarn.lock", "dist/app.js", "src/app.js", "package-lock.json"})
	assert.Equal(t, []string{"src/app.js", "package-lock.json"}, got)
}

func TestDominantLanguage(t *testing.T) {
	assert.Equal(t, "Go", DominantLanguage([]string{"main.go", "x.go", "README.md", "web/a.js"}))
	assert.Equal(t, "Unknown", DominantLanguage([]string{"README.md", "LICENSE"}))
}

func encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func newGitHubServer(t *testing.T, repoStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/aria/todo", func(w http.ResponseWriter, _ *http.Request) {
		if repoStatus != http.StatusOK {
			w.WriteHeader(repoStatus)
			return
		}
		_, _ = fmt.Fprint(w, `{"name":"todo","description":"","language":"Go","stargazers_count":7,"default_branch":"trunk"}`)
	})
	mux.HandleFunc("/repos/aria/todo/git/trees/trunk", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("recursive"))
		_, _ = fmt.Fprint(w, `{"tree":[
			{"path":"cmd","type":"tree"},
			{"path":"README.md","type":"blob"},
			{"path":"main.go","type":"blob"},
			{"path":"big.go","type":"blob"},
			{"path":"broken.go","type":"blob"},
			{"path":"node_modules/x.js","type":"blob"}
		]}`)
	})
	mux.HandleFunc("/repos/aria/todo/contents/README.md", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprintf(w, `{"content":%q,"encoding":"base64","size":6}`, encode("# todo"))
	})
	mux.HandleFunc("/repos/aria/todo/contents/main.go", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprintf(w, `{"content":%q,"encoding":"base64","size":12}`, encode("package main"))
	})
	mux.HandleFunc("/repos/aria/todo/contents/big.go", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprintf(w, `{"content":%q,"encoding":"base64","size":60000}`, encode(strings.Repeat("x", 10)))
	})
	mux.HandleFunc("/repos/aria/todo/contents/broken.go", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	return httptest.NewServer(mux)
}

func TestFetcher_Fetch(t *testing.T) {
	// Setup
	srv := newGitHubServer(t, http.StatusOK)
	defer srv.Close()
	f := NewFetcher(domain.ReviewConfig{GitHubAPI: srv.URL}, domain.NopLogger{})

	// Execute
	snap, err := f.Fetch(context.Background(), "https://github.com/aria/todo")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "todo", snap.Name)
	assert.Equal(t, "No description", snap.Description)
	assert.Equal(t, "Go", snap.Language)
	assert.Equal(t, 7, snap.Stars)
	assert.Equal(t, []string{"README.md", "main.go", "big.go", "broken.go"}, snap.Tree)
	assert.Equal(t, []string{"README.md", "main.go"}, snap.Order)
	assert.Equal(t, "# todo", snap.Files["README.md"])
	assert.Equal(t, "package main", snap.Files["main.go"])
}

func TestFetcher_Fetch_Errors(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		url     string
		status  int
	}{
		{name: "not found", url: "https://github.com/aria/todo", status: http.StatusNotFound, wantErr: domain.ErrNotFoundOrPrivate},
		{name: "rate limited", url: "https://github.com/aria/todo", status: http.StatusForbidden, wantErr: domain.ErrUnreadable},
		{name: "bad url", url: "https://example.com/aria/todo", status: http.StatusOK, wantErr: domain.ErrInvalidURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newGitHubServer(t, tt.status)
			defer srv.Close()
			f := NewFetcher(domain.ReviewConfig{GitHubAPI: srv.URL}, domain.NopLogger{})

			_, err := f.Fetch(context.Background(), tt.url)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFetcher_SendsToken(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	f := NewFetcher(domain.ReviewConfig{GitHubAPI: srv.URL, Token: "tok"}, domain.NopLogger{})

	_, _ = f.Fetch(context.Background(), "https://github.com/aria/todo")

	assert.Equal(t, "Bearer tok", auth)
}
