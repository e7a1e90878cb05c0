package github

import (
	"path"
	"strings"
)

// priorityFiles are fetched first, matched by path suffix.
var priorityFiles = []string{
	"README.md", "readme.md", "package.json", "requirements.txt",
	"index.html", "index.js", "index.ts", "main.py", "app.py",
	"App.jsx", "App.tsx", "App.js",
}

// sourceExtensions are fetched after the priority files.
var sourceExtensions = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true, ".py": true,
	".html": true, ".css": true, ".java": true, ".go": true, ".rs": true, ".rb": true,
}

var excludedFragments = []string{"node_modules", ".lock", "dist/"}

// FilterTree drops vendored, lock and build output paths.
func FilterTree(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if isExcluded(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func isExcluded(p string) bool {
	for _, frag := range excludedFragments {
		if strings.Contains(p, frag) {
			return true
		}
	}
	return false
}

// IsSource reports whether p has a reviewed source extension.
func IsSource(p string) bool {
	return sourceExtensions[strings.ToLower(path.Ext(p))]
}

// SelectFiles picks up to limit paths: priority files first, then source files, both in tree order.
func SelectFiles(paths []string, limit int) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if len(out) >= limit || seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	for _, p := range paths {
		for _, name := range priorityFiles {
			if strings.HasSuffix(p, name) {
				add(p)
				break
			}
		}
	}
	for _, p := range paths {
		if IsSource(p) {
			add(p)
		}
	}
	return out
}

// DominantLanguage guesses the primary language from source file extensions.
func DominantLanguage(paths []string) string {
	counts := make(map[string]int)
	for _, p := range paths {
		if lang, ok := extLanguages[strings.ToLower(path.Ext(p))]; ok {
			counts[lang]++
		}
	}
	best, bestN := "", 0
	for _, lang := range languageOrder {
		if counts[lang] > bestN {
			best, bestN = lang, counts[lang]
		}
	}
	if best == "" {
		return unknownLanguage
	}
	return best
}

const unknownLanguage = "Unknown"

var extLanguages = map[string]string{
	".js": "JavaScript", ".jsx": "JavaScript", ".ts": "TypeScript", ".tsx": "TypeScript",
	".py": "Python", ".html": "HTML", ".css": "CSS", ".java": "Java",
	".go": "Go", ".rs": "Rust", ".rb": "Ruby",
}

// languageOrder breaks ties deterministically.
var languageOrder = []string{"TypeScript", "JavaScript", "Python", "Go", "Java", "Rust", "Ruby", "HTML", "CSS"}
