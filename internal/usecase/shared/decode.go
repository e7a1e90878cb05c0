// Package shared provides shared utilities for use cases.
package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/runoshun/syntern/internal/domain"
	"gopkg.in/yaml.v3"
)

var fencePattern = regexp.MustCompile("```[a-zA-Z]*\\n?")

// StripCodeFence removes markdown code fences the model wraps around structured output.
func StripCodeFence(s string) string {
	s = fencePattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// DecodeList decodes model output into a list.
// Strict JSON is tried first, then the outermost [...] span, then YAML as a lenient pass.
// All failures wrap domain.ErrParse.
func DecodeList[T any](raw string) ([]T, error) {
	text := StripCodeFence(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: empty output", domain.ErrParse)
	}

	var out []T
	jsonErr := json.Unmarshal([]byte(text), &out)
	if jsonErr == nil {
		return out, nil
	}

	if start, end := strings.Index(text, "["), strings.LastIndex(text, "]"); start >= 0 && end > start {
		out = nil
		if err := json.Unmarshal([]byte(text[start:end+1]), &out); err == nil {
			return out, nil
		}
	}

	out = nil
	yamlErr := yaml.Unmarshal([]byte(text), &out)
	if yamlErr == nil && len(out) > 0 {
		return out, nil
	}
	if yamlErr == nil {
		yamlErr = errors.New("no list found")
	}
	return nil, fmt.Errorf("%w: %w", domain.ErrParse, errors.Join(jsonErr, yamlErr))
}
