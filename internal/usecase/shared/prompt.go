package shared

import (
	"bytes"
	"fmt"
	"text/template"
)

// RenderPrompt executes a prompt template with data.
func RenderPrompt(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
