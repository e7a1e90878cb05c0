package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeyHint represents a key and its description.
type KeyHint struct {
	Key  string
	Desc string
}

// StatusLine renders the key hints at the bottom of the screen,
// with the focused pane on the right.
// Fields are ordered to minimize memory padding.
type StatusLine struct {
	styles *Styles
	width  int
}

// NewStatusLine creates a new StatusLine with the given width and styles.
func NewStatusLine(width int, styles *Styles) *StatusLine {
	return &StatusLine{
		width:  width,
		styles: styles,
	}
}

// Render renders hints and the right-aligned indicator.
func (s *StatusLine) Render(hints []KeyHint, indicator string) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, s.styles.FooterKey.Render(h.Key)+" "+h.Desc)
	}
	content := strings.Join(parts, "  ")
	right := s.styles.Footer.Render(indicator)

	contentWidth := s.width - 2
	rightLen := lipgloss.Width(right)
	contentLen := lipgloss.Width(content)

	// Truncate content if needed
	maxContentWidth := contentWidth - rightLen - 2
	if contentLen > maxContentWidth {
		if maxContentWidth <= 3 {
			content = "..."
		} else {
			content = lipgloss.NewStyle().MaxWidth(maxContentWidth-3).Render(content) + "..."
		}
		contentLen = lipgloss.Width(content)
	}

	spacing := max(1, contentWidth-contentLen-rightLen)
	return s.styles.Footer.Render(content + strings.Repeat(" ", spacing) + right)
}

// footer renders the status line for the current screen.
func (m *Model) footer(hints []KeyHint) string {
	indicator := m.screen.String()
	if m.screen == ScreenWorkspace {
		indicator = "focus:" + m.focus.String()
	}
	return NewStatusLine(max(m.width, minWidth), &m.styles).Render(hints, indicator)
}
