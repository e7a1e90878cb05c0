package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/syntern/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	// Base colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color

	// Status colors
	Todo       lipgloss.Color
	InProgress lipgloss.Color
	InReview   lipgloss.Color
	Done       lipgloss.Color

	// Priority colors
	High lipgloss.Color
	Med  lipgloss.Color
	Low  lipgloss.Color
}{
	Primary:    lipgloss.Color("#00FF88"), // Syntern green
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#FF5577"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FFB347"), // Amber
	Background: lipgloss.Color("#12121A"), // Near black
	Text:       lipgloss.Color("#DFE6E9"), // Light gray

	Todo:       lipgloss.Color("#74B9FF"), // Light blue
	InProgress: lipgloss.Color("#FDCB6E"), // Yellow
	InReview:   lipgloss.Color("#A29BFE"), // Lavender
	Done:       lipgloss.Color("#00B894"), // Green

	High: lipgloss.Color("#FF5577"),
	Med:  lipgloss.Color("#FFB347"),
	Low:  lipgloss.Color("#74B9FF"),
}

// Timer thresholds, in seconds.
const (
	timerCritical = 120
	timerWarning  = 300
)

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	HeaderText lipgloss.Style
	Logo       lipgloss.Style

	// Timer
	Timer         lipgloss.Style
	TimerWarning  lipgloss.Style
	TimerCritical lipgloss.Style

	// Panes
	Pane        lipgloss.Style
	PaneFocused lipgloss.Style
	PaneTitle   lipgloss.Style

	// Sidebar
	Channel       lipgloss.Style
	ChannelActive lipgloss.Style
	Unread        lipgloss.Style

	// Chat
	Author    lipgloss.Style
	Timestamp lipgloss.Style
	Body      lipgloss.Style
	Typing    lipgloss.Style

	// Board
	ColumnTitle lipgloss.Style
	Card        lipgloss.Style
	CardCursor  lipgloss.Style
	Priority    lipgloss.Style

	// Setup form
	Label      lipgloss.Style
	LabelFocus lipgloss.Style
	Chip       lipgloss.Style
	Option     lipgloss.Style
	OptionPick lipgloss.Style

	// Overlays
	Toast        lipgloss.Style
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogPrompt lipgloss.Style

	// Report
	Score   lipgloss.Style
	Bar     lipgloss.Style
	BarRest lipgloss.Style
	Verdict lipgloss.Style
	Badge   lipgloss.Style

	// Help
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Footer
	Footer    lipgloss.Style
	FooterKey lipgloss.Style

	// Input
	Input       lipgloss.Style
	InputPrompt lipgloss.Style

	// Error
	ErrorMsg lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(0, 1),

		HeaderText: lipgloss.NewStyle().
			Foreground(Colors.Text),

		Logo: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		Timer: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		TimerWarning: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Warning),

		TimerCritical: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Error),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted).
			Padding(0, 1),

		PaneFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary).
			Padding(0, 1),

		PaneTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Secondary),

		Channel: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		ChannelActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		Unread: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Background).
			Background(Colors.Error).
			Padding(0, 1),

		Author: lipgloss.NewStyle().
			Bold(true),

		Timestamp: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Body: lipgloss.NewStyle().
			Foreground(Colors.Text),

		Typing: lipgloss.NewStyle().
			Italic(true).
			Foreground(Colors.Muted),

		ColumnTitle: lipgloss.NewStyle().
			Bold(true).
			Underline(true),

		Card: lipgloss.NewStyle().
			Foreground(Colors.Text),

		CardCursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		Priority: lipgloss.NewStyle().
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		LabelFocus: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		Chip: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(Colors.Muted).
			PaddingLeft(1),

		Option: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Padding(0, 1),

		OptionPick: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Background).
			Background(Colors.Primary).
			Padding(0, 1),

		Toast: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Secondary).
			Padding(0, 1),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Colors.Primary).
			Padding(1, 3),

		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		DialogPrompt: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Score: lipgloss.NewStyle().
			Width(16),

		Bar: lipgloss.NewStyle().
			Foreground(Colors.Primary),

		BarRest: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Verdict: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Warning),

		Badge: lipgloss.NewStyle().
			Italic(true).
			Foreground(Colors.Muted),

		Help: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted),

		HelpKey: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		FooterKey: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Bold(true),

		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted).
			Padding(0, 1),

		InputPrompt: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),
	}
}

// StatusStyle returns the style for a status column.
func (s Styles) StatusStyle(status domain.Status) lipgloss.Style {
	base := s.ColumnTitle
	switch status {
	case domain.StatusTodo:
		return base.Foreground(Colors.Todo)
	case domain.StatusInProgress:
		return base.Foreground(Colors.InProgress)
	case domain.StatusReview:
		return base.Foreground(Colors.InReview)
	case domain.StatusDone:
		return base.Foreground(Colors.Done)
	default:
		return base
	}
}

// PriorityStyle returns the style for a priority tag.
func (s Styles) PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return s.Priority.Foreground(Colors.High)
	case domain.PriorityMed:
		return s.Priority.Foreground(Colors.Med)
	default:
		return s.Priority.Foreground(Colors.Low)
	}
}

// TimerStyle returns the countdown style for the remaining seconds.
func (s Styles) TimerStyle(remaining int) lipgloss.Style {
	switch {
	case remaining < timerCritical:
		return s.TimerCritical
	case remaining < timerWarning:
		return s.TimerWarning
	default:
		return s.Timer
	}
}

// AuthorStyle colors an author name with its persona color.
func (s Styles) AuthorStyle(color string) lipgloss.Style {
	if color == "" {
		return s.Author
	}
	return s.Author.Foreground(lipgloss.Color(color))
}
