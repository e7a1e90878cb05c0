// Package tui provides the terminal user interface for syntern.
package tui

// Screen is the top-level view, following the session phase.
type Screen int

const (
	ScreenSetup      Screen = iota // Setup form
	ScreenLoading                  // Tasks and docs being generated
	ScreenWorkspace                // Chat, board and docs
	ScreenEvaluating               // Waiting for the report
	ScreenReport                   // Evaluation report
)

// String returns the string representation of the screen.
func (s Screen) String() string {
	switch s {
	case ScreenSetup:
		return "setup"
	case ScreenLoading:
		return "loading"
	case ScreenWorkspace:
		return "workspace"
	case ScreenEvaluating:
		return "evaluating"
	case ScreenReport:
		return "report"
	default:
		return "unknown"
	}
}

// Mode represents the input mode inside the workspace.
type Mode int

const (
	ModeNormal     Mode = iota // Keys go to the focused pane
	ModeSubmit                 // Submission link input
	ModeConfirmEnd             // "End the day?" dialog
	ModeDoc                    // Reading one document
	ModeHelp                   // Help overlay
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSubmit:
		return "submit"
	case ModeConfirmEnd:
		return "confirm_end"
	case ModeDoc:
		return "doc"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	return m == ModeSubmit
}

// Focus is the workspace pane receiving keys in ModeNormal.
type Focus int

const (
	FocusChat     Focus = iota // Message input
	FocusChannels              // Channel sidebar
	FocusBoard                 // Task board
	FocusDocs                  // Document list
)

// String returns the string representation of the focus.
func (f Focus) String() string {
	switch f {
	case FocusChat:
		return "chat"
	case FocusChannels:
		return "channels"
	case FocusBoard:
		return "tasks"
	case FocusDocs:
		return "docs"
	default:
		return "unknown"
	}
}

// next cycles chat → channels → board → docs.
func (f Focus) next() Focus {
	return (f + 1) % 4
}

// prev cycles in the opposite direction.
func (f Focus) prev() Focus {
	return (f + 3) % 4
}

// setupField is the focused setup form field.
type setupField int

const (
	fieldName setupField = iota
	fieldRole
	fieldCompany
	fieldDuration
	setupFieldCount
)
