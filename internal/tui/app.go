package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/runoshun/syntern/internal/domain"
	"github.com/runoshun/syntern/internal/session"
)

// eventBuffer is how many session events may queue before publishers wait.
const eventBuffer = 256

// roleHintInterval is how often the role placeholder rotates.
const roleHintInterval = 2500 * time.Millisecond

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	manager     *session.Manager
	session     *session.Session
	renderer    *glamour.TermRenderer
	report      *domain.Report
	err         error
	events      chan session.Event
	done        chan struct{}
	unsubscribe func()

	// Session state
	seen     map[domain.Channel]int
	messages []domain.Message
	snap     session.Snapshot
	channel  domain.Channel

	// Components (structs with pointers)
	keys    KeyMap
	styles  Styles
	help    help.Model
	spinner spinner.Model
	chat    viewport.Model
	doc     viewport.Model

	// Input state (large structs)
	nameInput    textinput.Model
	roleInput    textinput.Model
	companyInput textinput.Model
	messageInput textinput.Model
	submitInput  textinput.Model

	// Numeric state (smaller types last)
	submitTaskID  int64
	screen        Screen
	mode          Mode
	focus         Focus
	field         setupField
	duration      int
	roleHint      int
	suggestion    int
	channelCursor int
	taskCursor    int
	docCursor     int
	width         int
	height        int
	sending       bool
	closed        bool
}

// New creates a new TUI Model driving sessions of manager.
// Call Close when the program has exited.
func New(manager *session.Manager) *Model {
	styles := DefaultStyles()

	name := textinput.New()
	name.Placeholder = "e.g. Aria"
	name.CharLimit = 60
	name.Focus()

	role := textinput.New()
	role.Placeholder = domain.RoleSuggestions()[0]
	role.CharLimit = 80

	company := textinput.New()
	company.Placeholder = domain.DefaultCompany
	company.CharLimit = 80

	message := textinput.New()
	message.Placeholder = "Message the team..."
	message.CharLimit = 2000
	message.Prompt = "│ "
	message.PromptStyle = styles.InputPrompt

	submit := textinput.New()
	submit.CharLimit = 500
	submit.Prompt = "🔗 "
	submit.PromptStyle = styles.InputPrompt

	hp := help.New()
	hp.Styles.ShortKey = styles.HelpKey
	hp.Styles.ShortDesc = styles.HelpDesc
	hp.Styles.FullKey = styles.HelpKey
	hp.Styles.FullDesc = styles.HelpDesc

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)

	m := &Model{
		manager:      manager,
		renderer:     renderer,
		events:       make(chan session.Event, eventBuffer),
		done:         make(chan struct{}),
		seen:         make(map[domain.Channel]int),
		channel:      domain.ChannelGeneral,
		keys:         DefaultKeyMap(),
		styles:       styles,
		help:         hp,
		spinner:      sp,
		chat:         viewport.New(60, 16),
		doc:          viewport.New(72, 20),
		nameInput:    name,
		roleInput:    role,
		companyInput: company,
		messageInput: message,
		submitInput:  submit,
		screen:       ScreenSetup,
		mode:         ModeNormal,
		focus:        FocusChat,
		field:        fieldName,
	}
	m.unsubscribe = manager.Bus().Subscribe(m.forward)
	return m
}

// forward hands a bus event to the program. It runs on the publishing goroutine.
func (m *Model) forward(e session.Event) {
	select {
	case m.events <- e:
	case <-m.done:
	}
}

// Close stops receiving session events. It is safe to call more than once.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.unsubscribe()
	close(m.done)
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.waitForEvent(),
		m.rotateRoleHint(),
	)
}

// waitForEvent returns a command that delivers the next session event.
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-m.events:
			return MsgEvent{Event: e}
		case <-m.done:
			return nil
		}
	}
}

// rotateRoleHint returns a command that advances the role placeholder.
func (m *Model) rotateRoleHint() tea.Cmd {
	next := (m.roleHint + 1) % len(domain.RoleSuggestions())
	return tea.Tick(roleHintInterval, func(time.Time) tea.Msg {
		return MsgRoleHint{Index: next}
	})
}

// setupInput collects the setup form.
func (m *Model) setupInput() domain.SetupInput {
	return domain.SetupInput{
		Name:    m.nameInput.Value(),
		Role:    m.roleInput.Value(),
		Company: m.companyInput.Value(),
		Minutes: domain.DurationOptions()[m.duration].Minutes,
	}
}

// sendMessage returns a command that posts text and waits for the reply.
func (m *Model) sendMessage(ch domain.Channel, text string) tea.Cmd {
	s := m.session
	return func() tea.Msg {
		if _, err := s.Send(context.Background(), ch, text); err != nil {
			return MsgError{Err: err}
		}
		return MsgSent{Channel: ch}
	}
}

// submitWork returns a command that hands in a submission link.
func (m *Model) submitWork(id int64, url string) tea.Cmd {
	s := m.session
	return func() tea.Msg {
		if err := s.Submit(context.Background(), id, url); err != nil {
			return MsgError{Err: err}
		}
		return MsgSubmitted{TaskID: id}
	}
}

// requestMore returns a command that asks the manager for more tasks.
func (m *Model) requestMore() tea.Cmd {
	s := m.session
	return func() tea.Msg {
		tasks, err := s.RequestMoreTasks(context.Background())
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTasksAdded{Tasks: tasks}
	}
}

// endDay returns a command that ends the session and waits for the report.
func (m *Model) endDay() tea.Cmd {
	s := m.session
	return func() tea.Msg {
		report, err := s.End(context.Background())
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgReport{Report: report}
	}
}

// refresh re-reads the session snapshot and the open channel.
func (m *Model) refresh() {
	if m.session == nil {
		return
	}
	m.snap = m.session.Snapshot()
	m.messages = m.session.Messages(m.channel)
	m.seen[m.channel] = m.snap.Counts[m.channel]
	if m.taskCursor >= len(m.snap.Tasks) {
		m.taskCursor = max(0, len(m.snap.Tasks)-1)
	}
	m.updateChat()
}

// unread returns the persona messages in ch not yet seen.
func (m *Model) unread(ch domain.Channel) int {
	if ch == m.channel {
		return 0
	}
	return max(0, m.snap.Counts[ch]-m.seen[ch])
}

// openChannel switches the chat to ch.
func (m *Model) openChannel(ch domain.Channel) {
	m.channel = ch
	for i, c := range domain.AllChannels() {
		if c == ch {
			m.channelCursor = i
		}
	}
	m.refresh()
	m.chat.GotoBottom()
}

// boardTasks returns the tasks in column order, keeping board order inside a column.
func (m *Model) boardTasks() []domain.Task {
	out := make([]domain.Task, 0, len(m.snap.Tasks))
	for _, st := range domain.AllStatuses() {
		for _, t := range m.snap.Tasks {
			if t.Status == st {
				out = append(out, t)
			}
		}
	}
	return out
}

// SelectedTask returns the task under the board cursor, or nil if none.
func (m *Model) SelectedTask() *domain.Task {
	tasks := m.boardTasks()
	if m.taskCursor < 0 || m.taskCursor >= len(tasks) {
		return nil
	}
	t := tasks[m.taskCursor]
	return &t
}

// markdown renders text with glamour, falling back to the raw text.
func (m *Model) markdown(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// resetSession drops the finished session and returns to the setup form.
func (m *Model) resetSession() {
	m.session = nil
	m.report = nil
	m.snap = session.Snapshot{}
	m.messages = nil
	m.seen = make(map[domain.Channel]int)
	m.channel = domain.ChannelGeneral
	m.channelCursor = 0
	m.taskCursor = 0
	m.docCursor = 0
	m.screen = ScreenSetup
	m.mode = ModeNormal
	m.focus = FocusChat
	m.field = fieldName
	m.sending = false
	m.messageInput.Reset()
	m.submitInput.Reset()
	m.focusField()
}
