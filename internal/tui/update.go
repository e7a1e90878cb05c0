package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/syntern/internal/domain"
)

// errorTTL is how long an error stays in the footer.
const errorTTL = 5 * time.Second

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateLayoutSizes()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case MsgEvent:
		m.handleEvent(msg)
		return m, m.waitForEvent()

	case MsgRoleHint:
		m.roleHint = msg.Index
		m.roleInput.Placeholder = domain.RoleSuggestions()[msg.Index]
		if m.screen != ScreenSetup {
			return m, nil
		}
		return m, m.rotateRoleHint()

	case MsgSent:
		m.sending = false
		m.refresh()
		return m, nil

	case MsgSubmitted:
		m.refresh()
		return m, nil

	case MsgTasksAdded:
		m.refresh()
		if len(msg.Tasks) > 0 {
			m.focus = FocusBoard
			m.taskCursor = 0
		}
		return m, nil

	case MsgReport:
		m.report = msg.Report
		m.screen = ScreenReport
		m.mode = ModeNormal
		return m, nil

	case MsgError:
		m.sending = false
		m.err = msg.Err
		m.refresh()
		return m, tea.Tick(errorTTL, func(time.Time) tea.Msg { return MsgClearError{} })

	case MsgClearError:
		m.err = nil
		return m, nil
	}

	return m, nil
}

// handleEvent applies a session event.
func (m *Model) handleEvent(msg MsgEvent) {
	if m.session == nil || msg.Event.SessionID != m.session.ID() {
		return
	}
	m.refresh()

	switch m.snap.Phase {
	case domain.PhaseSetup:
		// Generation failed before the session went live.
		m.resetSession()
		m.err = errors.New("could not set up the workspace, try again")
		_ = m.manager.Discard()
	case domain.PhaseInitializing:
		m.screen = ScreenLoading
	case domain.PhaseActive:
		if m.screen == ScreenLoading {
			m.screen = ScreenWorkspace
			m.messageInput.Focus()
		}
	case domain.PhaseEvaluating:
		m.screen = ScreenEvaluating
		m.mode = ModeNormal
	case domain.PhaseReport:
		if m.snap.Report != nil {
			m.report = m.snap.Report
		}
		m.screen = ScreenReport
		m.mode = ModeNormal
	}
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenSetup:
		return m.handleSetupKey(msg)
	case ScreenWorkspace:
		return m.handleWorkspaceKey(msg)
	case ScreenReport:
		return m.handleReportKey(msg)
	case ScreenLoading, ScreenEvaluating:
		return m, nil
	}
	return m, nil
}

// handleSetupKey handles keys on the setup form.
func (m *Model) handleSetupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextFocus), key.Matches(msg, m.keys.Down) && m.field == fieldDuration:
		m.field = (m.field + 1) % setupFieldCount
		m.focusField()
		return m, nil

	case key.Matches(msg, m.keys.PrevFocus), key.Matches(msg, m.keys.Up) && m.field == fieldDuration:
		m.field = (m.field + setupFieldCount - 1) % setupFieldCount
		m.focusField()
		return m, nil

	case key.Matches(msg, m.keys.Suggest):
		suggestions := domain.RoleSuggestions()
		m.roleInput.SetValue(suggestions[m.suggestion%len(suggestions)])
		m.roleInput.CursorEnd()
		m.suggestion++
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if m.field != fieldDuration {
			m.field++
			m.focusField()
			return m, nil
		}
		return m.startSession()
	}

	if m.field == fieldDuration {
		options := domain.DurationOptions()
		switch {
		case key.Matches(msg, m.keys.Left):
			m.duration = (m.duration + len(options) - 1) % len(options)
		case key.Matches(msg, m.keys.Right):
			m.duration = (m.duration + 1) % len(options)
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.field {
	case fieldName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case fieldRole:
		m.roleInput, cmd = m.roleInput.Update(msg)
	case fieldCompany:
		m.companyInput, cmd = m.companyInput.Update(msg)
	}
	return m, cmd
}

// focusField moves the cursor to the focused setup field.
func (m *Model) focusField() {
	m.nameInput.Blur()
	m.roleInput.Blur()
	m.companyInput.Blur()
	switch m.field {
	case fieldName:
		m.nameInput.Focus()
	case fieldRole:
		m.roleInput.Focus()
	case fieldCompany:
		m.companyInput.Focus()
	}
}

// startSession submits the setup form.
func (m *Model) startSession() (tea.Model, tea.Cmd) {
	s, err := m.manager.Create(m.setupInput())
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.session = s
	m.screen = ScreenLoading
	m.refresh()
	return m, m.spinner.Tick
}

// handleWorkspaceKey handles keys in the workspace.
func (m *Model) handleWorkspaceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The meeting invitation is modal.
	if m.snap.Meeting != nil {
		return m.handleMeetingKey(msg)
	}

	switch m.mode {
	case ModeSubmit:
		return m.handleSubmitKey(msg)
	case ModeConfirmEnd:
		return m.handleConfirmEndKey(msg)
	case ModeDoc:
		return m.handleDocKey(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Help) {
			m.mode = ModeNormal
		}
		return m, nil
	case ModeNormal:
	}

	switch {
	case key.Matches(msg, m.keys.EndDay):
		m.mode = ModeConfirmEnd
		return m, nil
	case key.Matches(msg, m.keys.NextFocus):
		m.setFocus(m.focus.next())
		return m, nil
	case key.Matches(msg, m.keys.PrevFocus):
		m.setFocus(m.focus.prev())
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.setFocus(FocusChat)
		return m, nil
	}

	switch m.focus {
	case FocusChat:
		return m.handleChatKey(msg)
	case FocusChannels:
		return m.handleChannelsKey(msg)
	case FocusBoard:
		return m.handleBoardKey(msg)
	case FocusDocs:
		return m.handleDocsKey(msg)
	}
	return m, nil
}

// setFocus moves keyboard focus between panes.
func (m *Model) setFocus(f Focus) {
	m.focus = f
	if f == FocusChat {
		m.messageInput.Focus()
		return
	}
	m.messageInput.Blur()
}

func (m *Model) handleMeetingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var join bool
	switch {
	case key.Matches(msg, m.keys.Join):
		join = true
	case key.Matches(msg, m.keys.Decline), key.Matches(msg, m.keys.Escape):
		join = false
	default:
		return m, nil
	}
	if err := m.session.ResolveMeeting(join); err != nil {
		m.err = err
	}
	m.refresh()
	return m, nil
}

func (m *Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		text := strings.TrimSpace(m.messageInput.Value())
		if text == "" || m.sending {
			return m, nil
		}
		m.messageInput.Reset()
		m.sending = true
		return m, m.sendMessage(m.channel, text)
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}

	if key.Matches(msg, m.keys.Help) && m.messageInput.Value() == "" {
		m.mode = ModeHelp
		return m, nil
	}

	var cmd tea.Cmd
	m.messageInput, cmd = m.messageInput.Update(msg)
	return m, cmd
}

func (m *Model) handleChannelsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	channels := domain.AllChannels()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.channelCursor > 0 {
			m.channelCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.channelCursor < len(channels)-1 {
			m.channelCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		m.openChannel(channels[m.channelCursor])
		m.setFocus(FocusChat)
	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
	}
	return m, nil
}

func (m *Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.boardTasks()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.taskCursor > 0 {
			m.taskCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.taskCursor < len(tasks)-1 {
			m.taskCursor++
		}
	case key.Matches(msg, m.keys.Left):
		m.moveTask(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveTask(1)
	case key.Matches(msg, m.keys.Submit):
		return m.openSubmit()
	case key.Matches(msg, m.keys.More):
		if !domain.AllDone(m.snap.Tasks) || m.snap.Generating {
			return m, nil
		}
		return m, m.requestMore()
	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
	}
	return m, nil
}

// moveTask shifts the selected task one column left or right.
func (m *Model) moveTask(delta int) {
	task := m.SelectedTask()
	if task == nil {
		return
	}
	statuses := domain.AllStatuses()
	idx := 0
	for i, st := range statuses {
		if st == task.Status {
			idx = i
		}
	}
	target := idx + delta
	if target < 0 || target >= len(statuses) {
		return
	}
	updated, err := m.session.UpdateStatus(task.ID, statuses[target])
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.refresh()
	// Keep the cursor on the moved task.
	for i, t := range m.boardTasks() {
		if t.ID == updated.ID {
			m.taskCursor = i
		}
	}
}

// openSubmit starts the submission input for the selected task.
func (m *Model) openSubmit() (tea.Model, tea.Cmd) {
	task := m.SelectedTask()
	if task == nil {
		return m, nil
	}
	if err := task.CanSubmit(); err != nil {
		m.err = fmt.Errorf("%s: %w", task.Title, err)
		return m, nil
	}
	m.submitTaskID = task.ID
	m.submitInput.Reset()
	m.submitInput.Placeholder = task.Kind.SubmissionHint()
	m.submitInput.Focus()
	m.mode = ModeSubmit
	return m, textinput.Blink
}

func (m *Model) handleSubmitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.submitInput.Blur()
		m.mode = ModeNormal
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		url := strings.TrimSpace(m.submitInput.Value())
		if url == "" {
			return m, nil
		}
		m.submitInput.Blur()
		m.mode = ModeNormal
		return m, m.submitWork(m.submitTaskID, url)
	}
	var cmd tea.Cmd
	m.submitInput, cmd = m.submitInput.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmEndKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Join), key.Matches(msg, m.keys.Enter):
		m.mode = ModeNormal
		m.screen = ScreenEvaluating
		return m, tea.Batch(m.endDay(), m.spinner.Tick)
	case key.Matches(msg, m.keys.Decline), key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
	}
	return m, nil
}

func (m *Model) handleDocsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.docCursor > 0 {
			m.docCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.docCursor < len(m.snap.Docs)-1 {
			m.docCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		if m.docCursor < len(m.snap.Docs) {
			d := m.snap.Docs[m.docCursor]
			m.doc.SetContent(m.markdown("# " + d.Title + "\n\n" + d.Content))
			m.doc.GotoTop()
			m.mode = ModeDoc
		}
	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
	}
	return m, nil
}

func (m *Model) handleDocKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Enter) {
		m.mode = ModeNormal
		return m, nil
	}
	var cmd tea.Cmd
	m.doc, cmd = m.doc.Update(msg)
	return m, cmd
}

func (m *Model) handleReportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Restart) {
		m.resetSession()
		_ = m.manager.Discard()
		m.nameInput.Reset()
		m.roleInput.Reset()
		m.companyInput.Reset()
		return m, m.rotateRoleHint()
	}
	return m, nil
}

// updateLayoutSizes updates component sizes after a resize.
func (m *Model) updateLayoutSizes() {
	l := m.layout()
	m.chat.Width = l.chatWidth - 4
	m.chat.Height = max(3, l.bodyHeight-6)
	m.doc.Width = min(88, max(20, m.width-8))
	m.doc.Height = max(5, m.height-6)
	m.messageInput.Width = max(10, l.chatWidth-8)
	m.updateChat()
}
