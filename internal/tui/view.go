package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/syntern/internal/domain"
)

// Layout constants.
const (
	sidebarWidth = 26
	sideWidth    = 44
	barWidth     = 24
	minWidth     = 90
)

// layout holds the computed pane sizes.
type layout struct {
	chatWidth  int
	bodyHeight int
}

func (m *Model) layout() layout {
	width := max(m.width, minWidth)
	height := max(m.height, 20)
	return layout{
		chatWidth:  width - sidebarWidth - sideWidth - 4,
		bodyHeight: height - 4,
	}
}

// View renders the TUI.
func (m *Model) View() string {
	var body string
	switch m.screen {
	case ScreenSetup:
		body = m.viewSetup()
	case ScreenLoading:
		body = m.viewWaiting("Setting up your workspace...", "Generating your tasks and onboarding docs.")
	case ScreenWorkspace:
		body = m.viewWorkspace()
	case ScreenEvaluating:
		body = m.viewWaiting("Wrapping up your day...", domain.MustPersona(domain.PersonaManager).Name+" is writing your evaluation.")
	case ScreenReport:
		body = m.viewReport()
	}
	return m.styles.App.Render(body)
}

// viewSetup renders the setup form.
func (m *Model) viewSetup() string {
	var b strings.Builder
	b.WriteString(m.styles.Logo.Render("▍Syntern") + "  " + m.styles.HeaderText.Render("Your first remote internship starts now."))
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel(fieldName, "Your name"))
	b.WriteString("\n" + m.nameInput.View() + "\n\n")

	b.WriteString(m.fieldLabel(fieldRole, "Internship role"))
	b.WriteString("\n" + m.roleInput.View() + "\n")
	chips := domain.RoleSuggestions()[:4]
	for i := range chips {
		chips[i] = m.styles.Chip.Render(chips[i])
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chips...))
	b.WriteString("\n" + m.styles.DialogPrompt.Render("ctrl+n fills a suggestion") + "\n\n")

	b.WriteString(m.fieldLabel(fieldCompany, "Company (optional)"))
	b.WriteString("\n" + m.companyInput.View() + "\n\n")

	b.WriteString(m.fieldLabel(fieldDuration, "Session length"))
	b.WriteString("\n")
	options := domain.DurationOptions()
	rendered := make([]string, 0, len(options))
	for i, d := range options {
		label := fmt.Sprintf("%s · %d min", d.Label, d.Minutes)
		if i == m.duration {
			rendered = append(rendered, m.styles.OptionPick.Render(label))
			continue
		}
		rendered = append(rendered, m.styles.Option.Render(label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n" + m.styles.DialogPrompt.Render(options[m.duration].Desc) + "\n\n")

	b.WriteString(m.renderError())
	b.WriteString(m.footer([]KeyHint{{"tab", "next field"}, {"←/→", "length"}, {"enter", "start"}, {"ctrl+c", "quit"}}))
	return b.String()
}

func (m *Model) fieldLabel(f setupField, label string) string {
	if m.field == f {
		return m.styles.LabelFocus.Render("› " + label)
	}
	return m.styles.Label.Render("  " + label)
}

// viewWaiting renders a spinner screen.
func (m *Model) viewWaiting(title, detail string) string {
	box := m.styles.Dialog.Render(
		m.spinner.View() + " " + m.styles.DialogTitle.Render(title) + "\n\n" + m.styles.DialogPrompt.Render(detail),
	)
	if m.width == 0 {
		return box
	}
	return lipgloss.Place(m.width-2, max(m.height-1, 1), lipgloss.Center, lipgloss.Center, box)
}

// viewWorkspace renders the header, the three panes and the footer.
func (m *Model) viewWorkspace() string {
	if m.mode == ModeDoc {
		return m.viewDoc()
	}
	if m.mode == ModeHelp {
		return m.styles.Help.Render(m.help.FullHelpView(m.keys.FullHelp()))
	}

	l := m.layout()
	sidebar := m.pane(m.focus == FocusChannels, sidebarWidth, l.bodyHeight, m.viewChannels())
	chat := m.pane(m.focus == FocusChat, l.chatWidth, l.bodyHeight, m.viewChat())
	var right string
	if m.focus == FocusDocs {
		right = m.pane(true, sideWidth, l.bodyHeight, m.viewDocs())
	} else {
		right = m.pane(m.focus == FocusBoard, sideWidth, l.bodyHeight, m.viewBoard())
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, chat, right)

	var overlay string
	switch {
	case m.snap.Meeting != nil:
		overlay = m.viewMeeting()
	case m.mode == ModeConfirmEnd:
		overlay = m.styles.Dialog.Render(
			m.styles.DialogTitle.Render("End your workday?") + "\n\n" +
				m.styles.DialogPrompt.Render("Your manager will evaluate the session.") + "\n\n" +
				m.styles.FooterKey.Render("y") + " end day   " + m.styles.FooterKey.Render("n") + " keep working",
		)
	case m.mode == ModeSubmit:
		overlay = m.viewSubmit()
	}

	parts := []string{m.viewHeader()}
	if toast := m.viewToast(); toast != "" {
		parts = append(parts, toast)
	}
	if overlay != "" {
		parts = append(parts, overlay)
	}
	parts = append(parts, body, m.renderError()+m.footer(m.workspaceHints()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) pane(focused bool, width, height int, content string) string {
	style := m.styles.Pane
	if focused {
		style = m.styles.PaneFocused
	}
	return style.Width(width).Height(height).Render(content)
}

// viewHeader renders the company, the profile and the countdown.
func (m *Model) viewHeader() string {
	p := m.snap.Profile
	left := m.styles.Logo.Render("▍"+p.Role.Company) + "  " +
		m.styles.HeaderText.Render(fmt.Sprintf("%s %s · %s", p.Role.Icon, p.Role.Label, p.Name))
	secs := m.snap.RemainingSeconds()
	timer := m.styles.TimerStyle(secs).Render(fmt.Sprintf("⏱ %02d:%02d", secs/60, secs%60))
	right := timer + "  " + m.styles.FooterKey.Render("ctrl+e") + " end day"

	gap := max(1, max(m.width, minWidth)-lipgloss.Width(left)-lipgloss.Width(right)-2)
	return left + strings.Repeat(" ", gap) + right
}

// viewChannels renders the sidebar with unread counts.
func (m *Model) viewChannels() string {
	var b strings.Builder
	b.WriteString(m.styles.PaneTitle.Render("Channels") + "\n\n")
	for i, ch := range domain.AllChannels() {
		if i == 3 {
			b.WriteString("\n" + m.styles.PaneTitle.Render("Direct messages") + "\n")
		}
		cursor := "  "
		if m.focus == FocusChannels && i == m.channelCursor {
			cursor = "› "
		}
		style := m.styles.Channel
		if ch == m.channel {
			style = m.styles.ChannelActive
		}
		line := cursor + style.Render(ch.Display())
		if n := m.unread(ch); n > 0 {
			line += " " + m.styles.Unread.Render(fmt.Sprint(n))
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// updateChat re-renders the open channel into the chat viewport.
func (m *Model) updateChat() {
	atBottom := m.chat.AtBottom()
	var b strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString("\n")
		}
		color := msg.Color
		if msg.IsUser() {
			color = domain.UserColor
		}
		b.WriteString(msg.Avatar + " " + m.styles.AuthorStyle(color).Render(msg.Name) + " " + m.styles.Timestamp.Render(msg.Timestamp()) + "\n")
		b.WriteString(m.styles.Body.Width(max(10, m.chat.Width)).Render(msg.Text) + "\n")
	}
	m.chat.SetContent(b.String())
	if atBottom || m.sending {
		m.chat.GotoBottom()
	}
}

// viewChat renders the transcript, the typing indicator and the input.
func (m *Model) viewChat() string {
	var b strings.Builder
	b.WriteString(m.styles.PaneTitle.Render(m.channel.Display()) + "\n")
	b.WriteString(m.chat.View() + "\n")
	if id, ok := m.snap.Typing[m.channel]; ok {
		if p, found := domain.LookupPersona(id); found {
			b.WriteString(m.styles.Typing.Render(p.Name+" is typing...") + "\n")
		}
	} else {
		b.WriteString("\n")
	}
	b.WriteString(m.messageInput.View())
	return b.String()
}

// viewBoard renders the kanban columns as stacked sections.
func (m *Model) viewBoard() string {
	var b strings.Builder
	done := 0
	for _, t := range m.snap.Tasks {
		if t.Status == domain.StatusDone {
			done++
		}
	}
	b.WriteString(m.styles.PaneTitle.Render(fmt.Sprintf("Tasks %d/%d", done, len(m.snap.Tasks))) + "\n")

	if domain.AllDone(m.snap.Tasks) {
		b.WriteString("\n" + m.styles.DialogTitle.Render("🎉 Board Cleared") + "\n")
		if m.snap.Generating {
			b.WriteString(m.spinner.View() + " getting your next tasks...\n")
		} else {
			b.WriteString(m.styles.FooterKey.Render("m") + " ask for more tasks\n")
		}
	}

	idx := 0
	for _, st := range domain.AllStatuses() {
		b.WriteString("\n" + m.styles.StatusStyle(st).Render(st.Display()) + "\n")
		for _, t := range m.snap.Tasks {
			if t.Status != st {
				continue
			}
			cursor := "  "
			title := m.styles.Card.Render(t.Title)
			if m.focus == FocusBoard && idx == m.taskCursor {
				cursor = "› "
				title = m.styles.CardCursor.Render(t.Title)
			}
			meta := m.styles.PriorityStyle(t.Priority).Render(string(t.Priority))
			if t.Deadline != "" {
				meta += m.styles.Timestamp.Render(" · " + t.Deadline)
			}
			meta += m.styles.Timestamp.Render(" · " + string(t.Kind))
			b.WriteString(cursor + title + "\n    " + meta + "\n")
			idx++
		}
	}

	if m.focus == FocusBoard {
		if t := m.SelectedTask(); t != nil && t.Description != "" {
			b.WriteString("\n" + m.styles.DialogPrompt.Render(t.Description) + "\n")
		}
	}
	return b.String()
}

// viewDocs renders the document list.
func (m *Model) viewDocs() string {
	var b strings.Builder
	b.WriteString(m.styles.PaneTitle.Render("Docs") + "\n\n")
	for i, d := range m.snap.Docs {
		cursor := "  "
		style := m.styles.Card
		if i == m.docCursor {
			cursor = "› "
			style = m.styles.CardCursor
		}
		b.WriteString(cursor + style.Render("📄 "+d.Title) + "\n")
	}
	b.WriteString("\n" + m.styles.DialogPrompt.Render("enter to read"))
	return b.String()
}

// viewDoc renders the open document.
func (m *Model) viewDoc() string {
	return m.doc.View() + "\n" + m.footer([]KeyHint{{"↑/↓", "scroll"}, {"esc", "back"}})
}

// viewToast renders the latest notification.
func (m *Model) viewToast() string {
	n := m.snap.Notification
	if n == nil {
		return ""
	}
	return m.styles.Toast.Render(fmt.Sprintf("%s %s in %s: %s",
		n.Persona.Avatar, m.styles.AuthorStyle(n.Persona.Color).Render(n.Persona.Name), n.Channel.Display(), n.Preview))
}

// viewMeeting renders the meeting invitation.
func (m *Model) viewMeeting() string {
	mt := m.snap.Meeting
	return m.styles.Dialog.Render(
		m.styles.DialogTitle.Render("📅 "+mt.Title) + "\n" +
			m.styles.DialogPrompt.Render(mt.Subtitle()) + "\n\n" +
			m.styles.FooterKey.Render("y") + " join   " + m.styles.FooterKey.Render("n") + " skip",
	)
}

// viewSubmit renders the submission dialog.
func (m *Model) viewSubmit() string {
	title := "Submit work"
	for _, t := range m.snap.Tasks {
		if t.ID == m.submitTaskID {
			title = "Submit: " + t.Title
		}
	}
	return m.styles.Dialog.Render(
		m.styles.DialogTitle.Render(title) + "\n\n" +
			m.styles.Input.Render(m.submitInput.View()) + "\n\n" +
			m.styles.DialogPrompt.Render("enter to submit · esc to cancel"),
	)
}

// viewReport renders the evaluation.
func (m *Model) viewReport() string {
	r := m.report
	if r == nil {
		return m.viewWaiting("Wrapping up your day...", "")
	}
	var b strings.Builder
	p := m.snap.Profile
	b.WriteString(m.styles.Logo.Render("Performance Report") + "  " +
		m.styles.HeaderText.Render(fmt.Sprintf("%s · %s · %s", p.Name, p.Role.Label, p.Role.Company)) + "\n\n")

	for _, metric := range domain.AllMetrics() {
		score := r.Scores[metric]
		filled := score * barWidth / 100
		bar := m.styles.Bar.Render(strings.Repeat("█", filled)) + m.styles.BarRest.Render(strings.Repeat("░", barWidth-filled))
		b.WriteString(m.styles.Score.Render(metric.Display()) + " " + bar + fmt.Sprintf(" %3d", score) + "\n")
	}

	b.WriteString(fmt.Sprintf("\nOverall: %s\n", m.styles.Timer.Render(fmt.Sprintf("%.0f/100", r.Overall))))
	b.WriteString(m.styles.Verdict.Render(r.Verdict.Emoji+" "+r.Verdict.Label) + "\n\n")
	if r.Narrative != "" {
		b.WriteString(m.markdown(r.Narrative) + "\n\n")
	}
	b.WriteString(m.styles.Badge.Render("🏅 "+domain.Badge) + "\n\n")
	b.WriteString(m.footer([]KeyHint{{"r", "new session"}, {"ctrl+c", "quit"}}))
	return b.String()
}

func (m *Model) workspaceHints() []KeyHint {
	switch m.focus {
	case FocusBoard:
		return []KeyHint{{"↑/↓", "select"}, {"←/→", "move"}, {"s", "submit"}, {"tab", "next pane"}}
	case FocusChannels:
		return []KeyHint{{"↑/↓", "select"}, {"enter", "open"}, {"tab", "next pane"}}
	case FocusDocs:
		return []KeyHint{{"↑/↓", "select"}, {"enter", "read"}, {"tab", "next pane"}}
	default:
		return []KeyHint{{"enter", "send"}, {"tab", "next pane"}, {"?", "help"}}
	}
}

func (m *Model) renderError() string {
	if m.err == nil {
		return ""
	}
	return m.styles.ErrorMsg.Render("Error: "+m.err.Error()) + "\n"
}
