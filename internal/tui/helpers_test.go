package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/syntern/internal/domain"
	"github.com/runoshun/syntern/internal/session"
	"github.com/runoshun/syntern/internal/testutil"
	"github.com/runoshun/syntern/internal/usecase"
)

const tasksJSON = `[
  {"title": "Build health endpoint", "description": "Add GET /healthz.", "priority": "HIGH", "deadline": "EOD", "type": "technical"},
  {"title": "Write intro update", "description": "Share a short intro doc.", "priority": "MED", "type": "non-technical"},
  {"title": "Read the handbook", "description": "Docs panel.", "priority": "LOW", "type": "action"}
]`

func scriptedLLM(system string, _ []domain.Turn) (string, error) {
	switch {
	case strings.Contains(system, "task generator"):
		return tasksJSON, nil
	case strings.Contains(system, "document generator"):
		return `[{"title": "Project Brief", "content": "Ship the **API**."}, {"title": "Team Norms", "content": "Be async."}]`, nil
	case strings.Contains(system, "evaluating an intern"):
		return "COMMUNICATION: 90\nPRIORITIZATION: 80\nINITIATIVE: 70\nPROFESSIONALISM: 85\nDELIVERY: 75\n\nSteady first day.", nil
	case strings.Contains(system, "code submission"):
		return "Nice structure.", nil
	default:
		return "Got it!", nil
	}
}

type harness struct {
	model   *Model
	manager *session.Manager
	clock   *testutil.FakeClock
	llm     *testutil.MockCompleter
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		clock: testutil.NewFakeClock(time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)),
		llm:   &testutil.MockCompleter{Handler: scriptedLLM},
	}
	repos := &testutil.MockRepoFetcher{Snapshot: testutil.SampleSnapshot()}
	logger := domain.NopLogger{}
	h.manager = session.NewManager(func(p domain.Profile, bus *session.Bus) *session.Session {
		return session.New(p, session.Deps{
			GenerateTasks: usecase.NewGenerateTasks(h.llm, logger),
			GenerateDocs:  usecase.NewGenerateDocs(h.llm, logger),
			ReviewCode:    usecase.NewReviewCode(repos, h.llm, 0, logger),
			Evaluate:      usecase.NewEvaluate(h.llm, logger),
			Reply:         usecase.NewReply(h.llm, logger),
			Clock:         h.clock,
			Bus:           bus,
		})
	}, logger)
	h.model = New(h.manager)
	h.model.renderer = nil // plain markdown keeps assertions terminal-independent
	h.model.Update(tea.WindowSizeMsg{Width: 140, Height: 48})
	t.Cleanup(func() {
		h.model.Close()
		h.manager.Shutdown()
	})
	return h
}

func (h *harness) key(s string) tea.Cmd {
	var msg tea.KeyMsg
	switch s {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+e":
		msg = tea.KeyMsg{Type: tea.KeyCtrlE}
	case "ctrl+n":
		msg = tea.KeyMsg{Type: tea.KeyCtrlN}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	_, cmd := h.model.Update(msg)
	return cmd
}

// run executes a command and feeds its message back into the model.
func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	h.model.Update(cmd())
}

// pump feeds queued session events to the model until cond holds.
func (h *harness) pump(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		for {
			select {
			case e := <-h.model.events:
				h.model.Update(MsgEvent{Event: e})
			default:
				return cond()
			}
		}
	}, time.Second, time.Millisecond)
}

// start fills the setup form and waits for the workspace.
func (h *harness) start(t *testing.T) {
	t.Helper()
	h.key("Aria")
	h.key("tab")
	h.key("Junior Backend Developer")
	h.key("tab")
	h.key("tab")
	h.key("enter")
	h.pump(t, func() bool { return h.model.screen == ScreenWorkspace })
}

// selectTask moves the board cursor to the first task of kind.
func (h *harness) selectTask(t *testing.T, kind domain.TaskKind) domain.Task {
	t.Helper()
	for i, task := range h.model.boardTasks() {
		if task.Kind == kind {
			h.model.taskCursor = i
			return task
		}
	}
	t.Fatalf("no %s task", kind)
	return domain.Task{}
}
