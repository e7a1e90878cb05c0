package session

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/syntern/internal/domain"
	"github.com/runoshun/syntern/internal/testutil"
	"github.com/runoshun/syntern/internal/usecase"
)

func TestSession_Start(t *testing.T) {
	// Setup
	f := newFixture(t)
	require.Equal(t, domain.PhaseSetup, f.session.Snapshot().Phase)

	// Execute
	err := f.session.Start(context.Background())

	// Assert
	require.NoError(t, err)
	snap := f.session.Snapshot()
	assert.Equal(t, domain.PhaseActive, snap.Phase)
	assert.Equal(t, "Syntern Inc.", snap.Profile.Role.Company)
	assert.Equal(t, 900, snap.RemainingSeconds())
	require.Len(t, snap.Tasks, 3)
	require.Len(t, snap.Docs, 4)
	for i, task := range snap.Tasks {
		assert.Equal(t, startTime.UnixMilli()+int64(i), task.ID)
		assert.Equal(t, domain.StatusTodo, task.Status)
	}
	assert.Len(t, f.llm.CallsWithSystem(sysTasks), 1)
	assert.Len(t, f.llm.CallsWithSystem(sysDocs), 1)

	assert.ErrorIs(t, f.session.Start(context.Background()), domain.ErrInvalidPhase)
}

func TestSession_Start_Fallbacks(t *testing.T) {
	f := newFixture(t)
	f.llm.Handler = nil
	f.llm.Err = testutil.ServiceError(503)

	require.NoError(t, f.session.Start(context.Background()))

	snap := f.session.Snapshot()
	assert.Equal(t, domain.PhaseActive, snap.Phase)
	want := usecase.FallbackTasks("Junior Backend Developer", "Syntern Inc.")
	require.Len(t, snap.Tasks, len(want))
	for i := range want {
		assert.Equal(t, want[i].Title, snap.Tasks[i].Title)
	}
	assert.Equal(t, usecase.FallbackDocs("Junior Backend Developer", "Syntern Inc."), snap.Docs)
}

func TestSession_WelcomeSequence(t *testing.T) {
	f := newActiveFixture(t)
	assert.Empty(t, f.session.Messages(domain.ChannelGeneral))

	f.clock.Advance(800 * time.Millisecond)
	general := f.texts(domain.ChannelGeneral, domain.PersonaManager)
	require.Len(t, general, 1)
	assert.Contains(t, general[0], "Hey Aria!")
	assert.Empty(t, f.session.Messages(domain.ChannelEngineering))

	f.clock.Advance(2 * time.Second)
	engineering := f.texts(domain.ChannelEngineering, domain.PersonaTechLead)
	require.Len(t, engineering, 1)
	assert.Contains(t, engineering[0], "Marcus here")
}

func TestSession_Send_Routing(t *testing.T) {
	tests := []struct {
		channel domain.Channel
		text    string
		want    domain.PersonaID
	}{
		{domain.ChannelGeneral, "Hi all!", domain.PersonaManager},
		{domain.ChannelEngineering, "Where is the repo?", domain.PersonaTechLead},
		{domain.ChannelProduct, "Status: on track", domain.PersonaClient},
		{domain.ChannelDMManager, "Quick question", domain.PersonaManager},
		{domain.ChannelDMTechLead, "Can you review?", domain.PersonaTechLead},
		{domain.ChannelGeneral, "@leo any tips?", domain.PersonaIntern},
		{domain.ChannelEngineering, "thanks Leo B.!", domain.PersonaIntern},
	}
	for _, tt := range tests {
		t.Run(string(tt.channel)+"/"+tt.text, func(t *testing.T) {
			f := newActiveFixture(t)

			reply, err := f.session.Send(context.Background(), tt.channel, "  "+tt.text+"\n")

			require.NoError(t, err)
			assert.Equal(t, string(tt.want), reply.Author)
			assert.Equal(t, replyText, reply.Text)
			msgs := f.session.Messages(tt.channel)
			require.Len(t, msgs, 2)
			assert.True(t, msgs[0].IsUser())
			assert.Equal(t, tt.text, msgs[0].Text)

			calls := f.llm.Calls()
			last := calls[len(calls)-1]
			assert.Equal(t, usecase.PersonaSystemPrompt(tt.want, f.session.Profile()), last.System)
			assert.Equal(t, tt.text, last.Prompt())
		})
	}
}

func TestSession_Send_HistoryIsPerChannel(t *testing.T) {
	f := newActiveFixture(t)
	f.clock.Advance(3 * time.Second) // welcome lines

	_, err := f.session.Send(context.Background(), domain.ChannelGeneral, "Hello Sara")
	require.NoError(t, err)

	calls := f.llm.Calls()
	turns := calls[len(calls)-1].Turns
	want := []domain.Turn{
		{Role: domain.RoleAssistant, Content: "[Sara K.]: " + domain.WelcomeLines(f.session.Profile())[0].Text},
		{Role: domain.RoleUser, Content: "Hello Sara"},
	}
	if diff := cmp.Diff(want, turns); diff != "" {
		t.Errorf("reply context mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_Send_Failure(t *testing.T) {
	f := newActiveFixture(t)
	f.llm.Handler = func(system string, turns []domain.Turn) (string, error) {
		if strings.Contains(system, "Tech Lead at") {
			return "", testutil.ServiceError(500)
		}
		return scriptedLLM(system, turns)
	}

	reply, err := f.session.Send(context.Background(), domain.ChannelEngineering, "ping")

	require.NoError(t, err)
	assert.Equal(t, domain.ReplyFailureText, reply.Text)
	assert.Equal(t, string(domain.PersonaTechLead), reply.Author)
	assert.Empty(t, f.session.Snapshot().Typing)
}

func TestSession_Send_Errors(t *testing.T) {
	f := newFixture(t)
	_, err := f.session.Send(context.Background(), domain.ChannelGeneral, "too early")
	assert.ErrorIs(t, err, domain.ErrInvalidPhase)

	require.NoError(t, f.session.Start(context.Background()))
	_, err = f.session.Send(context.Background(), domain.ChannelGeneral, " \r\n ")
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	_, err = f.session.Send(context.Background(), domain.Channel("random"), "hi")
	assert.ErrorIs(t, err, domain.ErrInvalidChannel)
	assert.Empty(t, f.session.Messages(domain.ChannelGeneral))
}

func TestSession_MessagesAndTurnsStayAligned(t *testing.T) {
	f := newActiveFixture(t, func(tc *domain.TimingConfig) {
		tc.EscalationInterval = 5 * time.Second
	})
	rng := rand.New(rand.NewSource(42))
	channels := domain.AllChannels()

	for i := 0; i < 60; i++ {
		switch rng.Intn(3) {
		case 0:
			ch := channels[rng.Intn(len(channels))]
			_, err := f.session.Send(context.Background(), ch, "update "+string(ch))
			require.NoError(t, err)
		case 1:
			f.clock.Advance(time.Duration(rng.Intn(40)) * time.Second)
		case 2:
			_ = f.session.ResolveMeeting(rng.Intn(2) == 0)
		}
		for _, ch := range channels {
			require.Equal(t, len(f.session.Messages(ch)), len(f.session.Turns(ch)), "channel %s after step %d", ch, i)
		}
	}
}

func TestSession_Escalation_FirstAfterSilence(t *testing.T) {
	tests := []struct {
		name string
		tune []func(*domain.TimingConfig)
	}{
		{name: "default cadence"},
		{name: "cadence off the threshold", tune: []func(*domain.TimingConfig){func(tc *domain.TimingConfig) {
			tc.EscalationInterval = 7 * time.Second
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			f := newActiveFixture(t, tt.tune...)

			// Execute
			f.clock.Advance(91 * time.Second)

			// Assert
			var escalations []string
			for _, text := range f.texts(domain.ChannelGeneral, domain.PersonaManager) {
				if strings.Contains(text, "haven't heard from you") {
					escalations = append(escalations, text)
				}
			}
			assert.Len(t, escalations, 1)
			assert.Equal(t, 1, f.session.Snapshot().Escalations)
			assert.Len(t, f.texts(domain.ChannelEngineering, domain.PersonaTechLead), 1, "only the welcome line")
		})
	}
}

func TestSession_Escalation_BelowThreshold(t *testing.T) {
	f := newActiveFixture(t, func(tc *domain.TimingConfig) {
		tc.EscalationInterval = time.Second
	})

	f.clock.Advance(89 * time.Second)
	assert.Equal(t, 0, f.session.Snapshot().Escalations)

	f.clock.Advance(time.Second)
	assert.Equal(t, 1, f.session.Snapshot().Escalations, "the threshold itself escalates")
}

func TestSession_Escalation_CappedAndMonotone(t *testing.T) {
	f := newActiveFixture(t)

	prev := 0
	for i := 0; i < 40; i++ {
		f.clock.Advance(15 * time.Second)
		n := f.session.Snapshot().Escalations
		require.GreaterOrEqual(t, n, prev)
		require.LessOrEqual(t, n, domain.MaxEscalations)
		prev = n
	}

	assert.Equal(t, domain.MaxEscalations, prev)
	assert.Len(t, f.texts(domain.ChannelEngineering, domain.PersonaTechLead), 2, "welcome + escalation")
	product := f.texts(domain.ChannelProduct, domain.PersonaClient)
	require.Len(t, product, 1)
	assert.Contains(t, product[0], "ETA")
}

func TestSession_Escalation_UserMessageResetsSilence(t *testing.T) {
	f := newActiveFixture(t, func(tc *domain.TimingConfig) {
		tc.EscalationInterval = time.Second
	})

	f.clock.Advance(60 * time.Second)
	_, err := f.session.Send(context.Background(), domain.ChannelGeneral, "Working on the endpoint")
	require.NoError(t, err)
	f.clock.Advance(60 * time.Second)

	assert.Equal(t, 0, f.session.Snapshot().Escalations)
}

func TestSession_UpdateStatus(t *testing.T) {
	f := newActiveFixture(t)
	tech := f.taskOfKind(t, domain.KindTechnical)
	action := f.taskOfKind(t, domain.KindAction)

	got, err := f.session.UpdateStatus(tech.ID, domain.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, got.Status)

	_, err = f.session.UpdateStatus(tech.ID, domain.StatusReview)
	require.NoError(t, err)
	_, err = f.session.UpdateStatus(tech.ID, domain.StatusTodo)
	require.NoError(t, err)

	_, err = f.session.UpdateStatus(action.ID, domain.StatusReview)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.session.UpdateStatus(action.ID, domain.StatusDone)
	require.NoError(t, err)
	_, err = f.session.UpdateStatus(action.ID, domain.StatusInProgress)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.session.UpdateStatus(tech.ID, domain.Status("blocked"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	_, err = f.session.UpdateStatus(1, domain.StatusDone)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestSession_Submit_Technical(t *testing.T) {
	// Setup
	f := newActiveFixture(t)
	tech := f.taskOfKind(t, domain.KindTechnical)

	// Execute
	err := f.session.Submit(context.Background(), tech.ID, "https://github.com/aria/todo-app")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"https://github.com/aria/todo-app"}, f.repos.URLs())
	lines := f.texts(domain.ChannelEngineering, domain.PersonaTechLead)
	require.Len(t, lines, 2)
	assert.Equal(t, domain.ReviewPendingText, lines[0])
	assert.Equal(t, domain.ReviewResultText(tech.Title, reviewText), lines[1])

	got := f.taskOfKind(t, domain.KindTechnical)
	assert.Equal(t, domain.StatusReview, got.Status)

	review := f.llm.CallsWithSystem(sysReview)
	require.Len(t, review, 1)
	assert.Contains(t, review[0].Prompt(), "todo-app")
}

func TestSession_Submit_RepoNotFound(t *testing.T) {
	// Setup
	f := newActiveFixture(t)
	f.repos.Err = domain.ErrNotFoundOrPrivate
	tech := f.taskOfKind(t, domain.KindTechnical)

	// Execute
	err := f.session.Submit(context.Background(), tech.ID, "https://github.com/foo/bar")

	// Assert
	require.ErrorIs(t, err, domain.ErrNotFoundOrPrivate)
	assert.Equal(t, domain.StatusTodo, f.taskOfKind(t, domain.KindTechnical).Status)
	lines := f.texts(domain.ChannelEngineering, domain.PersonaTechLead)
	require.NotEmpty(t, lines)
	assert.Equal(t, domain.ReviewFailedText, lines[len(lines)-1])
	assert.Empty(t, f.llm.CallsWithSystem(sysReview))

	// Retry succeeds once the repo is reachable.
	f.repos.Err = nil
	require.NoError(t, f.session.Submit(context.Background(), tech.ID, "https://github.com/foo/bar"))
	assert.Equal(t, domain.StatusReview, f.taskOfKind(t, domain.KindTechnical).Status)
}

func TestSession_Submit_NonTechnical(t *testing.T) {
	f := newActiveFixture(t)
	doc := f.taskOfKind(t, domain.KindNonTechnical)

	require.NoError(t, f.session.Submit(context.Background(), doc.ID, "https://docs.google.com/d/abc"))

	assert.Equal(t, []string{domain.SubmissionPendingText}, f.texts(domain.ChannelGeneral, domain.PersonaManager))
	assert.Equal(t, domain.StatusTodo, f.taskOfKind(t, domain.KindNonTechnical).Status)
	assert.ErrorIs(t, f.session.Submit(context.Background(), doc.ID, "https://docs.google.com/d/abc"), domain.ErrInvalidTransition)

	f.clock.Advance(2 * time.Second)

	assert.Equal(t, domain.StatusDone, f.taskOfKind(t, domain.KindNonTechnical).Status)
	general := f.texts(domain.ChannelGeneral, domain.PersonaManager)
	assert.Contains(t, general, domain.SubmissionApprovedText(doc.Title))
	assert.Empty(t, f.repos.URLs())
}

func TestSession_Submit_Rejected(t *testing.T) {
	f := newActiveFixture(t)
	tech := f.taskOfKind(t, domain.KindTechnical)
	action := f.taskOfKind(t, domain.KindAction)

	assert.ErrorIs(t, f.session.Submit(context.Background(), action.ID, "https://x"), domain.ErrNoSubmission)
	assert.ErrorIs(t, f.session.Submit(context.Background(), tech.ID, "   "), domain.ErrValidation)
	assert.ErrorIs(t, f.session.Submit(context.Background(), 7, "https://x"), domain.ErrTaskNotFound)

	_, err := f.session.UpdateStatus(tech.ID, domain.StatusDone)
	require.NoError(t, err)
	assert.ErrorIs(t, f.session.Submit(context.Background(), tech.ID, "https://github.com/a/b"), domain.ErrInvalidTransition)
	assert.Empty(t, f.repos.URLs())
}

func TestSession_RequestMoreTasks(t *testing.T) {
	// Setup
	f := newActiveFixture(t)
	_, err := f.session.RequestMoreTasks(context.Background())
	require.ErrorIs(t, err, domain.ErrTasksRemaining)
	f.finishAll(t)
	before := f.session.Snapshot().Tasks

	// Execute
	added, err := f.session.RequestMoreTasks(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, added, 2)
	tasks := f.session.Snapshot().Tasks
	require.Len(t, tasks, len(before)+2)
	assert.Equal(t, before, tasks[:len(before)], "existing tasks are kept")
	seen := map[int64]bool{}
	for _, task := range tasks {
		assert.False(t, seen[task.ID], "duplicate id %d", task.ID)
		seen[task.ID] = true
	}

	calls := f.llm.CallsWithSystem(sysTasks)
	require.Len(t, calls, 2)
	for _, task := range before {
		assert.Contains(t, calls[1].Prompt(), task.Title)
	}
	lines := f.texts(domain.ChannelEngineering, domain.PersonaManager)
	assert.Equal(t, []string{domain.FollowUpRequestText("Aria"), domain.FollowUpReadyText}, lines)
}

func TestSession_RequestMoreTasks_GenerationFallsBack(t *testing.T) {
	// Setup
	f := newActiveFixture(t)
	f.finishAll(t)
	f.llm.Handler = nil
	f.llm.Err = testutil.ServiceError(500)
	p := f.session.Profile()

	// Execute
	added, err := f.session.RequestMoreTasks(context.Background())

	// Assert
	require.NoError(t, err)
	fallback := usecase.FallbackTasks(p.Role.Label, p.Role.Company)
	require.Len(t, added, len(fallback))
	for i, task := range added {
		assert.Equal(t, fallback[i].Title, task.Title)
		assert.Equal(t, domain.StatusTodo, task.Status)
	}
	assert.Len(t, f.session.Snapshot().Tasks, 6)
	lines := f.texts(domain.ChannelEngineering, domain.PersonaManager)
	assert.Equal(t, domain.FollowUpReadyText, lines[len(lines)-1])
}

func TestSession_RequestMoreTasks_Cancelled(t *testing.T) {
	f := newActiveFixture(t)
	f.finishAll(t)
	ctx, cancel := context.WithCancel(context.Background())
	f.llm.Handler = func(string, []domain.Turn) (string, error) {
		cancel()
		return "", context.Canceled
	}

	added, err := f.session.RequestMoreTasks(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, added)
	assert.Len(t, f.session.Snapshot().Tasks, 3)
	lines := f.texts(domain.ChannelEngineering, domain.PersonaManager)
	assert.Equal(t, domain.FollowUpFailedText, lines[len(lines)-1])
}

func TestSession_RequestMoreTasks_Concurrent(t *testing.T) {
	f := newActiveFixture(t)
	f.finishAll(t)
	release := make(chan struct{})
	f.llm.Handler = func(system string, turns []domain.Turn) (string, error) {
		if strings.Contains(system, sysTasks) {
			<-release
		}
		return scriptedLLM(system, turns)
	}

	var wg sync.WaitGroup
	results := make([][]domain.Task, 3)
	errs := make([]error, 3)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.session.RequestMoreTasks(context.Background())
		}(i)
	}
	require.Eventually(t, func() bool { return len(f.llm.CallsWithSystem(sysTasks)) == 2 }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Len(t, f.llm.CallsWithSystem(sysTasks), 2, "one initial and one follow-up generation")
	assert.Len(t, f.session.Snapshot().Tasks, 5)
	for i := range results {
		if errs[i] != nil {
			assert.ErrorIs(t, errs[i], domain.ErrTasksRemaining)
			continue
		}
		assert.Len(t, results[i], 2)
	}
}

func TestSession_Meeting(t *testing.T) {
	f := newActiveFixture(t)
	assert.ErrorIs(t, f.session.ResolveMeeting(true), domain.ErrNoMeeting)

	f.clock.Advance(2800*time.Millisecond + 18*time.Second)

	meeting := f.session.Snapshot().Meeting
	require.NotNil(t, meeting)
	assert.Equal(t, domain.Standup(), *meeting)

	require.NoError(t, f.session.ResolveMeeting(false))
	general := f.texts(domain.ChannelGeneral, domain.PersonaManager)
	assert.Equal(t, domain.MeetingResolution(false).Text, general[len(general)-1])
	assert.Nil(t, f.session.Snapshot().Meeting)
	assert.ErrorIs(t, f.session.ResolveMeeting(true), domain.ErrNoMeeting)

	f.clock.Advance(5 * time.Minute)
	assert.Nil(t, f.session.Snapshot().Meeting, "the standup never recurs")
}

func TestSession_Notifications(t *testing.T) {
	f := newActiveFixture(t)

	f.clock.Advance(800 * time.Millisecond)
	note := f.session.Snapshot().Notification
	require.NotNil(t, note)
	assert.Equal(t, domain.PersonaManager, note.Persona.ID)
	assert.True(t, strings.HasSuffix(note.Preview, "..."))
	assert.Len(t, []rune(note.Preview), 73)

	f.clock.Advance(2 * time.Second) // tech lead supersedes the manager
	note = f.session.Snapshot().Notification
	require.NotNil(t, note)
	assert.Equal(t, domain.PersonaTechLead, note.Persona.ID)

	f.clock.Advance(2300 * time.Millisecond) // manager toast would expire here
	require.NotNil(t, f.session.Snapshot().Notification)

	f.clock.Advance(2 * time.Second)
	assert.Nil(t, f.session.Snapshot().Notification)
}

func TestSession_End(t *testing.T) {
	// Setup
	f := newActiveFixture(t)
	_, err := f.session.Send(context.Background(), domain.ChannelGeneral, "Hi, I'm Aria")
	require.NoError(t, err)
	doc := f.taskOfKind(t, domain.KindAction)
	_, err = f.session.UpdateStatus(doc.ID, domain.StatusDone)
	require.NoError(t, err)

	// Execute
	var wg sync.WaitGroup
	reports := make([]*domain.Report, 4)
	for i := range reports {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := f.session.End(context.Background())
			assert.NoError(t, err)
			reports[i] = r
		}(i)
	}
	wg.Wait()

	// Assert
	calls := f.llm.CallsWithSystem(sysEval)
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt(), "Hi, I'm Aria")
	for _, r := range reports {
		require.NotNil(t, r)
		assert.Equal(t, 80, r.Scores[domain.MetricCommunication])
		assert.InDelta(t, 75.0, r.Overall, 0.01)
	}
	snap := f.session.Snapshot()
	assert.Equal(t, domain.PhaseReport, snap.Phase)
	assert.Equal(t, 0, snap.RemainingSeconds())
	assert.Equal(t, 0, f.clock.Pending())

	_, err = f.session.Send(context.Background(), domain.ChannelGeneral, "late")
	assert.ErrorIs(t, err, domain.ErrInvalidPhase)
	f.clock.Advance(time.Hour)
	assert.Equal(t, 1, len(f.llm.CallsWithSystem(sysEval)))
}

func TestSession_End_FallbackReport(t *testing.T) {
	f := newActiveFixture(t)
	f.llm.Handler = nil
	f.llm.Err = errors.New("connection refused")

	report, err := f.session.End(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.FallbackReport(), *report)
}

func TestSession_End_OnTimeout(t *testing.T) {
	f := newActiveFixture(t)
	log := &eventLog{}
	f.session.Subscribe(log.record)

	f.clock.Advance(14*time.Minute + 59*time.Second)
	require.Equal(t, domain.PhaseActive, f.session.Snapshot().Phase)
	assert.Equal(t, 1, f.session.Snapshot().RemainingSeconds())

	f.clock.Advance(time.Second)

	assert.Equal(t, domain.PhaseReport, f.session.Snapshot().Phase)
	assert.Len(t, f.llm.CallsWithSystem(sysEval), 1)
	assert.Equal(t, 1, log.count(EventReport))
	report, ok := f.session.Report()
	require.True(t, ok)
	assert.False(t, report.Fallback)
}

func TestSession_End_BeforeStart(t *testing.T) {
	f := newFixture(t)

	_, err := f.session.End(context.Background())

	assert.ErrorIs(t, err, domain.ErrInvalidPhase)
}

func TestSession_LateReplyIsDiscarded(t *testing.T) {
	// Setup
	f := newActiveFixture(t)
	release := make(chan struct{})
	f.llm.Handler = func(system string, turns []domain.Turn) (string, error) {
		if strings.Contains(system, "Engineering Manager at") {
			<-release
		}
		return scriptedLLM(system, turns)
	}

	var sendErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, sendErr = f.session.Send(context.Background(), domain.ChannelGeneral, "Anyone around?")
	}()
	require.Eventually(t, func() bool {
		return len(f.llm.CallsWithSystem("Engineering Manager at")) == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, domain.PersonaManager, f.session.Snapshot().Typing[domain.ChannelGeneral])

	// Execute
	_, err := f.session.End(context.Background())
	require.NoError(t, err)
	close(release)
	<-done

	// Assert
	assert.ErrorIs(t, sendErr, domain.ErrSessionClosed)
	msgs := f.session.Messages(domain.ChannelGeneral)
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].IsUser())
	assert.Empty(t, f.session.Snapshot().Typing)
}

func TestSession_Close(t *testing.T) {
	f := newActiveFixture(t)
	require.Positive(t, f.clock.Pending())

	f.session.Close()
	f.session.Close()

	assert.Equal(t, 0, f.clock.Pending())
	assert.True(t, f.session.Snapshot().Closed)
	_, err := f.session.Send(context.Background(), domain.ChannelGeneral, "hello?")
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
	_, err = f.session.End(context.Background())
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
	f.clock.Advance(time.Hour)
	assert.Empty(t, f.session.Messages(domain.ChannelGeneral))
}

func TestSession_Events(t *testing.T) {
	f := newFixture(t)
	log := &eventLog{}
	var snaps []domain.Phase
	unsubscribe := f.session.Subscribe(func(e Event) {
		log.record(e)
		if e.Kind == EventPhase {
			// Handlers may read the session.
			snaps = append(snaps, f.session.Snapshot().Phase)
		}
	})

	require.NoError(t, f.session.Start(context.Background()))
	_, err := f.session.Send(context.Background(), domain.ChannelProduct, "Hi Nadia")
	require.NoError(t, err)
	f.clock.Advance(time.Second)
	unsubscribe()
	f.clock.Advance(time.Minute)

	assert.Equal(t, []domain.Phase{domain.PhaseInitializing, domain.PhaseActive}, snaps)
	kinds := log.kinds()
	assert.Contains(t, kinds, EventTasks)
	assert.Contains(t, kinds, EventTyping)
	assert.Equal(t, 3, log.count(EventMessage), "user line, reply, welcome")
	assert.Equal(t, 1, log.count(EventTick))
}
