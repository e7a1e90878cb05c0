// Package session runs one simulated internship: the phase machine, the
// scripted coworker behavior, the chat store, the task board and the timers
// that drive them. All state is in memory.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/runoshun/syntern/internal/domain"
	"github.com/runoshun/syntern/internal/usecase"
	"github.com/runoshun/syntern/internal/usecase/shared"
)

// Deps contains the collaborators of a Session.
// Fields are ordered to minimize memory padding.
type Deps struct {
	GenerateTasks *usecase.GenerateTasks
	GenerateDocs  *usecase.GenerateDocs
	ReviewCode    *usecase.ReviewCode
	Evaluate      *usecase.Evaluate
	Reply         *usecase.Reply
	Clock         domain.Clock  // Defaults to domain.RealClock
	Logger        domain.Logger // Defaults to domain.NopLogger
	Bus           *Bus          // Shared bus; a private one is created when nil
	ID            string        // Defaults to a random UUID
	Timing        domain.TimingConfig
}

// typingState counts in-flight replies per channel.
type typingState struct {
	persona domain.PersonaID
	n       int
}

// Session is one internship simulation.
// Fields are ordered to minimize memory padding.
type Session struct {
	endsAt     time.Time
	lastUserAt time.Time
	deps       Deps
	clock      domain.Clock
	logger     domain.Logger
	life       context.Context
	bus        *Bus
	timers     *timerSet
	store      *Store
	board      *Board
	cancel     context.CancelFunc
	evalDone   chan struct{}
	report     *domain.Report
	typing     map[domain.Channel]typingState
	pending    map[int64]bool // tasks with a submission under review
	followUp   singleflight.Group
	notes      notifier
	id         string
	phase      domain.Phase
	profile    domain.Profile
	outbox     []Event
	docs       []domain.Document
	timing     domain.TimingConfig
	escalation int
	mu         sync.Mutex
	evalOnce   sync.Once
	closed     bool
	generating bool
}

// New creates a Session in the Setup phase.
func New(profile domain.Profile, deps Deps) *Session {
	if deps.Clock == nil {
		deps.Clock = domain.RealClock{}
	}
	if deps.Logger == nil {
		deps.Logger = domain.NopLogger{}
	}
	if deps.Bus == nil {
		deps.Bus = NewBus()
	}
	if deps.ID == "" {
		deps.ID = uuid.NewString()
	}
	if deps.Timing == (domain.TimingConfig{}) {
		deps.Timing = domain.DefaultTiming()
	}

	life, cancel := context.WithCancel(context.Background())
	return &Session{
		deps:     deps,
		clock:    deps.Clock,
		logger:   deps.Logger,
		bus:      deps.Bus,
		life:     life,
		cancel:   cancel,
		timers:   newTimerSet(deps.Clock),
		store:    NewStore(),
		board:    NewBoard(deps.Clock.Now().UnixMilli()),
		evalDone: make(chan struct{}),
		typing:   make(map[domain.Channel]typingState),
		pending:  make(map[int64]bool),
		id:       deps.ID,
		phase:    domain.PhaseSetup,
		profile:  profile,
		timing:   deps.Timing,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Profile returns the intern's profile.
func (s *Session) Profile() domain.Profile { return s.profile }

// Subscribe registers an event handler. See Bus.Subscribe.
func (s *Session) Subscribe(handler func(Event)) (unsubscribe func()) {
	return s.bus.Subscribe(handler)
}

// emit queues an event; it is published when the lock is released through unlock.
func (s *Session) emit(e Event) {
	e.SessionID = s.id
	s.outbox = append(s.outbox, e)
}

// unlock releases the session lock and publishes queued events.
func (s *Session) unlock() {
	events := s.outbox
	s.outbox = nil
	s.mu.Unlock()
	for _, e := range events {
		s.bus.Publish(e)
	}
}

func (s *Session) setPhaseLocked(p domain.Phase) {
	s.phase = p
	s.emit(Event{Kind: EventPhase, Phase: p})
}

func (s *Session) activeLocked() bool {
	return !s.closed && s.phase == domain.PhaseActive
}

func (s *Session) requireActiveLocked() error {
	if s.closed {
		return domain.ErrSessionClosed
	}
	if s.phase != domain.PhaseActive {
		return fmt.Errorf("%w: session is %s", domain.ErrInvalidPhase, s.phase)
	}
	return nil
}

// bind derives a context that is also cancelled when the session ends or closes.
func (s *Session) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.life, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// postLocked appends a persona message and raises its notification.
func (s *Session) postLocked(id domain.PersonaID, ch domain.Channel, text string) domain.Message {
	p := domain.MustPersona(id)
	msg := s.store.Append(domain.NewPersonaMessage(p, ch, text, s.clock.Now()))
	s.emit(Event{Kind: EventMessage, Channel: ch, Persona: id, Message: &msg})

	note := s.notes.notify(p, ch, text)
	s.emit(Event{Kind: EventNotification, Channel: ch, Persona: id})
	s.timers.after(s.timing.NotificationTTL, func() {
		s.mu.Lock()
		defer s.unlock()
		if s.notes.expire(note.Seq) {
			s.emit(Event{Kind: EventNotification})
		}
	})
	return msg
}

func (s *Session) postScriptLocked(line domain.ScriptedLine) domain.Message {
	return s.postLocked(line.Persona, line.Channel, line.Text)
}

// Start generates the tasks and documents, then goes live.
// Generation failures are absorbed by fallbacks; only cancellation is returned,
// in which case the session goes back to Setup and Start may be retried.
func (s *Session) Start(ctx context.Context) error {
	profile, err := s.beginStart()
	if err != nil {
		return err
	}
	return s.completeStart(ctx, profile)
}

// beginStart moves Setup to Initializing.
func (s *Session) beginStart() (domain.Profile, error) {
	s.mu.Lock()
	defer s.unlock()
	if s.closed {
		return domain.Profile{}, domain.ErrSessionClosed
	}
	if s.phase != domain.PhaseSetup {
		return domain.Profile{}, fmt.Errorf("%w: cannot start from %s", domain.ErrInvalidPhase, s.phase)
	}
	s.setPhaseLocked(domain.PhaseInitializing)
	return s.profile, nil
}

// completeStart generates content and goes live.
func (s *Session) completeStart(ctx context.Context, profile domain.Profile) error {
	tasks, docs, err := s.prepare(ctx, profile)

	s.mu.Lock()
	defer s.unlock()
	if s.closed || s.phase != domain.PhaseInitializing {
		return domain.ErrSessionClosed
	}
	if err != nil {
		s.setPhaseLocked(domain.PhaseSetup)
		return fmt.Errorf("prepare session: %w", err)
	}

	s.board.Add(tasks)
	s.docs = docs
	now := s.clock.Now()
	s.lastUserAt = now
	s.endsAt = now.Add(time.Duration(profile.Duration.Minutes) * time.Minute)
	s.setPhaseLocked(domain.PhaseActive)
	s.emit(Event{Kind: EventTasks})
	s.scheduleLocked()

	s.logger.Info("session", fmt.Sprintf("live: %s as %s at %s for %d min (%d tasks)",
		profile.Name, profile.Role.Label, profile.Role.Company, profile.Duration.Minutes, len(tasks)))
	return nil
}

// prepare generates tasks and documents concurrently.
func (s *Session) prepare(ctx context.Context, p domain.Profile) ([]domain.Task, []domain.Document, error) {
	ctx, done := s.bind(ctx)
	defer done()

	var (
		tasks []domain.Task
		docs  []domain.Document
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := s.deps.GenerateTasks.Execute(gctx, usecase.GenerateTasksInput{
			Role:    p.Role.Label,
			Company: p.Role.Company,
			Minutes: p.Duration.Minutes,
		})
		if err != nil {
			return fmt.Errorf("generate tasks: %w", err)
		}
		tasks = out.Tasks
		return nil
	})
	g.Go(func() error {
		out, err := s.deps.GenerateDocs.Execute(gctx, usecase.GenerateDocsInput{
			Role:    p.Role.Label,
			Company: p.Role.Company,
		})
		if err != nil {
			return fmt.Errorf("generate docs: %w", err)
		}
		docs = out.Docs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return tasks, docs, nil
}

// scheduleLocked arms the welcome sequence, the meeting, the countdown and the silence check.
func (s *Session) scheduleLocked() {
	welcome := domain.WelcomeLines(s.profile)
	s.timers.after(s.timing.WelcomeDelay, func() {
		s.scripted(welcome[0])
	})
	s.timers.after(s.timing.TechLeadDelay, func() {
		if s.scripted(welcome[1]) {
			s.timers.after(s.timing.MeetingDelay, s.offerMeeting)
		}
	})
	s.timers.every(s.timing.Tick, s.tick)
	s.timers.every(s.timing.EscalationInterval, s.checkSilence)
}

// scripted posts line if the session is still live.
func (s *Session) scripted(line domain.ScriptedLine) bool {
	s.mu.Lock()
	defer s.unlock()
	if !s.activeLocked() {
		return false
	}
	s.postScriptLocked(line)
	return true
}

func (s *Session) offerMeeting() {
	s.mu.Lock()
	defer s.unlock()
	if s.activeLocked() && s.notes.offer(domain.Standup()) {
		s.emit(Event{Kind: EventMeeting})
	}
}

// tick publishes the countdown and ends the session when it reaches zero.
func (s *Session) tick() {
	s.mu.Lock()
	if !s.activeLocked() {
		s.unlock()
		return
	}
	remaining := s.remainingLocked()
	if remaining > 0 {
		s.emit(Event{Kind: EventTick, Remaining: remaining})
		s.unlock()
		return
	}
	s.unlock()

	s.logger.Info("session", "time is up")
	if _, err := s.End(context.Background()); err != nil && !errors.Is(err, domain.ErrInvalidPhase) {
		s.logger.Warn("session", fmt.Sprintf("end on timeout: %v", err))
	}
}

// checkSilence escalates when the intern has been quiet for at least the
// silence threshold. The threshold is inclusive so that a check landing
// exactly on it fires at the default cadence.
func (s *Session) checkSilence() {
	s.mu.Lock()
	defer s.unlock()
	if !s.activeLocked() || s.escalation >= domain.MaxEscalations {
		return
	}
	silence := s.clock.Now().Sub(s.lastUserAt)
	if silence < s.timing.EscalationSilence {
		return
	}
	line, ok := domain.EscalationLine(s.escalation, s.profile.Name)
	if !ok {
		return
	}
	s.escalation++
	s.postScriptLocked(line)
	s.logger.Info("escalation", fmt.Sprintf("level %d after %s of silence", s.escalation, silence.Round(time.Second)))
}

func (s *Session) remainingLocked() time.Duration {
	switch s.phase {
	case domain.PhaseSetup, domain.PhaseInitializing:
		return time.Duration(s.profile.Duration.Minutes) * time.Minute
	case domain.PhaseActive:
		if r := s.endsAt.Sub(s.clock.Now()); r > 0 {
			return r
		}
	}
	return 0
}

func (s *Session) startTypingLocked(ch domain.Channel, p domain.PersonaID) {
	st := s.typing[ch]
	st.persona = p
	st.n++
	s.typing[ch] = st
	s.emit(Event{Kind: EventTyping, Channel: ch, Persona: p})
}

func (s *Session) stopTypingLocked(ch domain.Channel) {
	st, ok := s.typing[ch]
	if !ok {
		return
	}
	st.n--
	if st.n > 0 {
		s.typing[ch] = st
		return
	}
	delete(s.typing, ch)
	s.emit(Event{Kind: EventTyping, Channel: ch})
}

// Send posts the intern's message to ch and waits for the routed persona's reply.
// A failed completion is answered with a fixed apology line.
// If the session stops being live while waiting, the reply is discarded.
func (s *Session) Send(ctx context.Context, ch domain.Channel, text string) (*domain.Message, error) {
	text, err := shared.ValidateMessage(text)
	if err != nil {
		return nil, err
	}
	if !ch.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidChannel, ch)
	}

	s.mu.Lock()
	if err := s.requireActiveLocked(); err != nil {
		s.unlock()
		return nil, err
	}
	now := s.clock.Now()
	msg := s.store.Append(domain.NewUserMessage(s.profile.Name, ch, text, now))
	s.emit(Event{Kind: EventMessage, Channel: ch, Message: &msg})
	s.lastUserAt = now
	responder := domain.RouteMessage(ch, text)
	turns := s.store.Turns(ch)
	s.startTypingLocked(ch, responder)
	profile := s.profile
	s.unlock()

	rctx, done := s.bind(ctx)
	out, err := s.deps.Reply.Execute(rctx, usecase.ReplyInput{
		Profile: profile,
		Persona: responder,
		Turns:   turns,
	})
	done()

	s.mu.Lock()
	defer s.unlock()
	s.stopTypingLocked(ch)
	if !s.activeLocked() {
		s.logger.Debug("chat", fmt.Sprintf("discarding %s reply in %s: session no longer live", responder, ch))
		return nil, domain.ErrSessionClosed
	}
	reply := domain.ReplyFailureText
	if err != nil {
		s.logger.Warn("chat", fmt.Sprintf("%s reply in %s failed: %v", responder, ch, err))
	} else {
		reply = out.Text
	}
	posted := s.postLocked(responder, ch, reply)
	return &posted, nil
}

// UpdateStatus moves a task on the board.
func (s *Session) UpdateStatus(id int64, status domain.Status) (domain.Task, error) {
	s.mu.Lock()
	defer s.unlock()
	if err := s.requireActiveLocked(); err != nil {
		return domain.Task{}, err
	}
	t, err := s.board.SetStatus(id, status)
	if err != nil {
		return t, err
	}
	s.emit(Event{Kind: EventTasks})
	return t, nil
}

// Submit hands in work for a task.
// Technical submissions are code-reviewed before returning; on failure the task is
// unchanged and the error is returned so the intern can retry. Non-technical
// submissions are approved after the review delay.
func (s *Session) Submit(ctx context.Context, id int64, url string) error {
	url = strings.TrimSpace(url)

	s.mu.Lock()
	if err := s.requireActiveLocked(); err != nil {
		s.unlock()
		return err
	}
	task, err := s.board.Get(id)
	if err != nil {
		s.unlock()
		return err
	}
	if err := task.CanSubmit(); err != nil {
		s.unlock()
		return fmt.Errorf("task %d: %w", id, err)
	}
	if url == "" {
		s.unlock()
		return fmt.Errorf("%w: submission link is empty", domain.ErrValidation)
	}
	if s.pending[id] {
		s.unlock()
		return fmt.Errorf("task %d: %w: a submission is already being checked", id, domain.ErrInvalidTransition)
	}
	s.pending[id] = true

	if task.Kind == domain.KindNonTechnical {
		s.postLocked(domain.PersonaManager, domain.ChannelGeneral, domain.SubmissionPendingText)
		s.timers.after(s.timing.ReviewDelay, func() { s.approve(id) })
		s.unlock()
		return nil
	}

	s.postLocked(domain.PersonaTechLead, domain.ChannelEngineering, domain.ReviewPendingText)
	role := s.profile.Role.Label
	s.unlock()

	rctx, done := s.bind(ctx)
	out, err := s.deps.ReviewCode.Execute(rctx, usecase.ReviewCodeInput{
		RepoURL:   url,
		TaskTitle: task.Title,
		Role:      role,
	})
	done()

	s.mu.Lock()
	defer s.unlock()
	delete(s.pending, id)
	if !s.activeLocked() {
		return domain.ErrSessionClosed
	}
	if err != nil {
		s.logger.Warn("review", fmt.Sprintf("task %d: %v", id, err))
		s.postLocked(domain.PersonaTechLead, domain.ChannelEngineering, domain.ReviewFailedText)
		return fmt.Errorf("review submission: %w", err)
	}

	s.postLocked(domain.PersonaTechLead, domain.ChannelEngineering, domain.ReviewResultText(task.Title, out.Review))
	if _, err := s.board.SetStatus(id, domain.StatusReview); err != nil {
		// Moved to done by hand while the review ran.
		s.logger.Debug("review", err.Error())
	}
	s.emit(Event{Kind: EventTasks})
	return nil
}

// approve completes a non-technical submission.
func (s *Session) approve(id int64) {
	s.mu.Lock()
	defer s.unlock()
	delete(s.pending, id)
	if !s.activeLocked() {
		return
	}
	task, err := s.board.Get(id)
	if err != nil {
		return
	}
	s.postLocked(domain.PersonaManager, domain.ChannelGeneral, domain.SubmissionApprovedText(task.Title))
	if task.Status != domain.StatusDone {
		if _, err := s.board.SetStatus(id, domain.StatusDone); err != nil {
			s.logger.Warn("tasks", err.Error())
		}
	}
	s.emit(Event{Kind: EventTasks})
}

// RequestMoreTasks asks the manager for a follow-up batch once the board is clear.
// Concurrent requests share one generation. It returns the tasks that were added;
// a failed generation still adds the fixed fallback batch.
func (s *Session) RequestMoreTasks(ctx context.Context) ([]domain.Task, error) {
	s.mu.Lock()
	if err := s.requireActiveLocked(); err != nil {
		s.unlock()
		return nil, err
	}
	if !s.board.AllDone() {
		s.unlock()
		return nil, domain.ErrTasksRemaining
	}
	s.unlock()

	v, err, _ := s.followUp.Do("follow-up", func() (any, error) {
		return s.requestMore(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Task), nil
}

func (s *Session) requestMore(ctx context.Context) ([]domain.Task, error) {
	s.mu.Lock()
	if err := s.requireActiveLocked(); err != nil {
		s.unlock()
		return nil, err
	}
	if !s.board.AllDone() {
		s.unlock()
		return nil, domain.ErrTasksRemaining
	}
	s.generating = true
	s.postLocked(domain.PersonaManager, domain.ChannelEngineering, domain.FollowUpRequestText(s.profile.Name))
	s.emit(Event{Kind: EventTasks})
	in := usecase.GenerateTasksInput{
		Role:      s.profile.Role.Label,
		Company:   s.profile.Role.Company,
		Minutes:   s.profile.Duration.Minutes,
		Completed: s.board.Completed(),
	}
	s.unlock()

	gctx, done := s.bind(ctx)
	out, err := s.deps.GenerateTasks.Execute(gctx, in)
	done()

	s.mu.Lock()
	defer s.unlock()
	s.generating = false
	if !s.activeLocked() {
		return nil, domain.ErrSessionClosed
	}
	s.emit(Event{Kind: EventTasks})
	if err != nil {
		s.postLocked(domain.PersonaManager, domain.ChannelEngineering, domain.FollowUpFailedText)
		return nil, fmt.Errorf("generate follow-up tasks: %w", err)
	}
	if out.Fallback {
		s.logger.Warn("tasks", fmt.Sprintf("follow-up generation fell back: %v", out.Cause))
	}

	added := s.board.Add(out.Tasks)
	s.postLocked(domain.PersonaManager, domain.ChannelEngineering, domain.FollowUpReadyText)
	s.logger.Info("tasks", fmt.Sprintf("added %d follow-up tasks", len(added)))
	return added, nil
}

// ResolveMeeting joins or declines the pending standup.
func (s *Session) ResolveMeeting(join bool) error {
	s.mu.Lock()
	defer s.unlock()
	if s.closed {
		return domain.ErrSessionClosed
	}
	if err := s.notes.resolve(); err != nil {
		return err
	}
	s.postScriptLocked(domain.MeetingResolution(join))
	s.emit(Event{Kind: EventMeeting})
	return nil
}

// End stops the simulation and evaluates the intern. The evaluation is requested
// once; concurrent and repeated calls return the same report.
func (s *Session) End(ctx context.Context) (*domain.Report, error) {
	s.mu.Lock()
	if s.closed {
		s.unlock()
		return nil, domain.ErrSessionClosed
	}
	switch s.phase {
	case domain.PhaseActive:
	case domain.PhaseEvaluating, domain.PhaseReport:
		done := s.evalDone
		s.unlock()
		return s.awaitReport(ctx, done)
	default:
		phase := s.phase
		s.unlock()
		return nil, fmt.Errorf("%w: cannot end from %s", domain.ErrInvalidPhase, phase)
	}

	s.setPhaseLocked(domain.PhaseEvaluating)
	s.teardownLocked()
	summary := s.summaryLocked()
	s.unlock()

	s.logger.Info("session", fmt.Sprintf("evaluating: %d messages, %d/%d tasks done, %d escalations",
		len(summary.UserMessages), summary.CompletedTasks, summary.TotalTasks, summary.Escalations))
	report := domain.FallbackReport()
	if out, err := s.deps.Evaluate.Execute(ctx, usecase.EvaluateInput{Summary: summary}); err != nil {
		s.logger.Warn("evaluate", err.Error())
	} else {
		report = out.Report
	}

	s.mu.Lock()
	defer s.unlock()
	if s.closed {
		return nil, domain.ErrSessionClosed
	}
	s.report = &report
	s.setPhaseLocked(domain.PhaseReport)
	s.emit(Event{Kind: EventReport})
	s.evalOnce.Do(func() { close(s.evalDone) })
	r := report
	return &r, nil
}

func (s *Session) awaitReport(ctx context.Context, done <-chan struct{}) (*domain.Report, error) {
	select {
	case <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.mu.Lock()
	defer s.unlock()
	if s.report == nil {
		return nil, domain.ErrSessionClosed
	}
	r := *s.report
	return &r, nil
}

// Report returns the evaluation once it is available.
func (s *Session) Report() (*domain.Report, bool) {
	s.mu.Lock()
	defer s.unlock()
	if s.report == nil {
		return nil, false
	}
	r := *s.report
	return &r, true
}

func (s *Session) summaryLocked() domain.SessionSummary {
	return domain.SessionSummary{
		Profile:        s.profile,
		UserMessages:   s.store.UserTexts(),
		CompletedTasks: s.board.DoneCount(),
		TotalTasks:     len(s.board.Tasks()),
		Escalations:    s.escalation,
	}
}

// teardownLocked stops every timer and cancels in-flight requests.
func (s *Session) teardownLocked() {
	s.timers.stop()
	s.cancel()
	s.notes.clear()
	for ch := range s.typing {
		delete(s.typing, ch)
	}
}

// Close discards the session. Pending timers never fire and late results are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.teardownLocked()
	s.evalOnce.Do(func() { close(s.evalDone) })
	s.logger.Info("session", "closed")
}

// Messages returns a copy of a channel's messages.
func (s *Session) Messages(ch domain.Channel) []domain.Message {
	return s.store.Messages(ch)
}

// Turns returns a copy of a channel's completion history.
func (s *Session) Turns(ch domain.Channel) []domain.Turn {
	return s.store.Turns(ch)
}

// Snapshot is a consistent copy of the session state.
// Fields are ordered to minimize memory padding.
type Snapshot struct {
	Report       *domain.Report                      `json:"report,omitempty"`
	Notification *Notification                       `json:"notification,omitempty"`
	Meeting      *domain.Meeting                     `json:"meeting,omitempty"`
	Counts       map[domain.Channel]int              `json:"counts"`
	Typing       map[domain.Channel]domain.PersonaID `json:"typing"`
	ID           string                              `json:"id"`
	Phase        domain.Phase                        `json:"phase"`
	Profile      domain.Profile                      `json:"profile"`
	Tasks        []domain.Task                       `json:"tasks"`
	Docs         []domain.Document                   `json:"docs"`
	Remaining    time.Duration                       `json:"remaining"`
	Escalations  int                                 `json:"escalations"`
	Generating   bool                                `json:"generating"`
	Closed       bool                                `json:"closed"`
}

// RemainingSeconds returns the countdown in whole seconds, rounded up.
func (s Snapshot) RemainingSeconds() int {
	return int((s.Remaining + time.Second - 1) / time.Second)
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.unlock()

	typing := make(map[domain.Channel]domain.PersonaID, len(s.typing))
	for ch, st := range s.typing {
		typing[ch] = st.persona
	}
	snap := Snapshot{
		ID:          s.id,
		Phase:       s.phase,
		Profile:     s.profile,
		Tasks:       s.board.Tasks(),
		Docs:        append([]domain.Document(nil), s.docs...),
		Counts:      s.store.Counts(),
		Typing:      typing,
		Remaining:   s.remainingLocked(),
		Escalations: s.escalation,
		Generating:  s.generating,
		Closed:      s.closed,
	}
	if s.notes.current != nil {
		n := *s.notes.current
		snap.Notification = &n
	}
	if s.notes.meeting != nil {
		m := *s.notes.meeting
		snap.Meeting = &m
	}
	if s.report != nil {
		r := *s.report
		snap.Report = &r
	}
	return snap
}
