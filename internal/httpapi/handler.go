package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/syntern/internal/domain"
	"github.com/runoshun/syntern/internal/session"
)

// Handler serves the API routes.
type Handler struct {
	manager *session.Manager
	logger  domain.Logger
}

// NewHandler creates a Handler for manager.
func NewHandler(manager *session.Manager, logger domain.Logger) *Handler {
	return &Handler{manager: manager, logger: logger}
}

// sessionView is a snapshot with the countdown in whole seconds.
type sessionView struct {
	session.Snapshot
	RemainingSeconds int `json:"remaining_seconds"`
}

func viewOf(s *session.Session) sessionView {
	snap := s.Snapshot()
	return sessionView{Snapshot: snap, RemainingSeconds: snap.RemainingSeconds()}
}

type channelInfo struct {
	ID        domain.Channel   `json:"id"`
	Name      string           `json:"name"`
	Responder domain.PersonaID `json:"responder"`
	Direct    bool             `json:"direct"`
}

type optionsResponse struct {
	Durations []domain.DurationOption `json:"durations"`
	Roles     []string                `json:"roles"`
	Personas  []domain.Persona        `json:"personas"`
	Channels  []channelInfo           `json:"channels"`
	Statuses  []domain.Status         `json:"statuses"`
}

// Options returns the choices offered on the setup screen and the workspace layout.
func (h *Handler) Options(c *gin.Context) {
	channels := make([]channelInfo, 0, len(domain.AllChannels()))
	for _, ch := range domain.AllChannels() {
		channels = append(channels, channelInfo{ID: ch, Name: ch.Display(), Responder: ch.Responder(), Direct: ch.IsDirect()})
	}
	c.JSON(http.StatusOK, optionsResponse{
		Durations: domain.DurationOptions(),
		Roles:     domain.RoleSuggestions(),
		Personas:  domain.AllPersonas(),
		Channels:  channels,
		Statuses:  domain.AllStatuses(),
	})
}

// CreateSession validates the setup form and starts a session.
// The response is sent while the session is still initializing.
func (h *Handler) CreateSession(c *gin.Context) {
	var in domain.SetupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	s, err := h.manager.Create(in)
	if err != nil {
		writeError(c, err)
		return
	}
	h.logger.Info("http", fmt.Sprintf("session %s created for %s", s.ID(), s.Profile().Name))
	c.JSON(http.StatusCreated, viewOf(s))
}

// GetSession returns the current session state.
func (h *Handler) GetSession(c *gin.Context) {
	s, ok := h.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, viewOf(s))
}

// DeleteSession discards the current session (restart).
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.manager.Discard(); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// EndSession ends the workday and returns the evaluation.
func (h *Handler) EndSession(c *gin.Context) {
	s, ok := h.current(c)
	if !ok {
		return
	}
	report, err := s.End(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetReport returns the evaluation once it is ready.
func (h *Handler) GetReport(c *gin.Context) {
	s, ok := h.current(c)
	if !ok {
		return
	}
	report, ready := s.Report()
	if !ready {
		writeError(c, fmt.Errorf("%w: report not ready", domain.ErrInvalidPhase))
		return
	}
	c.JSON(http.StatusOK, report)
}

// ListMessages returns the transcript of one channel.
func (h *Handler) ListMessages(c *gin.Context) {
	s, ok := h.current(c)
	if !ok {
		return
	}
	ch, err := domain.ParseChannel(c.Param("channel"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Messages(ch))
}

type sendRequest struct {
	Text string `json:"text"`
}

// SendMessage posts the intern's message and waits for the persona reply.
func (h *Handler) SendMessage(c *gin.Context) {
	s, ok := h.current(c)
	if !ok {
		return
	}
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	ch, err := domain.ParseChannel(c.Param("channel"))
	if err != nil {
		writeError(c, err)
		return
	}
	msg, err := s.Send(c.Request.Context(), ch, req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// ListTasks returns the board.
func (h *Handler) ListTasks(c *gin.Context) {
	s, ok := h.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Snapshot().Tasks)
}

type statusRequest struct {
	Status domain.Status `json:"status"`
}

// UpdateTask moves a task to another column.
func (h *Handler) UpdateTask(c *gin.Context) {
	s, ok := h.current(c)
	if !ok {
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	task, err := s.UpdateStatus(id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

type submitRequest struct {
	URL string `json:"url"`
}

// SubmitTask hands in work for a task. Technical submissions are reviewed
// before the response is sent.
func (h *Handler) SubmitTask(c *gin.Context) {
	s, ok := h.current(c)
	if !ok {
		return
	}
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	if err := s.Submit(c.Request.Context(), id, req.URL); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, s.Snapshot().Tasks)
}

// RequestMoreTasks asks the manager for a follow-up batch.
func (h *Handler) RequestMoreTasks(c *gin.Context) {
	s, ok := h.current(c)
	if !ok {
		return
	}
	added, err := s.RequestMoreTasks(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if added == nil {
		added = []domain.Task{}
	}
	c.JSON(http.StatusOK, gin.H{"added": added, "tasks": s.Snapshot().Tasks})
}

// ListDocs returns the onboarding documents.
func (h *Handler) ListDocs(c *gin.Context) {
	s, ok := h.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Snapshot().Docs)
}

type meetingRequest struct {
	Join bool `json:"join"`
}

// ResolveMeeting joins or declines the pending meeting.
func (h *Handler) ResolveMeeting(c *gin.Context) {
	s, ok := h.current(c)
	if !ok {
		return
	}
	var req meetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	if err := s.ResolveMeeting(req.Join); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) current(c *gin.Context) (*session.Session, bool) {
	s, err := h.manager.Current()
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return s, true
}

func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return 0, false
	}
	return id, true
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrInvalidChannel),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrNoSubmission):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoSession),
		errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSessionExists),
		errors.Is(err, domain.ErrInvalidPhase),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrTasksRemaining),
		errors.Is(err, domain.ErrNoMeeting),
		errors.Is(err, domain.ErrSessionClosed):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidURL),
		errors.Is(err, domain.ErrNotFoundOrPrivate),
		errors.Is(err, domain.ErrUnreadable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrService),
		errors.Is(err, domain.ErrParse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
