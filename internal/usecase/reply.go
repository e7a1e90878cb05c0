package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/runoshun/syntern/internal/domain"
)

// ReplyInput contains the parameters for a persona chat reply.
type ReplyInput struct {
	Profile domain.Profile
	Persona domain.PersonaID
	Turns   []domain.Turn // Channel history, ending with the intern's message
}

// ReplyOutput contains the persona's reply.
type ReplyOutput struct {
	Text string
}

// Reply is the use case for answering the intern in character.
type Reply struct {
	completer domain.Completer
	logger    domain.Logger
}

// NewReply creates a new Reply use case.
func NewReply(completer domain.Completer, logger domain.Logger) *Reply {
	return &Reply{
		completer: completer,
		logger:    logger,
	}
}

// Execute asks the completion service for the persona's next line.
// Errors are returned; callers decide what to show.
func (uc *Reply) Execute(ctx context.Context, in ReplyInput) (*ReplyOutput, error) {
	if !in.Persona.IsValid() {
		return nil, fmt.Errorf("unknown persona %q: %w", in.Persona, domain.ErrValidation)
	}

	text, err := uc.completer.Complete(ctx, PersonaSystemPrompt(in.Persona, in.Profile), in.Turns)
	if err != nil {
		return nil, fmt.Errorf("complete reply: %w", err)
	}
	text = stripSpeakerTag(strings.TrimSpace(text), in.Persona)
	if text == "" {
		return nil, errors.Join(domain.ErrService, errors.New("empty reply"))
	}

	uc.logger.Debug("chat", fmt.Sprintf("%s replied (%d turns of context)", in.Persona, len(in.Turns)))
	return &ReplyOutput{Text: text}, nil
}

// stripSpeakerTag removes a leading "[Name]:" the model copies from the history format.
func stripSpeakerTag(text string, id domain.PersonaID) string {
	p, ok := domain.LookupPersona(id)
	if !ok {
		return text
	}
	prefix := "[" + p.Name + "]:"
	if strings.HasPrefix(text, prefix) {
		return strings.TrimSpace(strings.TrimPrefix(text, prefix))
	}
	return text
}
