package usecase

import (
	"context"
	"testing"

	"github.com/runoshun/syntern/internal/domain"
	"github.com/runoshun/syntern/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReply_Execute(t *testing.T) {
	// Setup
	completer := &testutil.MockCompleter{Response: "[Marcus T.]: it's in the docs."}
	uc := NewReply(completer, domain.NopLogger{})
	turns := []domain.Turn{
		{Role: domain.RoleAssistant, Content: "[Marcus T.]: ping me when set up"},
		{Role: domain.RoleUser, Content: "where is the API spec?"},
	}

	// Execute
	out, err := uc.Execute(context.Background(), ReplyInput{
		Profile: testProfile(t),
		Persona: domain.PersonaTechLead,
		Turns:   turns,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "it's in the docs.", out.Text)
	call := completer.Calls()[0]
	assert.Equal(t, turns, call.Turns)
	assert.Contains(t, call.System, "Marcus T., Tech Lead at Syntern Inc.")
}

func TestReply_Execute_Errors(t *testing.T) {
	tests := []struct {
		wantErr   error
		completer *testutil.MockCompleter
		name      string
		persona   domain.PersonaID
	}{
		{name: "service", completer: &testutil.MockCompleter{Err: testutil.ServiceError(500)}, persona: domain.PersonaManager, wantErr: domain.ErrService},
		{name: "empty", completer: &testutil.MockCompleter{Response: " "}, persona: domain.PersonaClient, wantErr: domain.ErrService},
		{name: "unknown persona", completer: &testutil.MockCompleter{Response: "x"}, persona: "ceo", wantErr: domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewReply(tt.completer, domain.NopLogger{})

			_, err := uc.Execute(context.Background(), ReplyInput{Profile: testProfile(t), Persona: tt.persona})

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPersonaSystemPrompt(t *testing.T) {
	p := testProfile(t)
	tests := []struct {
		id   domain.PersonaID
		want string
	}{
		{domain.PersonaManager, "You are Sara K., Engineering Manager at Syntern Inc. The intern's name is Aria"},
		{domain.PersonaTechLead, "Push them to be self-sufficient first."},
		{domain.PersonaClient, "You are Nadia R."},
		{domain.PersonaIntern, "You are Leo B., a senior intern"},
	}
	for _, tt := range tests {
		assert.Contains(t, PersonaSystemPrompt(tt.id, p), tt.want, tt.id)
	}
}
