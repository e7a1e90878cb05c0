package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2026, 1, 5, 9, 5, 0, 0, time.UTC)

func TestNewProfile_DefaultsCompany(t *testing.T) {
	p, err := NewProfile(SetupInput{Name: "Aria", Role: "Junior Backend Developer", Minutes: 15})

	require.NoError(t, err)
	assert.Equal(t, "Aria", p.Name)
	assert.Equal(t, "Junior Backend Developer", p.Role.Label)
	assert.Equal(t, DefaultCompany, p.Role.Company)
	assert.Equal(t, DefaultRoleIcon, p.Role.Icon)
	assert.Equal(t, "Quick Demo", p.Duration.Label)
	assert.Equal(t, 900, p.Duration.Seconds())
}

func TestNewProfile_TrimsFields(t *testing.T) {
	p, err := NewProfile(SetupInput{Name: "  Aria ", Role: " QA ", Company: " Acme ", Minutes: 30})

	require.NoError(t, err)
	assert.Equal(t, "Aria", p.Name)
	assert.Equal(t, "QA", p.Role.Label)
	assert.Equal(t, "Acme", p.Role.Company)
}

func TestNewProfile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		missing string
		in      SetupInput
	}{
		{"no name", "name", SetupInput{Role: "QA", Minutes: 15}},
		{"blank role", "role", SetupInput{Name: "Aria", Role: "  ", Minutes: 15}},
		{"no duration", "duration", SetupInput{Name: "Aria", Role: "QA"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProfile(tt.in)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestDurationForMinutes_Custom(t *testing.T) {
	d := DurationForMinutes(7)
	assert.Equal(t, 7, d.Minutes)
	assert.Equal(t, 420, d.Seconds())
}

func TestRouteMessage(t *testing.T) {
	tests := []struct {
		ch   Channel
		text string
		want PersonaID
	}{
		{ChannelGeneral, "hi", PersonaManager},
		{ChannelEngineering, "hi", PersonaTechLead},
		{ChannelProduct, "hi", PersonaClient},
		{ChannelDMManager, "hi", PersonaManager},
		{ChannelDMTechLead, "hi", PersonaTechLead},
		{Channel("random"), "hi", PersonaManager},
		{ChannelEngineering, "@leo any tips?", PersonaIntern},
		{ChannelProduct, "thanks Leo B.!", PersonaIntern},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RouteMessage(tt.ch, tt.text), "%s %q", tt.ch, tt.text)
	}
}

func TestChannel_Display(t *testing.T) {
	assert.Equal(t, "# general", ChannelGeneral.Display())
	assert.Equal(t, "@ Sara K.", ChannelDMManager.Display())
	assert.Equal(t, "@ Marcus T.", ChannelDMTechLead.Display())
}

func TestParseChannel(t *testing.T) {
	c, err := ParseChannel("# Engineering")
	require.NoError(t, err)
	assert.Equal(t, ChannelEngineering, c)

	_, err = ParseChannel("random")
	assert.ErrorIs(t, err, ErrInvalidChannel)
}

func TestMessage_Turn(t *testing.T) {
	p := MustPersona(PersonaTechLead)
	m := NewPersonaMessage(p, ChannelEngineering, "it's in the docs", testTime)
	assert.Equal(t, Turn{Role: RoleAssistant, Content: "[Marcus T.]: it's in the docs"}, m.Turn())

	u := NewUserMessage("Aria", ChannelEngineering, "ok", testTime)
	assert.Equal(t, Turn{Role: RoleUser, Content: "ok"}, u.Turn())
	assert.True(t, u.IsUser())
	assert.Equal(t, "09:05", u.Timestamp())
}

func TestEscalationLine(t *testing.T) {
	for level := 0; level < MaxEscalations; level++ {
		line, ok := EscalationLine(level, "Aria")
		assert.True(t, ok)
		assert.Contains(t, line.Text, "Aria")
	}
	first, _ := EscalationLine(0, "Aria")
	assert.Equal(t, PersonaManager, first.Persona)
	assert.Equal(t, ChannelGeneral, first.Channel)

	_, ok := EscalationLine(MaxEscalations, "Aria")
	assert.False(t, ok)
}
