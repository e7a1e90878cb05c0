package domain

import "time"

// Role is the speaker role of a completion turn.
type Role string

// Turn roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of the conversation history sent to the completion service.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Message is a displayed chat message.
// Fields are ordered to minimize memory padding.
type Message struct {
	Time    time.Time `json:"time"`
	Channel Channel   `json:"channel"`
	Author  string    `json:"author"` // persona id or AuthorUser
	Name    string    `json:"name"`
	Avatar  string    `json:"avatar"`
	Color   string    `json:"color"`
	Text    string    `json:"text"`
}

// IsUser returns true if the human intern wrote the message.
func (m Message) IsUser() bool {
	return m.Author == AuthorUser
}

// Timestamp renders the message time as HH:MM.
func (m Message) Timestamp() string {
	return m.Time.Format("15:04")
}

// Turn returns the history entry recorded alongside the message.
// Persona lines are prefixed with the persona name so the model keeps track of speakers.
func (m Message) Turn() Turn {
	if m.IsUser() {
		return Turn{Role: RoleUser, Content: m.Text}
	}
	return Turn{Role: RoleAssistant, Content: "[" + m.Name + "]: " + m.Text}
}

// NewPersonaMessage builds a message authored by a persona.
func NewPersonaMessage(p Persona, ch Channel, text string, at time.Time) Message {
	return Message{
		Time:    at,
		Channel: ch,
		Author:  string(p.ID),
		Name:    p.Name,
		Avatar:  p.Avatar,
		Color:   p.Color,
		Text:    text,
	}
}

// NewUserMessage builds a message authored by the intern.
func NewUserMessage(name string, ch Channel, text string, at time.Time) Message {
	return Message{
		Time:    at,
		Channel: ch,
		Author:  AuthorUser,
		Name:    name,
		Avatar:  UserAvatar,
		Color:   UserColor,
		Text:    text,
	}
}
