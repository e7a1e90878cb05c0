package domain

import "strings"

// Channel identifies a conversation in the workspace.
type Channel string

// Channels.
const (
	ChannelGeneral     Channel = "general"
	ChannelEngineering Channel = "engineering"
	ChannelProduct     Channel = "product"
	ChannelDMManager   Channel = "dm-manager"
	ChannelDMTechLead  Channel = "dm-techlead"
)

// AllChannels returns the channels in sidebar order.
func AllChannels() []Channel {
	return []Channel{
		ChannelGeneral,
		ChannelEngineering,
		ChannelProduct,
		ChannelDMManager,
		ChannelDMTechLead,
	}
}

// responders maps each channel to the persona that answers in it.
var responders = map[Channel]PersonaID{
	ChannelGeneral:     PersonaManager,
	ChannelEngineering: PersonaTechLead,
	ChannelProduct:     PersonaClient,
	ChannelDMManager:   PersonaManager,
	ChannelDMTechLead:  PersonaTechLead,
}

// IsValid returns true if the channel is known.
func (c Channel) IsValid() bool {
	_, ok := responders[c]
	return ok
}

// IsDirect returns true for direct-message channels.
func (c Channel) IsDirect() bool {
	return c == ChannelDMManager || c == ChannelDMTechLead
}

// Display returns the sidebar label, e.g. "# general" or "@ Sara K.".
func (c Channel) Display() string {
	switch c {
	case ChannelDMManager:
		return "@ " + MustPersona(PersonaManager).Name
	case ChannelDMTechLead:
		return "@ " + MustPersona(PersonaTechLead).Name
	default:
		return "# " + string(c)
	}
}

// Responder returns the persona that replies to user messages in the channel.
// Unknown channels fall back to the manager.
func (c Channel) Responder() PersonaID {
	if id, ok := responders[c]; ok {
		return id
	}
	return PersonaManager
}

// RouteMessage picks the persona that answers text posted in channel c.
// Mentioning the senior intern pulls them into any channel.
func RouteMessage(c Channel, text string) PersonaID {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "@leo") || strings.Contains(lower, "leo b.") {
		return PersonaIntern
	}
	return c.Responder()
}

// ParseChannel converts a string (with or without the "# " prefix) into a Channel.
func ParseChannel(s string) (Channel, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	c := Channel(strings.ToLower(s))
	if !c.IsValid() {
		return "", ErrInvalidChannel
	}
	return c, nil
}
