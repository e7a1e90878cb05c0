package domain

import "fmt"

// ScriptedLine is a fixed persona message posted by the session itself.
type ScriptedLine struct {
	Persona PersonaID
	Channel Channel
	Text    string
}

// WelcomeLines returns the two greetings posted right after the session goes live.
func WelcomeLines(p Profile) []ScriptedLine {
	return []ScriptedLine{
		{
			Persona: PersonaManager,
			Channel: ChannelGeneral,
			Text: fmt.Sprintf("Hey %s! 👋 Welcome to %s! Super excited to have you join the team as our new %s. "+
				"I'm Sara, your manager. Drop a quick intro here when you get a chance, the team would love to meet you!",
				p.Name, p.Role.Company, p.Role.Label),
		},
		{
			Persona: PersonaTechLead,
			Channel: ChannelEngineering,
			Text: fmt.Sprintf("Hey %s, Marcus here. I'm the tech lead. Check the docs panel, there's a project brief "+
				"and guidelines tailored to your role. Start by reading those, then ping me in this channel when "+
				"you're set up. We have a standup in ~15 mins.", p.Name),
		},
	}
}

// MaxEscalations caps how many times silence is escalated per session.
const MaxEscalations = 3

// EscalationLine returns the escalation for the given zero-based level.
func EscalationLine(level int, name string) (ScriptedLine, bool) {
	switch level {
	case 0:
		return ScriptedLine{PersonaManager, ChannelGeneral,
			fmt.Sprintf("%s, haven't heard from you in a bit. Everything okay? Just checking in 👀", name)}, true
	case 1:
		return ScriptedLine{PersonaTechLead, ChannelEngineering,
			fmt.Sprintf("%s, are you blocked? Please update your task status on the board. Deadline is approaching.", name)}, true
	case 2:
		return ScriptedLine{PersonaClient, ChannelProduct,
			fmt.Sprintf("Hi %s, the client is asking for an ETA on the sprint items. Can you give me a status update ASAP?", name)}, true
	default:
		return ScriptedLine{}, false
	}
}

// Meeting is a pending meeting invitation.
type Meeting struct {
	Title   string `json:"title"`
	Host    string `json:"host"`
	Minutes int    `json:"minutes"`
}

// Standup returns the one meeting each session schedules.
func Standup() Meeting {
	return Meeting{Title: "Team Standup", Minutes: 5, Host: MustPersona(PersonaManager).Name}
}

// Subtitle describes the invitation, e.g. "Starting in 30 seconds · 5 min · with Sara K.".
func (m Meeting) Subtitle() string {
	return fmt.Sprintf("Starting in 30 seconds · %d min · with %s", m.Minutes, m.Host)
}

// MeetingResolution returns the manager's reaction to joining or declining.
func MeetingResolution(joined bool) ScriptedLine {
	if joined {
		return ScriptedLine{PersonaManager, ChannelGeneral,
			"Good to see you at standup! Quick update: sprint ends tomorrow. Please move your tasks to 'In Review' before EOD. Any blockers?"}
	}
	return ScriptedLine{PersonaManager, ChannelGeneral,
		"I noticed you missed standup. Please send an async update in this channel instead. It's important to keep the team in the loop."}
}

// Submission, follow-up and failure lines.
const (
	ReplyFailureText      = "Sorry, connection issue. Try again."
	ReviewPendingText     = "Pulling up the repo... give me a sec 👀"
	ReviewFailedText      = "Couldn't access that repo. Make sure it's public and the URL is correct. Try again."
	SubmissionPendingText = "Checking your submission... give me a moment. 👀"
	FollowUpReadyText     = "Alright, the board is updated with your next priorities. Check the Tasks panel!"
	FollowUpFailedText    = "Actually, looks like we're good for now! Take a breather."
)

// ReviewResultText formats a completed code review.
func ReviewResultText(title, review string) string {
	return fmt.Sprintf("Code Review for: %s\n\n%s", title, review)
}

// SubmissionApprovedText is posted when a non-technical submission is accepted.
func SubmissionApprovedText(title string) string {
	return fmt.Sprintf("Looks good! Thanks for getting the **%s** task done so quickly. Check your tasks board.", title)
}

// FollowUpRequestText is posted when the intern asks for more work.
func FollowUpRequestText(name string) string {
	return fmt.Sprintf("Nice work clearing the board, %s! Let me put together the next batch of tasks for you.", name)
}
