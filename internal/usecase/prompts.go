package usecase

import (
	"fmt"
	"text/template"

	"github.com/runoshun/syntern/internal/domain"
)

// System instructions for structured generation.
const (
	taskSystemPrompt = "You are a task generator for an internship simulator. " +
		"Output ONLY valid JSON arrays. No markdown code blocks, no explanation."
	docSystemPrompt = "You are a document generator for an internship simulator. " +
		"Output ONLY valid JSON arrays. No markdown code blocks, no explanation."
	evaluationSystemPrompt = "You are an experienced engineering manager evaluating an intern's performance. " +
		"Be honest, specific, and helpful."
)

var tasksTemplate = template.Must(template.New("tasks").Parse(
	`Generate internship tasks for a "{{.Role}}" at a company called "{{.Company}}". Session is {{.Minutes}} minutes.

{{if .Completed -}}
The intern just completed these tasks:
{{range .Completed}}- {{.}}
{{end}}
Generate 4-5 NEW follow-up tasks. Make sure they are a MIX of technical tasks, communication/collaboration tasks (e.g., messaging the team, reviewing a PR, writing an update), and documentation/planning tasks.
{{- else -}}
Generate 5-7 realistic internship tasks for a first-day intern. Include reading docs, introducing themselves, and early role-specific tasks.
{{- end}}

Return a JSON array. Each task object has:
- "title": max 8 words
- "description": 2-4 lines explaining exactly what to do
- "priority": "HIGH", "MED" or "LOW"
- "deadline": "Today", "EOD" or a time such as "3:00 PM"
- "type": "technical" (submitted as a GitHub repo), "non-technical" (submitted as a Google Docs or other link) or "action" (no submission)
- "status": "todo"`))

var docsTemplate = template.Must(template.New("docs").Parse(
	`Generate onboarding documents for a "{{.Role}}" intern at a company called "{{.Company}}".

Return a JSON array of exactly 4 objects, each with "title" (starting with an emoji) and "content" (8-15 lines of plain text):
1. Project Brief: company context, mission, stack and tools, expectations for the intern
2. Product Roadmap: current sprint goals, velocity, blockers, one item assigned to the intern
3. Guidelines: standards specific to the {{.Role}} role, workflows, quality bar
4. Team Norms: communication rules, meeting cadence, red flags

Make them realistic, specific to the company and role, and slightly intimidating.`))

var reviewTemplate = template.Must(template.New("review").Parse(
	`Review this intern's code submission for the task: "{{.Title}}"

Repo: {{.Repo.Name}}
Language: {{.Repo.Language}}
Description: {{.Repo.Description}}

File tree:
{{range .Repo.Tree}}{{.}}
{{end}}
Key files:
{{range .Files}}--- {{.Path}} ---
{{.Content}}
{{end}}
Write a Slack-style code review in 4-8 lines covering:
1) what they did well
2) what needs improvement (mention file names)
3) a verdict: "Approved ✅" or "Changes Requested 🔄"`))

var evaluationTemplate = template.Must(template.New("evaluation").Parse(
	`Evaluate this intern's performance during a remote internship simulation.
Intern: {{.Profile.Name}} | Role: {{.Profile.Role.Label}} | Company: {{.Profile.Role.Company}}
Session Duration: {{.Profile.Duration.Minutes}} minutes
Tasks Completed: {{.CompletedTasks}}/{{.TotalTasks}}
Escalations Triggered: {{.Escalations}}

Their messages during the simulation:
{{if .UserMessages}}{{range .UserMessages}}- {{.}}
{{end}}{{else}}No messages sent.
{{end}}
Rate on EXACT format:
COMMUNICATION: [0-100]
PRIORITIZATION: [0-100]
INITIATIVE: [0-100]
PROFESSIONALISM: [0-100]
DELIVERY: [0-100]

Then write 3-4 paragraphs of honest manager feedback:
- What they did well
- What they need to improve
- Whether you'd recommend them for a real position
- One specific advice to take into their first real job

Be direct, constructive, and human. Not a robot.`))

// reviewSystemPrompt is the tech lead's instruction for code review.
func reviewSystemPrompt(role string) string {
	return fmt.Sprintf("You are Marcus T., a direct and slightly terse Tech Lead reviewing an intern's (%s) code submission. "+
		"Keep it short, Slack-style. Be honest but constructive. Reference specific files and patterns you see.", role)
}

// PersonaSystemPrompt returns the chat instruction for a persona.
func PersonaSystemPrompt(id domain.PersonaID, p domain.Profile) string {
	switch id {
	case domain.PersonaTechLead:
		return fmt.Sprintf("You are Marcus T., Tech Lead at %s. The intern is %s, a %s. "+
			"Be direct, slightly terse. Say \"it's in the docs\" sometimes. Respond slow (hint at async culture). "+
			"Short Slack-style replies only. Push them to be self-sufficient first.",
			p.Role.Company, p.Name, p.Role.Label)
	case domain.PersonaClient:
		return fmt.Sprintf("You are Nadia R., the client / product owner working with %s. The intern is %s. "+
			"You care about business impact, not tech. You're slightly impatient. Ask for updates. "+
			"Get nervous about deadlines. Keep messages businesslike, short, slightly pressured.",
			p.Role.Company, p.Name)
	case domain.PersonaIntern:
		return fmt.Sprintf("You are Leo B., a senior intern at %s. The new intern is %s, a %s. "+
			"Friendly but sometimes passive-aggressive. Give occasional hints. Keep it very casual and short.",
			p.Role.Company, p.Name, p.Role.Label)
	default:
		return fmt.Sprintf("You are Sara K., Engineering Manager at %s. The intern's name is %s, working as a %s. "+
			"Be professional but warm. Sometimes send unclear requirements. Occasionally change priorities. "+
			"React to their professionalism, urgency, and clarity. Keep messages SHORT (1-3 sentences) like real Slack. "+
			"Don't be robotic.",
			p.Role.Company, p.Name, p.Role.Label)
	}
}

// userTurn wraps a single instruction as the only conversation turn.
func userTurn(prompt string) []domain.Turn {
	return []domain.Turn{{Role: domain.RoleUser, Content: prompt}}
}
