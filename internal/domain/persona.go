package domain

// PersonaID identifies one of the simulated coworkers.
type PersonaID string

// Persona IDs.
const (
	PersonaManager  PersonaID = "manager"
	PersonaTechLead PersonaID = "techlead"
	PersonaClient   PersonaID = "client"
	PersonaIntern   PersonaID = "intern"
)

// AuthorUser is the author value of messages written by the human intern.
const AuthorUser = "user"

// User display attributes.
const (
	UserAvatar = "🧑‍💻"
	UserColor  = "#00ff88"
)

// Persona describes a simulated coworker.
// Fields are ordered to minimize memory padding.
type Persona struct {
	ID     PersonaID `json:"id"`
	Name   string    `json:"name"`
	Title  string    `json:"title"`
	Avatar string    `json:"avatar"`
	Color  string    `json:"color"`
	Home   Channel   `json:"home"`
}

var personas = map[PersonaID]Persona{
	PersonaManager: {
		ID:     PersonaManager,
		Name:   "Sara K.",
		Title:  "Engineering Manager",
		Avatar: "👩‍💼",
		Color:  "#7c3aed",
		Home:   ChannelDMManager,
	},
	PersonaTechLead: {
		ID:     PersonaTechLead,
		Name:   "Marcus T.",
		Title:  "Tech Lead",
		Avatar: "👨‍💻",
		Color:  "#0ea5e9",
		Home:   ChannelEngineering,
	},
	PersonaClient: {
		ID:     PersonaClient,
		Name:   "Nadia R.",
		Title:  "Client · Product Owner",
		Avatar: "👩‍🔧",
		Color:  "#f59e0b",
		Home:   ChannelProduct,
	},
	PersonaIntern: {
		ID:     PersonaIntern,
		Name:   "Leo B.",
		Title:  "Senior Intern",
		Avatar: "🧑‍💼",
		Color:  "#10b981",
		Home:   ChannelGeneral,
	},
}

// AllPersonas returns the personas in display order.
func AllPersonas() []Persona {
	return []Persona{
		personas[PersonaManager],
		personas[PersonaTechLead],
		personas[PersonaClient],
		personas[PersonaIntern],
	}
}

// LookupPersona returns the persona for id.
func LookupPersona(id PersonaID) (Persona, bool) {
	p, ok := personas[id]
	return p, ok
}

// MustPersona returns the persona for id and panics on unknown ids.
// Only use with the package constants.
func MustPersona(id PersonaID) Persona {
	p, ok := personas[id]
	if !ok {
		panic("unknown persona: " + string(id))
	}
	return p
}

// IsValid returns true if the id names a known persona.
func (id PersonaID) IsValid() bool {
	_, ok := personas[id]
	return ok
}
