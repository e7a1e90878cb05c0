package domain

import (
	"fmt"
	"strings"
)

// Profile defaults.
const (
	DefaultCompany  = "Syntern Inc."
	DefaultRoleIcon = "🚀"
)

// DurationOption is a selectable session length.
type DurationOption struct {
	Label   string `json:"label"`
	Desc    string `json:"desc"`
	Minutes int    `json:"minutes"`
}

// Seconds returns the session length in seconds.
func (d DurationOption) Seconds() int {
	return d.Minutes * 60
}

// DurationOptions returns the preset session lengths.
func DurationOptions() []DurationOption {
	return []DurationOption{
		{Label: "Quick Demo", Minutes: 15, Desc: "5 tasks · 2 agents · light pressure"},
		{Label: "Real Sprint", Minutes: 30, Desc: "8 tasks · 3 agents · real deadlines"},
		{Label: "Full Week", Minutes: 60, Desc: "12 tasks · 4 agents · full chaos"},
	}
}

// DurationForMinutes returns the preset matching minutes, or a custom option.
func DurationForMinutes(minutes int) DurationOption {
	for _, d := range DurationOptions() {
		if d.Minutes == minutes {
			return d
		}
	}
	return DurationOption{Label: fmt.Sprintf("%d min", minutes), Minutes: minutes, Desc: "custom session"}
}

// RoleSuggestions returns example roles offered on the setup screen.
func RoleSuggestions() []string {
	return []string{
		"Junior Frontend Developer",
		"Junior Product Manager",
		"Junior Data Analyst",
		"Junior Full Stack Developer",
		"Junior UI/UX Designer",
		"Junior Growth Marketer",
		"Junior DevOps Engineer",
		"Junior QA Tester",
		"Junior Mobile Developer",
		"Junior AI/ML Engineer",
		"Junior Cloud Architect",
		"Junior Technical Writer",
	}
}

// RoleProfile is the internship role the user picked.
type RoleProfile struct {
	Label   string `json:"label"`
	Company string `json:"company"`
	Icon    string `json:"icon"`
}

// Profile is the validated setup of one session.
type Profile struct {
	Name     string         `json:"name"`
	Role     RoleProfile    `json:"role"`
	Duration DurationOption `json:"duration"`
}

// SetupInput contains the raw setup form values.
type SetupInput struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Company string `json:"company"`
	Minutes int    `json:"minutes"`
}

// NewProfile validates setup values and applies defaults.
func NewProfile(in SetupInput) (Profile, error) {
	name := strings.TrimSpace(in.Name)
	role := strings.TrimSpace(in.Role)
	company := strings.TrimSpace(in.Company)

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if role == "" {
		missing = append(missing, "role")
	}
	if in.Minutes <= 0 {
		missing = append(missing, "duration")
	}
	if len(missing) > 0 {
		return Profile{}, fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	if company == "" {
		company = DefaultCompany
	}

	return Profile{
		Name: name,
		Role: RoleProfile{
			Label:   role,
			Company: company,
			Icon:    DefaultRoleIcon,
		},
		Duration: DurationForMinutes(in.Minutes),
	}, nil
}
