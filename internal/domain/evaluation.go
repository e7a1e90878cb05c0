package domain

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Metric is one of the scored evaluation dimensions.
type Metric string

// Metrics.
const (
	MetricCommunication   Metric = "COMMUNICATION"
	MetricPrioritization  Metric = "PRIORITIZATION"
	MetricInitiative      Metric = "INITIATIVE"
	MetricProfessionalism Metric = "PROFESSIONALISM"
	MetricDelivery        Metric = "DELIVERY"
)

// DefaultScore is used when a metric is missing from the report text.
const DefaultScore = 60

// Badge is printed on the report card.
const Badge = "Remote Work Simulator"

// AllMetrics returns the metrics in report order.
func AllMetrics() []Metric {
	return []Metric{
		MetricCommunication,
		MetricPrioritization,
		MetricInitiative,
		MetricProfessionalism,
		MetricDelivery,
	}
}

// Display returns the metric label in title case.
func (m Metric) Display() string {
	s := strings.ToLower(string(m))
	return strings.ToUpper(s[:1]) + s[1:]
}

// Verdict is the hiring recommendation derived from the overall score.
type Verdict struct {
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

// VerdictFor maps an overall score onto a verdict tier.
func VerdictFor(overall float64) Verdict {
	switch {
	case overall >= 80:
		return Verdict{Label: "Hire Fast", Emoji: "🚀"}
	case overall >= 65:
		return Verdict{Label: "Strong Candidate", Emoji: "⭐"}
	case overall >= 50:
		return Verdict{Label: "Needs Growth", Emoji: "📈"}
	default:
		return Verdict{Label: "Not Ready Yet", Emoji: "⚠️"}
	}
}

// Report is the parsed end-of-session evaluation.
type Report struct {
	Scores    map[Metric]int `json:"scores"`
	Verdict   Verdict        `json:"verdict"`
	Text      string         `json:"text"`
	Narrative string         `json:"narrative"`
	Overall   float64        `json:"overall"`
	Fallback  bool           `json:"fallback"`
}

var scorePatterns = func() map[Metric]*regexp.Regexp {
	m := make(map[Metric]*regexp.Regexp)
	for _, metric := range AllMetrics() {
		m[metric] = regexp.MustCompile(`(?i)` + string(metric) + `:\s*\[?(\d+)`)
	}
	return m
}()

// ExtractScore returns the number following "<METRIC>:" in text, clamped to 0..100.
// Missing labels yield DefaultScore.
func ExtractScore(text string, metric Metric) int {
	re, ok := scorePatterns[metric]
	if !ok {
		return DefaultScore
	}
	match := re.FindStringSubmatch(text)
	if match == nil {
		return DefaultScore
	}
	// Atoi saturates on ErrRange, so oversized numbers clamp like any other.
	n, err := strconv.Atoi(match[1])
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return DefaultScore
	}
	return max(0, min(100, n))
}

// ParseReport extracts scores and the narrative from free-form report text.
func ParseReport(text string) Report {
	scores := make(map[Metric]int, len(AllMetrics()))
	sum := 0
	for _, m := range AllMetrics() {
		s := ExtractScore(text, m)
		scores[m] = s
		sum += s
	}
	overall := math.Round(float64(sum)/float64(len(scores))*10) / 10
	return Report{
		Text:      text,
		Narrative: narrative(text),
		Scores:    scores,
		Overall:   overall,
		Verdict:   VerdictFor(overall),
	}
}

// narrative drops the score lines and keeps the feedback paragraphs.
func narrative(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if isScoreLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func isScoreLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, m := range AllMetrics() {
		if scorePatterns[m].MatchString(trimmed) && len(trimmed) < len(m)+12 {
			return true
		}
	}
	return false
}

// FallbackReportText is used when the evaluation request fails.
const FallbackReportText = "COMMUNICATION: 65\nPRIORITIZATION: 60\nINITIATIVE: 55\nPROFESSIONALISM: 70\nDELIVERY: 60\n\n" +
	"You completed the simulation session. Review your behavioral patterns and keep practicing."

// FallbackReport returns the parsed fallback evaluation.
func FallbackReport() Report {
	r := ParseReport(FallbackReportText)
	r.Fallback = true
	return r
}

// SessionSummary is the input of the evaluation.
type SessionSummary struct {
	Profile        Profile
	UserMessages   []string
	CompletedTasks int
	TotalTasks     int
	Escalations    int
}
