package domain

// Phase is the lifecycle state of a session.
type Phase string

const (
	PhaseSetup        Phase = "setup"        // Profile collected, nothing generated
	PhaseInitializing Phase = "initializing" // Tasks and docs being generated
	PhaseActive       Phase = "active"       // Simulation running
	PhaseEvaluating   Phase = "evaluating"   // Waiting for the evaluation report
	PhaseReport       Phase = "report"       // Report available
)

var phaseTransitions = map[Phase]Phase{
	PhaseSetup:        PhaseInitializing,
	PhaseInitializing: PhaseActive,
	PhaseActive:       PhaseEvaluating,
	PhaseEvaluating:   PhaseReport,
}

// Next returns the phase that follows p, if any.
func (p Phase) Next() (Phase, bool) {
	next, ok := phaseTransitions[p]
	return next, ok
}

// CanTransitionTo returns true if target directly follows p.
func (p Phase) CanTransitionTo(target Phase) bool {
	next, ok := phaseTransitions[p]
	return ok && next == target
}

// Display returns a human-readable representation of the phase.
func (p Phase) Display() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseInitializing:
		return "Preparing workspace"
	case PhaseActive:
		return "Live"
	case PhaseEvaluating:
		return "Evaluating"
	case PhaseReport:
		return "Report"
	default:
		return string(p)
	}
}
