// Package boundary classifies conversational health and enforces the
// civility boundary over per-utterance tone scores.
package boundary

// Health classifies overall conversational tone.
type Health string

const (
	HealthGood          Health = "good"
	HealthDeteriorating Health = "deteriorating"
	HealthCritical      Health = "critical"
)

// Severity grades a boundary violation.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

const (
	violationThreshold = -0.7
	criticalThreshold  = -0.9

	warningMessage  = "I'd like to keep our conversation respectful. Can we continue discussing this in a civil manner?"
	criticalMessage = "I've set clear boundaries about respectful discourse. If this continues, I'll need to end our conversation."
)

// Check is the tagged result of a boundary evaluation. Severity and
// Message are only meaningful when Violated is true.
type Check struct {
	Violated bool
	Severity Severity
	Message  string
}

// HealthFor classifies a tone score into a health band.
func HealthFor(toneScore float64) Health {
	switch {
	case toneScore > -0.5:
		return HealthGood
	case toneScore > -0.8:
		return HealthDeteriorating
	default:
		return HealthCritical
	}
}

// Evaluate checks a tone score against the civility boundary. Every
// utterance is judged on its instantaneous score; there is no hysteresis.
func Evaluate(toneScore float64) Check {
	if toneScore >= violationThreshold {
		return Check{}
	}
	if toneScore < criticalThreshold {
		return Check{Violated: true, Severity: SeverityCritical, Message: criticalMessage}
	}
	return Check{Violated: true, Severity: SeverityWarning, Message: warningMessage}
}
