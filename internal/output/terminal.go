package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/daniel-clain/Auto-Debater/internal/debate"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

// Colorize wraps s with an ANSI color code and reset.
func Colorize(color, s string) string { return color + s + ansiReset }

// Bold wraps s with ANSI bold and reset.
func Bold(s string) string { return ansiBold + s + ansiReset }

func scoreColor(score float64) string {
	switch {
	case score >= 0.7:
		return ansiGreen
	case score >= 0.4:
		return ansiYellow
	default:
		return ansiRed
	}
}

// PrintAnalysis prints a consensus analysis to stdout.
func PrintAnalysis(a debate.ArgumentAnalysis) {
	fmt.Printf("Fact check: %s\n", Colorize(scoreColor(a.FactCheckScore), fmt.Sprintf("%.2f", a.FactCheckScore)))
	fmt.Printf("Tone: %.2f | Emotion: %s\n", a.ToneScore, Bold(a.Emotion))
	fmt.Printf("Consensus: %s\n", Colorize(scoreColor(a.ConsensusScore), fmt.Sprintf("%.2f", a.ConsensusScore)))
	if len(a.LogicalFallacies) > 0 {
		fmt.Printf("Fallacies: %s\n", Colorize(ansiRed, strings.Join(a.LogicalFallacies, ", ")))
	}
	for _, point := range a.KeyPoints {
		fmt.Printf("  - %s\n", point)
	}
}

// PrintSummary prints a debate summary to stdout.
func PrintSummary(s debate.DebateSummary) {
	fmt.Printf("Arguments: %d total (%d user / %d opponent)\n",
		s.TotalArguments, s.UserArguments, s.OpponentArguments)
	fmt.Printf("Tone: user %.2f / opponent %.2f\n", s.UserToneScore, s.OpponentToneScore)
	healthColor := ansiGreen
	if s.DebateHealth != "good" {
		healthColor = ansiRed
	}
	fmt.Printf("Health: %s | Boundary violations: %d\n",
		Colorize(healthColor, string(s.DebateHealth)), s.BoundaryViolations)
}

// PrintProfile prints a rival profile to stdout.
func PrintProfile(p debate.RivalProfile) {
	fmt.Printf("%s (%s)\n", Bold(p.Name), p.Identifier)
	fmt.Printf("Persona: %s\n", Colorize(ansiCyan, string(p.PersonaType)))
	fmt.Printf("Aggression: %.2f | Arguments: %d\n", p.AggressionScore, p.ArgumentCount)
	if len(p.BeliefPatterns) > 0 {
		topics := make([]string, 0, len(p.BeliefPatterns))
		for topic := range p.BeliefPatterns {
			topics = append(topics, topic)
		}
		sort.Strings(topics)
		fmt.Println("Belief patterns:")
		for _, topic := range topics {
			fmt.Printf("  %s: %d\n", topic, p.BeliefPatterns[topic])
		}
	}
}
