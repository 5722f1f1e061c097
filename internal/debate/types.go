package debate

import (
	"context"
	"time"

	"github.com/daniel-clain/Auto-Debater/internal/debate/boundary"
)

// Speaker identifies which side of the debate produced an utterance.
type Speaker string

const (
	SpeakerUser     Speaker = "user"
	SpeakerOpponent Speaker = "opponent"
)

// Style is the delivery tone applied to generated rebuttals.
type Style string

const (
	StyleKind       Style = "kind"
	StyleStern      Style = "stern"
	StylePlayful    Style = "playful"
	StyleTrap       Style = "trap"
	StyleMysterious Style = "mysterious"
)

// PersonaType is a coarse classification of an opponent's aggression.
type PersonaType string

const (
	PersonaUnknown   PersonaType = "unknown"
	PersonaHostile   PersonaType = "hostile_aggressive"
	PersonaDefensive PersonaType = "defensive"
	PersonaCivil     PersonaType = "civil_respectful"
	PersonaNeutral   PersonaType = "neutral"
)

// ArgumentAnalysis is the consensus judgment for one utterance. It is
// produced once by the analysis engine and never mutated afterwards.
type ArgumentAnalysis struct {
	FactCheckScore   float64  `json:"factCheckScore"`
	ToneScore        float64  `json:"toneScore"`
	LogicalFallacies []string `json:"logicalFallacies"`
	Emotion          string   `json:"emotion"`
	ConsensusScore   float64  `json:"consensusScore"`
	KeyPoints        []string `json:"keyPoints"`
}

// ArgumentRecord is one utterance with its analysis, as appended to the
// session's ordered argument log.
type ArgumentRecord struct {
	ID        string           `json:"id"`
	SessionID string           `json:"sessionId"`
	Speaker   Speaker          `json:"speaker"`
	Text      string           `json:"text"`
	CreatedAt time.Time        `json:"createdAt"`
	Analysis  ArgumentAnalysis `json:"analysis"`
}

// Rebuttal is a candidate counter-argument. Candidates are ranked by
// priority then impact before exposure and are never persisted.
type Rebuttal struct {
	ID             string  `json:"id"`
	Text           string  `json:"text"`
	Priority       int     `json:"priority"`
	ImpactScore    float64 `json:"impactScore"`
	Style          Style   `json:"style"`
	ConsensusScore float64 `json:"consensusScore"`
}

// RivalProfile is the long-lived persona model for an opponent identifier.
// It outlives any single session.
type RivalProfile struct {
	ID              string         `json:"id"`
	Identifier      string         `json:"identifier"`
	Name            string         `json:"name"`
	PersonaType     PersonaType    `json:"personaType"`
	BeliefPatterns  map[string]int `json:"beliefPatterns"`
	AggressionScore float64        `json:"aggressionScore"`
	ArgumentCount   int            `json:"argumentCount"`
}

// DebateSummary is derived from the session argument log at read time.
type DebateSummary struct {
	TotalArguments     int             `json:"totalArguments"`
	UserArguments      int             `json:"userArguments"`
	OpponentArguments  int             `json:"opponentArguments"`
	OpponentToneScore  float64         `json:"opponentToneScore"`
	UserToneScore      float64         `json:"userToneScore"`
	DebateHealth       boundary.Health `json:"debateHealth"`
	BoundaryViolations int             `json:"boundaryViolations"`
}

// MicroUpdate is the top-rebuttal digest included in an IntelligenceUpdate
// when at least one ranked rebuttal exists.
type MicroUpdate struct {
	TopRebuttal Rebuttal      `json:"topRebuttal"`
	Summary     DebateSummary `json:"summary"`
	Priority    int           `json:"priority"`
}

// BoundaryWarning reports a civility boundary violation.
type BoundaryWarning struct {
	Message   string            `json:"message"`
	Severity  boundary.Severity `json:"severity"`
	ToneScore float64           `json:"toneScore"`
}

// IntelligenceUpdate is the coordinator's single output bundle per
// processed utterance. Optional fields are nil when the corresponding
// stage produced nothing.
type IntelligenceUpdate struct {
	MicroUpdate     *MicroUpdate     `json:"microUpdate,omitempty"`
	Rebuttals       []Rebuttal       `json:"rebuttals,omitempty"`
	Summary         DebateSummary    `json:"summary"`
	BoundaryWarning *BoundaryWarning `json:"boundaryWarning,omitempty"`
	Style           Style            `json:"style"`
}

// Analyzer interface so we can mock the consensus analysis engine.
type Analyzer interface {
	Analyze(ctx context.Context, text string, speaker Speaker) ArgumentAnalysis
}

// Generator interface so we can mock rebuttal generation.
type Generator interface {
	Generate(ctx context.Context, text string, analysis ArgumentAnalysis, sessionID string, style Style) ([]Rebuttal, error)
}

// Profiler interface so we can mock the rival profiler.
type Profiler interface {
	Update(ctx context.Context, identifier string, record ArgumentRecord) (*RivalProfile, error)
}

// ArgumentStore persists argument records. Saves are idempotent upserts
// keyed by record id.
type ArgumentStore interface {
	SaveArgument(ctx context.Context, record ArgumentRecord) error
}
