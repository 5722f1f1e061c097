// Package provider defines the analysis provider capability and its
// chat-completion backends. Each backend either returns a well-formed
// analysis or fails; a backend with no configured credential abstains
// without issuing network I/O.
package provider

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by providers whose credential is absent.
// It marks an abstention, not a transport failure.
var ErrNotConfigured = errors.New("provider: not configured")

// Analysis is a single provider's judgment of one utterance. The engine
// reconciles several of these into a consensus ArgumentAnalysis.
type Analysis struct {
	FactCheckScore   float64  `json:"factCheckScore"`
	ToneScore        float64  `json:"toneScore"`
	LogicalFallacies []string `json:"logicalFallacies"`
	Emotion          string   `json:"emotion"`
	KeyPoints        []string `json:"keyPoints"`
}

// Provider is one independent analysis backend.
type Provider interface {
	Name() string
	Configured() bool
	Analyze(ctx context.Context, speaker, text string) (*Analysis, error)
}
