// Package rebuttal generates candidate counter-arguments through a chat
// completion backend. Wording quality is the backend's concern; this
// package owns the candidate contract and parsing.
package rebuttal

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/daniel-clain/Auto-Debater/internal/debate"
	"github.com/daniel-clain/Auto-Debater/internal/provider"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const maxCandidates = 6

const generationPrompt = "You assist a live debater. Given the opponent's argument and its analysis, propose up to %d counter-arguments as a JSON array: [{\"text\": string, \"priority\": 1-10, \"impactScore\": 0-1}]. Deliver every counter-argument in a %s tone. Return ONLY the JSON array."

var codeBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")

// ChatClient interface so we can mock the generation backend.
type ChatClient interface {
	ChatCompletion(ctx context.Context, model string, messages []provider.Message, format *provider.ResponseFormat) (*provider.ChatResponse, error)
}

// LLMGenerator implements debate.Generator on top of a chat backend.
type LLMGenerator struct {
	client ChatClient
	model  string
	log    *logrus.Entry
}

// NewLLMGenerator creates a generator using the given backend and model.
func NewLLMGenerator(client ChatClient, model string) *LLMGenerator {
	return &LLMGenerator{
		client: client,
		model:  model,
		log:    logrus.WithField("component", "rebuttal"),
	}
}

type candidate struct {
	Text        string  `json:"text"`
	Priority    int     `json:"priority"`
	ImpactScore float64 `json:"impactScore"`
}

// Generate implements debate.Generator. It may return an empty list; a
// backend or parse failure is an error for the coordinator to degrade on.
func (g *LLMGenerator) Generate(ctx context.Context, text string, analysis debate.ArgumentAnalysis, sessionID string, style debate.Style) ([]debate.Rebuttal, error) {
	system := provider.Message{
		Role:    "system",
		Content: fmt.Sprintf(generationPrompt, maxCandidates, style),
	}
	user := provider.Message{
		Role: "user",
		Content: fmt.Sprintf("Argument: %s\nTone score: %.2f\nEmotion: %s\nDetected fallacies: %s\nKey points: %s",
			text, analysis.ToneScore, analysis.Emotion,
			strings.Join(analysis.LogicalFallacies, ", "),
			strings.Join(analysis.KeyPoints, "; ")),
	}

	resp, err := g.client.ChatCompletion(ctx, g.model, []provider.Message{system, user}, nil)
	if err != nil {
		return nil, fmt.Errorf("rebuttal: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("rebuttal: empty completion")
	}

	candidates, ok := parseCandidates(resp.Choices[0].Message.Content)
	if !ok {
		return nil, fmt.Errorf("rebuttal: malformed candidate payload")
	}

	rebuttals := make([]debate.Rebuttal, 0, len(candidates))
	for _, c := range candidates {
		if c.Text == "" {
			continue
		}
		rebuttals = append(rebuttals, debate.Rebuttal{
			ID:             uuid.NewString(),
			Text:           c.Text,
			Priority:       c.Priority,
			ImpactScore:    c.ImpactScore,
			Style:          style,
			ConsensusScore: analysis.ConsensusScore,
		})
	}
	return rebuttals, nil
}

// parseCandidates tries to extract a JSON candidate array from LLM output.
func parseCandidates(raw string) ([]candidate, bool) {
	var candidates []candidate
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &candidates); err == nil {
		return candidates, true
	}

	if matches := codeBlockRe.FindStringSubmatch(raw); len(matches) > 1 {
		if err := json.Unmarshal([]byte(strings.TrimSpace(matches[1])), &candidates); err == nil {
			return candidates, true
		}
	}

	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), &candidates); err == nil {
			return candidates, true
		}
	}

	return nil, false
}
