package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

const analysisPrompt = "Analyze this argument. Return JSON with: factCheckScore (0-1), toneScore (-1 to 1), logicalFallacies (array), emotion (string), keyPoints (array)."

var codeBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")

// ChatConfig describes one chat-completion analysis backend.
type ChatConfig struct {
	Name     string
	BaseURL  string
	Model    string
	APIKey   string
	JSONMode bool
}

// ChatProvider implements Provider on top of an OpenAI-compatible chat
// completions API.
type ChatProvider struct {
	name     string
	model    string
	jsonMode bool
	client   *Client
	log      *logrus.Entry
}

// NewChatProvider creates a ChatProvider. A provider with an empty API key
// is kept in the declared set but abstains from every call.
func NewChatProvider(cfg ChatConfig) *ChatProvider {
	return &ChatProvider{
		name:     cfg.Name,
		model:    cfg.Model,
		jsonMode: cfg.JSONMode,
		client:   NewClient(cfg.APIKey, cfg.BaseURL),
		log:      logrus.WithField("provider", cfg.Name),
	}
}

// Name implements Provider.
func (p *ChatProvider) Name() string { return p.name }

// Configured implements Provider.
func (p *ChatProvider) Configured() bool { return p.client.apiKey != "" }

// Model returns the backend model ID.
func (p *ChatProvider) Model() string { return p.model }

// Client returns the underlying chat client.
func (p *ChatProvider) Client() *Client { return p.client }

// Analyze implements Provider. Unconfigured providers abstain immediately
// without network I/O.
func (p *ChatProvider) Analyze(ctx context.Context, speaker, text string) (*Analysis, error) {
	if !p.Configured() {
		return nil, ErrNotConfigured
	}

	msgs := []Message{
		{Role: "system", Content: analysisPrompt},
		{Role: "user", Content: fmt.Sprintf("Speaker: %s\nArgument: %s", speaker, text)},
	}
	var format *ResponseFormat
	if p.jsonMode {
		format = &ResponseFormat{Type: "json_object"}
	}

	resp, err := p.client.ChatCompletion(ctx, p.model, msgs, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s: empty completion", p.name)
	}

	analysis, ok := parseAnalysisJSON(resp.Choices[0].Message.Content)
	if !ok {
		return nil, fmt.Errorf("%s: malformed analysis payload", p.name)
	}
	return analysis, nil
}

// rawAnalysis distinguishes absent numeric fields from explicit zeros so
// defaults mirror the analysis prompt's contract.
type rawAnalysis struct {
	FactCheckScore   *float64 `json:"factCheckScore"`
	ToneScore        *float64 `json:"toneScore"`
	LogicalFallacies []string `json:"logicalFallacies"`
	Emotion          string   `json:"emotion"`
	KeyPoints        []string `json:"keyPoints"`
}

func (r *rawAnalysis) toAnalysis() *Analysis {
	a := &Analysis{
		FactCheckScore:   0.5,
		Emotion:          "neutral",
		LogicalFallacies: r.LogicalFallacies,
		KeyPoints:        r.KeyPoints,
	}
	if r.FactCheckScore != nil {
		a.FactCheckScore = *r.FactCheckScore
	}
	if r.ToneScore != nil {
		a.ToneScore = *r.ToneScore
	}
	if r.Emotion != "" {
		a.Emotion = r.Emotion
	}
	if a.LogicalFallacies == nil {
		a.LogicalFallacies = []string{}
	}
	if a.KeyPoints == nil {
		a.KeyPoints = []string{}
	}
	return a
}

// parseAnalysisJSON tries to extract and parse an Analysis from LLM output.
func parseAnalysisJSON(raw string) (*Analysis, bool) {
	// Try direct parse first
	var parsed rawAnalysis
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &parsed); err == nil {
		return parsed.toAnalysis(), true
	}

	// Try extracting from markdown code block
	if matches := codeBlockRe.FindStringSubmatch(raw); len(matches) > 1 {
		if err := json.Unmarshal([]byte(strings.TrimSpace(matches[1])), &parsed); err == nil {
			return parsed.toAnalysis(), true
		}
	}

	// Try finding JSON object in text (first { to last })
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err == nil {
			return parsed.toAnalysis(), true
		}
	}

	return nil, false
}
