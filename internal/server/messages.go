package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/daniel-clain/Auto-Debater/internal/debate"
)

// MessageType discriminates websocket envelopes.
type MessageType string

const (
	TypeAudioChunk       MessageType = "audio_chunk"
	TypeTranscript       MessageType = "transcript"
	TypeArgumentAnalysis MessageType = "argument_analysis"
	TypeRebuttalsUpdate  MessageType = "rebuttals_update"
	TypeDebateSummary    MessageType = "debate_summary"
	TypeMicroUpdate      MessageType = "micro_update"
	TypeBoundaryWarning  MessageType = "boundary_warning"
	TypeError            MessageType = "error"
)

// Envelope is the framing shared by every websocket message.
type Envelope struct {
	Type      MessageType     `json:"type"`
	Timestamp int64           `json:"timestamp"`
	SessionID string          `json:"sessionId"`
	Payload   json.RawMessage `json:"payload"`
}

// TranscriptPayload carries externally transcribed speech.
type TranscriptPayload struct {
	Text       string         `json:"text"`
	Speaker    debate.Speaker `json:"speaker"`
	Confidence float64        `json:"confidence,omitempty"`
}

// RebuttalsPayload carries the ranked rebuttal list and its active style.
type RebuttalsPayload struct {
	Rebuttals []debate.Rebuttal `json:"rebuttals"`
	Style     debate.Style      `json:"style"`
}

// ErrorPayload reports a request-level failure to the client.
type ErrorPayload struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// NewEnvelope stamps and wraps a payload for sending.
func NewEnvelope(t MessageType, sessionID string, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("server: encoding %s payload: %w", t, err)
	}
	return Envelope{
		Type:      t,
		Timestamp: time.Now().UnixMilli(),
		SessionID: sessionID,
		Payload:   raw,
	}, nil
}
