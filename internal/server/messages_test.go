package server

import (
	"encoding/json"
	"testing"

	"github.com/daniel-clain/Auto-Debater/internal/debate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	env, err := NewEnvelope(TypeDebateSummary, "s1", debate.DebateSummary{TotalArguments: 3})
	require.NoError(t, err)

	assert.Equal(t, TypeDebateSummary, env.Type)
	assert.Equal(t, "s1", env.SessionID)
	assert.NotZero(t, env.Timestamp)

	var summary debate.DebateSummary
	require.NoError(t, json.Unmarshal(env.Payload, &summary))
	assert.Equal(t, 3, summary.TotalArguments)
}

func TestNewEnvelopeUnencodablePayload(t *testing.T) {
	_, err := NewEnvelope(TypeError, "s1", func() {})
	require.Error(t, err)
}

func TestEnvelopeWireFormat(t *testing.T) {
	env, err := NewEnvelope(TypeError, "s1", ErrorPayload{Error: "bad"})
	require.NoError(t, err)

	data, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{"type", "timestamp", "sessionId", "payload"} {
		assert.Contains(t, decoded, key)
	}
}

func TestTranscriptPayloadDecoding(t *testing.T) {
	raw := `{"text": "taxes are theft", "speaker": "opponent", "confidence": 0.92}`

	var payload TranscriptPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	assert.Equal(t, "taxes are theft", payload.Text)
	assert.Equal(t, debate.SpeakerOpponent, payload.Speaker)
	assert.Equal(t, 0.92, payload.Confidence)
}
