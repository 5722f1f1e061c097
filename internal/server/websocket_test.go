package server

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/daniel-clain/Auto-Debater/internal/debate"
	"github.com/daniel-clain/Auto-Debater/internal/debate/boundary"
	fastws "github.com/fasthttp/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedAnalyzer returns a fixed analysis for every utterance.
type scriptedAnalyzer struct {
	analysis debate.ArgumentAnalysis
}

func (a scriptedAnalyzer) Analyze(context.Context, string, debate.Speaker) debate.ArgumentAnalysis {
	return a.analysis
}

// cannedGenerator returns fixed candidates.
type cannedGenerator struct {
	candidates []debate.Rebuttal
}

func (g cannedGenerator) Generate(context.Context, string, debate.ArgumentAnalysis, string, debate.Style) ([]debate.Rebuttal, error) {
	return g.candidates, nil
}

// startServer serves the app on a loopback listener and returns the
// websocket URL.
func startServer(t *testing.T, h *Handler) string {
	t.Helper()
	app := New(h)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go app.Listener(ln)
	t.Cleanup(func() { _ = app.Shutdown() })
	return "ws://" + ln.Addr().String() + "/ws"
}

func dial(t *testing.T, url string) *fastws.Conn {
	t.Helper()
	var conn *fastws.Conn
	var err error
	for i := 0; i < 50; i++ {
		conn, _, err = fastws.DefaultDialer.Dial(url, nil)
		if err == nil {
			conn.SetReadDeadline(time.Now().Add(5 * time.Second))
			t.Cleanup(func() { conn.Close() })
			return conn
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("dialing %s: %v", url, err)
	return nil
}

func sendTranscript(t *testing.T, conn *fastws.Conn, sessionID, text string, speaker debate.Speaker) {
	t.Helper()
	env, err := NewEnvelope(TypeTranscript, sessionID, TranscriptPayload{Text: text, Speaker: speaker})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(env))
}

func readEnvelope(t *testing.T, conn *fastws.Conn) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, conn.ReadJSON(&env))
	return env
}

func TestWebsocketHostileTranscriptEmitsOrderedUpdates(t *testing.T) {
	analyzer := scriptedAnalyzer{analysis: debate.ArgumentAnalysis{
		FactCheckScore:   0.2,
		ToneScore:        -0.95,
		LogicalFallacies: []string{"adhominem"},
		Emotion:          "angry",
		ConsensusScore:   1,
		KeyPoints:        []string{"personal attack"},
	}}
	generator := cannedGenerator{candidates: []debate.Rebuttal{
		{ID: "low", Priority: 3, ImpactScore: 0.2},
		{ID: "top", Priority: 9, ImpactScore: 0.8},
	}}
	history := debate.NewHistory(discardStore{})
	coord := debate.NewCoordinator(history, noopProfiler{}, generator)

	url := startServer(t, NewHandler(analyzer, coord))
	conn := dial(t, url)

	sendTranscript(t, conn, "s1", "only an idiot believes that", debate.SpeakerOpponent)

	env := readEnvelope(t, conn)
	require.Equal(t, TypeArgumentAnalysis, env.Type)
	assert.Equal(t, "s1", env.SessionID)
	var analysis debate.ArgumentAnalysis
	require.NoError(t, json.Unmarshal(env.Payload, &analysis))
	assert.Equal(t, -0.95, analysis.ToneScore)

	env = readEnvelope(t, conn)
	require.Equal(t, TypeMicroUpdate, env.Type)
	var micro debate.MicroUpdate
	require.NoError(t, json.Unmarshal(env.Payload, &micro))
	assert.Equal(t, "top", micro.TopRebuttal.ID)
	assert.Equal(t, 9, micro.Priority)

	env = readEnvelope(t, conn)
	require.Equal(t, TypeRebuttalsUpdate, env.Type)
	var rebuttals RebuttalsPayload
	require.NoError(t, json.Unmarshal(env.Payload, &rebuttals))
	require.Len(t, rebuttals.Rebuttals, 2)
	assert.Equal(t, "top", rebuttals.Rebuttals[0].ID)
	assert.Equal(t, debate.StyleStern, rebuttals.Style)

	env = readEnvelope(t, conn)
	require.Equal(t, TypeDebateSummary, env.Type)
	var summary debate.DebateSummary
	require.NoError(t, json.Unmarshal(env.Payload, &summary))
	assert.Equal(t, 1, summary.TotalArguments)
	assert.Equal(t, 1, summary.BoundaryViolations)

	env = readEnvelope(t, conn)
	require.Equal(t, TypeBoundaryWarning, env.Type)
	var warning debate.BoundaryWarning
	require.NoError(t, json.Unmarshal(env.Payload, &warning))
	assert.Equal(t, boundary.SeverityCritical, warning.Severity)
	assert.Equal(t, -0.95, warning.ToneScore)
}

func TestWebsocketUserTranscriptEmitsAnalysisAndSummaryOnly(t *testing.T) {
	analyzer := scriptedAnalyzer{analysis: debate.ArgumentAnalysis{FactCheckScore: 0.7, Emotion: "calm"}}
	history := debate.NewHistory(discardStore{})
	coord := debate.NewCoordinator(history, noopProfiler{}, cannedGenerator{})

	url := startServer(t, NewHandler(analyzer, coord))
	conn := dial(t, url)

	sendTranscript(t, conn, "s1", "my opening point", debate.SpeakerUser)

	env := readEnvelope(t, conn)
	require.Equal(t, TypeArgumentAnalysis, env.Type)
	env = readEnvelope(t, conn)
	require.Equal(t, TypeDebateSummary, env.Type)

	// An unknown type draws an error reply; receiving it directly after the
	// summary proves no other frame was emitted for the user utterance.
	unknown, err := NewEnvelope(MessageType("nonsense"), "s1", struct{}{})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(unknown))
	env = readEnvelope(t, conn)
	require.Equal(t, TypeError, env.Type)
}

func TestWebsocketRejectsBadMessages(t *testing.T) {
	history := debate.NewHistory(discardStore{})
	coord := debate.NewCoordinator(history, noopProfiler{}, cannedGenerator{})

	url := startServer(t, NewHandler(neutralAnalyzer{}, coord))
	conn := dial(t, url)

	// Malformed framing.
	require.NoError(t, conn.WriteMessage(fastws.TextMessage, []byte("not json")))
	env := readEnvelope(t, conn)
	assert.Equal(t, TypeError, env.Type)

	// Raw audio is not accepted here.
	audio, err := NewEnvelope(TypeAudioChunk, "s1", struct{}{})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(audio))
	env = readEnvelope(t, conn)
	assert.Equal(t, TypeError, env.Type)

	// Transcript with an invalid speaker.
	bad, err := NewEnvelope(TypeTranscript, "s1", TranscriptPayload{Text: "hi", Speaker: "narrator"})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(bad))
	env = readEnvelope(t, conn)
	assert.Equal(t, TypeError, env.Type)
	var payload ErrorPayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Contains(t, payload.Error, "speaker")
}
