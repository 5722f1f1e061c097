package server

import (
	"context"
	"encoding/json"

	"github.com/daniel-clain/Auto-Debater/internal/debate"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

// Handler drives one websocket connection: transcripts in, intelligence
// updates out. Each connection reads sequentially, so updates for a
// session leave in the order of the utterances that produced them.
type Handler struct {
	analyzer debate.Analyzer
	coord    *debate.Coordinator
	log      *logrus.Entry
}

// NewHandler creates a websocket Handler.
func NewHandler(analyzer debate.Analyzer, coord *debate.Coordinator) *Handler {
	return &Handler{
		analyzer: analyzer,
		coord:    coord,
		log:      logrus.WithField("component", "server"),
	}
}

// Middleware gates the websocket upgrade.
func (h *Handler) Middleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handle is the connection read loop.
func (h *Handler) Handle(conn *websocket.Conn) {
	defer conn.Close()
	h.log.Info("websocket connected")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h.log.WithError(err).Debug("websocket closed")
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			h.sendError(conn, "unknown", "invalid message framing")
			continue
		}

		switch env.Type {
		case TypeTranscript:
			h.handleTranscript(conn, env)
		case TypeAudioChunk:
			// Speech-to-text is an external collaborator; raw audio is not
			// accepted on this endpoint.
			h.sendError(conn, env.SessionID, "audio transcription is handled upstream; send transcript messages")
		default:
			h.sendError(conn, env.SessionID, "unhandled message type: "+string(env.Type))
		}
	}
}

func (h *Handler) handleTranscript(conn *websocket.Conn, env Envelope) {
	var payload TranscriptPayload
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		h.sendError(conn, env.SessionID, "invalid transcript payload")
		return
	}
	if payload.Speaker != debate.SpeakerUser && payload.Speaker != debate.SpeakerOpponent {
		h.sendError(conn, env.SessionID, "speaker must be user or opponent")
		return
	}

	log := h.log.WithFields(logrus.Fields{"session": env.SessionID, "speaker": payload.Speaker})
	log.Debug("processing transcript")

	ctx := context.Background()
	analysis := h.analyzer.Analyze(ctx, payload.Text, payload.Speaker)
	h.send(conn, TypeArgumentAnalysis, env.SessionID, analysis)

	updates, err := h.coord.ProcessArgument(ctx, payload.Text, payload.Speaker, analysis, env.SessionID)
	if err != nil {
		log.WithError(err).Warn("processing failed")
		h.sendError(conn, env.SessionID, err.Error())
		return
	}

	if updates.MicroUpdate != nil {
		h.send(conn, TypeMicroUpdate, env.SessionID, updates.MicroUpdate)
	}
	if updates.Rebuttals != nil {
		h.send(conn, TypeRebuttalsUpdate, env.SessionID, RebuttalsPayload{
			Rebuttals: updates.Rebuttals,
			Style:     updates.Style,
		})
	}
	h.send(conn, TypeDebateSummary, env.SessionID, updates.Summary)
	if updates.BoundaryWarning != nil {
		h.send(conn, TypeBoundaryWarning, env.SessionID, updates.BoundaryWarning)
	}
}

func (h *Handler) send(conn *websocket.Conn, t MessageType, sessionID string, payload any) {
	env, err := NewEnvelope(t, sessionID, payload)
	if err != nil {
		h.log.WithError(err).Error("dropping outbound message")
		return
	}
	if err := conn.WriteJSON(env); err != nil {
		h.log.WithError(err).Warn("websocket write failed")
	}
}

func (h *Handler) sendError(conn *websocket.Conn, sessionID, message string) {
	h.send(conn, TypeError, sessionID, ErrorPayload{Error: message})
}
