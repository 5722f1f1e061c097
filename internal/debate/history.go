package debate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/daniel-clain/Auto-Debater/internal/debate/boundary"
	"github.com/google/uuid"
)

// History is the session-scoped, append-only argument log. The in-memory
// log is the source for summary statistics; every append is written
// through to the argument store.
type History struct {
	store ArgumentStore

	mu   sync.RWMutex
	logs map[string][]ArgumentRecord
}

// NewHistory creates a History writing through to store.
func NewHistory(store ArgumentStore) *History {
	return &History{
		store: store,
		logs:  make(map[string][]ArgumentRecord),
	}
}

// Append records one utterance at the tail of the session's log and writes
// it through to the store. The record stays committed in memory even when
// the store write fails; the store error is returned for the caller to log.
// Ids must stay distinct under concurrent dispatch, so they carry a uuid
// rather than a timestamp.
func (h *History) Append(ctx context.Context, text string, speaker Speaker, analysis ArgumentAnalysis, sessionID string) (ArgumentRecord, error) {
	now := time.Now()
	record := ArgumentRecord{
		ID:        fmt.Sprintf("%s-%s", sessionID, uuid.NewString()),
		SessionID: sessionID,
		Speaker:   speaker,
		Text:      text,
		CreatedAt: now,
		Analysis:  analysis,
	}

	h.mu.Lock()
	h.logs[sessionID] = append(h.logs[sessionID], record)
	h.mu.Unlock()

	if err := h.store.SaveArgument(ctx, record); err != nil {
		return record, fmt.Errorf("debate: saving argument: %w", err)
	}
	return record, nil
}

// Records returns a copy of the session's argument log in arrival order.
func (h *History) Records(sessionID string) []ArgumentRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()
	records := make([]ArgumentRecord, len(h.logs[sessionID]))
	copy(records, h.logs[sessionID])
	return records
}

// Summary recomputes the debate summary from the session's full log. It is
// a pure function of the log at read time.
func (h *History) Summary(sessionID string) DebateSummary {
	return Summarize(h.Records(sessionID))
}

// Summarize derives a debate summary from an ordered argument log.
func Summarize(records []ArgumentRecord) DebateSummary {
	var userCount, opponentCount, violations int
	var userToneSum, opponentToneSum float64
	for _, r := range records {
		switch r.Speaker {
		case SpeakerUser:
			userCount++
			userToneSum += r.Analysis.ToneScore
		case SpeakerOpponent:
			opponentCount++
			opponentToneSum += r.Analysis.ToneScore
			if r.Analysis.ToneScore < -0.7 {
				violations++
			}
		}
	}

	var userTone, opponentTone float64
	if userCount > 0 {
		userTone = userToneSum / float64(userCount)
	}
	if opponentCount > 0 {
		opponentTone = opponentToneSum / float64(opponentCount)
	}

	return DebateSummary{
		TotalArguments:     len(records),
		UserArguments:      userCount,
		OpponentArguments:  opponentCount,
		OpponentToneScore:  opponentTone,
		UserToneScore:      userTone,
		DebateHealth:       boundary.HealthFor(opponentTone),
		BoundaryViolations: violations,
	}
}
