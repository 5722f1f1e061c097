package debate

import (
	"context"
	"fmt"
	"sync"

	"github.com/daniel-clain/Auto-Debater/internal/debate/boundary"
	"github.com/sirupsen/logrus"
)

// maxRebuttals caps the ranked list exposed per utterance.
const maxRebuttals = 6

// Coordinator sequences the per-utterance intelligence pipeline: argument
// bookkeeping, rival profiling, boundary checks, rebuttal generation and
// ranking, and summary assembly. Utterances for the same session are
// serialized in arrival order; different sessions proceed in parallel.
type Coordinator struct {
	history   *History
	profiler  Profiler
	generator Generator
	log       *logrus.Entry

	mu       sync.Mutex
	sessions map[string]*sync.Mutex
}

// NewCoordinator creates a Coordinator over the given collaborators.
func NewCoordinator(history *History, profiler Profiler, generator Generator) *Coordinator {
	return &Coordinator{
		history:   history,
		profiler:  profiler,
		generator: generator,
		log:       logrus.WithField("component", "coordinator"),
		sessions:  make(map[string]*sync.Mutex),
	}
}

// sessionLock returns the serialization lock for a session, creating it on
// first sight. Locks are never dropped; sessions are few and long-lived.
func (c *Coordinator) sessionLock(sessionID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.sessions[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		c.sessions[sessionID] = lock
	}
	return lock
}

// ProcessArgument runs one utterance through the pipeline and returns the
// single update bundle for it. Provider-side failures downstream of the
// argument append degrade the affected optional field instead of failing
// the call; only an invalid session id is a hard error.
func (c *Coordinator) ProcessArgument(ctx context.Context, text string, speaker Speaker, analysis ArgumentAnalysis, sessionID string) (*IntelligenceUpdate, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("debate: session id required")
	}

	lock := c.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	record, err := c.history.Append(ctx, text, speaker, analysis, sessionID)
	if err != nil {
		// The record is committed to the in-memory log regardless.
		c.log.WithError(err).Warn("argument write-through failed")
	}

	if speaker == SpeakerOpponent {
		// Voice fingerprinting would supply a cross-session identifier here.
		identifier := "session-" + sessionID
		if _, err := c.profiler.Update(ctx, identifier, record); err != nil {
			c.log.WithError(err).WithField("identifier", identifier).Warn("rival profile update failed")
		}
	}

	check := boundary.Evaluate(analysis.ToneScore)

	style := StyleKind
	var rebuttals []Rebuttal
	if speaker == SpeakerOpponent {
		if check.Violated && check.Severity == boundary.SeverityCritical {
			style = StyleStern
		}
		candidates, err := c.generator.Generate(ctx, text, analysis, sessionID, style)
		if err != nil {
			c.log.WithError(err).Warn("rebuttal generation failed")
		} else {
			rebuttals = RankRebuttals(candidates)
		}
	}

	summary := c.history.Summary(sessionID)

	update := &IntelligenceUpdate{
		Summary: summary,
		Style:   style,
	}
	if len(rebuttals) > 0 {
		top := rebuttals[0]
		update.MicroUpdate = &MicroUpdate{
			TopRebuttal: top,
			Summary:     summary,
			Priority:    top.Priority,
		}
		if len(rebuttals) > maxRebuttals {
			rebuttals = rebuttals[:maxRebuttals]
		}
		update.Rebuttals = rebuttals
	}
	if check.Violated {
		update.BoundaryWarning = &BoundaryWarning{
			Message:   check.Message,
			Severity:  check.Severity,
			ToneScore: analysis.ToneScore,
		}
	}
	return update, nil
}
