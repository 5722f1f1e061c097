// Package profile maintains long-lived rival personas keyed by opponent
// identifier. Profiles survive across sessions.
package profile

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/daniel-clain/Auto-Debater/internal/debate"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Store persists rival profiles as idempotent upserts keyed by identifier.
type Store interface {
	SaveRivalProfile(ctx context.Context, profile debate.RivalProfile) error
	GetRivalProfile(ctx context.Context, identifier string) (*debate.RivalProfile, error)
}

// alpha is the EMA smoothing constant for the aggression score.
const alpha = 0.3

// topicKeywords is the fixed vocabulary for belief-pattern extraction.
var topicKeywords = []string{"politics", "science", "religion", "economy", "health", "education"}

const maxKeywordMatches = 5

// Profiler owns the in-memory profile cache and is the sole writer of
// persisted profile records. Updates for the same identifier are
// serialized independently of session ordering.
type Profiler struct {
	store Store
	log   *logrus.Entry

	mu       sync.Mutex
	profiles map[string]*debate.RivalProfile
	locks    map[string]*sync.Mutex
}

// NewProfiler creates a Profiler over the given store.
func NewProfiler(store Store) *Profiler {
	return &Profiler{
		store:    store,
		log:      logrus.WithField("component", "profiler"),
		profiles: make(map[string]*debate.RivalProfile),
		locks:    make(map[string]*sync.Mutex),
	}
}

func (p *Profiler) identifierLock(identifier string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	lock, ok := p.locks[identifier]
	if !ok {
		lock = &sync.Mutex{}
		p.locks[identifier] = lock
	}
	return lock
}

// Update implements debate.Profiler: it resolves or creates the profile
// for identifier, folds the utterance into it, reclassifies the persona,
// and writes the profile through to the store.
func (p *Profiler) Update(ctx context.Context, identifier string, record debate.ArgumentRecord) (*debate.RivalProfile, error) {
	lock := p.identifierLock(identifier)
	lock.Lock()
	defer lock.Unlock()

	profile, err := p.resolve(ctx, identifier)
	if err != nil {
		return nil, err
	}

	// Only negative tone contributes to aggression.
	aggressionValue := math.Max(0, -record.Analysis.ToneScore)
	profile.AggressionScore = alpha*aggressionValue + (1-alpha)*profile.AggressionScore

	for _, keyword := range extractKeywords(record.Text) {
		profile.BeliefPatterns[keyword]++
	}

	profile.ArgumentCount++
	profile.PersonaType = classifyPersona(profile.AggressionScore)

	if err := p.store.SaveRivalProfile(ctx, *profile); err != nil {
		return profile, fmt.Errorf("profile: saving %s: %w", identifier, err)
	}
	return profile, nil
}

// Lookup returns the profile for identifier from cache or store without
// creating one. A nil profile means the identifier has never been seen.
func (p *Profiler) Lookup(ctx context.Context, identifier string) (*debate.RivalProfile, error) {
	p.mu.Lock()
	cached, ok := p.profiles[identifier]
	p.mu.Unlock()
	if ok {
		return cached, nil
	}
	profile, err := p.store.GetRivalProfile(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("profile: loading %s: %w", identifier, err)
	}
	return profile, nil
}

// resolve finds the profile in cache, then store, then creates a fresh one.
// The caller must hold the identifier lock.
func (p *Profiler) resolve(ctx context.Context, identifier string) (*debate.RivalProfile, error) {
	p.mu.Lock()
	cached, ok := p.profiles[identifier]
	p.mu.Unlock()
	if ok {
		return cached, nil
	}

	existing, err := p.store.GetRivalProfile(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("profile: loading %s: %w", identifier, err)
	}
	if existing != nil {
		if existing.BeliefPatterns == nil {
			existing.BeliefPatterns = make(map[string]int)
		}
		p.cache(identifier, existing)
		return existing, nil
	}

	created := &debate.RivalProfile{
		ID:             "rival-" + uuid.NewString(),
		Identifier:     identifier,
		Name:           rivalName(identifier),
		PersonaType:    debate.PersonaUnknown,
		BeliefPatterns: make(map[string]int),
	}
	p.log.WithField("identifier", identifier).Info("new rival profile")
	p.cache(identifier, created)
	if err := p.store.SaveRivalProfile(ctx, *created); err != nil {
		return nil, fmt.Errorf("profile: creating %s: %w", identifier, err)
	}
	return created, nil
}

func (p *Profiler) cache(identifier string, profile *debate.RivalProfile) {
	p.mu.Lock()
	p.profiles[identifier] = profile
	p.mu.Unlock()
}

func rivalName(identifier string) string {
	short := identifier
	if len(short) > 8 {
		short = short[:8]
	}
	return "Rival_" + short
}

// classifyPersona maps a smoothed aggression score to a persona type. The
// thresholds are checked in order; the [0.2, 0.4] band falls through to
// neutral.
func classifyPersona(aggressionScore float64) debate.PersonaType {
	switch {
	case aggressionScore > 0.7:
		return debate.PersonaHostile
	case aggressionScore > 0.4:
		return debate.PersonaDefensive
	case aggressionScore < 0.2:
		return debate.PersonaCivil
	default:
		return debate.PersonaNeutral
	}
}

// extractKeywords matches the fixed topic vocabulary against the utterance,
// case-insensitive, capped to the first matches.
func extractKeywords(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, topic := range topicKeywords {
		if strings.Contains(lower, topic) {
			found = append(found, topic)
			if len(found) == maxKeywordMatches {
				break
			}
		}
	}
	return found
}
