package profile

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/daniel-clain/Auto-Debater/internal/debate"
	"github.com/daniel-clain/Auto-Debater/internal/store"
)

func opponentRecord(text string, toneScore float64) debate.ArgumentRecord {
	return debate.ArgumentRecord{
		SessionID: "s1",
		Speaker:   debate.SpeakerOpponent,
		Text:      text,
		Analysis:  debate.ArgumentAnalysis{ToneScore: toneScore},
	}
}

func TestUpdateCreatesProfileOnFirstSight(t *testing.T) {
	p := NewProfiler(store.NewMemory())

	profile, err := p.Update(context.Background(), "session-abc12345", opponentRecord("hello", 0.2))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if profile.Identifier != "session-abc12345" {
		t.Errorf("Identifier = %q", profile.Identifier)
	}
	if profile.Name != "Rival_session-" {
		t.Errorf("Name = %q, want Rival_ plus first eight identifier characters", profile.Name)
	}
	if !strings.HasPrefix(profile.ID, "rival-") {
		t.Errorf("ID = %q, want rival- prefix", profile.ID)
	}
	if profile.ArgumentCount != 1 {
		t.Errorf("ArgumentCount = %d, want 1", profile.ArgumentCount)
	}
}

func TestUpdateSmoothsAggression(t *testing.T) {
	p := NewProfiler(store.NewMemory())
	ctx := context.Background()

	// Fresh profile starts at 0; one fully hostile utterance moves it to alpha.
	profile, err := p.Update(ctx, "id", opponentRecord("text", -1))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if math.Abs(profile.AggressionScore-0.3) > 1e-9 {
		t.Errorf("AggressionScore = %v, want 0.3", profile.AggressionScore)
	}

	// A neutral utterance decays it: 0.3*0 + 0.7*0.3 = 0.21.
	profile, err = p.Update(ctx, "id", opponentRecord("text", 0))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if math.Abs(profile.AggressionScore-0.21) > 1e-9 {
		t.Errorf("AggressionScore = %v, want 0.21", profile.AggressionScore)
	}
}

func TestUpdatePositiveToneDoesNotReduceAggression(t *testing.T) {
	p := NewProfiler(store.NewMemory())
	ctx := context.Background()

	p.Update(ctx, "id", opponentRecord("text", -1))
	profile, err := p.Update(ctx, "id", opponentRecord("text", 0.9))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	// Positive tone clamps to zero aggression, same as neutral.
	if math.Abs(profile.AggressionScore-0.21) > 1e-9 {
		t.Errorf("AggressionScore = %v, want 0.21", profile.AggressionScore)
	}
}

func TestClassifyPersona(t *testing.T) {
	tests := []struct {
		aggression float64
		want       debate.PersonaType
	}{
		{0.75, debate.PersonaHostile},
		{0.5, debate.PersonaDefensive},
		{0.1, debate.PersonaCivil},
		{0.3, debate.PersonaNeutral},
		{0.2, debate.PersonaNeutral},
		{0.4, debate.PersonaNeutral},
		{0, debate.PersonaCivil},
	}

	for _, tt := range tests {
		if got := classifyPersona(tt.aggression); got != tt.want {
			t.Errorf("classifyPersona(%v) = %q, want %q", tt.aggression, got, tt.want)
		}
	}
}

func TestUpdateReclassifiesPersona(t *testing.T) {
	p := NewProfiler(store.NewMemory())
	ctx := context.Background()

	profile, _ := p.Update(ctx, "id", opponentRecord("text", 0.5))
	if profile.PersonaType != debate.PersonaCivil {
		t.Errorf("PersonaType = %q, want civil after one calm utterance", profile.PersonaType)
	}

	for i := 0; i < 10; i++ {
		profile, _ = p.Update(ctx, "id", opponentRecord("text", -1))
	}
	if profile.PersonaType != debate.PersonaHostile {
		t.Errorf("PersonaType = %q, want hostile after sustained -1 tone (aggression %v)", profile.PersonaType, profile.AggressionScore)
	}
}

func TestUpdateExtractsBeliefPatterns(t *testing.T) {
	p := NewProfiler(store.NewMemory())
	ctx := context.Background()

	profile, err := p.Update(ctx, "id", opponentRecord("Politics and SCIENCE shape the economy", 0))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	for _, topic := range []string{"politics", "science", "economy"} {
		if profile.BeliefPatterns[topic] != 1 {
			t.Errorf("BeliefPatterns[%q] = %d, want 1", topic, profile.BeliefPatterns[topic])
		}
	}

	profile, _ = p.Update(ctx, "id", opponentRecord("more politics", 0))
	if profile.BeliefPatterns["politics"] != 2 {
		t.Errorf("BeliefPatterns[politics] = %d, want 2", profile.BeliefPatterns["politics"])
	}
}

func TestUpdateCapsKeywordMatches(t *testing.T) {
	p := NewProfiler(store.NewMemory())

	text := "politics science religion economy health education"
	profile, err := p.Update(context.Background(), "id", opponentRecord(text, 0))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(profile.BeliefPatterns) != maxKeywordMatches {
		t.Errorf("got %d belief patterns, want %d", len(profile.BeliefPatterns), maxKeywordMatches)
	}
}

func TestUpdatePersistsAndReloadsFromStore(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	first := NewProfiler(st)
	first.Update(ctx, "id", opponentRecord("text", -1))

	// A fresh profiler with a cold cache must continue from the persisted state.
	second := NewProfiler(st)
	profile, err := second.Update(ctx, "id", opponentRecord("text", 0))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if profile.ArgumentCount != 2 {
		t.Errorf("ArgumentCount = %d, want 2 across profiler restarts", profile.ArgumentCount)
	}
	if math.Abs(profile.AggressionScore-0.21) > 1e-9 {
		t.Errorf("AggressionScore = %v, want 0.21 continued from persisted 0.3", profile.AggressionScore)
	}
}

func TestLookupReturnsNilForUnknownIdentifier(t *testing.T) {
	p := NewProfiler(store.NewMemory())

	profile, err := p.Lookup(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if profile != nil {
		t.Errorf("Lookup = %+v, want nil without creating a profile", profile)
	}
}

func TestLookupFindsUpdatedProfile(t *testing.T) {
	p := NewProfiler(store.NewMemory())
	ctx := context.Background()

	p.Update(ctx, "id", opponentRecord("text", 0))
	profile, err := p.Lookup(ctx, "id")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if profile == nil || profile.ArgumentCount != 1 {
		t.Errorf("Lookup = %+v, want the updated profile", profile)
	}
}
