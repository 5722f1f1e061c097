// Package consensus implements the multi-provider analysis engine. A
// single utterance fans out to every declared provider concurrently; the
// join waits for all of them to settle and aggregates the successes.
package consensus

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/daniel-clain/Auto-Debater/internal/debate"
	"github.com/daniel-clain/Auto-Debater/internal/provider"
	"github.com/sirupsen/logrus"
)

const defaultTimeout = 15 * time.Second

// Engine reconciles independent provider analyses into one consensus
// judgment. It never fails: under total provider failure it degrades to
// the neutral analysis with a consensus score of zero.
type Engine struct {
	providers []provider.Provider
	timeout   time.Duration
	log       *logrus.Entry
}

// NewEngine creates an Engine over the declared provider set. timeout
// bounds each provider call; zero means the default.
func NewEngine(providers []provider.Provider, timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Engine{
		providers: providers,
		timeout:   timeout,
		log:       logrus.WithField("component", "consensus"),
	}
}

// Neutral returns the fixed maximally-uncertain analysis used when no
// provider produces a usable result.
func Neutral() debate.ArgumentAnalysis {
	return debate.ArgumentAnalysis{
		FactCheckScore:   0.5,
		ToneScore:        0,
		LogicalFallacies: []string{},
		Emotion:          "neutral",
		ConsensusScore:   0,
		KeyPoints:        []string{},
	}
}

// Analyze implements debate.Analyzer. One goroutine per provider, joined
// once every call has settled; a provider failure or abstention
// contributes nothing to the aggregate. The per-call timeout keeps the
// join bounded even when a backend hangs.
func (e *Engine) Analyze(ctx context.Context, text string, speaker debate.Speaker) debate.ArgumentAnalysis {
	if len(e.providers) == 0 {
		return Neutral()
	}

	results := make([]*provider.Analysis, len(e.providers))
	var wg sync.WaitGroup
	for i, p := range e.providers {
		wg.Add(1)
		go func(i int, p provider.Provider) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, e.timeout)
			defer cancel()

			analysis, err := p.Analyze(callCtx, string(speaker), text)
			if err != nil {
				if errors.Is(err, provider.ErrNotConfigured) {
					e.log.WithField("provider", p.Name()).Debug("provider unconfigured, abstaining")
				} else {
					e.log.WithField("provider", p.Name()).WithError(err).Warn("provider analysis failed")
				}
				return
			}
			results[i] = analysis
		}(i, p)
	}
	wg.Wait()

	return e.reconcile(results)
}

// reconcile aggregates settled provider results, indexed by declaration
// order. Slots for failed providers are nil.
func (e *Engine) reconcile(results []*provider.Analysis) debate.ArgumentAnalysis {
	var successes []*provider.Analysis
	for _, r := range results {
		if r != nil {
			successes = append(successes, r)
		}
	}
	if len(successes) == 0 {
		return Neutral()
	}

	var factSum, toneSum float64
	for _, r := range successes {
		factSum += r.FactCheckScore
		toneSum += r.ToneScore
	}

	// Fallacy union, duplicates collapsed, first-seen order preserved.
	seen := make(map[string]bool)
	fallacies := []string{}
	for _, r := range successes {
		for _, f := range r.LogicalFallacies {
			if !seen[f] {
				seen[f] = true
				fallacies = append(fallacies, f)
			}
		}
	}

	keyPoints := successes[0].KeyPoints
	if keyPoints == nil {
		keyPoints = []string{}
	}

	return debate.ArgumentAnalysis{
		FactCheckScore:   factSum / float64(len(successes)),
		ToneScore:        toneSum / float64(len(successes)),
		LogicalFallacies: fallacies,
		Emotion:          pluralityEmotion(successes),
		ConsensusScore:   float64(len(successes)) / float64(len(e.providers)),
		KeyPoints:        keyPoints,
	}
}

// pluralityEmotion picks the most common emotion label. Ties break toward
// the label first returned by the earliest declared provider.
func pluralityEmotion(successes []*provider.Analysis) string {
	counts := make(map[string]int)
	for _, r := range successes {
		counts[r.Emotion]++
	}

	best := ""
	bestCount := 0
	for _, r := range successes {
		if counts[r.Emotion] > bestCount {
			best = r.Emotion
			bestCount = counts[r.Emotion]
		}
	}
	return best
}
