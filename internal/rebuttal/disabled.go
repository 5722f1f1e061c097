package rebuttal

import (
	"context"

	"github.com/daniel-clain/Auto-Debater/internal/debate"
)

// Disabled is the Generator used when no chat backend holds a credential.
// It produces no candidates and no error, so the coordinator simply emits
// updates without rebuttals.
type Disabled struct{}

// Generate implements debate.Generator.
func (Disabled) Generate(context.Context, string, debate.ArgumentAnalysis, string, debate.Style) ([]debate.Rebuttal, error) {
	return nil, nil
}
