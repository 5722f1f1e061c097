// Package store persists argument records and rival profiles. All writes
// are idempotent upserts keyed by record id or opponent identifier.
package store

import (
	"context"

	"github.com/daniel-clain/Auto-Debater/internal/debate"
)

// Store is the persistence boundary for the intelligence pipeline.
type Store interface {
	SaveArgument(ctx context.Context, record debate.ArgumentRecord) error
	SaveRivalProfile(ctx context.Context, profile debate.RivalProfile) error
	// GetRivalProfile returns nil when the identifier has never been saved.
	GetRivalProfile(ctx context.Context, identifier string) (*debate.RivalProfile, error)
	Close() error
}
