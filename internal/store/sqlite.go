package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/daniel-clain/Auto-Debater/internal/debate"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS arguments (
	id TEXT PRIMARY KEY,
	session_id TEXT,
	speaker TEXT,
	text TEXT,
	timestamp INTEGER,
	analysis TEXT
);

CREATE TABLE IF NOT EXISTS rival_profiles (
	id TEXT PRIMARY KEY,
	identifier TEXT UNIQUE,
	name TEXT,
	persona_type TEXT,
	aggression_score REAL,
	argument_count INTEGER DEFAULT 0,
	belief_patterns TEXT
);
`

// SQLite is the durable Store backed by a local SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures
// the schema exists.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: initializing schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// SaveArgument implements Store as an upsert keyed by record id.
func (s *SQLite) SaveArgument(ctx context.Context, record debate.ArgumentRecord) error {
	analysis, err := json.Marshal(record.Analysis)
	if err != nil {
		return fmt.Errorf("store: encoding analysis: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO arguments (id, session_id, speaker, text, timestamp, analysis)
		VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID, record.SessionID, string(record.Speaker), record.Text,
		record.CreatedAt.UnixMilli(), string(analysis),
	)
	if err != nil {
		return fmt.Errorf("store: saving argument %s: %w", record.ID, err)
	}
	return nil
}

// SaveRivalProfile implements Store as an upsert keyed by identifier.
func (s *SQLite) SaveRivalProfile(ctx context.Context, profile debate.RivalProfile) error {
	patterns, err := json.Marshal(profile.BeliefPatterns)
	if err != nil {
		return fmt.Errorf("store: encoding belief patterns: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO rival_profiles (id, identifier, name, persona_type, aggression_score, argument_count, belief_patterns)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		profile.ID, profile.Identifier, profile.Name, string(profile.PersonaType),
		profile.AggressionScore, profile.ArgumentCount, string(patterns),
	)
	if err != nil {
		return fmt.Errorf("store: saving profile %s: %w", profile.Identifier, err)
	}
	return nil
}

// GetRivalProfile implements Store.
func (s *SQLite) GetRivalProfile(ctx context.Context, identifier string) (*debate.RivalProfile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, identifier, name, persona_type, aggression_score, argument_count, belief_patterns
		FROM rival_profiles WHERE identifier = ?`, identifier)

	var profile debate.RivalProfile
	var personaType, patterns string
	err := row.Scan(&profile.ID, &profile.Identifier, &profile.Name, &personaType,
		&profile.AggressionScore, &profile.ArgumentCount, &patterns)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: loading profile %s: %w", identifier, err)
	}

	profile.PersonaType = debate.PersonaType(personaType)
	profile.BeliefPatterns = make(map[string]int)
	if patterns != "" {
		if err := json.Unmarshal([]byte(patterns), &profile.BeliefPatterns); err != nil {
			return nil, fmt.Errorf("store: decoding belief patterns for %s: %w", identifier, err)
		}
	}
	return &profile, nil
}

// Arguments returns a session's records in arrival order, for the CLI and
// session warm-up reads.
func (s *SQLite) Arguments(ctx context.Context, sessionID string) ([]debate.ArgumentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, speaker, text, timestamp, analysis
		FROM arguments WHERE session_id = ? ORDER BY timestamp`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("store: loading arguments for %s: %w", sessionID, err)
	}
	defer rows.Close()

	var records []debate.ArgumentRecord
	for rows.Next() {
		var r debate.ArgumentRecord
		var speaker, analysis string
		var millis int64
		if err := rows.Scan(&r.ID, &r.SessionID, &speaker, &r.Text, &millis, &analysis); err != nil {
			return nil, fmt.Errorf("store: scanning argument: %w", err)
		}
		r.Speaker = debate.Speaker(speaker)
		r.CreatedAt = time.UnixMilli(millis)
		if err := json.Unmarshal([]byte(analysis), &r.Analysis); err != nil {
			return nil, fmt.Errorf("store: decoding analysis for %s: %w", r.ID, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close implements Store.
func (s *SQLite) Close() error { return s.db.Close() }
