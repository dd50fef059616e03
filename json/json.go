// Package json implements the JSON wire format for persisted sessions and
// memories. Stores that serialize entities (file snapshots, Redis values) all
// go through this package so the format stays in one place.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/storee/storee"
)

// envelope is the v1 wire format for a persisted session.
type envelope struct {
	Version         int        `json:"version"`
	ID              string     `json:"id"`
	Owner           string     `json:"owner"`
	Status          string     `json:"status"`
	Turns           []turnDTO  `json:"turns"`
	CurrentQuestion string     `json:"current_question,omitempty"`
	InitialContext  string     `json:"initial_context,omitempty"`
	Summary         string     `json:"summary,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	LastUpdatedAt   time.Time  `json:"last_updated_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
}

// turnDTO is the JSON representation of a conversation turn.
type turnDTO struct {
	Speaker string    `json:"speaker"`
	Text    string    `json:"text"`
	At      time.Time `json:"at"`
}

// MarshalSession serializes a Session to JSON in v1 envelope format.
func MarshalSession(s storee.Session) ([]byte, error) {
	env := envelope{
		Version:         1,
		ID:              s.ID,
		Owner:           s.Owner,
		Status:          string(s.Status),
		Turns:           make([]turnDTO, len(s.Turns)),
		CurrentQuestion: s.CurrentQuestion,
		InitialContext:  s.InitialContext,
		Summary:         s.Summary,
		CreatedAt:       s.CreatedAt,
		LastUpdatedAt:   s.LastUpdatedAt,
	}
	if !s.EndedAt.IsZero() {
		endedAt := s.EndedAt
		env.EndedAt = &endedAt
	}
	for i, t := range s.Turns {
		env.Turns[i] = turnDTO{Speaker: string(t.Speaker), Text: t.Text, At: t.At}
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalSession deserializes a Session from JSON in v1 envelope format.
func UnmarshalSession(data []byte) (storee.Session, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return storee.Session{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return storee.Session{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	s := storee.Session{
		ID:              env.ID,
		Owner:           env.Owner,
		Status:          storee.Status(env.Status),
		Turns:           make([]storee.Turn, len(env.Turns)),
		CurrentQuestion: env.CurrentQuestion,
		InitialContext:  env.InitialContext,
		Summary:         env.Summary,
		CreatedAt:       env.CreatedAt,
		LastUpdatedAt:   env.LastUpdatedAt,
	}
	if env.EndedAt != nil {
		s.EndedAt = *env.EndedAt
	}
	for i, t := range env.Turns {
		s.Turns[i] = storee.Turn{Speaker: storee.Speaker(t.Speaker), Text: t.Text, At: t.At}
	}
	return s, nil
}

// Save writes a Session to a JSON file, creating parent directories as needed.
// The write is atomic: data goes to a temp file first, then renames over path.
func Save(path string, s storee.Session) error {
	data, err := MarshalSession(s)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a Session from a JSON file.
func Load(path string) (storee.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return storee.Session{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalSession(data)
}
