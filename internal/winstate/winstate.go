// Package winstate persists the last window geometry so a new session
// can start where the previous one left off. The store is a best-effort
// side channel: missing or corrupt state silently yields defaults and
// must never block startup.
package winstate

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Bounds is the persisted geometry record.
type Bounds struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	X      int `json:"x"`
	Y      int `json:"y"`
}

// DefaultBounds matches a standard terminal.
func DefaultBounds() Bounds {
	return Bounds{Width: 80, Height: 24}
}

// Store reads and writes the bounds record at a fixed path.
type Store struct{ Path string }

func New(path string) *Store { return &Store{Path: path} }

// Load returns the stored bounds, or defaults when the record is
// missing, unreadable, or nonsensical.
func (s *Store) Load() Bounds {
	def := DefaultBounds()
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return def
	}
	var b Bounds
	if err := json.Unmarshal(data, &b); err != nil {
		return def
	}
	if b.Width <= 0 || b.Height <= 0 {
		return def
	}
	return b
}

// Save writes the record. Errors are returned for logging but callers
// treat them as non-fatal.
func (s *Store) Save(b Bounds) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o600)
}
