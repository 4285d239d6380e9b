// Package history keeps the most recent distinct searches.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// MaxEntries is how many logins are remembered.
const MaxEntries = 8

// Store persists history entries.
type Store interface {
	Load() ([]string, error)
	Save(entries []string) error
}

// History is an ordered, most-recent-first list of distinct logins.
type History struct {
	mu      sync.Mutex
	entries []string
	store   Store
}

// New loads history from store. A nil store keeps history in memory only.
func New(store Store) (*History, error) {
	h := &History{store: store}
	if store == nil {
		return h, nil
	}
	entries, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load search history: %w", err)
	}
	h.entries = normalize(entries)
	return h, nil
}

// Add moves login to the front, dropping older duplicates and anything past
// MaxEntries, then persists the result.
func (h *History) Add(login string) error {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = normalize(append([]string{login}, h.entries...))
	if h.store == nil {
		return nil
	}
	if err := h.store.Save(h.entries); err != nil {
		return fmt.Errorf("failed to save search history: %w", err)
	}
	return nil
}

// Clear forgets every entry and persists the empty list.
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
	if h.store == nil {
		return nil
	}
	if err := h.store.Save([]string{}); err != nil {
		return fmt.Errorf("failed to clear search history: %w", err)
	}
	return nil
}

// Entries returns a copy of the current history.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

func normalize(entries []string) []string {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, MaxEntries)
	for _, e := range entries {
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
		if len(out) == MaxEntries {
			break
		}
	}
	return out
}

// FileStore keeps history as a JSON array in a file.
type FileStore struct {
	Path string
}

// Load returns no entries when the file does not exist yet.
func (s FileStore) Load() ([]string, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("invalid history file %s: %w", s.Path, err)
	}
	return entries, nil
}

func (s FileStore) Save(entries []string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o644)
}
