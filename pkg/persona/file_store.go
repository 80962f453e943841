package persona

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FileStore keeps personas in memory and mirrors every addition to a JSON
// file. Writes go through a temp file plus rename so a crashed write never
// truncates the collection, and the mutex serializes concurrent additions.
type FileStore struct {
	path string

	mu       sync.RWMutex
	personas map[string]Persona
}

// NewFileStore loads the persona collection from path. A missing file is not
// an error: the store starts with the built-in default personas and creates
// the file on the first addition.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:     path,
		personas: make(map[string]Persona),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read persona file: %w", err)
		}
		for _, p := range DefaultPersonas() {
			s.personas[p.ID] = p
		}
		log.Printf("[PersonaStore] %s not found, seeded %d default personas", path, len(s.personas))
		return s, nil
	}

	var loaded []Persona
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse persona file %s: %w", path, err)
	}
	for _, p := range loaded {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("persona file %s: %w", path, err)
		}
		s.personas[p.ID] = p
	}

	log.Printf("[PersonaStore] Loaded %d personas from %s", len(s.personas), path)
	return s, nil
}

// Get returns the persona with the given ID.
func (s *FileStore) Get(ctx context.Context, id string) (Persona, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.personas[id]
	if !ok {
		return Persona{}, &ErrNotFound{ID: id}
	}
	return p, nil
}

// List returns all persona IDs in sorted order.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.personas))
	for id := range s.personas {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Add registers a new persona and persists the whole collection.
func (s *FileStore) Add(ctx context.Context, p Persona) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.personas[p.ID]; ok {
		return &ErrAlreadyExists{ID: p.ID}
	}
	s.personas[p.ID] = p

	if err := s.persistLocked(); err != nil {
		delete(s.personas, p.ID)
		return fmt.Errorf("persist persona file: %w", err)
	}

	log.Printf("[PersonaStore] Added persona %q (%s)", p.ID, p.DisplayName)
	return nil
}

// persistLocked writes the collection atomically. Caller holds s.mu.
func (s *FileStore) persistLocked() error {
	all := make([]Persona, 0, len(s.personas))
	for _, p := range s.personas {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".personas-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

var _ Store = (*FileStore)(nil)
