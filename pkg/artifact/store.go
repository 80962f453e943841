// Package artifact persists audio clips and episodes under one content
// directory. References are opaque strings (the stored file name) resolvable
// by both the HTTP layer and the assembly stage.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is a write-once filesystem artifact store.
type Store struct {
	dir string
}

// NewStore creates the content directory if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("artifact directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Put writes data under name and returns the artifact reference.
func (s *Store) Put(name string, data []byte) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact %s: %w", name, err)
	}
	return name, nil
}

// Path resolves a reference to its on-disk location.
func (s *Store) Path(ref string) (string, error) {
	if err := validName(ref); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, ref), nil
}

// Read returns an artifact's contents.
func (s *Store) Read(ref string) ([]byte, error) {
	p, err := s.Path(ref)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(p)
}

// Dir returns the content directory, for static file serving.
func (s *Store) Dir() string {
	return s.dir
}

// validName rejects references that could escape the content directory.
func validName(name string) error {
	if name == "" {
		return fmt.Errorf("empty artifact name")
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") || strings.Contains(name, "..") {
		return fmt.Errorf("invalid artifact name %q", name)
	}
	return nil
}
