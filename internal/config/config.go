// Package config persists refcast's configuration: the ordered list of
// project root folders that discovery scans.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const rootsFile = "roots.yaml"

type rootsDoc struct {
	// Roots are absolute paths, in registration order. Order matters:
	// discovery takes the first root containing a matching project.
	Roots []string `yaml:"roots"`
}

// Store manages the persisted project-root list. Every mutation is a
// read-modify-write of the backing file, so in-process callers always see
// the latest persisted state. Two processes mutating simultaneously can
// lose a write; single-writer usage is assumed, not enforced.
type Store struct {
	mu  sync.Mutex
	dir string
}

// DefaultDir returns the per-user config directory.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "refcast"), nil
}

// Open creates a store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path() string {
	return filepath.Join(s.dir, rootsFile)
}

func (s *Store) load() (*rootsDoc, error) {
	var doc rootsDoc
	data, err := os.ReadFile(s.path())
	if os.IsNotExist(err) {
		return &doc, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path(), err)
	}
	return &doc, nil
}

func (s *Store) save(doc *rootsDoc) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(), data, 0644)
}

// Roots returns the registered project roots in registration order.
func (s *Store) Roots() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.Roots, nil
}

// AddRoot appends a root if not already registered. The path must exist
// and be a directory; it is stored in absolute form.
func (s *Store) AddRoot(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", abs)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	for _, r := range doc.Roots {
		if r == abs {
			return nil
		}
	}
	doc.Roots = append(doc.Roots, abs)
	return s.save(doc)
}

// RemoveRoot removes a root. Removing an unregistered root is a no-op.
func (s *Store) RemoveRoot(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return err
	}
	kept := doc.Roots[:0]
	for _, r := range doc.Roots {
		if r != abs {
			kept = append(kept, r)
		}
	}
	doc.Roots = kept
	return s.save(doc)
}
