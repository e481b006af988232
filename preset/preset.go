// Package preset persists named rename formulas in a YAML file, so that
// frequently used patterns can be recalled by name from the CLI.
package preset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/bulicmd/bulirename/parser"
)

// Store maps preset names to formula patterns
type Store struct {
	Presets map[string]string `yaml:"presets"`
}

// DefaultPath returns the per-user presets file location
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("preset: %w", err)
	}
	return filepath.Join(dir, "bulirename", "presets.yaml"), nil
}

// Load reads a store from path. A missing file is not an error: it loads
// as an empty store, so first use needs no setup step.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Store{Presets: map[string]string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}

	var s Store
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("preset: parsing %s: %w", path, err)
	}
	if s.Presets == nil {
		s.Presets = map[string]string{}
	}
	return &s, nil
}

// Save writes the store to path, creating parent directories as needed
func (s *Store) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("preset: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	return nil
}

// Get looks a preset up by name
func (s *Store) Get(name string) (string, bool) {
	pattern, ok := s.Presets[name]
	return pattern, ok
}

// Set stores a preset after checking the pattern parses; a preset that
// can never evaluate is rejected with its first parse error
func (s *Store) Set(name, pattern string) error {
	if name == "" {
		return errors.New("preset: empty preset name")
	}
	if _, errs := parser.Parse(pattern); len(errs) > 0 {
		return fmt.Errorf("preset %q: %w", name, errs[0])
	}
	if s.Presets == nil {
		s.Presets = map[string]string{}
	}
	s.Presets[name] = pattern
	return nil
}

// Delete removes a preset and reports whether it existed
func (s *Store) Delete(name string) bool {
	if _, ok := s.Presets[name]; !ok {
		return false
	}
	delete(s.Presets, name)
	return true
}

// Names returns the preset names in sorted order
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.Presets))
	for name := range s.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
