// Package workspace persists clients, themes, templates and proposals in a
// single YAML file.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/proposa/internal/document"
	"github.com/alexisbeaulieu97/proposa/internal/theme"
	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

// FileVersion is written to every saved workspace.
const FileVersion = "1"

// File is the on-disk layout.
type File struct {
	Version   string              `yaml:"version"`
	Clients   []document.Client   `yaml:"clients"`
	Themes    theme.Collection    `yaml:"themes"`
	Templates []document.Template `yaml:"templates"`
	Proposals []document.Proposal `yaml:"proposals"`
}

// Validate checks cross-record invariants: unique ids and at most one
// default theme.
func (f File) Validate() error {
	if err := f.Themes.Validate(); err != nil {
		return err
	}
	if err := uniqueIDs("client", f.Clients, func(c document.Client) string { return c.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("template", f.Templates, func(t document.Template) string { return t.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("proposal", f.Proposals, func(p document.Proposal) string { return p.ID }); err != nil {
		return err
	}
	links := make(map[string]string)
	for _, p := range f.Proposals {
		if p.PublicLink == "" {
			continue
		}
		if other, ok := links[p.PublicLink]; ok {
			return proposaerrors.NewValidationError("public_link", fmt.Sprintf("proposals %s and %s share link %s", other, p.ID, p.PublicLink), nil)
		}
		links[p.PublicLink] = p.ID
	}
	return nil
}

func uniqueIDs[T any](kind string, items []T, id func(T) string) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		key := id(item)
		if seen[key] {
			return proposaerrors.NewValidationError(kind+"s", fmt.Sprintf("duplicate %s id %s", kind, key), nil)
		}
		seen[key] = true
	}
	return nil
}

// Store guards a workspace file. Reads return deep copies.
type Store struct {
	path string
	mu   sync.RWMutex
	data File

	// saveMu orders disk access. digest is the hash of the bytes last
	// written or read, guarded by saveMu.
	saveMu sync.Mutex
	digest uint64
}

// Open loads the workspace at path. A missing file yields an empty workspace
// carrying the built-in themes.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create workspace directory: %w", err)
	}

	if err := s.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		s.data = Empty()
	}
	return s, nil
}

// NewMemory returns a store that is never written to disk.
func NewMemory(data File) *Store {
	return &Store{data: data}
}

// Empty returns a workspace with only the built-in themes.
func Empty() File {
	return File{Version: FileVersion, Themes: theme.Builtin()}
}

// Path returns the backing file, or "" for memory stores.
func (s *Store) Path() string { return s.path }

// Load re-reads the workspace from disk, replacing the in-memory state.
func (s *Store) Load() error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	_, err := s.readLocked(true)
	return err
}

// Reload re-reads the workspace unless the file still holds the bytes this
// store last wrote or read. It reports whether the in-memory state changed.
func (s *Store) Reload() (bool, error) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	return s.readLocked(false)
}

func (s *Store) readLocked(force bool) (bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false, err
	}
	digest := xxhash.Sum64(data)
	if !force && digest == s.digest {
		return false, nil
	}
	file, err := Decode(s.path, data)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	s.data = file
	s.mu.Unlock()
	s.digest = digest
	return true, nil
}

// Decode parses and validates a workspace document.
func Decode(path string, data []byte) (File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, proposaerrors.NewParseError(path, yamlLine(err), err)
	}
	if file.Version == "" {
		file.Version = FileVersion
	}
	if err := file.Validate(); err != nil {
		return File{}, err
	}
	return file, nil
}

// Save writes the workspace atomically through a temporary file. Saves are
// serialised so the file always ends up holding the newest snapshot.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.RLock()
	data, err := yaml.Marshal(s.data)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal workspace: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to set workspace permissions: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	s.digest = xxhash.Sum64(data)
	return nil
}

// Snapshot returns a deep copy of the whole workspace.
func (s *Store) Snapshot() File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.clone()
}

// Replace swaps in a new workspace after validating it.
func (s *Store) Replace(file File) error {
	if err := file.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = file.clone()
	return nil
}

func (f File) clone() File {
	out := File{
		Version: f.Version,
		Clients: slices.Clone(f.Clients),
		Themes:  slices.Clone(f.Themes),
	}
	for _, t := range f.Templates {
		out.Templates = append(out.Templates, t.Clone())
	}
	for _, p := range f.Proposals {
		out.Proposals = append(out.Proposals, p.Clone())
	}
	return out
}

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

func yamlLine(err error) int {
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	line, convErr := strconv.Atoi(matches[1])
	if convErr != nil {
		return 0
	}
	return line
}
