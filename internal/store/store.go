// Package store persists custom defense presets and section memos in a
// single local YAML document.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/madocalc/internal/game/combat"
)

// document is the on-disk layout.
type document struct {
	Presets []combat.Preset        `yaml:"presets"`
	Memos   map[MemoSection][]Memo `yaml:"memos"`
}

func (d document) clone() document {
	out := document{
		Presets: slices.Clone(d.Presets),
		Memos:   make(map[MemoSection][]Memo, len(d.Memos)),
	}
	for k, v := range d.Memos {
		out.Memos[k] = slices.Clone(v)
	}
	return out
}

// Store is a YAML file guarded by a mutex. Every mutation rewrites the
// whole file through a temp file and rename.
type Store struct {
	mu   sync.Mutex
	path string
	doc  document
}

// Open loads the document at path. A missing file is an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path, doc: document{Memos: map[MemoSection][]Memo{}}}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("reading store %s: %w", path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing store %s: %w", path, err)
	}
	s.doc = sanitize(doc)
	return s, nil
}

// sanitize drops presets that could never have been saved and memos of
// unknown sections.
func sanitize(doc document) document {
	out := document{Memos: map[MemoSection][]Memo{}}
	for _, p := range doc.Presets {
		if p.ID == "" || validatePresetValue(p.Defense) != nil {
			slog.Warn("dropping invalid preset", "id", p.ID, "name", p.Name, "value", p.Defense)
			continue
		}
		out.Presets = append(out.Presets, p)
	}
	for section, memos := range doc.Memos {
		if !section.Valid() {
			slog.Warn("dropping memos of unknown section", "section", section, "count", len(memos))
			continue
		}
		out.Memos[section] = memos
	}
	return out
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) view(fn func(document)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.doc)
}

// update runs fn on a copy of the document and persists the copy when fn
// succeeds. The in-memory state only changes after a successful write.
func (s *Store) update(fn func(*document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := writeAtomic(s.path, next); err != nil {
		return err
	}
	s.doc = next
	return nil
}

func writeAtomic(path string, doc document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing store %s: %w", path, err)
	}
	return nil
}
