package store

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// MemoSection groups memos by the input block they were saved from.
type MemoSection string

const (
	SectionAttacker   MemoSection = "attackerStatus_dmgCalc"
	SectionDefender   MemoSection = "defenderStatus_dmgCalc"
	SectionMemory     MemoSection = "memoryStats_sc"
	SectionSupport    MemoSection = "supportStats_sc"
	SectionPortrait   MemoSection = "portraitStats_sc"
	SectionAbility    MemoSection = "abilityBuffs_sc"
	SectionHPRecovery MemoSection = "hpRecoverySetup_hpCalc"
)

var memoSections = []MemoSection{
	SectionAttacker, SectionDefender,
	SectionMemory, SectionSupport, SectionPortrait, SectionAbility,
	SectionHPRecovery,
}

// MemoSections lists every section in display order.
func MemoSections() []MemoSection {
	return slices.Clone(memoSections)
}

// Valid reports whether s is a known section.
func (s MemoSection) Valid() bool {
	return slices.Contains(memoSections, s)
}

// ParseMemoSection resolves a section by its key.
func ParseMemoSection(s string) (MemoSection, error) {
	sec := MemoSection(strings.TrimSpace(s))
	if !sec.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, s)
	}
	return sec, nil
}

// Memo is a named snapshot of one section's input values.
type Memo struct {
	ID     string            `yaml:"id"`
	Name   string            `yaml:"name"`
	Values map[string]string `yaml:"values"`
}

var (
	ErrUnknownSection   = errors.New("unknown memo section")
	ErrMemoNameRequired = errors.New("memo name is required")
	ErrMemoNameTaken    = errors.New("a memo with this name already exists")
	ErrMemoNotFound     = errors.New("memo not found")
)

// MemoRepository manages section memos.
type MemoRepository struct {
	s *Store
}

// NewMemoRepository creates a MemoRepository over s.
func NewMemoRepository(s *Store) *MemoRepository {
	return &MemoRepository{s: s}
}

// List returns the memos of section, newest first.
func (r *MemoRepository) List(ctx context.Context, section MemoSection) ([]Memo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !section.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	var out []Memo
	r.s.view(func(d document) { out = slices.Clone(d.Memos[section]) })
	return out, nil
}

// Get returns one memo of section.
func (r *MemoRepository) Get(ctx context.Context, section MemoSection, id string) (Memo, error) {
	memos, err := r.List(ctx, section)
	if err != nil {
		return Memo{}, err
	}
	for _, m := range memos {
		if m.ID == id {
			return m, nil
		}
	}
	return Memo{}, fmt.Errorf("%w: %s/%s", ErrMemoNotFound, section, id)
}

// Save stores values under name at the front of section. Names are
// trimmed and must not repeat within the section.
func (r *MemoRepository) Save(ctx context.Context, section MemoSection, name string, values map[string]string) (Memo, error) {
	if err := ctx.Err(); err != nil {
		return Memo{}, err
	}
	if !section.Valid() {
		return Memo{}, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Memo{}, ErrMemoNameRequired
	}

	memo := Memo{ID: uuid.NewString(), Name: name, Values: maps.Clone(values)}
	if memo.Values == nil {
		memo.Values = map[string]string{}
	}

	err := r.s.update(func(d *document) error {
		for _, m := range d.Memos[section] {
			if m.Name == name {
				return fmt.Errorf("%w: %s", ErrMemoNameTaken, name)
			}
		}
		d.Memos[section] = append([]Memo{memo}, d.Memos[section]...)
		return nil
	})
	if err != nil {
		return Memo{}, fmt.Errorf("saving memo %q: %w", name, err)
	}
	return memo, nil
}

// Delete removes one memo from section.
func (r *MemoRepository) Delete(ctx context.Context, section MemoSection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !section.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	err := r.s.update(func(d *document) error {
		before := len(d.Memos[section])
		d.Memos[section] = slices.DeleteFunc(d.Memos[section], func(m Memo) bool { return m.ID == id })
		if len(d.Memos[section]) == before {
			return fmt.Errorf("%w: %s", ErrMemoNotFound, id)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting memo %s/%s: %w", section, id, err)
	}
	return nil
}
