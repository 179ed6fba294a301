package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/udisondev/madocalc/internal/game/combat"
	"github.com/udisondev/madocalc/internal/num"
)

var (
	ErrPresetNameRequired = errors.New("preset name is required")
	ErrPresetValueInvalid = errors.New("preset value must be a positive number")
	ErrPresetNameTaken    = errors.New("preset name is already used")
	ErrPresetNotFound     = errors.New("preset not found")
)

// PresetRepository manages custom defense presets.
type PresetRepository struct {
	s *Store
}

// NewPresetRepository creates a PresetRepository over s.
func NewPresetRepository(s *Store) *PresetRepository {
	return &PresetRepository{s: s}
}

func validatePresetValue(raw string) error {
	v := num.ParseFloat(raw)
	if math.IsNaN(v) || v <= 0 {
		return fmt.Errorf("%w: %q", ErrPresetValueInvalid, raw)
	}
	return nil
}

// List returns custom presets in insertion order.
func (r *PresetRepository) List(ctx context.Context) ([]combat.Preset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []combat.Preset
	r.s.view(func(d document) { out = slices.Clone(d.Presets) })
	return out, nil
}

// Get returns the preset with the given ID.
func (r *PresetRepository) Get(ctx context.Context, id string) (combat.Preset, error) {
	presets, err := r.List(ctx)
	if err != nil {
		return combat.Preset{}, err
	}
	for _, p := range presets {
		if p.ID == id {
			return p, nil
		}
	}
	return combat.Preset{}, fmt.Errorf("%w: %s", ErrPresetNotFound, id)
}

// Catalog returns built-in presets merged with the stored ones.
func (r *PresetRepository) Catalog(ctx context.Context) (combat.PresetCatalog, error) {
	presets, err := r.List(ctx)
	if err != nil {
		return combat.PresetCatalog{}, err
	}
	return combat.NewPresetCatalog(presets), nil
}

// Save creates a preset, or updates the preset editingID when it is not
// empty. The name is trimmed and must be unique (case-insensitively) among
// the other custom presets. The value is stored in its canonical numeric
// form, so "1500.50" is kept as "1500.5".
func (r *PresetRepository) Save(ctx context.Context, name, value, editingID string) (combat.Preset, error) {
	if err := ctx.Err(); err != nil {
		return combat.Preset{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return combat.Preset{}, ErrPresetNameRequired
	}
	if err := validatePresetValue(value); err != nil {
		return combat.Preset{}, err
	}
	saved := combat.Preset{
		ID:      editingID,
		Name:    name,
		Defense: num.FormatNumber(num.ParseFloat(value)),
	}

	err := r.s.update(func(d *document) error {
		idx := -1
		for i, p := range d.Presets {
			if editingID != "" && p.ID == editingID {
				idx = i
				continue
			}
			if strings.EqualFold(strings.TrimSpace(p.Name), name) {
				return fmt.Errorf("%w: %s", ErrPresetNameTaken, name)
			}
		}

		if editingID != "" {
			if idx < 0 {
				return fmt.Errorf("%w: %s", ErrPresetNotFound, editingID)
			}
			d.Presets[idx] = saved
			return nil
		}
		saved.ID = uuid.NewString()
		d.Presets = append(d.Presets, saved)
		return nil
	})
	if err != nil {
		return combat.Preset{}, fmt.Errorf("saving preset %q: %w", name, err)
	}
	return saved, nil
}

// Delete removes the preset with the given ID.
func (r *PresetRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := r.s.update(func(d *document) error {
		before := len(d.Presets)
		d.Presets = slices.DeleteFunc(d.Presets, func(p combat.Preset) bool { return p.ID == id })
		if len(d.Presets) == before {
			return fmt.Errorf("%w: %s", ErrPresetNotFound, id)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting preset %s: %w", id, err)
	}
	return nil
}
