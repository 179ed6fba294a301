package combat

import "github.com/udisondev/madocalc/internal/data"

// Preset is a named base defense value.
type Preset struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Defense string `yaml:"value"`
	Custom  bool   `yaml:"-"`
}

// PresetSource resolves a preset ID to its raw defense value.
type PresetSource interface {
	DefenseFor(id string) (string, bool)
}

// PresetCatalog merges user presets with the built-in list. User presets
// take precedence on ID collisions.
type PresetCatalog struct {
	custom []Preset
}

// NewPresetCatalog builds a catalog over the given user presets.
func NewPresetCatalog(custom []Preset) PresetCatalog {
	cp := make([]Preset, len(custom))
	for i, p := range custom {
		p.Custom = true
		cp[i] = p
	}
	return PresetCatalog{custom: cp}
}

// BuiltinPresets returns the built-in presets as catalog entries.
func BuiltinPresets() []Preset {
	out := make([]Preset, len(data.DefensePresets))
	for i, p := range data.DefensePresets {
		out[i] = Preset{ID: p.ID, Name: p.Label, Defense: p.Defense}
	}
	return out
}

// DefenseFor implements PresetSource.
func (c PresetCatalog) DefenseFor(id string) (string, bool) {
	for _, p := range c.custom {
		if p.ID == id {
			return p.Defense, true
		}
	}
	if p, ok := data.FindDefensePreset(id); ok {
		return p.Defense, true
	}
	return "", false
}

// All lists built-in presets followed by user presets.
func (c PresetCatalog) All() []Preset {
	return append(BuiltinPresets(), c.custom...)
}
