// Package scenario evaluates batches of calculator inputs read from YAML.
package scenario

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/madocalc/internal/buff"
	"github.com/udisondev/madocalc/internal/game/combat"
	"github.com/udisondev/madocalc/internal/game/recovery"
	"github.com/udisondev/madocalc/internal/game/status"
	"github.com/udisondev/madocalc/internal/game/timeline"
)

// Kind is the calculator a scenario targets.
type Kind string

const (
	KindDamage   Kind = "damage"
	KindHP       Kind = "hp"
	KindMPAction Kind = "mp_action"
	KindMPSkill  Kind = "mp_skill"
	KindStatus   Kind = "status"
	KindTimeline Kind = "timeline"
)

var (
	ErrNoSection        = errors.New("scenario has no calculator section")
	ErrManySections     = errors.New("scenario has more than one calculator section")
	ErrCompareNotStatus = errors.New("compare is only valid with status")
	ErrSolveNotAllowed  = errors.New("solve is only valid with damage or timeline")
)

// Solve requests a reverse calculation.
type Solve struct {
	Field  string `yaml:"field"`
	Target string `yaml:"target"`
	// AV selects the timeline formula: "initial" or "modified". Empty picks
	// the one owning Field; speed defaults to initial.
	AV string `yaml:"av"`
}

// Scenario is one named evaluation. Exactly one calculator section must be
// set; fields left out of a section keep the calculator's defaults.
type Scenario struct {
	Name string

	Damage   *combat.DamageInputs
	HP       *recovery.HPInputs
	MPAction *recovery.ActionInputs
	MPSkill  *recovery.SkillEffectInputs
	Status   *status.Inputs
	Compare  *status.Inputs
	Timeline *timeline.Inputs

	Solve *Solve
}

// rawScenario defers section decoding so that defaults can be laid down
// before the user's values.
type rawScenario struct {
	Name     string     `yaml:"name"`
	Damage   *yaml.Node `yaml:"damage"`
	HP       *yaml.Node `yaml:"hp"`
	MPAction *yaml.Node `yaml:"mp_action"`
	MPSkill  *yaml.Node `yaml:"mp_skill"`
	Status   *yaml.Node `yaml:"status"`
	Compare  *yaml.Node `yaml:"compare"`
	Timeline *yaml.Node `yaml:"timeline"`
	Solve    *Solve     `yaml:"solve"`
}

func decodeOver[T any](node *yaml.Node, def T) (*T, error) {
	if node == nil {
		return nil, nil
	}
	v := def
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Scenario) UnmarshalYAML(value *yaml.Node) error {
	var raw rawScenario
	if err := value.Decode(&raw); err != nil {
		return err
	}
	modes := buff.DefaultModes()

	var err error
	out := Scenario{Name: raw.Name, Solve: raw.Solve}
	if out.Damage, err = decodeOver(raw.Damage, combat.DefaultDamageInputs(modes)); err != nil {
		return fmt.Errorf("damage: %w", err)
	}
	if out.HP, err = decodeOver(raw.HP, recovery.DefaultHPInputs(modes)); err != nil {
		return fmt.Errorf("hp: %w", err)
	}
	if out.MPAction, err = decodeOver(raw.MPAction, recovery.DefaultActionInputs(modes)); err != nil {
		return fmt.Errorf("mp_action: %w", err)
	}
	if out.MPSkill, err = decodeOver(raw.MPSkill, recovery.DefaultSkillEffectInputs(modes)); err != nil {
		return fmt.Errorf("mp_skill: %w", err)
	}
	if out.Status, err = decodeOver(raw.Status, status.DefaultInputs(modes)); err != nil {
		return fmt.Errorf("status: %w", err)
	}
	if out.Compare, err = decodeOver(raw.Compare, status.DefaultInputs(modes)); err != nil {
		return fmt.Errorf("compare: %w", err)
	}
	if out.Timeline, err = decodeOver(raw.Timeline, timeline.DefaultInputs()); err != nil {
		return fmt.Errorf("timeline: %w", err)
	}

	*s = out
	return nil
}

// Kind reports the calculator section that is set.
func (s Scenario) Kind() (Kind, error) {
	var kinds []Kind
	add := func(set bool, k Kind) {
		if set {
			kinds = append(kinds, k)
		}
	}
	add(s.Damage != nil, KindDamage)
	add(s.HP != nil, KindHP)
	add(s.MPAction != nil, KindMPAction)
	add(s.MPSkill != nil, KindMPSkill)
	add(s.Status != nil, KindStatus)
	add(s.Timeline != nil, KindTimeline)

	switch len(kinds) {
	case 0:
		return "", ErrNoSection
	case 1:
	default:
		return "", fmt.Errorf("%w: %v", ErrManySections, kinds)
	}

	k := kinds[0]
	if s.Compare != nil && k != KindStatus {
		return "", ErrCompareNotStatus
	}
	if s.Solve != nil && k != KindDamage && k != KindTimeline {
		return "", ErrSolveNotAllowed
	}
	return k, nil
}

// File is a scenario document.
type File struct {
	// Modes overrides buff modes for every scenario in the file.
	Modes     map[string]string `yaml:"modes"`
	Scenarios []Scenario        `yaml:"scenarios"`
}

// Load reads a scenario file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading scenarios %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parsing scenarios %s: %w", path, err)
	}
	return f, nil
}

// BuffModes layers the file's mode overrides on top of base.
func (f File) BuffModes(base buff.Modes) (buff.Modes, error) {
	out := base
	for k, v := range f.Modes {
		key := buff.FieldKey(k)
		if !key.Valid() {
			return buff.Modes{}, fmt.Errorf("unknown buff field %q", k)
		}
		mode, ok := buff.ParseMode(v)
		if !ok {
			return buff.Modes{}, fmt.Errorf("buff field %q: invalid mode %q", k, v)
		}
		out = out.With(key, mode)
	}
	return out, nil
}
