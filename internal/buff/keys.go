package buff

import (
	"fmt"
	"maps"
	"slices"
)

// FieldKey names a buff field whose mode is user configurable.
type FieldKey string

const (
	AttackBuffs     FieldKey = "attackBuffs"
	AttackDebuffs   FieldKey = "attackDebuffs"
	DamageDealtUp   FieldKey = "damageDealtUp"
	AbilityDamageUp FieldKey = "abilityDamageUp"
	CritDamage      FieldKey = "critDamage"
	DefenseBuffs    FieldKey = "defenseBuffs"
	DefenseDebuffs  FieldKey = "defenseDebuffs"
	DamageTaken     FieldKey = "damageTaken"

	ActionMPRecoveryBonus      FieldKey = "actionMpRecoveryBonus"
	SkillEffectMPRecoveryBonus FieldKey = "skillEffectMpRecoveryBonus"

	MaxHPBuffs        FieldKey = "maxHpBuffs"
	MaxHPDebuffs      FieldKey = "maxHpDebuffs"
	HPRecoveryBuffs   FieldKey = "hpRecoveryBuffs"
	HPRecoveryDebuffs FieldKey = "hpRecoveryDebuffs"

	AbilityHPBuff      FieldKey = "abilityHpBuff_sc"
	AbilityAttackBuff  FieldKey = "abilityAttackBuff_sc"
	AbilityDefenseBuff FieldKey = "abilityDefenseBuff_sc"
	AbilitySpeedBuff   FieldKey = "abilitySpeedBuff_sc"
)

var allKeys = []FieldKey{
	AttackBuffs, AttackDebuffs, DamageDealtUp, AbilityDamageUp, CritDamage,
	DefenseBuffs, DefenseDebuffs, DamageTaken,
	ActionMPRecoveryBonus, SkillEffectMPRecoveryBonus,
	MaxHPBuffs, MaxHPDebuffs, HPRecoveryBuffs, HPRecoveryDebuffs,
	AbilityHPBuff, AbilityAttackBuff, AbilityDefenseBuff, AbilitySpeedBuff,
}

// Keys returns every configurable field key in display order.
func Keys() []FieldKey {
	return slices.Clone(allKeys)
}

// Valid reports whether k is a known field key.
func (k FieldKey) Valid() bool {
	return slices.Contains(allKeys, k)
}

// Semantics of the field: the four debuff keys stack multiplicatively.
func (k FieldKey) Semantics() Semantics {
	switch k {
	case AttackDebuffs, DefenseDebuffs, MaxHPDebuffs, HPRecoveryDebuffs:
		return MultiplicativeDebuff
	}
	return Additive
}

// Modes is an immutable field key → mode map. The zero value reports split
// for every key.
type Modes struct {
	m map[FieldKey]Mode
}

// DefaultModes returns every field in split mode except abilityDamageUp and
// critDamage, which default to total.
func DefaultModes() Modes {
	m := make(map[FieldKey]Mode, len(allKeys))
	for _, k := range allKeys {
		m[k] = ModeSplit
	}
	m[AbilityDamageUp] = ModeTotal
	m[CritDamage] = ModeTotal
	return Modes{m: m}
}

// ParseModes builds a mode map from string pairs layered on top of
// DefaultModes.
func ParseModes(raw map[string]string) (Modes, error) {
	modes := DefaultModes()
	for k, v := range raw {
		key := FieldKey(k)
		if !key.Valid() {
			return Modes{}, fmt.Errorf("unknown buff field %q", k)
		}
		mode, ok := ParseMode(v)
		if !ok {
			return Modes{}, fmt.Errorf("buff field %q: invalid mode %q", k, v)
		}
		modes.m[key] = mode
	}
	return modes, nil
}

// Of returns the mode configured for k.
func (ms Modes) Of(k FieldKey) Mode {
	return ms.m[k]
}

// With returns a copy of ms with k set to mode.
func (ms Modes) With(k FieldKey, mode Mode) Modes {
	m := make(map[FieldKey]Mode, len(ms.m)+1)
	maps.Copy(m, ms.m)
	m[k] = mode
	return Modes{m: m}
}

// Field wraps raw as a Field for key k under the configured mode.
func (ms Modes) Field(k FieldKey, raw string) Field {
	return Field{Mode: ms.Of(k), Semantics: k.Semantics(), Raw: raw}
}

// Strings renders the map for serialisation.
func (ms Modes) Strings() map[string]string {
	out := make(map[string]string, len(allKeys))
	for _, k := range allKeys {
		out[string(k)] = ms.Of(k).String()
	}
	return out
}

// Change describes a field whose mode differs between two mode maps.
type Change struct {
	Key     FieldKey
	OldMode Mode
	NewMode Mode
}

// Diff lists the fields whose mode differs from ms to next, in key order.
func (ms Modes) Diff(next Modes) []Change {
	var out []Change
	for _, k := range allKeys {
		if o, n := ms.Of(k), next.Of(k); o != n {
			out = append(out, Change{Key: k, OldMode: o, NewMode: n})
		}
	}
	return out
}

// Migrate rewrites every value in values whose field changed mode between
// ms and next. Keys absent from values are skipped. values is not modified.
func (ms Modes) Migrate(next Modes, values map[FieldKey]string) map[FieldKey]string {
	out := maps.Clone(values)
	if out == nil {
		out = make(map[FieldKey]string)
	}
	for _, c := range ms.Diff(next) {
		raw, ok := values[c.Key]
		if !ok {
			continue
		}
		out[c.Key] = RewriteOnModeChange(c.OldMode, c.NewMode, c.Key.Semantics(), raw)
	}
	return out
}
