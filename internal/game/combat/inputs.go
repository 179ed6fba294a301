package combat

import (
	"strings"

	"github.com/udisondev/madocalc/internal/buff"
	"github.com/udisondev/madocalc/internal/constants"
	"github.com/udisondev/madocalc/internal/data"
)

// Weakness is the elemental relation between attacker and target.
type Weakness string

const (
	WeaknessWeak    Weakness = "Weak"
	WeaknessNonWeak Weakness = "NonWeak"
)

// BattleMode selects the elemental resistance applied to non-weak hits.
type BattleMode string

const (
	BattleNormal    BattleMode = "Normal"
	BattleBattle    BattleMode = "Battle"
	BattleNightmare BattleMode = "Nightmare"
	BattleChaos     BattleMode = "Chaos"
	BattleCustom    BattleMode = "Custom"
)

// ParseWeakness matches s case-insensitively.
func ParseWeakness(s string) (Weakness, bool) {
	for _, w := range []Weakness{WeaknessWeak, WeaknessNonWeak} {
		if strings.EqualFold(string(w), strings.TrimSpace(s)) {
			return w, true
		}
	}
	return "", false
}

// ParseBattleMode matches s case-insensitively.
func ParseBattleMode(s string) (BattleMode, bool) {
	for _, m := range []BattleMode{BattleNormal, BattleBattle, BattleNightmare, BattleChaos, BattleCustom} {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, true
		}
	}
	return "", false
}

// DamageInputs is the raw text of every damage calculator input.
type DamageInputs struct {
	BaseAttack      string `yaml:"base_attack"`
	SkillMultiplier string `yaml:"skill_multiplier"`
	AttackBuffs     string `yaml:"attack_buffs"`
	AttackDebuffs   string `yaml:"attack_debuffs"`
	DamageDealtUp   string `yaml:"damage_dealt_up"`
	AbilityDamageUp string `yaml:"ability_damage_up"`
	CritDamage      string `yaml:"crit_damage"`

	// DefensePreset is a preset ID or constants.CustomPresetID.
	DefensePreset     string `yaml:"defense_preset"`
	CustomBaseDefense string `yaml:"custom_base_defense"`
	DefenseBuffs      string `yaml:"defense_buffs"`
	DefenseDebuffs    string `yaml:"defense_debuffs"`
	DamageTaken       string `yaml:"damage_taken"`

	Weakness                   Weakness   `yaml:"weakness"`
	BattleMode                 BattleMode `yaml:"battle_mode"`
	CustomBattleModeMultiplier string     `yaml:"custom_battle_mode_multiplier"`
	BreakBonus                 string     `yaml:"break_bonus"`
	OtherMultiplier            string     `yaml:"other_multiplier"`
}

// DefaultDamageInputs returns the calculator's initial state for modes.
func DefaultDamageInputs(modes buff.Modes) DamageInputs {
	raw := func(k buff.FieldKey) string { return buff.DefaultRaw(modes.Of(k)) }
	return DamageInputs{
		BaseAttack:                 "1000",
		SkillMultiplier:            "100",
		AttackBuffs:                raw(buff.AttackBuffs),
		AttackDebuffs:              raw(buff.AttackDebuffs),
		DamageDealtUp:              raw(buff.DamageDealtUp),
		AbilityDamageUp:            raw(buff.AbilityDamageUp),
		CritDamage:                 raw(buff.CritDamage),
		DefensePreset:              data.DefaultDefensePresetID(),
		DefenseBuffs:               raw(buff.DefenseBuffs),
		DefenseDebuffs:             raw(buff.DefenseDebuffs),
		DamageTaken:                raw(buff.DamageTaken),
		Weakness:                   WeaknessNonWeak,
		BattleMode:                 BattleNightmare,
		CustomBattleModeMultiplier: "1.0",
		BreakBonus:                 "0",
		OtherMultiplier:            "1",
	}
}

// BuffValues extracts the mode-configurable fields.
func (in DamageInputs) BuffValues() map[buff.FieldKey]string {
	return map[buff.FieldKey]string{
		buff.AttackBuffs:     in.AttackBuffs,
		buff.AttackDebuffs:   in.AttackDebuffs,
		buff.DamageDealtUp:   in.DamageDealtUp,
		buff.AbilityDamageUp: in.AbilityDamageUp,
		buff.CritDamage:      in.CritDamage,
		buff.DefenseBuffs:    in.DefenseBuffs,
		buff.DefenseDebuffs:  in.DefenseDebuffs,
		buff.DamageTaken:     in.DamageTaken,
	}
}

// WithModes rewrites every buff field that changes mode from old to next.
func (in DamageInputs) WithModes(old, next buff.Modes) DamageInputs {
	v := old.Migrate(next, in.BuffValues())
	in.AttackBuffs = v[buff.AttackBuffs]
	in.AttackDebuffs = v[buff.AttackDebuffs]
	in.DamageDealtUp = v[buff.DamageDealtUp]
	in.AbilityDamageUp = v[buff.AbilityDamageUp]
	in.CritDamage = v[buff.CritDamage]
	in.DefenseBuffs = v[buff.DefenseBuffs]
	in.DefenseDebuffs = v[buff.DefenseDebuffs]
	in.DamageTaken = v[buff.DamageTaken]
	return in
}

// With returns a copy of in with field set to value.
func (in DamageInputs) With(field DamageField, value string) DamageInputs {
	switch field {
	case FieldSkillMultiplier:
		in.SkillMultiplier = value
	case FieldBaseAttack:
		in.BaseAttack = value
	case FieldDamageDealtUp:
		in.DamageDealtUp = value
	case FieldAbilityDamageUp:
		in.AbilityDamageUp = value
	case FieldDamageTaken:
		in.DamageTaken = value
	case FieldCritDamage:
		in.CritDamage = value
	case FieldBreakBonus:
		in.BreakBonus = value
	case FieldOtherMultiplier:
		in.OtherMultiplier = value
	case FieldCustomBaseDefense:
		in.CustomBaseDefense = value
	case FieldAttackBuffs:
		in.AttackBuffs = value
	case FieldAttackDebuffs:
		in.AttackDebuffs = value
	case FieldDefenseBuffs:
		in.DefenseBuffs = value
	case FieldDefenseDebuffs:
		in.DefenseDebuffs = value
	case FieldCustomBattleModeMultiplier:
		in.CustomBattleModeMultiplier = value
	}
	return in
}

// Apply writes a solution back into in.
func (in DamageInputs) Apply(s Solution) DamageInputs {
	return in.With(s.Field, s.Value)
}

func (in DamageInputs) isCustomDefense() bool {
	return in.DefensePreset == constants.CustomPresetID
}
