// Package recovery implements the HP and MP recovery calculators.
package recovery

import (
	"math"

	"github.com/udisondev/madocalc/internal/buff"
	"github.com/udisondev/madocalc/internal/num"
)

// HPInputs is the raw input set of the HP recovery calculator.
type HPInputs struct {
	HealerHP          string `yaml:"healer_hp"`
	MaxHPBuffs        string `yaml:"max_hp_buffs"`
	MaxHPDebuffs      string `yaml:"max_hp_debuffs"`
	SkillMultiplier   string `yaml:"skill_multiplier"`
	FixedValue        string `yaml:"fixed_value"`
	HPRecoveryBuffs   string `yaml:"hp_recovery_buffs"`
	HPRecoveryDebuffs string `yaml:"hp_recovery_debuffs"`
}

// DefaultHPInputs returns the starting values of the HP calculator.
func DefaultHPInputs(modes buff.Modes) HPInputs {
	return HPInputs{
		HealerHP:          "3000",
		MaxHPBuffs:        buff.DefaultRaw(modes.Of(buff.MaxHPBuffs)),
		MaxHPDebuffs:      buff.DefaultRaw(modes.Of(buff.MaxHPDebuffs)),
		SkillMultiplier:   "10",
		FixedValue:        "100",
		HPRecoveryBuffs:   buff.DefaultRaw(modes.Of(buff.HPRecoveryBuffs)),
		HPRecoveryDebuffs: buff.DefaultRaw(modes.Of(buff.HPRecoveryDebuffs)),
	}
}

// HPResult holds the intermediate and final values of an HP evaluation.
type HPResult struct {
	FinalHP      float64
	RecoveryBase float64
	// Recovery is rounded up; NaN when the inputs cannot produce a value.
	Recovery float64
}

// HPCalculator evaluates HP recovery under a fixed mode map.
type HPCalculator struct {
	Modes buff.Modes
}

func (c HPCalculator) coef(k buff.FieldKey, raw string) float64 {
	return buff.Coefficient(c.Modes.Of(k), k.Semantics(), raw)
}

// Compute evaluates:
//
//	finalHp  = hp * (1 + maxHpBuffs%) * maxHpDebuffProduct
//	recovery = ceil((finalHp * skill% + fixed) * (1 + hpRecBuffs%) * hpRecDebuffProduct)
func (c HPCalculator) Compute(in HPInputs) HPResult {
	hp := num.Or(num.ParseFloat(in.HealerHP), 0)

	finalHP := hp * c.coef(buff.MaxHPBuffs, in.MaxHPBuffs) * c.coef(buff.MaxHPDebuffs, in.MaxHPDebuffs)
	if math.IsNaN(finalHP) {
		finalHP = 0
	}

	skill := num.Or(num.ParseFloat(in.SkillMultiplier), 0) / 100
	fixed := num.Or(num.ParseFloat(in.FixedValue), 0)
	base := finalHP*skill + fixed

	recovery := base * c.coef(buff.HPRecoveryBuffs, in.HPRecoveryBuffs) * c.coef(buff.HPRecoveryDebuffs, in.HPRecoveryDebuffs)
	if !math.IsNaN(recovery) {
		recovery = math.Ceil(recovery)
	}

	return HPResult{
		FinalHP:      finalHP,
		RecoveryBase: base,
		Recovery:     recovery,
	}
}
