// Package combat implements the damage calculator: the forward damage
// formula and its per-field reverse solvers.
package combat

import (
	"math"

	"github.com/udisondev/madocalc/internal/buff"
	"github.com/udisondev/madocalc/internal/constants"
	"github.com/udisondev/madocalc/internal/num"
)

// Calculator evaluates damage for a fixed mode map and preset source.
// A nil Presets falls back to the built-in presets.
type Calculator struct {
	Modes   buff.Modes
	Presets PresetSource
}

// DamageResult holds every intermediate factor of one evaluation.
// Invalid inputs surface as NaN fields, never as errors.
type DamageResult struct {
	BaseAttack  float64
	BaseDefense float64

	BasicDamage        float64
	AttackMultiplier   float64
	DefenseMultiplier  float64
	EffectiveAttack    float64
	EffectiveDefense   float64
	DefenseCoefficient float64

	DamageDealtCoef float64
	AbilityUpCoef   float64
	DamageTakenCoef float64
	CritCoef        float64

	ElementalFactor   float64
	CombinedElemental float64
	BreakCoef         float64
	OtherMultiplier   float64

	// FinalDamage applies CritCoef; FinalDamageNonCrit uses 1.0 instead.
	FinalDamage        float64
	FinalDamageNonCrit float64
	// HasCrit reports a non-zero crit damage input.
	HasCrit bool
}

// Display renders a damage value rounded up, or the placeholder for NaN.
func Display(v float64) string {
	if math.IsNaN(v) {
		return constants.Placeholder
	}
	return num.FormatNumber(math.Ceil(v))
}

// factors is the parsed form of DamageInputs shared by Compute and Solve.
type factors struct {
	baseAttack  float64
	skill       float64
	baseDefense float64
	weak        bool

	atkBuffSum    float64 // decimal, 0.1 = +10%
	atkDebuffProd float64
	defBuffSum    float64
	defDebuffProd float64
	attackMult    float64
	defenseMult   float64

	basic     float64 // F1
	defCoef   float64 // F2
	dealt     float64 // F3
	taken     float64 // F4
	crit      float64 // F5
	brk       float64 // F6
	other     float64 // F7
	elemental float64 // F8
	ability   float64 // F9

	critSum float64
}

func (c Calculator) presets() PresetSource {
	if c.Presets == nil {
		return PresetCatalog{}
	}
	return c.Presets
}

func (c Calculator) baseDefense(in DamageInputs) float64 {
	if in.isCustomDefense() {
		return num.Or(num.ParseFloat(in.CustomBaseDefense), 0)
	}
	raw, ok := c.presets().DefenseFor(in.DefensePreset)
	if !ok {
		return 0
	}
	return num.Or(num.ParseFloat(raw), 0)
}

func (c Calculator) sum(k buff.FieldKey, raw string) float64 {
	return buff.Sum(c.Modes.Of(k), raw)
}

func (c Calculator) product(k buff.FieldKey, raw string) float64 {
	return buff.Product(c.Modes.Of(k), raw)
}

func (c Calculator) parse(in DamageInputs) factors {
	f := factors{
		baseAttack:  num.Or(num.ParseFloat(in.BaseAttack), 0),
		skill:       num.Or(num.ParseFloat(in.SkillMultiplier), 0) / 100,
		baseDefense: c.baseDefense(in),
		weak:        in.Weakness == WeaknessWeak,
	}

	f.basic = BasicDamage(f.baseAttack, f.skill)

	f.atkBuffSum = c.sum(buff.AttackBuffs, in.AttackBuffs) / 100
	f.atkDebuffProd = c.product(buff.AttackDebuffs, in.AttackDebuffs)
	f.defBuffSum = c.sum(buff.DefenseBuffs, in.DefenseBuffs) / 100
	f.defDebuffProd = c.product(buff.DefenseDebuffs, in.DefenseDebuffs)
	f.attackMult = (1 + f.atkBuffSum) * f.atkDebuffProd
	f.defenseMult = (1 + f.defBuffSum) * f.defDebuffProd

	f.defCoef = DefenseCoefficient(f.baseAttack*f.attackMult, f.baseDefense, f.baseDefense*f.defenseMult)

	f.dealt = 1 + c.sum(buff.DamageDealtUp, in.DamageDealtUp)/100
	f.ability = c.sum(buff.AbilityDamageUp, in.AbilityDamageUp) / 100
	f.taken = 1 + c.sum(buff.DamageTaken, in.DamageTaken)/100
	f.critSum = c.sum(buff.CritDamage, in.CritDamage)
	f.crit = 1 + f.critSum/100

	f.elemental = ElementalFactor(f.weak, in.BattleMode, in.CustomBattleModeMultiplier)
	f.brk = BreakCoefficient(in.BreakBonus)
	f.other = num.Or(num.ParseFloat(in.OtherMultiplier), 1)
	return f
}

// abilityActive reports whether the ability bonus joins the elemental term.
func (f factors) abilityActive() bool {
	return f.ability != 0 && !math.IsNaN(f.ability) && f.weak
}

// combinedElemental is F8, or F8 + F9 when the ability bonus applies.
func (f factors) combinedElemental() float64 {
	if f.abilityActive() {
		return f.elemental + f.ability
	}
	return f.elemental
}

func (f factors) final(crit float64) float64 {
	common := f.basic * f.defCoef * f.dealt * f.taken * crit * f.brk
	if math.IsNaN(common) || math.IsNaN(f.other) || math.IsNaN(f.elemental) || math.IsNaN(f.ability) {
		return math.NaN()
	}
	return common * f.other * f.combinedElemental()
}

// BasicDamage returns attack * skill * (pow(attack/124, 1.2) + 12) / 20.
// skill is a fraction (1.0 = 100%). NaN when attack <= 0 or skill < 0.
func BasicDamage(attack, skill float64) float64 {
	if math.IsNaN(attack) || math.IsNaN(skill) || attack <= 0 || skill < 0 {
		return math.NaN()
	}
	return attack * skill * attackScale(attack) / constants.BasicDamageDivisor
}

func attackScale(attack float64) float64 {
	return math.Pow(attack/constants.AttackScaleDivisor, constants.AttackScaleExponent) + constants.AttackScaleOffset
}

// DefenseCoefficient returns min(((atk + 10) / (def + 10)) * 0.12, 2).
//
// baseDefense is the defense before buffs; a negative base defense or
// attack, or an effective defense of exactly -10, yields NaN.
func DefenseCoefficient(effectiveAttack, baseDefense, effectiveDefense float64) float64 {
	if math.IsNaN(effectiveAttack) || math.IsNaN(baseDefense) || effectiveAttack < 0 || baseDefense < 0 {
		return math.NaN()
	}
	if math.IsNaN(effectiveDefense) || effectiveDefense+constants.DefenseRatioOffset == 0 {
		return math.NaN()
	}
	ratio := (effectiveAttack + constants.DefenseRatioOffset) / (effectiveDefense + constants.DefenseRatioOffset)
	return math.Min(ratio*constants.DefenseRatioScale, constants.DefenseCoefficientCap)
}

// ElementalFactor returns the resistance multiplier: 1.2 when weak,
// otherwise the battle mode's factor. An invalid or negative custom
// value falls back to 1.0.
func ElementalFactor(weak bool, mode BattleMode, custom string) float64 {
	if weak {
		return constants.ElementalWeak
	}
	switch mode {
	case BattleBattle:
		return constants.ElementalBattle
	case BattleNightmare:
		return constants.ElementalNightmare
	case BattleChaos:
		return constants.ElementalChaos
	case BattleCustom:
		v := num.ParseFloat(custom)
		if math.IsNaN(v) || v < 0 {
			return constants.ElementalNormal
		}
		return v
	}
	return constants.ElementalNormal
}

// BreakCoefficient converts a break bonus percentage to its raw fraction
// (150 → 1.5). Zero or unparsable input means no break: 1.
func BreakCoefficient(raw string) float64 {
	v := num.ParseFloat(raw)
	if math.IsNaN(v) || v == 0 {
		return 1
	}
	return v / 100
}

// Compute evaluates the damage formula for in.
func (c Calculator) Compute(in DamageInputs) DamageResult {
	f := c.parse(in)
	return DamageResult{
		BaseAttack:         f.baseAttack,
		BaseDefense:        f.baseDefense,
		BasicDamage:        f.basic,
		AttackMultiplier:   f.attackMult,
		DefenseMultiplier:  f.defenseMult,
		EffectiveAttack:    f.baseAttack * f.attackMult,
		EffectiveDefense:   f.baseDefense * f.defenseMult,
		DefenseCoefficient: f.defCoef,
		DamageDealtCoef:    f.dealt,
		AbilityUpCoef:      f.ability,
		DamageTakenCoef:    f.taken,
		CritCoef:           f.crit,
		ElementalFactor:    f.elemental,
		CombinedElemental:  f.combinedElemental(),
		BreakCoef:          f.brk,
		OtherMultiplier:    f.other,
		FinalDamage:        f.final(f.crit),
		FinalDamageNonCrit: f.final(1),
		HasCrit:            !math.IsNaN(f.critSum) && f.critSum != 0,
	}
}
