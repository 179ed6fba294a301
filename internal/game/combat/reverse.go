package combat

import (
	"errors"
	"fmt"
	"math"

	"github.com/udisondev/madocalc/internal/buff"
	"github.com/udisondev/madocalc/internal/constants"
	"github.com/udisondev/madocalc/internal/num"
	"github.com/udisondev/madocalc/internal/solver"
)

// DamageField names an input the damage calculator can solve for.
type DamageField uint8

const (
	FieldSkillMultiplier DamageField = iota + 1
	FieldBaseAttack
	FieldDamageDealtUp
	FieldAbilityDamageUp
	FieldDamageTaken
	FieldCritDamage
	FieldBreakBonus
	FieldOtherMultiplier
	FieldCustomBaseDefense
	FieldAttackBuffs
	FieldAttackDebuffs
	FieldDefenseBuffs
	FieldDefenseDebuffs
	FieldCustomBattleModeMultiplier
)

var damageFieldNames = map[DamageField]string{
	FieldSkillMultiplier:            "skillMultiplier",
	FieldBaseAttack:                 "baseAttack",
	FieldDamageDealtUp:              "damageDealtUp",
	FieldAbilityDamageUp:            "abilityDamageUp",
	FieldDamageTaken:                "damageTaken",
	FieldCritDamage:                 "critDamage",
	FieldBreakBonus:                 "breakBonus",
	FieldOtherMultiplier:            "otherMultiplier",
	FieldCustomBaseDefense:          "customBaseDefense",
	FieldAttackBuffs:                "attackBuffs",
	FieldAttackDebuffs:              "attackDebuffs",
	FieldDefenseBuffs:               "defenseBuffs",
	FieldDefenseDebuffs:             "defenseDebuffs",
	FieldCustomBattleModeMultiplier: "customBattleModeMultiplier",
}

func (f DamageField) String() string {
	if s, ok := damageFieldNames[f]; ok {
		return s
	}
	return fmt.Sprintf("DamageField(%d)", uint8(f))
}

// ParseDamageField resolves a field by its input name.
func ParseDamageField(s string) (DamageField, error) {
	for f, name := range damageFieldNames {
		if name == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// DamageFields lists every solvable field in declaration order.
func DamageFields() []DamageField {
	out := make([]DamageField, 0, len(damageFieldNames))
	for f := FieldSkillMultiplier; f <= FieldCustomBattleModeMultiplier; f++ {
		out = append(out, f)
	}
	return out
}

var (
	ErrUnknownField       = errors.New("unknown field")
	ErrInvalidTarget      = errors.New("target damage must be a positive number")
	ErrInvalidInput       = errors.New("inputs do not allow this calculation")
	ErrZeroDenominator    = errors.New("other factors multiply to zero or an invalid value")
	ErrOutOfRange         = errors.New("target is outside the reachable range")
	ErrDefenseCapExceeded = errors.New("target needs a defense coefficient above 2.0")
	ErrNonPhysical        = errors.New("solved value is negative or unrealistic")
	ErrNoSolution         = errors.New("could not find a solution")
)

// Solution is the text to write back into the solved field. Warning is set
// when the value was written but is unlikely to have the intended effect.
type Solution struct {
	Field   DamageField
	Value   string
	Warning string
}

// Solve finds the value of field that makes the crit-variant final damage
// equal target, holding every other input fixed. in is never modified.
func (c Calculator) Solve(field DamageField, target float64, in DamageInputs) (Solution, error) {
	if _, ok := damageFieldNames[field]; !ok {
		return Solution{}, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if math.IsNaN(target) || target <= 0 {
		return Solution{}, ErrInvalidTarget
	}

	f := c.parse(in)
	s := reverseState{c: c, f: f, in: in, target: target, elem: f.combinedElemental()}
	if math.IsNaN(s.elem) {
		return Solution{}, fmt.Errorf("solving %s: elemental factor: %w", field, ErrInvalidInput)
	}

	sol, err := s.solve(field)
	if err != nil {
		return Solution{}, fmt.Errorf("solving %s: %w", field, err)
	}
	sol.Field = field
	return sol, nil
}

type reverseState struct {
	c      Calculator
	f      factors
	in     DamageInputs
	target float64
	elem   float64 // effective F8 (+F9)
}

func (s reverseState) solve(field DamageField) (Solution, error) {
	f := s.f
	switch field {
	case FieldSkillMultiplier:
		return s.skillMultiplier()
	case FieldBaseAttack:
		return s.baseAttack()
	case FieldDamageDealtUp:
		return s.additive(buff.DamageDealtUp, s.in.DamageDealtUp,
			f.basic*f.defCoef*f.taken*f.crit*f.brk*f.other*s.elem)
	case FieldDamageTaken:
		return s.additive(buff.DamageTaken, s.in.DamageTaken,
			f.basic*f.defCoef*f.dealt*f.crit*f.brk*f.other*s.elem)
	case FieldCritDamage:
		return s.additive(buff.CritDamage, s.in.CritDamage,
			f.basic*f.defCoef*f.dealt*f.taken*f.brk*f.other*s.elem)
	case FieldAbilityDamageUp:
		return s.abilityDamageUp()
	case FieldBreakBonus:
		return s.breakBonus()
	case FieldOtherMultiplier:
		return s.otherMultiplier()
	case FieldCustomBaseDefense:
		return s.customBaseDefense()
	case FieldAttackBuffs, FieldAttackDebuffs, FieldDefenseBuffs, FieldDefenseDebuffs:
		return s.defenseSide(field)
	case FieldCustomBattleModeMultiplier:
		return s.customBattleMode()
	}
	return Solution{}, ErrUnknownField
}

func invalid(v float64) bool {
	return v == 0 || math.IsNaN(v)
}

func (s reverseState) skillMultiplier() (Solution, error) {
	f := s.f
	if math.IsNaN(f.baseAttack) || f.baseAttack <= 0 {
		return Solution{}, fmt.Errorf("base attack must be positive: %w", ErrInvalidInput)
	}
	perSkill := f.baseAttack * attackScale(f.baseAttack) / constants.BasicDamageDivisor
	if invalid(perSkill) {
		return Solution{}, fmt.Errorf("base attack term: %w", ErrInvalidInput)
	}
	others := f.defCoef * f.dealt * f.taken * f.crit * f.brk * f.other * s.elem
	if invalid(others) {
		return Solution{}, ErrZeroDenominator
	}
	skill := s.target / (perSkill * others)
	if math.IsNaN(skill) || skill < 0 {
		return Solution{}, ErrNonPhysical
	}
	return Solution{Value: num.FormatFixed(skill*100, 2)}, nil
}

func (s reverseState) baseAttack() (Solution, error) {
	f := s.f
	if math.IsNaN(f.skill) || f.skill <= 0 {
		return Solution{}, fmt.Errorf("skill multiplier must be positive: %w", ErrInvalidInput)
	}
	if math.IsNaN(f.baseDefense) || f.baseDefense < 0 {
		return Solution{}, fmt.Errorf("base defense must not be negative: %w", ErrInvalidInput)
	}
	fixed := f.dealt * f.taken * f.crit * f.brk * f.other * s.elem
	if invalid(fixed) {
		return Solution{}, ErrZeroDenominator
	}

	objective := func(x float64) float64 {
		if x <= 0 {
			return math.MaxFloat64
		}
		basic := x * f.skill * attackScale(x) / constants.BasicDamageDivisor
		if math.IsNaN(basic) {
			return math.MaxFloat64
		}
		atk := x * f.attackMult
		def := f.baseDefense * f.defenseMult
		if math.IsNaN(atk) || math.IsNaN(def) {
			return math.MaxFloat64
		}
		if def+constants.DefenseRatioOffset == 0 {
			if atk+constants.DefenseRatioOffset == 0 {
				return -s.target
			}
			return math.MaxFloat64
		}
		coef := math.Min((atk+constants.DefenseRatioOffset)/(def+constants.DefenseRatioOffset)*constants.DefenseRatioScale,
			constants.DefenseCoefficientCap)
		dmg := basic * coef * fixed
		if math.IsNaN(coef) || math.IsNaN(dmg) {
			return math.MaxFloat64
		}
		return dmg - s.target
	}

	lo, hi, tol := constants.BaseAttackMin, constants.BaseAttackMax, constants.BaseAttackTolerance
	fLo, fHi := objective(lo), objective(hi)
	if fLo*fHi > 0 && math.Abs(fLo) > tol && math.Abs(fHi) > tol {
		if fLo == math.MaxFloat64 && fHi == math.MaxFloat64 {
			return Solution{}, fmt.Errorf("objective is invalid over [%g, %g]: %w", lo, hi, ErrInvalidInput)
		}
		return Solution{}, fmt.Errorf("[%g, %g] gives f(min)=%s f(max)=%s: %w",
			lo, hi, objectiveText(fLo), objectiveText(fHi), ErrOutOfRange)
	}

	x, err := solver.Bisection(objective, lo, hi, solver.WithTolerance(tol))
	if err != nil || x <= 0 {
		return Solution{}, fmt.Errorf("base attack search: %w", ErrNoSolution)
	}
	return Solution{Value: num.FormatFixed(x, 2)}, nil
}

func objectiveText(v float64) string {
	if v == math.MaxFloat64 {
		return "INF"
	}
	return num.FormatFixed(v, 0)
}

// additive solves a (1 + S/100) factor. denom is the product of every
// other factor.
func (s reverseState) additive(key buff.FieldKey, prev string, denom float64) (Solution, error) {
	if invalid(denom) {
		return Solution{}, ErrZeroDenominator
	}
	pct := (s.target/denom - 1) * 100
	if math.IsNaN(pct) {
		return Solution{}, ErrNoSolution
	}
	mode := s.c.Modes.Of(key)
	if mode == buff.ModeSplit {
		pct -= buff.Sum(mode, prev)
	}
	return Solution{Value: buff.WriteSolved(mode, prev, pct, 2)}, nil
}

func (s reverseState) abilityDamageUp() (Solution, error) {
	f := s.f
	common := f.basic * f.defCoef * f.dealt * f.taken * f.crit * f.brk
	if math.IsNaN(common) || invalid(f.other) {
		return Solution{}, fmt.Errorf("base factors: %w", ErrInvalidInput)
	}
	denom := common * f.other
	if denom == 0 {
		return Solution{}, ErrZeroDenominator
	}
	combined := s.target / denom
	if math.IsNaN(combined) {
		return Solution{}, ErrNoSolution
	}

	var sol Solution
	direct := combined - f.elemental
	if !f.weak && direct > constants.AbilityWarningThreshold {
		sol.Warning = "ability damage up only applies against a weak element"
	}
	pct := direct * 100
	if math.IsNaN(pct) {
		return Solution{}, ErrNoSolution
	}
	mode := s.c.Modes.Of(buff.AbilityDamageUp)
	if mode == buff.ModeSplit {
		pct -= buff.Sum(mode, s.in.AbilityDamageUp)
	}
	sol.Value = buff.WriteSolved(mode, s.in.AbilityDamageUp, pct, 1)
	return sol, nil
}

func (s reverseState) breakBonus() (Solution, error) {
	f := s.f
	denom := f.basic * f.defCoef * f.dealt * f.taken * f.crit * f.other * s.elem
	if invalid(denom) {
		return Solution{}, ErrZeroDenominator
	}
	pct := s.target / denom * 100
	if math.IsNaN(pct) || pct < 0 {
		return Solution{}, ErrNonPhysical
	}
	return Solution{Value: num.FormatFixed(pct, 2)}, nil
}

func (s reverseState) otherMultiplier() (Solution, error) {
	f := s.f
	denom := f.basic * f.defCoef * f.dealt * f.taken * f.crit * f.brk * s.elem
	if invalid(denom) {
		return Solution{}, ErrZeroDenominator
	}
	v := s.target / denom
	if math.IsNaN(v) || v < 0 {
		return Solution{}, ErrNonPhysical
	}
	return Solution{Value: num.FormatFixed(v, 4)}, nil
}

// requiredRatio returns the attack/defense ratio, before the 0.12 scale,
// that the target needs. It fails at the coefficient cap.
func (s reverseState) requiredRatio() (float64, error) {
	f := s.f
	withoutDef := f.basic * f.dealt * f.taken * f.crit * f.brk * f.other * s.elem
	if invalid(withoutDef) {
		return 0, ErrZeroDenominator
	}
	coef := s.target / withoutDef
	if coef > constants.DefenseCoefficientCap+constants.DefenseCapSlack {
		return 0, fmt.Errorf("%w (needs %s)", ErrDefenseCapExceeded, num.FormatFixed(coef, 4))
	}
	if coef <= 0 || math.IsNaN(coef) {
		return 0, fmt.Errorf("required defense coefficient: %w", ErrNonPhysical)
	}
	coef = math.Min(coef, constants.DefenseCoefficientCap)
	return coef / constants.DefenseRatioScale, nil
}

func (s reverseState) customBaseDefense() (Solution, error) {
	f := s.f
	if !s.in.isCustomDefense() {
		return Solution{}, fmt.Errorf("custom base defense needs the custom preset: %w", ErrInvalidInput)
	}
	if math.IsNaN(f.baseAttack) || f.baseAttack <= 0 {
		return Solution{}, fmt.Errorf("base attack must be positive: %w", ErrInvalidInput)
	}
	ratio, err := s.requiredRatio()
	if err != nil {
		return Solution{}, err
	}
	if invalid(f.defenseMult) {
		return Solution{}, fmt.Errorf("defense multiplier: %w", ErrZeroDenominator)
	}
	atk := f.baseAttack * f.attackMult
	def := ((atk+constants.DefenseRatioOffset)/ratio - constants.DefenseRatioOffset) / f.defenseMult
	if math.IsNaN(def) || def <= 0 {
		return Solution{}, fmt.Errorf("base defense %s: %w", num.FormatFixed(def, 2), ErrNonPhysical)
	}
	return Solution{Value: num.FormatFixed(def, 2)}, nil
}

// defenseSide solves one of the four attack/defense buff fields from the
// capped ratio (atk + 10) / (def + 10).
func (s reverseState) defenseSide(field DamageField) (Solution, error) {
	f := s.f
	ratio, err := s.requiredRatio()
	if err != nil {
		return Solution{}, err
	}

	var (
		key   buff.FieldKey
		prev  string
		value float64
	)
	switch field {
	case FieldAttackBuffs, FieldAttackDebuffs:
		defSide := f.baseDefense*(1+f.defBuffSum)*f.defDebuffProd + constants.DefenseRatioOffset
		needAtk := ratio*defSide - constants.DefenseRatioOffset
		if field == FieldAttackBuffs {
			key, prev = buff.AttackBuffs, s.in.AttackBuffs
			base := f.baseAttack * f.atkDebuffProd
			if base == 0 {
				return Solution{}, fmt.Errorf("attack after debuffs: %w", ErrZeroDenominator)
			}
			value = s.buffPercent(key, needAtk/base, f.atkBuffSum)
		} else {
			key, prev = buff.AttackDebuffs, s.in.AttackDebuffs
			base := f.baseAttack * (1 + f.atkBuffSum)
			if base == 0 {
				return Solution{}, fmt.Errorf("attack after buffs: %w", ErrZeroDenominator)
			}
			value, err = s.debuffPercent(key, needAtk/base, f.atkDebuffProd)
		}
	case FieldDefenseBuffs, FieldDefenseDebuffs:
		atkSide := f.baseAttack*(1+f.atkBuffSum)*f.atkDebuffProd + constants.DefenseRatioOffset
		needDef := atkSide/ratio - constants.DefenseRatioOffset
		if field == FieldDefenseBuffs {
			key, prev = buff.DefenseBuffs, s.in.DefenseBuffs
			base := f.baseDefense * f.defDebuffProd
			if base == 0 {
				return Solution{}, fmt.Errorf("defense after debuffs: %w", ErrZeroDenominator)
			}
			value = s.buffPercent(key, needDef/base, f.defBuffSum)
		} else {
			key, prev = buff.DefenseDebuffs, s.in.DefenseDebuffs
			base := f.baseDefense * (1 + f.defBuffSum)
			if base == 0 {
				return Solution{}, fmt.Errorf("defense after buffs: %w", ErrZeroDenominator)
			}
			value, err = s.debuffPercent(key, needDef/base, f.defDebuffProd)
		}
	}
	if err != nil {
		return Solution{}, err
	}
	if math.IsNaN(value) {
		return Solution{}, ErrNoSolution
	}
	return Solution{Value: buff.WriteSolved(s.c.Modes.Of(key), prev, value, 2)}, nil
}

// buffPercent turns a required total buff factor into the percentage to
// write. Split mode only writes the part missing from existingSum.
func (s reverseState) buffPercent(key buff.FieldKey, factor, existingSum float64) float64 {
	if s.c.Modes.Of(key) == buff.ModeSplit {
		return (factor - (1 + existingSum)) * 100
	}
	return (factor - 1) * 100
}

// debuffPercent turns a required debuff product into the percentage to
// write. Split mode divides out the existing product first.
func (s reverseState) debuffPercent(key buff.FieldKey, product, existing float64) (float64, error) {
	base := 1.0
	if s.c.Modes.Of(key) == buff.ModeSplit {
		base = existing
	}
	var factor float64
	switch {
	case base != 0:
		factor = product / base
	case product == 0:
		factor = 1
	default:
		return 0, fmt.Errorf("existing debuffs multiply to zero: %w", ErrZeroDenominator)
	}
	pct := (1 - factor) * 100
	if pct >= constants.DebuffSolvedMax || pct < constants.DebuffSolvedMin {
		return 0, fmt.Errorf("debuff %s%%: %w", num.FormatFixed(pct, 2), ErrNonPhysical)
	}
	return pct, nil
}

func (s reverseState) customBattleMode() (Solution, error) {
	f := s.f
	if f.weak || s.in.BattleMode != BattleCustom {
		return Solution{}, fmt.Errorf("custom multiplier needs a non-weak target in custom mode: %w", ErrInvalidInput)
	}
	common := f.basic * f.defCoef * f.dealt * f.taken * f.crit * f.brk * f.other
	if invalid(common) {
		return Solution{}, ErrZeroDenominator
	}
	v := s.target / common
	if math.IsNaN(v) || v < 0 {
		return Solution{}, ErrNonPhysical
	}
	return Solution{Value: num.FormatFixed(v, 4)}, nil
}
