package combat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/madocalc/internal/buff"
	"github.com/udisondev/madocalc/internal/constants"
)

// richInputs exercises every factor: buffs in both modes, a custom
// defense, break and crit.
func richInputs() DamageInputs {
	return DamageInputs{
		BaseAttack:                 "2500",
		SkillMultiplier:            "180",
		AttackBuffs:                "20,10",
		AttackDebuffs:              "0,0",
		DamageDealtUp:              "15",
		AbilityDamageUp:            "0",
		CritDamage:                 "50",
		DefensePreset:              constants.CustomPresetID,
		CustomBaseDefense:          "1200",
		DefenseBuffs:               "0,0",
		DefenseDebuffs:             "30",
		DamageTaken:                "10",
		Weakness:                   WeaknessNonWeak,
		BattleMode:                 BattleBattle,
		CustomBattleModeMultiplier: "1.0",
		BreakBonus:                 "150",
		OtherMultiplier:            "1",
	}
}

func TestSolve_RoundTrip(t *testing.T) {
	c := defaultCalc()
	in := richInputs()
	base := c.Compute(in).FinalDamage
	require.InDelta(t, 12935.30681367081, base, 1e-6)
	target := base * 1.2

	tests := []struct {
		field     DamageField
		wantValue string
		delta     float64
	}{
		{FieldSkillMultiplier, "216.00", 1},
		{FieldBaseAttack, "", 1},
		{FieldDamageDealtUp, "15,23", 1},
		{FieldDamageTaken, "10,22", 1},
		{FieldCritDamage, "80", 1},
		{FieldBreakBonus, "180.00", 1},
		{FieldOtherMultiplier, "1.2000", 1},
		{FieldCustomBaseDefense, "997.62", 1},
		{FieldAttackBuffs, "20,10,26.08", 1},
		{FieldAttackDebuffs, "-20.06", 1},
		{FieldDefenseBuffs, "-16.87", 2},
		{FieldDefenseDebuffs, "30,16.87", 2},
	}
	for _, tt := range tests {
		t.Run(tt.field.String(), func(t *testing.T) {
			sol, err := c.Solve(tt.field, target, in)
			require.NoError(t, err)
			assert.Equal(t, tt.field, sol.Field)
			assert.Empty(t, sol.Warning)
			if tt.wantValue != "" {
				assert.Equal(t, tt.wantValue, sol.Value)
			}

			got := c.Compute(in.Apply(sol)).FinalDamage
			assert.InDelta(t, target, got, tt.delta)
		})
	}

	assert.Equal(t, "20,10", in.AttackBuffs, "solving never mutates the inputs")
}

func TestSolve_RoundTripTotalModes(t *testing.T) {
	modes := buff.DefaultModes()
	for _, k := range buff.Keys() {
		modes = modes.With(k, buff.ModeTotal)
	}
	c := Calculator{Modes: modes}
	in := richInputs()
	in.AttackBuffs = "30"
	in.AttackDebuffs = "0"
	in.DefenseBuffs = "0"

	target := c.Compute(in).FinalDamage * 1.1
	for _, field := range []DamageField{FieldDamageDealtUp, FieldDamageTaken, FieldCritDamage, FieldAttackBuffs, FieldDefenseDebuffs} {
		t.Run(field.String(), func(t *testing.T) {
			sol, err := c.Solve(field, target, in)
			require.NoError(t, err)
			assert.NotContains(t, sol.Value, ",")
			assert.InDelta(t, target, c.Compute(in.Apply(sol)).FinalDamage, 2)
		})
	}
}

func TestSolve_AbilityDamageUp(t *testing.T) {
	c := defaultCalc()
	in := richInputs()
	in.Weakness = WeaknessWeak

	base := c.Compute(in).FinalDamage
	target := base * 1.25

	sol, err := c.Solve(FieldAbilityDamageUp, target, in)
	require.NoError(t, err)
	assert.Empty(t, sol.Warning)
	assert.Equal(t, "30", sol.Value, "1.2 * 1.25 = 1.5 → +0.3")
	assert.InDelta(t, target, c.Compute(in.Apply(sol)).FinalDamage, 1)
}

func TestSolve_AbilityDamageUpWarnsWhenNotWeak(t *testing.T) {
	c := defaultCalc()
	in := richInputs()
	target := c.Compute(in).FinalDamage * 1.2

	sol, err := c.Solve(FieldAbilityDamageUp, target, in)
	require.NoError(t, err)
	assert.NotEmpty(t, sol.Warning)
	assert.Equal(t, "18", sol.Value)
}

func TestSolve_CustomBattleModeMultiplier(t *testing.T) {
	c := defaultCalc()
	in := richInputs()
	in.BattleMode = BattleCustom
	in.CustomBattleModeMultiplier = "0.5"

	target := c.Compute(in).FinalDamage * 1.5
	sol, err := c.Solve(FieldCustomBattleModeMultiplier, target, in)
	require.NoError(t, err)
	assert.Equal(t, "0.7500", sol.Value)

	in.BattleMode = BattleNightmare
	_, err = c.Solve(FieldCustomBattleModeMultiplier, target, in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSolve_InvalidTarget(t *testing.T) {
	c := defaultCalc()
	for _, target := range []float64{0, -1, math.NaN()} {
		_, err := c.Solve(FieldDamageDealtUp, target, richInputs())
		assert.ErrorIs(t, err, ErrInvalidTarget)
	}
}

func TestSolve_UnknownField(t *testing.T) {
	_, err := defaultCalc().Solve(DamageField(99), 100, richInputs())
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = ParseDamageField("luck")
	assert.ErrorIs(t, err, ErrUnknownField)

	f, err := ParseDamageField("customBaseDefense")
	require.NoError(t, err)
	assert.Equal(t, FieldCustomBaseDefense, f)
	assert.Len(t, DamageFields(), 14)
}

func TestSolve_DefenseCapExceeded(t *testing.T) {
	c := defaultCalc()
	in := richInputs()
	target := c.Compute(in).FinalDamage * 10 // coefficient 0.46 → 4.6

	for _, field := range []DamageField{FieldCustomBaseDefense, FieldAttackBuffs, FieldAttackDebuffs, FieldDefenseBuffs, FieldDefenseDebuffs} {
		t.Run(field.String(), func(t *testing.T) {
			_, err := c.Solve(field, target, in)
			assert.ErrorIs(t, err, ErrDefenseCapExceeded)
		})
	}
}

func TestSolve_CustomBaseDefenseNeedsCustomPreset(t *testing.T) {
	c := defaultCalc()
	in := richInputs()
	in.DefensePreset = "kbn_nm"
	_, err := c.Solve(FieldCustomBaseDefense, 1000, in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSolve_ZeroDenominator(t *testing.T) {
	c := defaultCalc()
	in := richInputs()
	in.BaseAttack = "0"

	for _, field := range []DamageField{FieldDamageDealtUp, FieldCritDamage, FieldBreakBonus, FieldOtherMultiplier} {
		_, err := c.Solve(field, 1000, in)
		assert.ErrorIs(t, err, ErrZeroDenominator, field.String())
	}

	_, err := c.Solve(FieldSkillMultiplier, 1000, in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSolve_DebuffOutOfRange(t *testing.T) {
	c := defaultCalc()
	in := richInputs()
	// Tiny target: removing almost all attack would need a debuff near 100%.
	_, err := c.Solve(FieldAttackDebuffs, 1, in)
	assert.ErrorIs(t, err, ErrNonPhysical)
}

func TestSolve_BaseAttackOutOfRange(t *testing.T) {
	c := defaultCalc()
	in := richInputs()
	_, err := c.Solve(FieldBaseAttack, 1e12, in)
	assert.ErrorIs(t, err, ErrOutOfRange)

	in.SkillMultiplier = "0"
	_, err = c.Solve(FieldBaseAttack, 1000, in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSolve_DefaultInputsRoundTrip(t *testing.T) {
	c := defaultCalc()
	in := DefaultDamageInputs(c.Modes)
	base := c.Compute(in).FinalDamage

	sol, err := c.Solve(FieldDamageDealtUp, base*2, in)
	require.NoError(t, err)
	assert.Equal(t, "100", sol.Value, "placeholder list is replaced")
	assert.InDelta(t, math.Ceil(base*2), math.Ceil(c.Compute(in.Apply(sol)).FinalDamage), 1)
}
