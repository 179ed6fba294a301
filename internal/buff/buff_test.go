package buff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePercentList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []float64
	}{
		{"blank", "   ", nil},
		{"single", "20", []float64{20}},
		{"list with spaces", " 10 , 5.5,2", []float64{10, 5.5, 2}},
		{"trailing comma dropped", "10,", []float64{10}},
		{"garbage entry dropped", "10,abc,5", []float64{10, 5}},
		{"prefix parse", "12%,3", []float64{12, 3}},
		{"infinity dropped", "Infinity,4", []float64{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePercentList(tt.raw)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoefficient(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		sem  Semantics
		raw  string
		want float64
	}{
		{"split additive", ModeSplit, Additive, "10,5", 1.15},
		{"total additive", ModeTotal, Additive, "30", 1.3},
		{"total additive garbage", ModeTotal, Additive, "x", 1},
		{"total additive ignores list tail", ModeTotal, Additive, "10,5", 1.1},
		{"split debuff", ModeSplit, MultiplicativeDebuff, "10,10", 0.81},
		{"total debuff", ModeTotal, MultiplicativeDebuff, "19", 0.81},
		{"empty split debuff", ModeSplit, MultiplicativeDebuff, "", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Coefficient(tt.mode, tt.sem, tt.raw), 1e-12)
		})
	}
}

func TestEffectivePercent(t *testing.T) {
	assert.InDelta(t, 15.0, EffectivePercent(ModeSplit, Additive, "10,5"), 1e-12)
	assert.InDelta(t, 19.0, EffectivePercent(ModeSplit, MultiplicativeDebuff, "10,10"), 1e-9)
	assert.InDelta(t, 25.0, EffectivePercent(ModeTotal, MultiplicativeDebuff, "25"), 1e-12)
}

func TestRewriteOnModeChange(t *testing.T) {
	tests := []struct {
		name     string
		old, new Mode
		sem      Semantics
		raw      string
		want     string
	}{
		{"same mode untouched", ModeSplit, ModeSplit, Additive, "1,2", "1,2"},
		{"to split zero", ModeTotal, ModeSplit, Additive, "0", "0,0"},
		{"to split garbage", ModeTotal, ModeSplit, Additive, "abc", "0,0"},
		{"to split number", ModeTotal, ModeSplit, Additive, " 12.50", "12.5"},
		{"to split keeps list", ModeTotal, ModeSplit, Additive, "10,5", "10,5"},
		{"to total additive", ModeSplit, ModeTotal, Additive, "10,5", "15"},
		{"to total rounds", ModeSplit, ModeTotal, Additive, "10.123,5.001", "15.12"},
		{"to total debuff", ModeSplit, ModeTotal, MultiplicativeDebuff, "10,10", "19"},
		{"to total empty", ModeSplit, ModeTotal, Additive, "", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteOnModeChange(tt.old, tt.new, tt.sem, tt.raw))
		})
	}
}

func TestRewriteOnModeChange_PreservesCoefficient(t *testing.T) {
	values := []string{"0,0", "10,5", "33.333,12.5,-4", "50,50,50", "7", "99.99", "1.234,5.678", "-20,10"}
	for _, sem := range []Semantics{Additive, MultiplicativeDebuff} {
		for _, raw := range values {
			for _, from := range []Mode{ModeSplit, ModeTotal} {
				to := ModeTotal
				if from == ModeTotal {
					to = ModeSplit
				}
				// A total value holding a list only counts its first entry,
				// so only single values round-trip from total.
				if from == ModeTotal && len(ParsePercentList(raw)) != 1 {
					continue
				}
				before := Coefficient(from, sem, raw)
				rewritten := RewriteOnModeChange(from, to, sem, raw)
				after := Coefficient(to, sem, rewritten)
				assert.InDelta(t, before, after, 0.01, "%s %s→%s %q → %q", sem, from, to, raw, rewritten)
			}
		}
	}
}

func TestField_WithMode(t *testing.T) {
	f := Field{Mode: ModeSplit, Semantics: MultiplicativeDebuff, Raw: "20,25"}
	total := f.WithMode(ModeTotal)
	assert.Equal(t, ModeTotal, total.Mode)
	assert.Equal(t, "40", total.Raw)
	assert.InDelta(t, f.Coefficient(), total.Coefficient(), 1e-9)
	assert.Equal(t, "20,25", f.Raw, "original value is not mutated")

	back := total.WithMode(ModeSplit)
	assert.Equal(t, "40", back.Raw)
	assert.InDelta(t, 0.6, back.Coefficient(), 1e-12)
}

func TestWriteSolved(t *testing.T) {
	tests := []struct {
		name      string
		mode      Mode
		prev      string
		value     float64
		precision int
		want      string
	}{
		{"total replaces", ModeTotal, "10", 7.126, 2, "7.13"},
		{"split placeholder replaced", ModeSplit, "0,0", 12.5, 2, "12.5"},
		{"split blank replaced", ModeSplit, "  ", 7, 2, "7"},
		{"split garbage replaced", ModeSplit, "abc", 7, 2, "7"},
		{"split tiny entries replaced", ModeSplit, "0.0001,-0.0005", 3, 2, "3"},
		{"split appends", ModeSplit, " 10,5 ", 4.25, 2, "10,5,4.25"},
		{"split appends negative", ModeSplit, "30", -2.5, 2, "30,-2.5"},
		{"one decimal", ModeTotal, "", 3.04, 1, "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WriteSolved(tt.mode, tt.prev, tt.value, tt.precision))
		})
	}
}

func TestDefaultModes(t *testing.T) {
	m := DefaultModes()
	assert.Equal(t, ModeTotal, m.Of(AbilityDamageUp))
	assert.Equal(t, ModeTotal, m.Of(CritDamage))
	for _, k := range Keys() {
		if k == AbilityDamageUp || k == CritDamage {
			continue
		}
		assert.Equal(t, ModeSplit, m.Of(k), string(k))
	}
	assert.Len(t, Keys(), 18)
}

func TestModes_WithIsCopy(t *testing.T) {
	m := DefaultModes()
	n := m.With(AttackBuffs, ModeTotal)
	assert.Equal(t, ModeSplit, m.Of(AttackBuffs))
	assert.Equal(t, ModeTotal, n.Of(AttackBuffs))
}

func TestParseModes(t *testing.T) {
	m, err := ParseModes(map[string]string{"attackDebuffs": "total", "critDamage": "Split"})
	require.NoError(t, err)
	assert.Equal(t, ModeTotal, m.Of(AttackDebuffs))
	assert.Equal(t, ModeSplit, m.Of(CritDamage))
	assert.Equal(t, ModeTotal, m.Of(AbilityDamageUp))

	_, err = ParseModes(map[string]string{"nope": "total"})
	assert.Error(t, err)
	_, err = ParseModes(map[string]string{"attackBuffs": "sum"})
	assert.Error(t, err)
}

func TestModes_Migrate(t *testing.T) {
	old := DefaultModes()
	next := old.With(AttackDebuffs, ModeTotal).With(CritDamage, ModeSplit)

	changes := old.Diff(next)
	require.Len(t, changes, 2)
	assert.Equal(t, AttackDebuffs, changes[0].Key)
	assert.Equal(t, CritDamage, changes[1].Key)

	in := map[FieldKey]string{AttackDebuffs: "50,50", CritDamage: "0", AttackBuffs: "10,5"}
	out := old.Migrate(next, in)
	assert.Equal(t, "75", out[AttackDebuffs])
	assert.Equal(t, "0,0", out[CritDamage])
	assert.Equal(t, "10,5", out[AttackBuffs])
	assert.Equal(t, "50,50", in[AttackDebuffs])
}

func TestFieldKey_Semantics(t *testing.T) {
	assert.Equal(t, MultiplicativeDebuff, HPRecoveryDebuffs.Semantics())
	assert.Equal(t, Additive, AbilitySpeedBuff.Semantics())
	assert.False(t, FieldKey("bogus").Valid())
}
