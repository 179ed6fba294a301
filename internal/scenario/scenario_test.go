package scenario

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/madocalc/internal/buff"
	"github.com/udisondev/madocalc/internal/game/combat"
	"github.com/udisondev/madocalc/internal/game/recovery"
	"github.com/udisondev/madocalc/internal/game/timeline"
	"github.com/udisondev/madocalc/internal/testutil"
)

const batchYAML = `
modes:
  actionMpRecoveryBonus: total
scenarios:
  - name: default hit
    damage: {}
    solve: {field: otherMultiplier, target: "108"}
  - name: healer
    hp: {healer_hp: "4000"}
  - name: attack mp
    mp_action: {bonus: "10,20"}
  - name: skill mp
    mp_skill: {effect_percent: "20"}
  - name: gear swap
    status:
      memory: {attack: "1000"}
      ability_attack_buff: "10"
    compare:
      memory: {attack: "1050"}
  - name: unreachable
    timeline: {}
    solve: {field: position, target: "84"}
  - name: speed
    timeline: {}
    solve: {field: speed, target: "41"}
`

func value(t *testing.T, r Result, label string) string {
	t.Helper()
	for _, row := range r.Rows {
		if row.Label == label {
			return row.Value
		}
	}
	t.Fatalf("%s: no row %q in %+v", r.Name, label, r.Rows)
	return ""
}

func loadBatch(t *testing.T) (File, buff.Modes) {
	t.Helper()
	f, err := Load(testutil.WriteFile(t, "batch.yaml", batchYAML))
	require.NoError(t, err)
	modes, err := f.BuffModes(buff.DefaultModes())
	require.NoError(t, err)
	return f, modes
}

func TestLoad_DefaultsUnderUserValues(t *testing.T) {
	f, _ := loadBatch(t)
	require.Len(t, f.Scenarios, 7)

	hp := f.Scenarios[1].HP
	require.NotNil(t, hp)
	assert.Equal(t, "4000", hp.HealerHP)
	assert.Equal(t, "10", hp.SkillMultiplier, "unset fields keep defaults")
	assert.Equal(t, "0,0", hp.MaxHPBuffs)

	dmg := f.Scenarios[0].Damage
	require.NotNil(t, dmg)
	assert.Equal(t, combat.DefaultDamageInputs(buff.DefaultModes()), *dmg)
	assert.Nil(t, f.Scenarios[0].HP)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(testutil.TempPath(t, "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(testutil.WriteFile(t, "bad.yaml", "scenarios: [\n"))
	assert.Error(t, err)

	_, err = Load(testutil.WriteFile(t, "bad-section.yaml", "scenarios:\n  - hp: [1, 2]\n"))
	assert.ErrorContains(t, err, "hp")
}

func TestFile_BuffModes(t *testing.T) {
	_, modes := loadBatch(t)
	assert.Equal(t, buff.ModeTotal, modes.Of(buff.ActionMPRecoveryBonus))
	assert.Equal(t, buff.ModeSplit, modes.Of(buff.AttackBuffs))

	_, err := File{Modes: map[string]string{"nope": "total"}}.BuffModes(buff.DefaultModes())
	assert.Error(t, err)
	_, err = File{Modes: map[string]string{"attackBuffs": "both"}}.BuffModes(buff.DefaultModes())
	assert.Error(t, err)
}

func TestScenario_Kind(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want Kind
		err  error
	}{
		{"none", "name: x", "", ErrNoSection},
		{"two", "hp: {}\nmp_skill: {}", "", ErrManySections},
		{"compare without status", "hp: {}\ncompare: {}", "", ErrCompareNotStatus},
		{"solve on hp", "hp: {}\nsolve: {field: x}", "", ErrSolveNotAllowed},
		{"status with compare", "status: {}\ncompare: {}", KindStatus, nil},
		{"timeline solve", "timeline: {}\nsolve: {field: bonus, target: \"1\"}", KindTimeline, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sc Scenario
			require.NoError(t, yaml.Unmarshal([]byte(tt.doc), &sc))
			k, err := sc.Kind()
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, k)
		})
	}
}

func TestRunner_Run(t *testing.T) {
	f, modes := loadBatch(t)
	ctx := testutil.ContextWithTimeout(t, 5*time.Second)

	results, err := Runner{Modes: modes, Limit: 3}.Run(ctx, f.Scenarios)
	require.NoError(t, err)
	require.Len(t, results, len(f.Scenarios))

	for i, r := range results {
		assert.Equal(t, f.Scenarios[i].Name, r.Name, "results keep input order")
	}

	dmg := results[0]
	assert.Equal(t, KindDamage, dmg.Kind)
	assert.Equal(t, "54", value(t, dmg, "finalDamage"))
	assert.Equal(t, "1212.16", value(t, dmg, "basicDamage"))
	assert.Equal(t, "0.0635", value(t, dmg, "defenseCoefficient"))
	assert.Equal(t, "2.0058", value(t, dmg, "solved.otherMultiplier"))
	assert.Equal(t, "108", value(t, dmg, "check.finalDamage"))
	assert.NoError(t, dmg.Err)

	hp := results[1]
	assert.Equal(t, "4000", value(t, hp, "finalHp"))
	assert.Equal(t, "500", value(t, hp, "recoveryBase"))
	assert.Equal(t, "500", value(t, hp, "recovery"))

	assert.Equal(t, "16", value(t, results[2], "mpRecovery"), "total mode reads only the leading number")
	assert.Equal(t, "20", value(t, results[3], "mpRecovery"))

	st := results[4]
	assert.Equal(t, "1100 (base 1000, ability +100)", value(t, st, "attack"))
	assert.Equal(t, "+50", value(t, st, "diff.attack"))
	assert.Equal(t, "0", value(t, st, "diff.hp"))

	bad := results[5]
	assert.Equal(t, "41", value(t, bad, "initialAV"))
	assert.ErrorIs(t, bad.Err, timeline.ErrOutOfRange, "a failed solve stays on its result")

	assert.Equal(t, "120.08", value(t, results[6], "solved.speed"))
}

func TestRunner_RunAbortsOnBadDefinition(t *testing.T) {
	hp := recovery.DefaultHPInputs(buff.DefaultModes())
	scenarios := []Scenario{
		{Name: "fine", HP: &hp},
		{Name: "broken"},
	}
	_, err := Runner{Modes: buff.DefaultModes()}.Run(t.Context(), scenarios)
	require.ErrorIs(t, err, ErrNoSection)
	assert.ErrorContains(t, err, "scenario 2 (broken)")

	var sc Scenario
	require.NoError(t, yaml.Unmarshal([]byte("damage: {}\nsolve: {field: nope, target: \"1\"}"), &sc))
	_, err = Runner{Modes: buff.DefaultModes()}.Run(t.Context(), []Scenario{sc})
	assert.ErrorIs(t, err, combat.ErrUnknownField)

	sc = Scenario{}
	require.NoError(t, yaml.Unmarshal([]byte("timeline: {}\nsolve: {field: speed, av: sideways, target: \"1\"}"), &sc))
	_, err = Runner{Modes: buff.DefaultModes()}.Run(t.Context(), []Scenario{sc})
	assert.ErrorIs(t, err, timeline.ErrUnknownField)
}

func TestRunner_ExampleFile(t *testing.T) {
	f, err := Load(filepath.Join("..", "..", "config", "scenarios.example.yaml"))
	require.NoError(t, err)
	require.Len(t, f.Scenarios, 5)

	modes, err := f.BuffModes(buff.DefaultModes())
	require.NoError(t, err)
	assert.Equal(t, buff.ModeTotal, modes.Of(buff.AttackBuffs))

	results, err := Runner{Modes: modes}.Run(t.Context(), f.Scenarios)
	require.NoError(t, err)

	kinds := make([]Kind, len(results))
	for i, r := range results {
		kinds[i] = r.Kind
	}
	assert.Equal(t, []Kind{KindDamage, KindHP, KindMPAction, KindStatus, KindTimeline}, kinds)
}

func TestRunner_RunCancelled(t *testing.T) {
	f, modes := loadBatch(t)
	_, err := Runner{Modes: modes}.Run(testutil.CancelledContext(t), f.Scenarios)
	assert.Error(t, err)
}

func TestRunner_SolveDispatch(t *testing.T) {
	in := timeline.DefaultInputs()
	in.Bonus = "20"

	sol, err := solveTimeline(Solve{Field: "avForModification", Target: "30"}, in)
	require.NoError(t, err)
	assert.Equal(t, "46", sol.Value)

	sol, err = solveTimeline(Solve{Field: "speed", Target: "50"}, timeline.DefaultInputs())
	require.NoError(t, err)
	assert.Equal(t, "98.61", sol.Value, "speed defaults to the initial formula")

	_, err = solveTimeline(Solve{Field: "position", AV: "modified", Target: "1"}, in)
	assert.ErrorIs(t, err, timeline.ErrUnknownField)
}

func TestWriteText(t *testing.T) {
	results := []Result{
		{Name: "a", Kind: KindHP, Rows: []Row{{"finalHp", "3000"}, {"recovery", "400"}}},
		{Kind: KindTimeline, Rows: []Row{{"initialAV", "41"}}, Err: timeline.ErrOutOfRange},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, results))
	out := buf.String()

	assert.Contains(t, out, "# a (hp)\n")
	assert.Contains(t, out, "# timeline\n")
	assert.Contains(t, out, "finalHp   3000\n")
	assert.Regexp(t, `error +`+timeline.ErrOutOfRange.Error(), out)
	assert.Equal(t, 1, strings.Count(out, "\n\n"))

	assert.ErrorIs(t, WriteText(testutil.FailingWriter{}, results), testutil.ErrSimulated)
}

func TestWriteXLSX(t *testing.T) {
	results := []Result{
		{Name: "a", Kind: KindHP, Rows: []Row{{"finalHp", "3000"}}},
		{Name: "b", Kind: KindTimeline, Rows: []Row{{"initialAV", "41"}}, Err: timeline.ErrOutOfRange},
	}
	path := testutil.TempPath(t, "out.xlsx")
	require.NoError(t, WriteXLSX(path, results))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	cell := func(axis string) string {
		v, err := f.GetCellValue(sheetName, axis)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Item", cell("A1"))
	assert.Equal(t, "a (hp)", cell("A2"))
	assert.Equal(t, "3000", cell("B3"))
	assert.Equal(t, "b (timeline)", cell("A5"))
	assert.Equal(t, "41", cell("B6"))
	assert.Equal(t, "error", cell("A7"))
}
