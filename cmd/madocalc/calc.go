package main

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/udisondev/madocalc/internal/buff"
	"github.com/udisondev/madocalc/internal/data"
	"github.com/udisondev/madocalc/internal/game/combat"
	"github.com/udisondev/madocalc/internal/game/recovery"
	"github.com/udisondev/madocalc/internal/game/status"
	"github.com/udisondev/madocalc/internal/game/timeline"
	"github.com/udisondev/madocalc/internal/scenario"
	"github.com/udisondev/madocalc/internal/store"
)

// evaluate prints one scenario. A failed reverse calculation is returned
// after the forward rows are printed.
func (a *app) evaluate(ctx context.Context, sc scenario.Scenario) error {
	presets, err := store.NewPresetRepository(a.store).Catalog(ctx)
	if err != nil {
		return err
	}
	res, err := scenario.Runner{Modes: a.modes, Presets: presets}.Evaluate(sc)
	if err != nil {
		return err
	}

	solveErr := res.Err
	res.Err = nil
	if err := scenario.WriteText(a.out, []scenario.Result{res}); err != nil {
		return err
	}
	return solveErr
}

func solveRequest(field, target, av string) (*scenario.Solve, error) {
	if field == "" {
		return nil, nil
	}
	if target == "" {
		return nil, fmt.Errorf("%w: -solve needs -target", errUsage)
	}
	return &scenario.Solve{Field: field, Target: target, AV: av}, nil
}

// --- damage ---

func bindDamage(fs *flag.FlagSet, in *combat.DamageInputs) {
	fs.StringVar(&in.BaseAttack, "base-attack", in.BaseAttack, "attacker base attack")
	fs.StringVar(&in.SkillMultiplier, "skill-multiplier", in.SkillMultiplier, "skill multiplier %")
	fs.StringVar(&in.AttackBuffs, "attack-buffs", in.AttackBuffs, "attack buffs %")
	fs.StringVar(&in.AttackDebuffs, "attack-debuffs", in.AttackDebuffs, "attack debuffs %")
	fs.StringVar(&in.DamageDealtUp, "damage-dealt-up", in.DamageDealtUp, "damage dealt up %")
	fs.StringVar(&in.AbilityDamageUp, "ability-damage-up", in.AbilityDamageUp, "ability damage up %")
	fs.StringVar(&in.CritDamage, "crit-damage", in.CritDamage, "crit damage %")

	fs.StringVar(&in.DefensePreset, "defense-preset", in.DefensePreset, "defense preset ID, or custom")
	fs.StringVar(&in.CustomBaseDefense, "custom-base-defense", in.CustomBaseDefense, "base defense with -defense-preset custom")
	fs.StringVar(&in.DefenseBuffs, "defense-buffs", in.DefenseBuffs, "defense buffs %")
	fs.StringVar(&in.DefenseDebuffs, "defense-debuffs", in.DefenseDebuffs, "defense debuffs %")
	fs.StringVar(&in.DamageTaken, "damage-taken", in.DamageTaken, "damage taken up %")

	fs.Var(choice[combat.Weakness]{p: &in.Weakness, parse: combat.ParseWeakness, what: "weakness"},
		"weakness", "Weak or NonWeak")
	fs.Var(choice[combat.BattleMode]{p: &in.BattleMode, parse: combat.ParseBattleMode, what: "battle mode"},
		"battle-mode", "Normal, Battle, Nightmare, Chaos or Custom")
	fs.StringVar(&in.CustomBattleModeMultiplier, "custom-battle-mode-multiplier", in.CustomBattleModeMultiplier, "elemental factor with -battle-mode Custom")
	fs.StringVar(&in.BreakBonus, "break-bonus", in.BreakBonus, "break bonus % (0 means no break)")
	fs.StringVar(&in.OtherMultiplier, "other-multiplier", in.OtherMultiplier, "other multiplier")
}

var damageRanges = map[string]rangeKey{
	"base-attack":                   {key: "baseAttack_dmgCalc"},
	"skill-multiplier":              {key: "skillMultiplier_dmgCalc"},
	"attack-buffs":                  {key: "attackBuffs_dmgCalc_total", buff: buff.AttackBuffs},
	"attack-debuffs":                {key: "attackDebuffs_dmgCalc_total", buff: buff.AttackDebuffs},
	"damage-dealt-up":               {key: "damageDealtUp_dmgCalc_total", buff: buff.DamageDealtUp},
	"ability-damage-up":             {key: "abilityDamageUp_dmgCalc_total", buff: buff.AbilityDamageUp},
	"crit-damage":                   {key: "critDamage_dmgCalc_total", buff: buff.CritDamage},
	"defense-buffs":                 {key: "defenseBuffs_dmgCalc_total", buff: buff.DefenseBuffs},
	"defense-debuffs":               {key: "defenseDebuffs_dmgCalc_total", buff: buff.DefenseDebuffs},
	"damage-taken":                  {key: "damageTaken_dmgCalc_total", buff: buff.DamageTaken},
	"custom-base-defense":           {key: "customBaseDefense_dmgCalc"},
	"custom-battle-mode-multiplier": {key: "customBattleModeMultiplier_dmgCalc"},
	"break-bonus":                   {key: "breakBonus_dmgCalc"},
	"other-multiplier":              {key: "otherMultiplier_dmgCalc"},
}

func runDamage(ctx context.Context, a *app, args []string) error {
	in := combat.DefaultDamageInputs(a.modes)
	fs := newFlagSet("damage")
	bindDamage(fs, &in)
	var memos listFlag
	fs.Var(&memos, "memo", "apply an attacker or defender memo (repeatable)")
	solve := fs.String("solve", "", "input to solve for: "+joinNames(combat.DamageFields()))
	target := fs.String("target", "", "target final damage for -solve")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := a.applyMemos(ctx, fs, memos, store.SectionAttacker, store.SectionDefender); err != nil {
		return err
	}
	a.warnRanges(fs, damageRanges)

	req, err := solveRequest(*solve, *target, "")
	if err != nil {
		return err
	}
	if req != nil {
		a.cfg.CheckInput("targetFinalDamage_dmgCalc", *target)
	}
	return a.evaluate(ctx, scenario.Scenario{Damage: &in, Solve: req})
}

// --- hp ---

func bindHP(fs *flag.FlagSet, in *recovery.HPInputs) {
	fs.StringVar(&in.HealerHP, "hp", in.HealerHP, "healer max HP")
	fs.StringVar(&in.MaxHPBuffs, "max-hp-buffs", in.MaxHPBuffs, "max HP buffs %")
	fs.StringVar(&in.MaxHPDebuffs, "max-hp-debuffs", in.MaxHPDebuffs, "max HP debuffs %")
	fs.StringVar(&in.SkillMultiplier, "skill-multiplier", in.SkillMultiplier, "recovery skill multiplier %")
	fs.StringVar(&in.FixedValue, "fixed", in.FixedValue, "fixed recovery value")
	fs.StringVar(&in.HPRecoveryBuffs, "hp-recovery-buffs", in.HPRecoveryBuffs, "HP recovery buffs %")
	fs.StringVar(&in.HPRecoveryDebuffs, "hp-recovery-debuffs", in.HPRecoveryDebuffs, "HP recovery debuffs %")
}

var hpRanges = map[string]rangeKey{
	"hp":                  {key: "baseHp_hpCalc"},
	"max-hp-buffs":        {key: "maxHpBuffs_hpCalc_total", buff: buff.MaxHPBuffs},
	"max-hp-debuffs":      {key: "maxHpDebuffs_hpCalc_total", buff: buff.MaxHPDebuffs},
	"skill-multiplier":    {key: "skillMultiplier_hpCalc"},
	"fixed":               {key: "fixedValue_hpCalc"},
	"hp-recovery-buffs":   {key: "hpRecoveryBuffs_hpCalc_total", buff: buff.HPRecoveryBuffs},
	"hp-recovery-debuffs": {key: "hpRecoveryDebuffs_hpCalc_total", buff: buff.HPRecoveryDebuffs},
}

func runHP(ctx context.Context, a *app, args []string) error {
	in := recovery.DefaultHPInputs(a.modes)
	fs := newFlagSet("hp")
	bindHP(fs, &in)
	var memos listFlag
	fs.Var(&memos, "memo", "apply an HP recovery memo (repeatable)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := a.applyMemos(ctx, fs, memos, store.SectionHPRecovery); err != nil {
		return err
	}
	a.warnRanges(fs, hpRanges)
	return a.evaluate(ctx, scenario.Scenario{HP: &in})
}

// --- mp ---

var mpRanges = map[string]rangeKey{
	"increase":      {key: "specificIncrease_mpCalc"},
	"bonus":         {key: "actionMpRecoveryBonus_mpCalc_total", buff: buff.ActionMPRecoveryBonus},
	"ticks":         {key: "dotTicks_mpCalc"},
	"ultimate-cost": {key: "skillTargetUltimateMpCost_mpCalc"},
	"effect":        {key: "skillRecoveryEffectPercent_mpCalc"},
	"skill-bonus":   {key: "skillEffectMpRecoveryBonus_mpCalc_total", buff: buff.SkillEffectMPRecoveryBonus},
}

func runMP(ctx context.Context, a *app, args []string) error {
	action := recovery.DefaultActionInputs(a.modes)
	skill := recovery.DefaultSkillEffectInputs(a.modes)

	fs := newFlagSet("mp")
	kind := fs.String("kind", "action", "action or skill")
	list := fs.Bool("list", false, "list actions and their base MP")
	fs.Var(choice[data.MPAction]{p: &action.Action, parse: data.ParseMPAction, what: "action"}, "action", "MP recovery action")
	fs.StringVar(&action.SpecificIncrease, "increase", action.SpecificIncrease, "flat increase for the action")
	fs.StringVar(&action.Bonus, "bonus", action.Bonus, "action MP recovery bonus %")
	fs.StringVar(&action.DotTicks, "ticks", action.DotTicks, "ticks for DoT")
	fs.StringVar(&skill.UltimateMPCost, "ultimate-cost", skill.UltimateMPCost, "target's ultimate MP cost")
	fs.StringVar(&skill.EffectPercent, "effect", skill.EffectPercent, "recovery effect % of the cost")
	fs.StringVar(&skill.Bonus, "skill-bonus", skill.Bonus, "skill effect MP recovery bonus %")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if *list {
		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		for _, act := range data.MPActions() {
			base, _ := data.MPActionBase(act)
			fmt.Fprintf(tw, "%s\t%s\t%v\n", act, data.MPActionLabel(act), base)
		}
		return tw.Flush()
	}

	a.warnRanges(fs, mpRanges)
	switch *kind {
	case "action":
		return a.evaluate(ctx, scenario.Scenario{Name: "mp " + string(action.Action), MPAction: &action})
	case "skill":
		return a.evaluate(ctx, scenario.Scenario{Name: "mp skill effect", MPSkill: &skill})
	}
	return fmt.Errorf("%w: -kind must be action or skill, got %q", errUsage, *kind)
}

// --- status ---

func bindStatus(fs *flag.FlagSet, in *status.Inputs) {
	slot := func(prefix string, s *status.Slot) {
		fs.StringVar(&s.HP, prefix+"-hp", s.HP, prefix+" HP")
		fs.StringVar(&s.Attack, prefix+"-attack", s.Attack, prefix+" attack")
		fs.StringVar(&s.Defense, prefix+"-defense", s.Defense, prefix+" defense")
	}
	slot("memory", &in.Memory)
	slot("support", &in.Support)
	slot("portrait", &in.Portrait)
	fs.StringVar(&in.MemorySpeed, "memory-speed", in.MemorySpeed, "memory speed")
	fs.StringVar(&in.ReflectionRate, "reflection", in.ReflectionRate, "support reflection rate %")
	fs.StringVar(&in.AbilityHP, "ability-hp", in.AbilityHP, "ability HP buff %")
	fs.StringVar(&in.AbilityAttack, "ability-attack", in.AbilityAttack, "ability attack buff %")
	fs.StringVar(&in.AbilityDefense, "ability-defense", in.AbilityDefense, "ability defense buff %")
	fs.StringVar(&in.AbilitySpeed, "ability-speed", in.AbilitySpeed, "ability speed buff %")
}

var statusRanges = map[string]rangeKey{
	"memory-hp":        {key: "memoryHp_sc"},
	"memory-attack":    {key: "memoryAttack_sc"},
	"memory-defense":   {key: "memoryDefense_sc"},
	"memory-speed":     {key: "memorySpeed_sc"},
	"support-hp":       {key: "supportHp_sc"},
	"support-attack":   {key: "supportAttack_sc"},
	"support-defense":  {key: "supportDefense_sc"},
	"reflection":       {key: "supportReflectionRate_sc"},
	"portrait-hp":      {key: "portraitHp_sc"},
	"portrait-attack":  {key: "portraitAttack_sc"},
	"portrait-defense": {key: "portraitDefense_sc"},
	"ability-hp":       {key: "abilityHpBuff_sc_total", buff: buff.AbilityHPBuff},
	"ability-attack":   {key: "abilityAttackBuff_sc_total", buff: buff.AbilityAttackBuff},
	"ability-defense":  {key: "abilityDefenseBuff_sc_total", buff: buff.AbilityDefenseBuff},
	"ability-speed":    {key: "abilitySpeedBuff_sc_total", buff: buff.AbilitySpeedBuff},
}

var statusSections = []store.MemoSection{
	store.SectionMemory, store.SectionSupport, store.SectionPortrait, store.SectionAbility,
}

func runStatus(ctx context.Context, a *app, args []string) error {
	in := status.DefaultInputs(a.modes)
	fs := newFlagSet("status")
	bindStatus(fs, &in)
	var memos, compareMemos, compare listFlag
	fs.Var(&memos, "memo", "apply a memory, support, portrait or ability memo (repeatable)")
	fs.Var(&compare, "compare", "compare against the same inputs with key=value changed (repeatable)")
	fs.Var(&compareMemos, "compare-memo", "compare against the inputs with a memo applied (repeatable)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := a.applyMemos(ctx, fs, memos, statusSections...); err != nil {
		return err
	}
	a.warnRanges(fs, statusRanges)

	sc := scenario.Scenario{Status: &in}
	if len(compare) > 0 || len(compareMemos) > 0 {
		cmp := in
		cfs := newFlagSet("status -compare")
		bindStatus(cfs, &cmp)

		overrides, err := parseAssignments(compare)
		if err != nil {
			return err
		}
		if err := setAll(cfs, overrides, nil); err != nil {
			return fmt.Errorf("compare: %w", err)
		}
		if err := a.applyMemos(ctx, cfs, compareMemos, statusSections...); err != nil {
			return fmt.Errorf("compare: %w", err)
		}
		sc.Compare = &cmp
	}
	return a.evaluate(ctx, sc)
}

// --- action value ---

var avRanges = map[string]rangeKey{
	"position": {key: "currentTimelinePosition_avCalc"},
	"speed":    {key: "characterSpeed_avCalc"},
	"av":       {key: "currentAVForModification_avCalc"},
	"bonus":    {key: "actionValueBonus_avCalc"},
}

func runAV(ctx context.Context, a *app, args []string) error {
	in := timeline.DefaultInputs()
	fs := newFlagSet("av")
	fs.StringVar(&in.Position, "position", in.Position, "current timeline position (0-10000)")
	fs.StringVar(&in.Speed, "speed", in.Speed, "character speed")
	fs.StringVar(&in.Bonus, "bonus", in.Bonus, "action value bonus %")
	fs.StringVar(&in.AVForModification, "av", in.AVForModification, "current action value to modify")
	solve := fs.String("solve", "", "position, speed, avForModification or bonus")
	target := fs.String("target", "", "target action value for -solve")
	formula := fs.String("formula", "", "initial or modified; defaults to the formula owning -solve")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	a.warnRanges(fs, avRanges)

	req, err := solveRequest(*solve, *target, *formula)
	if err != nil {
		return err
	}
	if req != nil {
		key := "targetInitialAV_avCalc"
		if *formula == "modified" || *solve == "avForModification" || *solve == "bonus" {
			key = "targetModifiedAV_avCalc"
		}
		a.cfg.CheckInput(key, *target)
	}
	return a.evaluate(ctx, scenario.Scenario{Name: "action value", Timeline: &in, Solve: req})
}
