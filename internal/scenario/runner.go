package scenario

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/madocalc/internal/buff"
	"github.com/udisondev/madocalc/internal/constants"
	"github.com/udisondev/madocalc/internal/game/combat"
	"github.com/udisondev/madocalc/internal/game/recovery"
	"github.com/udisondev/madocalc/internal/game/status"
	"github.com/udisondev/madocalc/internal/game/timeline"
	"github.com/udisondev/madocalc/internal/num"
)

// Row is one labelled output value.
type Row struct {
	Label string
	Value string
}

// Result is the outcome of one scenario. A failed reverse calculation is
// reported in Err next to the forward rows; it does not fail the batch.
type Result struct {
	Name string
	Kind Kind
	Rows []Row
	Err  error
}

// Runner evaluates scenarios concurrently.
type Runner struct {
	Modes   buff.Modes
	Presets combat.PresetSource
	// Limit caps concurrent evaluations; zero means GOMAXPROCS.
	Limit int
}

// Run evaluates every scenario and returns results in input order.
// An invalid scenario or a cancelled context aborts the batch.
func (r Runner) Run(ctx context.Context, scenarios []Scenario) ([]Result, error) {
	limit := r.Limit
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(scenarios))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, sc := range scenarios {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.Evaluate(sc)
			if err != nil {
				return fmt.Errorf("scenario %d (%s): %w", i+1, sc.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Evaluate runs a single scenario.
func (r Runner) Evaluate(sc Scenario) (Result, error) {
	kind, err := sc.Kind()
	if err != nil {
		return Result{}, err
	}

	res := Result{Name: sc.Name, Kind: kind}
	switch kind {
	case KindDamage:
		err = r.damage(sc, &res)
	case KindHP:
		r.hp(sc, &res)
	case KindMPAction:
		v := recovery.MPCalculator{Modes: r.Modes}.ActionRecovery(*sc.MPAction)
		res.add("mpRecovery", formatValue(v))
	case KindMPSkill:
		v := recovery.MPCalculator{Modes: r.Modes}.SkillEffectRecovery(*sc.MPSkill)
		res.add("mpRecovery", formatValue(v))
	case KindStatus:
		r.status(sc, &res)
	case KindTimeline:
		err = r.timeline(sc, &res)
	}
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

func (res *Result) add(label, value string) {
	res.Rows = append(res.Rows, Row{Label: label, Value: value})
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return constants.Placeholder
	}
	return num.FormatNumber(v)
}

func (r Runner) damage(sc Scenario, res *Result) error {
	c := combat.Calculator{Modes: r.Modes, Presets: r.Presets}
	in := *sc.Damage
	out := c.Compute(in)

	res.add("basicDamage", num.FormatFixed(out.BasicDamage, 2))
	res.add("defenseCoefficient", num.FormatFixed(out.DefenseCoefficient, 4))
	res.add("elemental", num.FormatFixedTrim(out.CombinedElemental, 2))
	res.add("finalDamage", combat.Display(out.FinalDamage))
	if out.HasCrit {
		res.add("finalDamageNonCrit", combat.Display(out.FinalDamageNonCrit))
	}

	if sc.Solve == nil {
		return nil
	}
	field, err := combat.ParseDamageField(sc.Solve.Field)
	if err != nil {
		return err
	}
	sol, err := c.Solve(field, num.ParseFloat(sc.Solve.Target), in)
	if err != nil {
		res.Err = err
		return nil
	}
	res.add("solved."+field.String(), sol.Value)
	if sol.Warning != "" {
		res.add("warning", sol.Warning)
	}
	res.add("check.finalDamage", combat.Display(c.Compute(in.Apply(sol)).FinalDamage))
	return nil
}

func (r Runner) hp(sc Scenario, res *Result) {
	out := recovery.HPCalculator{Modes: r.Modes}.Compute(*sc.HP)
	res.add("finalHp", num.FormatFixedTrim(out.FinalHP, 2))
	res.add("recoveryBase", num.FormatFixedTrim(out.RecoveryBase, 2))
	res.add("recovery", formatValue(out.Recovery))
}

func (r Runner) status(sc Scenario, res *Result) {
	c := status.Calculator{Modes: r.Modes}
	primary := c.Compute(*sc.Status)

	stats := []struct {
		label string
		pick  func(status.Result) status.Stat
		diff  func(status.Diff) float64
	}{
		{"hp", func(r status.Result) status.Stat { return r.HP }, func(d status.Diff) float64 { return d.HP }},
		{"attack", func(r status.Result) status.Stat { return r.Attack }, func(d status.Diff) float64 { return d.Attack }},
		{"defense", func(r status.Result) status.Stat { return r.Defense }, func(d status.Diff) float64 { return d.Defense }},
		{"speed", func(r status.Result) status.Stat { return r.Speed }, func(d status.Diff) float64 { return d.Speed }},
	}
	for _, s := range stats {
		st := s.pick(primary)
		res.add(s.label, fmt.Sprintf("%s (base %s, ability %s)",
			num.FormatNumber(st.Final), num.FormatNumber(st.Base), status.FormatDiff(st.Change)))
	}

	if sc.Compare == nil {
		return
	}
	d := status.Compare(primary, c.Compute(*sc.Compare))
	for _, s := range stats {
		res.add("diff."+s.label, status.FormatDiff(s.diff(d)))
	}
}

func (r Runner) timeline(sc Scenario, res *Result) error {
	in := *sc.Timeline
	out := timeline.Compute(in)
	res.add("initialAV", timeline.Display(out.InitialAV))
	res.add("reduction", timeline.Display(out.Reduction))
	res.add("newAV", timeline.Display(out.NewAV))

	if sc.Solve == nil {
		return nil
	}
	sol, err := solveTimeline(*sc.Solve, in)
	if err != nil {
		if errors.Is(err, timeline.ErrUnknownField) {
			return err
		}
		res.Err = err
		return nil
	}
	res.add("solved."+sol.Field, sol.Value)
	return nil
}

func solveTimeline(s Solve, in timeline.Inputs) (timeline.Solution, error) {
	av := s.AV
	if av == "" {
		switch s.Field {
		case "avForModification", "bonus":
			av = "modified"
		default:
			av = "initial"
		}
	}

	switch av {
	case "initial":
		f, err := timeline.ParseInitialField(s.Field)
		if err != nil {
			return timeline.Solution{}, err
		}
		return timeline.SolveInitial(f, s.Target, in)
	case "modified":
		f, err := timeline.ParseModifiedField(s.Field)
		if err != nil {
			return timeline.Solution{}, err
		}
		return timeline.SolveModified(f, s.Target, in)
	}
	return timeline.Solution{}, fmt.Errorf("%w: av %q", timeline.ErrUnknownField, av)
}
