package recovery

import (
	"math"

	"github.com/udisondev/madocalc/internal/buff"
	"github.com/udisondev/madocalc/internal/data"
	"github.com/udisondev/madocalc/internal/num"
)

// ActionInputs describes an action-triggered MP gain.
type ActionInputs struct {
	Action           data.MPAction `yaml:"action"`
	SpecificIncrease string        `yaml:"specific_increase"`
	Bonus            string        `yaml:"bonus"`
	// DotTicks only applies to data.ActionDoT.
	DotTicks string `yaml:"dot_ticks"`
}

// SkillEffectInputs describes an MP gain granted as a share of a target's
// ultimate cost.
type SkillEffectInputs struct {
	UltimateMPCost string `yaml:"ultimate_mp_cost"`
	EffectPercent  string `yaml:"effect_percent"`
	Bonus          string `yaml:"bonus"`
}

// DefaultActionInputs returns the starting values of the action section.
func DefaultActionInputs(modes buff.Modes) ActionInputs {
	return ActionInputs{
		Action:           data.ActionNormalAttack,
		SpecificIncrease: "0",
		Bonus:            buff.DefaultRaw(modes.Of(buff.ActionMPRecoveryBonus)),
		DotTicks:         "1",
	}
}

// DefaultSkillEffectInputs returns the starting values of the skill
// effect section.
func DefaultSkillEffectInputs(modes buff.Modes) SkillEffectInputs {
	return SkillEffectInputs{
		UltimateMPCost: "100",
		EffectPercent:  "10",
		Bonus:          buff.DefaultRaw(modes.Of(buff.SkillEffectMPRecoveryBonus)),
	}
}

// MPCalculator evaluates MP recovery under a fixed mode map.
type MPCalculator struct {
	Modes buff.Modes
}

// ActionRecovery returns the MP restored by one action:
//
//	floor((base + floor(increase)) * (1 + bonus%/100))
//
// multiplied by the tick count for damage over time. The increase is
// floored before the bonus applies. Unknown actions and non-positive tick
// counts yield NaN.
func (c MPCalculator) ActionRecovery(in ActionInputs) float64 {
	base, ok := data.MPActionBase(in.Action)
	if !ok {
		return math.NaN()
	}
	increase := math.Floor(num.Or(num.ParseFloat(in.SpecificIncrease), 0))
	bonus := buff.Sum(c.Modes.Of(buff.ActionMPRecoveryBonus), in.Bonus) / 100

	perInstance := math.Floor((base + increase) * (1 + bonus))
	if math.IsNaN(perInstance) {
		return math.NaN()
	}
	if in.Action != data.ActionDoT {
		return perInstance
	}

	ticks := num.ParseInt(in.DotTicks)
	if math.IsNaN(ticks) || ticks <= 0 {
		return math.NaN()
	}
	return perInstance * ticks
}

// SkillEffectRecovery returns floor(cost * effect% * (1 + bonus%/100)).
// A missing or negative cost or effect yields NaN.
func (c MPCalculator) SkillEffectRecovery(in SkillEffectInputs) float64 {
	cost := num.ParseFloat(in.UltimateMPCost)
	effect := num.ParseFloat(in.EffectPercent) / 100
	bonus := buff.Sum(c.Modes.Of(buff.SkillEffectMPRecoveryBonus), in.Bonus) / 100

	if math.IsNaN(cost) || math.IsNaN(effect) || math.IsNaN(bonus) || cost < 0 || effect < 0 {
		return math.NaN()
	}
	return math.Floor(cost * effect * (1 + bonus))
}
