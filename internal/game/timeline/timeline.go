// Package timeline computes action values: how long until a unit acts on
// the 10000-long timeline, and how action value bonuses shorten it.
package timeline

import (
	"math"

	"github.com/udisondev/madocalc/internal/constants"
	"github.com/udisondev/madocalc/internal/num"
)

// Inputs is the raw input set of the action value calculator.
type Inputs struct {
	Position          string `yaml:"position"`
	Speed             string `yaml:"speed"`
	Bonus             string `yaml:"bonus"`
	AVForModification string `yaml:"av_for_modification"`
}

// DefaultInputs returns the starting values of the calculator.
func DefaultInputs() Inputs {
	return Inputs{
		Position:          "5000",
		Speed:             "120",
		Bonus:             "0",
		AVForModification: "30",
	}
}

// Result is one forward evaluation. Unusable inputs surface as NaN.
type Result struct {
	InitialAV float64
	Reduction float64
	NewAV     float64
}

type parsed struct {
	position float64
	speed    float64
	bonus    float64
	current  float64
}

func parse(in Inputs) parsed {
	return parsed{
		position: num.ParseFloat(in.Position),
		speed:    num.ParseFloat(in.Speed),
		bonus:    num.ParseFloat(in.Bonus),
		current:  num.ParseFloat(in.AVForModification),
	}
}

// Compute evaluates both the initial and the modified action value.
func Compute(in Inputs) Result {
	p := parse(in)
	reduction, newAV := ModifiedAV(p.current, p.speed, p.bonus)
	return Result{
		InitialAV: InitialAV(p.position, p.speed),
		Reduction: reduction,
		NewAV:     newAV,
	}
}

// InitialAV returns floor((10000 - position) / speed). Position must lie
// on the timeline and speed must be positive, otherwise NaN.
func InitialAV(position, speed float64) float64 {
	if math.IsNaN(position) || math.IsNaN(speed) || speed <= 0 ||
		position < 0 || position > constants.TimelineLength {
		return math.NaN()
	}
	return math.Floor((constants.TimelineLength - position) / speed)
}

// ModifiedAV applies an action value bonus to current:
//
//	reduction = floor(10000 / speed * bonus / 100)
//	newAV     = floor(current - reduction)
func ModifiedAV(current, speed, bonus float64) (reduction, newAV float64) {
	if math.IsNaN(current) || math.IsNaN(speed) || math.IsNaN(bonus) || speed <= 0 {
		return math.NaN(), math.NaN()
	}
	reduction = math.Floor((constants.TimelineLength / speed) * (bonus / 100))
	return reduction, math.Floor(current - reduction)
}

// Display renders an action value, or the placeholder for NaN.
func Display(v float64) string {
	if math.IsNaN(v) {
		return constants.Placeholder
	}
	return num.FormatNumber(v)
}
