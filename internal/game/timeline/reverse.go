package timeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/udisondev/madocalc/internal/constants"
	"github.com/udisondev/madocalc/internal/num"
	"github.com/udisondev/madocalc/internal/solver"
)

// InitialField is an input solvable from a target initial action value.
type InitialField uint8

const (
	InitialPosition InitialField = iota + 1
	InitialSpeed
)

// ModifiedField is an input solvable from a target modified action value.
type ModifiedField uint8

const (
	ModifiedAVForModification ModifiedField = iota + 1
	ModifiedSpeed
	ModifiedBonus
)

func (f InitialField) String() string {
	switch f {
	case InitialPosition:
		return "position"
	case InitialSpeed:
		return "speed"
	}
	return fmt.Sprintf("InitialField(%d)", uint8(f))
}

func (f ModifiedField) String() string {
	switch f {
	case ModifiedAVForModification:
		return "avForModification"
	case ModifiedSpeed:
		return "speed"
	case ModifiedBonus:
		return "bonus"
	}
	return fmt.Sprintf("ModifiedField(%d)", uint8(f))
}

// ParseInitialField resolves an InitialField by name.
func ParseInitialField(s string) (InitialField, error) {
	for _, f := range []InitialField{InitialPosition, InitialSpeed} {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// ParseModifiedField resolves a ModifiedField by name.
func ParseModifiedField(s string) (ModifiedField, error) {
	for _, f := range []ModifiedField{ModifiedAVForModification, ModifiedSpeed, ModifiedBonus} {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

var (
	ErrUnknownField  = errors.New("unknown field")
	ErrInvalidTarget = errors.New("target action value must be an integer")
	ErrInvalidInput  = errors.New("inputs do not allow this calculation")
	ErrOutOfRange    = errors.New("target action value is not reachable")
	ErrNegativeAV    = errors.New("solved action value would be negative")
	ErrNoSolution    = errors.New("could not find a solution")
)

// Solution is a solved input in its display form.
type Solution struct {
	Field string
	Value string
}

func parseTarget(raw string) (float64, error) {
	t := num.ParseInt(raw)
	if math.IsNaN(t) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTarget, raw)
	}
	return t, nil
}

func validSpeed(speed float64) bool {
	return !math.IsNaN(speed) && speed > 0
}

// fixed2 mirrors a two-decimal display round trip: the solved value is
// evaluated exactly as it will be shown.
func fixed2(v float64) (float64, string) {
	s := num.FormatFixedTrim(v, 2)
	return num.ParseFloat(s), s
}

// SolveInitial finds the input that makes the initial action value equal
// target, holding the other input of in fixed.
func SolveInitial(field InitialField, target string, in Inputs) (Solution, error) {
	t, err := parseTarget(target)
	if err != nil {
		return Solution{}, err
	}
	p := parse(in)

	var sol Solution
	switch field {
	case InitialPosition:
		sol, err = solvePosition(t, p.speed)
	case InitialSpeed:
		sol, err = solveInitialSpeed(t, p.position)
	default:
		err = ErrUnknownField
	}
	if err != nil {
		return Solution{}, fmt.Errorf("solving %s: %w", field, err)
	}
	sol.Field = field.String()
	return sol, nil
}

func solvePosition(target, speed float64) (Solution, error) {
	if !validSpeed(speed) {
		return Solution{}, fmt.Errorf("%w: speed must be positive", ErrInvalidInput)
	}

	f := func(pos float64) float64 { return InitialAV(pos, speed) - target }
	atStart := InitialAV(0, speed)
	atEnd := InitialAV(constants.TimelineLength, speed)
	if f(0) < 0 && f(constants.TimelineLength) < 0 && atStart < target {
		return Solution{}, fmt.Errorf("%w: at most %v at this speed", ErrOutOfRange, atStart)
	}
	if f(0) > 0 && f(constants.TimelineLength) > 0 && atEnd > target {
		return Solution{}, fmt.Errorf("%w: at least %v at this speed", ErrOutOfRange, atEnd)
	}

	root, err := solver.Bisection(f, 0, constants.TimelineLength, solver.WithTolerance(constants.PositionTolerance))
	if err != nil {
		return Solution{}, fmt.Errorf("%w: %w", ErrNoSolution, err)
	}

	// Bisection lands near the floor() step edge; snap to a neighbour that
	// hits the target exactly.
	pos := num.RoundHalfUp(root)
	for _, cand := range []float64{pos, pos - 1, pos + 1} {
		if InitialAV(cand, speed) == target {
			return Solution{Value: num.FormatNumber(cand)}, nil
		}
	}
	return Solution{}, fmt.Errorf("%w: tried %v (AV %v)", ErrNoSolution, pos, InitialAV(pos, speed))
}

func solveInitialSpeed(target, position float64) (Solution, error) {
	if math.IsNaN(position) || position < 0 || position > constants.TimelineLength {
		return Solution{}, fmt.Errorf("%w: position must be within 0-%v", ErrInvalidInput, constants.TimelineLength)
	}
	if target < 0 && position < constants.TimelineLength {
		return Solution{}, fmt.Errorf("%w: a negative action value needs position %v", ErrOutOfRange, constants.TimelineLength)
	}

	av := func(speed float64) float64 { return InitialAV(position, speed) }
	atMin, atMax := av(constants.SpeedMin), av(constants.SpeedMax)
	if target > atMin {
		return Solution{}, fmt.Errorf("%w: speed %v still gives %v", ErrOutOfRange, constants.SpeedMin, atMin)
	}
	if target < atMax && position < constants.TimelineLength {
		return Solution{}, fmt.Errorf("%w: speed %v still gives %v", ErrOutOfRange, constants.SpeedMax, atMax)
	}

	return solveSpeed(av, target)
}

// solveSpeed bisects the speed bracket for av(speed) == target. A two
// decimal result within one of the target is accepted; otherwise its
// rounded integer must match exactly.
func solveSpeed(av func(speed float64) float64, target float64) (Solution, error) {
	f := func(speed float64) float64 { return av(speed) - target }
	root, err := solver.Bisection(f, constants.SpeedMin, constants.SpeedMax, solver.WithTolerance(constants.SpeedTolerance))
	if err != nil {
		return Solution{}, fmt.Errorf("%w: %w", ErrNoSolution, err)
	}

	speed, shown := fixed2(root)
	if math.Abs(av(speed)-target) <= constants.AVMatchSlack {
		return Solution{Value: shown}, nil
	}
	rounded := num.RoundHalfUp(speed)
	if av(rounded) == target {
		return Solution{Value: num.FormatNumber(rounded)}, nil
	}
	return Solution{}, fmt.Errorf("%w: tried speed %s", ErrNoSolution, num.FormatFixed(speed, 2))
}

// SolveModified finds the input that makes the modified action value
// equal target, holding the other inputs of in fixed.
func SolveModified(field ModifiedField, target string, in Inputs) (Solution, error) {
	t, err := parseTarget(target)
	if err != nil {
		return Solution{}, err
	}
	p := parse(in)

	var sol Solution
	switch field {
	case ModifiedAVForModification:
		sol, err = solveAVForModification(t, p)
	case ModifiedSpeed:
		sol, err = solveModifiedSpeed(t, p)
	case ModifiedBonus:
		sol, err = solveBonus(t, p)
	default:
		err = ErrUnknownField
	}
	if err != nil {
		return Solution{}, fmt.Errorf("solving %s: %w", field, err)
	}
	sol.Field = field.String()
	return sol, nil
}

func solveAVForModification(target float64, p parsed) (Solution, error) {
	if !validSpeed(p.speed) {
		return Solution{}, fmt.Errorf("%w: speed must be positive", ErrInvalidInput)
	}
	if math.IsNaN(p.bonus) {
		return Solution{}, fmt.Errorf("%w: action value bonus is required", ErrInvalidInput)
	}
	reduction, _ := ModifiedAV(0, p.speed, p.bonus)
	v := target + reduction
	if v < 0 {
		return Solution{}, fmt.Errorf("%w: %v", ErrNegativeAV, v)
	}
	return Solution{Value: num.FormatNumber(v)}, nil
}

func solveModifiedSpeed(target float64, p parsed) (Solution, error) {
	if math.IsNaN(p.current) {
		return Solution{}, fmt.Errorf("%w: current action value is required", ErrInvalidInput)
	}
	if math.IsNaN(p.bonus) {
		return Solution{}, fmt.Errorf("%w: action value bonus is required", ErrInvalidInput)
	}

	av := func(speed float64) float64 {
		_, v := ModifiedAV(p.current, speed, p.bonus)
		return v
	}
	// The direction depends on the bonus sign, so check against both ends.
	atMin, atMax := av(constants.SpeedMin), av(constants.SpeedMax)
	if target < math.Min(atMin, atMax) || target > math.Max(atMin, atMax) {
		return Solution{}, fmt.Errorf("%w: reachable range is %v-%v", ErrOutOfRange, math.Min(atMin, atMax), math.Max(atMin, atMax))
	}

	return solveSpeed(av, target)
}

func solveBonus(target float64, p parsed) (Solution, error) {
	if math.IsNaN(p.current) {
		return Solution{}, fmt.Errorf("%w: current action value is required", ErrInvalidInput)
	}
	if !validSpeed(p.speed) {
		return Solution{}, fmt.Errorf("%w: speed must be positive", ErrInvalidInput)
	}

	av := func(bonus float64) float64 {
		_, v := ModifiedAV(p.current, p.speed, bonus)
		return v
	}
	atMin, atMax := av(constants.AVBonusMin), av(constants.AVBonusMax)
	if target > atMin {
		return Solution{}, fmt.Errorf("%w: bonus %v%% still gives %v", ErrOutOfRange, constants.AVBonusMin, atMin)
	}
	if target < atMax {
		return Solution{}, fmt.Errorf("%w: bonus %v%% still gives %v", ErrOutOfRange, constants.AVBonusMax, atMax)
	}

	f := func(bonus float64) float64 { return av(bonus) - target }
	root, err := solver.Bisection(f, constants.AVBonusMin, constants.AVBonusMax, solver.WithTolerance(constants.AVBonusTolerance))
	if err != nil {
		return Solution{}, fmt.Errorf("%w: %w", ErrNoSolution, err)
	}

	bonus, shown := fixed2(root)
	if math.Abs(av(bonus)-target) <= constants.AVMatchSlack {
		return Solution{Value: shown}, nil
	}
	return Solution{}, fmt.Errorf("%w: tried bonus %s", ErrNoSolution, num.FormatFixed(bonus, 2))
}
