// Package status aggregates character stats from gear slots and ability
// buffs.
package status

import (
	"math"

	"github.com/udisondev/madocalc/internal/buff"
	"github.com/udisondev/madocalc/internal/num"
)

// Slot is the HP/Attack/Defense contribution of one gear slot.
type Slot struct {
	HP      string `yaml:"hp"`
	Attack  string `yaml:"attack"`
	Defense string `yaml:"defense"`
}

// Inputs is one full status input set.
//
// The support slot is scaled by ReflectionRate percent. Speed comes from
// the memory slot only.
type Inputs struct {
	Memory         Slot   `yaml:"memory"`
	MemorySpeed    string `yaml:"memory_speed"`
	Support        Slot   `yaml:"support"`
	ReflectionRate string `yaml:"reflection_rate"`
	Portrait       Slot   `yaml:"portrait"`

	AbilityHP      string `yaml:"ability_hp_buff"`
	AbilityAttack  string `yaml:"ability_attack_buff"`
	AbilityDefense string `yaml:"ability_defense_buff"`
	AbilitySpeed   string `yaml:"ability_speed_buff"`
}

// DefaultInputs returns an all-zero input set.
func DefaultInputs(modes buff.Modes) Inputs {
	zero := Slot{HP: "0", Attack: "0", Defense: "0"}
	return Inputs{
		Memory:         zero,
		MemorySpeed:    "0",
		Support:        zero,
		ReflectionRate: "0",
		Portrait:       zero,
		AbilityHP:      buff.DefaultRaw(modes.Of(buff.AbilityHPBuff)),
		AbilityAttack:  buff.DefaultRaw(modes.Of(buff.AbilityAttackBuff)),
		AbilityDefense: buff.DefaultRaw(modes.Of(buff.AbilityDefenseBuff)),
		AbilitySpeed:   buff.DefaultRaw(modes.Of(buff.AbilitySpeedBuff)),
	}
}

// Stat is one aggregated value.
type Stat struct {
	// Base is floor of the pre-ability sum.
	Base  float64
	Final float64
	// Change is Final - Base, the part contributed by ability buffs.
	Change float64
}

// Result holds the four aggregated stats.
type Result struct {
	HP      Stat
	Attack  Stat
	Defense Stat
	Speed   Stat
}

// Diff is the per-stat difference of two results' final values.
type Diff struct {
	HP      float64
	Attack  float64
	Defense float64
	Speed   float64
}

// Calculator aggregates stats under a fixed mode map.
type Calculator struct {
	Modes buff.Modes
}

// parse reads a number leniently: NaN and infinities count as 0.
func parse(raw string) float64 {
	return num.Finite(num.ParseFloat(raw), 0)
}

func (c Calculator) buffSum(k buff.FieldKey, raw string) float64 {
	return num.Finite(buff.Sum(c.Modes.Of(k), raw), 0) / 100
}

func stat(base, buffSum float64) Stat {
	final := math.Floor(base * (1 + buffSum))
	floored := math.Floor(base)
	return Stat{Base: floored, Final: final, Change: final - floored}
}

// Compute aggregates in: base = memory + support*reflection + portrait,
// final = floor(base * (1 + ability%/100)).
func (c Calculator) Compute(in Inputs) Result {
	reflection := parse(in.ReflectionRate) / 100

	sum := func(pick func(Slot) string) float64 {
		return parse(pick(in.Memory)) + parse(pick(in.Support))*reflection + parse(pick(in.Portrait))
	}

	return Result{
		HP:      stat(sum(func(s Slot) string { return s.HP }), c.buffSum(buff.AbilityHPBuff, in.AbilityHP)),
		Attack:  stat(sum(func(s Slot) string { return s.Attack }), c.buffSum(buff.AbilityAttackBuff, in.AbilityAttack)),
		Defense: stat(sum(func(s Slot) string { return s.Defense }), c.buffSum(buff.AbilityDefenseBuff, in.AbilityDefense)),
		Speed:   stat(parse(in.MemorySpeed), c.buffSum(buff.AbilitySpeedBuff, in.AbilitySpeed)),
	}
}

// Compare returns primary.Final - comparison.Final for every stat.
func Compare(primary, comparison Result) Diff {
	return Diff{
		HP:      primary.HP.Final - comparison.HP.Final,
		Attack:  primary.Attack.Final - comparison.Attack.Final,
		Defense: primary.Defense.Final - comparison.Defense.Final,
		Speed:   primary.Speed.Final - comparison.Speed.Final,
	}
}

// FormatDiff renders d with an explicit sign for positive values.
func FormatDiff(d float64) string {
	if d > 0 {
		return "+" + num.FormatNumber(d)
	}
	return num.FormatNumber(d)
}
