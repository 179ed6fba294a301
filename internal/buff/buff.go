// Package buff aggregates percentage buff and debuff fields.
//
// A field holds either a comma separated list of independent contributions
// (split mode) or one pre-combined percentage (total mode). Additive fields
// sum their contributions; multiplicative debuffs stack as a product of
// (1 - p/100) factors.
package buff

import (
	"math"
	"strings"

	"github.com/udisondev/madocalc/internal/num"
)

// Mode selects how a raw field value is interpreted.
type Mode uint8

const (
	ModeSplit Mode = iota
	ModeTotal
)

func (m Mode) String() string {
	if m == ModeTotal {
		return "total"
	}
	return "split"
}

// ParseMode accepts "split" or "total".
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "split":
		return ModeSplit, true
	case "total":
		return ModeTotal, true
	}
	return ModeSplit, false
}

// Semantics selects how split-mode contributions combine.
type Semantics uint8

const (
	Additive Semantics = iota
	MultiplicativeDebuff
)

func (s Semantics) String() string {
	if s == MultiplicativeDebuff {
		return "multiplicative_debuff"
	}
	return "additive"
}

// ParsePercentList splits raw on commas and parses every entry leniently.
// Entries that are not finite numbers are dropped. Blank input yields nil.
func ParsePercentList(raw string) []float64 {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v := num.ParseFloat(strings.TrimSpace(p))
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Sum returns the additive percentage held by raw.
func Sum(mode Mode, raw string) float64 {
	if mode == ModeTotal {
		return num.Or(num.ParseFloat(raw), 0)
	}
	var s float64
	for _, p := range ParsePercentList(raw) {
		s += p
	}
	return s
}

// Product returns the stacked debuff factor held by raw, 1 meaning no debuff.
func Product(mode Mode, raw string) float64 {
	if mode == ModeTotal {
		return 1 - num.Or(num.ParseFloat(raw), 0)/100
	}
	prod := 1.0
	for _, p := range ParsePercentList(raw) {
		prod *= 1 - p/100
	}
	return prod
}

// Coefficient is the multiplier a field applies: 1 + S/100 for additive
// fields, the product of (1 - p/100) for debuffs.
func Coefficient(mode Mode, sem Semantics, raw string) float64 {
	if sem == MultiplicativeDebuff {
		return Product(mode, raw)
	}
	return 1 + Sum(mode, raw)/100
}

// EffectivePercent is the aggregate percentage shown to the user.
func EffectivePercent(mode Mode, sem Semantics, raw string) float64 {
	if sem == MultiplicativeDebuff {
		return (1 - Product(mode, raw)) * 100
	}
	return Sum(mode, raw)
}

// DefaultRaw is the empty value of a field in the given mode.
func DefaultRaw(mode Mode) string {
	if mode == ModeTotal {
		return "0"
	}
	return "0,0"
}

// Field is an immutable buff slot value.
type Field struct {
	Mode      Mode
	Semantics Semantics
	Raw       string
}

// Coefficient of the field under its current mode.
func (f Field) Coefficient() float64 {
	return Coefficient(f.Mode, f.Semantics, f.Raw)
}

// EffectivePercent of the field under its current mode.
func (f Field) EffectivePercent() float64 {
	return EffectivePercent(f.Mode, f.Semantics, f.Raw)
}

// WithMode returns the field converted to mode with an equivalent raw value.
func (f Field) WithMode(mode Mode) Field {
	return Field{
		Mode:      mode,
		Semantics: f.Semantics,
		Raw:       RewriteOnModeChange(f.Mode, mode, f.Semantics, f.Raw),
	}
}
