package config

import (
	"log/slog"
	"math"

	"github.com/udisondev/madocalc/internal/data"
	"github.com/udisondev/madocalc/internal/num"
)

// Range is an inclusive accepted interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains reports whether v lies within r.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Range returns the interval configured for key, falling back to the
// built-in default.
func (c Config) Range(key string) (Range, bool) {
	if r, ok := c.Ranges[key]; ok {
		return r, true
	}
	if d, ok := data.FindNumericRange(key); ok {
		return Range{Min: d.Min, Max: d.Max}, true
	}
	return Range{}, false
}

// CheckInput logs a warning when raw parses to a number outside the range
// of key. It never rejects the value; calculations run on whatever the
// user typed.
func (c Config) CheckInput(key, raw string) bool {
	r, ok := c.Range(key)
	if !ok {
		return true
	}
	v := num.ParseFloat(raw)
	if math.IsNaN(v) || r.Contains(v) {
		return true
	}
	slog.Warn("input outside configured range",
		"key", key,
		"value", raw,
		"min", r.Min,
		"max", r.Max)
	return false
}
