package buff

import (
	"math"
	"strings"

	"github.com/udisondev/madocalc/internal/num"
)

// splitEpsilon is the magnitude under which an existing split entry counts
// as an unused placeholder.
const splitEpsilon = 0.001

// RewriteOnModeChange converts raw from oldMode to newMode, keeping the
// effective coefficient up to 2 decimals.
func RewriteOnModeChange(oldMode, newMode Mode, sem Semantics, raw string) string {
	if oldMode == newMode {
		return raw
	}

	if newMode == ModeSplit {
		v := num.ParseFloat(raw)
		switch {
		case math.IsNaN(v), v == 0:
			return "0,0"
		case !strings.Contains(raw, ","):
			return num.FormatNumber(v)
		}
		return raw
	}

	total := 0.0
	parts := ParsePercentList(raw)
	if sem == MultiplicativeDebuff {
		prod := 1.0
		for _, p := range parts {
			prod *= 1 - p/100
		}
		total = (1 - prod) * 100
	} else {
		for _, p := range parts {
			total += p
		}
	}
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return "0"
	}
	return num.FormatFixedTrim(total, 2)
}

// WriteSolved formats a reverse-solved value and merges it into the field's
// previous raw value. Total mode replaces. Split mode replaces a blank or
// all-placeholder list and otherwise appends the value as a new entry.
func WriteSolved(mode Mode, prevRaw string, value float64, precision int) string {
	formatted := num.FormatFixedTrim(value, precision)
	if mode == ModeTotal {
		return formatted
	}

	prev := strings.TrimSpace(prevRaw)
	if prev == "" {
		return formatted
	}
	for _, p := range ParsePercentList(prev) {
		if math.Abs(p) >= splitEpsilon {
			return prev + "," + formatted
		}
	}
	return formatted
}
