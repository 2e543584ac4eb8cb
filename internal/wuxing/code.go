package wuxing

import (
	"fmt"
	"math"
	"strings"
)

// Single-letter element codes for the compact chart code. Water takes R so
// that Wood keeps W.
var elementCodes = map[string]string{
	"Wood":  "W",
	"Fire":  "F",
	"Earth": "E",
	"Metal": "M",
	"Water": "R",
}

var strengthDigits = map[string]string{
	"Dominant": "4",
	"Strong":   "3",
	"Balanced": "2",
	"Weak":     "1",
	"VeryWeak": "0",
}

// EncodeChartCode renders the analysis verdict as a one-line code.
// Format: WX5|<DM stem><strength digit>|E:<5x2-digit percents>|G:<role letters>|CHIP:<12hex>
// The percent block lists Wood..Water in enumeration order, each rounded to
// an integer and capped at 99; the role block lists useful, favorable,
// unfavorable, enemy, idle.
func EncodeChartCode(r *Result) string {
	var pct strings.Builder
	for _, e := range Elements {
		v := int(math.RoundToEven(r.Elements[e.String()].Percent))
		if v > 99 {
			v = 99
		}
		fmt.Fprintf(&pct, "%02d", v)
	}

	roles := elementCodes[r.Gods.Useful.String()] +
		elementCodes[r.Gods.Favorable.String()] +
		elementCodes[r.Gods.Unfavorable.String()] +
		elementCodes[r.Gods.Enemy.String()] +
		elementCodes[r.Gods.Idle.String()]

	return fmt.Sprintf("WX5|%s%s|E:%s|G:%s|CHIP:%s",
		r.DayMaster.Stem, strengthDigits[r.DayMaster.Strength], pct.String(), roles, r.Chip)
}

// ValidateChartCode checks if a string matches the expected WX5 layout.
func ValidateChartCode(code string) bool {
	if !strings.HasPrefix(code, "WX5|") {
		return false
	}
	parts := strings.Split(code, "|")
	if len(parts) != 5 {
		return false
	}
	if !strings.HasPrefix(parts[2], "E:") || len(parts[2]) != 12 {
		return false
	}
	if !strings.HasPrefix(parts[3], "G:") || len(parts[3]) != 7 {
		return false
	}
	if !strings.HasPrefix(parts[4], "CHIP:") || len(parts[4]) != 17 {
		return false
	}
	return true
}

// DecodeChartCode extracts the segments of a WX5 code. This is a simplified
// decoder for verification purposes.
func DecodeChartCode(code string) (map[string]string, error) {
	if !ValidateChartCode(code) {
		return nil, fmt.Errorf("invalid WX5 chart code format")
	}

	parts := strings.Split(code, "|")
	return map[string]string{
		"dayMaster": parts[1],
		"percents":  strings.TrimPrefix(parts[2], "E:"),
		"gods":      strings.TrimPrefix(parts[3], "G:"),
		"chip":      strings.TrimPrefix(parts[4], "CHIP:"),
	}, nil
}
