package validation

import (
	"math"
	"strconv"
	"strings"
)

// ParseTags turns "VIP, Enterprise, " into [VIP Enterprise]. Never nil.
func ParseTags(raw string) []string {
	tags := SplitAddresses(raw)
	if tags == nil {
		return []string{}
	}
	return tags
}

// ParseAmount reads a form amount. Anything unparseable or not finite counts
// as 0.
func ParseAmount(raw string) float64 {
	v, ok := parseFinite(raw)
	if !ok {
		return 0
	}
	return v
}

// parseFinite parses a decimal, rejecting NaN and the infinities.
func parseFinite(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
