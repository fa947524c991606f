package schedule

import (
	"math"
	"strconv"
	"strings"
)

// ParseClock converts an "HH:mm" string to minutes past midnight.
// The second return value is false when either component is not an integer.
func ParseClock(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return h*60 + m, true
}

// ComputeHours derives a slot's hour capacity from its start and end times.
// Returns false when either time fails to parse or end is not after start;
// slots never wrap past midnight.
func ComputeHours(start, end string) (float64, bool) {
	startMin, ok := ParseClock(start)
	if !ok {
		return 0, false
	}
	endMin, ok := ParseClock(end)
	if !ok {
		return 0, false
	}
	if endMin <= startMin {
		return 0, false
	}
	return RoundHours(float64(endMin-startMin) / 60), true
}

// RoundHours rounds an hour value to two decimals. Every duration stored in
// the registries goes through this, so capacity comparisons stay stable.
func RoundHours(v float64) float64 {
	return math.Round(v*100) / 100
}
