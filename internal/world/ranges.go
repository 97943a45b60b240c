package world

import (
	"fmt"
	"strconv"
	"strings"
)

// IntRange is an inclusive integer interval [Min, Max].
type IntRange struct {
	Min int `mapstructure:"min" json:"min"`
	Max int `mapstructure:"max" json:"max"`
}

// Valid reports whether Min <= Max.
func (r IntRange) Valid() bool { return r.Min <= r.Max }

func (r IntRange) String() string { return fmt.Sprintf("%d-%d", r.Min, r.Max) }

// FloatRange is a closed interval [Min, Max].
type FloatRange struct {
	Min float64 `mapstructure:"min" json:"min"`
	Max float64 `mapstructure:"max" json:"max"`
}

// Valid reports whether Min <= Max.
func (r FloatRange) Valid() bool { return r.Min <= r.Max }

// Contains reports whether v lies in the closed interval.
func (r FloatRange) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

func (r FloatRange) String() string { return fmt.Sprintf("%g-%g", r.Min, r.Max) }

// ParseIntRange parses "min-max", or a single value meaning min == max.
func ParseIntRange(s string) (IntRange, error) {
	lo, hi, err := splitRange(s)
	if err != nil {
		return IntRange{}, err
	}
	var r IntRange
	if r.Min, err = strconv.Atoi(lo); err != nil {
		return IntRange{}, fmt.Errorf("range %q: %w", s, err)
	}
	if r.Max, err = strconv.Atoi(hi); err != nil {
		return IntRange{}, fmt.Errorf("range %q: %w", s, err)
	}
	return r, nil
}

// ParseFloatRange parses "min-max", or a single value meaning min == max.
func ParseFloatRange(s string) (FloatRange, error) {
	lo, hi, err := splitRange(s)
	if err != nil {
		return FloatRange{}, err
	}
	var r FloatRange
	if r.Min, err = strconv.ParseFloat(lo, 64); err != nil {
		return FloatRange{}, fmt.Errorf("range %q: %w", s, err)
	}
	if r.Max, err = strconv.ParseFloat(hi, 64); err != nil {
		return FloatRange{}, fmt.Errorf("range %q: %w", s, err)
	}
	return r, nil
}

// splitRange splits on the first '-' after the leading character, so a
// negative lower bound survives.
func splitRange(s string) (string, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", fmt.Errorf("empty range")
	}
	i := strings.Index(s[1:], "-")
	if i < 0 {
		return s, s, nil
	}
	i++
	return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), nil
}
