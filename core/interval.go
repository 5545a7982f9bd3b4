package core

import "math"

// Interval is a closed real range [Min, Max]. The zero value is NOT empty;
// use EmptyInterval for that.
type Interval struct {
	Min, Max float32
}

// EmptyInterval returns an interval that contains nothing.
func EmptyInterval() Interval {
	return Interval{Min: float32(math.Inf(1)), Max: float32(math.Inf(-1))}
}

// UniverseInterval returns an interval that contains everything.
func UniverseInterval() Interval {
	return Interval{Min: float32(math.Inf(-1)), Max: float32(math.Inf(1))}
}

func (iv Interval) Size() float32 { return iv.Max - iv.Min }

func (iv Interval) Contains(x float32) bool { return iv.Min <= x && x <= iv.Max }

func (iv Interval) Surrounds(x float32) bool { return iv.Min < x && x < iv.Max }

// Clamp restricts x to the interval's bounds.
func (iv Interval) Clamp(x float32) float32 {
	if x < iv.Min {
		return iv.Min
	}
	if x > iv.Max {
		return iv.Max
	}
	return x
}
