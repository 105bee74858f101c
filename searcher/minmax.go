package searcher

import "math"

// Bounds is a known value range supplied by the caller when the environment's
// returns are bounded, e.g. (-1, 1) for board games.
type Bounds struct {
	Min float64
	Max float64
}

// minMaxStats tracks the extremes of the mean values backed up in one tree's
// lifetime, to rescale value scores into [0, 1] for the UCB comparison. It is
// recreated for every decision point.
type minMaxStats struct {
	minimum float64
	maximum float64
}

func newMinMaxStats(known *Bounds) *minMaxStats {
	if known != nil {
		if known.Max < known.Min {
			panic("searcher: known bounds max < min")
		}
		return &minMaxStats{minimum: known.Min, maximum: known.Max}
	}
	// Unbounded until the first update widens the range.
	return &minMaxStats{minimum: math.Inf(1), maximum: math.Inf(-1)}
}

func (s *minMaxStats) update(value float64) {
	s.maximum = math.Max(s.maximum, value)
	s.minimum = math.Min(s.minimum, value)
}

func (s *minMaxStats) normalize(value float64) float64 {
	if s.maximum > s.minimum {
		return (value - s.minimum) / (s.maximum - s.minimum)
	}
	// Zero-width range: pass the raw value through.
	return value
}
