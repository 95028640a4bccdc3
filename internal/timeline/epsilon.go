package timeline

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultEpsilonMinutes is returned when there are too few points to
	// derive a gap distribution.
	DefaultEpsilonMinutes = 60.0

	minEpsilonMinutes = 30.0
	maxEpsilonMinutes = 180.0

	// Gaps above this are overnight or multi-day breaks, not photo cadence.
	gapOutlierMinutes = 480.0

	// The suggested radius is a multiple of the upper-quartile gap: large
	// enough to bridge a session's natural pauses, small enough to keep
	// distinct events apart.
	gapQuantile = 0.75
	gapScale    = 4.0
)

// SuggestEpsilon proposes a neighborhood radius in minutes from the gaps
// between consecutive capture times. The result is clamped to
// [30, 180] minutes and is deterministic for a given input: sparse sets end
// up at the upper bound, bursty sets at the lower one.
func SuggestEpsilon(points []PhotoPoint) float64 {
	if len(points) < 2 {
		return DefaultEpsilonMinutes
	}

	sorted := sortPoints(points)
	gaps := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].CapturedAt.Sub(sorted[i-1].CapturedAt).Minutes()
		if gap <= gapOutlierMinutes {
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) == 0 {
		// Every gap is a day break; nothing to learn from the cadence.
		return maxEpsilonMinutes
	}

	sort.Float64s(gaps)
	q := stat.Quantile(gapQuantile, stat.Empirical, gaps, nil)

	eps := q * gapScale
	if eps < minEpsilonMinutes {
		return minEpsilonMinutes
	}
	if eps > maxEpsilonMinutes {
		return maxEpsilonMinutes
	}
	return eps
}
