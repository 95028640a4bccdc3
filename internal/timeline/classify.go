package timeline

import (
	_ "embed"
	"math"

	"gopkg.in/yaml.v3"
)

//go:embed bands.yaml
var bandsYAML []byte

// band is one row of the classification table. Nil bounds are unconstrained,
// mirroring the optional fields of a partial tuning config.
type band struct {
	Type           EventType `yaml:"type"`
	Name           string    `yaml:"name"`
	MinDuration    *float64  `yaml:"min_duration"`
	MaxDuration    *float64  `yaml:"max_duration"`
	MinDensity     *float64  `yaml:"min_density"`
	MaxDensity     *float64  `yaml:"max_density"`
	MaxCount       *int      `yaml:"max_count"`
	StartHour      *int      `yaml:"start_hour"`
	EndHour        *int      `yaml:"end_hour"`
	BaseConfidence float64   `yaml:"base_confidence"`
}

type bandTable struct {
	Bands             []band  `yaml:"bands"`
	UnknownConfidence float64 `yaml:"unknown_confidence"`
}

// defaultBands is the embedded classification table. The file is compiled in,
// so a parse failure is a build defect, not a runtime condition.
var defaultBands = mustLoadBands()

func mustLoadBands() bandTable {
	var table bandTable
	if err := yaml.Unmarshal(bandsYAML, &table); err != nil {
		panic("failed to unmarshal embedded bands.yaml: " + err.Error())
	}
	return table
}

// clusterStats are the classification signals derived from one cluster.
type clusterStats struct {
	startHour       int
	durationMinutes float64
	density         float64
	count           int
	// relativeSize is this cluster's photo count over the run's median
	// cluster size; 1.0 when the cluster is enriched in isolation.
	relativeSize float64
}

// matches reports whether stats fall fully inside the band. Min bounds are
// inclusive, max bounds exclusive; hour ranges are [start, end) and wrap past
// midnight when start > end.
func (b band) matches(s clusterStats) bool {
	if b.MinDuration != nil && s.durationMinutes < *b.MinDuration {
		return false
	}
	if b.MaxDuration != nil && s.durationMinutes >= *b.MaxDuration {
		return false
	}
	if b.MinDensity != nil && s.density < *b.MinDensity {
		return false
	}
	if b.MaxDensity != nil && s.density >= *b.MaxDensity {
		return false
	}
	if b.MaxCount != nil && s.count > *b.MaxCount {
		return false
	}
	if b.StartHour != nil && b.EndHour != nil {
		start, end := *b.StartHour, *b.EndHour
		if start <= end {
			if s.startHour < start || s.startHour >= end {
				return false
			}
		} else if s.startHour < start && s.startHour >= end {
			return false
		}
	}
	return true
}

// confidence scores how strongly stats sit inside the band. The score is the
// band's base plus up to 0.2 for distance from the duration/density
// thresholds, plus a small bonus for ceremony and party clusters that dwarf
// the rest of the run. Deterministic, capped at 0.95.
func (b band) confidence(s clusterStats) float64 {
	var margins []float64
	if b.MinDensity != nil && *b.MinDensity > 0 {
		margins = append(margins, math.Min(1, (s.density-*b.MinDensity) / *b.MinDensity))
	}
	if b.MaxDensity != nil && *b.MaxDensity > 0 {
		margins = append(margins, math.Min(1, (*b.MaxDensity-s.density) / *b.MaxDensity))
	}
	if b.MinDuration != nil && *b.MinDuration > 0 {
		margins = append(margins, math.Min(1, (s.durationMinutes-*b.MinDuration) / *b.MinDuration))
	}
	if b.MaxDuration != nil && *b.MaxDuration > 0 {
		margins = append(margins, math.Min(1, (*b.MaxDuration-s.durationMinutes) / *b.MaxDuration))
	}

	score := b.BaseConfidence
	if len(margins) > 0 {
		var sum float64
		for _, m := range margins {
			sum += m
		}
		score += 0.2 * (sum / float64(len(margins)))
	}
	if (b.Type == EventCeremony || b.Type == EventParty) && s.relativeSize >= 1.5 {
		score += 0.05
	}
	return math.Min(score, 0.95)
}

// classify runs the band table in priority order and returns the first match.
// Anything that matches no band is unknown, with a confidence strictly below
// every band's base.
func (t bandTable) classify(s clusterStats) (EventType, string, float64) {
	for _, b := range t.Bands {
		if b.matches(s) {
			return b.Type, b.Name, round2(b.confidence(s))
		}
	}
	return EventUnknown, "", t.UnknownConfidence
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
