package timeline

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// suggestionPalette holds the colors cycled through by suggestion position,
// so adjacent suggestions in one run are visually distinct.
var suggestionPalette = [...]string{
	"#3B82F6", // blue
	"#22C55E", // green
	"#F59E0B", // amber
	"#EF4444", // red
	"#8B5CF6", // purple
	"#EC4899", // pink
	"#14B8A6", // teal
	"#F97316", // orange
}

// minDurationHours floors the density denominator so near-instantaneous
// bursts don't blow up to unbounded photos-per-hour values.
const minDurationHours = 0.1

// Enricher turns raw clusters into event suggestions: window, density,
// device breakdown, color, and a classified type with a confidence score.
type Enricher struct {
	bands bandTable
}

// NewEnricher creates an enricher using the embedded classification table.
func NewEnricher() *Enricher {
	return &Enricher{bands: defaultBands}
}

// Enrich builds the suggestion for a single cluster. The index selects the
// palette color and numbers unnamed events. Enriching the same cluster with
// the same index twice yields identical output.
func (e *Enricher) Enrich(cluster RawCluster, index int) EventSuggestion {
	return e.enrich(cluster, index, 1.0)
}

// EnrichAll enriches every cluster of one detection run, feeding each
// cluster's size relative to the run's median into the classifier.
func (e *Enricher) EnrichAll(clusters []RawCluster) []EventSuggestion {
	median := medianClusterSize(clusters)
	suggestions := make([]EventSuggestion, len(clusters))
	for i, c := range clusters {
		rel := 1.0
		if median > 0 {
			rel = float64(len(c.Photos)) / median
		}
		suggestions[i] = e.enrich(c, i, rel)
	}
	return suggestions
}

func (e *Enricher) enrich(cluster RawCluster, index int, relativeSize float64) EventSuggestion {
	photos := cluster.Photos
	start := photos[0].CapturedAt
	end := photos[len(photos)-1].CapturedAt

	duration := int(math.Round(end.Sub(start).Minutes()))
	hours := math.Max(float64(duration)/60, minDurationHours)
	density := round2(float64(len(photos)) / hours)

	ids := make([]int64, len(photos))
	for i, p := range photos {
		ids[i] = p.ID
	}

	eventType, name, confidence := e.bands.classify(clusterStats{
		startHour:       start.Hour(),
		durationMinutes: float64(duration),
		density:         density,
		count:           len(photos),
		relativeSize:    relativeSize,
	})
	if eventType == EventUnknown {
		name = fmt.Sprintf("Event %d", index+1)
	}

	return EventSuggestion{
		Name:            name,
		EventType:       eventType,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: duration,
		PhotoCount:      len(photos),
		PhotoIDs:        ids,
		PhotoDensity:    density,
		Devices:         deviceBreakdown(photos),
		SuggestedColor:  suggestionPalette[index%len(suggestionPalette)],
		Confidence:      confidence,
	}
}

// deviceBreakdown counts photos per device label. The label is "Make Model",
// falling back to the model alone; photos without a model are omitted, so the
// counts may sum to less than the cluster size. Sorted by count descending,
// then label, for deterministic presentation.
func deviceBreakdown(photos []PhotoPoint) []DeviceCount {
	counts := make(map[string]int)
	for _, p := range photos {
		model := strings.TrimSpace(p.DeviceModel)
		if model == "" {
			continue
		}
		label := model
		if make := strings.TrimSpace(p.DeviceMake); make != "" {
			label = make + " " + model
		}
		counts[label]++
	}

	devices := make([]DeviceCount, 0, len(counts))
	for label, count := range counts {
		devices = append(devices, DeviceCount{Model: label, Count: count})
	}
	sort.Slice(devices, func(i, j int) bool {
		if devices[i].Count != devices[j].Count {
			return devices[i].Count > devices[j].Count
		}
		return devices[i].Model < devices[j].Model
	})
	return devices
}

func medianClusterSize(clusters []RawCluster) float64 {
	if len(clusters) == 0 {
		return 0
	}
	sizes := make([]int, len(clusters))
	for i, c := range clusters {
		sizes[i] = len(c.Photos)
	}
	sort.Ints(sizes)
	mid := len(sizes) / 2
	if len(sizes)%2 == 1 {
		return float64(sizes[mid])
	}
	return float64(sizes[mid-1]+sizes[mid]) / 2
}
