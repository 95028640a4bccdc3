package timeline

import (
	"errors"
	"time"
)

// ErrNoPhotos is returned by Merge when the input groups contain no photos.
var ErrNoPhotos = errors.New("no photos to merge")

// Editor applies manual corrections to suggested events: splitting one group
// in two at a chosen time, and merging several groups into one.
type Editor struct {
	enricher *Enricher
}

// NewEditor creates an editor that enriches the corrected groups with the
// given enricher.
func NewEditor(enricher *Enricher) *Editor {
	return &Editor{enricher: enricher}
}

// SplitAt partitions photos into those captured at or before splitTime and
// those after, returning a suggestion per non-empty partition. A split time
// before every photo yields only the "after" suggestion, one after every
// photo only the "before" suggestion.
func (ed *Editor) SplitAt(photos []PhotoPoint, splitTime time.Time) []EventSuggestion {
	sorted := sortPoints(photos)

	var before, after []PhotoPoint
	for _, p := range sorted {
		if p.CapturedAt.After(splitTime) {
			after = append(after, p)
		} else {
			before = append(before, p)
		}
	}

	var suggestions []EventSuggestion
	index := 0
	for _, part := range [][]PhotoPoint{before, after} {
		if len(part) == 0 {
			continue
		}
		suggestions = append(suggestions, ed.enricher.Enrich(RawCluster{Photos: part}, index))
		index++
	}
	return suggestions
}

// Merge flattens the groups (empty ones are ignored), sorts the union by
// capture time and enriches it as a single cluster spanning the full range.
// Device counts aggregate across all input groups.
func (ed *Editor) Merge(groups [][]PhotoPoint) (EventSuggestion, error) {
	var merged []PhotoPoint
	for _, g := range groups {
		merged = append(merged, g...)
	}
	if len(merged) == 0 {
		return EventSuggestion{}, ErrNoPhotos
	}
	return ed.enricher.Enrich(RawCluster{Photos: sortPoints(merged)}, 0), nil
}
