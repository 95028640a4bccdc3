package timeline

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultMinPoints is the minimum cluster size used when the caller does not
// set one.
const DefaultMinPoints = 3

// Validation errors returned by AutoDetect before any clustering work begins.
var (
	ErrInvalidEpsilon     = errors.New("epsilon must be greater than zero")
	ErrInvalidMinPoints   = errors.New("min points must be at least 1")
	ErrMissingCaptureTime = errors.New("photo has no capture time")
)

// Options configure one detection run. Nil fields fall back to defaults:
// epsilon is estimated from the gap distribution and MinPoints is
// DefaultMinPoints. Explicitly set values are validated, never clamped.
type Options struct {
	EpsilonMinutes *float64
	MinPoints      *int
}

// Detector is the detection entry point: it resolves parameters, clusters
// the photos and enriches every cluster into an event suggestion. A Detector
// holds no mutable state and is safe for concurrent use.
type Detector struct {
	enricher *Enricher
}

// NewDetector creates a detector with the default enricher.
func NewDetector() *Detector {
	return &Detector{enricher: NewEnricher()}
}

// Enricher returns the detector's enricher, shared with the editor so manual
// corrections score events the same way automatic detection does.
func (d *Detector) Enricher() *Enricher {
	return d.enricher
}

// AutoDetect clusters photos into chronologically sorted event suggestions.
// An empty photo list yields an empty result, not an error. A photo with a
// zero capture time is a precondition violation and fails the whole call;
// silently skipping it would corrupt the photo counts downstream assignment
// relies on.
func (d *Detector) AutoDetect(photos []PhotoPoint, opts Options) ([]EventSuggestion, error) {
	minPoints := DefaultMinPoints
	if opts.MinPoints != nil {
		minPoints = *opts.MinPoints
	}
	if minPoints < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMinPoints, minPoints)
	}

	var epsilon float64
	if opts.EpsilonMinutes != nil {
		epsilon = *opts.EpsilonMinutes
		if epsilon <= 0 {
			return nil, fmt.Errorf("%w: got %g", ErrInvalidEpsilon, epsilon)
		}
	} else {
		epsilon = SuggestEpsilon(photos)
	}

	for _, p := range photos {
		if p.CapturedAt.IsZero() {
			return nil, fmt.Errorf("%w: photo %d", ErrMissingCaptureTime, p.ID)
		}
	}

	if len(photos) == 0 {
		return []EventSuggestion{}, nil
	}

	clusters := NewClusterer(epsilon, minPoints).Cluster(photos)
	suggestions := d.enricher.EnrichAll(clusters)

	// Clusters are already chronological by construction; sort defensively so
	// the ordering contract never depends on clusterer internals.
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].StartTime.Before(suggestions[j].StartTime)
	})
	return suggestions, nil
}
