package timeline

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func devicePhotoAt(id int64, hour, minute int, make, model string) PhotoPoint {
	p := photoAt(id, hour, minute, 0)
	p.DeviceMake = make
	p.DeviceModel = model
	return p
}

func TestEnrich_WindowAndArithmetic(t *testing.T) {
	cluster := RawCluster{Photos: []PhotoPoint{
		photoAt(1, 14, 0, 0),
		photoAt(2, 14, 20, 0),
		photoAt(3, 14, 45, 0),
	}}

	s := NewEnricher().Enrich(cluster, 0)

	if !s.StartTime.Equal(cluster.Photos[0].CapturedAt) || !s.EndTime.Equal(cluster.Photos[2].CapturedAt) {
		t.Errorf("window should span first to last photo, got %v - %v", s.StartTime, s.EndTime)
	}
	if s.DurationMinutes != 45 {
		t.Errorf("expected duration 45, got %d", s.DurationMinutes)
	}
	wantDensity := round2(3 / 0.75)
	if s.PhotoDensity != wantDensity {
		t.Errorf("expected density %g, got %g", wantDensity, s.PhotoDensity)
	}
	if s.PhotoCount != 3 || len(s.PhotoIDs) != 3 {
		t.Errorf("photo count %d and ids %v must match cluster size", s.PhotoCount, s.PhotoIDs)
	}
}

func TestEnrich_DurationRounding(t *testing.T) {
	cluster := RawCluster{Photos: []PhotoPoint{
		photoAt(1, 10, 0, 0),
		photoAt(2, 10, 10, 31), // 10m31s rounds up
	}}

	s := NewEnricher().Enrich(cluster, 0)

	if s.DurationMinutes != 11 {
		t.Errorf("expected duration rounded to 11, got %d", s.DurationMinutes)
	}
}

func TestEnrich_ZeroDurationBurst(t *testing.T) {
	// All photos share one timestamp: the density denominator floors at 0.1h.
	same := photoAt(0, 12, 0, 0).CapturedAt
	cluster := RawCluster{Photos: []PhotoPoint{
		{ID: 1, CapturedAt: same},
		{ID: 2, CapturedAt: same},
		{ID: 3, CapturedAt: same},
	}}

	s := NewEnricher().Enrich(cluster, 0)

	if s.DurationMinutes != 0 {
		t.Errorf("expected duration 0, got %d", s.DurationMinutes)
	}
	if want := round2(3 / 0.1); s.PhotoDensity != want {
		t.Errorf("expected floored density %g, got %g", want, s.PhotoDensity)
	}
}

func TestEnrich_HighDensityBurst(t *testing.T) {
	// 50 photos a second apart: density in the hundreds of photos per hour.
	photos := make([]PhotoPoint, 50)
	for i := range photos {
		photos[i] = photoAt(int64(i+1), 13, 0, i)
	}

	s := NewEnricher().Enrich(RawCluster{Photos: photos}, 0)

	if s.PhotoDensity < 200 {
		t.Errorf("expected density in the hundreds, got %g", s.PhotoDensity)
	}
}

func TestEnrich_DeviceBreakdown(t *testing.T) {
	cluster := RawCluster{Photos: []PhotoPoint{
		devicePhotoAt(1, 15, 0, "Apple", "iPhone 15"),
		devicePhotoAt(2, 15, 1, "Apple", "iPhone 15"),
		devicePhotoAt(3, 15, 2, "Canon", "EOS R6"),
		devicePhotoAt(4, 15, 3, "", "Pixel 8"), // no make: model-only label
		devicePhotoAt(5, 15, 4, "", ""),        // no model: omitted
	}}

	s := NewEnricher().Enrich(cluster, 0)

	want := []DeviceCount{
		{Model: "Apple iPhone 15", Count: 2},
		{Model: "Canon EOS R6", Count: 1},
		{Model: "Pixel 8", Count: 1},
	}
	if diff := cmp.Diff(want, s.Devices); diff != "" {
		t.Errorf("device breakdown mismatch (-want +got):\n%s", diff)
	}

	total := 0
	for _, d := range s.Devices {
		total += d.Count
	}
	if total > s.PhotoCount {
		t.Errorf("device counts %d exceed photo count %d", total, s.PhotoCount)
	}
}

func TestEnrich_PaletteCycles(t *testing.T) {
	cluster := RawCluster{Photos: []PhotoPoint{photoAt(1, 12, 0, 0)}}
	e := NewEnricher()

	first := e.Enrich(cluster, 0).SuggestedColor
	second := e.Enrich(cluster, 1).SuggestedColor
	wrapped := e.Enrich(cluster, len(suggestionPalette)).SuggestedColor

	if first == second {
		t.Errorf("adjacent indexes must get distinct colors, both %s", first)
	}
	if wrapped != first {
		t.Errorf("palette should cycle: index %d got %s, want %s", len(suggestionPalette), wrapped, first)
	}
}

func TestEnrich_Idempotent(t *testing.T) {
	cluster := RawCluster{Photos: []PhotoPoint{
		devicePhotoAt(1, 14, 0, "Apple", "iPhone 15"),
		devicePhotoAt(2, 14, 5, "Canon", "EOS R6"),
		devicePhotoAt(3, 14, 12, "Apple", "iPhone 15"),
	}}
	e := NewEnricher()

	first := e.Enrich(cluster, 2)
	second := e.Enrich(cluster, 2)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("re-enrichment not idempotent (-first +second):\n%s", diff)
	}
}

func TestEnrich_UnknownGetsGenericName(t *testing.T) {
	// 03:00, low density: matches no band.
	cluster := RawCluster{Photos: []PhotoPoint{
		photoAt(1, 3, 0, 0),
		photoAt(2, 3, 15, 0),
		photoAt(3, 3, 30, 0),
	}}

	s := NewEnricher().Enrich(cluster, 4)

	if s.EventType != EventUnknown {
		t.Fatalf("expected unknown, got %s", s.EventType)
	}
	if s.Name != "Event 5" {
		t.Errorf("expected generic name 'Event 5', got %q", s.Name)
	}
}

func TestEnrichAll_RelativeSizeBonus(t *testing.T) {
	// A ceremony-shaped cluster towering over its neighbors scores higher
	// than the same cluster among equals.
	big := make([]PhotoPoint, 120)
	for i := range big {
		big[i] = photoAt(int64(i+1), 14, i/4, 0) // 14:00-14:29, dense
	}
	small := func(base int64, hour int) []PhotoPoint {
		return []PhotoPoint{
			photoAt(base, hour, 0, 0),
			photoAt(base+1, hour, 10, 0),
			photoAt(base+2, hour, 20, 0),
		}
	}

	e := NewEnricher()
	withNeighbors := e.EnrichAll([]RawCluster{
		{Photos: small(200, 9)},
		{Photos: big},
		{Photos: small(300, 22)},
	})
	alone := e.Enrich(RawCluster{Photos: big}, 1)

	var boosted EventSuggestion
	for _, s := range withNeighbors {
		if s.EventType == EventCeremony {
			boosted = s
		}
	}
	if boosted.EventType != EventCeremony {
		t.Fatalf("expected the dominant cluster to classify as ceremony, got %+v", withNeighbors)
	}
	if alone.EventType != EventCeremony {
		t.Fatalf("expected ceremony for the isolated cluster, got %s", alone.EventType)
	}
	if boosted.Confidence < alone.Confidence {
		t.Errorf("dominant cluster confidence %g should be >= isolated %g", boosted.Confidence, alone.Confidence)
	}
}

func TestRound2(t *testing.T) {
	if got := round2(1.2345); math.Abs(got-1.23) > 1e-9 {
		t.Errorf("expected 1.23, got %g", got)
	}
	if got := round2(1.235); math.Abs(got-1.24) > 1e-9 {
		t.Errorf("expected 1.24, got %g", got)
	}
}
