package timeline

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// weddingPhotos builds a synthetic wedding day: prep, ceremony, cocktails,
// dinner and party separated by gaps larger than any reasonable epsilon.
func weddingPhotos() []PhotoPoint {
	var photos []PhotoPoint
	id := int64(0)
	addBurst := func(hour, minute, count, stepSeconds int) {
		for i := 0; i < count; i++ {
			id++
			photos = append(photos, photoAt(id, hour, minute, i*stepSeconds))
		}
	}
	addBurst(9, 0, 8, 300)    // prep: 09:00-09:35, sparse
	addBurst(14, 0, 80, 20)   // ceremony: 14:00-14:26, dense
	addBurst(16, 30, 30, 120) // cocktails: 16:30-17:28
	addBurst(19, 0, 25, 180)  // dinner: 19:00-20:12
	addBurst(21, 30, 90, 60)  // party: 21:30-22:59
	return photos
}

func TestAutoDetect_EmptyInput(t *testing.T) {
	suggestions, err := NewDetector().AutoDetect(nil, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if suggestions == nil || len(suggestions) != 0 {
		t.Errorf("expected empty non-nil result, got %#v", suggestions)
	}
}

func TestAutoDetect_SinglePhoto(t *testing.T) {
	photos := []PhotoPoint{photoAt(1, 12, 0, 0)}
	d := NewDetector()

	withMinOne, err := d.AutoDetect(photos, Options{MinPoints: intPtr(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(withMinOne) != 1 || withMinOne[0].PhotoCount != 1 {
		t.Errorf("minPoints=1: expected one singleton suggestion, got %+v", withMinOne)
	}

	withDefault, err := d.AutoDetect(photos, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(withDefault) != 0 {
		t.Errorf("default minPoints: expected singleton dropped as noise, got %+v", withDefault)
	}
}

func TestAutoDetect_InvalidParams(t *testing.T) {
	photos := []PhotoPoint{photoAt(1, 12, 0, 0)}
	d := NewDetector()

	if _, err := d.AutoDetect(photos, Options{EpsilonMinutes: floatPtr(0)}); !errors.Is(err, ErrInvalidEpsilon) {
		t.Errorf("epsilon 0: expected ErrInvalidEpsilon, got %v", err)
	}
	if _, err := d.AutoDetect(photos, Options{EpsilonMinutes: floatPtr(-5)}); !errors.Is(err, ErrInvalidEpsilon) {
		t.Errorf("negative epsilon: expected ErrInvalidEpsilon, got %v", err)
	}
	if _, err := d.AutoDetect(photos, Options{MinPoints: intPtr(0)}); !errors.Is(err, ErrInvalidMinPoints) {
		t.Errorf("minPoints 0: expected ErrInvalidMinPoints, got %v", err)
	}
}

func TestAutoDetect_MissingCaptureTime(t *testing.T) {
	photos := []PhotoPoint{
		photoAt(1, 12, 0, 0),
		{ID: 2}, // zero capture time
	}

	_, err := NewDetector().AutoDetect(photos, Options{})
	if !errors.Is(err, ErrMissingCaptureTime) {
		t.Errorf("expected ErrMissingCaptureTime, got %v", err)
	}
}

func TestAutoDetect_WeddingDay(t *testing.T) {
	suggestions, err := NewDetector().AutoDetect(weddingPhotos(), Options{EpsilonMinutes: floatPtr(60)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(suggestions) != 5 {
		t.Fatalf("expected 5 events, got %d: %+v", len(suggestions), suggestions)
	}

	wantTypes := []EventType{EventPrep, EventCeremony, EventCocktails, EventDinner, EventParty}
	for i, want := range wantTypes {
		if suggestions[i].EventType != want {
			t.Errorf("event %d: expected %s, got %s (density %g, duration %d)",
				i, want, suggestions[i].EventType, suggestions[i].PhotoDensity, suggestions[i].DurationMinutes)
		}
	}
}

func TestAutoDetect_ChronologicalAndDisjoint(t *testing.T) {
	suggestions, err := NewDetector().AutoDetect(weddingPhotos(), Options{EpsilonMinutes: floatPtr(60)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 1; i < len(suggestions); i++ {
		if suggestions[i].StartTime.Before(suggestions[i-1].StartTime) {
			t.Errorf("suggestions not sorted by start time at index %d", i)
		}
		if suggestions[i].StartTime.Before(suggestions[i-1].EndTime) {
			t.Errorf("event %d starts before event %d ends", i, i-1)
		}
	}
}

func TestAutoDetect_Deterministic(t *testing.T) {
	photos := weddingPhotos()
	d := NewDetector()

	first, err := d.AutoDetect(photos, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := d.AutoDetect(photos, Options{})
		if err != nil {
			t.Fatalf("run %d: unexpected error: %v", i, err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
}

func TestAutoDetect_AutoEpsilonSeparatesDistantSessions(t *testing.T) {
	// Two dense bursts 6 hours apart: the estimated epsilon (<= 180 min)
	// must keep them apart.
	var photos []PhotoPoint
	for i := 0; i < 20; i++ {
		photos = append(photos, photoAt(int64(i+1), 10, i, 0))
	}
	for i := 0; i < 20; i++ {
		photos = append(photos, photoAt(int64(i+21), 18, i, 0))
	}

	suggestions, err := NewDetector().AutoDetect(photos, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 events, got %d", len(suggestions))
	}
	if suggestions[0].PhotoCount != 20 || suggestions[1].PhotoCount != 20 {
		t.Errorf("expected 20 photos per event, got %d and %d",
			suggestions[0].PhotoCount, suggestions[1].PhotoCount)
	}
}

func TestAutoDetect_PartitionInvariant(t *testing.T) {
	photos := weddingPhotos()
	suggestions, err := NewDetector().AutoDetect(photos, Options{EpsilonMinutes: floatPtr(60), MinPoints: intPtr(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// With minPoints=1 nothing is noise, so every input id must appear
	// exactly once across the suggestions.
	seen := make(map[int64]int)
	for _, s := range suggestions {
		for _, id := range s.PhotoIDs {
			seen[id]++
		}
	}
	if len(seen) != len(photos) {
		t.Fatalf("expected %d distinct ids, got %d", len(photos), len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("photo %d appears %d times", id, n)
		}
	}
}

func TestAutoDetect_ColorsDistinctPerRun(t *testing.T) {
	suggestions, err := NewDetector().AutoDetect(weddingPhotos(), Options{EpsilonMinutes: floatPtr(60)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	colors := make(map[string]bool)
	for _, s := range suggestions {
		if colors[s.SuggestedColor] {
			t.Errorf("color %s assigned twice within one run of %d events", s.SuggestedColor, len(suggestions))
		}
		colors[s.SuggestedColor] = true
	}
}
