package timeline

import (
	"errors"
	"testing"
	"time"
)

func newTestEditor() *Editor {
	return NewEditor(NewEnricher())
}

func TestEditor_SplitAtMiddle(t *testing.T) {
	photos := []PhotoPoint{
		photoAt(1, 14, 0, 0),
		photoAt(2, 14, 30, 0),
		photoAt(3, 17, 30, 0),
		photoAt(4, 18, 0, 0),
	}
	splitTime := weddingDay.Add(16 * time.Hour)

	suggestions := newTestEditor().SplitAt(photos, splitTime)

	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}
	if suggestions[0].PhotoCount != 2 || suggestions[1].PhotoCount != 2 {
		t.Errorf("expected 2 photos per side, got %d and %d",
			suggestions[0].PhotoCount, suggestions[1].PhotoCount)
	}
	if !suggestions[0].EndTime.Before(suggestions[1].StartTime) {
		t.Errorf("before-partition must end before after-partition starts")
	}
}

func TestEditor_SplitBoundaryIsInclusive(t *testing.T) {
	photos := []PhotoPoint{
		photoAt(1, 14, 0, 0),
		photoAt(2, 15, 0, 0),
	}

	// A photo captured exactly at the split time belongs to the before side.
	suggestions := newTestEditor().SplitAt(photos, photos[0].CapturedAt)

	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}
	if suggestions[0].PhotoIDs[0] != 1 {
		t.Errorf("photo at the split time should stay in the before partition")
	}
}

func TestEditor_SplitBeforeAllPhotos(t *testing.T) {
	photos := []PhotoPoint{
		photoAt(1, 14, 0, 0),
		photoAt(2, 14, 30, 0),
		photoAt(3, 15, 0, 0),
	}

	suggestions := newTestEditor().SplitAt(photos, weddingDay.Add(8*time.Hour))

	if len(suggestions) != 1 {
		t.Fatalf("expected only the after suggestion, got %d", len(suggestions))
	}
	if suggestions[0].PhotoCount != len(photos) {
		t.Errorf("expected full input length %d, got %d", len(photos), suggestions[0].PhotoCount)
	}
}

func TestEditor_SplitAfterAllPhotos(t *testing.T) {
	photos := []PhotoPoint{
		photoAt(1, 14, 0, 0),
		photoAt(2, 14, 30, 0),
	}

	suggestions := newTestEditor().SplitAt(photos, weddingDay.Add(23*time.Hour))

	if len(suggestions) != 1 {
		t.Fatalf("expected only the before suggestion, got %d", len(suggestions))
	}
	if suggestions[0].PhotoCount != 2 {
		t.Errorf("expected 2 photos, got %d", suggestions[0].PhotoCount)
	}
}

func TestEditor_SplitEmptyInput(t *testing.T) {
	suggestions := newTestEditor().SplitAt(nil, weddingDay)
	if len(suggestions) != 0 {
		t.Errorf("expected no suggestions for empty input, got %d", len(suggestions))
	}
}

func TestEditor_Merge(t *testing.T) {
	groupA := []PhotoPoint{
		devicePhotoAt(1, 14, 0, "Apple", "iPhone 15"),
		devicePhotoAt(2, 14, 30, "Apple", "iPhone 15"),
	}
	groupB := []PhotoPoint{
		devicePhotoAt(3, 17, 30, "Canon", "EOS R6"),
		devicePhotoAt(4, 18, 0, "Apple", "iPhone 15"),
	}

	merged, err := newTestEditor().Merge([][]PhotoPoint{groupB, nil, groupA})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if merged.PhotoCount != 4 {
		t.Errorf("expected 4 photos, got %d", merged.PhotoCount)
	}
	if !merged.StartTime.Equal(groupA[0].CapturedAt) || !merged.EndTime.Equal(groupB[1].CapturedAt) {
		t.Errorf("merged window should span the full range, got %v - %v", merged.StartTime, merged.EndTime)
	}
	// Photo ids come out chronological regardless of group order.
	for i, want := range []int64{1, 2, 3, 4} {
		if merged.PhotoIDs[i] != want {
			t.Fatalf("expected chronological ids [1 2 3 4], got %v", merged.PhotoIDs)
		}
	}
	if len(merged.Devices) != 2 || merged.Devices[0].Model != "Apple iPhone 15" || merged.Devices[0].Count != 3 {
		t.Errorf("devices should aggregate across groups, got %+v", merged.Devices)
	}
}

func TestEditor_MergeNoPhotos(t *testing.T) {
	_, err := newTestEditor().Merge([][]PhotoPoint{nil, {}})
	if !errors.Is(err, ErrNoPhotos) {
		t.Errorf("expected ErrNoPhotos, got %v", err)
	}
}
