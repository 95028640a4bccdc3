// Package database defines the storage interfaces the detection engine's
// callers depend on, plus the shared row types. Driver-specific
// implementations live in the postgres and photoprism subpackages.
package database

import (
	"context"

	"github.com/kozaktomas/photo-events/internal/timeline"
)

// PhotoReader provides read access to photos with a known capture time,
// ordered chronologically. Photos without a capture time are never returned;
// filtering them is the reader's responsibility, not the engine's.
type PhotoReader interface {
	ListWithCaptureTime(ctx context.Context) ([]StoredPhoto, error)
}

// PhotoWriter provides write access to the photo store.
type PhotoWriter interface {
	PhotoReader

	// InsertPhotos stores photos, keeping their ids when non-zero.
	InsertPhotos(ctx context.Context, photos []StoredPhoto) error

	// AssignEvent sets the event id on every listed photo.
	AssignEvent(ctx context.Context, eventID string, photoIDs []int64) error
}

// EventStore persists accepted event suggestions.
type EventStore interface {
	CreateEvent(ctx context.Context, event *StoredEvent) error
	ListEvents(ctx context.Context) ([]StoredEvent, error)
	DeleteEvent(ctx context.Context, id string) error
}

// PhotoPoints converts stored photos to the engine's input unit.
func PhotoPoints(photos []StoredPhoto) []timeline.PhotoPoint {
	points := make([]timeline.PhotoPoint, len(photos))
	for i, p := range photos {
		points[i] = timeline.PhotoPoint{
			ID:          p.ID,
			CapturedAt:  p.CapturedAt,
			DeviceMake:  p.DeviceMake,
			DeviceModel: p.DeviceModel,
		}
	}
	return points
}
