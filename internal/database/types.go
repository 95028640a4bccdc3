package database

import (
	"time"
)

// StoredPhoto is a photo row as the repositories expose it. DeviceMake and
// DeviceModel are empty when the camera metadata is unknown; EventID is empty
// until the photo is assigned to an accepted event.
type StoredPhoto struct {
	ID          int64
	CapturedAt  time.Time
	DeviceMake  string
	DeviceModel string
	EventID     string
	CreatedAt   time.Time
}

// StoredEvent is a persisted event record created from an accepted
// suggestion.
type StoredEvent struct {
	ID              string
	Name            string
	EventType       string
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	PhotoCount      int
	PhotoDensity    float64
	Color           string
	Confidence      float64
	CreatedAt       time.Time
}
