// Package timeline partitions timestamped photos into suggested events using
// density-based clustering over capture times. The package is pure in-memory
// computation: callers fetch photos, run detection, and persist whichever
// suggestions the user accepts.
package timeline

import (
	"sort"
	"time"
)

// EventType classifies an event suggestion.
type EventType string

const (
	EventPrep       EventType = "prep"
	EventCeremony   EventType = "ceremony"
	EventCocktails  EventType = "cocktails"
	EventDinner     EventType = "dinner"
	EventFirstDance EventType = "first_dance"
	EventParty      EventType = "party"
	EventUnknown    EventType = "unknown"
)

// PhotoPoint is the clustering input unit: one photo with a known capture
// time. Photos without a capture time must be filtered out by the caller.
type PhotoPoint struct {
	ID          int64
	CapturedAt  time.Time
	DeviceMake  string
	DeviceModel string
}

// Params control density-based clustering.
type Params struct {
	EpsilonMinutes float64 // max gap between density-connected neighbors
	MinPoints      int     // minimum run size to count as a cluster
}

// RawCluster is an unclassified group of time-adjacent photos, time-ascending.
type RawCluster struct {
	Photos []PhotoPoint
}

// DeviceCount is one entry of an event's device breakdown.
type DeviceCount struct {
	Model string `json:"model"`
	Count int    `json:"count"`
}

// EventSuggestion is a RawCluster enriched with naming, classification,
// confidence and presentation metadata.
type EventSuggestion struct {
	Name            string        `json:"name"`
	EventType       EventType     `json:"event_type"`
	StartTime       time.Time     `json:"start_time"`
	EndTime         time.Time     `json:"end_time"`
	DurationMinutes int           `json:"duration_minutes"`
	PhotoCount      int           `json:"photo_count"`
	PhotoIDs        []int64       `json:"photo_ids"`
	PhotoDensity    float64       `json:"photo_density"` // photos per hour
	Devices         []DeviceCount `json:"devices"`
	SuggestedColor  string        `json:"suggested_color"`
	Confidence      float64       `json:"confidence"`
}

// sortPoints returns a time-ascending copy of points. The sort is stable so
// photos sharing a capture time keep their original relative order.
func sortPoints(points []PhotoPoint) []PhotoPoint {
	sorted := make([]PhotoPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CapturedAt.Before(sorted[j].CapturedAt)
	})
	return sorted
}
