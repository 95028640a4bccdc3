// Package mock provides in-memory repository implementations for tests.
package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/kozaktomas/photo-events/internal/database"
)

// PhotoStore is an in-memory database.PhotoWriter.
type PhotoStore struct {
	mu     sync.RWMutex
	photos map[int64]database.StoredPhoto
	nextID int64
}

// NewPhotoStore creates an empty photo store.
func NewPhotoStore() *PhotoStore {
	return &PhotoStore{photos: make(map[int64]database.StoredPhoto), nextID: 1}
}

// ListWithCaptureTime returns photos with a capture time, chronologically.
func (s *PhotoStore) ListWithCaptureTime(ctx context.Context) ([]database.StoredPhoto, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var photos []database.StoredPhoto
	for _, p := range s.photos {
		if !p.CapturedAt.IsZero() {
			photos = append(photos, p)
		}
	}
	sort.Slice(photos, func(i, j int) bool {
		if !photos[i].CapturedAt.Equal(photos[j].CapturedAt) {
			return photos[i].CapturedAt.Before(photos[j].CapturedAt)
		}
		return photos[i].ID < photos[j].ID
	})
	return photos, nil
}

// InsertPhotos stores photos, assigning ids where missing.
func (s *PhotoStore) InsertPhotos(ctx context.Context, photos []database.StoredPhoto) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range photos {
		if p.ID == 0 {
			p.ID = s.nextID
		}
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
		s.photos[p.ID] = p
	}
	return nil
}

// AssignEvent sets the event id on every listed photo.
func (s *PhotoStore) AssignEvent(ctx context.Context, eventID string, photoIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range photoIDs {
		p, ok := s.photos[id]
		if !ok {
			return fmt.Errorf("photo %d not found", id)
		}
		p.EventID = eventID
		s.photos[id] = p
	}
	return nil
}

// Get returns a photo by id for test assertions.
func (s *PhotoStore) Get(id int64) (database.StoredPhoto, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.photos[id]
	return p, ok
}

// EventStore is an in-memory database.EventStore.
type EventStore struct {
	mu     sync.RWMutex
	events map[string]database.StoredEvent
}

// NewEventStore creates an empty event store.
func NewEventStore() *EventStore {
	return &EventStore{events: make(map[string]database.StoredEvent)}
}

// CreateEvent stores an event, generating a missing id.
func (s *EventStore) CreateEvent(ctx context.Context, event *database.StoredEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	s.events[event.ID] = *event
	return nil
}

// ListEvents returns all events sorted by start time.
func (s *EventStore) ListEvents(ctx context.Context) ([]database.StoredEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var events []database.StoredEvent
	for _, e := range s.events {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})
	return events, nil
}

// DeleteEvent removes an event.
func (s *EventStore) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return fmt.Errorf("event %s not found", id)
	}
	delete(s.events, id)
	return nil
}

var (
	_ database.PhotoWriter = (*PhotoStore)(nil)
	_ database.EventStore  = (*EventStore)(nil)
)
