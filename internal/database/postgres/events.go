package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kozaktomas/photo-events/internal/database"
)

// EventRepository provides PostgreSQL-backed event storage.
type EventRepository struct {
	pool *Pool
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(pool *Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

// CreateEvent persists an accepted suggestion. A missing id is generated.
func (r *EventRepository) CreateEvent(ctx context.Context, event *database.StoredEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.CreatedAt = time.Now()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO events (id, name, event_type, start_time, end_time,
			duration_minutes, photo_count, photo_density, color, confidence, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		event.ID, event.Name, event.EventType, event.StartTime, event.EndTime,
		event.DurationMinutes, event.PhotoCount, event.PhotoDensity,
		event.Color, event.Confidence, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// ListEvents returns all events chronologically ascending.
func (r *EventRepository) ListEvents(ctx context.Context) ([]database.StoredEvent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, event_type, start_time, end_time, duration_minutes,
			photo_count, photo_density, color, confidence, created_at
		 FROM events ORDER BY start_time`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []database.StoredEvent
	for rows.Next() {
		var e database.StoredEvent
		if err := rows.Scan(&e.ID, &e.Name, &e.EventType, &e.StartTime, &e.EndTime,
			&e.DurationMinutes, &e.PhotoCount, &e.PhotoDensity, &e.Color,
			&e.Confidence, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// DeleteEvent removes an event; assigned photos fall back to unassigned via
// the ON DELETE SET NULL constraint.
func (r *EventRepository) DeleteEvent(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("event %s not found", id)
	}
	return nil
}

var _ database.EventStore = (*EventRepository)(nil)
