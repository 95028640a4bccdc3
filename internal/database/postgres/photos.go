package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/kozaktomas/photo-events/internal/database"
)

// PhotoRepository provides PostgreSQL-backed photo storage.
type PhotoRepository struct {
	pool *Pool
}

// NewPhotoRepository creates a new PhotoRepository.
func NewPhotoRepository(pool *Pool) *PhotoRepository {
	return &PhotoRepository{pool: pool}
}

// ListWithCaptureTime returns all photos with a known capture time,
// chronologically ascending.
func (r *PhotoRepository) ListWithCaptureTime(ctx context.Context) ([]database.StoredPhoto, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, captured_at, COALESCE(device_make, ''), COALESCE(device_model, ''),
			COALESCE(event_id::text, ''), created_at
		 FROM photos
		 WHERE captured_at IS NOT NULL
		 ORDER BY captured_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	var photos []database.StoredPhoto
	for rows.Next() {
		var p database.StoredPhoto
		if err := rows.Scan(&p.ID, &p.CapturedAt, &p.DeviceMake, &p.DeviceModel, &p.EventID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate photos: %w", err)
	}
	return photos, nil
}

// InsertPhotos stores photos in one transaction, keeping explicit ids when
// set so seeded datasets stay reproducible.
func (r *PhotoRepository) InsertPhotos(ctx context.Context, photos []database.StoredPhoto) error {
	if len(photos) == 0 {
		return nil
	}

	tx, err := r.pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range photos {
		var err error
		if p.ID != 0 {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO photos (id, captured_at, device_make, device_model)
				 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
				 ON CONFLICT (id) DO NOTHING`,
				p.ID, p.CapturedAt, p.DeviceMake, p.DeviceModel)
		} else {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO photos (captured_at, device_make, device_model)
				 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))`,
				p.CapturedAt, p.DeviceMake, p.DeviceModel)
		}
		if err != nil {
			return fmt.Errorf("insert photo: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit photos: %w", err)
	}
	return nil
}

// AssignEvent sets the event id on every listed photo in a single statement.
func (r *PhotoRepository) AssignEvent(ctx context.Context, eventID string, photoIDs []int64) error {
	if len(photoIDs) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx,
		`UPDATE photos SET event_id = $1 WHERE id = ANY($2)`,
		eventID, pq.Array(photoIDs))
	if err != nil {
		return fmt.Errorf("assign photos to event %s: %w", eventID, err)
	}
	return nil
}

// CountByEvent returns the number of photos assigned to an event.
func (r *PhotoRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM photos WHERE event_id = $1`, eventID).Scan(&count)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("count photos for event %s: %w", eventID, err)
	}
	return count, nil
}

var _ database.PhotoWriter = (*PhotoRepository)(nil)
