// Package photoprism reads photos straight from a PhotoPrism MariaDB
// database. Read-only: detection runs against an existing library without
// importing anything into the local store.
package photoprism

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/kozaktomas/photo-events/internal/database"
)

// PhotoSource reads capture times and camera metadata from a PhotoPrism
// database over a MariaDB connection.
type PhotoSource struct {
	db *sql.DB
}

// NewPhotoSource opens a read-only connection to the PhotoPrism database.
func NewPhotoSource(dsn string) (*PhotoSource, error) {
	if dsn == "" {
		return nil, errors.New("PhotoPrism MariaDB DSN is required")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MariaDB: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping MariaDB: %w", err)
	}

	return &PhotoSource{db: db}, nil
}

// Close closes the connection pool.
func (s *PhotoSource) Close() error {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("closing database connection: %w", err)
		}
	}
	return nil
}

// ListWithCaptureTime returns all non-deleted photos with a known capture
// time, chronologically ascending, joined with their camera metadata.
func (s *PhotoSource) ListWithCaptureTime(ctx context.Context) ([]database.StoredPhoto, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.taken_at,
			COALESCE(c.camera_make, ''), COALESCE(c.camera_model, ''),
			p.created_at
		FROM photos p
		LEFT JOIN cameras c ON c.id = p.camera_id
		WHERE p.taken_at IS NOT NULL
		  AND p.deleted_at IS NULL
		ORDER BY p.taken_at, p.id`)
	if err != nil {
		return nil, fmt.Errorf("list PhotoPrism photos: %w", err)
	}
	defer rows.Close()

	var photos []database.StoredPhoto
	for rows.Next() {
		var p database.StoredPhoto
		if err := rows.Scan(&p.ID, &p.CapturedAt, &p.DeviceMake, &p.DeviceModel, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan PhotoPrism photo: %w", err)
		}
		// PhotoPrism uses "Unknown" for missing camera metadata.
		if p.DeviceMake == "Unknown" {
			p.DeviceMake = ""
		}
		if p.DeviceModel == "Unknown" {
			p.DeviceModel = ""
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate PhotoPrism photos: %w", err)
	}
	return photos, nil
}

var _ database.PhotoReader = (*PhotoSource)(nil)
