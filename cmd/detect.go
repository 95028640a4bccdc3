package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-events/internal/config"
	"github.com/kozaktomas/photo-events/internal/database"
	"github.com/kozaktomas/photo-events/internal/database/photoprism"
	"github.com/kozaktomas/photo-events/internal/database/postgres"
	"github.com/kozaktomas/photo-events/internal/timeline"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect events in the photo timeline",
	Long: `Detect events by clustering photo capture times.
Photos are read from the PhotoPrism database when PHOTOPRISM_DATABASE_URL
is set, otherwise from the local PostgreSQL store. Without --save the
suggestions are only printed.`,
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().Float64("epsilon", 0, "Max gap in minutes between photos of one event (0 = estimate)")
	detectCmd.Flags().Int("min-points", 0, "Minimum photos per event (0 = use MIN_POINTS, default 3)")
	detectCmd.Flags().Bool("save", false, "Persist the suggestions as events in PostgreSQL")
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := context.Background()

	epsilon := mustGetFloat64(cmd, "epsilon")
	minPoints := mustGetInt(cmd, "min-points")
	save := mustGetBool(cmd, "save")

	photos, err := loadPhotos(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d photos with capture times\n", len(photos))

	points := database.PhotoPoints(photos)
	opts := detectionOptions(cfg, epsilon, minPoints)

	if opts.EpsilonMinutes == nil {
		fmt.Printf("Estimated epsilon: %.1f minutes\n", timeline.SuggestEpsilon(points))
	}

	suggestions, err := timeline.NewDetector().AutoDetect(points, opts)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	printSuggestions(suggestions)

	if !save {
		return nil
	}
	return saveSuggestions(ctx, cfg, photos, suggestions)
}

// loadPhotos reads photos from PhotoPrism when a DSN is configured,
// otherwise from the local PostgreSQL store.
func loadPhotos(ctx context.Context, cfg *config.Config) ([]database.StoredPhoto, error) {
	if cfg.PhotoPrism.DatabaseURL != "" {
		fmt.Println("Reading photos from PhotoPrism...")
		source, err := photoprism.NewPhotoSource(cfg.PhotoPrism.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PhotoPrism database: %w", err)
		}
		defer source.Close()
		return source.ListWithCaptureTime(ctx)
	}

	fmt.Println("Reading photos from PostgreSQL...")
	pool, err := openPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer pool.Close()
	return postgres.NewPhotoRepository(pool).ListWithCaptureTime(ctx)
}

// detectionOptions merges flags with configured defaults. Zero flag values
// mean "not set".
func detectionOptions(cfg *config.Config, epsilon float64, minPoints int) timeline.Options {
	var opts timeline.Options
	switch {
	case epsilon != 0:
		opts.EpsilonMinutes = &epsilon
	case cfg.Detection.EpsilonMinutes > 0:
		eps := cfg.Detection.EpsilonMinutes
		opts.EpsilonMinutes = &eps
	}
	switch {
	case minPoints != 0:
		opts.MinPoints = &minPoints
	case cfg.Detection.MinPoints > 0:
		mp := cfg.Detection.MinPoints
		opts.MinPoints = &mp
	}
	return opts
}

func printSuggestions(suggestions []timeline.EventSuggestion) {
	if len(suggestions) == 0 {
		fmt.Println("\nNo events detected")
		return
	}

	fmt.Printf("\nDetected %d events:\n\n", len(suggestions))
	for _, s := range suggestions {
		fmt.Printf("  %s (%s, %.0f%% confidence)\n", s.Name, s.EventType, s.Confidence*100)
		fmt.Printf("    %s - %s (%d min)\n",
			s.StartTime.Format("15:04"), s.EndTime.Format("15:04"), s.DurationMinutes)
		fmt.Printf("    %d photos, %.1f photos/hour\n", s.PhotoCount, s.PhotoDensity)
		if len(s.Devices) > 0 {
			var devices []string
			for _, d := range s.Devices {
				devices = append(devices, fmt.Sprintf("%s (%d)", d.Model, d.Count))
			}
			fmt.Printf("    Devices: %s\n", strings.Join(devices, ", "))
		}
		fmt.Println()
	}
}

// saveSuggestions persists the suggestions as events and assigns their
// photos. Photos read from PhotoPrism are mirrored into the local store
// first, so assignment always targets local rows.
func saveSuggestions(ctx context.Context, cfg *config.Config, photos []database.StoredPhoto, suggestions []timeline.EventSuggestion) error {
	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	photoRepo := postgres.NewPhotoRepository(pool)
	eventRepo := postgres.NewEventRepository(pool)

	if cfg.PhotoPrism.DatabaseURL != "" {
		fmt.Println("Mirroring PhotoPrism photos into the local store...")
		if err := photoRepo.InsertPhotos(ctx, photos); err != nil {
			return fmt.Errorf("failed to mirror photos: %w", err)
		}
	}

	bar := progressbar.NewOptions(len(suggestions),
		progressbar.OptionSetDescription("Saving events"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("events"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	for _, s := range suggestions {
		event := &database.StoredEvent{
			Name:            s.Name,
			EventType:       string(s.EventType),
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			DurationMinutes: s.DurationMinutes,
			PhotoCount:      s.PhotoCount,
			PhotoDensity:    s.PhotoDensity,
			Color:           s.SuggestedColor,
			Confidence:      s.Confidence,
		}
		if err := eventRepo.CreateEvent(ctx, event); err != nil {
			return fmt.Errorf("failed to save event %q: %w", s.Name, err)
		}
		if err := photoRepo.AssignEvent(ctx, event.ID, s.PhotoIDs); err != nil {
			return fmt.Errorf("failed to assign photos to event %q: %w", s.Name, err)
		}
		_ = bar.Add(1)
	}

	fmt.Printf("\nSaved %d events\n", len(suggestions))
	return nil
}

// openPool connects to PostgreSQL and applies pending migrations.
func openPool(ctx context.Context, cfg *config.Config) (*postgres.Pool, error) {
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	pool, err := postgres.NewPool(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := pool.Migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return pool, nil
}
