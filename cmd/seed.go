package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-events/internal/config"
	"github.com/kozaktomas/photo-events/internal/database"
	"github.com/kozaktomas/photo-events/internal/database/postgres"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with a synthetic wedding day",
	Long: `Insert a deterministic synthetic photo timeline into PostgreSQL:
a full wedding day with preparation, ceremony, cocktail, dinner and party
bursts. Useful for trying out detection without a real photo library.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("date", "2024-06-15", "Day of the synthetic timeline (YYYY-MM-DD)")
}

// burst describes one block of the synthetic day.
type burst struct {
	start time.Duration // offset from midnight
	count int
	step  time.Duration
}

// weddingBursts covers the day: preparation, ceremony, cocktails, dinner
// and party, in that order.
var weddingBursts = []burst{
	{start: 9 * time.Hour, count: 8, step: 5 * time.Minute},
	{start: 14 * time.Hour, count: 80, step: 20 * time.Second},
	{start: 16*time.Hour + 30*time.Minute, count: 30, step: 2 * time.Minute},
	{start: 19 * time.Hour, count: 25, step: 3 * time.Minute},
	{start: 21*time.Hour + 30*time.Minute, count: 90, step: 1 * time.Minute},
}

var seedDevices = []struct {
	make  string
	model string
}{
	{"Canon", "EOS R5"},
	{"Sony", "A7 IV"},
	{"Apple", "iPhone 15 Pro"},
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := context.Background()

	dateStr, err := cmd.Flags().GetString("date")
	if err != nil {
		return fmt.Errorf("flag error for --date: %w", err)
	}
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid --date %q: %w", dateStr, err)
	}

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	photos := syntheticDay(day)

	bar := progressbar.NewOptions(len(photos),
		progressbar.OptionSetDescription("Seeding photos"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("photos"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	repo := postgres.NewPhotoRepository(pool)
	if err := repo.InsertPhotos(ctx, photos); err != nil {
		return fmt.Errorf("failed to insert photos: %w", err)
	}
	_ = bar.Add(len(photos))

	fmt.Printf("\nSeeded %d photos on %s\n", len(photos), day.Format("2006-01-02"))
	fmt.Println("Run 'photo-events detect' to cluster them")
	return nil
}

// syntheticDay builds the photo rows for the wedding day. Device metadata
// cycles through a fixed set so the device breakdown has something to show.
func syntheticDay(day time.Time) []database.StoredPhoto {
	var photos []database.StoredPhoto
	for _, b := range weddingBursts {
		for i := 0; i < b.count; i++ {
			device := seedDevices[len(photos)%len(seedDevices)]
			photos = append(photos, database.StoredPhoto{
				CapturedAt:  day.Add(b.start).Add(time.Duration(i) * b.step),
				DeviceMake:  device.make,
				DeviceModel: device.model,
			})
		}
	}
	return photos
}
