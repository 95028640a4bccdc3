package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "photo-events",
	Short: "A CLI tool for detecting events in photo timelines",
	Long: `Photo Events analyzes the capture times of a photo collection and
groups bursts of activity into suggested events (ceremony, dinner, party, ...)
using density-based clustering. Suggestions can be reviewed, split, merged
and accepted through the CLI or the web interface.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
