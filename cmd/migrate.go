package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/photo-events/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long: `Apply pending PostgreSQL schema migrations.
Migrations also run automatically when detect, serve or seed connect to
the database; this command exists for running them explicitly.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	pool, err := openPool(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	fmt.Println("Database schema is up to date")
	return nil
}
