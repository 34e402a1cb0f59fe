package main

import (
	"database/sql"
	"delivery-emissions-service/internal/adapters/cache"
	"delivery-emissions-service/internal/config"
	"delivery-emissions-service/internal/platform/db"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var databaseURL string

	root := &cobra.Command{
		Use:          "dbtool",
		Short:        "Manage the Postgres geocode and route cache tables",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&databaseURL, "database-url", config.Get("DATABASE_URL", ""),
		"Postgres connection string (default $DATABASE_URL)")

	open := func(cmd *cobra.Command) (*sql.DB, error) {
		if databaseURL == "" {
			return nil, errors.New("DATABASE_URL is required")
		}
		return db.Open(cmd.Context(), databaseURL)
	}

	root.AddCommand(
		newMigrateCmd(open),
		newSeedCmd(open),
		newPurgeCmd(open),
	)
	return root
}

type opener func(cmd *cobra.Command) (*sql.DB, error)

func newMigrateCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create cache tables if they do not exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := open(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := cache.InitSchema(cmd.Context(), conn); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}
			cmd.Println("Schema ready.")
			return nil
		},
	}
}

func newSeedCmd(open opener) *cobra.Command {
	var seedPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Pre-load known place coordinates into the geocode cache",
		Example: `  dbtool seed
  dbtool seed --file data/seeds/places.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Validate the file before touching the database.
			if _, err := cache.LoadPlaceSeeds(seedPath); err != nil {
				return err
			}

			conn, err := open(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := cache.InitSchema(cmd.Context(), conn); err != nil {
				return fmt.Errorf("schema initialization failed: %w", err)
			}
			n, err := cache.SeedFromJSON(cmd.Context(), conn, seedPath)
			if err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}
			cmd.Printf("Seeded %d places.\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&seedPath, "file", config.Get("SEED_PATH", "data/seeds/places.json"), "JSON seed file")
	return cmd
}

func newPurgeCmd(open opener) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete cache rows older than a given age",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if olderThan < 0 {
				return fmt.Errorf("--older-than must not be negative, got %s", olderThan)
			}

			conn, err := open(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			geocodes, routes, err := cache.Purge(cmd.Context(), conn, olderThan)
			if err != nil {
				return err
			}
			cmd.Printf("Purged %d geocodes and %d routes.\n", geocodes, routes)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "Minimum age of rows to delete (0 purges everything)")
	return cmd
}
