package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkwell-press/inkwell/internal/db"
	"github.com/inkwell-press/inkwell/internal/manifest"
)

func buildCmd() *cobra.Command {
	var incremental bool
	var drafts bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the site into the output directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closer, err := openManifest()
			if err != nil {
				return err
			}
			defer closer()

			builder := newBuilder(drafts, incremental, store)
			result, err := builder.Build()
			if err != nil {
				printReport(cmd, result)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "built %d page(s), skipped %d, in %s\n",
				result.Pages, result.Skipped, result.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().BoolVar(&incremental, "incremental", false, "skip posts whose source is unchanged since the last build")
	cmd.Flags().BoolVar(&drafts, "drafts", false, "include draft and future-dated posts")
	return cmd
}

// openManifest connects to the build-manifest database. The manifest
// is best-effort: when the database cannot be opened the build still
// runs, it just cannot be incremental.
func openManifest() (*manifest.Store, func(), error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		slog.Warn("manifest database unavailable, building without it", "error", err)
		return nil, func() {}, nil
	}

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		db.Close(database)
		return nil, func() {}, fmt.Errorf("manifest migrations: %w", err)
	}

	return manifest.NewStore(database), func() { db.Close(database) }, nil
}
