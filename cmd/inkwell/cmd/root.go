// Package cmd wires the inkwell command surface: build, serve, check,
// new, deploy and announce.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/inkwell-press/inkwell/internal/build"
	"github.com/inkwell-press/inkwell/internal/config"
	"github.com/inkwell-press/inkwell/internal/logger"
	"github.com/inkwell-press/inkwell/internal/manifest"
	"github.com/inkwell-press/inkwell/internal/model"
)

var cfg *config.Config

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "inkwell",
		Short: "Publish a directory of Markdown posts as a static site",
		Long: `Inkwell loads Markdown posts with YAML front matter (title, date,
excerpt) from the content directory, validates them, and renders a
static site with an index, tag pages, an RSS feed and a sitemap.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)
		},
		SilenceUsage: true,
	}

	root.AddCommand(buildCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(checkCmd())
	root.AddCommand(newCmd())
	root.AddCommand(deployCmd())
	root.AddCommand(announceCmd())
	root.AddCommand(subscribeCmd())

	return root
}

func Execute() {
	err := rootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func site() model.Site {
	return model.Site{
		Title:   cfg.SiteTitle,
		Tagline: cfg.SiteTagline,
		BaseURL: cfg.SiteURL,
		Author:  cfg.SiteAuthor,
	}
}

func newBuilder(includeDrafts, incremental bool, m *manifest.Store) *build.Builder {
	return build.New(build.Options{
		Site:          site(),
		ContentPath:   cfg.ContentPath,
		LayoutsPath:   cfg.LayoutsPath,
		StaticPath:    cfg.StaticPath,
		OutputPath:    cfg.OutputPath,
		IncludeDrafts: includeDrafts,
		Incremental:   incremental,
		Manifest:      m,
	})
}
