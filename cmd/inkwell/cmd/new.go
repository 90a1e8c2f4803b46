package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkwell-press/inkwell/internal/content"
)

func newCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <title>",
		Short: "Scaffold a post file with a front-matter skeleton",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			slug := content.Slugify(title)
			if slug == "" {
				return fmt.Errorf("title %q produces an empty slug", title)
			}

			path := filepath.Join(cfg.ContentPath, "posts", slug+".md")
			_, err := os.Stat(path)
			if err == nil {
				return fmt.Errorf("%s already exists", path)
			}

			err = os.MkdirAll(filepath.Dir(path), 0755)
			if err != nil {
				return err
			}

			skeleton := fmt.Sprintf(`---
title: %q
date: %s
excerpt: ""
draft: true
---

Write here.
`, title, time.Now().Format("2006-01-02"))

			err = os.WriteFile(path, []byte(skeleton), 0644)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
			return nil
		},
	}
}
