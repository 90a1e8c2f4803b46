package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-press/inkwell/internal/build"
	"github.com/inkwell-press/inkwell/internal/content"
	"github.com/inkwell-press/inkwell/internal/validation"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate front matter, slugs and links without building",
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := content.NewStore(cfg.ContentPath).Load()
			if err != nil {
				return err
			}

			report := validation.NewChecker(cfg.StaticPath).Check(corpus)
			for _, issue := range report.Issues {
				fmt.Fprintln(cmd.OutOrStdout(), issue)
			}

			err = report.Err()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d post(s) ok\n", len(corpus.Posts))
			return nil
		},
	}
}

func printReport(cmd *cobra.Command, result *build.Result) {
	if result == nil || result.Report == nil {
		return
	}
	for _, issue := range result.Report.Issues {
		fmt.Fprintln(cmd.OutOrStdout(), issue)
	}
}
