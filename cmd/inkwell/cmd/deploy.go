package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwell-press/inkwell/internal/deploy"
	"github.com/inkwell-press/inkwell/internal/storage"
)

func deployCmd() *cobra.Command {
	var prune bool
	var skipBuild bool

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Build and sync the site to the configured S3 bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !skipBuild {
				builder := newBuilder(false, false, nil)
				_, err := builder.Build()
				if err != nil {
					return err
				}
			}

			target, err := storage.NewS3(cfg)
			if err != nil {
				return err
			}

			summary, err := deploy.New(target, prune).Sync(cmd.Context(), cfg.OutputPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %d, skipped %d, deleted %d\n",
				summary.Uploaded, summary.Skipped, summary.Deleted)
			return nil
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", true, "delete remote files that no longer exist locally")
	cmd.Flags().BoolVar(&skipBuild, "skip-build", false, "deploy the output directory as-is")
	return cmd
}
