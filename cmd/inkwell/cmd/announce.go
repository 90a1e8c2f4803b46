package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkwell-press/inkwell/internal/content"
	"github.com/inkwell-press/inkwell/internal/notify"
)

func announceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "announce <slug>",
		Short: "Email the newsletter about a published post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := args[0]

			corpus, err := content.NewStore(cfg.ContentPath).Load()
			if err != nil {
				return err
			}

			post := corpus.BySlug(slug)
			if post == nil {
				return fmt.Errorf("no post with slug %q", slug)
			}
			if !post.Published(time.Now()) {
				return fmt.Errorf("post %q is not published", slug)
			}

			announcer := notify.NewAnnouncer(
				cfg.ResendAPIKey,
				cfg.EmailFrom,
				cfg.ResendAudienceID,
				cfg.AnnounceTo,
				site(),
				cfg.IsDevelopment(),
			)

			err = announcer.Announce(cmd.Context(), post)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "announced %q\n", slug)
			return nil
		},
	}
}
