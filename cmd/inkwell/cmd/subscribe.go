package cmd

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inkwell-press/inkwell/internal/notify"
)

func subscribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subscribe <email>",
		Short: "Add an address to the newsletter audience",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := strings.TrimSpace(strings.ToLower(args[0]))
			_, err := mail.ParseAddress(email)
			if err != nil {
				return fmt.Errorf("invalid email address %q", args[0])
			}

			announcer := notify.NewAnnouncer(
				cfg.ResendAPIKey,
				cfg.EmailFrom,
				cfg.ResendAudienceID,
				cfg.AnnounceTo,
				site(),
				cfg.IsDevelopment(),
			)

			err = announcer.Subscribe(email)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "subscribed %s\n", email)
			return nil
		},
	}
}
