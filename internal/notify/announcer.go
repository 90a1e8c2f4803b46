// Package notify sends newsletter announcements for newly published
// posts through Resend.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"

	"github.com/inkwell-press/inkwell/internal/model"
)

type Announcer struct {
	client     *resend.Client
	fromEmail  string
	audienceID string
	recipients []string
	site       model.Site
	isDev      bool
}

func NewAnnouncer(apiKey, fromEmail, audienceID string, recipients []string, site model.Site, isDev bool) *Announcer {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &Announcer{
		client:     client,
		fromEmail:  fromEmail,
		audienceID: audienceID,
		recipients: recipients,
		site:       site,
		isDev:      isDev,
	}
}

// Subscribe adds an address to the newsletter audience. Failures are
// swallowed after logging to prevent email enumeration.
func (a *Announcer) Subscribe(email string) error {
	if a.isDev {
		slog.Info("newsletter subscription (dev mode)", "email", email)
		return nil
	}

	if a.client == nil {
		return fmt.Errorf("announcer not configured (missing RESEND_API_KEY)")
	}

	if a.audienceID == "" {
		slog.Warn("newsletter subscription requested but no audience configured", "email", email)
		return nil
	}

	params := &resend.CreateContactRequest{
		Email:      email,
		AudienceId: a.audienceID,
	}

	_, err := a.client.Contacts.Create(params)
	if err != nil {
		slog.Warn("newsletter subscription failed", "error", err, "email", email)
		return nil
	}

	slog.Info("newsletter subscription successful", "email", email)
	return nil
}

// Announce emails the configured recipient list about a post. The
// recipients are typically one or more list addresses; announcements
// are always explicit, never triggered by deploy.
func (a *Announcer) Announce(ctx context.Context, post *model.Post) error {
	if post == nil {
		return fmt.Errorf("no post to announce")
	}

	subject, body := announcementTemplate(a.site, post)

	if a.isDev {
		slog.Info("announcement sent (dev mode)", "slug", post.Slug, "subject", subject, "to", a.recipients)
		return nil
	}

	if a.client == nil {
		return fmt.Errorf("announcer not configured (missing RESEND_API_KEY)")
	}

	if len(a.recipients) == 0 {
		return fmt.Errorf("no announcement recipients configured (set ANNOUNCE_TO)")
	}

	params := &resend.SendEmailRequest{
		From:    a.fromEmail,
		To:      a.recipients,
		Subject: subject,
		Text:    body,
	}

	_, err := a.client.Emails.SendWithContext(ctx, params)
	if err == nil {
		slog.Info("announcement sent", "slug", post.Slug, "to", a.recipients)
	}
	return err
}

func announcementTemplate(site model.Site, post *model.Post) (subject, body string) {
	subject = fmt.Sprintf("%s: %s", site.Title, post.Title)
	body = fmt.Sprintf(`%s

%s

Read the full post:
%s
`, post.Title, post.Excerpt, site.AbsoluteURL(post.PermalinkPath()))
	return subject, body
}
