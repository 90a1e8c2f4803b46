package build

import (
	"encoding/xml"
	"time"

	"github.com/inkwell-press/inkwell/internal/content"
	"github.com/inkwell-press/inkwell/internal/model"
)

// maxFeedItems caps the RSS feed at the newest posts; readers that
// want history have the index.
const maxFeedItems = 20

func (b *Builder) writeFeeds(posts []*model.Post, result *Result) error {
	feed := buildFeed(b.opts.Site, posts)
	err := writeXML(b.outputFile("feed.xml"), feed)
	if err != nil {
		return err
	}

	sitemap := buildSitemap(b.opts.Site, posts)
	err = writeXML(b.outputFile("sitemap.xml"), sitemap)
	if err != nil {
		return err
	}

	result.Pages += 2
	return nil
}

func buildFeed(site model.Site, posts []*model.Post) model.RSS {
	items := make([]model.FeedItem, 0, maxFeedItems)
	for _, post := range posts {
		if len(items) == maxFeedItems {
			break
		}
		link := site.AbsoluteURL(post.PermalinkPath())
		items = append(items, model.FeedItem{
			Title:       post.Title,
			Link:        link,
			Description: post.Excerpt,
			GUID:        link,
			PubDate:     post.Date.Format(time.RFC1123Z),
		})
	}

	return model.RSS{
		Version: "2.0",
		Channel: model.FeedChannel{
			Title:       site.Title,
			Link:        site.AbsoluteURL("/"),
			Description: site.Tagline,
			Items:       items,
		},
	}
}

func buildSitemap(site model.Site, posts []*model.Post) model.Sitemap {
	today := time.Now().Format("2006-01-02")
	urls := []model.SitemapURL{{
		Loc:        site.AbsoluteURL("/"),
		LastMod:    today,
		ChangeFreq: "daily",
		Priority:   "1.0",
	}}

	for _, post := range posts {
		lastMod := today
		if !post.Date.IsZero() {
			lastMod = post.Date.Format("2006-01-02")
		}
		urls = append(urls, model.SitemapURL{
			Loc:        site.AbsoluteURL(post.PermalinkPath()),
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}

	for _, tag := range tagsOf(posts) {
		urls = append(urls, model.SitemapURL{
			Loc:        site.AbsoluteURL("/tags/" + content.Slugify(tag) + "/"),
			LastMod:    today,
			ChangeFreq: "weekly",
			Priority:   "0.5",
		})
	}

	return model.Sitemap{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
}

func writeXML(path string, doc any) error {
	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, append([]byte(xml.Header), output...))
}
