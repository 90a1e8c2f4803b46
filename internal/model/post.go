package model

import (
	"html/template"
	"time"
)

// Post is a single Markdown document from the content directory.
// Body holds the raw Markdown source below the front matter; HTML is
// the rendered form and is only populated once the post has been
// through the markdown pipeline.
type Post struct {
	Title   string
	Slug    string
	Date    time.Time
	Excerpt string
	Author  string
	Tags    []string
	Draft   bool
	Body    []byte
	HTML    template.HTML
	// ReadTime is an estimate in whole minutes, never below 1.
	ReadTime int
	// Path is the source file the post was loaded from.
	Path string
	// Custom carries front-matter keys the publisher does not interpret.
	Custom map[string]any
}

// Published reports whether the post should appear in build output.
// Future-dated posts stay hidden until their date passes.
func (p *Post) Published(now time.Time) bool {
	return !p.Draft && !p.Date.IsZero() && !p.Date.After(now)
}

// PermalinkPath is the site-relative path of the rendered page.
func (p *Post) PermalinkPath() string {
	return "/posts/" + p.Slug + "/"
}
