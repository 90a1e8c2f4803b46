package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/inkwell-press/inkwell/internal/model"
)

// frontMatter is the typed envelope for a post's metadata block.
// Unrecognized keys land in Custom so layouts can still reach them.
type frontMatter struct {
	Title   string         `yaml:"title"`
	Date    string         `yaml:"date"`
	Excerpt string         `yaml:"excerpt"`
	Slug    string         `yaml:"slug"`
	Author  string         `yaml:"author"`
	Tags    []string       `yaml:"tags"`
	Draft   bool           `yaml:"draft"`
	Custom  map[string]any `yaml:",inline"`
}

// dateLayouts are accepted values for the date key. The plain calendar
// form is the publishing convention; the RFC 3339 forms cover YAML
// timestamp values round-tripped through other tools.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func (fm frontMatter) apply(post *model.Post) error {
	post.Title = strings.TrimSpace(fm.Title)
	post.Excerpt = strings.TrimSpace(fm.Excerpt)
	post.Author = strings.TrimSpace(fm.Author)
	post.Draft = fm.Draft

	if fm.Slug != "" {
		post.Slug = strings.ToLower(strings.TrimSpace(fm.Slug))
	}

	for _, tag := range fm.Tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			post.Tags = append(post.Tags, tag)
		}
	}

	if fm.Custom != nil {
		post.Custom = make(map[string]any, len(fm.Custom))
		for key, value := range fm.Custom {
			post.Custom[key] = value
		}
	}

	date, err := parseDate(fm.Date)
	if err != nil {
		return err
	}
	post.Date = date
	return nil
}
