// Package build renders a post corpus into a static site: one page per
// post, an index, per-tag listings, an RSS feed, a sitemap and
// robots.txt, plus a verbatim copy of the static directory.
package build

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/inkwell-press/inkwell/internal/content"
	"github.com/inkwell-press/inkwell/internal/manifest"
	"github.com/inkwell-press/inkwell/internal/model"
	"github.com/inkwell-press/inkwell/internal/validation"
)

type Options struct {
	Site        model.Site
	ContentPath string
	LayoutsPath string
	StaticPath  string
	OutputPath  string

	// IncludeDrafts renders draft and future-dated posts; the preview
	// server turns this on.
	IncludeDrafts bool
	// Incremental consults the manifest and skips unchanged posts.
	Incremental bool

	// Manifest is optional; without it every build is full.
	Manifest *manifest.Store
}

type Result struct {
	BuildID  string
	Pages    int
	Skipped  int
	Removed  int
	Duration time.Duration
	Report   *validation.Report
}

type Builder struct {
	opts    Options
	store   *content.Store
	checker *validation.Checker
}

func New(opts Options) *Builder {
	return &Builder{
		opts:    opts,
		store:   content.NewStore(opts.ContentPath),
		checker: validation.NewChecker(opts.StaticPath),
	}
}

// Build runs the full pipeline. Validation errors abort before any
// file is written; the failed Report travels back inside Result.
func (b *Builder) Build() (*Result, error) {
	started := time.Now()
	result := &Result{}

	corpus, err := b.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	result.Report = b.checker.Check(corpus)
	err = result.Report.Err()
	if err != nil {
		return result, err
	}
	for _, issue := range result.Report.Issues {
		slog.Warn("content issue", "path", issue.Path, "field", issue.Field, "message", issue.Message)
	}

	layouts, err := loadLayouts(b.opts.LayoutsPath)
	if err != nil {
		return nil, fmt.Errorf("load layouts: %w", err)
	}

	posts := corpus.Published(time.Now())
	if b.opts.IncludeDrafts {
		posts = corpus.Posts
	}

	err = os.MkdirAll(b.opts.OutputPath, 0755)
	if err != nil {
		return nil, err
	}

	err = b.cleanStale(posts, result)
	if err != nil {
		return nil, fmt.Errorf("clean output: %w", err)
	}

	if b.opts.Manifest != nil {
		result.BuildID, err = b.opts.Manifest.BeginBuild(b.opts.Incremental)
		if err != nil {
			return nil, fmt.Errorf("begin build: %w", err)
		}
	}

	err = b.renderPosts(layouts, posts, result)
	if err != nil {
		return nil, err
	}

	err = b.renderListings(layouts, posts, result)
	if err != nil {
		return nil, err
	}

	err = b.writeFeeds(posts, result)
	if err != nil {
		return nil, err
	}

	err = copyDir(b.opts.StaticPath, b.opts.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("copy static: %w", err)
	}

	err = b.writeRobots()
	if err != nil {
		return nil, err
	}

	if b.opts.Manifest != nil {
		err = b.opts.Manifest.FinishBuild(result.BuildID, result.Pages)
		if err != nil {
			return nil, fmt.Errorf("finish build: %w", err)
		}
	}

	result.Duration = time.Since(started)
	slog.Info("site built",
		"pages", result.Pages,
		"skipped", result.Skipped,
		"removed", result.Removed,
		"output", b.opts.OutputPath,
		"duration", result.Duration.Round(time.Millisecond),
	)
	return result, nil
}

// cleanStale removes post and tag pages left over from earlier builds
// into the same directory: deleted posts, renamed slugs, and drafts a
// preview build rendered. Without it those pages survive a
// published-only rebuild and end up deployed.
func (b *Builder) cleanStale(posts []*model.Post, result *Result) error {
	keep := map[string]struct{}{}
	for _, post := range posts {
		keep[post.Slug] = struct{}{}
	}
	removed, err := removeUnknownDirs(filepath.Join(b.opts.OutputPath, "posts"), keep)
	if err != nil {
		return err
	}
	result.Removed += removed

	tags := map[string]struct{}{}
	for _, tag := range tagsOf(posts) {
		tags[content.Slugify(tag)] = struct{}{}
	}
	removed, err = removeUnknownDirs(filepath.Join(b.opts.OutputPath, "tags"), tags)
	if err != nil {
		return err
	}
	result.Removed += removed
	return nil
}

func removeUnknownDirs(dir string, keep map[string]struct{}) (int, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if _, ok := keep[entry.Name()]; ok {
			continue
		}
		err = os.RemoveAll(filepath.Join(dir, entry.Name()))
		if err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// pageData is what every layout template receives.
type pageData struct {
	Site  model.Site
	Title string
	Post  *model.Post
	Posts []*model.Post
	Tag   string
	Now   time.Time
}

func (b *Builder) renderPosts(layouts *layoutSet, posts []*model.Post, result *Result) error {
	for _, post := range posts {
		outPath := filepath.Join(b.opts.OutputPath, "posts", post.Slug, "index.html")
		checksum := manifest.Checksum(post.Body)

		if b.skippable(post, checksum, outPath) {
			result.Skipped++
			err := b.recordPage(result.BuildID, post.Path, outPath, checksum, false)
			if err != nil {
				return err
			}
			continue
		}

		data := pageData{
			Site:  b.opts.Site,
			Title: post.Title,
			Post:  post,
			Now:   time.Now(),
		}
		err := b.renderPage(layouts, "post.html", outPath, data)
		if err != nil {
			return fmt.Errorf("render %s: %w", post.Slug, err)
		}
		result.Pages++

		err = b.recordPage(result.BuildID, post.Path, outPath, checksum, true)
		if err != nil {
			return err
		}
	}
	return nil
}

// skippable: incremental mode skips a post when its source checksum
// matches the last finished build and the output file still exists.
func (b *Builder) skippable(post *model.Post, checksum, outPath string) bool {
	if !b.opts.Incremental || b.opts.Manifest == nil {
		return false
	}
	last, err := b.opts.Manifest.LastChecksum(post.Path)
	if err != nil || last == "" || last != checksum {
		return false
	}
	_, err = os.Stat(outPath)
	return err == nil
}

func (b *Builder) recordPage(buildID, source, output, checksum string, rendered bool) error {
	if b.opts.Manifest == nil {
		return nil
	}
	return b.opts.Manifest.RecordPage(manifest.Page{
		BuildID:    buildID,
		SourcePath: source,
		OutputPath: output,
		Checksum:   checksum,
		Rendered:   rendered,
	})
}

// renderListings writes the index and one listing per tag. Listings
// are cheap and depend on the whole corpus, so they always rebuild.
func (b *Builder) renderListings(layouts *layoutSet, posts []*model.Post, result *Result) error {
	data := pageData{
		Site:  b.opts.Site,
		Posts: posts,
		Now:   time.Now(),
	}
	err := b.renderPage(layouts, "index.html", filepath.Join(b.opts.OutputPath, "index.html"), data)
	if err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	result.Pages++

	for _, tag := range tagsOf(posts) {
		tagged := postsWithTag(posts, tag)
		data := pageData{
			Site:  b.opts.Site,
			Title: titleCaser.String(tag),
			Posts: tagged,
			Tag:   tag,
			Now:   time.Now(),
		}
		outPath := filepath.Join(b.opts.OutputPath, "tags", content.Slugify(tag), "index.html")
		err := b.renderPage(layouts, "tag.html", outPath, data)
		if err != nil {
			return fmt.Errorf("render tag %s: %w", tag, err)
		}
		result.Pages++
	}
	return nil
}

func (b *Builder) renderPage(layouts *layoutSet, kind, outPath string, data pageData) error {
	t, ok := layouts.kinds[kind]
	if !ok {
		return fmt.Errorf("no layout for %s", kind)
	}

	var buf bytes.Buffer
	err := t.ExecuteTemplate(&buf, "base.html", data)
	if err != nil {
		return err
	}
	return writeFile(outPath, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func tagsOf(posts []*model.Post) []string {
	corpus := &content.Corpus{Posts: posts}
	return corpus.Tags()
}

func postsWithTag(posts []*model.Post, tag string) []*model.Post {
	corpus := &content.Corpus{Posts: posts}
	return corpus.ByTag(tag)
}
