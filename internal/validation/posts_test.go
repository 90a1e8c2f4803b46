package validation

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/content"
	"github.com/inkwell-press/inkwell/internal/model"
)

func post(slug string, date time.Time, body string) *model.Post {
	return &model.Post{
		Title:   "Title " + slug,
		Slug:    slug,
		Date:    date,
		Excerpt: "Excerpt.",
		Body:    []byte(body),
		Path:    "content/posts/" + slug + ".md",
	}
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func issuesByField(report *Report, field string) []Issue {
	var out []Issue
	for _, issue := range report.Issues {
		if issue.Field == field {
			out = append(out, issue)
		}
	}
	return out
}

func TestCheckCleanCorpus(t *testing.T) {
	corpus := &content.Corpus{Posts: []*model.Post{
		post("one", day(1), "Hello [site](https://example.com)."),
		post("two", day(2), "See [one](/posts/one/)."),
	}}

	report := NewChecker("").Check(corpus)
	assert.Empty(t, report.Issues)
	assert.NoError(t, report.Err())
}

func TestCheckMissingFrontMatterFields(t *testing.T) {
	p := post("incomplete", time.Time{}, "Body.")
	p.Title = ""
	p.Excerpt = ""
	corpus := &content.Corpus{Posts: []*model.Post{p}}

	report := NewChecker("").Check(corpus)
	require.True(t, report.HasErrors())
	assert.ErrorIs(t, report.Err(), ErrContentInvalid)

	assert.Len(t, issuesByField(report, "title"), 1)
	assert.Len(t, issuesByField(report, "excerpt"), 1)
	assert.Len(t, issuesByField(report, "date"), 1)
}

func TestCheckSlugFormat(t *testing.T) {
	p := post("bad", day(1), "Body.")
	p.Slug = "Not A Slug"
	corpus := &content.Corpus{Posts: []*model.Post{p}}

	report := NewChecker("").Check(corpus)
	require.Len(t, issuesByField(report, "slug"), 1)
	assert.Equal(t, SeverityError, issuesByField(report, "slug")[0].Severity)
}

func TestCheckDuplicateSlug(t *testing.T) {
	a := post("same", day(1), "Body.")
	b := post("same", day(2), "Body.")
	b.Path = "content/posts/same-again.md"
	corpus := &content.Corpus{Posts: []*model.Post{a, b}}

	report := NewChecker("").Check(corpus)
	slugIssues := issuesByField(report, "slug")
	require.Len(t, slugIssues, 1)
	assert.Equal(t, SeverityError, slugIssues[0].Severity)
	assert.Contains(t, slugIssues[0].Message, "duplicate slug")
}

func TestCheckDuplicateDateIsWarning(t *testing.T) {
	corpus := &content.Corpus{Posts: []*model.Post{
		post("first", day(1), "Body."),
		post("second", day(1), "Body."),
	}}

	report := NewChecker("").Check(corpus)
	dateIssues := issuesByField(report, "date")
	require.Len(t, dateIssues, 1)
	assert.Equal(t, SeverityWarning, dateIssues[0].Severity)
	assert.NoError(t, report.Err())
}

func TestCheckDuplicateDateFlagsRightPost(t *testing.T) {
	// a duplicated date on posts that also share a slug must not get
	// pinned on whichever post a slug lookup happens to find
	a := post("same", day(1), "Body.")
	b := post("same", day(1), "Body.")
	b.Path = "content/posts/same-again.md"
	corpus := &content.Corpus{Posts: []*model.Post{a, b}}

	report := NewChecker("").Check(corpus)
	dateIssues := issuesByField(report, "date")
	require.Len(t, dateIssues, 1)
	assert.Equal(t, b.Path, dateIssues[0].Path)
}

func TestCheckDuplicateDateOrderIsStable(t *testing.T) {
	corpus := &content.Corpus{Posts: []*model.Post{
		post("day-one-a", day(1), "Body."),
		post("day-one-b", day(1), "Body."),
		post("day-two-a", day(2), "Body."),
		post("day-two-b", day(2), "Body."),
	}}

	dateSlugs := func() []string {
		var slugs []string
		for _, issue := range issuesByField(NewChecker("").Check(corpus), "date") {
			slugs = append(slugs, issue.Slug)
		}
		return slugs
	}

	first := dateSlugs()
	require.Equal(t, []string{"day-one-b", "day-two-b"}, first)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, dateSlugs())
	}
}

func TestCheckBrokenAndResolvedLinks(t *testing.T) {
	staticDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(staticDir, "img"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "img", "pic.png"), []byte("x"), 0644))

	corpus := &content.Corpus{Posts: []*model.Post{
		post("target", day(1), "Body."),
		post("linker", day(2), `Good: [post](/posts/target/), [asset](/img/pic.png),
[external](https://example.com), [anchor](#section).
Bad: [gone](/posts/missing/), [lost](/img/missing.png).`),
	}}

	report := NewChecker(staticDir).Check(corpus)
	linkIssues := issuesByField(report, "link")
	require.Len(t, linkIssues, 2)
	for _, issue := range linkIssues {
		assert.Equal(t, SeverityError, issue.Severity)
		assert.Contains(t, issue.Message, "broken link")
	}
}

func TestCheckLinksIgnoreCodeRegions(t *testing.T) {
	body := "Real: [gone](/posts/missing/).\n\n" +
		"```go\n// [not a link](/posts/also-missing/)\n```\n\n" +
		"Inline `[x](/posts/nope/)` span.\n"
	corpus := &content.Corpus{Posts: []*model.Post{post("coder", day(1), body)}}

	linkIssues := issuesByField(NewChecker("").Check(corpus), "link")
	require.Len(t, linkIssues, 1)
	assert.Contains(t, linkIssues[0].Message, "/posts/missing/")
}

func TestCheckLinksResolveFragmentsAndQueries(t *testing.T) {
	corpus := &content.Corpus{Posts: []*model.Post{
		post("target", day(1), "Body."),
		post("linker", day(2),
			"See [section](/posts/target/#notes) and [query](/posts/target/?ref=home).\n"+
				"Still bad: [gone](/posts/missing/#top)."),
	}}

	linkIssues := issuesByField(NewChecker("").Check(corpus), "link")
	require.Len(t, linkIssues, 1)
	assert.Contains(t, linkIssues[0].Message, "/posts/missing/#top")
}

func TestCheckDraftIssuesAreWarnings(t *testing.T) {
	p := post("draft", time.Time{}, "See [gone](/posts/missing/).")
	p.Draft = true
	corpus := &content.Corpus{Posts: []*model.Post{p}}

	report := NewChecker("").Check(corpus)
	require.NotEmpty(t, report.Issues)
	for _, issue := range report.Issues {
		assert.Equal(t, SeverityWarning, issue.Severity)
	}
	assert.NoError(t, report.Err())
}
