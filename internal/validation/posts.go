// Package validation performs the content-integrity checks a post
// corpus must pass before publishing: front matter is complete and
// well-formed, slugs are unique, and relative links resolve.
package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/inkwell-press/inkwell/internal/content"
	"github.com/inkwell-press/inkwell/internal/model"
)

var (
	// ErrContentInvalid is returned by Report.Err when any check failed.
	ErrContentInvalid = errors.New("content validation failed")
	// ErrDuplicateSlug marks a post whose slug collides with an earlier one.
	ErrDuplicateSlug = errors.New("duplicate slug")
	// ErrBrokenLink marks a relative link with no matching post or asset.
	ErrBrokenLink = errors.New("broken link")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// markdownLink matches the target of inline Markdown links and images.
var markdownLink = regexp.MustCompile(`\]\(([^)\s]+)`)

// fencedCode and inlineCode mark regions the link checker must not
// scan; code samples are full of bracket-paren sequences.
var (
	fencedCode = regexp.MustCompile("(?ms)^ {0,3}(```+|~~~+).*?^ {0,3}(```+|~~~+) *$")
	inlineCode = regexp.MustCompile("`[^`\n]*`")
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type Issue struct {
	Path     string
	Slug     string
	Field    string
	Message  string
	Severity Severity
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: [%s] %s", i.Severity, i.Path, i.Field, i.Message)
}

type Report struct {
	Issues []Issue
}

func (r *Report) add(post *model.Post, field, message string, severity Severity) {
	r.Issues = append(r.Issues, Issue{
		Path:     post.Path,
		Slug:     post.Slug,
		Field:    field,
		Message:  message,
		Severity: severity,
	})
}

func (r *Report) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Err returns ErrContentInvalid when the report contains errors,
// nil otherwise. Warnings never fail a build.
func (r *Report) Err() error {
	if r.HasErrors() {
		return fmt.Errorf("%w: %d issue(s)", ErrContentInvalid, len(r.Issues))
	}
	return nil
}

// postRules are the per-post front-matter requirements.
type postRules struct {
	Title   string    `validate:"required"`
	Excerpt string    `validate:"required"`
	Slug    string    `validate:"required,slug"`
	Date    time.Time `validate:"required"`
}

var ruleMessages = map[string]string{
	"Title":   "title is required",
	"Excerpt": "excerpt is required",
	"Slug":    "slug must be lowercase letters, digits and hyphens",
	"Date":    "date is required (YYYY-MM-DD)",
}

type Checker struct {
	validate   *validator.Validate
	staticPath string
}

func NewChecker(staticPath string) *Checker {
	v := validator.New()
	// Always registered against a string field, so no error path.
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return &Checker{
		validate:   v,
		staticPath: staticPath,
	}
}

// Check validates the whole corpus, drafts included. Draft issues are
// downgraded to warnings so work in progress never blocks a build.
func (c *Checker) Check(corpus *content.Corpus) *Report {
	report := &Report{}

	slugs := map[string]string{}
	dates := map[string][]*model.Post{}
	for _, post := range corpus.Posts {
		c.checkFrontMatter(report, post)
		c.checkLinks(report, corpus, post)

		key := strings.ToLower(post.Slug)
		if first, ok := slugs[key]; ok {
			report.add(post, "slug",
				fmt.Sprintf("%v: %q already used by %s", ErrDuplicateSlug, post.Slug, first),
				severityFor(post))
		} else {
			slugs[key] = post.Path
		}

		if !post.Date.IsZero() {
			day := post.Date.Format("2006-01-02")
			dates[day] = append(dates[day], post)
		}
	}

	// Two posts on one day is legitimate; flag it so accidental copies
	// of a front-matter block get noticed.
	days := make([]string, 0, len(dates))
	for day := range dates {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		sameDay := dates[day]
		for _, post := range sameDay[1:] {
			report.add(post, "date",
				fmt.Sprintf("date %s shared with %s", day, sameDay[0].Slug),
				SeverityWarning)
		}
	}

	return report
}

func (c *Checker) checkFrontMatter(report *Report, post *model.Post) {
	rules := postRules{
		Title:   post.Title,
		Excerpt: post.Excerpt,
		Slug:    post.Slug,
		Date:    post.Date,
	}

	err := c.validate.Struct(rules)
	if err == nil {
		return
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		report.add(post, "front matter", err.Error(), SeverityError)
		return
	}

	for _, fieldErr := range fieldErrors {
		message, ok := ruleMessages[fieldErr.Field()]
		if !ok {
			message = fieldErr.Error()
		}
		report.add(post, strings.ToLower(fieldErr.Field()), message, severityFor(post))
	}
}

// checkLinks resolves relative Markdown link targets against known
// post permalinks and files in the static directory.
func (c *Checker) checkLinks(report *Report, corpus *content.Corpus, post *model.Post) {
	body := stripCode(string(post.Body))
	for _, match := range markdownLink.FindAllStringSubmatch(body, -1) {
		target := match[1]
		if !isRelative(target) {
			continue
		}

		target = trimLocator(target)
		target = strings.TrimSuffix(target, "/")
		if c.resolves(corpus, target) {
			continue
		}

		report.add(post, "link",
			fmt.Sprintf("%v: %q", ErrBrokenLink, match[1]),
			severityFor(post))
	}
}

func (c *Checker) resolves(corpus *content.Corpus, target string) bool {
	trimmed := strings.TrimPrefix(target, "/")
	if trimmed == "" {
		return true // site root
	}

	if slug, ok := strings.CutPrefix(trimmed, "posts/"); ok {
		return corpus.BySlug(slug) != nil
	}

	if c.staticPath != "" {
		_, err := os.Stat(filepath.Join(c.staticPath, filepath.FromSlash(trimmed)))
		if err == nil {
			return true
		}
	}
	return false
}

func stripCode(body string) string {
	body = fencedCode.ReplaceAllString(body, "")
	return inlineCode.ReplaceAllString(body, "")
}

// trimLocator drops a fragment or query suffix so /posts/one/#sec
// resolves against the page it points into.
func trimLocator(target string) string {
	if i := strings.IndexAny(target, "#?"); i >= 0 {
		return target[:i]
	}
	return target
}

func isRelative(target string) bool {
	if target == "" {
		return false
	}
	if strings.Contains(target, "://") {
		return false
	}
	switch {
	case strings.HasPrefix(target, "#"),
		strings.HasPrefix(target, "mailto:"),
		strings.HasPrefix(target, "tel:"),
		strings.HasPrefix(target, "//"):
		return false
	}
	return true
}

func severityFor(post *model.Post) Severity {
	if post.Draft {
		return SeverityWarning
	}
	return SeverityError
}
