package content

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/inkwell-press/inkwell/internal/markdown"
	"github.com/inkwell-press/inkwell/internal/model"
)

const wordsPerMinute = 200

// Store loads posts from `<contentPath>/posts`.
type Store struct {
	parser      *markdown.Parser
	contentPath string
}

func NewStore(contentPath string) *Store {
	return &Store{
		parser:      markdown.NewParser(),
		contentPath: contentPath,
	}
}

// Load reads every Markdown post under the content directory, renders
// it and returns the full corpus, drafts included. Callers decide what
// to publish. A missing posts directory yields an empty corpus.
func (s *Store) Load() (*Corpus, error) {
	pattern := filepath.Join(s.contentPath, "posts", "*.md")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	corpus := &Corpus{}
	for _, file := range files {
		post, err := s.loadPost(file)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", file, err)
		}
		corpus.Posts = append(corpus.Posts, post)
	}

	// Newest first; slug tiebreak keeps ordering deterministic when two
	// posts share a date.
	sort.SliceStable(corpus.Posts, func(i, j int) bool {
		a, b := corpus.Posts[i], corpus.Posts[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.Slug < b.Slug
	})

	return corpus, nil
}

func (s *Store) loadPost(path string) (*model.Post, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Path: path,
		Slug: strings.TrimSuffix(filepath.Base(path), ".md"),
		Body: source,
	}

	var meta frontMatter
	htmlContent, err := s.parser.ParseWithFrontmatter(source, &meta)
	if err != nil {
		return nil, err
	}
	post.HTML = template.HTML(htmlContent)

	err = meta.apply(post)
	if err != nil {
		return nil, err
	}

	post.ReadTime = readTime(string(source))
	return post, nil
}

func readTime(content string) int {
	minutes := len(strings.Fields(content)) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// Corpus is a loaded set of posts in publication order (newest first).
type Corpus struct {
	Posts []*model.Post
}

// Published returns the posts that belong in build output.
func (c *Corpus) Published(now time.Time) []*model.Post {
	var posts []*model.Post
	for _, post := range c.Posts {
		if post.Published(now) {
			posts = append(posts, post)
		}
	}
	return posts
}

func (c *Corpus) BySlug(slug string) *model.Post {
	for _, post := range c.Posts {
		if post.Slug == slug {
			return post
		}
	}
	return nil
}

func (c *Corpus) ByTag(tag string) []*model.Post {
	var posts []*model.Post
	for _, post := range c.Posts {
		for _, postTag := range post.Tags {
			if strings.EqualFold(postTag, tag) {
				posts = append(posts, post)
				break
			}
		}
	}
	return posts
}

// Tags returns every tag in the corpus, sorted, deduplicated
// case-insensitively with the first-seen spelling preserved.
func (c *Corpus) Tags() []string {
	seen := map[string]string{}
	for _, post := range c.Posts {
		for _, tag := range post.Tags {
			key := strings.ToLower(tag)
			if _, ok := seen[key]; !ok {
				seen[key] = tag
			}
		}
	}

	tags := make([]string, 0, len(seen))
	for _, tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Slugify turns a title into a URL-safe slug: lowercase, runs of
// non-alphanumerics collapsed to single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
