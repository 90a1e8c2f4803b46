package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePost(t *testing.T, dir, name, body string) {
	t.Helper()
	postsDir := filepath.Join(dir, "posts")
	require.NoError(t, os.MkdirAll(postsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(postsDir, name), []byte(body), 0644))
}

func TestLoadOrdersNewestFirst(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "older.md", `---
title: Older Post
date: 2024-01-02
excerpt: The older one.
---

Body.
`)
	writePost(t, dir, "newer.md", `---
title: Newer Post
date: 2024-03-04
excerpt: The newer one.
tags: [Testing, design]
---

Body with more words.
`)

	corpus, err := NewStore(dir).Load()
	require.NoError(t, err)
	require.Len(t, corpus.Posts, 2)

	assert.Equal(t, "newer", corpus.Posts[0].Slug)
	assert.Equal(t, "older", corpus.Posts[1].Slug)
	assert.Equal(t, "Newer Post", corpus.Posts[0].Title)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), corpus.Posts[0].Date)
	assert.Equal(t, []string{"Testing", "design"}, corpus.Posts[0].Tags)
	assert.Equal(t, 1, corpus.Posts[0].ReadTime)
	assert.Contains(t, string(corpus.Posts[0].HTML), "Body with more words.")
}

func TestLoadSameDateBreaksTiesBySlug(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"beta.md", "alpha.md"} {
		writePost(t, dir, name, `---
title: Post
date: 2024-01-01
excerpt: E.
---
B.
`)
	}

	corpus, err := NewStore(dir).Load()
	require.NoError(t, err)
	require.Len(t, corpus.Posts, 2)
	assert.Equal(t, "alpha", corpus.Posts[0].Slug)
	assert.Equal(t, "beta", corpus.Posts[1].Slug)
}

func TestLoadFrontMatterSlugOverride(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "2024-05-01-file-name.md", `---
title: Custom
date: 2024-05-01
excerpt: E.
slug: Custom-Slug
---
B.
`)

	corpus, err := NewStore(dir).Load()
	require.NoError(t, err)
	require.Len(t, corpus.Posts, 1)
	assert.Equal(t, "custom-slug", corpus.Posts[0].Slug)
}

func TestLoadKeepsCustomKeys(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "custom.md", `---
title: Custom
date: 2024-05-01
excerpt: E.
hero_image: /img/hero.png
---
B.
`)

	corpus, err := NewStore(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, "/img/hero.png", corpus.Posts[0].Custom["hero_image"])
}

func TestLoadBadDate(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "bad.md", `---
title: Bad
date: sometime soon
excerpt: E.
---
B.
`)

	_, err := NewStore(dir).Load()
	assert.ErrorContains(t, err, "unrecognized date")
}

func TestLoadEmptyDirectory(t *testing.T) {
	corpus, err := NewStore(t.TempDir()).Load()
	require.NoError(t, err)
	assert.Empty(t, corpus.Posts)
}

func TestPublishedFiltersDraftsAndFutureDates(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "live.md", `---
title: Live
date: 2024-01-01
excerpt: E.
---
B.
`)
	writePost(t, dir, "draft.md", `---
title: Draft
date: 2024-01-02
excerpt: E.
draft: true
---
B.
`)
	writePost(t, dir, "future.md", `---
title: Future
date: 2099-01-01
excerpt: E.
---
B.
`)

	corpus, err := NewStore(dir).Load()
	require.NoError(t, err)
	require.Len(t, corpus.Posts, 3)

	published := corpus.Published(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.Len(t, published, 1)
	assert.Equal(t, "live", published[0].Slug)
}

func TestCorpusLookups(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "a.md", `---
title: A
date: 2024-01-01
excerpt: E.
tags: [Go, testing]
---
B.
`)
	writePost(t, dir, "b.md", `---
title: B
date: 2024-01-02
excerpt: E.
tags: [TESTING]
---
B.
`)

	corpus, err := NewStore(dir).Load()
	require.NoError(t, err)

	assert.NotNil(t, corpus.BySlug("a"))
	assert.Nil(t, corpus.BySlug("missing"))
	assert.Len(t, corpus.ByTag("testing"), 2)
	assert.Len(t, corpus.ByTag("go"), 1)
	// Deduplicated case-insensitively, first spelling wins.
	assert.Equal(t, []string{"Go", "testing"}, corpus.Tags())
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":            "hello-world",
		"  Spaces   everywhere  ":  "spaces-everywhere",
		"Already-slugged":          "already-slugged",
		"Testing: Don't Mock Me":   "testing-don-t-mock-me",
		"100% Coverage Is a Smell": "100-coverage-is-a-smell",
		"---":                      "",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}
