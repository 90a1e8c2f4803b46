package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `---
title: Testing Philosophy
tags:
  - testing
---

# Heading

Some **bold** text and a [link](/posts/other).

` + "```go\nfunc main() {}\n```\n"

func TestParseStripsFrontmatter(t *testing.T) {
	p := NewParser()

	html, err := p.Parse([]byte(sample))
	require.NoError(t, err)

	assert.Contains(t, string(html), "<h1 id=\"heading\">Heading</h1>")
	assert.Contains(t, string(html), "<strong>bold</strong>")
	assert.NotContains(t, string(html), "Testing Philosophy")
}

func TestParseHardWrapsSingleNewlines(t *testing.T) {
	p := NewParser()

	html, err := p.Parse([]byte("line one\nline two"))
	require.NoError(t, err)

	assert.Contains(t, string(html), "<br />")
}

func TestParseWithFrontmatter(t *testing.T) {
	p := NewParser()

	var meta struct {
		Title string   `yaml:"title"`
		Tags  []string `yaml:"tags"`
	}
	html, err := p.ParseWithFrontmatter([]byte(sample), &meta)
	require.NoError(t, err)

	assert.Equal(t, "Testing Philosophy", meta.Title)
	assert.Equal(t, []string{"testing"}, meta.Tags)
	assert.Contains(t, string(html), "<pre>")
}

func TestParseWithFrontmatterMissingBlock(t *testing.T) {
	p := NewParser()

	var meta struct {
		Title string `yaml:"title"`
	}
	html, err := p.ParseWithFrontmatter([]byte("plain *markdown*"), &meta)
	require.NoError(t, err)

	assert.Empty(t, meta.Title)
	assert.Contains(t, string(html), "<em>markdown</em>")
}

func TestExtractFrontmatter(t *testing.T) {
	p := NewParser()

	var meta map[string]any
	ok, err := p.ExtractFrontmatter([]byte(sample), &meta)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Testing Philosophy", meta["title"])

	ok, err = p.ExtractFrontmatter([]byte("no front matter"), &meta)
	require.NoError(t, err)
	assert.False(t, ok)
}
