package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/frontmatter"
)

// Parser renders post Markdown to HTML and exposes the front-matter
// block. A single instance is safe for reuse; goldmark parsers are
// stateless between Convert calls when each call gets its own context.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.Typographer,
			&frontmatter.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithXHTML(),
		),
	)

	return &Parser{
		md: md,
	}
}

// Parse converts Markdown to HTML, dropping any front-matter block.
func (p *Parser) Parse(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := p.md.Convert(source, &buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseWithFrontmatter converts Markdown to HTML and decodes the
// front-matter block into meta. meta may be a *map[string]any or a
// pointer to a tagged struct. A document without front matter is not
// an error; meta is left untouched.
func (p *Parser) ParseWithFrontmatter(source []byte, meta any) (content []byte, err error) {
	context := parser.NewContext()
	var buf bytes.Buffer

	err = p.md.Convert(source, &buf, parser.WithContext(context))
	if err != nil {
		return nil, err
	}

	data := frontmatter.Get(context)
	if data != nil {
		err = data.Decode(meta)
		if err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// ExtractFrontmatter decodes the front-matter block without rendering
// the body. Returns false when the document has no front matter.
func (p *Parser) ExtractFrontmatter(source []byte, meta any) (bool, error) {
	context := parser.NewContext()
	p.md.Parser().Parse(text.NewReader(source), parser.WithContext(context))

	data := frontmatter.Get(context)
	if data == nil {
		return false, nil
	}

	err := data.Decode(meta)
	if err != nil {
		return false, err
	}
	return true, nil
}
