package build

import (
	"embed"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/inkwell-press/inkwell/internal/content"
)

//go:embed layouts/*.html
var defaultLayouts embed.FS

// pageKinds are the templates a layout set must provide. Each defines
// a "content" block that base.html pulls in.
var pageKinds = []string{"index.html", "post.html", "tag.html"}

var titleCaser = cases.Title(language.English)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"isoDate": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"longDate": func(t time.Time) string {
			return t.Format("January 2, 2006")
		},
		"titleCase": titleCaser.String,
		"slugify":   content.Slugify,
	}
}

// layoutSet holds one executable template per page kind, each a clone
// of the shared base so partials stay available everywhere.
type layoutSet struct {
	kinds map[string]*template.Template
}

// loadLayouts prefers layout files on disk, letting authors override
// the embedded defaults per file. Missing files fall back silently.
func loadLayouts(layoutsDir string) (*layoutSet, error) {
	base, err := parseLayout(layoutsDir, template.New("base.html").Funcs(funcMap()), "base.html")
	if err != nil {
		return nil, err
	}

	set := &layoutSet{kinds: make(map[string]*template.Template, len(pageKinds))}
	for _, kind := range pageKinds {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		parsed, err := parseLayout(layoutsDir, clone, kind)
		if err != nil {
			return nil, err
		}
		set.kinds[kind] = parsed
	}
	return set, nil
}

func parseLayout(layoutsDir string, t *template.Template, name string) (*template.Template, error) {
	if layoutsDir != "" {
		diskPath := filepath.Join(layoutsDir, name)
		_, err := os.Stat(diskPath)
		if err == nil {
			return t.ParseFiles(diskPath)
		}
	}
	return t.ParseFS(defaultLayouts, "layouts/"+name)
}
