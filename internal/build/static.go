package build

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

func (b *Builder) outputFile(name string) string {
	return filepath.Join(b.opts.OutputPath, name)
}

// copyDir copies the static tree into the output directory verbatim.
// A missing static directory is fine; not every site has assets.
func copyDir(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil || !info.IsDir() {
		return nil
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	err = os.MkdirAll(filepath.Dir(dst), 0755)
	if err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// writeRobots leaves a static robots.txt alone and writes a
// permissive default otherwise.
func (b *Builder) writeRobots() error {
	robotsPath := b.outputFile("robots.txt")
	_, err := os.Stat(robotsPath)
	if err == nil {
		return nil
	}

	content := "User-agent: *\nAllow: /\nSitemap: " + b.opts.Site.AbsoluteURL("/sitemap.xml") + "\n"
	return writeFile(robotsPath, []byte(content))
}
