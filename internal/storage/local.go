package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage deploys into a directory on disk. Mostly useful for
// tests and for publishing to a mounted volume.
type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{root: root}
}

func (l *LocalStorage) path(key string) string {
	return filepath.Join(l.root, filepath.FromSlash(strings.TrimPrefix(key, "/")))
}

func (l *LocalStorage) Save(_ context.Context, key string, body io.Reader, _ string) error {
	target := l.path(key)
	err := os.MkdirAll(filepath.Dir(target), 0755)
	if err != nil {
		return err
	}

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, body)
	return err
}

func (l *LocalStorage) Delete(_ context.Context, key string) error {
	return os.Remove(l.path(key))
}

func (l *LocalStorage) List(_ context.Context, prefix string) (map[string]string, error) {
	keys := map[string]string{}
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, strings.TrimPrefix(prefix, "/")) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		sum := md5.Sum(data)
		keys[key] = hex.EncodeToString(sum[:])
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return keys, nil
}

func (l *LocalStorage) URL(key string) string {
	return "file://" + l.path(key)
}
