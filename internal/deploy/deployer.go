// Package deploy syncs a built output directory into object storage.
package deploy

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/inkwell-press/inkwell/internal/storage"
)

type Summary struct {
	Uploaded int
	Skipped  int
	Deleted  int
}

type Deployer struct {
	store storage.Storage
	// Prune removes remote keys with no local counterpart.
	Prune bool
}

func New(store storage.Storage, prune bool) *Deployer {
	return &Deployer{store: store, Prune: prune}
}

// Sync uploads files under outputDir whose content differs from the
// remote copy and, with Prune on, deletes remote keys the local tree
// no longer has. Unchanged keys are detected by comparing the local
// MD5 against the hash the store reports.
func (d *Deployer) Sync(ctx context.Context, outputDir string) (*Summary, error) {
	summary := &Summary{}

	remote, err := d.store.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("sync list: %w", err)
	}

	local := map[string]struct{}{}
	err = filepath.WalkDir(outputDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(outputDir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		local[key] = struct{}{}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		sum := md5.Sum(data)
		if remote[key] == hex.EncodeToString(sum[:]) {
			summary.Skipped++
			slog.Debug("unchanged", "key", key)
			return nil
		}

		err = d.store.Save(ctx, key, bytes.NewReader(data), contentTypeFor(path))
		if err != nil {
			return err
		}
		summary.Uploaded++
		slog.Debug("uploaded", "key", key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sync upload: %w", err)
	}

	if d.Prune {
		for key := range remote {
			if _, ok := local[key]; ok {
				continue
			}
			err = d.store.Delete(ctx, key)
			if err != nil {
				return nil, fmt.Errorf("sync prune: %w", err)
			}
			summary.Deleted++
			slog.Debug("pruned", "key", key)
		}
	}

	slog.Info("site deployed",
		"uploaded", summary.Uploaded,
		"skipped", summary.Skipped,
		"deleted", summary.Deleted,
	)
	return summary, nil
}

func contentTypeFor(path string) string {
	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		ct = "application/octet-stream"
	}
	return ct
}
