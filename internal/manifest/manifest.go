// Package manifest records what each build produced so incremental
// builds can skip pages whose source has not changed.
package manifest

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrNoBuilds = errors.New("no builds recorded")

type Build struct {
	ID          string       `db:"id"`
	StartedAt   time.Time    `db:"started_at"`
	FinishedAt  sql.NullTime `db:"finished_at"`
	Pages       int          `db:"pages"`
	Incremental bool         `db:"incremental"`
}

type Page struct {
	BuildID    string `db:"build_id"`
	SourcePath string `db:"source_path"`
	OutputPath string `db:"output_path"`
	Checksum   string `db:"checksum"`
	Rendered   bool   `db:"rendered"`
}

type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// BeginBuild opens a build row and returns its id.
func (s *Store) BeginBuild(incremental bool) (string, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO builds (id, started_at, pages, incremental) VALUES ($1, $2, 0, $3)`,
		id, time.Now().UTC(), incremental,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) FinishBuild(id string, pages int) error {
	_, err := s.db.Exec(
		`UPDATE builds SET finished_at = $1, pages = $2 WHERE id = $3`,
		time.Now().UTC(), pages, id,
	)
	return err
}

func (s *Store) RecordPage(page Page) error {
	_, err := s.db.Exec(`
		INSERT INTO build_pages (build_id, source_path, output_path, checksum, rendered)
		VALUES ($1, $2, $3, $4, $5)
	`, page.BuildID, page.SourcePath, page.OutputPath, page.Checksum, page.Rendered)
	return err
}

// LastChecksum returns the checksum recorded for a source path in the
// most recent finished build, or "" when the path has never been built.
func (s *Store) LastChecksum(sourcePath string) (string, error) {
	var checksum string
	err := s.db.Get(&checksum, `
		SELECT p.checksum
		FROM build_pages p
		JOIN builds b ON b.id = p.build_id
		WHERE p.source_path = $1 AND b.finished_at IS NOT NULL
		ORDER BY b.started_at DESC
		LIMIT 1
	`, sourcePath)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return checksum, nil
}

func (s *Store) LatestBuild() (*Build, error) {
	var build Build
	err := s.db.Get(&build, `
		SELECT id, started_at, finished_at, pages, incremental
		FROM builds
		ORDER BY started_at DESC
		LIMIT 1
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoBuilds
	}
	if err != nil {
		return nil, err
	}
	return &build, nil
}

// Checksum hashes source bytes the way build_pages stores them.
func Checksum(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}
