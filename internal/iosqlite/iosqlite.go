// Package iosqlite keeps sample records in a local SQLite file. It serves
// stations that run without network access to a cloud table.
package iosqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mpsense/sampler/pkg/sample"
	"github.com/mpsense/sampler/pkg/schema"
	_ "modernc.org/sqlite"
)

// Store implements sample.Store on SQLite.
type Store struct {
	db      *sql.DB
	path    string
	timeout time.Duration
}

// Open opens or creates the database file at path and makes sure the
// samples table exists.
func Open(ctx context.Context, path string, timeout time.Duration) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, OpenError(path, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)

	if _, err = db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, OpenError(path, err)
	}

	res := &Store{db: db, path: path, timeout: timeout}
	if err = res.createTable(ctx); err != nil {
		db.Close()
		return nil, err
	}
	slog.Debug("SQLite store is open", "path", path)
	return res, nil
}

func (s *Store) createTable(ctx context.Context) error {
	m := schema.Sample{}
	stmts := append([]string{m.TableDDL()}, m.IndexDDL()...)
	for _, q := range stmts {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return CreateError(s.path, err)
		}
	}
	return nil
}

func (s *Store) withTimeout(
	ctx context.Context,
) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// SampleIDs returns every sample_id as text.
func (s *Store) SampleIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		"SELECT CAST(sample_id AS TEXT) FROM samples")
	if err != nil {
		return nil, ScanError(s.path, err)
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, ScanError(s.path, err)
		}
		res = append(res, id)
	}
	if err := rows.Err(); err != nil {
		return nil, ScanError(s.path, err)
	}
	return res, nil
}

func insertSQL(verb string) string {
	cols := schema.Columns(schema.Sample{})
	ph := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf("%s INTO samples (%s) VALUES (%s)",
		verb, strings.Join(cols, ", "), ph)
}

// Put inserts the record or replaces the row with the same sample_id.
func (s *Store) Put(ctx context.Context, rec sample.Record) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := schema.FromRecord(rec)
	_, err := s.db.ExecContext(ctx, insertSQL("INSERT OR REPLACE"), row.Values()...)
	if err != nil {
		return PutError(s.path, rec.SampleID, err)
	}
	return nil
}

// PutIfAbsent inserts the record unless sample_id is taken.
func (s *Store) PutIfAbsent(ctx context.Context, rec sample.Record) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := schema.FromRecord(rec)
	res, err := s.db.ExecContext(ctx, insertSQL("INSERT OR IGNORE"), row.Values()...)
	if err != nil {
		return PutError(s.path, rec.SampleID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return PutError(s.path, rec.SampleID, err)
	}
	if n == 0 {
		return sample.ErrIDTaken
	}
	return nil
}

// Close closes the database file.
func (s *Store) Close() error {
	return s.db.Close()
}
