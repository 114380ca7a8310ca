package iodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mpsense/sampler/pkg/db"
	"github.com/mpsense/sampler/pkg/sample"
	"github.com/mpsense/sampler/pkg/schema"
)

// Store implements sample.Store on the PostgreSQL samples table.
type Store struct {
	op      db.Operator
	timeout time.Duration
}

// NewStore creates a store on a connected operator. Closing the store
// closes the operator.
func NewStore(op db.Operator, timeout time.Duration) *Store {
	return &Store{op: op, timeout: timeout}
}

var (
	columns  = schema.Columns(schema.Sample{})
	insertSQ = insertSQL()
)

func insertSQL() string {
	ph := make([]string, len(columns))
	for i := range columns {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		schema.Sample{}.TableName(),
		strings.Join(columns, ", "),
		strings.Join(ph, ", "),
	)
}

// upsertSQL replaces every column but the key on conflict.
func upsertSQL() string {
	var set []string
	for _, c := range columns[1:] {
		set = append(set, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}
	return insertSQ + " ON CONFLICT (sample_id) DO UPDATE SET " +
		strings.Join(set, ", ")
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
	pool := s.op.Pool()
	if pool == nil {
		return nil, NotConnectedError()
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := pool.Query(ctx, "SELECT sample_id::text FROM samples")
	if err != nil {
		return nil, QueryError("select sample ids", err)
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, QueryError("scan sample id", err)
		}
		res = append(res, id)
	}
	if err := rows.Err(); err != nil {
		return nil, QueryError("scan sample id", err)
	}
	return res, nil
}

// Put inserts the record or replaces the row with the same sample_id.
func (s *Store) Put(ctx context.Context, rec sample.Record) error {
	pool := s.op.Pool()
	if pool == nil {
		return NotConnectedError()
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := schema.FromRecord(rec)
	if _, err := pool.Exec(ctx, upsertSQL(), row.Values()...); err != nil {
		return InsertError(rec.SampleID, err)
	}
	return nil
}

// PutIfAbsent inserts the record unless sample_id is taken.
func (s *Store) PutIfAbsent(ctx context.Context, rec sample.Record) error {
	pool := s.op.Pool()
	if pool == nil {
		return NotConnectedError()
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := schema.FromRecord(rec)
	q := insertSQ + " ON CONFLICT (sample_id) DO NOTHING"
	tag, err := pool.Exec(ctx, q, row.Values()...)
	if err != nil {
		return InsertError(rec.SampleID, err)
	}
	if tag.RowsAffected() == 0 {
		return sample.ErrIDTaken
	}
	return nil
}

// Close closes the underlying operator.
func (s *Store) Close() error {
	return s.op.Close()
}
