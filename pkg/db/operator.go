package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mpsense/sampler/pkg/config"
)

// Operator defines basic PostgreSQL management operations. It owns the
// connection pool and exposes it to the sample store and the schema
// manager.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables in the public schema.
	// Used to decide if schema creation needs confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables in the public schema.
	DropAllTables(ctx context.Context) error
}

// SchemaManager creates or updates the samples table. It is idempotent.
type SchemaManager interface {
	Create(ctx context.Context) error
}
