// Package ioschema creates the PostgreSQL samples table with GORM
// AutoMigrate.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/mpsense/sampler/pkg/db"
	"github.com/mpsense/sampler/pkg/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the db.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) db.SchemaManager {
	return &manager{operator: op}
}

// Create creates or updates the samples table and its indexes. Running it
// on an existing schema only adds what is missing.
func (m *manager) Create(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return CreateSchemaError(err)
	}

	for _, q := range indexStatements() {
		if _, err := pool.Exec(ctx, q); err != nil {
			return CreateSchemaError(err)
		}
	}

	slog.Info("Schema is ready", "tables", len(schema.AllModels()))
	return nil
}
