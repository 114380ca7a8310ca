package db_test

import (
	"testing"

	"github.com/mpsense/sampler/internal/iodb"
	"github.com/mpsense/sampler/internal/ioschema"
	"github.com/mpsense/sampler/pkg/db"
)

func TestContracts(t *testing.T) {
	op := iodb.NewPgxOperator()
	var _ db.Operator = op
	var _ db.SchemaManager = ioschema.NewManager(op)
}
