package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/mpsense/sampler/pkg/errcode"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError creates an error for GORM
// connection failures.
func GORMConnectionError(err error) error {
	msg := `Cannot open database with GORM

<em>How to fix:</em>
  1. Ensure the database is reachable
  2. Check database section of
     <em>~/.config/sampler/config.yaml</em>`

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// CreateSchemaError creates an error for schema
// creation failures.
func CreateSchemaError(err error) error {
	msg := `Cannot create samples table

<em>Possible causes:</em>
  - Insufficient database permissions
  - Existing samples table with incompatible columns

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Run <em>sampler create --force</em> to recreate the schema`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}
