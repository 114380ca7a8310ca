package iodb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/mpsense/sampler/pkg/errcode"
)

// ConnectionError is returned when PostgreSQL cannot be reached.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Cannot connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>

  2. Verify database <em>%s</em> exists for user <em>%s</em>

  3. Check database section of
     <em>~/.config/sampler/config.yaml</em>`

	vars := []any{host, port, database, user}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot connect to %s:%d/%s: %w",
			fn.Name(), host, port, database, err),
	}
}

// NotConnectedError is returned when an operation needs a pool that was
// never opened.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: not connected to database", fn.Name()),
	}
}

func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: table check failed: %w", fn.Name(), err),
	}
}

// QueryError covers failed reads and schema statements.
func QueryError(what string, err error) error {
	msg := "Database query failed: <em>%s</em>"
	vars := []any{what}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s: %w", fn.Name(), what, err),
	}
}

func InsertError(id int64, err error) error {
	msg := "Cannot write sample <em>%d</em> to PostgreSQL"
	vars := []any{id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBInsertError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: insert of %d failed: %w", fn.Name(), id, err),
	}
}
