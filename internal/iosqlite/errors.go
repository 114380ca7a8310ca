package iosqlite

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/mpsense/sampler/pkg/errcode"
)

func OpenError(path string, err error) error {
	msg := "Cannot open SQLite database <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn.Name(), path, err),
	}
}

func CreateError(path string, err error) error {
	msg := "Cannot create samples table in <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SampleStoreCreateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: create table failed: %w", fn.Name(), err),
	}
}

func ScanError(path string, err error) error {
	msg := "Cannot read sample IDs from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SampleStoreScanError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: select failed: %w", fn.Name(), err),
	}
}

func PutError(path string, id int64, err error) error {
	msg := "Cannot write sample <em>%d</em> to <em>%s</em>"
	vars := []any{id, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SampleStorePutError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: insert failed: %w", fn.Name(), err),
	}
}
