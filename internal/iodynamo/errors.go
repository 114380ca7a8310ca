package iodynamo

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/mpsense/sampler/pkg/errcode"
)

func ScanError(table string, err error) error {
	msg := "Cannot read sample IDs from <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SampleStoreScanError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: scan of %s failed: %w", fn.Name(), table, err),
	}
}

func PutError(table string, id int64, err error) error {
	msg := "Cannot write sample <em>%d</em> to <em>%s</em>"
	vars := []any{id, table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SampleStorePutError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: put item failed: %w", fn.Name(), err),
	}
}

func CreateError(table string, err error) error {
	msg := "Cannot create table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SampleStoreCreateError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: create table failed: %w", fn.Name(), err),
	}
}
