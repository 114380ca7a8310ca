package capture

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/mpsense/sampler/pkg/errcode"
)

func CameraError(err error) error {
	msg := "Cannot capture image"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CameraError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: camera failed: %w", fn.Name(), err),
	}
}

func UploadError(key string, err error) error {
	msg := "Cannot upload image <em>%s</em>"
	vars := []any{key}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UploadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot upload %s: %w", fn.Name(), key, err),
	}
}

func AllocateError(err error) error {
	msg := "Cannot allocate sample ID, sample store is unavailable"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AllocateError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot read sample IDs: %w", fn.Name(), err),
	}
}

func PersistError(id int64, err error) error {
	msg := "Cannot save sample <em>%d</em>"
	vars := []any{id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PersistError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write sample %d: %w", fn.Name(), id, err),
	}
}

func BusyError(err error) error {
	msg := "Another capture is in progress"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BusyError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: gave up waiting: %w", fn.Name(), err),
	}
}
