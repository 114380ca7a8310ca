package iocamera

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/mpsense/sampler/pkg/errcode"
)

var errClosed = errors.New("camera handle is closed")

func CameraError(command string, err error) error {
	msg := "Camera command <em>%s</em> failed"
	vars := []any{command}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CameraError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s failed: %w", fn.Name(), command, err),
	}
}

func BusyError(err error) error {
	msg := "Camera is busy"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CameraBusyError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: camera is held: %w", fn.Name(), err),
	}
}
