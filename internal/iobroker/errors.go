package iobroker

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/mpsense/sampler/pkg/errcode"
)

func ConnectError(exchange string, err error) error {
	msg := "Cannot connect to broker exchange <em>%s</em>"
	vars := []any{exchange}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BrokerError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: broker setup failed: %w", fn.Name(), err),
	}
}

func PublishError(id int64, err error) error {
	msg := "Cannot publish sample <em>%d</em>"
	vars := []any{id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BrokerError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: publish failed: %w", fn.Name(), err),
	}
}
