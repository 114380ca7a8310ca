package ioweb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/mpsense/sampler/pkg/errcode"
)

// ServerError is returned when the HTTP server cannot start or stop.
func ServerError(port int, err error) error {
	msg := `Cannot run HTTP server on port <em>%d</em>

<em>How to fix:</em>
  1. Check that no other process listens on the port
  2. Use <em>sampler serve --port</em> to pick another one`
	vars := []any{port}
	return &gn.Error{
		Code: errcode.ServerError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("http server on port %d: %w", port, err),
	}
}
