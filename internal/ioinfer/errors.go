package ioinfer

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/mpsense/sampler/pkg/errcode"
)

// TransportError is returned for an unknown inference transport.
func TransportError(name string) error {
	msg := "Unknown inference transport <em>%s</em>, use http or sagemaker"
	vars := []any{name}
	return &gn.Error{
		Code: errcode.InferenceConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown inference transport %q", name),
	}
}
