package inference

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/mpsense/sampler/pkg/errcode"
)

// DetectorError wraps a failed Stage-1 call.
func DetectorError(sampleID string, err error) error {
	msg := "Detection failed for sample <em>%s</em>"
	vars := []any{sampleID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DetectorError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: stage-1 call failed: %w", fn.Name(), err),
	}
}

// ClassifierError wraps a failed Stage-2 call.
func ClassifierError(sampleID string, err error) error {
	msg := "Classification failed for sample <em>%s</em>"
	vars := []any{sampleID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ClassifierError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: stage-2 call failed: %w", fn.Name(), err),
	}
}

// NotConfiguredError is returned for a stage without a service.
func NotConfiguredError(stage string) error {
	msg := "Inference <em>%s</em> is not configured"
	vars := []any{stage}
	return &gn.Error{
		Code: errcode.InferenceConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s is not configured", stage),
	}
}
