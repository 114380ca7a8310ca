package ios3

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/mpsense/sampler/pkg/errcode"
)

func PutError(bucket, key string, err error) error {
	msg := "Cannot upload <em>%s</em> to bucket <em>%s</em>"
	vars := []any{key, bucket}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UploadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: put object failed: %w", fn.Name(), err),
	}
}
