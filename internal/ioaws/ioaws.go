// Package ioaws loads the AWS configuration shared by S3, DynamoDB and
// SageMaker clients.
package ioaws

import (
	"context"
	"fmt"
	"runtime"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gnames/gn"

	"github.com/mpsense/sampler/pkg/config"
	"github.com/mpsense/sampler/pkg/errcode"
)

// Load resolves credentials from the default chain (environment, shared
// files, instance role) for the configured region.
func Load(ctx context.Context, cfg config.AWSConfig) (aws.Config, error) {
	res, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return res, LoadError(cfg.Region, err)
	}
	return res, nil
}

func LoadError(region string, err error) error {
	msg := "Cannot load AWS configuration for region <em>%s</em>"
	vars := []any{region}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AWSConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot load aws config: %w", fn.Name(), err),
	}
}
