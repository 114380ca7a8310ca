package ioinfer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"
)

const contentType = "application/json"

// Transport delivers one JSON payload to a model and returns the
// response body.
type Transport interface {
	Invoke(ctx context.Context, target string, payload []byte) ([]byte, error)
}

// HTTPTransport posts JSON to a URL.
type HTTPTransport struct {
	Client *http.Client
}

// Invoke posts payload to the target URL. Any status outside 2xx is an
// error.
func (t HTTPTransport) Invoke(
	ctx context.Context,
	target string,
	payload []byte,
) ([]byte, error) {
	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, target, bytes.NewReader(payload),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", contentType)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s returned status %d", target, resp.StatusCode)
	}
	return body, nil
}

// InvokeAPI is the part of the SageMaker runtime client the transport
// needs.
type InvokeAPI interface {
	InvokeEndpoint(
		ctx context.Context,
		params *sagemakerruntime.InvokeEndpointInput,
		optFns ...func(*sagemakerruntime.Options),
	) (*sagemakerruntime.InvokeEndpointOutput, error)
}

// SageMakerTransport invokes a SageMaker endpoint by name.
type SageMakerTransport struct {
	Client InvokeAPI
}

// Invoke sends payload to the endpoint named by target.
func (t SageMakerTransport) Invoke(
	ctx context.Context,
	target string,
	payload []byte,
) ([]byte, error) {
	out, err := t.Client.InvokeEndpoint(ctx, &sagemakerruntime.InvokeEndpointInput{
		EndpointName: aws.String(target),
		ContentType:  aws.String(contentType),
		Accept:       aws.String(contentType),
		Body:         payload,
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}
