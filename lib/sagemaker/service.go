package sagemaker

import (
	"context"
)

type SagemakerRegistry interface {
	CreateModel(ctx context.Context, name, roleArn string, descriptor ModelDescriptor, hosting HostingConfig, tags []Tag) error
	CreateEndpointConfig(ctx context.Context, name, modelName string, hosting HostingConfig, tags []Tag) error
	CreateEndpoint(ctx context.Context, name, configName string, tags []Tag) error
	WaitUntilInService(ctx context.Context, name string) error

	EndpointExists(ctx context.Context, name string) (bool, error)
	DescribeEndpoint(ctx context.Context, name string) (Endpoint, error)
	ListEndpoints(ctx context.Context) ([]Endpoint, error)

	DeleteModel(ctx context.Context, name string) error
	DeleteEndpointConfig(ctx context.Context, name string) error
	DeleteEndpoint(ctx context.Context, name string) error
}

type InferenceServer interface {
	Predict(ctx context.Context, req *PredictRequest) (*PredictResponse, error)
}

// GenerationParameters are sent per request, unlike GenerationEnv which is
// fixed at deploy time.
type GenerationParameters struct {
	MaxNewTokens int     `json:"max_new_tokens,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
	TopP         float64 `json:"top_p,omitempty"`
	DoSample     bool    `json:"do_sample,omitempty"`
}

type Payload struct {
	Inputs     string                `json:"inputs"`
	Parameters *GenerationParameters `json:"parameters,omitempty"`
}

type PredictRequest struct {
	EndpointName string
	Payload      Payload
}

type PredictResponse struct {
	// Text is the generated text if the response carried one, otherwise the
	// raw body.
	Text string
	Raw  []byte
}
