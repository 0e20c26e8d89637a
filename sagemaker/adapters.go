package sagemaker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sagemakerruntime"
	"github.com/aws/aws-sdk-go/service/sagemakerruntime/sagemakerruntimeiface"
	"github.com/buger/jsonparser"

	lib "travelassist/lib/sagemaker"
	"travelassist/lib/timer"
)

type Adapter interface {
	Predict(ctx context.Context, in *lib.PredictRequest) (*lib.PredictResponse, error)
}

var _ Adapter = TextGenerationAdapter{}

func (smc SMClient) getAdapter() Adapter {
	return TextGenerationAdapter{client: smc.runtimeClient}
}

func (smc SMClient) Predict(ctx context.Context, in *lib.PredictRequest) (*lib.PredictResponse, error) {
	return smc.getAdapter().Predict(ctx, in)
}

// TextGenerationAdapter speaks the JSON protocol of the Hugging Face inference
// toolkit: {"inputs": ..., "parameters": {...}} in, generated text out.
type TextGenerationAdapter struct {
	client sagemakerruntimeiface.SageMakerRuntimeAPI
}

func (tga TextGenerationAdapter) Predict(ctx context.Context, in *lib.PredictRequest) (*lib.PredictResponse, error) {
	defer timer.Start("sagemaker.invoke_endpoint").Stop()
	payload, err := json.Marshal(in.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	out, err := tga.client.InvokeEndpointWithContext(ctx, &sagemakerruntime.InvokeEndpointInput{
		Body:         payload,
		ContentType:  aws.String("application/json"),
		Accept:       aws.String("application/json"),
		EndpointName: aws.String(in.EndpointName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke sagemaker endpoint: %w", err)
	}
	return &lib.PredictResponse{
		Text: generatedText(out.Body),
		Raw:  out.Body,
	}, nil
}

// generatedText pulls the generated text out of either a list of generations
// or a single conversational result, falling back to the raw body.
func generatedText(body []byte) string {
	if s, err := jsonparser.GetString(body, "[0]", "generated_text"); err == nil {
		return s
	}
	if s, err := jsonparser.GetString(body, "generated_text"); err == nil {
		return s
	}
	return string(body)
}
