package awsfake

import (
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/sagemaker"
	"github.com/aws/aws-sdk-go/service/sagemaker/sagemakeriface"
	"github.com/aws/aws-sdk-go/service/sagemakerruntime"
	"github.com/aws/aws-sdk-go/service/sagemakerruntime/sagemakerruntimeiface"
)

// SageMaker keeps endpoints in memory. Endpoints start in Creating and move
// to FinalStatus once the in-service waiter is called.
type SageMaker struct {
	sagemakeriface.SageMakerAPI

	Endpoints map[string]*sagemaker.DescribeEndpointOutput
	Models    map[string]*sagemaker.CreateModelInput
	Configs   map[string]*sagemaker.CreateEndpointConfigInput

	FinalStatus   string
	FailureReason string
	PageSize      int

	CreateModelErr          error
	CreateEndpointErr       error
	DescribeErr             error
	ListErr                 error
	DeleteEndpointErr       error
	DeleteEndpointConfigErr error
	DeleteModelErr          error

	DeletedEndpoints []string
	DeletedConfigs   []string
	DeletedModels    []string
	WaitCalls        []string
}

func NewSageMaker() *SageMaker {
	return &SageMaker{
		Endpoints:   map[string]*sagemaker.DescribeEndpointOutput{},
		Models:      map[string]*sagemaker.CreateModelInput{},
		Configs:     map[string]*sagemaker.CreateEndpointConfigInput{},
		FinalStatus: sagemaker.EndpointStatusInService,
	}
}

// AddEndpoint registers an existing endpoint.
func (f *SageMaker) AddEndpoint(name, status string, created time.Time) {
	f.Endpoints[name] = &sagemaker.DescribeEndpointOutput{
		EndpointName:       aws.String(name),
		EndpointConfigName: aws.String(name),
		EndpointStatus:     aws.String(status),
		CreationTime:       aws.Time(created),
		LastModifiedTime:   aws.Time(created),
	}
}

func notFound(kind, name string) error {
	return awserr.New("ValidationException", fmt.Sprintf("Could not find %s \"%s\".", kind, name), nil)
}

func (f *SageMaker) CreateModelWithContext(_ aws.Context, in *sagemaker.CreateModelInput, _ ...request.Option) (*sagemaker.CreateModelOutput, error) {
	if f.CreateModelErr != nil {
		return nil, f.CreateModelErr
	}
	f.Models[aws.StringValue(in.ModelName)] = in
	return &sagemaker.CreateModelOutput{ModelArn: aws.String("arn:aws:sagemaker:model/" + aws.StringValue(in.ModelName))}, nil
}

func (f *SageMaker) CreateEndpointConfigWithContext(_ aws.Context, in *sagemaker.CreateEndpointConfigInput, _ ...request.Option) (*sagemaker.CreateEndpointConfigOutput, error) {
	f.Configs[aws.StringValue(in.EndpointConfigName)] = in
	return &sagemaker.CreateEndpointConfigOutput{}, nil
}

func (f *SageMaker) CreateEndpointWithContext(_ aws.Context, in *sagemaker.CreateEndpointInput, _ ...request.Option) (*sagemaker.CreateEndpointOutput, error) {
	if f.CreateEndpointErr != nil {
		return nil, f.CreateEndpointErr
	}
	name := aws.StringValue(in.EndpointName)
	if _, ok := f.Endpoints[name]; ok {
		return nil, awserr.New("ValidationException", fmt.Sprintf("Cannot create already existing endpoint \"%s\".", name), nil)
	}
	f.AddEndpoint(name, sagemaker.EndpointStatusCreating, time.Now())
	f.Endpoints[name].EndpointConfigName = in.EndpointConfigName
	return &sagemaker.CreateEndpointOutput{EndpointArn: aws.String("arn:aws:sagemaker:endpoint/" + name)}, nil
}

func (f *SageMaker) DescribeEndpointWithContext(_ aws.Context, in *sagemaker.DescribeEndpointInput, _ ...request.Option) (*sagemaker.DescribeEndpointOutput, error) {
	if f.DescribeErr != nil {
		return nil, f.DescribeErr
	}
	name := aws.StringValue(in.EndpointName)
	ep, ok := f.Endpoints[name]
	if !ok {
		return nil, notFound("endpoint", name)
	}
	return ep, nil
}

func (f *SageMaker) WaitUntilEndpointInServiceWithContext(_ aws.Context, in *sagemaker.DescribeEndpointInput, _ ...request.WaiterOption) error {
	name := aws.StringValue(in.EndpointName)
	f.WaitCalls = append(f.WaitCalls, name)
	ep, ok := f.Endpoints[name]
	if !ok {
		return notFound("endpoint", name)
	}
	ep.EndpointStatus = aws.String(f.FinalStatus)
	if f.FinalStatus != sagemaker.EndpointStatusInService {
		ep.FailureReason = aws.String(f.FailureReason)
		return awserr.New(request.WaiterResourceNotReadyErrorCode, "failed waiting for successful resource state", nil)
	}
	return nil
}

func (f *SageMaker) ListEndpointsPagesWithContext(_ aws.Context, _ *sagemaker.ListEndpointsInput, fn func(*sagemaker.ListEndpointsOutput, bool) bool, _ ...request.Option) error {
	if f.ListErr != nil {
		return f.ListErr
	}
	names := make([]string, 0, len(f.Endpoints))
	for name := range f.Endpoints {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return aws.TimeValue(f.Endpoints[names[i]].CreationTime).After(aws.TimeValue(f.Endpoints[names[j]].CreationTime))
	})
	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	for start := 0; ; start += pageSize {
		end := start + pageSize
		if end > len(names) {
			end = len(names)
		}
		page := &sagemaker.ListEndpointsOutput{}
		for _, name := range names[start:end] {
			ep := f.Endpoints[name]
			page.Endpoints = append(page.Endpoints, &sagemaker.EndpointSummary{
				EndpointName:     ep.EndpointName,
				EndpointStatus:   ep.EndpointStatus,
				CreationTime:     ep.CreationTime,
				LastModifiedTime: ep.LastModifiedTime,
			})
		}
		last := end >= len(names)
		if !fn(page, last) || last {
			return nil
		}
	}
}

func (f *SageMaker) DeleteEndpointWithContext(_ aws.Context, in *sagemaker.DeleteEndpointInput, _ ...request.Option) (*sagemaker.DeleteEndpointOutput, error) {
	name := aws.StringValue(in.EndpointName)
	f.DeletedEndpoints = append(f.DeletedEndpoints, name)
	if f.DeleteEndpointErr != nil {
		return nil, f.DeleteEndpointErr
	}
	if _, ok := f.Endpoints[name]; !ok {
		return nil, notFound("endpoint", name)
	}
	delete(f.Endpoints, name)
	return &sagemaker.DeleteEndpointOutput{}, nil
}

func (f *SageMaker) DeleteEndpointConfigWithContext(_ aws.Context, in *sagemaker.DeleteEndpointConfigInput, _ ...request.Option) (*sagemaker.DeleteEndpointConfigOutput, error) {
	name := aws.StringValue(in.EndpointConfigName)
	f.DeletedConfigs = append(f.DeletedConfigs, name)
	if f.DeleteEndpointConfigErr != nil {
		return nil, f.DeleteEndpointConfigErr
	}
	delete(f.Configs, name)
	return &sagemaker.DeleteEndpointConfigOutput{}, nil
}

func (f *SageMaker) DeleteModelWithContext(_ aws.Context, in *sagemaker.DeleteModelInput, _ ...request.Option) (*sagemaker.DeleteModelOutput, error) {
	name := aws.StringValue(in.ModelName)
	f.DeletedModels = append(f.DeletedModels, name)
	if f.DeleteModelErr != nil {
		return nil, f.DeleteModelErr
	}
	delete(f.Models, name)
	return &sagemaker.DeleteModelOutput{}, nil
}

// Runtime records every invocation. Respond decides the reply; by default
// every endpoint answers with a single canned generation.
type Runtime struct {
	sagemakerruntimeiface.SageMakerRuntimeAPI

	Respond     func(endpoint string, body []byte) ([]byte, error)
	Invocations []*sagemakerruntime.InvokeEndpointInput
}

func (f *Runtime) InvokeEndpointWithContext(_ aws.Context, in *sagemakerruntime.InvokeEndpointInput, _ ...request.Option) (*sagemakerruntime.InvokeEndpointOutput, error) {
	f.Invocations = append(f.Invocations, in)
	respond := f.Respond
	if respond == nil {
		respond = func(string, []byte) ([]byte, error) {
			return []byte(`[{"generated_text":"Happy to help you plan your trip!"}]`), nil
		}
	}
	body, err := respond(aws.StringValue(in.EndpointName), in.Body)
	if err != nil {
		return nil, err
	}
	return &sagemakerruntime.InvokeEndpointOutput{
		Body:        body,
		ContentType: aws.String("application/json"),
	}, nil
}

// Bodies returns the request bodies in invocation order.
func (f *Runtime) Bodies() []string {
	bodies := make([]string, len(f.Invocations))
	for i, in := range f.Invocations {
		bodies[i] = string(in.Body)
	}
	return bodies
}
