package sagemaker

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/sagemaker"
	"github.com/aws/aws-sdk-go/service/sagemaker/sagemakeriface"
	"github.com/aws/aws-sdk-go/service/sagemakerruntime"
	"github.com/aws/aws-sdk-go/service/sagemakerruntime/sagemakerruntimeiface"
	"github.com/samber/lo"
	"go.uber.org/zap"

	lib "travelassist/lib/sagemaker"
	"travelassist/lib/timer"
)

type SagemakerArgs struct {
	SagemakerExecutionRole string `arg:"--execution-role-arn,env:SAGEMAKER_EXECUTION_ROLE" help:"use this execution role instead of resolving one"`
	SagemakerInstanceType  string `arg:"--instance-type,env:SAGEMAKER_INSTANCE_TYPE" help:"SageMaker instance type" default:"ml.t2.medium"`
	SagemakerInstanceCount uint   `arg:"--instance-count,env:SAGEMAKER_INSTANCE_COUNT" help:"SageMaker instance count" default:"1"`
	ServerlessMemoryMB     uint   `arg:"--serverless-memory,env:SAGEMAKER_SERVERLESS_MEMORY" help:"serverless memory size in MB" default:"4096"`
	ServerlessConcurrency  uint   `arg:"--serverless-concurrency,env:SAGEMAKER_SERVERLESS_CONCURRENCY" help:"serverless max concurrency" default:"10"`
}

func NewClient(region string, sess client.ConfigProvider, logger *zap.Logger) SMClient {
	return NewClientWithAPI(region, sagemaker.New(sess), sagemakerruntime.New(sess), logger)
}

// NewClientWithAPI builds a client over already constructed service clients.
func NewClientWithAPI(region string, metadata sagemakeriface.SageMakerAPI, runtime sagemakerruntimeiface.SageMakerRuntimeAPI, logger *zap.Logger) SMClient {
	return SMClient{
		region:         region,
		runtimeClient:  runtime,
		metadataClient: metadata,
		logger:         logger,
	}
}

type SMClient struct {
	region         string
	runtimeClient  sagemakerruntimeiface.SageMakerRuntimeAPI
	metadataClient sagemakeriface.SageMakerAPI
	logger         *zap.Logger
}

var _ lib.SagemakerRegistry = SMClient{}
var _ lib.InferenceServer = SMClient{}

func (smc SMClient) CreateModel(ctx context.Context, name, roleArn string, descriptor lib.ModelDescriptor, hosting lib.HostingConfig, tags []lib.Tag) error {
	defer timer.Start("sagemaker.create_model").Stop()
	image, err := getImage(descriptor.Versions, smc.region, hosting)
	if err != nil {
		return fmt.Errorf("failed to get image: %w", err)
	}
	container := &sagemaker.ContainerDefinition{
		Image:       aws.String(image),
		Environment: aws.StringMap(descriptor.Env),
	}
	if descriptor.ModelData != "" {
		container.ModelDataUrl = aws.String(descriptor.ModelData)
	}
	modelInput := sagemaker.CreateModelInput{
		ExecutionRoleArn: aws.String(roleArn),
		ModelName:        aws.String(name),
		PrimaryContainer: container,
		Tags:             toSagemakerTags(tags),
	}
	smc.logger.Debug("creating sagemaker model", zap.String("model", name), zap.String("image", image))
	_, err = smc.metadataClient.CreateModelWithContext(ctx, &modelInput)
	if err != nil {
		return fmt.Errorf("failed to create model: %w", err)
	}
	return nil
}

func (smc SMClient) CreateEndpointConfig(ctx context.Context, name, modelName string, hosting lib.HostingConfig, tags []lib.Tag) error {
	defer timer.Start("sagemaker.create_endpoint_config").Stop()
	variant := &sagemaker.ProductionVariant{
		ModelName:            aws.String(modelName),
		VariantName:          aws.String(lib.VariantName),
		InitialVariantWeight: aws.Float64(1),
	}
	switch h := hosting.(type) {
	case lib.InstanceHosting:
		variant.InstanceType = aws.String(h.InstanceType)
		variant.InitialInstanceCount = aws.Int64(int64(h.InstanceCount))
	case lib.ServerlessHosting:
		variant.ServerlessConfig = &sagemaker.ProductionVariantServerlessConfig{
			MemorySizeInMB: aws.Int64(int64(h.MemorySizeMB)),
			MaxConcurrency: aws.Int64(int64(h.MaxConcurrency)),
		}
	default:
		return fmt.Errorf("unsupported hosting config: %T", hosting)
	}
	endpointCfgInput := sagemaker.CreateEndpointConfigInput{
		EndpointConfigName: aws.String(name),
		ProductionVariants: []*sagemaker.ProductionVariant{variant},
		Tags:               toSagemakerTags(tags),
	}
	_, err := smc.metadataClient.CreateEndpointConfigWithContext(ctx, &endpointCfgInput)
	if err != nil {
		return fmt.Errorf("failed to create endpoint config on sagemaker: %w", err)
	}
	return nil
}

func (smc SMClient) CreateEndpoint(ctx context.Context, name, configName string, tags []lib.Tag) error {
	defer timer.Start("sagemaker.create_endpoint").Stop()
	endpointInput := sagemaker.CreateEndpointInput{
		EndpointName:       aws.String(name),
		EndpointConfigName: aws.String(configName),
		Tags:               toSagemakerTags(tags),
	}
	_, err := smc.metadataClient.CreateEndpointWithContext(ctx, &endpointInput)
	if err != nil {
		return fmt.Errorf("failed to create endpoint on sagemaker: %w", err)
	}
	return nil
}

// WaitUntilInService blocks on the SDK waiter. The waiter owns the polling
// cadence and gives up when the endpoint reaches Failed.
func (smc SMClient) WaitUntilInService(ctx context.Context, name string) error {
	defer timer.Start("sagemaker.wait_in_service").Stop()
	input := sagemaker.DescribeEndpointInput{
		EndpointName: aws.String(name),
	}
	if err := smc.metadataClient.WaitUntilEndpointInServiceWithContext(ctx, &input); err != nil {
		return fmt.Errorf("endpoint '%s' did not reach InService: %w", name, err)
	}
	return nil
}

func (smc SMClient) EndpointExists(ctx context.Context, name string) (bool, error) {
	_, err := smc.DescribeEndpoint(ctx, name)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check if endpoint exists on sagemaker: %w", err)
	}
	return true, nil
}

func (smc SMClient) DescribeEndpoint(ctx context.Context, name string) (lib.Endpoint, error) {
	defer timer.Start("sagemaker.describe_endpoint").Stop()
	input := sagemaker.DescribeEndpointInput{
		EndpointName: aws.String(name),
	}
	output, err := smc.metadataClient.DescribeEndpointWithContext(ctx, &input)
	if err != nil {
		if isMissing(err, "Could not find endpoint") {
			return lib.Endpoint{}, fmt.Errorf("endpoint '%s': %w", name, ErrNotFound)
		}
		return lib.Endpoint{}, fmt.Errorf("failed to describe endpoint '%s': %w", name, err)
	}
	return lib.Endpoint{
		Name:             aws.StringValue(output.EndpointName),
		ConfigName:       aws.StringValue(output.EndpointConfigName),
		Status:           lib.EndpointStatus(aws.StringValue(output.EndpointStatus)),
		FailureReason:    aws.StringValue(output.FailureReason),
		CreationTime:     aws.TimeValue(output.CreationTime),
		LastModifiedTime: aws.TimeValue(output.LastModifiedTime),
	}, nil
}

func (smc SMClient) ListEndpoints(ctx context.Context) ([]lib.Endpoint, error) {
	defer timer.Start("sagemaker.list_endpoints").Stop()
	input := sagemaker.ListEndpointsInput{
		SortBy:    aws.String(sagemaker.EndpointSortKeyCreationTime),
		SortOrder: aws.String(sagemaker.OrderKeyDescending),
	}
	var endpoints []lib.Endpoint
	err := smc.metadataClient.ListEndpointsPagesWithContext(ctx, &input, func(page *sagemaker.ListEndpointsOutput, _ bool) bool {
		endpoints = append(endpoints, lo.Map(page.Endpoints, func(s *sagemaker.EndpointSummary, _ int) lib.Endpoint {
			return lib.Endpoint{
				Name:             aws.StringValue(s.EndpointName),
				Status:           lib.EndpointStatus(aws.StringValue(s.EndpointStatus)),
				CreationTime:     aws.TimeValue(s.CreationTime),
				LastModifiedTime: aws.TimeValue(s.LastModifiedTime),
			}
		})...)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list endpoints: %w", err)
	}
	return endpoints, nil
}

func (smc SMClient) DeleteModel(ctx context.Context, name string) error {
	input := sagemaker.DeleteModelInput{
		ModelName: aws.String(name),
	}
	_, err := smc.metadataClient.DeleteModelWithContext(ctx, &input)
	if err != nil {
		return fmt.Errorf("failed to delete model: %w", err)
	}
	return nil
}

func (smc SMClient) DeleteEndpointConfig(ctx context.Context, name string) error {
	input := sagemaker.DeleteEndpointConfigInput{
		EndpointConfigName: aws.String(name),
	}
	_, err := smc.metadataClient.DeleteEndpointConfigWithContext(ctx, &input)
	if err != nil {
		return fmt.Errorf("failed to delete endpoint config: %w", err)
	}
	return nil
}

// DeleteEndpoint only requests the deletion, it does not wait for the
// endpoint to disappear.
func (smc SMClient) DeleteEndpoint(ctx context.Context, name string) error {
	defer timer.Start("sagemaker.delete_endpoint").Stop()
	input := sagemaker.DeleteEndpointInput{
		EndpointName: aws.String(name),
	}
	_, err := smc.metadataClient.DeleteEndpointWithContext(ctx, &input)
	if err != nil {
		if isMissing(err, "Could not find endpoint") {
			return fmt.Errorf("endpoint '%s': %w", name, ErrNotFound)
		}
		return fmt.Errorf("failed to delete endpoint: %w", err)
	}
	return nil
}

func toSagemakerTags(tags []lib.Tag) []*sagemaker.Tag {
	if len(tags) == 0 {
		return nil
	}
	return lo.Map(tags, func(t lib.Tag, _ int) *sagemaker.Tag {
		return &sagemaker.Tag{Key: aws.String(t.Key), Value: aws.String(t.Value)}
	})
}

// SageMaker reports missing resources as a ValidationException whose message
// names the resource.
func isMissing(err error, prefix string) bool {
	if e, ok := err.(awserr.Error); ok {
		return e.Code() == "ValidationException" && strings.HasPrefix(e.Message(), prefix)
	}
	return false
}
