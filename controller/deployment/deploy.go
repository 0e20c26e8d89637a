package deployment

import (
	"context"
	"fmt"
	"time"

	"travelassist/controller/role"
	"travelassist/lib/envfile"
	lib "travelassist/lib/sagemaker"
	"travelassist/lib/timer"
	"travelassist/lib/tracer"
	"travelassist/sagemaker"
	"travelassist/tier"

	"github.com/samber/mo"
	"go.uber.org/zap"
)

const envPreview = 60

type DeployOptions struct {
	EndpointName string
	Spec         lib.DescriptorSpec
	Hosting      lib.HostingConfig
	Tags         []lib.Tag
	// Suite is sent to the endpoint once it is in service. Empty skips the test.
	Suite []lib.Payload
}

// Hosting picks the hosting variant from the command line sizing flags.
func Hosting(args sagemaker.SagemakerArgs, serverless bool) lib.HostingConfig {
	if serverless {
		return lib.ServerlessHosting{
			MemorySizeMB:   args.ServerlessMemoryMB,
			MaxConcurrency: args.ServerlessConcurrency,
		}
	}
	return lib.InstanceHosting{
		InstanceType:  args.SagemakerInstanceType,
		InstanceCount: args.SagemakerInstanceCount,
	}
}

// Deploy resolves the execution role, builds the model descriptor and creates
// the model, endpoint config and endpoint, blocking until the endpoint is in
// service. Nothing is rolled back when a step fails, the commands to remove
// whatever was created are printed instead.
func Deploy(ctx context.Context, tier tier.Tier, opts DeployOptions) (endpoint lib.Endpoint, err error) {
	span := tracer.StartSpan(ctx, "deployment.deploy")
	span.SetStringAttribute("endpoint", opts.EndpointName)
	span.SetStringAttribute("hosting", opts.Hosting.Describe())
	ctx = span.Context()
	defer func() { span.End(err) }()

	p := tier.Printer
	_, serverless := opts.Hosting.(lib.ServerlessHosting)
	if serverless {
		p.Banner("🚀 SageMaker Serverless Deployment")
	} else {
		p.Banner("🚀 SageMaker Travel AI Assistant Deployment")
	}

	execRole, err := role.Resolve(ctx, tier)
	if err != nil {
		p.Failure("Failed to get execution role: %v", err)
		p.Hints("Please manually create a SageMaker execution role with:",
			"Trust policy for "+role.ServicePrincipal,
			"AmazonSageMakerFullAccess policy attached")
		return endpoint, Wrap(ErrExecutionRole, err)
	}
	timer.Mark(ctx, "role_resolved")

	p.Info("\n📦 Preparing Hugging Face model...")
	p.Field("Model", opts.Spec.ModelID)
	p.Field("Hosting", opts.Hosting.Describe())
	p.Field("Endpoint", opts.EndpointName)

	descriptor, err := buildDescriptor(ctx, tier, opts)
	if err != nil {
		p.Failure("Failed to create model: %v", err)
		return endpoint, Wrap(ErrModelDescriptor, err)
	}
	tier.Logger.Debug("built model descriptor", zap.Stringer("descriptor", descriptor))
	p.Success("Model configuration created")
	p.Info("\n🔧 Container environment:")
	for _, k := range descriptor.SortedEnvKeys() {
		p.Field(k, lib.Truncate(descriptor.Env[k], envPreview))
	}

	p.Info("\n🚀 Deploying model to endpoint: %s", opts.EndpointName)
	p.Info("⏳ This may take 5-10 minutes...")
	endpoint, left, err := createEndpoint(ctx, tier, lib.DeployRequest{
		EndpointName: opts.EndpointName,
		RoleArn:      execRole.Arn,
		Descriptor:   descriptor,
		Hosting:      opts.Hosting,
		Tags:         opts.Tags,
	})
	if err != nil {
		p.Failure("Deployment failed: %v", err)
		p.Hints("Troubleshooting:",
			"Check AWS credentials are configured",
			"Verify IAM role has correct permissions",
			"Ensure you have SageMaker quota for "+opts.Hosting.Describe(),
			"Check CloudWatch logs for details")
		if cmds := left.deleteCommands(opts.EndpointName); len(cmds) > 0 {
			p.Info("\n🧹 Partially created resources were left in place, remove them with:")
			for _, cmd := range cmds {
				p.Info("   %s", cmd)
			}
		}
		return endpoint, err
	}
	timer.Mark(ctx, "endpoint_in_service")

	report(tier, endpoint, opts.Hosting)
	recordEnv(tier, endpoint.Name)

	if len(opts.Suite) > 0 {
		// The endpoint exists at this point, a failing test does not undo that.
		if _, err := SmokeTest(ctx, tier, endpoint.Name, opts.Suite); err != nil {
			tier.Logger.Warn("endpoint deployed but smoke test failed", zap.String("endpoint", endpoint.Name), zap.Error(err))
		}
	}
	if ih, ok := opts.Hosting.(lib.InstanceHosting); ok {
		p.Info("\n📊 Estimated Cost:")
		p.Info("   ~$%s/hour", lib.EstimatedHourlyCost(ih.InstanceType))
	}
	if milestones := timer.Milestones(ctx); len(milestones) > 0 {
		p.Info("\n⏱️  Timings:")
		for _, m := range milestones {
			p.Field(m.Event, m.Elapsed.Round(time.Second))
		}
	}
	p.Info("\n💡 To delete endpoint later, run:")
	p.Info("   aws sagemaker delete-endpoint --endpoint-name %s", endpoint.Name)
	return endpoint, nil
}

func buildDescriptor(ctx context.Context, tier tier.Tier, opts DeployOptions) (lib.ModelDescriptor, error) {
	spec := opts.Spec
	modelData, err := tier.ModelStore.Resolve(ctx, opts.EndpointName)
	if err != nil {
		return lib.ModelDescriptor{}, err
	}
	if modelData != "" {
		spec.ModelData = mo.Some(modelData)
		tier.Printer.Field("Model data", modelData)
	}
	return lib.BuildDescriptor(spec), nil
}

// leftovers tracks which resources a deploy created, so that a failed deploy
// can tell the user what to remove.
type leftovers struct {
	model, config, endpoint bool
}

// deleteCommands lists the cleanup commands, endpoint first.
func (l leftovers) deleteCommands(name string) []string {
	var cmds []string
	if l.endpoint {
		cmds = append(cmds, "aws sagemaker delete-endpoint --endpoint-name "+name)
	}
	if l.config {
		cmds = append(cmds, "aws sagemaker delete-endpoint-config --endpoint-config-name "+name)
	}
	if l.model {
		cmds = append(cmds, "aws sagemaker delete-model --model-name "+name)
	}
	return cmds
}

// createEndpoint names the model, the endpoint config and the endpoint after
// the endpoint itself.
func createEndpoint(ctx context.Context, tier tier.Tier, req lib.DeployRequest) (lib.Endpoint, leftovers, error) {
	var left leftovers
	smc := tier.SagemakerClient
	exists, err := smc.EndpointExists(ctx, req.EndpointName)
	if err != nil {
		return lib.Endpoint{}, left, Wrap(ErrDeployment, err)
	}
	if exists {
		return lib.Endpoint{}, left, Wrap(ErrDeployment, fmt.Errorf("endpoint '%s' already exists, delete it first or pick another name", req.EndpointName))
	}

	if err := smc.CreateModel(ctx, req.EndpointName, req.RoleArn, req.Descriptor, req.Hosting, req.Tags); err != nil {
		return lib.Endpoint{}, left, Wrap(ErrModelDescriptor, err)
	}
	left.model = true
	if err := smc.CreateEndpointConfig(ctx, req.EndpointName, req.EndpointName, req.Hosting, req.Tags); err != nil {
		return lib.Endpoint{}, left, Wrap(ErrDeployment, err)
	}
	left.config = true
	if err := smc.CreateEndpoint(ctx, req.EndpointName, req.EndpointName, req.Tags); err != nil {
		return lib.Endpoint{}, left, Wrap(ErrDeployment, err)
	}
	left.endpoint = true
	timer.Mark(ctx, "endpoint_requested")
	tier.Logger.Info("endpoint creation requested", zap.String("endpoint", req.EndpointName), zap.String("hosting", req.Hosting.Describe()))

	waitErr := smc.WaitUntilInService(ctx, req.EndpointName)
	endpoint, err := smc.DescribeEndpoint(ctx, req.EndpointName)
	if waitErr != nil {
		if err == nil && endpoint.FailureReason != "" {
			return endpoint, left, Wrap(ErrDeployment, fmt.Errorf("%w: %s", waitErr, endpoint.FailureReason))
		}
		return endpoint, left, Wrap(ErrDeployment, waitErr)
	}
	if err != nil {
		return lib.Endpoint{}, left, Wrap(ErrDeployment, err)
	}
	return endpoint, left, nil
}

func report(tier tier.Tier, endpoint lib.Endpoint, hosting lib.HostingConfig) {
	p := tier.Printer
	p.Banner("✅ DEPLOYMENT SUCCESSFUL!")
	p.Info("📍 Endpoint Name: %s", endpoint.Name)
	p.Info("🔗 Region: %s", tier.Region)
	switch h := hosting.(type) {
	case lib.InstanceHosting:
		p.Info("💰 Instance Type: %s", h.InstanceType)
	case lib.ServerlessHosting:
		p.Info("💰 Pricing: Pay only for inference time")
		p.Info("   No charges when idle!")
	}
	p.Info("\n⚙️  Update your backend .env file:")
	p.Info("   SAGEMAKER_ENDPOINT_NAME=%s", endpoint.Name)
	p.Info("   AWS_REGION=%s", tier.Region)
}

func recordEnv(tier tier.Tier, endpointName string) {
	path := tier.Args.EnvFile
	if path == "" {
		return
	}
	err := envfile.Upsert(path, map[string]string{
		"SAGEMAKER_ENDPOINT_NAME": endpointName,
		"AWS_REGION":              tier.Region,
	})
	if err != nil {
		tier.Printer.Warn("Could not update %s: %v", path, err)
		return
	}
	tier.Printer.Success("Updated %s", path)
}
