package deployment

import (
	"context"
	"fmt"

	lib "travelassist/lib/sagemaker"
	"travelassist/lib/tracer"
	"travelassist/sagemaker"
	"travelassist/tier"

	"go.uber.org/zap"
)

const timeLayout = "2006-01-02 15:04:05 MST"

func List(ctx context.Context, tier tier.Tier) (endpoints []lib.Endpoint, err error) {
	span := tracer.StartSpan(ctx, "deployment.list")
	ctx = span.Context()
	defer func() { span.End(err) }()

	p := tier.Printer
	endpoints, err = tier.SagemakerClient.ListEndpoints(ctx)
	if err != nil {
		p.Failure("Error listing endpoints: %v", err)
		return nil, Wrap(ErrList, err)
	}
	if len(endpoints) == 0 {
		p.Info("No endpoints found")
		return endpoints, nil
	}
	p.Info("\n📍 Existing SageMaker Endpoints:")
	p.Rule()
	for _, ep := range endpoints {
		p.Field("Name", ep.Name)
		p.Field("Status", ep.Status)
		p.Field("Created", ep.CreationTime.Format(timeLayout))
		p.Rule()
	}
	return endpoints, nil
}

// Status describes one endpoint and tells the user whether it can serve.
func Status(ctx context.Context, tier tier.Tier, name string) (status lib.EndpointStatus, err error) {
	span := tracer.StartSpan(ctx, "deployment.status")
	span.SetStringAttribute("endpoint", name)
	ctx = span.Context()
	defer func() { span.End(err) }()

	p := tier.Printer
	endpoint, err := tier.SagemakerClient.DescribeEndpoint(ctx, name)
	if err != nil {
		if sagemaker.IsNotFound(err) {
			p.Failure("Endpoint '%s' not found", name)
			return "", Wrap(ErrEndpointNotFound, err)
		}
		p.Failure("Error checking endpoint: %v", err)
		return "", Wrap(ErrStatus, err)
	}

	p.Info("📊 Endpoint '%s' status: %s", name, endpoint.Status)
	switch {
	case endpoint.Status == lib.StatusInService:
		p.Success("Endpoint is ready for inference!")
	case endpoint.Status.InProgress():
		p.Info("⏳ Endpoint is being deployed...")
	default:
		p.Warn("Endpoint status: %s", endpoint.Status)
		if endpoint.FailureReason != "" {
			p.Field("Failure reason", endpoint.FailureReason)
		}
	}
	return endpoint.Status, nil
}

// Delete requests deletion of the endpoint, then removes the endpoint config
// and the model that share its name. Only the endpoint deletion can fail the
// operation.
func Delete(ctx context.Context, tier tier.Tier, name string) (err error) {
	span := tracer.StartSpan(ctx, "deployment.delete")
	span.SetStringAttribute("endpoint", name)
	ctx = span.Context()
	defer func() { span.End(err) }()

	p := tier.Printer
	smc := tier.SagemakerClient
	p.Info("🗑️  Deleting endpoint: %s", name)
	if err := smc.DeleteEndpoint(ctx, name); err != nil {
		if sagemaker.IsNotFound(err) {
			p.Failure("Endpoint '%s' not found", name)
			return Wrap(ErrEndpointNotFound, err)
		}
		p.Failure("Error deleting endpoint: %v", err)
		return Wrap(ErrDelete, fmt.Errorf("endpoint '%s': %w", name, err))
	}
	p.Success("Endpoint deletion initiated")

	if err := smc.DeleteEndpointConfig(ctx, name); err != nil {
		tier.Logger.Debug("ignoring endpoint config delete failure", zap.String("endpoint", name), zap.Error(err))
	} else {
		p.Success("Endpoint config deleted")
	}
	if err := smc.DeleteModel(ctx, name); err != nil {
		tier.Logger.Debug("ignoring model delete failure", zap.String("endpoint", name), zap.Error(err))
	} else {
		p.Success("Model deleted")
	}
	return nil
}
