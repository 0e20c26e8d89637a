package role

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travelassist/iam"
	lib "travelassist/lib/sagemaker"
	"travelassist/lib/timer"
	"travelassist/tier"

	"go.uber.org/zap"
)

const (
	Name             = "SageMakerTravelAssistantRole"
	Description      = "Execution role for Travel Assistant SageMaker endpoint"
	ServicePrincipal = "sagemaker.amazonaws.com"
	PolicyArn        = "arn:aws:iam::aws:policy/AmazonSageMakerFullAccess"

	// IAM is eventually consistent; SageMaker rejects a role it cannot see yet.
	PropagationDelay = 10 * time.Second
)

// Resolve returns the ARN of the execution role SageMaker assumes. An ARN
// given on the command line wins. Otherwise the well-known role is looked up
// and created, with the managed SageMaker policy attached, if it is missing.
func Resolve(ctx context.Context, tier tier.Tier) (lib.ExecutionRole, error) {
	if arn := tier.Args.SagemakerExecutionRole; arn != "" {
		tier.Printer.Success("Using configured role: %s", arn)
		return lib.ExecutionRole{Arn: arn}, nil
	}

	arn, err := tier.IAMClient.GetRoleArn(ctx, Name)
	if err == nil {
		tier.Printer.Success("Using existing role: %s", arn)
		return lib.ExecutionRole{Name: Name, Arn: arn, PolicyArn: PolicyArn}, nil
	}
	if !errors.Is(err, iam.ErrRoleNotFound) {
		return lib.ExecutionRole{}, err
	}

	tier.Printer.Info("Creating new IAM role: %s", Name)
	arn, err = tier.IAMClient.CreateRole(ctx, Name, Description, iam.AssumeRolePolicy(ServicePrincipal))
	if err != nil {
		return lib.ExecutionRole{}, err
	}
	if err := tier.IAMClient.AttachRolePolicy(ctx, Name, PolicyArn); err != nil {
		return lib.ExecutionRole{}, err
	}
	timer.Mark(ctx, "role_created")
	tier.Logger.Info("created execution role", zap.String("arn", arn))

	tier.Printer.Info("Waiting for role to propagate...")
	select {
	case <-ctx.Done():
		return lib.ExecutionRole{}, fmt.Errorf("interrupted while waiting for role propagation: %w", ctx.Err())
	case <-tier.Clock.After(PropagationDelay):
	}
	tier.Printer.Success("Created role: %s", arn)
	return lib.ExecutionRole{Name: Name, Arn: arn, PolicyArn: PolicyArn}, nil
}
