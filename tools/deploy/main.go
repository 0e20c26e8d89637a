package main

import (
	"context"
	"os"

	"travelassist/controller/deployment"
	lib "travelassist/lib/sagemaker"
	"travelassist/tier"

	"github.com/alexflint/go-arg"
)

const (
	defaultEndpoint           = "travel-assistant-endpoint"
	defaultServerlessEndpoint = "travel-assistant-serverless"
)

type DeployArgs struct {
	EndpointName string `arg:"--endpoint-name,env:SAGEMAKER_ENDPOINT_NAME" help:"endpoint name (default: travel-assistant-endpoint, travel-assistant-serverless with --serverless)" json:"endpoint_name,omitempty"`
	Serverless   bool   `arg:"--serverless" help:"deploy using serverless inference" json:"serverless,omitempty"`
	List         bool   `arg:"--list" help:"list existing endpoints" json:"list,omitempty"`
	Delete       string `arg:"--delete" help:"delete endpoint by name" json:"delete,omitempty"`
}

func (DeployArgs) Description() string {
	return "Deploy Travel AI Assistant to SageMaker"
}

type Flags struct {
	tier.TierArgs
	DeployArgs
}

func newFlags() Flags {
	var flags Flags
	flags.Model = lib.PresetBlenderbot
	return flags
}

// endpointName falls back to the default for the chosen hosting mode.
func (flags Flags) endpointName() string {
	switch {
	case flags.EndpointName != "":
		return flags.EndpointName
	case flags.Serverless:
		return defaultServerlessEndpoint
	default:
		return defaultEndpoint
	}
}

// run picks one operation: --list wins over --delete, which wins over a deploy.
func run(flags Flags) func(context.Context, tier.Tier) error {
	return func(ctx context.Context, tr tier.Tier) error {
		switch {
		case flags.List:
			_, err := deployment.List(ctx, tr)
			return err
		case flags.Delete != "":
			return deployment.Delete(ctx, tr, flags.Delete)
		}

		spec, err := lib.Preset(flags.Model)
		if err != nil {
			return deployment.Wrap(deployment.ErrConfig, err)
		}
		opts := deployment.DeployOptions{
			EndpointName: flags.endpointName(),
			Spec:         spec,
			Hosting:      deployment.Hosting(flags.SagemakerArgs, flags.Serverless),
		}
		if !flags.Serverless {
			opts.Suite = lib.GreetingSuite()
		}
		_, err = deployment.Deploy(ctx, tr, opts)
		return err
	}
}

func main() {
	flags := newFlags()
	arg.MustParse(&flags)
	os.Exit(deployment.Run(&flags.TierArgs, "deploy", run(flags)))
}
