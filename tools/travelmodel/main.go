package main

import (
	"context"
	"fmt"
	"os"

	"travelassist/controller/deployment"
	lib "travelassist/lib/sagemaker"
	"travelassist/tier"

	"github.com/alexflint/go-arg"
	"github.com/samber/lo"
)

const (
	actionDeploy  = "deploy"
	actionStatus  = "status"
	actionTest    = "test"
	actionCleanup = "cleanup"
)

var actions = []string{actionDeploy, actionStatus, actionTest, actionCleanup}

type TravelModelArgs struct {
	Action   string `arg:"--action,env:ACTION" help:"one of deploy, status, test, cleanup" default:"deploy" json:"action,omitempty"`
	Endpoint string `arg:"--endpoint,env:SAGEMAKER_ENDPOINT_NAME" help:"endpoint name" default:"travel-assistant-endpoint" json:"endpoint,omitempty"`
}

func (TravelModelArgs) Description() string {
	return "Deploy or manage the SageMaker travel assistant model"
}

func (args TravelModelArgs) Valid() error {
	if !lo.Contains(actions, args.Action) {
		return fmt.Errorf("--action must be one of %v, got '%s'", actions, args.Action)
	}
	return nil
}

type Flags struct {
	tier.TierArgs
	TravelModelArgs
}

func newFlags() Flags {
	var flags Flags
	flags.Model = lib.PresetDialoGPT
	return flags
}

func run(flags Flags) func(context.Context, tier.Tier) error {
	return func(ctx context.Context, tr tier.Tier) error {
		switch flags.Action {
		case actionStatus:
			_, err := deployment.Status(ctx, tr, flags.Endpoint)
			return err
		case actionTest:
			_, err := deployment.SmokeTest(ctx, tr, flags.Endpoint, lib.TravelSuite())
			return err
		case actionCleanup:
			return deployment.Delete(ctx, tr, flags.Endpoint)
		}

		spec, err := lib.Preset(flags.Model)
		if err != nil {
			return deployment.Wrap(deployment.ErrConfig, err)
		}
		endpoint, err := deployment.Deploy(ctx, tr, deployment.DeployOptions{
			EndpointName: flags.Endpoint,
			Spec:         spec,
			Hosting:      deployment.Hosting(flags.SagemakerArgs, true),
			Tags:         lib.TravelTags,
			Suite:        lib.TravelSuite(),
		})
		if err != nil {
			return err
		}
		tr.Printer.Info("\n🎉 Deployment complete!")
		tr.Printer.Info("📝 Update your .env file with: SAGEMAKER_ENDPOINT_NAME=%s", endpoint.Name)
		return nil
	}
}

func main() {
	flags := newFlags()
	p := arg.MustParse(&flags)
	if err := flags.TravelModelArgs.Valid(); err != nil {
		p.Fail(err.Error())
	}
	os.Exit(deployment.Run(&flags.TierArgs, "travelmodel", run(flags)))
}
