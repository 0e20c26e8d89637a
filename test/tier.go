package test

import (
	"bytes"
	"time"

	"travelassist/iam"
	"travelassist/lib/console"
	lib "travelassist/lib/sagemaker"
	"travelassist/modelstore"
	"travelassist/s3"
	"travelassist/sagemaker"
	"travelassist/test/awsfake"
	"travelassist/tier"

	"github.com/fatih/color"
	"github.com/raulk/clock"
	"go.uber.org/zap"
)

const Region = "us-east-1"

// Fakes gives tests access to the in-memory AWS services behind a test tier.
type Fakes struct {
	IAM       *awsfake.IAM
	STS       *awsfake.STS
	SageMaker *awsfake.SageMaker
	Runtime   *awsfake.Runtime
	Uploader  *awsfake.Uploader
	Clock     *clock.Mock
	Out       *bytes.Buffer
}

func DefaultArgs() tier.TierArgs {
	return tier.TierArgs{
		SagemakerArgs: sagemaker.SagemakerArgs{
			SagemakerInstanceType:  lib.DefaultInstanceType,
			SagemakerInstanceCount: lib.DefaultInstanceCount,
			ServerlessMemoryMB:     lib.DefaultServerlessMemoryMB,
			ServerlessConcurrency:  lib.DefaultServerlessMaxConcurrency,
		},
		Region: Region,
		Model:  lib.PresetBlenderbot,
	}
}

// Tier returns a tier whose AWS clients are all backed by in-memory fakes,
// with a mock clock and the user-facing output captured in Fakes.Out.
func Tier() (tier.Tier, *Fakes) {
	return TierWithArgs(DefaultArgs())
}

func TierWithArgs(args tier.TierArgs) (tier.Tier, *Fakes) {
	color.NoColor = true
	fakes := &Fakes{
		IAM:       awsfake.NewIAM(),
		STS:       &awsfake.STS{},
		SageMaker: awsfake.NewSageMaker(),
		Runtime:   &awsfake.Runtime{},
		Uploader:  awsfake.NewUploader(),
		Clock:     clock.NewMock(),
		Out:       &bytes.Buffer{},
	}
	fakes.Clock.Set(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))
	logger := zap.NewNop()
	return tier.Tier{
		Logger:          logger,
		Clock:           fakes.Clock,
		Printer:         console.NewPrinter(fakes.Out),
		IAMClient:       iam.NewClientWithAPI(fakes.IAM, fakes.STS),
		SagemakerClient: sagemaker.NewClientWithAPI(Region, fakes.SageMaker, fakes.Runtime, logger),
		ModelStore:      modelstore.NewModelStore(args.ModelStoreArgs, s3.NewClientWithAPI(fakes.Uploader)),
		Region:          Region,
		Args:            args,
	}, fakes
}
