package tier

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"travelassist/iam"
	"travelassist/lib/console"
	"travelassist/lib/timer"
	"travelassist/lib/tracer"
	"travelassist/modelstore"
	"travelassist/s3"
	"travelassist/sagemaker"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/raulk/clock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type TierArgs struct {
	sagemaker.SagemakerArgs   `json:"sagemaker_._sagemaker_args"`
	modelstore.ModelStoreArgs `json:"modelstore_._model_store_args"`
	tracer.TracerArgs         `json:"tracer_._tracer_args"`
	timer.MetricsArgs         `json:"metrics_._metrics_args"`

	Region  string        `arg:"--aws-region,env:AWS_REGION" json:"aws_region,omitempty"`
	Profile string        `arg:"--aws-profile,env:AWS_PROFILE" json:"aws_profile,omitempty"`
	Model   string        `arg:"--model,env:MODEL_PRESET" help:"model preset to deploy" json:"model,omitempty"`
	Timeout time.Duration `arg:"--timeout,env:DEPLOY_TIMEOUT" help:"overall deadline, 0 waits forever" json:"timeout,omitempty"`
	EnvFile string        `arg:"--env-file,env:ENV_FILE" help:"dotenv file to record the endpoint in" json:"env_file,omitempty"`
	Dev     bool          `arg:"--dev,env:DEV" default:"false" json:"dev,omitempty"`
}

func (args TierArgs) Valid() error {
	missingFields := make([]string, 0)
	if args.Model == "" {
		missingFields = append(missingFields, "MODEL_PRESET")
	}
	if args.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %v", args.Timeout)
	}
	if len(missingFields) > 0 {
		return fmt.Errorf("missing fields: %s", strings.Join(missingFields, ", "))
	}
	return args.ModelStoreArgs.Valid()
}

// Tier is the explicit per-process context handed to every controller
// operation. Nothing in it is global.
type Tier struct {
	Logger          *zap.Logger
	Clock           clock.Clock
	Printer         *console.Printer
	IAMClient       iam.Client
	SagemakerClient sagemaker.SMClient
	ModelStore      modelstore.ModelStore
	Region          string
	Args            TierArgs

	closers []func(context.Context) error
}

func NewLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	config.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	return config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)
}

func CreateFromArgs(ctx context.Context, args *TierArgs, out io.Writer) (tier Tier, err error) {
	// First, create a structured logger that we can then use in other places.
	logger, err := NewLogger(args.Dev)
	if err != nil {
		return tier, fmt.Errorf("failed to construct logger: %v", err)
	}
	_ = zap.ReplaceGlobals(logger)

	logger.Info("Creating AWS session", zap.String("profile", args.Profile))
	config := aws.Config{}
	if args.Region != "" {
		config.Region = aws.String(args.Region)
	}
	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            config,
		Profile:           args.Profile,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return tier, fmt.Errorf("failed to create AWS session: %w", err)
	}
	region := aws.StringValue(sess.Config.Region)
	if region == "" {
		return tier, fmt.Errorf("no AWS region configured, set --aws-region or AWS_REGION")
	}
	logger = logger.With(zap.String("region", region))

	iamClient := iam.NewClient(sess)
	identity, err := iamClient.CallerIdentity(ctx)
	if err != nil {
		return tier, fmt.Errorf("AWS credentials are not usable: %w", err)
	}
	logger.Info("Resolved caller identity", zap.String("account", identity.Account), zap.String("arn", identity.Arn))

	logger.Info("Connecting to sagemaker")
	smclient := sagemaker.NewClient(region, sess, logger)

	logger.Info("Creating AWS clients for S3 and ModelStore")
	modelStore := modelstore.NewModelStore(args.ModelStoreArgs, s3.NewClient(sess))

	tier = Tier{
		Logger:          logger,
		Clock:           clock.New(),
		Printer:         console.NewPrinter(out),
		IAMClient:       iamClient,
		SagemakerClient: smclient,
		ModelStore:      modelStore,
		Region:          region,
		Args:            *args,
	}

	// Setup tracer provider (which exports remotely) if an endpoint is defined. Otherwise a default tracer is used.
	if len(args.OtlpEndpoint) > 0 {
		shutdown, err := tracer.InitProvider(ctx, args.OtlpEndpoint)
		if err != nil {
			return tier, fmt.Errorf("failed to init tracer provider: %w", err)
		}
		tier.closers = append(tier.closers, shutdown)
	}
	return tier, nil
}

// Close flushes spans and pushes the AWS call timings to the pushgateway when
// one is configured. Failures are logged and never change the exit code.
func (tier Tier) Close(ctx context.Context, job string) {
	for _, c := range tier.closers {
		if err := c(ctx); err != nil {
			tier.Logger.Warn("failed to shut down tracer", zap.Error(err))
		}
	}
	if tier.Args.Pushgateway != "" {
		if err := timer.Push(tier.Args.Pushgateway, job); err != nil {
			tier.Logger.Warn("failed to push metrics", zap.String("pushgateway", tier.Args.Pushgateway), zap.Error(err))
		}
	}
	_ = tier.Logger.Sync()
}
