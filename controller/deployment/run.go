package deployment

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"travelassist/lib/timer"
	"travelassist/tier"

	"go.uber.org/zap"
)

// Run validates args, builds the tier and runs op under a context that is
// cancelled on SIGINT or SIGTERM and, when --timeout is set, after that long.
// It returns the process exit code.
func Run(args *tier.TierArgs, job string, op func(context.Context, tier.Tier) error) int {
	if err := args.Valid(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		return ExitCode(Wrap(ErrConfig, err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if args.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, args.Timeout)
		defer cancel()
	}

	tr, err := tier.CreateFromArgs(ctx, args, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		return ExitCode(Wrap(ErrConfig, err))
	}
	// Flushing spans and metrics gets its own context, ctx may be done by now.
	defer tr.Close(context.Background(), job)

	ctx = timer.WithTracing(ctx, tr.Clock)
	err = op(ctx, tr)
	timer.LogTracingInfo(ctx, tr.Logger)
	if err != nil {
		tr.Logger.Info("operation failed", zap.String("job", job), zap.Error(err))
	}
	return ExitCode(err)
}
