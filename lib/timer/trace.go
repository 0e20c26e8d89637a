package timer

import (
	"context"
	"sync"
	"time"

	"github.com/raulk/clock"
	"go.uber.org/zap"
)

type milestonesKey struct{}

// Milestone is a named point of a run, measured from the start of the run.
type Milestone struct {
	Event   string
	Elapsed time.Duration
}

type milestones struct {
	mu    sync.Mutex
	clock clock.Clock
	start time.Time
	list  []Milestone
}

// WithTracing starts recording milestones on ctx, timed with clk.
func WithTracing(ctx context.Context, clk clock.Clock) context.Context {
	return context.WithValue(ctx, milestonesKey{}, &milestones{
		clock: clk,
		start: clk.Now(),
	})
}

// Mark records a milestone of the current run. It is a no-op if the context
// was not created with WithTracing.
func Mark(ctx context.Context, event string) {
	m, ok := ctx.Value(milestonesKey{}).(*milestones)
	if !ok {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.list = append(m.list, Milestone{Event: event, Elapsed: m.clock.Since(m.start)})
}

// Milestones returns the milestones marked so far in the order they were
// marked, or nil without tracing.
func Milestones(ctx context.Context) []Milestone {
	m, ok := ctx.Value(milestonesKey{}).(*milestones)
	if !ok {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Milestone(nil), m.list...)
}

func LogTracingInfo(ctx context.Context, log *zap.Logger) {
	list := Milestones(ctx)
	if len(list) == 0 {
		return
	}
	fields := make([]zap.Field, 0, len(list))
	for _, m := range list {
		fields = append(fields, zap.Duration(m.Event, m.Elapsed))
	}
	log.Info("run milestones", fields...)
}
