package tracer

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-logr/stdr"
	"go.opentelemetry.io/contrib/propagators/aws/xray"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

type TracerArgs struct {
	OtlpEndpoint string `arg:"--otlp-endpoint,env:OTLP_ENDPOINT" help:"OTLP gRPC collector to export spans to" default:""`
}

type Span struct {
	c    context.Context
	span oteltrace.Span
}

func (s Span) Context() context.Context {
	return s.c
}

func (s Span) GetXrayTraceID() string {
	xrayTraceID := s.span.SpanContext().TraceID().String()
	return fmt.Sprintf("1-%s-%s", xrayTraceID[0:8], xrayTraceID[8:])
}

func (s Span) SetStringAttribute(attrName, val string) {
	s.span.SetAttributes(attribute.String(attrName, val))
}

// End closes the span, marking it failed if err is non-nil.
func (s Span) End(err error) {
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	}
	s.span.End()
}

func StartSpan(ctx context.Context, name string) Span {
	tracer := otel.Tracer("travelassist")
	cCtx, span := tracer.Start(ctx, name)
	return Span{
		c:    cCtx,
		span: span,
	}
}

// InitProvider installs an exporting tracer provider. The returned function
// flushes pending spans and must be called before the process exits.
func InitProvider(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	traceExporter, err := otlptracegrpc.New(
		ctx, otlptracegrpc.WithInsecure(), otlptracegrpc.WithEndpoint(endpoint))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter, err: %v", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		// A run produces a handful of spans, export them as they finish.
		sdktrace.WithSyncer(traceExporter),
		sdktrace.WithIDGenerator(xray.NewIDGenerator()))

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(xray.Propagator{})

	stdrLogger := stdr.New(log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile))
	otel.SetLogger(stdrLogger)

	return tp.Shutdown, nil
}
