package middleware

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name.
const defaultTracerName = "reactor"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "reactor").
	TracerName string

	// TracerProvider overrides the global provider.
	TracerProvider trace.TracerProvider

	// Filter determines which dispatches to trace. If nil, all are traced.
	Filter func(d *Dispatch) bool

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(d *Dispatch) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithFilter sets a filter function for dispatches.
func WithFilter(filter func(d *Dispatch) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(d *Dispatch) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry traces every dispatch. The span is carried by the context
// passed to the next handler.
func OpenTelemetry(opts ...OTelOption) Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	provider := config.TracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	tracer := provider.Tracer(config.TracerName)

	return func(next Handler) Handler {
		return func(ctx context.Context, d *Dispatch) error {
			if config.Filter != nil && !config.Filter(d) {
				return next(ctx, d)
			}

			attrs := []attribute.KeyValue{
				attribute.String("reactor.kind", d.Kind),
				attribute.String("reactor.name", d.Name),
			}
			if d.Session != "" {
				attrs = append(attrs, attribute.String("reactor.session_id", d.Session))
			}
			if d.Target != 0 {
				attrs = append(attrs, attribute.String("reactor.target", strconv.FormatUint(d.Target, 10)))
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(d)...)
			}

			ctx, span := tracer.Start(ctx, SpanName(d),
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			err := next(ctx, d)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}
			span.SetAttributes(attribute.Int("reactor.ops", d.Ops))
			return err
		}
	}
}

// SpanName returns the span name used for d.
func SpanName(d *Dispatch) string {
	return fmt.Sprintf("reactor.%s.%s", d.Kind, d.Name)
}

// SpanFromContext returns the dispatch span carried by ctx, if any.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}
