package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Options は Setup の入力です。Endpoint が空なら OTLP へは送らず、ログを Writer に出すだけです。
type Options struct {
	ServiceName string
	Endpoint    string
	Level       slog.Level
	Writer      io.Writer
}

// Telemetry はプロセス全体で共有するロガーとトレーサです。
type Telemetry struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider

	shutdown []func(context.Context) error
}

// Setup はロガーとトレーサを構築し、slog と otel のデフォルトに設定します。
func Setup(ctx context.Context, opts Options) (*Telemetry, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.ServiceName == "" {
		opts.ServiceName = "gleaner"
	}
	text := slog.NewTextHandler(opts.Writer, &slog.HandlerOptions{Level: opts.Level})

	t := &Telemetry{}
	if opts.Endpoint == "" {
		t.Logger = slog.New(text)
		t.TracerProvider = noop.NewTracerProvider()
		t.install()
		return t, nil
	}

	res := resource.NewSchemaless(attribute.String("service.name", opts.ServiceName))

	traceExporter, err := otlptracegrpc.New(ctx, traceEndpoint(opts.Endpoint)...)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	t.shutdown = append(t.shutdown, tp.Shutdown)

	logExporter, err := otlploggrpc.New(ctx, logEndpoint(opts.Endpoint)...)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("create log exporter: %w", err)
	}
	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
		sdklog.WithResource(res),
	)
	t.shutdown = append(t.shutdown, lp.Shutdown)

	bridge := otelslog.NewHandler(opts.ServiceName, otelslog.WithLoggerProvider(lp))
	t.Logger = slog.New(fanout{text, leveled{Handler: bridge, level: opts.Level}})
	t.TracerProvider = tp
	t.install()
	return t, nil
}

func (t *Telemetry) install() {
	slog.SetDefault(t.Logger)
	otel.SetTracerProvider(t.TracerProvider)
}

// Tracer は名前付きトレーサを返します。
func (t *Telemetry) Tracer(name string) trace.Tracer {
	return t.TracerProvider.Tracer(name)
}

// Shutdown は未送信のスパンとログを送り切ってからエクスポータを閉じます。
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(t.shutdown) - 1; i >= 0; i-- {
		errs = append(errs, t.shutdown[i](ctx))
	}
	t.shutdown = nil
	return errors.Join(errs...)
}

func traceEndpoint(ep string) []otlptracegrpc.Option {
	if strings.Contains(ep, "://") {
		return []otlptracegrpc.Option{otlptracegrpc.WithEndpointURL(ep)}
	}
	return []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(ep), otlptracegrpc.WithInsecure()}
}

func logEndpoint(ep string) []otlploggrpc.Option {
	if strings.Contains(ep, "://") {
		return []otlploggrpc.Option{otlploggrpc.WithEndpointURL(ep)}
	}
	return []otlploggrpc.Option{otlploggrpc.WithEndpoint(ep), otlploggrpc.WithInsecure()}
}
