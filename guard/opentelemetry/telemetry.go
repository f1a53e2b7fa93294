package opentelemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	constant "github.com/LerianStudio/lib-guard/guard/constants"
	"github.com/LerianStudio/lib-guard/guard/log"
	"github.com/LerianStudio/lib-guard/guard/opentelemetry/metrics"
	"github.com/LerianStudio/lib-guard/guard/runtime"
)

var (
	// ErrNilTelemetryLogger indicates that TelemetryConfig.Logger is nil.
	ErrNilTelemetryLogger = errors.New("telemetry config logger cannot be nil")
	// ErrMissingCollectorEndpoint indicates that telemetry is enabled without a collector endpoint.
	ErrMissingCollectorEndpoint = errors.New("telemetry config collector endpoint is required when telemetry is enabled")
)

// TelemetryConfig configures NewTelemetry.
type TelemetryConfig struct {
	LibraryName               string
	ServiceName               string
	ServiceVersion            string
	DeploymentEnv             string
	CollectorExporterEndpoint string
	EnableTelemetry           bool
	Logger                    log.Logger
}

// Telemetry holds the providers that carry guard violations out of the process.
//
// Pass MetricsFactory to guard.InitGuardMetrics so the Enforcer counts violations,
// and start spans from TracerProvider so violation events are exported.
type Telemetry struct {
	TelemetryConfig
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	LoggerProvider *sdklog.LoggerProvider
	MetricsFactory *metrics.MetricsFactory
	shutdown       []func(context.Context) error
}

func (cfg TelemetryConfig) newResource() *sdkresource.Resource {
	return sdkresource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironment(cfg.DeploymentEnv),
		semconv.TelemetrySDKName(constant.TelemetrySDKName),
		semconv.TelemetrySDKLanguageGo,
	)
}

func (cfg TelemetryConfig) libraryName() string {
	if cfg.LibraryName == "" {
		return constant.TelemetrySDKName
	}

	return cfg.LibraryName
}

// NewTelemetry builds tracer, meter and logger providers.
//
// With EnableTelemetry false the providers have no exporters, so spans and
// metrics are recorded in-process only. Otherwise OTLP/gRPC exporters are
// created for all three signals and trace exports are redacted with
// NewRedactingExporter. Call ApplyGlobals to install the providers globally.
func NewTelemetry(ctx context.Context, cfg TelemetryConfig) (*Telemetry, error) {
	if cfg.Logger == nil {
		return nil, ErrNilTelemetryLogger
	}

	if ctx == nil {
		ctx = context.Background()
	}

	l := cfg.Logger

	if !cfg.EnableTelemetry {
		l.Log(ctx, log.LevelWarn, "telemetry disabled, guard violations stay in-process")

		mp := sdkmetric.NewMeterProvider()
		tp := sdktrace.NewTracerProvider()
		lp := sdklog.NewLoggerProvider()

		return newTelemetry(cfg, tp, mp, lp)
	}

	if cfg.CollectorExporterEndpoint == "" {
		return nil, ErrMissingCollectorEndpoint
	}

	l.Log(ctx, log.LevelInfo, "initializing telemetry", log.String("endpoint", cfg.CollectorExporterEndpoint))

	tExp, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.CollectorExporterEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("can't initialize tracer exporter: %w", err)
	}

	mExp, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(cfg.CollectorExporterEndpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, errors.Join(
			fmt.Errorf("can't initialize metric exporter: %w", err),
			shutdownAll(ctx, tExp.Shutdown),
		)
	}

	lExp, err := otlploggrpc.New(ctx,
		otlploggrpc.WithEndpoint(cfg.CollectorExporterEndpoint),
		otlploggrpc.WithInsecure(),
	)
	if err != nil {
		return nil, errors.Join(
			fmt.Errorf("can't initialize logger exporter: %w", err),
			shutdownAll(ctx, tExp.Shutdown, mExp.Shutdown),
		)
	}

	res := cfg.newResource()

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(NewRedactingExporter(tExp, nil)),
	)

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(mExp)),
	)

	lp := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(lExp)),
	)

	tl, err := newTelemetry(cfg, tp, mp, lp)
	if err != nil {
		return nil, err
	}

	l.Log(ctx, log.LevelInfo, "telemetry initialized")

	return tl, nil
}

func newTelemetry(
	cfg TelemetryConfig,
	tp *sdktrace.TracerProvider,
	mp *sdkmetric.MeterProvider,
	lp *sdklog.LoggerProvider,
) (*Telemetry, error) {
	factory, err := metrics.NewMetricsFactory(mp.Meter(cfg.libraryName()), cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("can't initialize metrics factory: %w", err)
	}

	// Providers flush and shut down their own exporters.
	shutdown := []func(context.Context) error{mp.Shutdown, tp.Shutdown, lp.Shutdown}

	return &Telemetry{
		TelemetryConfig: cfg,
		TracerProvider:  tp,
		MeterProvider:   mp,
		LoggerProvider:  lp,
		MetricsFactory:  factory,
		shutdown:        shutdown,
	}, nil
}

// ApplyGlobals installs the providers and a W3C trace-context/baggage propagator
// as OTel globals. The zap adapter's otelzap core reads the global logger provider.
func (tl *Telemetry) ApplyGlobals() {
	if tl == nil {
		return
	}

	otel.SetTracerProvider(tl.TracerProvider)
	otel.SetMeterProvider(tl.MeterProvider)
	global.SetLoggerProvider(tl.LoggerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
}

// Tracer returns a tracer scoped to the configured library name.
//
//nolint:ireturn
func (tl *Telemetry) Tracer() trace.Tracer {
	if tl == nil || tl.TracerProvider == nil {
		return otel.Tracer(constant.TelemetrySDKName)
	}

	return tl.TracerProvider.Tracer(tl.libraryName())
}

// Shutdown flushes and stops every provider, returning the joined errors.
func (tl *Telemetry) Shutdown(ctx context.Context) error {
	if tl == nil {
		return nil
	}

	err := shutdownAll(ctx, tl.shutdown...)
	log.SafeError(tl.Logger, ctx, "can't shutdown telemetry", err, runtime.IsProductionMode())

	return err
}

// shutdownAll runs every shutdown func and joins their errors.
func shutdownAll(ctx context.Context, fns ...func(context.Context) error) error {
	var errs []error

	for _, fn := range fns {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
