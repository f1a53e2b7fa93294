package zap

import (
	"fmt"
	"strings"

	constant "github.com/LerianStudio/lib-guard/guard/constants"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment selects the encoder preset and default level.
type Environment string

const (
	EnvironmentProduction  Environment = "production"
	EnvironmentStaging     Environment = "staging"
	EnvironmentDevelopment Environment = "development"
	EnvironmentLocal       Environment = "local"
)

type preset struct {
	base         func() zap.Config
	defaultLevel zapcore.Level
}

var presets = map[Environment]preset{
	EnvironmentProduction:  {base: zap.NewProductionConfig, defaultLevel: zapcore.InfoLevel},
	EnvironmentStaging:     {base: zap.NewProductionConfig, defaultLevel: zapcore.InfoLevel},
	EnvironmentDevelopment: {base: zap.NewDevelopmentConfig, defaultLevel: zapcore.DebugLevel},
	EnvironmentLocal:       {base: zap.NewDevelopmentConfig, defaultLevel: zapcore.DebugLevel},
}

// Config configures New.
type Config struct {
	Environment Environment
	// Level overrides the environment default ("debug", "info", "warn", "error").
	Level string
	// OTelLibraryName scopes the otelzap bridge. Defaults to constant.TelemetrySDKName.
	OTelLibraryName string
	// Service, when set, is added as a "service" field to every entry.
	Service string
}

// New builds a JSON zap logger teed into the OpenTelemetry log bridge, so guard
// violations reach both stdout and the global LoggerProvider.
//
// Automatic stacktraces are off; the Enforcer supplies its own stack.
func New(cfg Config) (*Logger, error) {
	p, ok := presets[cfg.Environment]
	if !ok {
		return nil, fmt.Errorf("invalid zap config: unknown environment %q", cfg.Environment)
	}

	level := zap.NewAtomicLevelAt(p.defaultLevel)
	if lvl := strings.TrimSpace(cfg.Level); lvl != "" {
		if err := level.UnmarshalText([]byte(lvl)); err != nil {
			return nil, fmt.Errorf("invalid zap config: level %q: %w", cfg.Level, err)
		}
	}

	scope := strings.TrimSpace(cfg.OTelLibraryName)
	if scope == "" {
		scope = constant.TelemetrySDKName
	}

	zc := p.base()
	zc.Level = level
	zc.Encoding = "json"
	zc.DisableStacktrace = true
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	opts := []zap.Option{
		// Skip Logger.Log so the caller is the guard call site.
		zap.AddCallerSkip(1),
		zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, otelzap.NewCore(scope))
		}),
	}

	if cfg.Service != "" {
		opts = append(opts, zap.Fields(zap.String("service", cfg.Service)))
	}

	base, err := zc.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}

	return &Logger{base: base, level: level}, nil
}
