package observability

import (
	"context"

	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/scouting-platform/internal/config"
	"github.com/riskibarqy/scouting-platform/internal/platform/logging"
)

// InitUptrace installs the global OpenTelemetry providers and, when log
// export is on, mirrors service logs into Uptrace. The returned func flushes
// and detaches both.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logging.SetMirror(nil)

	if !cfg.Uptrace.Enabled || cfg.Uptrace.DSN == "" {
		logger.Info("uptrace disabled", "reason", "UPTRACE_ENABLED=false or UPTRACE_DSN empty")
		return func(context.Context) error { return nil }, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.Uptrace.DSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(
			attribute.String("app.storage_driver", cfg.StorageDriver),
			attribute.Bool("app.qstash_enabled", cfg.QStash.Enabled),
		),
		uptrace.WithLoggingEnabled(cfg.Uptrace.LogsEnabled),
	)
	if cfg.Uptrace.LogsEnabled {
		logging.SetMirror(newUptraceLogMirror(cfg.ServiceVersion))
	}

	logger.Info("uptrace enabled",
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
		"logs_enabled", cfg.Uptrace.LogsEnabled,
	)

	return func(ctx context.Context) error {
		logging.SetMirror(nil)
		return uptrace.Shutdown(ctx)
	}, nil
}
