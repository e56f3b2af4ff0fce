package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/scouting-platform/internal/config"
	"github.com/riskibarqy/scouting-platform/internal/platform/logging"
)

func TestInitUptrace_DisabledWithoutDSN(t *testing.T) {
	cfg := config.Config{
		ServiceName:    "scouting-platform-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
		Uptrace:        config.UptraceConfig{Enabled: true, LogsEnabled: true},
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}
