package config

import (
	"reflect"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", StorageMemory)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("BETTERSTACK_ENABLED", "false")
	t.Setenv("QSTASH_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("FRONTEND_URL", "")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageDriver(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("STORAGE_DRIVER", "mongo")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORAGE_DRIVER")
		}
	})

	t.Run("postgres requires firebase project", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("STORAGE_DRIVER", StoragePostgres)
		t.Setenv("FIREBASE_PROJECT_ID", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error without FIREBASE_PROJECT_ID")
		}
	})

	t.Run("postgres ok", func(t *testing.T) {
		setBaseEnv(t)
		t.Setenv("STORAGE_DRIVER", StoragePostgres)
		t.Setenv("FIREBASE_PROJECT_ID", "smo-prod")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.Firebase.ProjectID != "smo-prod" {
			t.Fatalf("unexpected project id %q", cfg.Firebase.ProjectID)
		}
	})
}

func TestLoad_StatisticsDefaults(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SMO_V1_DATABASE_URL", "postgres://u:p@legacy:5432/smo_v1")
	t.Setenv("SMO_V1_SCHEMA", "")
	t.Setenv("SMO_V1_STATISTICS_TABLE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Statistics.Schema != "public" || cfg.Statistics.Table != "statistics_cache" {
		t.Fatalf("unexpected statistics config: %+v", cfg.Statistics)
	}
	if cfg.Statistics.DatabaseURL == "" {
		t.Fatalf("expected statistics database url")
	}
}

func TestLoad_CORSOriginsIncludeFrontend(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.example.com, https://admin.example.com/")
	t.Setenv("FRONTEND_URL", "https://app.example.com/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	want := []string{"https://admin.example.com", "https://app.example.com", "http://localhost:3000"}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, want) {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_CORSWildcard(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "*")
	t.Setenv("FRONTEND_URL", "https://app.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !reflect.DeepEqual(cfg.CORSAllowedOrigins, []string{"*"}) {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_QStashRequirements(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("QSTASH_ENABLED", "true")
	t.Setenv("QSTASH_TOKEN", "tok")
	t.Setenv("QSTASH_TARGET_URL", "https://worker.example.com/wake")
	t.Setenv("INTERNAL_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when QSTASH_ENABLED=true without INTERNAL_API_KEY")
	}

	t.Setenv("INTERNAL_API_KEY", "secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.QStash.Enabled || cfg.QStash.Retries != 3 {
		t.Fatalf("unexpected qstash config: %+v", cfg.QStash)
	}
}

func TestLoad_BreakerParsing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("FIREBASE_CIRCUIT_FAILURE_COUNT", "7")
	t.Setenv("FIREBASE_CIRCUIT_OPEN_TIMEOUT", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Firebase.Circuit.FailureThreshold != 7 || cfg.Firebase.Circuit.OpenTimeout != 30*time.Second {
		t.Fatalf("unexpected breaker config: %+v", cfg.Firebase.Circuit)
	}

	t.Setenv("FIREBASE_CIRCUIT_FAILURE_COUNT", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero failure count")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"CACHE_TTL":              "-1s",
		"MATCH_REQUEUE_INTERVAL": "soon",
		"METRICS_ENABLED":        "maybe",
		"DEFAULT_USER_CREDITS":   "-3",
		"APP_LOG_LEVEL":          "loud",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoad_BetterStackConfigParsing(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "s1765114.eu-fsn-3.betterstackdata.com")
	t.Setenv("BETTERSTACK_TOKEN", "token-123")
	t.Setenv("BETTERSTACK_TIMEOUT", "4s")
	t.Setenv("BETTERSTACK_MIN_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.BetterStack.Enabled || cfg.BetterStack.Timeout != 4*time.Second {
		t.Fatalf("unexpected betterstack config: %+v", cfg.BetterStack)
	}
	if cfg.BetterStack.MinLevel.String() != "warn" {
		t.Fatalf("unexpected BetterStack min level: %s", cfg.BetterStack.MinLevel)
	}
}

func TestLoad_SwaggerDefaultsByEnv(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("SWAGGER_ENABLED", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SwaggerEnabled {
		t.Fatalf("expected swagger disabled in prod by default")
	}
}

func TestParseUptraceDSNFromOTLPHeaders(t *testing.T) {
	got := parseUptraceDSNFromOTLPHeaders(`foo=bar, uptrace-dsn="https://token@api.uptrace.dev/1"`)
	if got != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected dsn %q", got)
	}
}

func TestLoadLegacy(t *testing.T) {
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("DB_URL", "postgres://u:p@db:5432/smo_dev?sslmode=disable")
	t.Setenv("FIREBASE_PROJECT_ID", "")
	t.Setenv("LEGACY_MEDIA_PREFIX", "")
	t.Setenv("LEGACY_S3_VERIFY", "true")

	cfg, err := LoadLegacy()
	if err != nil {
		t.Fatalf("load legacy: %v", err)
	}
	if cfg.DBURL != "postgres://u:p@db:5432/smo_dev?sslmode=disable" {
		t.Fatalf("unexpected db url %q", cfg.DBURL)
	}
	if cfg.Media.Prefix != DefaultLegacyMediaPrefix {
		t.Fatalf("expected default media prefix, got %q", cfg.Media.Prefix)
	}
	if !cfg.Media.VerifyS3 || cfg.Media.Bucket != "smo-operation" || cfg.Media.Region != "eu-west-2" {
		t.Fatalf("unexpected media config %+v", cfg.Media)
	}
}

func TestLoadLegacy_InvalidVerifyFlag(t *testing.T) {
	t.Setenv("APP_LOG_LEVEL", "info")
	t.Setenv("LEGACY_S3_VERIFY", "sometimes")
	if _, err := LoadLegacy(); err == nil {
		t.Fatalf("expected error for invalid LEGACY_S3_VERIFY")
	}
}
