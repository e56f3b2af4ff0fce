package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/scouting-platform/internal/config"
	"github.com/riskibarqy/scouting-platform/internal/infrastructure/account/devtoken"
	"github.com/riskibarqy/scouting-platform/internal/infrastructure/account/firebase"
	"github.com/riskibarqy/scouting-platform/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		HTTPAddr:       ":0",
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		StorageDriver:  config.StorageMemory,
		CacheEnabled:   true,
		CacheTTL:       time.Minute,
		InternalAPIKey: "secret",
		Requeue: config.RequeueConfig{
			Enabled:           true,
			Interval:          time.Minute,
			ProcessingTimeout: time.Hour,
		},
	}
}

func TestNew_MemoryModeServesRequests(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	a.Start()
	defer func() { require.NoError(t, a.closeResources()) }()

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/club", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+devtoken.Prefix+"user-pro")
	a.Server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNew_RequiresAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""

	_, err := New(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}

func TestBuildVerifier(t *testing.T) {
	cfg := memoryConfig()

	v, err := buildVerifier(cfg, repositories{}, logging.NewNop())
	require.NoError(t, err)
	require.IsType(t, &devtoken.Verifier{}, v)

	cfg.Firebase.ProjectID = "scouting-dev"
	v, err = buildVerifier(cfg, repositories{}, logging.NewNop())
	require.NoError(t, err)
	require.IsType(t, &firebase.Verifier{}, v)

	cfg.Firebase.ProjectID = ""
	cfg.StorageDriver = config.StoragePostgres
	_, err = buildVerifier(cfg, repositories{}, logging.NewNop())
	require.Error(t, err)
}
