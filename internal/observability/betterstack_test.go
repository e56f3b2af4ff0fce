package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/scouting-platform/internal/config"
	"github.com/riskibarqy/scouting-platform/internal/platform/logging"
)

func TestInitBetterStackLogger_SendsErrorLog(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	requestCount := 0
	var lastAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requestCount++
		lastAuth = r.Header.Get("Authorization")
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	baseLogger := logging.NewNop()
	cfg := config.Config{
		BetterStack: config.BetterStackConfig{
			Enabled:  true,
			Endpoint: server.URL,
			Token:    "secret-token",
			Timeout:  2 * time.Second,
			MinLevel: logging.LevelError,
		},
		ServiceName: "scouting-platform-api",
		AppEnv:      config.EnvDev,
	}

	logger, shutdown, err := InitBetterStackLogger(cfg, baseLogger)
	if err != nil {
		t.Fatalf("init betterstack logger: %v", err)
	}

	logger.ErrorContext(context.Background(), "match claim failed", "component", "analysis")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown logger: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if requestCount == 0 {
		t.Fatalf("expected Better Stack endpoint to receive at least 1 request")
	}
	if lastAuth != "Bearer secret-token" {
		t.Fatalf("unexpected authorization header: %q", lastAuth)
	}
}

func TestInitBetterStackLogger_RespectsMinLevel(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	requestCount := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requestCount++
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	baseLogger := logging.NewNop()
	cfg := config.Config{
		BetterStack: config.BetterStackConfig{
			Enabled:  true,
			Endpoint: server.URL,
			Timeout:  2 * time.Second,
			MinLevel: logging.LevelError,
		},
		ServiceName: "scouting-platform-api",
		AppEnv:      config.EnvDev,
	}

	logger, shutdown, err := InitBetterStackLogger(cfg, baseLogger)
	if err != nil {
		t.Fatalf("init betterstack logger: %v", err)
	}

	logger.InfoContext(context.Background(), "info log should not be shipped")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("shutdown logger: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if requestCount != 0 {
		t.Fatalf("expected no request for info log, got %d", requestCount)
	}
}

func TestBetterStackSink_BatchesEntries(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var batches [][]map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var batch []map[string]any
		if err := sonic.Unmarshal(body, &batch); err != nil {
			t.Errorf("decode batch: %v", err)
		}
		mu.Lock()
		batches = append(batches, batch)
		mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sink := newBetterStackSink(server.URL, "", time.Second)
	for _, line := range []string{`{"msg":"a"}`, `{"msg":"b"}`, "  ", `{"msg":"c"}` + "\n"} {
		if _, err := sink.Write([]byte(line)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := sink.Close(ctx); err != nil {
		t.Fatalf("close sink: %v", err)
	}
	if _, err := sink.Write([]byte(`{"msg":"late"}`)); err != nil {
		t.Fatalf("write after close: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	total := 0
	for _, b := range batches {
		total += len(b)
	}
	if total != 3 {
		t.Fatalf("expected 3 shipped entries, got %d in %d batches", total, len(batches))
	}
}

func TestBetterStackEndpoint(t *testing.T) {
	if got := betterStackEndpoint(" in.logs.betterstack.com "); got != "https://in.logs.betterstack.com" {
		t.Fatalf("unexpected endpoint %q", got)
	}
	if got := betterStackEndpoint("http://localhost:9000"); got != "http://localhost:9000" {
		t.Fatalf("unexpected endpoint %q", got)
	}
	if got := betterStackEndpoint(""); got != "" {
		t.Fatalf("expected empty endpoint, got %q", got)
	}
}
