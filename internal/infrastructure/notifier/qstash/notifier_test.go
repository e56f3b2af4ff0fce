package qstash

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/scouting-platform/internal/domain/match"
	"github.com/riskibarqy/scouting-platform/internal/platform/resilience"
)

func testMatch() match.Match {
	return match.Match{
		ID:        "match-1",
		UserID:    "user-free",
		VideoURL:  "https://videos.example.com/m1.mp4",
		Level:     match.LevelSundayLeague,
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestMatchQueuedPublishes(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth, gotDedup, gotKey string
	var gotBody matchQueuedMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotDedup = r.Header.Get("Upstash-Deduplication-Id")
		gotKey = r.Header.Get("Upstash-Forward-X-Api-Key")
		raw, _ := io.ReadAll(r.Body)
		_ = sonic.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	n, err := NewNotifier(Config{
		BaseURL:   srv.URL,
		Token:     "qstash-token",
		TargetURL: "https://worker.example.com/wake",
		APIKey:    "internal-key",
	}, nil)
	require.NoError(t, err)

	require.NoError(t, n.MatchQueued(context.Background(), testMatch()))
	require.Equal(t, "/v2/publish/https://worker.example.com/wake", gotPath)
	require.Equal(t, "Bearer qstash-token", gotAuth)
	require.Equal(t, "match-queued-match-1", gotDedup)
	require.Equal(t, "internal-key", gotKey)
	require.Equal(t, "match-1", gotBody.MatchID)
	require.Equal(t, "SUNDAY_LEAGUE", gotBody.Level)
	require.Equal(t, "2026-03-01T10:00:00Z", gotBody.QueuedAt)
}

func TestMatchQueuedOpensCircuitOnOutage(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	n, err := NewNotifier(Config{
		BaseURL:   srv.URL,
		Token:     "t",
		TargetURL: "https://worker.example.com/wake",
		Circuit:   resilience.BreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenProbes: 1},
	}, nil)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		err := n.MatchQueued(context.Background(), testMatch())
		require.ErrorIs(t, err, errQStashTransient)
	}
	err = n.MatchQueued(context.Background(), testMatch())
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
	require.Equal(t, int32(2), hits.Load())
}

func TestNewNotifierValidatesURLs(t *testing.T) {
	t.Parallel()

	_, err := NewNotifier(Config{BaseURL: "ftp://qstash", TargetURL: "https://worker.example.com"}, nil)
	require.Error(t, err)
	_, err = NewNotifier(Config{BaseURL: "https://qstash.upstash.io", TargetURL: ""}, nil)
	require.Error(t, err)
}

func TestCurlPreviewMasksSecrets(t *testing.T) {
	t.Parallel()

	preview := buildCurlPreview("https://q/v2/publish/x", 3, "d1", `{"a":"it's"}`, true)
	require.Contains(t, preview, "Authorization: Bearer ***")
	require.Contains(t, preview, "Upstash-Forward-X-Api-Key: ***")
	require.Contains(t, preview, `'{"a":"it'"'"'s"}'`)
}
