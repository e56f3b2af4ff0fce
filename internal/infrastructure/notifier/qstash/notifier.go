package qstash

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/scouting-platform/internal/domain/match"
	"github.com/riskibarqy/scouting-platform/internal/platform/logging"
	"github.com/riskibarqy/scouting-platform/internal/platform/resilience"
)

var errQStashTransient = crerr.New("qstash transient failure")

type Config struct {
	BaseURL   string
	Token     string
	TargetURL string
	Retries   int
	APIKey    string
	Timeout   time.Duration
	Circuit   resilience.BreakerConfig
}

// Notifier wakes the analysis worker through a QStash publish. The worker
// still pulls work with the claim endpoint; the message only carries hints.
type Notifier struct {
	client    *http.Client
	baseURL   string
	token     string
	targetURL string
	retries   int
	apiKey    string
	logger    *logging.Logger
	breaker   *resilience.Breaker
}

var _ match.Notifier = (*Notifier)(nil)

type matchQueuedMessage struct {
	MatchID   string `json:"matchId"`
	UserID    string `json:"userId"`
	Level     string `json:"level"`
	VideoURL  string `json:"videoUrl"`
	FocusHint string `json:"focusHint,omitempty"`
	QueuedAt  string `json:"queuedAt"`
}

func NewNotifier(cfg Config, logger *logging.Logger) (*Notifier, error) {
	baseURL, err := validateHTTPBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid QSTASH_BASE_URL")
	}
	targetURL, err := validateHTTPBaseURL(cfg.TargetURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid QSTASH_TARGET_URL")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Notifier{
		client:    &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		token:     strings.TrimSpace(cfg.Token),
		targetURL: targetURL,
		retries:   cfg.Retries,
		apiKey:    strings.TrimSpace(cfg.APIKey),
		logger:    logger.Named("qstash"),
		breaker:   resilience.NewBreaker(cfg.Circuit),
	}, nil
}

func (n *Notifier) MatchQueued(ctx context.Context, m match.Match) error {
	body, err := sonic.Marshal(matchQueuedMessage{
		MatchID:   m.ID,
		UserID:    m.UserID,
		Level:     string(m.Level),
		VideoURL:  m.VideoURL,
		FocusHint: m.FocusHint,
		QueuedAt:  m.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return crerr.Wrap(err, "marshal match queued message")
	}

	_, err = resilience.Do(ctx, n.breaker, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, n.publish(ctx, body, "match-queued-"+m.ID)
	})
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		n.logger.WarnContext(ctx, "qstash circuit breaker rejected request", "state", string(n.breaker.State()))
		return fmt.Errorf("qstash is temporarily unavailable: %w", err)
	}
	return err
}

func (n *Notifier) publish(ctx context.Context, body []byte, deduplicationID string) error {
	publishURL := n.baseURL + "/v2/publish/" + n.targetURL
	curlPreview := buildCurlPreview(publishURL, n.retries, deduplicationID, string(body), n.apiKey != "")

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("qstash.publish_url", publishURL),
			attribute.String("qstash.target_url", n.targetURL),
			attribute.String("qstash.deduplication_id", deduplicationID),
		)
	}
	n.logger.DebugContext(ctx, "qstash publish request", "target_url", n.targetURL, "curl_preview", curlPreview)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, publishURL, strings.NewReader(string(body)))
	if err != nil {
		return crerr.Wrap(err, "create qstash request")
	}
	req.Header.Set("Authorization", "Bearer "+n.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Upstash-Method", http.MethodPost)
	if n.retries > 0 {
		req.Header.Set("Upstash-Retries", strconv.Itoa(n.retries))
	}
	req.Header.Set("Upstash-Deduplication-Id", deduplicationID)
	if n.apiKey != "" {
		req.Header.Set("Upstash-Forward-X-Api-Key", n.apiKey)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: publish target_url=%s: %v", errQStashTransient, n.targetURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if isRetryableStatus(resp.StatusCode) {
			return fmt.Errorf("%w: publish status=%d target_url=%s body=%s",
				errQStashTransient, resp.StatusCode, n.targetURL, strings.TrimSpace(string(raw)))
		}
		return crerr.Newf("publish status=%d target_url=%s body=%s",
			resp.StatusCode, n.targetURL, strings.TrimSpace(string(raw)))
	}

	n.logger.InfoContext(ctx, "qstash message published", "deduplication_id", deduplicationID)
	return nil
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}
	return strings.TrimRight(candidate, "/"), nil
}

func buildCurlPreview(publishURL string, retries int, deduplicationID, body string, withAPIKey bool) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}
	header := func(value string) {
		appendPart("-H")
		appendPart(shellQuote(value))
	}

	appendPart("curl -X POST")
	appendPart(shellQuote(publishURL))
	header("Authorization: Bearer ***")
	header("Content-Type: application/json")
	if retries > 0 {
		header("Upstash-Retries: " + strconv.Itoa(retries))
	}
	if deduplicationID != "" {
		header("Upstash-Deduplication-Id: " + deduplicationID)
	}
	if withAPIKey {
		header("Upstash-Forward-X-Api-Key: ***")
	}
	appendPart("-d")
	appendPart(shellQuote(body))
	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
