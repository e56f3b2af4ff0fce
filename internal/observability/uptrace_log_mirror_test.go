package observability

import (
	"errors"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"

	"github.com/riskibarqy/scouting-platform/internal/platform/logging"
)

func TestIsQuietRequestLog(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		args []any
		want bool
	}{
		{name: "health check", msg: "http_request", args: []any{"http_method", "GET", "http_path", "/healthz"}, want: true},
		{name: "metrics scrape", msg: "http_request", args: []any{"http_path", "/metrics"}, want: true},
		{name: "api request", msg: "http_request", args: []any{"http_path", "/club"}, want: false},
		{name: "other event", msg: "qstash message published", args: []any{"http_path", "/healthz"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isQuietRequestLog(tt.msg, tt.args); got != tt.want {
				t.Fatalf("isQuietRequestLog()=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestLogAttributes(t *testing.T) {
	attrs := logAttributes([]any{"match_id", "match-42", "attempt", 2, "x-api-key", "worker-secret", 7, "odd", "payload"})
	if len(attrs) != 5 {
		t.Fatalf("expected 5 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "match_id" || attrs[0].Value.AsString() != "match-42" {
		t.Fatalf("unexpected match_id attribute %v", attrs[0])
	}
	if attrs[1].Key != "attempt" || attrs[1].Value.AsInt64() != 2 {
		t.Fatalf("unexpected attempt attribute %v", attrs[1])
	}
	if attrs[2].Value.AsString() != redactedValue {
		t.Fatalf("expected api key to be redacted, got %q", attrs[2].Value.AsString())
	}
	if attrs[3].Key != "arg_3" {
		t.Fatalf("expected positional key for non-string key, got %q", attrs[3].Key)
	}
	if attrs[4].Key != "payload" || attrs[4].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected dangling attribute %v", attrs[4])
	}
}

func TestOTelValue(t *testing.T) {
	if v := otelValue(map[string]any{"goals": 3}); v.AsString() != `{"goals":3}` {
		t.Fatalf("expected JSON encoded map, got %q", v.AsString())
	}
	if v := otelValue(errors.New("boom")); v.AsString() != "boom" {
		t.Fatalf("unexpected error value %q", v.AsString())
	}
	if v := otelValue(1500 * time.Millisecond); v.AsString() != "1.5s" {
		t.Fatalf("unexpected duration value %q", v.AsString())
	}
	if v := otelValue(nil); v.Kind() != otellog.KindEmpty {
		t.Fatalf("expected empty value for nil, got %s", v.Kind())
	}
}

func TestOTelSeverity(t *testing.T) {
	if otelSeverity(logging.LevelWarn) != otellog.SeverityWarn {
		t.Fatalf("warn should map to SeverityWarn")
	}
	if otelSeverity(logging.LevelError+1) != otellog.SeverityFatal {
		t.Fatalf("levels above error should map to SeverityFatal")
	}
}
