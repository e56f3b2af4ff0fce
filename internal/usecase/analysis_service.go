package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/scouting-platform/internal/domain/match"
	"github.com/riskibarqy/scouting-platform/internal/platform/logging"
	"github.com/riskibarqy/scouting-platform/internal/platform/metrics"
)

const invalidResultBodyMessage = "Invalid body format. Expected array or object with 'result'."

// AnalysisService is the surface used by the external analysis worker.
type AnalysisService struct {
	matches           match.Repository
	metrics           metrics.Recorder
	logger            *logging.Logger
	processingTimeout time.Duration
	now               func() time.Time
}

func NewAnalysisService(matches match.Repository, recorder metrics.Recorder, logger *logging.Logger, processingTimeout time.Duration) *AnalysisService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AnalysisService{
		matches:           matches,
		metrics:           recorder,
		logger:            logger,
		processingTimeout: processingTimeout,
		now:               time.Now,
	}
}

// ClaimNext hands out the oldest pending match and marks it PROCESSING.
// ok is false when nothing is waiting.
func (s *AnalysisService) ClaimNext(ctx context.Context) (match.Match, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.ClaimNext")
	defer span.End()

	m, ok, err := s.matches.ClaimNextPending(ctx, s.now().UTC())
	if err != nil {
		return match.Match{}, false, fmt.Errorf("claim next pending match: %w", err)
	}
	if ok {
		s.metrics.MatchClaimed()
		s.logger.InfoContext(ctx, "match claimed for analysis", "match_id", m.ID)
	}
	return m, ok, nil
}

func (s *AnalysisService) UpdateStatus(ctx context.Context, matchID, rawStatus string) (match.Status, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.UpdateStatus")
	defer span.End()

	status, ok := match.ParseStatus(rawStatus)
	if !ok {
		return "", newError(ErrInvalidInput, "Invalid or missing status")
	}
	updated, err := s.matches.UpdateStatus(ctx, strings.TrimSpace(matchID), status)
	if err != nil {
		return "", fmt.Errorf("update match status: %w", err)
	}
	if !updated {
		return "", newError(ErrNotFound, "Match not found")
	}
	return status, nil
}

// SubmitResult stores the worker's payload. Resubmitting replaces the stored
// payload; the match status is left as is.
func (s *AnalysisService) SubmitResult(ctx context.Context, matchID string, body []byte) (match.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.SubmitResult")
	defer span.End()

	payload, err := NormalizeResultPayload(body)
	if err != nil {
		return match.Result{}, err
	}

	now := s.now().UTC()
	result := match.Result{
		MatchID:     strings.TrimSpace(matchID),
		Payload:     payload,
		SubmittedAt: now,
		UpdatedAt:   now,
	}
	ok, err := s.matches.UpsertResult(ctx, result)
	if err != nil {
		return match.Result{}, fmt.Errorf("upsert match result: %w", err)
	}
	if !ok {
		return match.Result{}, newError(ErrNotFound, "Match not found")
	}
	s.metrics.MatchResultSubmitted()
	return result, nil
}

// RequeueStale returns abandoned PROCESSING matches to the queue.
func (s *AnalysisService) RequeueStale(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.RequeueStale")
	defer span.End()

	if s.processingTimeout <= 0 {
		return 0, nil
	}
	n, err := s.matches.RequeueStale(ctx, s.now().UTC().Add(-s.processingTimeout))
	if err != nil {
		return 0, fmt.Errorf("requeue stale matches: %w", err)
	}
	if n > 0 {
		s.metrics.MatchesRequeued(n)
		s.logger.WarnContext(ctx, "requeued stale matches", "count", n, "processing_timeout", s.processingTimeout.String())
	}
	return n, nil
}

// NormalizeResultPayload accepts either a bare JSON array of events, which is
// wrapped as {"events": [...]}, or an object whose "result" field is an array,
// which is kept as is.
func NormalizeResultPayload(body []byte) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil, newError(ErrInvalidInput, invalidResultBodyMessage)
	}

	switch trimmed[0] {
	case '[':
		var events []json.RawMessage
		if err := sonic.UnmarshalString(trimmed, &events); err != nil {
			return nil, newError(ErrInvalidInput, invalidResultBodyMessage)
		}
		wrapped, err := sonic.Marshal(map[string]json.RawMessage{"events": json.RawMessage(trimmed)})
		if err != nil {
			return nil, fmt.Errorf("encode result payload: %w", err)
		}
		return wrapped, nil
	case '{':
		var obj map[string]json.RawMessage
		if err := sonic.UnmarshalString(trimmed, &obj); err != nil {
			return nil, newError(ErrInvalidInput, invalidResultBodyMessage)
		}
		result := strings.TrimSpace(string(obj["result"]))
		if !strings.HasPrefix(result, "[") {
			return nil, newError(ErrInvalidInput, invalidResultBodyMessage)
		}
		return json.RawMessage(trimmed), nil
	default:
		return nil, newError(ErrInvalidInput, invalidResultBodyMessage)
	}
}
