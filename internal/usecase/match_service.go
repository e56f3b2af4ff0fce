package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/riskibarqy/scouting-platform/internal/domain/match"
	"github.com/riskibarqy/scouting-platform/internal/domain/user"
	"github.com/riskibarqy/scouting-platform/internal/platform/id"
	"github.com/riskibarqy/scouting-platform/internal/platform/logging"
	"github.com/riskibarqy/scouting-platform/internal/platform/metrics"
)

type RequestAnalysisInput struct {
	UserID    string
	VideoURL  string
	Level     string
	HomeTeam  string
	AwayTeam  string
	FocusHint string
}

type MatchDetails struct {
	Match  match.Match
	Result *match.Result
}

type MatchService struct {
	matches  match.Repository
	notifier match.Notifier
	idGen    id.Generator
	metrics  metrics.Recorder
	logger   *logging.Logger
	now      func() time.Time
}

func NewMatchService(
	matches match.Repository,
	notifier match.Notifier,
	idGen id.Generator,
	recorder metrics.Recorder,
	logger *logging.Logger,
) *MatchService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		matches:  matches,
		notifier: notifier,
		idGen:    idGen,
		metrics:  recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// RequestAnalysis queues a match for analysis and charges the caller one
// credit unless they are pro. The balance check, the insert and the charge
// commit together.
func (s *MatchService) RequestAnalysis(ctx context.Context, input RequestAnalysisInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RequestAnalysis")
	defer span.End()

	m, err := s.buildMatch(input)
	if err != nil {
		return match.Match{}, err
	}

	charged, err := s.matches.CreateCharged(ctx, m)
	switch {
	case errors.Is(err, match.ErrUserNotFound):
		return match.Match{}, newError(ErrNotFound, "User account not found.")
	case errors.Is(err, user.ErrInsufficientCredits):
		return match.Match{}, newError(ErrForbidden, "You do not have enough credits.")
	case err != nil:
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}
	s.metrics.MatchRequested(charged)

	if s.notifier != nil {
		if err := s.notifier.MatchQueued(ctx, m); err != nil {
			s.logger.WarnContext(ctx, "notify analysis worker failed", "match_id", m.ID, "error", err)
		}
	}
	return m, nil
}

func (s *MatchService) buildMatch(input RequestAnalysisInput) (match.Match, error) {
	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return match.Match{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	videoURL := strings.TrimSpace(input.VideoURL)
	if u, err := url.ParseRequestURI(videoURL); err != nil || u.Host == "" {
		return match.Match{}, newError(ErrInvalidInput, "videoUrl must be a valid URL")
	}
	level, err := match.ParseLevel(input.Level)
	if err != nil {
		return match.Match{}, newError(ErrInvalidInput, "matchLevel must be one of %s", joinLevels())
	}
	home, away := strings.TrimSpace(input.HomeTeam), strings.TrimSpace(input.AwayTeam)
	if home == "" || away == "" {
		return match.Match{}, newError(ErrInvalidInput, "homeTeam and awayTeam are required")
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}
	now := s.now().UTC()
	return match.Match{
		ID:        matchID,
		UserID:    userID,
		Title:     match.Title(home, away),
		VideoURL:  videoURL,
		HomeTeam:  home,
		AwayTeam:  away,
		Level:     level,
		FocusHint: strings.TrimSpace(input.FocusHint),
		Status:    match.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func joinLevels() string {
	parts := make([]string, 0, len(match.Levels))
	for _, l := range match.Levels {
		parts = append(parts, string(l))
	}
	return strings.Join(parts, ", ")
}

// ListMine returns the caller's matches, newest first.
func (s *MatchService) ListMine(ctx context.Context, userID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMine")
	defer span.End()

	items, err := s.matches.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return items, nil
}

// GetMine hides other users' matches behind a not-found.
func (s *MatchService) GetMine(ctx context.Context, userID, matchID string) (MatchDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMine")
	defer span.End()

	m, ok, err := s.matches.GetByID(ctx, strings.TrimSpace(matchID))
	if err != nil {
		return MatchDetails{}, fmt.Errorf("get match: %w", err)
	}
	if !ok || m.UserID != userID {
		return MatchDetails{}, newError(ErrNotFound, "Match not found")
	}

	details := MatchDetails{Match: m}
	result, ok, err := s.matches.GetResult(ctx, m.ID)
	if err != nil {
		return MatchDetails{}, fmt.Errorf("get match result: %w", err)
	}
	if ok {
		details.Result = &result
	}
	return details, nil
}
