package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/scouting-platform/internal/domain/statistics"
	"github.com/riskibarqy/scouting-platform/internal/platform/cache"
)

// StatisticsService reads pre-computed player and club statistics from the
// legacy analytics database. A nil reader means the database is not configured.
type StatisticsService struct {
	reader statistics.Reader
	cache  *cache.Store
}

func NewStatisticsService(reader statistics.Reader, store *cache.Store) *StatisticsService {
	return &StatisticsService{reader: reader, cache: store}
}

func (s *StatisticsService) PlayerStatistics(ctx context.Context, rawPlayerID string) ([]statistics.Row, error) {
	return s.fetch(ctx, statistics.SubjectPlayer, "player_id", rawPlayerID)
}

func (s *StatisticsService) ClubStatistics(ctx context.Context, rawClubID string) ([]statistics.Row, error) {
	return s.fetch(ctx, statistics.SubjectClub, "club_id", rawClubID)
}

func (s *StatisticsService) fetch(ctx context.Context, subject statistics.Subject, param, raw string) ([]statistics.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatisticsService.Fetch")
	defer span.End()

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, newError(ErrInvalidInput, "%s is required", param)
	}
	subjectID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, newError(ErrInvalidInput, "%s must be a valid number", param)
	}
	if s.reader == nil {
		return nil, newError(ErrDependencyUnavailable, "Statistics database is not configured")
	}

	key := fmt.Sprintf("statistics:%s:%d", subject, subjectID)
	rows, err := cache.Load(ctx, s.cache, key, func(ctx context.Context) ([]statistics.Row, error) {
		return s.reader.Fetch(ctx, subject, subjectID)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s statistics: %w", subject, err)
	}
	if len(rows) == 0 {
		return nil, newError(ErrNotFound, "No statistics found for the given %s", param)
	}
	return rows, nil
}
