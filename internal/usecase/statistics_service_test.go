package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/scouting-platform/internal/domain/statistics"
	"github.com/riskibarqy/scouting-platform/internal/platform/cache"
)

type countingReader struct {
	calls int
	rows  map[int64][]statistics.Row
}

func (r *countingReader) Fetch(_ context.Context, _ statistics.Subject, id int64) ([]statistics.Row, error) {
	r.calls++
	return r.rows[id], nil
}

func TestStatisticsService_Validation(t *testing.T) {
	t.Parallel()

	service := NewStatisticsService(&countingReader{}, nil)

	_, err := service.PlayerStatistics(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidInput)
	msg, _ := PublicMessage(err)
	require.Equal(t, "player_id is required", msg)

	_, err = service.ClubStatistics(context.Background(), "abc")
	require.ErrorIs(t, err, ErrInvalidInput)
	msg, _ = PublicMessage(err)
	require.Equal(t, "club_id must be a valid number", msg)
}

func TestStatisticsService_NotConfigured(t *testing.T) {
	t.Parallel()

	_, err := NewStatisticsService(nil, nil).PlayerStatistics(context.Background(), "7")
	require.ErrorIs(t, err, ErrDependencyUnavailable)
}

func TestStatisticsService_CachesRows(t *testing.T) {
	t.Parallel()

	playerID := int64(7)
	reader := &countingReader{rows: map[int64][]statistics.Row{
		7: {{CacheType: "player", PlayerID: &playerID}},
	}}
	service := NewStatisticsService(reader, cache.NewStore(0))

	for i := 0; i < 3; i++ {
		rows, err := service.PlayerStatistics(context.Background(), "7")
		require.NoError(t, err)
		require.Len(t, rows, 1)
	}
	require.Equal(t, 1, reader.calls)

	_, err := service.PlayerStatistics(context.Background(), "8")
	require.ErrorIs(t, err, ErrNotFound)
	msg, _ := PublicMessage(err)
	require.Equal(t, "No statistics found for the given player_id", msg)
}
