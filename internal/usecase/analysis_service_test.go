package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/scouting-platform/internal/domain/match"
	"github.com/riskibarqy/scouting-platform/internal/domain/user"
	"github.com/riskibarqy/scouting-platform/internal/infrastructure/repository/memory"
	matchmock "github.com/riskibarqy/scouting-platform/internal/mocks/domain/match"
)

func TestNormalizeResultPayload(t *testing.T) {
	t.Parallel()

	got, err := NormalizeResultPayload([]byte(` [{"t":1},{"t":2}] `))
	require.NoError(t, err)
	require.JSONEq(t, `{"events":[{"t":1},{"t":2}]}`, string(got))

	got, err = NormalizeResultPayload([]byte(`{"result":[1,2],"meta":{"v":2}}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"result":[1,2],"meta":{"v":2}}`, string(got))

	for _, body := range []string{``, `{"result":{}}`, `{"events":[]}`, `"text"`, `[1,`} {
		_, err := NormalizeResultPayload([]byte(body))
		require.ErrorIs(t, err, ErrInvalidInput, body)
		msg, ok := PublicMessage(err)
		require.True(t, ok)
		require.Equal(t, invalidResultBodyMessage, msg)
	}
}

func TestAnalysisService_ClaimSubmitFlow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users := memory.NewUserRepository([]user.User{{ID: "pro", IsPro: true}})
	repo := memory.NewMatchRepository(users)
	_, err := repo.CreateCharged(ctx, match.Match{ID: "m1", UserID: "pro", Status: match.StatusPending, CreatedAt: time.Now()})
	require.NoError(t, err)

	service := NewAnalysisService(repo, nil, nil, time.Hour)

	claimed, ok, err := service.ClaimNext(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "m1", claimed.ID)
	require.Equal(t, match.StatusProcessing, claimed.Status)

	_, ok, err = service.ClaimNext(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = service.SubmitResult(ctx, "m1", []byte(`[{"type":"pass"}]`))
	require.NoError(t, err)
	_, err = service.SubmitResult(ctx, "m1", []byte(`[{"type":"shot"}]`))
	require.NoError(t, err)

	res, ok, _ := repo.GetResult(ctx, "m1")
	require.True(t, ok)
	require.JSONEq(t, `{"events":[{"type":"shot"}]}`, string(res.Payload))

	status, err := service.UpdateStatus(ctx, "m1", "completed")
	require.NoError(t, err)
	require.Equal(t, match.StatusCompleted, status)

	_, err = service.SubmitResult(ctx, "missing", []byte(`[]`))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAnalysisService_UpdateStatusUsingMockery(t *testing.T) {
	t.Parallel()

	repo := matchmock.NewRepository(t)
	repo.On("UpdateStatus", mock.Anything, "missing", match.StatusProcessing).Return(false, nil).Once()
	service := NewAnalysisService(repo, nil, nil, 0)

	_, err := service.UpdateStatus(context.Background(), "m1", "FAILED")
	require.ErrorIs(t, err, ErrInvalidInput)
	msg, _ := PublicMessage(err)
	require.Equal(t, "Invalid or missing status", msg)

	for _, raw := range []string{"completed", " Processing ", "pending"} {
		_, err = service.UpdateStatus(context.Background(), "m1", raw)
		require.ErrorIs(t, err, ErrInvalidInput, "status %q", raw)
	}

	_, err = service.UpdateStatus(context.Background(), "missing", "PROCESSING")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAnalysisService_RequeueStale(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	repo := matchmock.NewRepository(t)
	repo.On("RequeueStale", mock.Anything, now.Add(-30*time.Minute)).Return(2, nil).Once()

	service := NewAnalysisService(repo, nil, nil, 30*time.Minute)
	service.now = func() time.Time { return now }

	n, err := service.RequeueStale(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, n)

	disabled := NewAnalysisService(repo, nil, nil, 0)
	n, err = disabled.RequeueStale(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestAnalysisService_ClaimNextPropagatesErrors(t *testing.T) {
	t.Parallel()

	repo := matchmock.NewRepository(t)
	repo.On("ClaimNextPending", mock.Anything, mock.AnythingOfType("time.Time")).Return(match.Match{}, false, errors.New("db down")).Once()

	_, _, err := NewAnalysisService(repo, nil, nil, 0).ClaimNext(context.Background())
	require.Error(t, err)
	_, public := PublicMessage(err)
	require.False(t, public)
}
