package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/scouting-platform/internal/domain/match"
	"github.com/riskibarqy/scouting-platform/internal/domain/user"
)

func newMatch(id, userID string, createdAt time.Time) match.Match {
	return match.Match{ID: id, UserID: userID, Status: match.StatusPending, Level: match.LevelSundayLeague, CreatedAt: createdAt, UpdatedAt: createdAt}
}

func TestCreateChargedDecrementsOnce(t *testing.T) {
	users := NewUserRepository([]user.User{{ID: "u1", Credits: 1}})
	repo := NewMatchRepository(users)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.CreateCharged(ctx, newMatch(string(rune('a'+i)), "u1", time.Now()))
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, user.ErrInsufficientCredits)
	}
	require.Equal(t, 1, succeeded)

	u, _, _ := users.GetByID(ctx, "u1")
	require.Equal(t, 0, u.Credits)
}

func TestCreateChargedProAndMissingUser(t *testing.T) {
	users := NewUserRepository([]user.User{{ID: "pro", IsPro: true}})
	repo := NewMatchRepository(users)
	ctx := context.Background()

	charged, err := repo.CreateCharged(ctx, newMatch("m1", "pro", time.Now()))
	require.NoError(t, err)
	require.False(t, charged)

	_, err = repo.CreateCharged(ctx, newMatch("m2", "ghost", time.Now()))
	require.ErrorIs(t, err, match.ErrUserNotFound)

	_, ok, _ := repo.GetByID(ctx, "m2")
	require.False(t, ok)
}

func TestClaimNextPendingOldestFirst(t *testing.T) {
	users := NewUserRepository([]user.User{{ID: "pro", IsPro: true}})
	repo := NewMatchRepository(users)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, _ = repo.CreateCharged(ctx, newMatch("late", "pro", base.Add(time.Hour)))
	_, _ = repo.CreateCharged(ctx, newMatch("early", "pro", base))

	got, ok, err := repo.ClaimNextPending(ctx, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "early", got.ID)
	require.Equal(t, match.StatusProcessing, got.Status)

	got, ok, _ = repo.ClaimNextPending(ctx, base.Add(2*time.Hour))
	require.True(t, ok)
	require.Equal(t, "late", got.ID)

	_, ok, _ = repo.ClaimNextPending(ctx, base.Add(2*time.Hour))
	require.False(t, ok)
}

func TestUpsertResultKeepsFirstSubmission(t *testing.T) {
	users := NewUserRepository([]user.User{{ID: "pro", IsPro: true}})
	repo := NewMatchRepository(users)
	ctx := context.Background()
	_, _ = repo.CreateCharged(ctx, newMatch("m1", "pro", time.Now()))

	first := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	ok, err := repo.UpsertResult(ctx, match.Result{MatchID: "m1", Payload: []byte(`{"events":[]}`), SubmittedAt: first, UpdatedAt: first})
	require.NoError(t, err)
	require.True(t, ok)

	later := first.Add(time.Hour)
	ok, _ = repo.UpsertResult(ctx, match.Result{MatchID: "m1", Payload: []byte(`{"events":[1]}`), SubmittedAt: later, UpdatedAt: later})
	require.True(t, ok)

	res, ok, _ := repo.GetResult(ctx, "m1")
	require.True(t, ok)
	require.JSONEq(t, `{"events":[1]}`, string(res.Payload))
	require.Equal(t, first, res.SubmittedAt)
	require.Equal(t, later, res.UpdatedAt)

	ok, _ = repo.UpsertResult(ctx, match.Result{MatchID: "missing"})
	require.False(t, ok)
}

func TestRequeueStale(t *testing.T) {
	users := NewUserRepository([]user.User{{ID: "pro", IsPro: true}})
	repo := NewMatchRepository(users)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, _ = repo.CreateCharged(ctx, newMatch("stale", "pro", base))
	_, _ = repo.CreateCharged(ctx, newMatch("fresh", "pro", base.Add(time.Minute)))
	_, _, _ = repo.ClaimNextPending(ctx, base)
	_, _, _ = repo.ClaimNextPending(ctx, base.Add(50*time.Minute))

	n, err := repo.RequeueStale(ctx, base.Add(30*time.Minute))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	m, _, _ := repo.GetByID(ctx, "stale")
	require.Equal(t, match.StatusPending, m.Status)
	require.Nil(t, m.ClaimedAt)
	require.True(t, m.UpdatedAt.After(base), "requeue should bump updated_at, got %s", m.UpdatedAt)

	m, _, _ = repo.GetByID(ctx, "fresh")
	require.Equal(t, match.StatusProcessing, m.Status)
}
