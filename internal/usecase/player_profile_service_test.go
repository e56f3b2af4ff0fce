package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/scouting-platform/internal/domain/playerprofile"
	"github.com/riskibarqy/scouting-platform/internal/domain/profileinfo"
	"github.com/riskibarqy/scouting-platform/internal/domain/profilevisit"
	"github.com/riskibarqy/scouting-platform/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/scouting-platform/internal/platform/id"
)

func newPlayerProfileService(now time.Time) (*PlayerProfileService, *memory.ProfileVisitRepository) {
	users := memory.NewUserRepository(memory.SeedUsers())
	visits := memory.NewProfileVisitRepository(users)
	service := NewPlayerProfileService(
		memory.NewPlayerProfileRepository(memory.SeedPlayerProfiles()),
		memory.NewProfileInfoRepository(memory.SeedProfileInfos()),
		visits,
		&id.Sequence{Prefix: "visit-"},
		nil,
	)
	service.now = func() time.Time { return now }
	return service, visits
}

func TestPlayerProfileService_ViewRecordsForeignVisitsOnly(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	service, visits := newPlayerProfileService(now)
	ctx := context.Background()

	_, err := service.View(ctx, "profile-0001", memory.SeedUserFree)
	require.NoError(t, err)
	n, _ := visits.Count(ctx, "profile-0001")
	require.Zero(t, n)

	_, err = service.View(ctx, "profile-0001", memory.SeedUserScout)
	require.NoError(t, err)
	_, err = service.View(ctx, "profile-0001", memory.SeedUserPro)
	require.NoError(t, err)

	recent, err := visits.ListRecent(ctx, "profile-0001", 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	byVisitor := map[string]profilevisit.Detailed{}
	for _, v := range recent {
		byVisitor[v.VisitorUserID] = v
	}
	require.Equal(t, string(profileinfo.TypeScout), byVisitor[memory.SeedUserScout].VisitorProfileType)
	require.Equal(t, "Sam Scout", byVisitor[memory.SeedUserScout].VisitorName)
	require.Equal(t, "profile-0002", byVisitor[memory.SeedUserPro].VisitorProfileID)
}

func TestPlayerProfileService_VisitAnalytics(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	service, visits := newPlayerProfileService(now)
	ctx := context.Background()

	record := func(id, visitor, kind string, at time.Time) {
		require.NoError(t, visits.Record(ctx, profilevisit.Visit{ID: id, VisitedProfileID: "profile-0001", VisitorUserID: visitor, VisitorProfileType: kind, VisitedAt: at}))
	}
	record("v1", memory.SeedUserScout, "Scout", now.Add(-time.Hour))
	record("v2", memory.SeedUserScout, "Scout", now.Add(-2*time.Hour))
	record("v3", "anon", "", now.Add(-3*time.Hour))
	record("v4", memory.SeedUserPro, "Football Player", now.Add(-48*time.Hour))

	got, err := service.VisitAnalytics(ctx, memory.SeedUserFree)
	require.NoError(t, err)
	require.Equal(t, 4, got.TotalVisits)
	require.Len(t, got.RecentVisits, 4)
	require.Equal(t, "v1", got.RecentVisits[0].ID)

	require.Len(t, got.TodayStats, 2)
	require.Equal(t, "Scout", got.TodayStats[0].ProfileType)
	require.Equal(t, 2, got.TodayStats[0].Count)
	require.Equal(t, 1, got.TodayStats[0].UniqueVisitors)
	require.Equal(t, unknownVisitorType, got.TodayStats[1].ProfileType)

	_, err = service.VisitAnalytics(ctx, memory.SeedUserScout)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPlayerProfileService_Update(t *testing.T) {
	t.Parallel()

	service, _ := newPlayerProfileService(time.Now())
	ctx := context.Background()

	position := "winger"
	_, err := service.Update(ctx, "profile-0001", memory.SeedUserScout, playerprofile.Patch{PrimaryPosition: &position})
	require.ErrorIs(t, err, ErrForbidden)

	bad := "Sweeper"
	_, err = service.Update(ctx, "profile-0001", memory.SeedUserFree, playerprofile.Patch{PrimaryPosition: &bad})
	require.ErrorIs(t, err, ErrInvalidInput)

	blank := "  "
	_, err = service.Update(ctx, "profile-0001", memory.SeedUserFree, playerprofile.Patch{FirstName: &blank})
	require.ErrorIs(t, err, ErrInvalidInput)

	updated, err := service.Update(ctx, "profile-0001", memory.SeedUserFree, playerprofile.Patch{PrimaryPosition: &position, ClearDateOfBirth: true})
	require.NoError(t, err)
	require.Equal(t, "Winger", updated.PrimaryPosition)
	require.Nil(t, updated.DateOfBirth)
}

func TestPlayerProfileService_SearchByBirthDate(t *testing.T) {
	t.Parallel()

	service, _ := newPlayerProfileService(time.Now())
	dob, err := playerprofile.ParseBirthDate("17-05-2004")
	require.NoError(t, err)

	got, err := service.Search(context.Background(), playerprofile.SearchFilter{DateOfBirth: &dob, Country: " england "})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "profile-0001", got[0].ID)
}
