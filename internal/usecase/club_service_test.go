package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/scouting-platform/internal/domain/club"
	"github.com/riskibarqy/scouting-platform/internal/domain/clubmembership"
	"github.com/riskibarqy/scouting-platform/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/scouting-platform/internal/platform/id"
)

func newClubService() (*ClubService, *memory.ClubRepository) {
	clubs := memory.NewClubRepository(memory.SeedClubs())
	service := NewClubService(
		clubs,
		memory.NewPlayerProfileRepository(memory.SeedPlayerProfiles()),
		memory.NewClubMembershipRepository(clubs),
		&id.Sequence{Prefix: "id-"},
	)
	return service, clubs
}

func TestClubService_ListClubsPaginates(t *testing.T) {
	t.Parallel()

	service, _ := newClubService()
	ctx := context.Background()

	page, err := service.ListClubs(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, page.Clubs, 2)
	require.True(t, page.HasNextPage)
	require.Equal(t, page.Clubs[1].ID, page.NextCursor)

	page, err = service.ListClubs(ctx, page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page.Clubs, 1)
	require.False(t, page.HasNextPage)
	require.Empty(t, page.NextCursor)

	page, err = service.ListClubs(ctx, "", 0)
	require.NoError(t, err)
	require.Equal(t, DefaultClubPageSize, page.Limit)
}

func TestClubService_GetClubIncludesMembers(t *testing.T) {
	t.Parallel()

	service, _ := newClubService()
	details, err := service.GetClub(context.Background(), memory.SeedClubID)
	require.NoError(t, err)
	require.Len(t, details.Members, 2)
	require.Equal(t, "Jamie", details.Members[0].FirstName)

	_, err = service.GetClub(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestClubService_CreateUpdateDelete(t *testing.T) {
	t.Parallel()

	service, clubs := newClubService()
	ctx := context.Background()

	_, err := service.CreateClub(ctx, ClubInput{Name: " ", Country: "England"})
	require.ErrorIs(t, err, ErrInvalidInput)

	c, err := service.CreateClub(ctx, ClubInput{Name: " Eastside United ", Country: "England"})
	require.NoError(t, err)
	require.Equal(t, "Eastside United", c.Name)
	require.Equal(t, "eastside-united-england", c.Slug)
	require.Equal(t, club.StatusUnclaimed, c.Status)

	updated, err := service.UpdateClub(ctx, c.ID, ClubInput{Name: "Eastside Utd", Country: "England"})
	require.NoError(t, err)
	require.Equal(t, "eastside-utd-england", updated.Slug)

	require.NoError(t, service.DeleteClub(ctx, c.ID))
	_, ok, _ := clubs.GetByID(ctx, c.ID)
	require.False(t, ok)

	err = service.DeleteClub(ctx, c.ID)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestClubService_JoinAndLeave(t *testing.T) {
	t.Parallel()

	service, _ := newClubService()
	ctx := context.Background()

	m, joined, err := service.JoinClub(ctx, "club-0003", memory.SeedUserPro)
	require.NoError(t, err)
	require.True(t, joined)
	require.Equal(t, clubmembership.RoleOwner, m.Role)

	_, joined, err = service.JoinClub(ctx, "club-0003", memory.SeedUserPro)
	require.NoError(t, err)
	require.False(t, joined)

	items, err := service.ListMemberships(ctx, "club-0003")
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, service.LeaveClub(ctx, "club-0003", memory.SeedUserPro))
	require.ErrorIs(t, service.LeaveClub(ctx, "club-0003", memory.SeedUserPro), ErrNotFound)
}
