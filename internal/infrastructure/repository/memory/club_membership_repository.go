package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/scouting-platform/internal/domain/clubmembership"
)

type ClubMembershipRepository struct {
	mu      sync.Mutex
	clubs   *ClubRepository
	members map[string]clubmembership.Membership
}

func NewClubMembershipRepository(clubs *ClubRepository) *ClubMembershipRepository {
	return &ClubMembershipRepository{
		clubs:   clubs,
		members: make(map[string]clubmembership.Membership),
	}
}

func membershipKey(clubID, userID string) string {
	return clubID + "/" + userID
}

func (r *ClubMembershipRepository) Join(_ context.Context, m clubmembership.Membership) (clubmembership.Membership, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := membershipKey(m.ClubID, m.UserID)
	if existing, ok := r.members[key]; ok {
		return existing, false, nil
	}
	r.members[key] = m
	r.clubs.adjustMemberCount(m.ClubID, 1)
	return m, true, nil
}

func (r *ClubMembershipRepository) Leave(_ context.Context, clubID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := membershipKey(clubID, userID)
	if _, ok := r.members[key]; !ok {
		return false, nil
	}
	delete(r.members, key)
	r.clubs.adjustMemberCount(clubID, -1)
	return true, nil
}

func (r *ClubMembershipRepository) ListByClub(_ context.Context, clubID string) ([]clubmembership.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]clubmembership.Membership, 0)
	for _, m := range r.members {
		if m.ClubID == clubID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JoinedAt.Before(out[j].JoinedAt) })
	return out, nil
}
