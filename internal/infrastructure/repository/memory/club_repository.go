package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/scouting-platform/internal/domain/club"
)

type ClubRepository struct {
	mu    sync.RWMutex
	clubs map[string]club.Club
}

func NewClubRepository(seed []club.Club) *ClubRepository {
	r := &ClubRepository{clubs: make(map[string]club.Club, len(seed))}
	for _, c := range seed {
		r.clubs[c.ID] = c
	}
	return r
}

func (r *ClubRepository) sorted() []club.Club {
	out := make([]club.Club, 0, len(r.clubs))
	for _, c := range r.clubs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *ClubRepository) List(_ context.Context, q club.ListQuery) ([]club.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]club.Club, 0, q.Limit)
	for _, c := range r.sorted() {
		if q.AfterID != "" && c.ID <= q.AfterID {
			continue
		}
		out = append(out, c)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (r *ClubRepository) GetByID(_ context.Context, id string) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clubs[id]
	return c, ok, nil
}

func (r *ClubRepository) FindByNameAndCountry(_ context.Context, name, country string) (club.Club, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.sorted() {
		if strings.EqualFold(c.Name, name) && strings.EqualFold(c.Country, country) {
			return c, true, nil
		}
	}
	return club.Club{}, false, nil
}

func (r *ClubRepository) ListWithLegacyID(_ context.Context, limit int) ([]club.Club, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]club.Club, 0)
	for _, c := range r.sorted() {
		if c.LegacyClubID == nil {
			continue
		}
		out = append(out, c)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *ClubRepository) Create(_ context.Context, c club.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clubs[c.ID] = c
	return nil
}

func (r *ClubRepository) Update(_ context.Context, c club.Club) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clubs[c.ID]; !ok {
		return false, nil
	}
	r.clubs[c.ID] = c
	return true, nil
}

func (r *ClubRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clubs[id]; !ok {
		return false, nil
	}
	delete(r.clubs, id)
	return true, nil
}

func (r *ClubRepository) adjustMemberCount(clubID string, delta int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.clubs[clubID]; ok {
		c.MemberCount += delta
		if c.MemberCount < 0 {
			c.MemberCount = 0
		}
		r.clubs[clubID] = c
	}
}
