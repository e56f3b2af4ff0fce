package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/scouting-platform/internal/domain/playerprofile"
)

type PlayerProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]playerprofile.Profile
}

func NewPlayerProfileRepository(seed []playerprofile.Profile) *PlayerProfileRepository {
	r := &PlayerProfileRepository{profiles: make(map[string]playerprofile.Profile, len(seed))}
	for _, p := range seed {
		r.profiles[p.ID] = p
	}
	return r
}

func (r *PlayerProfileRepository) filter(keep func(playerprofile.Profile) bool) []playerprofile.Profile {
	out := make([]playerprofile.Profile, 0)
	for _, p := range r.profiles {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) || (out[i].CreatedAt.Equal(out[j].CreatedAt) && out[i].ID < out[j].ID) })
	return out
}

func (r *PlayerProfileRepository) List(_ context.Context) ([]playerprofile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(func(playerprofile.Profile) bool { return true }), nil
}

func containsFold(s, sub string) bool {
	return sub == "" || strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func sameDay(a *time.Time, b time.Time) bool {
	if a == nil {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (r *PlayerProfileRepository) Search(_ context.Context, f playerprofile.SearchFilter) ([]playerprofile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.filter(func(p playerprofile.Profile) bool {
		if !containsFold(p.FirstName, f.FirstName) || !containsFold(p.LastName, f.LastName) || !containsFold(p.Country, f.Country) {
			return false
		}
		return f.DateOfBirth == nil || sameDay(p.DateOfBirth, *f.DateOfBirth)
	}), nil
}

func (r *PlayerProfileRepository) GetByID(_ context.Context, id string) (playerprofile.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	return p, ok, nil
}

func (r *PlayerProfileRepository) GetByUserID(_ context.Context, userID string) (playerprofile.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.profiles {
		if p.UserID != "" && p.UserID == userID {
			return p, true, nil
		}
	}
	return playerprofile.Profile{}, false, nil
}

func (r *PlayerProfileRepository) ListByClubName(_ context.Context, clubName string) ([]playerprofile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.filter(func(p playerprofile.Profile) bool { return p.Club == clubName })
	sort.SliceStable(out, func(i, j int) bool { return out[i].FirstName < out[j].FirstName })
	return out, nil
}

func (r *PlayerProfileRepository) Update(_ context.Context, id string, patch playerprofile.Patch) (playerprofile.Profile, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[id]
	if !ok {
		return playerprofile.Profile{}, false, nil
	}
	p = patch.Apply(p)
	p.UpdatedAt = time.Now().UTC()
	r.profiles[id] = p
	return p, true, nil
}
