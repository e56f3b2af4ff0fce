package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/scouting-platform/internal/domain/profilevisit"
)

type ProfileVisitRepository struct {
	mu     sync.RWMutex
	users  *UserRepository
	visits []profilevisit.Visit
}

func NewProfileVisitRepository(users *UserRepository) *ProfileVisitRepository {
	return &ProfileVisitRepository{users: users}
}

func (r *ProfileVisitRepository) Record(_ context.Context, v profilevisit.Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.visits = append(r.visits, v)
	return nil
}

func (r *ProfileVisitRepository) detailed(keep func(profilevisit.Visit) bool) []profilevisit.Detailed {
	out := make([]profilevisit.Detailed, 0)
	for _, v := range r.visits {
		if !keep(v) {
			continue
		}
		d := profilevisit.Detailed{Visit: v}
		if u, ok, _ := r.users.GetByID(context.Background(), v.VisitorUserID); ok {
			d.VisitorName, d.VisitorEmail, d.VisitorPhone = u.Name, u.Email, u.Phone
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VisitedAt.After(out[j].VisitedAt) })
	return out
}

func (r *ProfileVisitRepository) ListSince(_ context.Context, profileID string, since time.Time) ([]profilevisit.Detailed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.detailed(func(v profilevisit.Visit) bool {
		return v.VisitedProfileID == profileID && !v.VisitedAt.Before(since)
	}), nil
}

func (r *ProfileVisitRepository) ListRecent(_ context.Context, profileID string, limit int) ([]profilevisit.Detailed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := r.detailed(func(v profilevisit.Visit) bool { return v.VisitedProfileID == profileID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ProfileVisitRepository) Count(_ context.Context, profileID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, v := range r.visits {
		if v.VisitedProfileID == profileID {
			n++
		}
	}
	return n, nil
}
