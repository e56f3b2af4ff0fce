package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/scouting-platform/internal/domain/match"
)

// MatchRepository shares the user store so credit charges and match inserts
// happen under one lock, mirroring the postgres transaction.
type MatchRepository struct {
	mu      sync.Mutex
	users   *UserRepository
	matches map[string]match.Match
	results map[string]match.Result
}

func NewMatchRepository(users *UserRepository) *MatchRepository {
	return &MatchRepository{
		users:   users,
		matches: make(map[string]match.Match),
		results: make(map[string]match.Result),
	}
}

func (r *MatchRepository) CreateCharged(_ context.Context, m match.Match) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users.mu.Lock()
	defer r.users.mu.Unlock()

	owner, ok := r.users.users[m.UserID]
	if !ok {
		return false, match.ErrUserNotFound
	}
	charged, err := owner.ChargeForAnalysis()
	if err != nil {
		return false, err
	}

	r.matches[m.ID] = m
	if charged {
		owner.Credits--
		r.users.users[owner.ID] = owner
	}
	return charged, nil
}

func (r *MatchRepository) GetByID(_ context.Context, id string) (match.Match, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.matches[id]
	return m, ok, nil
}

func (r *MatchRepository) ListByUser(_ context.Context, userID string) ([]match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]match.Match, 0)
	for _, m := range r.matches {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *MatchRepository) ClaimNextPending(_ context.Context, now time.Time) (match.Match, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var next *match.Match
	for id := range r.matches {
		m := r.matches[id]
		if m.Status != match.StatusPending {
			continue
		}
		if next == nil || m.CreatedAt.Before(next.CreatedAt) || (m.CreatedAt.Equal(next.CreatedAt) && m.ID < next.ID) {
			next = &m
		}
	}
	if next == nil {
		return match.Match{}, false, nil
	}

	claimedAt := now
	next.Status = match.StatusProcessing
	next.ClaimedAt = &claimedAt
	next.UpdatedAt = now
	r.matches[next.ID] = *next
	return *next, true, nil
}

func (r *MatchRepository) UpdateStatus(_ context.Context, id string, status match.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.matches[id]
	if !ok {
		return false, nil
	}
	m.Status = status
	if status == match.StatusPending {
		m.ClaimedAt = nil
	}
	m.UpdatedAt = time.Now().UTC()
	r.matches[id] = m
	return true, nil
}

func (r *MatchRepository) UpsertResult(_ context.Context, res match.Result) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.matches[res.MatchID]; !ok {
		return false, nil
	}
	if prev, ok := r.results[res.MatchID]; ok {
		res.SubmittedAt = prev.SubmittedAt
	}
	r.results[res.MatchID] = res
	return true, nil
}

func (r *MatchRepository) GetResult(_ context.Context, matchID string) (match.Result, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.results[matchID]
	return res, ok, nil
}

func (r *MatchRepository) RequeueStale(_ context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	n := 0
	for id, m := range r.matches {
		if m.Status != match.StatusProcessing || m.ClaimedAt == nil || !m.ClaimedAt.Before(cutoff) {
			continue
		}
		if _, done := r.results[id]; done {
			continue
		}
		m.Status = match.StatusPending
		m.ClaimedAt = nil
		m.UpdatedAt = now
		r.matches[id] = m
		n++
	}
	return n, nil
}
