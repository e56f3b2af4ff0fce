package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/scouting-platform/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]user.User
}

func NewUserRepository(seed []user.User) *UserRepository {
	r := &UserRepository{users: make(map[string]user.User, len(seed))}
	for _, u := range seed {
		r.users[u.ID] = u
	}
	return r
}

func (r *UserRepository) GetByID(_ context.Context, id string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	return u, ok, nil
}

func (r *UserRepository) GetByLegacyPlayerID(_ context.Context, legacyID int64) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.LegacyPlayerID != nil && *u.LegacyPlayerID == legacyID {
			return u, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *UserRepository) Create(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[u.ID]; exists {
		return user.ErrAlreadyExists
	}
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return user.ErrAlreadyExists
		}
	}
	r.users[u.ID] = u
	return nil
}
