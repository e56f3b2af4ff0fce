package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/scouting-platform/internal/domain/profileinfo"
)

type ProfileInfoRepository struct {
	mu    sync.RWMutex
	infos []profileinfo.Info
}

func NewProfileInfoRepository(seed []profileinfo.Info) *ProfileInfoRepository {
	return &ProfileInfoRepository{infos: append([]profileinfo.Info(nil), seed...)}
}

func (r *ProfileInfoRepository) ListByType(_ context.Context, kind profileinfo.ProfileType) ([]profileinfo.Info, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]profileinfo.Info, 0)
	for _, info := range r.infos {
		if info.ProfileType == kind {
			out = append(out, info)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ProfileInfoRepository) TypeForUser(_ context.Context, userID string) (profileinfo.ProfileType, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, info := range r.infos {
		if info.UserID == userID {
			return info.ProfileType, true, nil
		}
	}
	return "", false, nil
}
