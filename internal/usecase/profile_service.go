package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/scouting-platform/internal/domain/profileinfo"
)

// ProfileService serves the public player and scout directories.
type ProfileService struct {
	infos profileinfo.Repository
}

func NewProfileService(infos profileinfo.Repository) *ProfileService {
	return &ProfileService{infos: infos}
}

func (s *ProfileService) ListPlayers(ctx context.Context) ([]profileinfo.Info, error) {
	return s.list(ctx, profileinfo.TypeFootballPlayer)
}

func (s *ProfileService) ListScouts(ctx context.Context) ([]profileinfo.Info, error) {
	return s.list(ctx, profileinfo.TypeScout)
}

func (s *ProfileService) list(ctx context.Context, kind profileinfo.ProfileType) ([]profileinfo.Info, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.List")
	defer span.End()

	items, err := s.infos.ListByType(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s profiles: %w", kind, err)
	}
	return items, nil
}
