package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/scouting-platform/internal/domain/playerprofile"
	"github.com/riskibarqy/scouting-platform/internal/domain/profileinfo"
	"github.com/riskibarqy/scouting-platform/internal/domain/profilevisit"
	"github.com/riskibarqy/scouting-platform/internal/platform/id"
	"github.com/riskibarqy/scouting-platform/internal/platform/logging"
)

const (
	recentVisitsLimit  = 20
	unknownVisitorType = "Unknown"
)

// VisitorGroup aggregates today's visits by the visitor's profile type.
type VisitorGroup struct {
	ProfileType    string
	Count          int
	UniqueVisitors int
	Visitors       []profilevisit.Detailed
}

type VisitAnalytics struct {
	TodayStats   []VisitorGroup
	RecentVisits []profilevisit.Detailed
	TotalVisits  int
}

type PlayerProfileService struct {
	profiles playerprofile.Repository
	infos    profileinfo.Repository
	visits   profilevisit.Repository
	idGen    id.Generator
	logger   *logging.Logger
	now      func() time.Time
}

func NewPlayerProfileService(
	profiles playerprofile.Repository,
	infos profileinfo.Repository,
	visits profilevisit.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *PlayerProfileService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PlayerProfileService{
		profiles: profiles,
		infos:    infos,
		visits:   visits,
		idGen:    idGen,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *PlayerProfileService) List(ctx context.Context) ([]playerprofile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerProfileService.List")
	defer span.End()

	items, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list player profiles: %w", err)
	}
	return items, nil
}

func (s *PlayerProfileService) Search(ctx context.Context, filter playerprofile.SearchFilter) ([]playerprofile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerProfileService.Search")
	defer span.End()

	filter.FirstName = strings.TrimSpace(filter.FirstName)
	filter.LastName = strings.TrimSpace(filter.LastName)
	filter.Country = strings.TrimSpace(filter.Country)

	items, err := s.profiles.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search player profiles: %w", err)
	}
	return items, nil
}

func (s *PlayerProfileService) GetMine(ctx context.Context, userID string) (playerprofile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerProfileService.GetMine")
	defer span.End()

	p, ok, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return playerprofile.Profile{}, fmt.Errorf("get player profile by user: %w", err)
	}
	if !ok {
		return playerprofile.Profile{}, newError(ErrNotFound, "Player profile not found")
	}
	return p, nil
}

// View returns a profile and records the visit when someone other than the
// owner looks at it. Visit failures are logged, never returned.
func (s *PlayerProfileService) View(ctx context.Context, profileID, viewerUserID string) (playerprofile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerProfileService.View")
	defer span.End()

	p, err := s.mustGet(ctx, profileID)
	if err != nil {
		return playerprofile.Profile{}, err
	}
	if viewerUserID != "" && viewerUserID != p.UserID {
		if err := s.recordVisit(ctx, p.ID, viewerUserID); err != nil {
			s.logger.WarnContext(ctx, "record profile visit failed", "profile_id", p.ID, "visitor_user_id", viewerUserID, "error", err)
		}
	}
	return p, nil
}

func (s *PlayerProfileService) recordVisit(ctx context.Context, profileID, visitorUserID string) error {
	visitID, err := s.idGen.NewID()
	if err != nil {
		return fmt.Errorf("generate visit id: %w", err)
	}
	v := profilevisit.Visit{
		ID:               visitID,
		VisitedProfileID: profileID,
		VisitorUserID:    visitorUserID,
		VisitedAt:        s.now().UTC(),
	}
	if own, ok, err := s.profiles.GetByUserID(ctx, visitorUserID); err != nil {
		return fmt.Errorf("get visitor profile: %w", err)
	} else if ok {
		v.VisitorProfileID = own.ID
	}
	if kind, ok, err := s.infos.TypeForUser(ctx, visitorUserID); err != nil {
		return fmt.Errorf("get visitor profile type: %w", err)
	} else if ok {
		v.VisitorProfileType = string(kind)
	}
	return s.visits.Record(ctx, v)
}

// Update applies a partial update. Only the owner may edit a profile.
func (s *PlayerProfileService) Update(ctx context.Context, profileID, callerUserID string, patch playerprofile.Patch) (playerprofile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerProfileService.Update")
	defer span.End()

	if err := normalizePatch(&patch); err != nil {
		return playerprofile.Profile{}, err
	}
	current, err := s.mustGet(ctx, profileID)
	if err != nil {
		return playerprofile.Profile{}, err
	}
	if current.UserID != callerUserID {
		return playerprofile.Profile{}, newError(ErrForbidden, "You can only update your own profile")
	}
	if patch.IsEmpty() {
		return current, nil
	}

	updated, ok, err := s.profiles.Update(ctx, current.ID, patch)
	if err != nil {
		return playerprofile.Profile{}, fmt.Errorf("update player profile: %w", err)
	}
	if !ok {
		return playerprofile.Profile{}, newError(ErrNotFound, "Player profile not found")
	}
	return updated, nil
}

func normalizePatch(p *playerprofile.Patch) error {
	for _, field := range []struct {
		name  string
		value *string
	}{{"firstName", p.FirstName}, {"lastName", p.LastName}} {
		if field.value == nil {
			continue
		}
		*field.value = strings.TrimSpace(*field.value)
		if *field.value == "" {
			return newError(ErrInvalidInput, "%s cannot be empty", field.name)
		}
	}
	if p.Country != nil {
		*p.Country = strings.TrimSpace(*p.Country)
	}
	if p.Avatar != nil {
		*p.Avatar = strings.TrimSpace(*p.Avatar)
	}
	if p.PrimaryPosition != nil && *p.PrimaryPosition != "" {
		position, ok := playerprofile.IsValidPosition(*p.PrimaryPosition)
		if !ok {
			return newError(ErrInvalidInput, "primaryPosition must be one of %s", strings.Join(playerprofile.Positions, ", "))
		}
		p.PrimaryPosition = &position
	}
	return nil
}

// VisitAnalytics summarises who viewed the caller's profile.
func (s *PlayerProfileService) VisitAnalytics(ctx context.Context, userID string) (VisitAnalytics, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerProfileService.VisitAnalytics")
	defer span.End()

	own, err := s.GetMine(ctx, userID)
	if err != nil {
		return VisitAnalytics{}, err
	}

	now := s.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	today, err := s.visits.ListSince(ctx, own.ID, startOfDay)
	if err != nil {
		return VisitAnalytics{}, fmt.Errorf("list today's visits: %w", err)
	}
	recent, err := s.visits.ListRecent(ctx, own.ID, recentVisitsLimit)
	if err != nil {
		return VisitAnalytics{}, fmt.Errorf("list recent visits: %w", err)
	}
	total, err := s.visits.Count(ctx, own.ID)
	if err != nil {
		return VisitAnalytics{}, fmt.Errorf("count visits: %w", err)
	}

	return VisitAnalytics{
		TodayStats:   groupVisits(today),
		RecentVisits: recent,
		TotalVisits:  total,
	}, nil
}

func groupVisits(visits []profilevisit.Detailed) []VisitorGroup {
	byType := make(map[string]*VisitorGroup)
	unique := make(map[string]map[string]struct{})
	for _, v := range visits {
		kind := v.VisitorProfileType
		if kind == "" {
			kind = unknownVisitorType
		}
		g, ok := byType[kind]
		if !ok {
			g = &VisitorGroup{ProfileType: kind}
			byType[kind] = g
			unique[kind] = make(map[string]struct{})
		}
		g.Count++
		g.Visitors = append(g.Visitors, v)
		unique[kind][v.VisitorUserID] = struct{}{}
	}

	out := make([]VisitorGroup, 0, len(byType))
	for kind, g := range byType {
		g.UniqueVisitors = len(unique[kind])
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ProfileType < out[j].ProfileType
	})
	return out
}

func (s *PlayerProfileService) mustGet(ctx context.Context, profileID string) (playerprofile.Profile, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return playerprofile.Profile{}, newError(ErrInvalidInput, "Player profile id is required")
	}
	p, ok, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return playerprofile.Profile{}, fmt.Errorf("get player profile: %w", err)
	}
	if !ok {
		return playerprofile.Profile{}, newError(ErrNotFound, "Player profile not found")
	}
	return p, nil
}
